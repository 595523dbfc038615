package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/learning-content-service/internal/events"
	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/SAP-F-2025/learning-content-service/internal/progress"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"github.com/SAP-F-2025/learning-content-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMaterialFixture(source progress.Source) (*materialService, *MockRepository, *events.MockEventPublisher) {
	repo := NewMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewMaterialService(repo, publisher, source, validator.New(), 1024, testLogger()).(*materialService)
	return svc, repo, publisher
}

func validUpload() *UploadMaterialRequest {
	return &UploadMaterialRequest{
		Title:       "Intro to SQL",
		FileName:    "sql.md",
		ContentType: "text/markdown",
		Tags:        []string{" SQL ", "databases", "sql"},
		Body:        []byte("# SQL\n\nSelect rows."),
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"trims and lowercases", []string{"  Go ", "SQL"}, []string{"go", "sql"}},
		{"dedupes after normalizing", []string{"Go", "go", " GO"}, []string{"go"}},
		{"drops blanks", []string{"", "  ", "web"}, []string{"web"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}

func TestMaterialService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("reports progress and marks ready", func(t *testing.T) {
		svc, repo, publisher := newMaterialFixture(progress.NewStepSource(25, 50, 75))

		repo.material.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*models.Material")).
			Run(func(args mock.Arguments) {
				m := args.Get(2).(*models.Material)
				assert.Equal(t, models.MaterialUploading, m.Status)
				assert.Equal(t, "instructor-1", m.CreatedBy)
				m.ID = 7
			}).Return(nil)
		repo.material.On("ReplaceTags", mock.Anything, mock.Anything, uint(7), []string{"databases", "sql"}).
			Return([]models.Tag{{ID: 1, Name: "databases"}, {ID: 2, Name: "sql"}}, nil)
		repo.material.On("UpdateStatus", mock.Anything, mock.Anything, uint(7), models.MaterialReady).Return(nil)
		repo.material.On("GetByID", mock.Anything, mock.Anything, uint(7)).
			Return(&models.Material{ID: 7, Title: "Intro to SQL", ContentType: "text/markdown", Status: models.MaterialReady}, nil)

		resp, err := svc.Upload(ctx, validUpload(), "instructor-1")
		require.NoError(t, err)
		assert.Equal(t, uint(7), resp.ID)
		assert.True(t, resp.PreviewAvailable)

		ticks := publisher.EventsOfType(events.EventMaterialUploadProgress)
		require.Len(t, ticks, 4)
		last := ticks[3].Data.(events.ProgressEvent)
		assert.Equal(t, 100.0, last.Percent)
		assert.True(t, last.Done)

		uploaded := publisher.EventsOfType(events.EventMaterialUploaded)
		require.Len(t, uploaded, 1)
		assert.Equal(t, []string{"databases", "sql"}, uploaded[0].Data.(events.MaterialUploadedEvent).Tags)
		repo.material.AssertExpectations(t)
	})

	t.Run("rejects invalid request", func(t *testing.T) {
		svc, repo, _ := newMaterialFixture(progress.NewStepSource())
		req := validUpload()
		req.Title = ""
		req.ContentType = "application/x-msdownload"

		_, err := svc.Upload(ctx, req, "instructor-1")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		repo.material.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects oversized body", func(t *testing.T) {
		svc, _, _ := newMaterialFixture(progress.NewStepSource())
		req := validUpload()
		req.Body = make([]byte, 2048)

		_, err := svc.Upload(ctx, req, "instructor-1")
		assert.ErrorIs(t, err, ErrMaterialTooLarge)
	})

	t.Run("cancelled upload marks material failed", func(t *testing.T) {
		svc, repo, publisher := newMaterialFixture(progress.NewStepSource(10, 20))
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		repo.material.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { args.Get(2).(*models.Material).ID = 9 }).
			Return(nil)
		repo.material.On("UpdateStatus", mock.Anything, mock.Anything, uint(9), models.MaterialFailed).Return(nil)

		_, err := svc.Upload(cctx, validUpload(), "instructor-1")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, publisher.EventsOfType(events.EventMaterialUploaded))
		repo.material.AssertExpectations(t)
	})
}

func TestMaterialService_Preview(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newMaterialFixture(progress.NewStepSource())

	repo.material.On("GetByID", mock.Anything, mock.Anything, uint(1)).
		Return(&models.Material{ID: 1, Title: "Notes", ContentType: "text/markdown", Status: models.MaterialReady,
			Body: []byte("# Heading\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")}, nil)
	repo.material.On("GetByID", mock.Anything, mock.Anything, uint(2)).
		Return(&models.Material{ID: 2, ContentType: "application/pdf", Status: models.MaterialReady}, nil)
	repo.material.On("GetByID", mock.Anything, mock.Anything, uint(3)).
		Return(nil, repositories.ErrNotFound)

	preview, err := svc.Preview(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, preview.HTML, "<h1>Heading</h1>")
	assert.Contains(t, preview.HTML, "<table>")

	_, err = svc.Preview(ctx, 2)
	assert.ErrorIs(t, err, ErrPreviewUnsupported)

	_, err = svc.Preview(ctx, 3)
	assert.ErrorIs(t, err, ErrMaterialNotFound)
}

func TestMaterialService_UpdateTags(t *testing.T) {
	ctx := context.Background()

	t.Run("owner replaces tags", func(t *testing.T) {
		svc, repo, publisher := newMaterialFixture(progress.NewStepSource())
		repo.material.On("GetByID", mock.Anything, mock.Anything, uint(4)).
			Return(&models.Material{ID: 4, Status: models.MaterialReady}, nil)
		repo.material.On("IsOwner", mock.Anything, mock.Anything, uint(4), "instructor-1").Return(true, nil)
		repo.material.On("ReplaceTags", mock.Anything, mock.Anything, uint(4), []string{"go", "web"}).
			Return([]models.Tag{{Name: "go"}, {Name: "web"}}, nil)

		_, err := svc.UpdateTags(ctx, 4, &UpdateTagsRequest{Tags: []string{"Web", "Go", "go"}}, "instructor-1")
		require.NoError(t, err)
		require.Len(t, publisher.EventsOfType(events.EventMaterialTagged), 1)
	})

	t.Run("non owner is refused", func(t *testing.T) {
		svc, repo, _ := newMaterialFixture(progress.NewStepSource())
		repo.material.On("GetByID", mock.Anything, mock.Anything, uint(4)).
			Return(&models.Material{ID: 4}, nil)
		repo.material.On("IsOwner", mock.Anything, mock.Anything, uint(4), "student-2").Return(false, nil)

		_, err := svc.UpdateTags(ctx, 4, &UpdateTagsRequest{Tags: []string{"go"}}, "student-2")
		var permErr *PermissionError
		require.True(t, errors.As(err, &permErr))
		assert.Equal(t, "tag", permErr.Action)
		assert.True(t, IsUnauthorized(err))
	})
}

func TestMaterialService_ListDefaultsToReady(t *testing.T) {
	svc, repo, _ := newMaterialFixture(progress.NewStepSource())
	repo.material.On("List", mock.Anything, mock.Anything, mock.MatchedBy(func(f repositories.MaterialFilters) bool {
		return f.Status != nil && *f.Status == models.MaterialReady && len(f.Tags) == 1 && f.Tags[0] == "sql"
	})).Return([]*models.Material{{ID: 1}}, int64(1), nil)

	resp, err := svc.List(context.Background(), repositories.MaterialFilters{Tags: []string{" SQL"}, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 10, resp.Limit)
}
