package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_AssessmentResults(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepository()
	svc := NewExportService(repo, testLogger())

	repo.assessment.On("GetByIDWithDetails", mock.Anything, mock.Anything, uint(11)).Return(&models.Assessment{
		ID:        11,
		CreatedBy: "instructor-1",
		Questions: []models.AssessmentQuestion{
			{Order: 1, QuestionID: 100, Question: models.Question{ID: 100, Type: models.MultipleChoice, Text: "Pick one"}},
			{Order: 2, QuestionID: 101, Question: models.Question{ID: 101, Type: models.Matching, Text: "Match languages"}},
		},
	}, nil)
	checkedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	repo.matchAttempt.On("List", mock.Anything, mock.Anything, mock.AnythingOfType("repositories.AttemptFilters")).
		Return([]*models.MatchAttempt{
			{ID: 1, QuestionID: 101, UserID: "student-1", Correct: 3, Total: 3, Passed: true, CreatedAt: checkedAt},
			{ID: 2, QuestionID: 101, UserID: "student-2", Correct: 1, Total: 3, CreatedAt: checkedAt},
		}, int64(2), nil)
	repo.matchAttempt.On("GetStats", mock.Anything, mock.Anything, uint(101)).
		Return(&repositories.MatchStats{Attempts: 2, PassRate: 0.5, AverageScore: 2.0 / 3.0}, nil)

	data, err := svc.AssessmentResults(ctx, 11, "instructor-1")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{resultsSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(resultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Attempt ID", "Question ID", "User", "Correct", "Total", "Passed", "Checked At"}, rows[0])
	assert.Equal(t, "student-1", rows[1][2])

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, "Match languages", summary[1][2])
	repo.matchAttempt.AssertNumberOfCalls(t, "GetStats", 1)
}

func TestExportService_RequiresOwner(t *testing.T) {
	repo := NewMockRepository()
	svc := NewExportService(repo, testLogger())
	repo.assessment.On("GetByIDWithDetails", mock.Anything, mock.Anything, uint(11)).
		Return(&models.Assessment{ID: 11, CreatedBy: "instructor-1"}, nil)

	_, err := svc.AssessmentResults(context.Background(), 11, "student-1")
	assert.True(t, IsUnauthorized(err))
}
