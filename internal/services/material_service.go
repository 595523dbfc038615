package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/learning-content-service/internal/events"
	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/SAP-F-2025/learning-content-service/internal/progress"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"github.com/SAP-F-2025/learning-content-service/internal/validator"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gorm.io/gorm"
)

type materialService struct {
	repo          repositories.Repository
	publisher     events.EventPublisher
	progress      progress.Source
	validator     *validator.Validator
	markdown      goldmark.Markdown
	maxUploadSize int64
	logger        *slog.Logger
	opLogger      *ServiceLogger
}

func NewMaterialService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	source progress.Source,
	validator *validator.Validator,
	maxUploadSize int64,
	logger *slog.Logger,
) MaterialService {
	return &materialService{
		repo:          repo,
		publisher:     publisher,
		progress:      source,
		validator:     validator,
		markdown:      goldmark.New(goldmark.WithExtensions(extension.GFM)),
		maxUploadSize: maxUploadSize,
		logger:        logger,
		opLogger:      NewServiceLogger(logger, LogConfig{Service: "material", Component: "library"}),
	}
}

// Upload stores the material, reports progress while the body is processed
// and marks the material ready once the progress source completes.
func (s *materialService) Upload(ctx context.Context, req *UploadMaterialRequest, creatorID string) (resp *MaterialResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "upload_material", creatorID)
	var materialID uint
	defer func() { op.LogResult(materialID, "material", err) }()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}
	if s.maxUploadSize > 0 && int64(len(req.Body)) > s.maxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrMaterialTooLarge, len(req.Body))
	}

	material := &models.Material{
		Title:       req.Title,
		Description: req.Description,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        int64(len(req.Body)),
		Body:        req.Body,
		Status:      models.MaterialUploading,
		CreatedBy:   creatorID,
	}
	if err = s.repo.Material().Create(ctx, nil, material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}
	materialID = material.ID

	err = s.progress.Run(ctx, func(t progress.Tick) {
		publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.EventMaterialUploadProgress, events.ProgressEvent{
			ResourceID: material.ID,
			UserID:     creatorID,
			Percent:    t.Percent,
			Done:       t.Done,
		}))
	})
	if err != nil {
		// The request context may be gone; record the failure regardless.
		if statusErr := s.repo.Material().UpdateStatus(context.WithoutCancel(ctx), nil, material.ID, models.MaterialFailed); statusErr != nil {
			s.logger.Error("Failed to mark material as failed", "material_id", material.ID, "error", statusErr)
		}
		return nil, fmt.Errorf("upload interrupted: %w", err)
	}

	tags := NormalizeTags(req.Tags)
	err = s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		if len(tags) > 0 {
			if _, err := s.repo.Material().ReplaceTags(ctx, tx, material.ID, tags); err != nil {
				return err
			}
		}
		return s.repo.Material().UpdateStatus(ctx, tx, material.ID, models.MaterialReady)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to finalize material: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.EventMaterialUploaded, events.MaterialUploadedEvent{
		MaterialID: material.ID,
		Title:      material.Title,
		Size:       material.Size,
		Tags:       tagNames(tags),
		CreatorID:  creatorID,
	}))

	s.logger.Info("Material uploaded", "material_id", material.ID, "size", material.Size, "tags", len(tags))
	return s.GetByID(ctx, material.ID)
}

func (s *materialService) GetByID(ctx context.Context, id uint) (*MaterialResponse, error) {
	material, err := s.repo.Material().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return &MaterialResponse{Material: material, PreviewAvailable: material.IsMarkdown()}, nil
}

func (s *materialService) List(ctx context.Context, filters repositories.MaterialFilters) (*MaterialListResponse, error) {
	filters.Tags = NormalizeTags(filters.Tags)
	if filters.Status == nil {
		ready := models.MaterialReady
		filters.Status = &ready
	}

	materials, total, err := s.repo.Material().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	if materials == nil {
		materials = []*models.Material{}
	}
	return &MaterialListResponse{
		Materials: materials,
		Total:     total,
		Limit:     filters.Limit,
		Offset:    filters.Offset,
	}, nil
}

// Preview renders a markdown or plain-text material to HTML.
func (s *materialService) Preview(ctx context.Context, id uint) (*MaterialPreview, error) {
	resp, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resp.Status != models.MaterialReady {
		return nil, ErrMaterialNotReady
	}
	if !resp.IsMarkdown() {
		return nil, ErrPreviewUnsupported
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert(resp.Body, &buf); err != nil {
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}
	return &MaterialPreview{MaterialID: resp.ID, Title: resp.Title, HTML: buf.String()}, nil
}

func (s *materialService) UpdateTags(ctx context.Context, id uint, req *UpdateTagsRequest, userID string) (resp *MaterialResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "tag_material", userID)
	defer func() { op.LogResult(id, "material", err) }()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err = s.checkOwner(ctx, id, userID, "tag"); err != nil {
		return nil, err
	}

	tags := NormalizeTags(req.Tags)
	if _, err = s.repo.Material().ReplaceTags(ctx, nil, id, tags); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to tag material: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.EventMaterialTagged, events.MaterialTaggedEvent{
		MaterialID: id,
		Tags:       tagNames(tags),
	}))
	return s.GetByID(ctx, id)
}

func (s *materialService) Delete(ctx context.Context, id uint, userID string) (err error) {
	op := s.opLogger.WithOperation(ctx, "delete_material", userID)
	defer func() { op.LogResult(id, "material", err) }()

	if err = s.checkOwner(ctx, id, userID, "delete"); err != nil {
		return err
	}
	if err = s.repo.Material().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrMaterialNotFound
		}
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return nil
}

func (s *materialService) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.repo.Material().ListTags(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// checkOwner returns ErrMaterialNotFound for a missing material and a
// PermissionError when userID did not upload it.
func (s *materialService) checkOwner(ctx context.Context, id uint, userID, action string) error {
	if _, err := s.repo.Material().GetByID(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrMaterialNotFound
		}
		return fmt.Errorf("failed to get material: %w", err)
	}
	owner, err := s.repo.Material().IsOwner(ctx, nil, id, userID)
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if !owner {
		return NewPermissionError(userID, id, "material", action, "only the uploader can change this material")
	}
	return nil
}
