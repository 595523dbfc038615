package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
	exportPage   = 100
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// AssessmentResults writes every checked matching attempt of an assessment
// to an xlsx workbook, with per-question statistics on a second sheet.
func (s *exportService) AssessmentResults(ctx context.Context, assessmentID uint, userID string) ([]byte, error) {
	assessment, err := s.repo.Assessment().GetByIDWithDetails(ctx, nil, assessmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if assessment.CreatedBy != userID {
		return nil, NewPermissionError(userID, assessmentID, "assessment", "export", "not owner")
	}

	attempts, err := s.allAttempts(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(resultsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []interface{}{"Attempt ID", "Question ID", "User", "Correct", "Total", "Passed", "Checked At"}
	if err := f.SetSheetRow(resultsSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}
	for i, a := range attempts {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{a.ID, a.QuestionID, a.UserID, a.Correct, a.Total, a.Passed, a.CreatedAt}
		if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write attempt %d: %w", a.ID, err)
		}
	}

	if err := s.writeSummary(ctx, f, assessment); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	s.logger.Info("Assessment results exported", "assessment_id", assessmentID, "attempts", len(attempts))
	return buf.Bytes(), nil
}

func (s *exportService) allAttempts(ctx context.Context, assessmentID uint) ([]*models.MatchAttempt, error) {
	var out []*models.MatchAttempt
	filters := repositories.AttemptFilters{AssessmentID: &assessmentID, Limit: exportPage}
	for {
		page, total, err := s.repo.MatchAttempt().List(ctx, nil, filters)
		if err != nil {
			return nil, fmt.Errorf("failed to list attempts: %w", err)
		}
		out = append(out, page...)
		if len(page) == 0 || int64(len(out)) >= total {
			return out, nil
		}
		filters.Offset += len(page)
	}
}

func (s *exportService) writeSummary(ctx context.Context, f *excelize.File, assessment *models.Assessment) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	headers := []interface{}{"Order", "Question ID", "Question", "Attempts", "Pass Rate", "Average Score"}
	if err := f.SetSheetRow(summarySheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	row := 2
	for _, aq := range assessment.Questions {
		if aq.Question.Type != models.Matching {
			continue
		}
		stats, err := s.repo.MatchAttempt().GetStats(ctx, nil, aq.QuestionID)
		if err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{aq.Order, aq.QuestionID, aq.Question.Text, stats.Attempts, stats.PassRate, stats.AverageScore}
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
		row++
	}
	return nil
}
