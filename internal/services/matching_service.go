package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/learning-content-service/internal/events"
	"github.com/SAP-F-2025/learning-content-service/internal/matching"
	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"github.com/SAP-F-2025/learning-content-service/internal/validator"
	"gorm.io/datatypes"
)

// DefaultSessionIdleTTL is how long an untouched matching session survives.
const DefaultSessionIdleTTL = 2 * time.Hour

type sessionKey struct {
	userID     string
	questionID uint
}

// matchSession owns one controller. The controller is not safe for
// concurrent use, so every access holds mu.
type matchSession struct {
	mu           sync.Mutex
	controller   *matching.Controller
	redraw       *matching.RedrawSignal
	assessmentID *uint
	lastUsed     time.Time
}

type matchingService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
	opLogger  *ServiceLogger

	mu       sync.Mutex
	sessions map[sessionKey]*matchSession
	idleTTL  time.Duration
	now      func() time.Time
}

func NewMatchingService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	validator *validator.Validator,
	idleTTL time.Duration,
	logger *slog.Logger,
) MatchingService {
	if idleTTL <= 0 {
		idleTTL = DefaultSessionIdleTTL
	}
	return &matchingService{
		repo:      repo,
		publisher: publisher,
		validator: validator,
		logger:    logger,
		opLogger:  NewServiceLogger(logger, LogConfig{Service: "matching", Component: "sessions"}),
		sessions:  make(map[sessionKey]*matchSession),
		idleTTL:   idleTTL,
		now:       time.Now,
	}
}

// ===== SESSION LIFECYCLE =====

// StartSession loads a matching question and replaces any existing session
// the user has for it.
func (s *matchingService) StartSession(ctx context.Context, questionID uint, userID string, req *StartSessionRequest) (*MatchSessionResponse, error) {
	if req == nil {
		req = &StartSessionRequest{}
	}

	question, err := s.repo.Question().GetByID(ctx, nil, questionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if question.Type != models.Matching {
		return nil, ErrQuestionNotMatching
	}
	content, err := question.MatchingContent()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuestionInvalidContent, err)
	}

	redraw := matching.NewRedrawSignal()
	controller, err := matching.NewController(content.ToMatchingQuestion(), matching.Options{
		EnforceDestinationUniqueness: content.EnforceOneToOne,
		Redrawer:                     redraw,
	})
	if err != nil {
		return nil, err
	}

	if req.Resume {
		if restored, err := s.restoreLatest(ctx, controller, questionID, userID); err != nil {
			s.logger.Warn("Failed to restore previous attempt", "question_id", questionID, "user_id", userID, "error", err)
		} else if restored > 0 {
			s.logger.Debug("Restored previous attempt", "question_id", questionID, "connections", restored)
		}
	}

	session := &matchSession{
		controller:   controller,
		redraw:       redraw,
		assessmentID: req.AssessmentID,
		lastUsed:     s.now(),
	}

	s.mu.Lock()
	s.pruneLocked()
	s.sessions[sessionKey{userID: userID, questionID: questionID}] = session
	count := len(s.sessions)
	s.mu.Unlock()

	s.logger.Info("Matching session started", "question_id", questionID, "user_id", userID, "active_sessions", count)

	session.mu.Lock()
	defer session.mu.Unlock()
	return s.snapshot(questionID, session), nil
}

func (s *matchingService) restoreLatest(ctx context.Context, controller *matching.Controller, questionID uint, userID string) (int, error) {
	attempt, err := s.repo.MatchAttempt().LatestForUser(ctx, nil, questionID, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return 0, nil
		}
		return 0, err
	}
	var conns []matching.Connection
	if err := json.Unmarshal(attempt.Connections, &conns); err != nil {
		return 0, fmt.Errorf("failed to decode saved connections: %w", err)
	}
	return controller.Restore(conns), nil
}

func (s *matchingService) EndSession(questionID uint, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey{userID: userID, questionID: questionID})
}

// pruneLocked drops sessions idle longer than idleTTL. Callers hold s.mu.
func (s *matchingService) pruneLocked() {
	cutoff := s.now().Add(-s.idleTTL)
	for key, session := range s.sessions {
		session.mu.Lock()
		idle := session.lastUsed.Before(cutoff)
		session.mu.Unlock()
		if idle {
			delete(s.sessions, key)
		}
	}
}

// withSession runs fn with the session locked and returns its snapshot.
func (s *matchingService) withSession(questionID uint, userID string, fn func(*matchSession) error) (*MatchSessionResponse, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionKey{userID: userID, questionID: questionID}]
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.lastUsed = s.now()
	if err := fn(session); err != nil {
		return nil, err
	}
	return s.snapshot(questionID, session), nil
}

// snapshot renders the session. Callers hold session.mu.
func (s *matchingService) snapshot(questionID uint, session *matchSession) *MatchSessionResponse {
	c := session.controller
	q := c.Question()
	resp := &MatchSessionResponse{
		QuestionID:                   questionID,
		State:                        c.State(),
		Sources:                      q.Sources,
		Destinations:                 q.Destinations,
		Connections:                  c.Connections().List(),
		Lines:                        c.Lines(),
		LayoutReady:                  c.Layout().Ready(),
		EnforceDestinationUniqueness: c.Connections().EnforcesUniqueDestinations(),
		Changed:                      session.redraw.Pending(),
	}
	if d, ok := c.Drag(); ok {
		resp.Drag = &d
	}
	if resp.Connections == nil {
		resp.Connections = []matching.Connection{}
	}
	if resp.Lines == nil {
		resp.Lines = []matching.Segment{}
	}
	return resp
}

// ===== LAYOUT AND POINTER EVENTS =====

// SetLayout records item boxes. The whole request is rejected when any id is
// not part of the question.
func (s *matchingService) SetLayout(ctx context.Context, questionID uint, userID string, req *LayoutRequest) (*MatchSessionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.withSession(questionID, userID, func(session *matchSession) error {
		known := itemIDs(session.controller.Question())
		for _, item := range req.Items {
			if !known[item.ID] {
				return fmt.Errorf("%w: %q", ErrUnknownItem, item.ID)
			}
		}
		for _, item := range req.Items {
			session.controller.SetItemBounds(item.ID, matching.Rect{
				X: item.X, Y: item.Y, Width: item.Width, Height: item.Height,
			})
		}
		return nil
	})
}

func itemIDs(q matching.Question) map[string]bool {
	ids := make(map[string]bool, len(q.Sources)+len(q.Destinations))
	for _, it := range q.Sources {
		ids[it.ID] = true
	}
	for _, it := range q.Destinations {
		ids[it.ID] = true
	}
	return ids
}

func (s *matchingService) PointerDown(ctx context.Context, questionID uint, userID string, req *PointerRequest) (*MatchSessionResponse, error) {
	return s.withSession(questionID, userID, func(session *matchSession) error {
		session.controller.PointerDown(req.ItemID, matching.Point{X: req.X, Y: req.Y})
		return nil
	})
}

func (s *matchingService) PointerMove(ctx context.Context, questionID uint, userID string, req *PointerRequest) (*MatchSessionResponse, error) {
	return s.withSession(questionID, userID, func(session *matchSession) error {
		session.controller.PointerMove(matching.Point{X: req.X, Y: req.Y})
		return nil
	})
}

func (s *matchingService) PointerUp(ctx context.Context, questionID uint, userID string, req *PointerRequest) (*MatchSessionResponse, error) {
	return s.withSession(questionID, userID, func(session *matchSession) error {
		if conn, ok := session.controller.PointerUp(matching.Point{X: req.X, Y: req.Y}); ok {
			s.logger.Debug("Connection made", "question_id", questionID, "source", conn.SourceID, "destination", conn.DestinationID)
		}
		return nil
	})
}

func (s *matchingService) PointerCancel(ctx context.Context, questionID uint, userID string) (*MatchSessionResponse, error) {
	return s.withSession(questionID, userID, func(session *matchSession) error {
		session.controller.PointerCancel()
		return nil
	})
}

func (s *matchingService) Lines(ctx context.Context, questionID uint, userID string) ([]matching.Segment, error) {
	resp, err := s.withSession(questionID, userID, func(*matchSession) error { return nil })
	if err != nil {
		return nil, err
	}
	return resp.Lines, nil
}

func (s *matchingService) Clear(ctx context.Context, questionID uint, userID string) (*MatchSessionResponse, error) {
	return s.withSession(questionID, userID, func(session *matchSession) error {
		session.controller.Clear()
		return nil
	})
}

// ===== CHECK =====

// Check grades the session, stores the attempt and publishes match.checked.
// It returns ErrNoConnections when nothing has been matched.
func (s *matchingService) Check(ctx context.Context, questionID uint, userID string) (resp *MatchCheckResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "check_matching", userID)
	defer func() { op.LogResult(questionID, "question", err) }()

	var attempt *models.MatchAttempt
	var score matching.Score
	_, err = s.withSession(questionID, userID, func(session *matchSession) error {
		var checkErr error
		score, checkErr = session.controller.Check()
		if checkErr != nil {
			return checkErr
		}

		conns, err := json.Marshal(session.controller.Connections().List())
		if err != nil {
			return fmt.Errorf("failed to encode connections: %w", err)
		}
		results, err := json.Marshal(score.Results)
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		attempt = &models.MatchAttempt{
			QuestionID:   questionID,
			AssessmentID: session.assessmentID,
			UserID:       userID,
			Connections:  datatypes.JSON(conns),
			Results:      datatypes.JSON(results),
			Correct:      score.Correct,
			Total:        score.Total,
			Passed:       score.Passed,
		}
		return s.repo.MatchAttempt().Create(ctx, nil, attempt)
	})
	if err != nil {
		if errors.Is(err, ErrNoConnections) || errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.EventMatchChecked, events.MatchCheckedEvent{
		AttemptID:  attempt.ID,
		QuestionID: questionID,
		UserID:     userID,
		Correct:    score.Correct,
		Total:      score.Total,
		Passed:     score.Passed,
	}))

	return &MatchCheckResponse{
		AttemptID: attempt.ID,
		Score:     score,
		Message:   score.Summary(),
	}, nil
}
