package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/learning-content-service/internal/cache"
	"github.com/SAP-F-2025/learning-content-service/internal/validator"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const sessionKeyPrefix = "session:"

// IdentityProvider is the part of the Casdoor client the auth service uses.
// *casdoorsdk.Client satisfies it.
type IdentityProvider interface {
	GetOAuthToken(code string, state string) (*oauth2.Token, error)
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
}

type storedSession struct {
	AccessToken string    `json:"access_token"`
	UserID      string    `json:"user_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type authService struct {
	idp       IdentityProvider
	store     cache.CacheService
	validator *validator.Validator
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewAuthService builds the auth service. idp may be nil when no identity
// provider is configured; Login then fails with ErrAuthUnavailable.
func NewAuthService(idp IdentityProvider, store cache.CacheService, validator *validator.Validator, ttl time.Duration, logger *slog.Logger) AuthService {
	return &authService{
		idp:       idp,
		store:     store,
		validator: validator,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}
}

// Login exchanges an OAuth code for a token and stores it under a fresh
// opaque session id.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if s.idp == nil {
		return nil, ErrAuthUnavailable
	}

	token, err := s.idp.GetOAuthToken(req.Code, req.State)
	if err != nil {
		s.logger.Warn("OAuth code exchange failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	claims, err := s.idp.ParseJwtToken(token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	principal := principalFromClaims(claims)
	sessionID := uuid.NewString()
	expiresAt := s.now().Add(s.ttl)
	session := storedSession{
		AccessToken: token.AccessToken,
		UserID:      principal.ID,
		ExpiresAt:   expiresAt,
	}
	if err := s.store.Set(ctx, sessionKeyPrefix+sessionID, session, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("User logged in", "user_id", principal.ID)
	return &LoginResponse{SessionID: sessionID, ExpiresAt: expiresAt, User: principal}, nil
}

// Authenticate resolves a session id to the caller.
func (s *authService) Authenticate(ctx context.Context, sessionID string) (*Principal, error) {
	if sessionID == "" {
		return nil, ErrInvalidToken
	}

	var session storedSession
	if err := s.store.Get(ctx, sessionKeyPrefix+sessionID, &session); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if s.idp == nil {
		return &Principal{ID: session.UserID}, nil
	}

	claims, err := s.idp.ParseJwtToken(session.AccessToken)
	if err != nil {
		if delErr := s.store.Delete(ctx, sessionKeyPrefix+sessionID); delErr != nil {
			s.logger.Warn("Failed to drop session with invalid token", "error", delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	principal := principalFromClaims(claims)
	return &principal, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func principalFromClaims(claims *casdoorsdk.Claims) Principal {
	name := claims.User.DisplayName
	if name == "" {
		name = claims.User.Name
	}
	id := claims.User.Id
	if id == "" {
		id = claims.User.Owner + "/" + claims.User.Name
	}
	return Principal{ID: id, Name: name, Email: claims.User.Email}
}
