package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/slgoiko/unirhub/internal/app/models"
	"github.com/slgoiko/unirhub/internal/config"
	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
	"github.com/slgoiko/unirhub/internal/pkg/googleapi"
	"github.com/slgoiko/unirhub/internal/pkg/helpers"
	"github.com/slgoiko/unirhub/internal/pkg/logger"
)

// IdentityFlow is the part of the Google OAuth flow the auth service needs.
type IdentityFlow interface {
	AuthCodeURL() (string, error)
	VerifyState(state string) error
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Email(ctx context.Context, token *oauth2.Token) (string, error)
}

// AuthService handles the sign-in flow: authorization-code exchange, the email
// allow list and session lifecycle. An email outside the allow list never gets
// a session.
type AuthService struct {
	flow       IdentityFlow
	sessions   SessionStore
	cfg        *config.Config
	sessionTTL time.Duration
}

// NewAuthService creates a new auth service instance
func NewAuthService(flow IdentityFlow, sessions SessionStore, cfg *config.Config) *AuthService {
	return &AuthService{
		flow:       flow,
		sessions:   sessions,
		cfg:        cfg,
		sessionTTL: helpers.ParseDuration(cfg.Auth.SessionTTL, 720*time.Hour),
	}
}

// SessionTTL returns the configured session lifetime.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// LoginURL returns the authorization URL that starts a sign-in.
func (s *AuthService) LoginURL() (string, error) {
	url, err := s.flow.AuthCodeURL()
	if err != nil {
		return "", fmt.Errorf("error building authorization URL: %w", err)
	}
	return url, nil
}

// HandleCallback completes the sign-in: verifies the state token, exchanges
// the code, resolves the email claim and enforces the allow list before any
// session exists.
func (s *AuthService) HandleCallback(ctx context.Context, state, code string) (*models.Session, error) {
	if err := s.flow.VerifyState(state); err != nil {
		return nil, err
	}

	token, err := s.flow.Exchange(ctx, code)
	if err != nil {
		logger.Error().Err(err).Msg("OAuth token exchange failed")
		return nil, apperrors.NewExternalServiceError("authentication with Google failed")
	}

	email, err := s.flow.Email(ctx, token)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to resolve email claim")
		return nil, apperrors.NewExternalServiceError("could not determine the signed-in email")
	}

	if !s.cfg.IsEmailAllowed(email) {
		logger.Warn().Str("email", email).Msg("Sign-in rejected, email not in allow list")
		return nil, apperrors.NewCustomError(apperrors.ErrEmailNotAllowed, fmt.Sprintf("access denied for %s", email))
	}

	tokenJSON, err := googleapi.MarshalToken(token)
	if err != nil {
		return nil, fmt.Errorf("error serializing credentials: %w", err)
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		Email:     email,
		TokenJSON: tokenJSON,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	logger.Info().Str("email", email).Msg("Sign-in successful")
	return session, nil
}

// Logout ends a session. A session that is already gone is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && err != apperrors.ErrSessionNotFound {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}
