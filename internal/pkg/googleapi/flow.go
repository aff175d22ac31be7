package googleapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/slgoiko/unirhub/internal/config"
	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
	"github.com/slgoiko/unirhub/internal/pkg/helpers"
)

// Scopes requested on sign-in: calendar sync, per-file Drive access and the
// email claim used by the allow list.
var Scopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/drive.file",
	"https://www.googleapis.com/auth/userinfo.email",
	"openid",
}

// stateTokenTTL bounds how long a login attempt may sit between redirect and callback.
const stateTokenTTL = 5 * time.Minute

// Flow drives the authorization-code exchange and builds per-user service
// clients. It implements Provider.
type Flow struct {
	oauth       *oauth2.Config
	stateSecret []byte
	timeout     time.Duration
}

// NewFlow builds a Flow from configuration. A full client-config JSON takes
// precedence over the discrete client id/secret fields.
func NewFlow(cfg *config.Config) (*Flow, error) {
	var oc *oauth2.Config

	if cfg.Google.CredentialsJSON != "" {
		parsed, err := google.ConfigFromJSON([]byte(cfg.Google.CredentialsJSON), Scopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse google credentials JSON: %w", err)
		}
		oc = parsed
	} else {
		oc = &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			Scopes:       Scopes,
			Endpoint:     google.Endpoint,
		}
	}
	oc.RedirectURL = cfg.Google.RedirectURL

	return &Flow{
		oauth:       oc,
		stateSecret: []byte(cfg.Auth.SessionSecret),
		timeout:     helpers.ParseDuration(cfg.Google.Timeout, 30*time.Second),
	}, nil
}

// AuthCodeURL returns the authorization URL carrying a signed state token.
func (f *Flow) AuthCodeURL() (string, error) {
	state, err := f.signState()
	if err != nil {
		return "", fmt.Errorf("failed to sign state token: %w", err)
	}
	return f.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	), nil
}

// signState issues a short-lived signed token binding the callback to a login
// started by this server.
func (f *Flow) signState() (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(stateTokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(f.stateSecret)
}

// VerifyState validates the state token returned by the callback.
func (f *Flow) VerifyState(state string) error {
	token, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return f.stateSecret, nil
	})
	if err != nil || !token.Valid {
		return apperrors.ErrInvalidStateToken
	}
	return nil
}

// Exchange swaps the authorization code for the user's credential set.
func (f *Flow) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	token, err := f.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	return token, nil
}

// Email resolves the email claim for the given credentials.
func (f *Flow) Email(ctx context.Context, token *oauth2.Token) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	svc, err := oauth2api.NewService(ctx, option.WithHTTPClient(f.oauth.Client(ctx, token)))
	if err != nil {
		return "", fmt.Errorf("failed to build userinfo client: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	return info.Email, nil
}

// Drive builds a Drive client scoped to the given credentials.
func (f *Flow) Drive(ctx context.Context, token *oauth2.Token) (Drive, error) {
	return newDriveClient(ctx, f.oauth.Client(ctx, token), f.timeout)
}

// Calendar builds a Calendar client scoped to the given credentials.
func (f *Flow) Calendar(ctx context.Context, token *oauth2.Token) (Calendar, error) {
	return newCalendarClient(ctx, f.oauth.Client(ctx, token), f.timeout)
}

// MarshalToken serializes a credential set for session storage.
func MarshalToken(token *oauth2.Token) ([]byte, error) {
	return json.Marshal(token)
}

// UnmarshalToken restores a credential set stored in a session.
func UnmarshalToken(data []byte) (*oauth2.Token, error) {
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to decode stored credentials: %w", err)
	}
	return &token, nil
}
