package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/slgoiko/unirhub/internal/app/models/dto"
	"github.com/slgoiko/unirhub/internal/app/services"
	"github.com/slgoiko/unirhub/internal/pkg/googleapi"
	"github.com/slgoiko/unirhub/internal/pkg/logger"
)

// SessionCookieName is the cookie carrying the session identifier.
const SessionCookieName = "unirhub_session"

// LoginPath is the authentication entry point unauthenticated callers are
// sent to.
const LoginPath = "/api/v1/auth/login/start"

// Context keys set by SessionAuth.
const (
	ContextEmailKey     = "email"
	ContextSessionIDKey = "sessionID"
	contextTokenKey     = "googleToken"
)

// AuthMiddleware gates every non-exempt route behind a valid login session
type AuthMiddleware struct {
	sessions services.SessionStore
	secure   bool
}

// NewAuthMiddleware creates a new AuthMiddleware. secure controls the cookie
// Secure flag and should be true outside local development.
func NewAuthMiddleware(sessions services.SessionStore, secure bool) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		secure:   secure,
	}
}

// SetSessionCookie attaches the session cookie for a fresh login.
func (m *AuthMiddleware) SetSessionCookie(c *gin.Context, sessionID string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, sessionID, int(ttl.Seconds()), "/", "", m.secure, true)
}

// ClearSessionCookie drops the session cookie.
func (m *AuthMiddleware) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", m.secure, true)
}

// SessionAuth validates the caller's session before any handler runs. A
// missing, unknown or expired session clears the cookie and sends the caller
// to the authentication entry point without executing the handler.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			m.reject(c)
			return
		}

		session, err := m.sessions.GetByID(c.Request.Context(), sessionID)
		if err != nil {
			m.reject(c)
			return
		}

		if session.Expired(time.Now()) {
			if err := m.sessions.Delete(c.Request.Context(), session.ID); err != nil {
				logger.Warn().Err(err).Msg("Failed to delete expired session")
			}
			m.reject(c)
			return
		}

		token, err := googleapi.UnmarshalToken(session.TokenJSON)
		if err != nil {
			logger.Error().Err(err).Msg("Session holds unreadable credentials, clearing it")
			if err := m.sessions.Delete(c.Request.Context(), session.ID); err != nil {
				logger.Warn().Err(err).Msg("Failed to delete broken session")
			}
			m.reject(c)
			return
		}

		c.Set(ContextEmailKey, session.Email)
		c.Set(ContextSessionIDKey, session.ID)
		c.Set(contextTokenKey, token)

		c.Next()
	}
}

// reject clears any session cookie and redirects browsers to the login entry
// point; API clients get a 401 carrying the same location.
func (m *AuthMiddleware) reject(c *gin.Context) {
	m.ClearSessionCookie(c)

	if wantsJSON(c) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		errorDetail = errorDetail.WithDetails(gin.H{"login": LoginPath})
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}

func wantsJSON(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") || accept == "" || accept == "*/*"
}

// TokenFromContext returns the signed-in user's delegated credentials.
func TokenFromContext(c *gin.Context) (*oauth2.Token, bool) {
	value, exists := c.Get(contextTokenKey)
	if !exists {
		return nil, false
	}
	token, ok := value.(*oauth2.Token)
	return token, ok
}
