package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/slgoiko/unirhub/internal/app/models"
	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
	"github.com/slgoiko/unirhub/internal/pkg/googleapi"
)

type stubSessionStore struct {
	sessions map[string]*models.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*models.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, session *models.Session) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *stubSessionStore) GetByID(_ context.Context, id string) (*models.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return session, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	if _, ok := s.sessions[id]; !ok {
		return apperrors.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func newAuthTestRouter(store *stubSessionStore) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	handlerRan := false

	m := NewAuthMiddleware(store, false)
	router := gin.New()
	router.GET("/protected", m.SessionAuth(), func(c *gin.Context) {
		handlerRan = true
		email := c.GetString(ContextEmailKey)
		token, _ := TokenFromContext(c)
		c.JSON(http.StatusOK, gin.H{"email": email, "hasToken": token != nil})
	})
	return router, &handlerRan
}

func validSession(t *testing.T, store *stubSessionStore, id string) *models.Session {
	t.Helper()
	tokenJSON, err := googleapi.MarshalToken(&oauth2.Token{AccessToken: "access-token"})
	require.NoError(t, err)

	session := &models.Session{
		ID:        id,
		Email:     "me@example.com",
		TokenJSON: tokenJSON,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Create(context.Background(), session))
	return session
}

func TestSessionAuthMissingCookie(t *testing.T) {
	router, handlerRan := newAuthTestRouter(newStubSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *handlerRan)
	assert.Contains(t, rec.Body.String(), LoginPath)
}

func TestSessionAuthBrowserRedirect(t *testing.T) {
	router, handlerRan := newAuthTestRouter(newStubSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
	assert.False(t, *handlerRan)
}

func TestSessionAuthValidSession(t *testing.T) {
	store := newStubSessionStore()
	validSession(t, store, "session-1")
	router, handlerRan := newAuthTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "session-1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *handlerRan)
	assert.Contains(t, rec.Body.String(), "me@example.com")
	assert.Contains(t, rec.Body.String(), `"hasToken":true`)
}

func TestSessionAuthExpiredSession(t *testing.T) {
	store := newStubSessionStore()
	session := validSession(t, store, "session-1")
	session.ExpiresAt = time.Now().Add(-time.Minute)
	router, handlerRan := newAuthTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "session-1"})
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *handlerRan)
	// the expired session is gone
	assert.Empty(t, store.sessions)
}

func TestSessionAuthBrokenCredentials(t *testing.T) {
	store := newStubSessionStore()
	session := validSession(t, store, "session-1")
	session.TokenJSON = []byte("not json")
	router, handlerRan := newAuthTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "session-1"})
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *handlerRan)
	assert.Empty(t, store.sessions)
}

func TestSessionAuthUnknownSession(t *testing.T) {
	router, handlerRan := newAuthTestRouter(newStubSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "no-such-session"})
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *handlerRan)
}
