package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepwise/interview-assistant/pkg/jwt"
)

func authFixture() (*Auth, *jwt.Manager) {
	manager := jwt.NewManager("test-secret", time.Hour)
	return NewAuth(manager), manager
}

func performRequest(t *testing.T, auth *Auth, setup func(*http.Request)) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	handler := auth.Authenticate(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, captured
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	auth, manager := authFixture()
	userID := uuid.New()
	token, err := manager.Generate(userID, "c@example.com", "candidate")
	require.NoError(t, err)

	rec, captured := performRequest(t, auth, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	gotID, ok := UserID(captured)
	require.True(t, ok)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "candidate", captured.Get(UserRoleContextKey))
}

func TestAuthenticate_CookieFallback(t *testing.T) {
	auth, manager := authFixture()
	token, err := manager.Generate(uuid.New(), "c@example.com", "organizer")
	require.NoError(t, err)

	rec, _ := performRequest(t, auth, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	auth, _ := authFixture()

	rec, captured := performRequest(t, auth, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured, "handler must not run without a token")
}

func TestAuthenticate_BadToken(t *testing.T) {
	auth, _ := authFixture()

	rec, captured := performRequest(t, auth, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer garbage")
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}
