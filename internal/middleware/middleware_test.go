package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMiddleware_MintsCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := SessionMiddleware(time.Hour, true)(func(c echo.Context) error {
		seen = SessionID(c)
		return nil
	})
	require.NoError(t, h(c))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(SessionHeader))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, seen, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
}

func TestSessionMiddleware_KeepsExistingSession(t *testing.T) {
	existing := uuid.NewString()

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{name: "header", setup: func(r *http.Request) { r.Header.Set(SessionHeader, existing) }},
		{name: "cookie", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: existing}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			h := SessionMiddleware(time.Hour, false)(func(c echo.Context) error {
				seen = SessionID(c)
				return nil
			})
			require.NoError(t, h(c))

			assert.Equal(t, existing, seen)
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestSessionMiddleware_ReplacesForgedID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, "../../etc/passwd")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := SessionMiddleware(time.Hour, false)(func(c echo.Context) error {
		seen = SessionID(c)
		return nil
	})
	require.NoError(t, h(c))

	assert.NotEqual(t, "../../etc/passwd", seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &UserClaims{
		Name:             "Priya Sharma",
		Email:            "priya@example.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-42"},
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	h := AuthMiddleware()(func(c echo.Context) error {
		profile := ProfileFromContext(c)
		require.NotNil(t, profile)
		assert.Equal(t, "user-42", profile.UserID)
		assert.Equal(t, "Priya Sharma", profile.Name)
		assert.Equal(t, "priya@example.com", profile.Email)
		return nil
	})
	require.NoError(t, h(c))
}

func TestAuthMiddleware_Anonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	h := AuthMiddleware()(func(c echo.Context) error {
		assert.Nil(t, ProfileFromContext(c))
		return nil
	})
	require.NoError(t, h(c))
}
