package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRouter(s *Sessions) *gin.Engine {
	r := gin.New()
	r.Use(s.Middleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, ProfileID(c))
	})
	return r
}

func profileCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == ProfileCookie {
			return c
		}
	}
	return nil
}

func TestSessionsIssueAndParse(t *testing.T) {
	s := NewSessions("secret", false)

	token, err := s.Issue("profile-1")
	require.NoError(t, err)

	profile, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "profile-1", profile)

	_, err = NewSessions("other-secret", false).Parse(token)
	assert.Error(t, err)

	_, err = s.Parse("not-a-jwt")
	assert.Error(t, err)
}

func TestSessionsRejectExpired(t *testing.T) {
	s := NewSessions("secret", false)
	s.now = func() time.Time { return time.Now().Add(-2 * sessionTTL) }
	token, err := s.Issue("old")
	require.NoError(t, err)

	_, err = NewSessions("secret", false).Parse(token)
	assert.Error(t, err)
}

func TestSessionMiddlewareStartsProfile(t *testing.T) {
	r := sessionRouter(NewSessions("secret", true))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	cookie := profileCookie(t, w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.NotEmpty(t, w.Body.String())

	// the same cookie keeps the same profile and is not reissued
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	assert.Equal(t, w.Body.String(), w2.Body.String())
	assert.Nil(t, profileCookie(t, w2))
}

func TestSessionMiddlewareReplacesForgedCookie(t *testing.T) {
	r := sessionRouter(NewSessions("secret", false))
	forged, err := NewSessions("attacker", false).Issue("victim")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ProfileCookie, Value: forged})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "victim", w.Body.String())
	assert.NotNil(t, profileCookie(t, w))
}
