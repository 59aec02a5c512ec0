package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_SetsSessionCookie(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPost, "/api/users", "", gin.H{"name": "Ann", "email": "ann@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "hash")

	w = s.do(http.MethodPost, "/api/session", "", gin.H{"email": "ann@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	resp := parseJSONResponse(t, w)
	token := resp["sessionId"].(string)
	assert.NotEmpty(t, resp["expires_at"])

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_id", cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
}

func TestLogin_InvalidCredentialsIndistinguishable(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "ann@x.com")

	wrongPassword := s.do(http.MethodPost, "/api/session", "", gin.H{"email": "ann@x.com", "password": "nope123"})
	unknownEmail := s.do(http.MethodPost, "/api/session", "", gin.H{"email": "bob@x.com", "password": "secret1"})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, "invalid_credentials", parseJSONResponse(t, wrongPassword)["error_type"])
}

func TestLogin_BadBody(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPost, "/api/session", "", gin.H{"email": "ann@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", parseJSONResponse(t, w)["error_type"])
}

func TestLogout_RevokesSession(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "ann@x.com")

	w := s.do(http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/session/logout", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)

	w = s.do(http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_session", parseJSONResponse(t, w)["error_type"])
}

func TestProtectedRoute_WithoutToken(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/subjects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthenticated", parseJSONResponse(t, w)["error_type"])
}

func TestSessions_ListAndLogoutAll(t *testing.T) {
	s := newTestServer(t)
	first := s.login(t, "ann@x.com")

	w := s.do(http.MethodPost, "/api/session", "", gin.H{"email": "ann@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)
	second := parseJSONResponse(t, w)["sessionId"].(string)

	w = s.do(http.MethodGet, "/api/session", first, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sessions := parseJSONList(t, w)
	require.Len(t, sessions, 2)

	current := 0
	for _, sess := range sessions {
		if sess["current"] == true {
			current++
			assert.Equal(t, first, sess["id"])
		}
	}
	assert.Equal(t, 1, current)

	w = s.do(http.MethodPost, "/api/session/logout-all", second, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), parseJSONResponse(t, w)["revoked"])

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/session", first, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/session", second, nil).Code)
}
