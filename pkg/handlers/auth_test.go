package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ekaya-inc/sqlassist/pkg/session"
)

func newAuthHandler(env *testEnv) *AuthHandler {
	return NewAuthHandler(env.manager, env.states, env.auditor, zap.NewNop())
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	rec := httptest.NewRecorder()
	req := env.jsonRequest(http.MethodPost, "/api/login", `{"password":"test-pass"}`)
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["logged_in"])
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	rec := httptest.NewRecorder()
	req := env.jsonRequest(http.MethodPost, "/api/login", `{"password":"nope"}`)
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_password")
}

func TestLogin_EmptyPassword(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	rec := httptest.NewRecorder()
	req := env.jsonRequest(http.MethodPost, "/api/login", `{"password":""}`)
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty_password")
}

func TestLogout_ClearsLoggedIn(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)
	sid := env.sid(t)

	rec := httptest.NewRecorder()
	h.Logout(rec, env.jsonRequest(http.MethodPost, "/api/logout", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, env.states.Snapshot(sid).LoggedIn)
}

func TestSession_LoggedInStateVisible(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	env.states.Update(env.sid(t), func(s *session.State) {
		s.CurrentQuestion = "How many patients are there?"
		s.GeneratedSQL = "SELECT COUNT(*) FROM patients"
		s.AppendHistory(session.HistoryEntry{Question: "q", SQL: "SELECT 1", RowCount: 1})
	})

	rec := httptest.NewRecorder()
	h.Session(rec, env.jsonRequest(http.MethodGet, "/api/session", ""))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.LoggedIn)
	assert.Equal(t, "How many patients are there?", resp.CurrentQuestion)
	assert.Equal(t, "SELECT COUNT(*) FROM patients", resp.GeneratedSQL)
	assert.Equal(t, 1, resp.HistoryCount)
	assert.Len(t, resp.RecentHistory, 1)
}

func TestSession_LoggedOutHidesState(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	// Seed state, then log out: the browser must learn nothing on reload.
	env.states.Update(env.sid(t), func(s *session.State) {
		s.CurrentQuestion = "secret question"
		s.GeneratedSQL = "SELECT secret"
		s.AppendHistory(session.HistoryEntry{Question: "q", SQL: "SELECT 1"})
		s.LoggedIn = false
	})

	rec := httptest.NewRecorder()
	h.Session(rec, env.jsonRequest(http.MethodGet, "/api/session", ""))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.LoggedIn)
	assert.Empty(t, resp.CurrentQuestion)
	assert.Empty(t, resp.GeneratedSQL)
	assert.Zero(t, resp.HistoryCount)
	assert.Empty(t, resp.RecentHistory)
}

func TestRequireLogin_BlocksAnonymous(t *testing.T) {
	env := newTestEnv(t)

	gated := env.manager.RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// No cookies at all: a fresh browser.
	rec := httptest.NewRecorder()
	gated.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_logged_in")
}

func TestRequireLogin_PassesAuthenticated(t *testing.T) {
	env := newTestEnv(t)

	gated := env.manager.RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	gated.ServeHTTP(rec, env.jsonRequest(http.MethodPost, "/api/generate", ""))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
