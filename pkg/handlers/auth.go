package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ekaya-inc/sqlassist/pkg/apperrors"
	"github.com/ekaya-inc/sqlassist/pkg/audit"
	"github.com/ekaya-inc/sqlassist/pkg/auth"
	"github.com/ekaya-inc/sqlassist/pkg/session"
)

// AuthHandler handles the password gate and session introspection.
type AuthHandler struct {
	manager *auth.Manager
	states  *session.Store
	auditor *audit.SecurityAuditor
	logger  *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(manager *auth.Manager, states *session.Store, auditor *audit.SecurityAuditor, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		manager: manager,
		states:  states,
		auditor: auditor,
		logger:  logger,
	}
}

// RegisterRoutes registers the public auth routes. None of these sit
// behind the login gate: the page needs them to render the login screen.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/login", h.Login)
	mux.HandleFunc("POST /api/logout", h.Logout)
	mux.HandleFunc("GET /api/session", h.Session)
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/login. A wrong password returns 401 with an
// inline message; the session stays logged out.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid request body.")
		return
	}
	if req.Password == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "empty_password", "Please enter a password.")
		return
	}

	sid, _ := h.manager.SessionID(w, r)

	err := h.manager.Login(w, r, req.Password)
	h.auditor.LoginAttempt(sid, r.RemoteAddr, err == nil)

	if errors.Is(err, apperrors.ErrInvalidPassword) {
		_ = ErrorResponse(w, http.StatusUnauthorized, "invalid_password", "Incorrect password.")
		return
	}
	if err != nil {
		h.logger.Error("Login failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "auth_error", "Authentication error: "+err.Error())
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "logged_in": true})
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.manager.Logout(w, r)
	_ = WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "logged_in": false})
}

// SessionResponse is the page's view of its server-side state, used to
// re-render after a reload.
type SessionResponse struct {
	LoggedIn        bool                   `json:"logged_in"`
	CurrentQuestion string                 `json:"current_question"`
	GeneratedSQL    string                 `json:"generated_sql"`
	RawResponse     string                 `json:"raw_response"`
	HistoryCount    int                    `json:"history_count"`
	RecentHistory   []session.HistoryEntry `json:"recent_history"`
}

// Session handles GET /api/session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sid, err := h.manager.SessionID(w, r)
	if err != nil {
		_ = ErrorResponse(w, http.StatusInternalServerError, "session_error", "Could not establish a session.")
		return
	}

	state := h.states.Snapshot(sid)
	resp := SessionResponse{
		LoggedIn:      state.LoggedIn,
		RecentHistory: []session.HistoryEntry{},
	}
	// Everything beyond the flag is gated: an unauthenticated browser
	// learns nothing about prior activity.
	if state.LoggedIn {
		resp.CurrentQuestion = state.CurrentQuestion
		resp.GeneratedSQL = state.GeneratedSQL
		resp.RawResponse = state.RawResponse
		resp.HistoryCount = len(state.History)
		resp.RecentHistory = state.RecentHistory()
	}

	_ = WriteJSON(w, http.StatusOK, resp)
}
