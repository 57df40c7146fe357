package auth

import (
	"crypto/sha256"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/ekaya-inc/sqlassist/pkg/session"
)

// SessionName is the name of the browser session cookie.
const SessionName = "sqlassist-session"

// sessionKeySID is the cookie value carrying the server-side state key.
const sessionKeySID = "sid"

// Manager ties the signed session cookie to the server-side session state
// and enforces the password gate.
type Manager struct {
	cookies        *sessions.CookieStore
	states         *session.Store
	hashedPassword string
	logger         *zap.Logger
}

// NewManager creates the session manager.
//
// The secret signs session cookies; it is SHA-256 hashed to derive a
// 32-byte key, so any passphrase works. The cookie is a browser-session
// cookie (no MaxAge): closing the browser ends the session.
func NewManager(secret, hashedPassword string, secure bool, states *session.Store, logger *zap.Logger) *Manager {
	key := sha256.Sum256([]byte(secret))

	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0, // browser session
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}

	return &Manager{
		cookies:        store,
		states:         states,
		hashedPassword: hashedPassword,
		logger:         logger.Named("auth"),
	}
}

// SessionID returns the server-side state key for this browser, assigning
// and persisting a new one if the cookie has none yet.
func (m *Manager) SessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	// Get never fails fatally: a tampered cookie yields a fresh session.
	sess, _ := m.cookies.Get(r, SessionName)

	if sid, ok := sess.Values[sessionKeySID].(string); ok && sid != "" {
		return sid, nil
	}

	sid := uuid.NewString()
	sess.Values[sessionKeySID] = sid
	if err := sess.Save(r, w); err != nil {
		return "", err
	}
	return sid, nil
}

// Login checks the password and marks the session logged in on success.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, password string) error {
	sid, err := m.SessionID(w, r)
	if err != nil {
		return err
	}

	if err := VerifyPassword(password, m.hashedPassword); err != nil {
		return err
	}

	m.states.Update(sid, func(s *session.State) {
		s.LoggedIn = true
	})
	m.logger.Info("Login successful", zap.String("session_id", sid))
	return nil
}

// Logout clears the logged-in flag. Session state (history) survives until
// pruned, but is unreachable without logging in again.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) {
	sid, err := m.SessionID(w, r)
	if err != nil {
		return
	}
	m.states.Update(sid, func(s *session.State) {
		s.LoggedIn = false
	})
	m.logger.Info("Logout", zap.String("session_id", sid))
}

// IsLoggedIn reports whether this browser's session passed the gate.
func (m *Manager) IsLoggedIn(w http.ResponseWriter, r *http.Request) bool {
	sid, err := m.SessionID(w, r)
	if err != nil {
		return false
	}
	return m.states.Snapshot(sid).LoggedIn
}

// RequireLogin blocks every request on an unauthenticated session with a
// 401 JSON body. Everything behind the gate hangs off this middleware.
func (m *Manager) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.IsLoggedIn(w, r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"not_logged_in","message":"Enter your password to access the SQL assistant."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
