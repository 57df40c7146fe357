package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ekaya-inc/sqlassist/pkg/audit"
	"github.com/ekaya-inc/sqlassist/pkg/auth"
	"github.com/ekaya-inc/sqlassist/pkg/database"
	"github.com/ekaya-inc/sqlassist/pkg/session"
)

const testPassword = "test-pass"

// mockRunner is a QueryRunner backed by a function.
type mockRunner struct {
	executeFunc func(ctx context.Context, sqlQuery string) (*database.QueryResult, error)
	calls       []string
}

func (m *mockRunner) ExecuteQuery(ctx context.Context, sqlQuery string) (*database.QueryResult, error) {
	m.calls = append(m.calls, sqlQuery)
	if m.executeFunc != nil {
		return m.executeFunc(ctx, sqlQuery)
	}
	return &database.QueryResult{
		Columns:  []database.ColumnInfo{{Name: "n", Type: "INT4"}},
		Rows:     []map[string]any{{"n": 1}},
		RowCount: 1,
	}, nil
}

// testEnv bundles the pieces every handler test needs.
type testEnv struct {
	manager *auth.Manager
	states  *session.Store
	auditor *audit.SecurityAuditor
	cookies []*http.Cookie // a logged-in browser's cookie jar
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	states := session.NewStore(zap.NewNop())
	manager := auth.NewManager("test-secret", hash, false, states, zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, manager.Login(rec, req, testPassword))

	return &testEnv{
		manager: manager,
		states:  states,
		auditor: audit.NewSecurityAuditor(zap.NewNop()),
		cookies: rec.Result().Cookies(),
	}
}

// jsonRequest builds a request carrying the env's cookie jar.
func (e *testEnv) jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	return req
}

// sid resolves the session ID behind the env's cookie jar.
func (e *testEnv) sid(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	req := e.jsonRequest(http.MethodGet, "/", "")
	id, err := e.manager.SessionID(rec, req)
	require.NoError(t, err)
	return id
}
