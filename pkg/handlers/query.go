package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/sqlassist/pkg/audit"
	"github.com/ekaya-inc/sqlassist/pkg/auth"
	"github.com/ekaya-inc/sqlassist/pkg/database"
	"github.com/ekaya-inc/sqlassist/pkg/llm"
	"github.com/ekaya-inc/sqlassist/pkg/logging"
	"github.com/ekaya-inc/sqlassist/pkg/prompts"
	"github.com/ekaya-inc/sqlassist/pkg/session"
	sqlutil "github.com/ekaya-inc/sqlassist/pkg/sql"
)

// QueryRunner abstracts query execution for testing.
type QueryRunner interface {
	ExecuteQuery(ctx context.Context, sqlQuery string) (*database.QueryResult, error)
}

// QueryHandler handles SQL generation and execution.
type QueryHandler struct {
	manager    *auth.Manager
	states     *session.Store
	llmClient  llm.Client
	runner     QueryRunner
	auditor    *audit.SecurityAuditor
	store      *audit.QueryStore // nil disables persisted auditing
	llmTimeout time.Duration
	logger     *zap.Logger
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(
	manager *auth.Manager,
	states *session.Store,
	llmClient llm.Client,
	runner QueryRunner,
	auditor *audit.SecurityAuditor,
	store *audit.QueryStore,
	llmTimeout time.Duration,
	logger *zap.Logger,
) *QueryHandler {
	return &QueryHandler{
		manager:    manager,
		states:     states,
		llmClient:  llmClient,
		runner:     runner,
		auditor:    auditor,
		store:      store,
		llmTimeout: llmTimeout,
		logger:     logger,
	}
}

// RegisterRoutes registers the query routes behind the login gate.
func (h *QueryHandler) RegisterRoutes(mux *http.ServeMux, gate func(http.Handler) http.Handler) {
	mux.Handle("POST /api/generate", gate(http.HandlerFunc(h.Generate)))
	mux.Handle("POST /api/execute", gate(http.HandlerFunc(h.Execute)))
	mux.Handle("POST /api/history/rerun", gate(http.HandlerFunc(h.Rerun)))
}

type generateRequest struct {
	Question string `json:"question"`
}

// GenerateResponse is the reply to a generation request.
type GenerateResponse struct {
	Question    string `json:"question"`
	SQL         string `json:"sql"`
	RawResponse string `json:"raw_response"`
	Warning     string `json:"warning,omitempty"`
}

// Generate handles POST /api/generate: question in, extracted SQL out.
func (h *QueryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid request body.")
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "empty_question", "Please enter a question.")
		return
	}

	sid, err := h.manager.SessionID(w, r)
	if err != nil {
		_ = ErrorResponse(w, http.StatusInternalServerError, "session_error", "Could not establish a session.")
		return
	}

	var warning string
	if hit := sqlutil.CheckUserInput("question", question); hit != nil {
		h.auditor.InjectionWarning(sid, hit.Field, hit.Fingerprint)
		warning = "The question looks like it contains SQL injection patterns. Review the generated statement carefully."
	}

	// New generation always clears the previous SQL, even if this request
	// goes on to fail.
	h.states.Update(sid, func(s *session.State) {
		s.BeginGeneration(question)
	})

	ctx := r.Context()
	if h.llmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.llmTimeout)
		defer cancel()
	}

	result, err := h.llmClient.GenerateResponse(ctx, question, prompts.SystemPrompt())
	if err != nil {
		h.logger.Error("SQL generation failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusBadGateway, "llm_failed",
			"Error calling the model: "+logging.SanitizeError(err))
		return
	}

	generatedSQL := sqlutil.ExtractFromResponse(result.Content)
	if generatedSQL == "" {
		_ = ErrorResponse(w, http.StatusUnprocessableEntity, "no_sql_found",
			"No SQL query found in the model response.")
		return
	}

	h.states.Update(sid, func(s *session.State) {
		s.GeneratedSQL = generatedSQL
		s.RawResponse = result.Content
	})

	_ = WriteJSON(w, http.StatusOK, GenerateResponse{
		Question:    question,
		SQL:         generatedSQL,
		RawResponse: result.Content,
		Warning:     warning,
	})
}

type executeRequest struct {
	SQL string `json:"sql"`
}

// ExecuteResponse is the reply to an execution request.
type ExecuteResponse struct {
	Columns  []database.ColumnInfo `json:"columns"`
	Rows     []map[string]any      `json:"rows"`
	RowCount int                   `json:"row_count"`
	Warning  string                `json:"warning,omitempty"`
}

// Execute handles POST /api/execute: runs the reviewed (possibly edited)
// SQL verbatim. Warnings are advisory; nothing is blocked.
func (h *QueryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := decodeJSON(r, &req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid request body.")
		return
	}

	validation := sqlutil.ValidateAndNormalize(req.SQL)
	if validation.NormalizedSQL == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "empty_sql", "No SQL statement to execute.")
		return
	}

	sid, err := h.manager.SessionID(w, r)
	if err != nil {
		_ = ErrorResponse(w, http.StatusInternalServerError, "session_error", "Could not establish a session.")
		return
	}

	var warning string
	if validation.Warning != nil {
		warning = "The statement contains multiple SQL statements; PostgreSQL may reject it."
	} else if kw := sqlutil.FirstKeyword(validation.NormalizedSQL); kw != "" && kw != "SELECT" && kw != "WITH" {
		warning = "This is a " + kw + " statement; it may modify data."
	}

	question := h.states.Snapshot(sid).CurrentQuestion

	result, execErr := h.runner.ExecuteQuery(r.Context(), validation.NormalizedSQL)
	if execErr != nil {
		h.auditor.QueryExecuted(sid, 0, false)
		if h.store != nil {
			h.store.Record(r.Context(), audit.QueryRecord{
				SessionID:    sid,
				Question:     question,
				SQL:          validation.NormalizedSQL,
				Success:      false,
				ErrorMessage: logging.SanitizeError(execErr),
			})
		}
		_ = ErrorResponse(w, http.StatusBadRequest, "query_failed",
			"Error executing query: "+logging.SanitizeError(execErr))
		return
	}

	h.states.Update(sid, func(s *session.State) {
		s.AppendHistory(session.HistoryEntry{
			Question:   question,
			SQL:        validation.NormalizedSQL,
			RowCount:   result.RowCount,
			ExecutedAt: time.Now(),
		})
	})

	h.auditor.QueryExecuted(sid, result.RowCount, true)
	if h.store != nil {
		h.store.Record(r.Context(), audit.QueryRecord{
			SessionID: sid,
			Question:  question,
			SQL:       validation.NormalizedSQL,
			RowCount:  result.RowCount,
			Success:   true,
		})
	}

	_ = WriteJSON(w, http.StatusOK, ExecuteResponse{
		Columns:  result.Columns,
		Rows:     result.Rows,
		RowCount: result.RowCount,
		Warning:  warning,
	})
}

type rerunRequest struct {
	// Index into the stored history list, 0 being the oldest entry.
	Index int `json:"index"`
}

// Rerun handles POST /api/history/rerun: re-executes a stored entry's SQL.
// A re-run shows results without appending a new history entry.
func (h *QueryHandler) Rerun(w http.ResponseWriter, r *http.Request) {
	var req rerunRequest
	if err := decodeJSON(r, &req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid request body.")
		return
	}

	sid, err := h.manager.SessionID(w, r)
	if err != nil {
		_ = ErrorResponse(w, http.StatusInternalServerError, "session_error", "Could not establish a session.")
		return
	}

	state := h.states.Snapshot(sid)
	if req.Index < 0 || req.Index >= len(state.History) {
		_ = ErrorResponse(w, http.StatusNotFound, "history_not_found", "History entry not found.")
		return
	}
	entry := state.History[req.Index]

	result, execErr := h.runner.ExecuteQuery(r.Context(), entry.SQL)
	if execErr != nil {
		h.auditor.QueryExecuted(sid, 0, false)
		_ = ErrorResponse(w, http.StatusBadRequest, "query_failed",
			"Error executing query: "+logging.SanitizeError(execErr))
		return
	}

	h.auditor.QueryExecuted(sid, result.RowCount, true)
	_ = WriteJSON(w, http.StatusOK, ExecuteResponse{
		Columns:  result.Columns,
		Rows:     result.Rows,
		RowCount: result.RowCount,
	})
}
