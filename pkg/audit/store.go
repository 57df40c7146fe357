package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ekaya-inc/sqlassist/pkg/database"
	"github.com/ekaya-inc/sqlassist/pkg/logging"
)

// QueryRecord is one persisted row of the query audit log. Unlike the
// session history, which dies with the browser session, these rows survive
// restarts.
type QueryRecord struct {
	ID           uuid.UUID `json:"id"`
	SessionID    string    `json:"session_id"`
	Question     string    `json:"question"`
	SQL          string    `json:"sql"`
	RowCount     int       `json:"row_count"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message"`
	CreatedAt    time.Time `json:"created_at"`
}

// QueryStore persists query audit records.
type QueryStore struct {
	manager *database.Manager
	logger  *zap.Logger
}

// NewQueryStore creates a query audit store backed by the shared database.
func NewQueryStore(manager *database.Manager, logger *zap.Logger) *QueryStore {
	return &QueryStore{
		manager: manager,
		logger:  logger.Named("audit_store"),
	}
}

// Record inserts an audit row. Failures are logged, never propagated: the
// audit trail must not break query execution.
func (s *QueryStore) Record(ctx context.Context, rec QueryRecord) {
	pool, err := s.manager.Pool(ctx)
	if err != nil {
		s.logger.Warn("Audit record skipped, database unavailable",
			zap.String("error", logging.SanitizeError(err)))
		return
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO query_audit_log (id, session_id, question, sql_text, row_count, success, error_message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.SessionID, rec.Question, rec.SQL, rec.RowCount, rec.Success, rec.ErrorMessage)
	if err != nil {
		s.logger.Warn("Failed to write audit record",
			zap.String("error", logging.SanitizeError(err)))
	}
}

// Recent returns the newest audit rows, most recent first.
func (s *QueryStore) Recent(ctx context.Context, limit int) ([]QueryRecord, error) {
	pool, err := s.manager.Pool(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx,
		`SELECT id, session_id, question, sql_text, row_count, success, error_message, created_at
		 FROM query_audit_log
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []QueryRecord
	for rows.Next() {
		var rec QueryRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Question, &rec.SQL,
			&rec.RowCount, &rec.Success, &rec.ErrorMessage, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
