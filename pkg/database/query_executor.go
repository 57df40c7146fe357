package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/sqlassist/pkg/logging"
)

// ColumnInfo describes one column of a query result.
type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// QueryResult is the tabular result of a query.
type QueryResult struct {
	Columns  []ColumnInfo     `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"row_count"`
}

// Executor runs SQL statements against the managed connection.
type Executor struct {
	manager *Manager
	timeout time.Duration
	logger  *zap.Logger
}

// NewExecutor creates a query executor. timeout bounds each execution.
func NewExecutor(manager *Manager, timeout time.Duration, logger *zap.Logger) *Executor {
	return &Executor{
		manager: manager,
		timeout: timeout,
		logger:  logger.Named("executor"),
	}
}

// ExecuteQuery runs the statement verbatim and collects the result rows.
// The statement is whatever the user approved in the review step; there is
// no parameterization or allow-listing here.
func (e *Executor) ExecuteQuery(ctx context.Context, sqlQuery string) (*QueryResult, error) {
	pool, err := e.manager.Pool(ctx)
	if err != nil {
		return nil, err
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := pool.Query(ctx, sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	columns := make([]ColumnInfo, len(fieldDescs))
	for i, fd := range fieldDescs {
		columns[i] = ColumnInfo{
			Name: string(fd.Name),
			Type: pgTypeNameFromOID(fd.DataTypeOID),
		}
	}

	resultRows := make([]map[string]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}

		rowMap := make(map[string]any, len(columns))
		for i, col := range columns {
			rowMap[col.Name] = values[i]
		}
		resultRows = append(resultRows, rowMap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	e.logger.Debug("Query executed",
		zap.String("query", logging.SanitizeQuery(sqlQuery)),
		zap.Int("rows", len(resultRows)),
		zap.Duration("elapsed", time.Since(start)))

	return &QueryResult{
		Columns:  columns,
		Rows:     resultRows,
		RowCount: len(resultRows),
	}, nil
}

// pgTypeNameFromOID maps common PostgreSQL type OIDs to readable names.
// Unknown OIDs fall back to the numeric OID.
func pgTypeNameFromOID(oid uint32) string {
	switch oid {
	case 16:
		return "BOOL"
	case 17:
		return "BYTEA"
	case 20:
		return "INT8"
	case 21:
		return "INT2"
	case 23:
		return "INT4"
	case 25:
		return "TEXT"
	case 114:
		return "JSON"
	case 700:
		return "FLOAT4"
	case 701:
		return "FLOAT8"
	case 1042:
		return "BPCHAR"
	case 1043:
		return "VARCHAR"
	case 1082:
		return "DATE"
	case 1083:
		return "TIME"
	case 1114:
		return "TIMESTAMP"
	case 1184:
		return "TIMESTAMPTZ"
	case 1186:
		return "INTERVAL"
	case 1700:
		return "NUMERIC"
	case 2950:
		return "UUID"
	case 3802:
		return "JSONB"
	default:
		return fmt.Sprintf("OID(%d)", oid)
	}
}
