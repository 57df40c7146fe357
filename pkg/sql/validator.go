package sql

import (
	"errors"
	"strings"
)

// ErrMultipleStatements indicates the query contains more than one SQL
// statement. Surfaced as an advisory warning, never a hard block: the user
// reviews and edits the statement before running it.
var ErrMultipleStatements = errors.New("statement contains multiple SQL statements")

// ValidationResult contains the normalized SQL and any advisory error.
type ValidationResult struct {
	NormalizedSQL string
	Warning       error
}

// ValidateAndNormalize strips a trailing semicolon and flags statements
// that still contain semicolons outside string literals.
func ValidateAndNormalize(sqlQuery string) ValidationResult {
	sqlQuery = strings.TrimSpace(sqlQuery)
	if sqlQuery == "" {
		return ValidationResult{}
	}

	normalized := stripTrailingSemicolon(sqlQuery)

	if hasSemicolonOutsideStrings(normalized) {
		return ValidationResult{NormalizedSQL: normalized, Warning: ErrMultipleStatements}
	}

	return ValidationResult{NormalizedSQL: normalized}
}

// hasSemicolonOutsideStrings reports whether the SQL contains a semicolon
// outside of single- or double-quoted literals. The trailing semicolon has
// already been stripped, so any hit means multiple statements.
func hasSemicolonOutsideStrings(sqlQuery string) bool {
	const (
		stateNormal = iota
		stateSingleQuote
		stateDoubleQuote
	)

	state := stateNormal
	prev := rune(0)

	for _, ch := range sqlQuery {
		switch state {
		case stateNormal:
			switch ch {
			case ';':
				return true
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			}
		case stateSingleQuote:
			// Handles both backslash escape (\') and SQL doubled quote ('').
			// A doubled quote exits and immediately re-enters the string,
			// which keeps the scan correct.
			if ch == '\'' && prev != '\\' {
				state = stateNormal
			}
		case stateDoubleQuote:
			if ch == '"' && prev != '\\' {
				state = stateNormal
			}
		}
		prev = ch
	}

	return false
}

func stripTrailingSemicolon(sqlQuery string) string {
	sqlQuery = strings.TrimRight(sqlQuery, " \t\n\r")
	if strings.HasSuffix(sqlQuery, ";") {
		sqlQuery = strings.TrimRight(strings.TrimSuffix(sqlQuery, ";"), " \t\n\r")
	}
	return sqlQuery
}
