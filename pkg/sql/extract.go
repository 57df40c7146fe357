// Package sql provides heuristics for recovering, normalizing, and
// screening SQL statements produced by a language model.
package sql

import (
	"regexp"
	"strings"
)

var (
	// Fenced block explicitly tagged as SQL: ```sql ... ```
	fencedSQLPattern = regexp.MustCompile("(?is)```sql\\s*(.*?)\\s*```")

	// Any fenced code block: ``` ... ```
	fencedCodePattern = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")

	// First SQL keyword in unfenced prose.
	sqlKeywordPattern = regexp.MustCompile(`(?i)\b(SELECT|WITH|CREATE|INSERT|UPDATE|DELETE)\b`)
)

// ExtractFromResponse pulls a best-effort SQL statement out of free-form
// model output. The fallbacks are applied in order:
//
//  1. the first fenced block tagged as SQL
//  2. the first generic fenced code block
//  3. the substring starting at the first SQL keyword
//  4. the entire input, trimmed
//
// Returns the empty string only for empty (or whitespace-only) input. The
// result is an opaque string; no parsing or validation happens here.
func ExtractFromResponse(responseText string) string {
	if strings.TrimSpace(responseText) == "" {
		return ""
	}

	if m := fencedSQLPattern.FindStringSubmatch(responseText); m != nil {
		return strings.TrimSpace(m[1])
	}

	if m := fencedCodePattern.FindStringSubmatch(responseText); m != nil {
		return strings.TrimSpace(m[1])
	}

	if loc := sqlKeywordPattern.FindStringIndex(responseText); loc != nil {
		return strings.TrimSpace(responseText[loc[0]:])
	}

	return strings.TrimSpace(responseText)
}

// FirstKeyword returns the leading SQL keyword of a statement, uppercased,
// or the empty string if none is found. Used to warn about statements that
// are not plain SELECTs.
func FirstKeyword(sqlQuery string) string {
	m := sqlKeywordPattern.FindString(strings.TrimSpace(sqlQuery))
	return strings.ToUpper(m)
}
