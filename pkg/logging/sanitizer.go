package logging

import (
	"regexp"
)

const (
	// MaxQueryLogLength caps how much of a SQL statement ends up in a log line.
	MaxQueryLogLength = 200
	// RedactedText replaces sensitive values in sanitized output.
	RedactedText = "[REDACTED]"
)

var (
	// password=xxx, pwd=xxx, pass=xxx inside key=value connection strings
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// api_key=xxx and similar long credential values
	apiKeyPattern = regexp.MustCompile(`(?i)(api[_-]?key|apikey|token)=[A-Za-z0-9-_]{16,}`)

	// user:pass@host inside URL-style connection strings
	connStringPattern = regexp.MustCompile(`://[^:/\s]+:[^@\s]+@[^/\s]+`)
)

// SanitizeConnectionString removes credentials from a connection string
// before it is logged.
func SanitizeConnectionString(connStr string) string {
	if connStr == "" {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(connStr, "${1}="+RedactedText)
	return connStringPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@"+RedactedText)
}

// SanitizeError strips credential material from error text. Database and
// HTTP client errors can echo back connection strings and API keys.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(err.Error(), "${1}="+RedactedText)
	sanitized = apiKeyPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)
	return connStringPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@"+RedactedText)
}

// SanitizeQuery truncates a SQL statement for logging.
func SanitizeQuery(query string) string {
	if len(query) > MaxQueryLogLength {
		return query[:MaxQueryLogLength] + "..."
	}
	return query
}
