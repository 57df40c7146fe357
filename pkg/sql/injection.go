package sql

import (
	libinjection "github.com/corazawaf/libinjection-go"
)

// InjectionCheckResult describes a SQL injection pattern detected in a
// user-supplied value.
type InjectionCheckResult struct {
	IsSQLi      bool   // true if an injection pattern was detected
	Fingerprint string // libinjection fingerprint of the detected pattern
	Field       string // which input field was flagged
	Value       string // the value that was checked
}

// CheckUserInput screens a free-text input field (such as the
// natural-language question) for SQL injection patterns with libinjection.
//
// The check is advisory: this tool executes whatever SQL the operator
// approves, so a hit produces a warning and a security audit event rather
// than a rejection.
//
// Returns nil when no injection pattern is detected.
func CheckUserInput(field, value string) *InjectionCheckResult {
	isSQLi, fingerprint := libinjection.IsSQLi(value)
	if !isSQLi {
		return nil
	}
	return &InjectionCheckResult{
		IsSQLi:      true,
		Fingerprint: string(fingerprint),
		Field:       field,
		Value:       value,
	}
}
