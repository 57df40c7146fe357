// Package audit records security-relevant events: failed logins, injection
// warnings, and query executions. Events go to the structured log for SIEM
// consumption; executed queries are additionally persisted by QueryStore.
package audit

import (
	"time"

	"go.uber.org/zap"
)

// EventType categorizes security events for filtering and alerting.
type EventType string

const (
	// EventLoginFailure is logged when a password check fails.
	EventLoginFailure EventType = "login_failure"
	// EventLoginSuccess is logged when the gate is passed.
	EventLoginSuccess EventType = "login_success"
	// EventInjectionWarning is logged when libinjection flags an input.
	EventInjectionWarning EventType = "sql_injection_warning"
	// EventQueryExecution is logged for every query execution attempt.
	EventQueryExecution EventType = "query_execution"
)

// SecurityAuditor writes security events to a dedicated logger namespace.
type SecurityAuditor struct {
	logger *zap.Logger
}

// NewSecurityAuditor creates an auditor logging under "security_audit".
func NewSecurityAuditor(logger *zap.Logger) *SecurityAuditor {
	return &SecurityAuditor{
		logger: logger.Named("security_audit"),
	}
}

// LoginAttempt records the outcome of a password check.
func (a *SecurityAuditor) LoginAttempt(sessionID, clientIP string, success bool) {
	eventType := EventLoginSuccess
	log := a.logger.Info
	if !success {
		eventType = EventLoginFailure
		log = a.logger.Warn
	}
	log("Login attempt",
		zap.String("event_type", string(eventType)),
		zap.String("session_id", sessionID),
		zap.String("client_ip", clientIP),
		zap.Bool("success", success),
		zap.Time("timestamp", time.Now()))
}

// InjectionWarning records a libinjection hit on a user input. Advisory:
// the request proceeds, but the event is worth alerting on.
func (a *SecurityAuditor) InjectionWarning(sessionID, field, fingerprint string) {
	a.logger.Warn("Injection pattern in user input",
		zap.String("event_type", string(EventInjectionWarning)),
		zap.String("session_id", sessionID),
		zap.String("field", field),
		zap.String("fingerprint", fingerprint),
		zap.Time("timestamp", time.Now()))
}

// QueryExecuted records a query execution attempt.
func (a *SecurityAuditor) QueryExecuted(sessionID string, rowCount int, success bool) {
	a.logger.Info("Query executed",
		zap.String("event_type", string(EventQueryExecution)),
		zap.String("session_id", sessionID),
		zap.Int("row_count", rowCount),
		zap.Bool("success", success),
		zap.Time("timestamp", time.Now()))
}
