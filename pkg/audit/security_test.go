package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedAuditor() (*SecurityAuditor, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewSecurityAuditor(zap.New(core)), logs
}

func TestLoginAttempt_Success(t *testing.T) {
	auditor, logs := newObservedAuditor()

	auditor.LoginAttempt("sid-1", "10.0.0.5:4321", true)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, string(EventLoginSuccess), fields["event_type"])
	assert.Equal(t, "sid-1", fields["session_id"])
	assert.Equal(t, "10.0.0.5:4321", fields["client_ip"])
	assert.Equal(t, true, fields["success"])
}

func TestLoginAttempt_FailureWarns(t *testing.T) {
	auditor, logs := newObservedAuditor()

	auditor.LoginAttempt("sid-1", "10.0.0.5:4321", false)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, string(EventLoginFailure), entries[0].ContextMap()["event_type"])
}

func TestInjectionWarning(t *testing.T) {
	auditor, logs := newObservedAuditor()

	auditor.InjectionWarning("sid-2", "question", "s&1c")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, string(EventInjectionWarning), fields["event_type"])
	assert.Equal(t, "question", fields["field"])
	assert.Equal(t, "s&1c", fields["fingerprint"])
}

func TestQueryExecuted(t *testing.T) {
	auditor, logs := newObservedAuditor()

	auditor.QueryExecuted("sid-3", 12, true)

	entries := logs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, string(EventQueryExecution), fields["event_type"])
	assert.Equal(t, int64(12), fields["row_count"])
	assert.Equal(t, true, fields["success"])
}
