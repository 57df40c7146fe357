package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckUserInput_CleanQuestion(t *testing.T) {
	result := CheckUserInput("question", "How many patients do we have by gender?")
	assert.Nil(t, result)
}

func TestCheckUserInput_InjectionAttempt(t *testing.T) {
	result := CheckUserInput("question", "' OR 1=1; DROP TABLE patients--")
	require.NotNil(t, result)
	assert.True(t, result.IsSQLi)
	assert.NotEmpty(t, result.Fingerprint)
	assert.Equal(t, "question", result.Field)
}

func TestCheckUserInput_EmptyValue(t *testing.T) {
	assert.Nil(t, CheckUserInput("question", ""))
}
