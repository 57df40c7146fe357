package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError_Nil(t *testing.T) {
	assert.Nil(t, ClassifyError(nil))
}

func TestClassifyError_Auth(t *testing.T) {
	err := ClassifyError(errors.New("error, status code: 401, message: invalid api key"))
	assert.Equal(t, ErrorTypeAuth, err.Type)
	assert.False(t, err.IsRetryable())
}

func TestClassifyError_RateLimit(t *testing.T) {
	err := ClassifyError(errors.New("error, status code: 429, message: rate limit exceeded"))
	assert.Equal(t, ErrorTypeRateLimit, err.Type)
	assert.True(t, err.IsRetryable())
}

func TestClassifyError_Timeout(t *testing.T) {
	err := ClassifyError(fmt.Errorf("request: %w", errors.New("context deadline exceeded")))
	assert.Equal(t, ErrorTypeEndpoint, err.Type)
	assert.True(t, err.IsRetryable())
}

func TestClassifyError_ConnectionRefused(t *testing.T) {
	err := ClassifyError(errors.New("dial tcp 127.0.0.1:11434: connection refused"))
	assert.Equal(t, ErrorTypeEndpoint, err.Type)
	assert.True(t, err.IsRetryable())
}

func TestClassifyError_ModelNotFound(t *testing.T) {
	err := ClassifyError(errors.New("the model 'gpt-99' does not exist"))
	assert.Equal(t, ErrorTypeModel, err.Type)
	assert.False(t, err.IsRetryable())
}

func TestClassifyError_ServerError(t *testing.T) {
	err := ClassifyError(errors.New("error, status code: 503, message: service unavailable"))
	assert.Equal(t, ErrorTypeEndpoint, err.Type)
	assert.True(t, err.IsRetryable())
}

func TestClassifyError_Unknown(t *testing.T) {
	err := ClassifyError(errors.New("something odd happened"))
	assert.Equal(t, ErrorTypeUnknown, err.Type)
	assert.False(t, err.IsRetryable())
}

func TestClassifyError_PassesThroughStructuredError(t *testing.T) {
	original := NewError(ErrorTypeAuth, "authentication failed", false, nil)
	wrapped := fmt.Errorf("generate: %w", original)

	classified := ClassifyError(wrapped)
	assert.Same(t, original, classified)
}

func TestError_MessageFormat(t *testing.T) {
	err := &Error{Type: ErrorTypeAuth, Message: "authentication failed", StatusCode: 401}
	require.Contains(t, err.Error(), "auth")
	require.Contains(t, err.Error(), "HTTP 401")
	require.Contains(t, err.Error(), "authentication failed")
}
