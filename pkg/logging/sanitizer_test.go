package logging

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeConnectionString_KeyValueForm(t *testing.T) {
	sanitized := SanitizeConnectionString("host=db port=5432 user=app password=s3cret dbname=reports")
	assert.NotContains(t, sanitized, "s3cret")
	assert.Contains(t, sanitized, RedactedText)
}

func TestSanitizeConnectionString_URLForm(t *testing.T) {
	sanitized := SanitizeConnectionString("postgres://app:s3cret@db:5432/reports")
	assert.NotContains(t, sanitized, "s3cret")
	assert.NotContains(t, sanitized, "app:")
}

func TestSanitizeConnectionString_Empty(t *testing.T) {
	assert.Equal(t, "", SanitizeConnectionString(""))
}

func TestSanitizeError(t *testing.T) {
	err := errors.New(`connect failed: postgres://app:hunter2@db/reports password=hunter2 api_key=abcdefghij0123456789`)
	sanitized := SanitizeError(err)
	assert.NotContains(t, sanitized, "hunter2")
	assert.NotContains(t, sanitized, "abcdefghij0123456789")
}

func TestSanitizeError_Nil(t *testing.T) {
	assert.Equal(t, "", SanitizeError(nil))
}

func TestSanitizeQuery_Truncates(t *testing.T) {
	long := "SELECT " + strings.Repeat("x", MaxQueryLogLength)
	sanitized := SanitizeQuery(long)
	assert.True(t, strings.HasSuffix(sanitized, "..."))
	assert.LessOrEqual(t, len(sanitized), MaxQueryLogLength+3)
}

func TestSanitizeQuery_ShortUnchanged(t *testing.T) {
	assert.Equal(t, "SELECT 1", SanitizeQuery("SELECT 1"))
}
