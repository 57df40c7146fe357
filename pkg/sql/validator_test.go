package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAndNormalize_StripsTrailingSemicolon(t *testing.T) {
	result := ValidateAndNormalize("SELECT 1;")
	assert.NoError(t, result.Warning)
	assert.Equal(t, "SELECT 1", result.NormalizedSQL)
}

func TestValidateAndNormalize_TrailingWhitespaceAndSemicolon(t *testing.T) {
	result := ValidateAndNormalize("  SELECT 1 ;  \n")
	assert.NoError(t, result.Warning)
	assert.Equal(t, "SELECT 1", result.NormalizedSQL)
}

func TestValidateAndNormalize_MultipleStatementsWarns(t *testing.T) {
	result := ValidateAndNormalize("SELECT 1; DROP TABLE patients;")
	assert.ErrorIs(t, result.Warning, ErrMultipleStatements)
	// Normalization still happens so the statement can be shown/run.
	assert.NotEmpty(t, result.NormalizedSQL)
}

func TestValidateAndNormalize_SemicolonInsideStringLiteral(t *testing.T) {
	result := ValidateAndNormalize(`SELECT * FROM diagnosis_codes WHERE diagnosis_description = 'a;b'`)
	assert.NoError(t, result.Warning)
}

func TestValidateAndNormalize_SemicolonInsideDoubleQuotedIdentifier(t *testing.T) {
	result := ValidateAndNormalize(`SELECT "weird;name" FROM lab_tests`)
	assert.NoError(t, result.Warning)
}

func TestValidateAndNormalize_EscapedQuote(t *testing.T) {
	result := ValidateAndNormalize(`SELECT * FROM languages WHERE language_desc = 'it''s; complicated'`)
	assert.NoError(t, result.Warning)
}

func TestValidateAndNormalize_Empty(t *testing.T) {
	result := ValidateAndNormalize("   ")
	assert.NoError(t, result.Warning)
	assert.Equal(t, "", result.NormalizedSQL)
}
