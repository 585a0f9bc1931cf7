package validation

import (
	"strings"
	"testing"

	"postboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRules = []FieldRule{
	{Field: "name", Required: true, Type: TypeString, MinLength: 3, MaxLength: 50},
	{Field: "username", Required: true, Type: TypeString, MinLength: 3, MaxLength: 50},
	{Field: "email", Required: true, Type: TypeString, Pattern: EmailPattern},
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		source   map[string]any
		rules    []FieldRule
		wantCode string // empty means pass
	}{
		{
			name: "all rules satisfied",
			source: map[string]any{
				"name":     "Ada Lovelace",
				"username": "ada",
				"email":    "ada@example.com",
			},
			rules: userRules,
		},
		{
			name: "required field absent",
			source: map[string]any{
				"username": "ada",
				"email":    "ada@example.com",
			},
			rules:    userRules,
			wantCode: models.CodeMissingField,
		},
		{
			name: "empty string counts as absent",
			source: map[string]any{
				"name":     "",
				"username": "ada",
				"email":    "ada@example.com",
			},
			rules:    userRules,
			wantCode: models.CodeMissingField,
		},
		{
			name: "null counts as absent",
			source: map[string]any{
				"name":     nil,
				"username": "ada",
				"email":    "ada@example.com",
			},
			rules:    userRules,
			wantCode: models.CodeMissingField,
		},
		{
			name: "type mismatch on string field",
			source: map[string]any{
				"name":     float64(42),
				"username": "ada",
				"email":    "ada@example.com",
			},
			rules:    userRules,
			wantCode: models.CodeTypeMismatch,
		},
		{
			name: "length below minimum",
			source: map[string]any{
				"name":     "Ada Lovelace",
				"username": "a",
				"email":    "ada@example.com",
			},
			rules:    userRules,
			wantCode: models.CodeLengthViolation,
		},
		{
			name: "length above maximum",
			source: map[string]any{
				"name":     "Ada Lovelace",
				"username": strings.Repeat("a", 51),
				"email":    "ada@example.com",
			},
			rules:    userRules,
			wantCode: models.CodeLengthViolation,
		},
		{
			name: "pattern violation",
			source: map[string]any{
				"name":     "Ada Lovelace",
				"username": "ada",
				"email":    "not-an-email",
			},
			rules:    userRules,
			wantCode: models.CodePatternViolation,
		},
		{
			name:   "optional absent field skips remaining checks",
			source: map[string]any{},
			rules: []FieldRule{
				{Field: "title", Required: false, Type: TypeString, MinLength: 5},
			},
		},
		{
			name:   "optional present field still checked",
			source: map[string]any{"title": "ab"},
			rules: []FieldRule{
				{Field: "title", Required: false, Type: TypeString, MinLength: 5},
			},
			wantCode: models.CodeLengthViolation,
		},
		{
			name:   "number accepts json float64",
			source: map[string]any{"count": float64(3)},
			rules: []FieldRule{
				{Field: "count", Required: true, Type: TypeNumber},
			},
		},
		{
			name:   "number rejects string",
			source: map[string]any{"count": "3"},
			rules: []FieldRule{
				{Field: "count", Required: true, Type: TypeNumber},
			},
			wantCode: models.CodeTypeMismatch,
		},
		{
			name:   "boolean rejects number",
			source: map[string]any{"active": float64(1)},
			rules: []FieldRule{
				{Field: "active", Required: true, Type: TypeBoolean},
			},
			wantCode: models.CodeTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.source, tt.rules)
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				assertCode(t, err, tt.wantCode)
			}
		})
	}
}

func TestValidateShortCircuitsInDeclarationOrder(t *testing.T) {
	// Both name and email are invalid; the name rule is declared first and
	// must win regardless of later violations.
	source := map[string]any{
		"username": "ada",
		"email":    "not-an-email",
	}
	err := Validate(source, userRules)
	assertCode(t, err, models.CodeMissingField)
	assert.Contains(t, err.Error(), "name")
}

func TestValidateIsIdempotent(t *testing.T) {
	source := map[string]any{
		"name":     "Ada Lovelace",
		"username": "a",
		"email":    "ada@example.com",
	}
	first := Validate(source, userRules)
	second := Validate(source, userRules)
	require.Error(t, first)
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
}
