package validation

import (
	"regexp"

	"postboard/models"
)

// FieldType names the expected runtime type of a field after JSON decoding.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
)

// FieldRule declares the constraints for a single field. Rules are static,
// per-endpoint configuration; length bounds and pattern only apply to
// string fields.
type FieldRule struct {
	Field     string
	Required  bool
	Type      FieldType
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
}

// Validate evaluates rules against source in declaration order and stops at
// the first violation. A nil value or empty string counts as absent. Returns
// nil when every rule passes. Pure function of its inputs.
func Validate(source map[string]any, rules []FieldRule) error {
	for _, rule := range rules {
		raw, present := source[rule.Field]
		if raw == nil {
			present = false
		}
		if s, ok := raw.(string); ok && s == "" {
			present = false
		}

		if !present {
			if rule.Required {
				return models.NewMissingFieldError(rule.Field)
			}
			continue
		}

		switch rule.Type {
		case TypeString:
			s, ok := raw.(string)
			if !ok {
				return models.NewTypeMismatchError(rule.Field, string(rule.Type))
			}
			if (rule.MinLength > 0 || rule.MaxLength > 0) && !WithinLength(s, rule.MinLength, rule.MaxLength) {
				return models.NewLengthViolationError(rule.Field, rule.MinLength, rule.MaxLength)
			}
			if rule.Pattern != nil && !MatchesPattern(s, rule.Pattern) {
				return models.NewPatternViolationError(rule.Field)
			}
		case TypeNumber:
			// encoding/json decodes all JSON numbers as float64
			switch raw.(type) {
			case float64, int, int64:
			default:
				return models.NewTypeMismatchError(rule.Field, string(rule.Type))
			}
		case TypeBoolean:
			if _, ok := raw.(bool); !ok {
				return models.NewTypeMismatchError(rule.Field, string(rule.Type))
			}
		}
	}
	return nil
}
