// Package validation provides input validation utilities: reusable value
// checks and a rule-driven validator for request bodies, path parameters
// and query parameters.
package validation

import "regexp"

// EmailPattern matches a local-part@domain address with at least one dot in
// the domain. Case-insensitive.
var EmailPattern = regexp.MustCompile(`(?i)^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// MatchesPattern reports whether value matches the compiled pattern.
func MatchesPattern(value string, pattern *regexp.Regexp) bool {
	return pattern.MatchString(value)
}

// WithinLength reports whether the length of value is within [min, max].
// A zero bound is unbounded on that side.
func WithinLength(value string, min, max int) bool {
	if min > 0 && len(value) < min {
		return false
	}
	if max > 0 && len(value) > max {
		return false
	}
	return true
}
