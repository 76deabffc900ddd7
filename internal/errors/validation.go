package errors

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// MetaValidationErrors is the meta key holding per-field messages
const MetaValidationErrors = "validation_errors"

// ValidationBuilder collects per-field problems. Build returns nil when
// nothing was recorded, otherwise an InvalidArgument error whose meta maps
// each field to its messages.
type ValidationBuilder struct {
	fields map[string][]string
}

// NewValidationBuilder creates an empty builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{fields: make(map[string][]string)}
}

// Field records a problem with a field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.fields[field] = append(vb.fields[field], message)
	return vb
}

// Fieldf records a formatted problem with a field
func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	return vb.Field(field, fmt.Sprintf(format, args...))
}

// RequiredField records a missing field
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// InvalidField records a field with a bad value
func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Fieldf(field, "is invalid: %s", reason)
}

// Build returns the collected problems as one error
func (vb *ValidationBuilder) Build() error {
	if len(vb.fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(vb.fields))
	for name := range vb.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + strings.Join(vb.fields[name], ", ")
	}

	return InvalidArgument("validation failed: "+strings.Join(parts, "; ")).
		WithMeta(MetaValidationErrors, vb.fields)
}

// ValidateRequired records a blank string
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateMaxLength records a string longer than maxLen
func ValidateMaxLength(field, value string, maxLen int, vb *ValidationBuilder) {
	if len(value) > maxLen {
		vb.Fieldf(field, "must be no more than %d characters", maxLen)
	}
}

// ValidateMin records a value below minValue
func ValidateMin(field string, value, minValue int, vb *ValidationBuilder) {
	if value < minValue {
		vb.Fieldf(field, "must be at least %d", minValue)
	}
}

// ValidateEnum records a value outside allowed
func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	if !slices.Contains(allowed, value) {
		vb.Fieldf(field, "must be one of: %s", strings.Join(allowed, ", "))
	}
}
