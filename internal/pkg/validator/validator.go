// Package validator validates request structs using struct tags.
package validator

// Validator checks a struct and returns a FieldErrors when rules fail.
type Validator interface {
	Validate(data any) error
}

var _ Validator = (*V10Validator)(nil)
