package model

import "errors"

var (
	// ErrUnknownField is returned when a field name is outside the closed set.
	ErrUnknownField = errors.New("model: unknown field")
	// ErrValueType is returned when a raw value does not match the declared
	// field type (bool for agreeToTerms, string otherwise).
	ErrValueType = errors.New("model: value type mismatch")
)
