// Package validation holds the per-field rules of the registration form.
// Every rule is a pure function of a single raw value; ValidateDraft applies
// all of them to a full draft so callers never patch errors field by field.
package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-regform/pkg/model"
)

// Messages surfaced for failing fields.
const (
	MsgFullNameTooShort = "Full name must be at least 3 characters"
	MsgEmailInvalid     = "Please enter a valid email address"
	MsgPasswordWeak     = "Password must be at least 8 characters with one number and one special character"
	MsgPhoneDigits      = "Phone number must be exactly 10 digits"
	MsgAgeNotNumber     = "Age must be a number"
	MsgAgeOutOfRange    = "Age must be between 18 and 65"
	MsgCountryRequired  = "Please select a country"
	MsgTermsRequired    = "You must agree to the terms"
)

const (
	minNameLength     = 3
	minPasswordLength = 8
	minAge            = 18
	maxAge            = 65

	passwordDigits  = "0123456789"
	passwordSymbols = "!@#$%^&*"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	passwordCharset = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*]+$`)
	phonePattern    = regexp.MustCompile(`^[0-9]{10}$`)
)

// Rule validates one raw value and returns an error message or "".
type Rule func(value any) string

var rules = map[model.FieldName]Rule{
	model.FieldFullName:     validateFullName,
	model.FieldEmail:        validateEmail,
	model.FieldPassword:     validatePassword,
	model.FieldPhoneNumber:  validatePhoneNumber,
	model.FieldAge:          validateAge,
	model.FieldCountry:      validateCountry,
	model.FieldAgreeToTerms: validateAgreeToTerms,
}

// Validate returns the error message for value in field, or "" when the value
// passes. Unknown fields always pass. Values of the wrong dynamic type are
// treated as the field's default.
func Validate(field model.FieldName, value any) string {
	rule, ok := rules[field]
	if !ok {
		return ""
	}
	return rule(value)
}

// ErrorMap maps failing fields to their message. Passing fields are absent.
type ErrorMap map[model.FieldName]string

// Has reports whether field currently fails.
func (m ErrorMap) Has(field model.FieldName) bool {
	_, ok := m[field]
	return ok
}

// Clone returns an independent copy.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ValidateDraft validates every field of draft, including fields that still
// hold their default value.
func ValidateDraft(draft model.Draft) ErrorMap {
	errs := make(ErrorMap)
	for _, field := range model.Fields() {
		value, _ := draft.Value(field)
		if msg := Validate(field, value); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

func validateFullName(value any) string {
	if utf8.RuneCountInString(asString(value)) >= minNameLength {
		return ""
	}
	return MsgFullNameTooShort
}

func validateEmail(value any) string {
	if emailPattern.MatchString(asString(value)) {
		return ""
	}
	return MsgEmailInvalid
}

func validatePassword(value any) string {
	password := asString(value)
	switch {
	case len(password) < minPasswordLength,
		!passwordCharset.MatchString(password),
		!strings.ContainsAny(password, passwordDigits),
		!strings.ContainsAny(password, passwordSymbols):
		return MsgPasswordWeak
	default:
		return ""
	}
}

func validatePhoneNumber(value any) string {
	if phonePattern.MatchString(asString(value)) {
		return ""
	}
	return MsgPhoneDigits
}

// validateAge parses base 10 only so "070" reads as seventy. Integers too
// large for int are a number, just out of range.
func validateAge(value any) string {
	age, err := strconv.Atoi(asString(value))
	if errors.Is(err, strconv.ErrRange) {
		return MsgAgeOutOfRange
	}
	if err != nil {
		return MsgAgeNotNumber
	}
	if age < minAge || age > maxAge {
		return MsgAgeOutOfRange
	}
	return ""
}

func validateCountry(value any) string {
	if asString(value) != "" {
		return ""
	}
	return MsgCountryRequired
}

func validateAgreeToTerms(value any) string {
	if checked, _ := value.(bool); checked {
		return ""
	}
	return MsgTermsRequired
}
