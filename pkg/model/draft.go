package model

import (
	"fmt"
	"time"
)

// TimestampLayout renders submission dates as ISO-8601 UTC with millisecond
// precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Draft holds the raw value of every field. The zero value is the all-default
// draft.
type Draft struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	PhoneNumber  string `json:"phoneNumber"`
	Age          string `json:"age"`
	Country      string `json:"country"`
	AgreeToTerms bool   `json:"agreeToTerms"`
}

// Value returns the raw value stored for name.
func (d Draft) Value(name FieldName) (any, bool) {
	switch name {
	case FieldFullName:
		return d.FullName, true
	case FieldEmail:
		return d.Email, true
	case FieldPassword:
		return d.Password, true
	case FieldPhoneNumber:
		return d.PhoneNumber, true
	case FieldAge:
		return d.Age, true
	case FieldCountry:
		return d.Country, true
	case FieldAgreeToTerms:
		return d.AgreeToTerms, true
	default:
		return nil, false
	}
}

// With returns a copy of d with name set to value. agreeToTerms only accepts
// bool, every other field only accepts string.
func (d Draft) With(name FieldName, value any) (Draft, error) {
	if !name.Known() {
		return d, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	if name == FieldAgreeToTerms {
		checked, ok := value.(bool)
		if !ok {
			return d, fmt.Errorf("%w: %s expects bool, got %T", ErrValueType, name, value)
		}
		d.AgreeToTerms = checked
		return d, nil
	}

	text, ok := value.(string)
	if !ok {
		return d, fmt.Errorf("%w: %s expects string, got %T", ErrValueType, name, value)
	}
	switch name {
	case FieldFullName:
		d.FullName = text
	case FieldEmail:
		d.Email = text
	case FieldPassword:
		d.Password = text
	case FieldPhoneNumber:
		d.PhoneNumber = text
	case FieldAge:
		d.Age = text
	case FieldCountry:
		d.Country = text
	}
	return d, nil
}

// IsZero reports whether every field still holds its default.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

// SubmissionRecord is an immutable snapshot of a submitted draft.
type SubmissionRecord struct {
	Draft
	SubmissionDate string `json:"submissionDate"`
}

// NewSubmissionRecord stamps draft with at.
func NewSubmissionRecord(draft Draft, at time.Time) SubmissionRecord {
	return SubmissionRecord{
		Draft:          draft,
		SubmissionDate: at.UTC().Format(TimestampLayout),
	}
}

// SubmittedAt parses the record timestamp.
func (r SubmissionRecord) SubmittedAt() (time.Time, error) {
	at, err := time.Parse(time.RFC3339Nano, r.SubmissionDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("model: parse submission date: %w", err)
	}
	return at, nil
}
