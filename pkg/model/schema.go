package model

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// DraftShapeSchema describes the persisted draft payload by type only: every
// known key must carry a string, except agreeToTerms which must be a boolean.
// Missing keys are allowed and fall back to defaults; constraint checks belong
// to the validation package, not to the persistence contract.
func DraftShapeSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for _, name := range fieldOrder {
		if TypeOf(name) == FieldTypeBoolean {
			schema.WithProperty(string(name), openapi3.NewBoolSchema())
			continue
		}
		schema.WithProperty(string(name), openapi3.NewStringSchema())
	}
	return schema
}

// RecordSchema documents a submitted record, including the constraints a
// record satisfied at submission time.
func RecordSchema() *openapi3.Schema {
	age := openapi3.NewStringSchema().WithPattern(`^[+-]?[0-9]+$`)
	age.Description = "base-10 integer between 18 and 65"

	schema := openapi3.NewObjectSchema().
		WithProperty(string(FieldFullName), openapi3.NewStringSchema().WithMinLength(3)).
		WithProperty(string(FieldEmail), openapi3.NewStringSchema().WithPattern(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)).
		WithProperty(string(FieldPassword), openapi3.NewStringSchema().WithPattern(`^[a-zA-Z0-9!@#$%^&*]{8,}$`)).
		WithProperty(string(FieldPhoneNumber), openapi3.NewStringSchema().WithPattern(`^[0-9]{10}$`)).
		WithProperty(string(FieldAge), age).
		WithProperty(string(FieldCountry), openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty(string(FieldAgreeToTerms), openapi3.NewBoolSchema().WithEnum(true)).
		WithProperty("submissionDate", openapi3.NewDateTimeSchema())

	required := make([]string, 0, len(fieldOrder)+1)
	for _, name := range fieldOrder {
		required = append(required, string(name))
	}
	schema.Required = append(required, "submissionDate")
	schema.Title = "SubmissionRecord"
	return schema
}

// DecodeDraft parses a persisted draft payload. The payload must be a JSON
// object whose known keys carry values of the declared type.
func DecodeDraft(raw []byte) (Draft, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return Draft{}, fmt.Errorf("model: decode draft: %w", err)
	}
	if err := DraftShapeSchema().VisitJSON(generic); err != nil {
		return Draft{}, fmt.Errorf("model: draft shape: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return Draft{}, fmt.Errorf("model: decode draft: %w", err)
	}
	return draft, nil
}

// CheckRecord validates a record against RecordSchema.
func CheckRecord(record SubmissionRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("model: encode record: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("model: decode record: %w", err)
	}
	if err := RecordSchema().VisitJSON(generic); err != nil {
		return fmt.Errorf("model: record contract: %w", err)
	}
	return nil
}
