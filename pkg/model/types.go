package model

// FieldName identifies one slot of the registration form.
type FieldName string

const (
	FieldFullName     FieldName = "fullName"
	FieldEmail        FieldName = "email"
	FieldPassword     FieldName = "password"
	FieldPhoneNumber  FieldName = "phoneNumber"
	FieldAge          FieldName = "age"
	FieldCountry      FieldName = "country"
	FieldAgreeToTerms FieldName = "agreeToTerms"
)

var fieldOrder = []FieldName{
	FieldFullName,
	FieldEmail,
	FieldPassword,
	FieldPhoneNumber,
	FieldAge,
	FieldCountry,
	FieldAgreeToTerms,
}

// Fields returns the closed set of field names in display order.
func Fields() []FieldName {
	return append([]FieldName(nil), fieldOrder...)
}

// Known reports whether name belongs to the closed field set.
func (name FieldName) Known() bool {
	for _, candidate := range fieldOrder {
		if candidate == name {
			return true
		}
	}
	return false
}

// FieldType is the declared value kind of a field.
type FieldType string

const (
	FieldTypeText    FieldType = "text"
	FieldTypeInteger FieldType = "integer"
	FieldTypeChoice  FieldType = "choice"
	FieldTypeBoolean FieldType = "boolean"
)

// TypeOf returns the declared type for name. Unknown names report "".
func TypeOf(name FieldName) FieldType {
	switch name {
	case FieldFullName, FieldEmail, FieldPassword, FieldPhoneNumber:
		return FieldTypeText
	case FieldAge:
		return FieldTypeInteger
	case FieldCountry:
		return FieldTypeChoice
	case FieldAgreeToTerms:
		return FieldTypeBoolean
	default:
		return ""
	}
}

// Option is a selectable value for choice fields.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field describes how a presentation layer should display one input.
type Field struct {
	Name        FieldName         `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Options     []Option          `json:"options,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FormModel is the top-level description renderers consume.
type FormModel struct {
	ID          string            `json:"id"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	SubmitLabel string            `json:"submitLabel,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field looks up a field description by name.
func (f FormModel) Field(name FieldName) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
