package render

import (
	"fmt"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/state"
)

// FieldView is the display-ready state of one input.
type FieldView struct {
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Format      string         `json:"format,omitempty"`
	Label       string         `json:"label"`
	Placeholder string         `json:"placeholder,omitempty"`
	Help        string         `json:"help,omitempty"`
	Required    bool           `json:"required"`
	Value       any            `json:"value"`
	Checked     bool           `json:"checked"`
	Options     []model.Option `json:"options,omitempty"`
	Touched     bool           `json:"touched"`
	Error       string         `json:"error,omitempty"`
}

// View is what a renderer displays: one entry per field plus form-level
// status. Errors only appear on touched fields.
type View struct {
	Fields        []FieldView   `json:"fields"`
	CanSubmit     bool          `json:"canSubmit"`
	Message       state.Message `json:"message"`
	Phase         state.Phase   `json:"phase"`
	HiddenSecrets bool          `json:"hiddenSecrets"`
}

// ViewOption tweaks how NewView builds a view.
type ViewOption func(*View)

// WithSecretsHidden masks password values in the view.
func WithSecretsHidden() ViewOption {
	return func(v *View) {
		v.HiddenSecrets = true
	}
}

// NewView combines the form description with a state snapshot.
func NewView(form model.FormModel, snap state.Snapshot, opts ...ViewOption) View {
	view := View{
		Fields:    make([]FieldView, 0, len(form.Fields)),
		CanSubmit: snap.Valid,
		Message:   snap.Message,
		Phase:     snap.Phase,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&view)
		}
	}

	touched := make(map[model.FieldName]bool, len(snap.Touched))
	for _, name := range snap.Touched {
		touched[name] = true
	}

	for _, field := range form.Fields {
		value, _ := snap.Draft.Value(field.Name)
		fv := FieldView{
			Name:        string(field.Name),
			Type:        string(field.Type),
			Format:      field.Format,
			Label:       displayLabel(field),
			Placeholder: field.Placeholder,
			Help:        field.Description,
			Required:    field.Required,
			Value:       value,
			Options:     field.Options,
			Touched:     touched[field.Name],
			Error:       snap.VisibleErrors[field.Name],
		}
		if checked, ok := value.(bool); ok {
			fv.Checked = checked
		}
		if view.HiddenSecrets && field.Format == "password" {
			fv.Value = mask(value)
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}

// Field looks up a field view by name.
func (v View) Field(name model.FieldName) (FieldView, bool) {
	for _, field := range v.Fields {
		if field.Name == string(name) {
			return field, true
		}
	}
	return FieldView{}, false
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return string(field.Name)
}

func mask(value any) string {
	s := fmt.Sprint(value)
	if s == "" {
		return ""
	}
	out := make([]rune, 0, len(s))
	for range s {
		out = append(out, '*')
	}
	return string(out)
}
