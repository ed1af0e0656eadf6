package model

// Decorator enriches a form model before it reaches a renderer, for example to
// swap labels or inject renderer-specific metadata.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Decorate applies decorators in order, stopping at the first error.
func Decorate(form FormModel, decorators ...Decorator) (FormModel, error) {
	out := form.clone()
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&out); err != nil {
			return FormModel{}, err
		}
	}
	return out, nil
}

func (f FormModel) clone() FormModel {
	out := f
	out.Metadata = cloneStrings(f.Metadata)
	out.Fields = make([]Field, len(f.Fields))
	for i, field := range f.Fields {
		field.Options = append([]Option(nil), field.Options...)
		field.Metadata = cloneStrings(field.Metadata)
		out.Fields[i] = field
	}
	return out
}

func cloneStrings(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
