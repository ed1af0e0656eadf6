// Package template wraps a pongo2 template set behind the TemplateRenderer
// contract used by the HTML renderer. Data passed to templates is converted
// through its JSON form, so templates address struct fields by their json
// tags.
package template
