// Package render defines the presentation contract: a View built from the
// form description and a state snapshot, the Renderer interface that turns a
// View into output, and a name-keyed Registry of renderers.
package render
