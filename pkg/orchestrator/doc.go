// Package orchestrator wires the registration form description, the renderer
// registry and a form snapshot into rendered output.
package orchestrator
