// Package app wires the components together: role decision, URI routing,
// and the three run modes (interactive form, direct call, background
// listener).
package app
