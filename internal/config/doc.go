// Package config loads the application config file. The PBX account lives
// in package prefs; this file only carries presentation and plumbing knobs
// (theme, socket path, forward-raise policy, HTTP timeout).
package config
