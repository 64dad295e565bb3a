// Package state holds the settings snapshot shared between the interactive
// form and the socket listener.
package state
