// Package ui renders the interactive settings-and-dial form. The Bubble Tea
// event loop is the single owner of session state (phone number, status
// line); background work reaches it only through messages, never by direct
// mutation.
package ui
