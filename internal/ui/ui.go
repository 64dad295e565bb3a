package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram builds the Bubble Tea program for the form. The returned
// program's Send method is the thread-safe handoff used by the socket
// listener to deliver forwarded URIs into the event loop.
func NewProgram(opts Options) *tea.Program {
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	return tea.NewProgram(New(opts), progOpts...)
}

// Sink adapts a running program into the listener-facing delivery target.
type Sink struct {
	program *tea.Program
}

// NewSink wraps program.
func NewSink(program *tea.Program) Sink {
	return Sink{program: program}
}

// DeliverURI hands a forwarded tel: URI to the event loop. Safe to call
// from any goroutine.
func (s Sink) DeliverURI(uri string) {
	s.program.Send(ForwardedURIMsg{URI: uri})
}
