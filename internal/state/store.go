package state

import (
	"sync"
	"time"

	"github.com/pbxkit/click-to-call/internal/pbx"
	"github.com/pbxkit/click-to-call/internal/prefs"
)

// LastCall records the most recently completed call attempt, for logging
// and inspection. It is last-write-wins across concurrent attempts.
type LastCall struct {
	Number     string
	Kind       pbx.OutcomeKind
	FinishedAt time.Time
}

// Store coordinates access to the settings shared between the UI-owning
// goroutine and the socket listener. The UI save action is the only writer
// of settings; the listener only reads snapshots to decide routing.
type Store struct {
	mu       sync.RWMutex
	settings prefs.Settings
	lastCall LastCall
	hasCall  bool
}

// NewStore builds a Store seeded with the settings loaded at startup.
func NewStore(settings prefs.Settings) *Store {
	return &Store{settings: settings}
}

// Settings returns a copy of the current settings snapshot.
func (s *Store) Settings() prefs.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetSettings replaces the settings snapshot. Called from the UI when the
// user saves the form.
func (s *Store) SetSettings(settings prefs.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// RecordOutcome notes a completed call attempt.
func (s *Store) RecordOutcome(o pbx.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCall = LastCall{Number: o.Number, Kind: o.Kind, FinishedAt: time.Now()}
	s.hasCall = true
}

// LastCall returns the most recent completed attempt, if any.
func (s *Store) LastCall() (LastCall, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastCall, s.hasCall
}
