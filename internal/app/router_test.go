package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pbxkit/click-to-call/internal/notify"
	"github.com/pbxkit/click-to-call/internal/pbx"
	"github.com/pbxkit/click-to-call/internal/prefs"
	"github.com/pbxkit/click-to-call/internal/state"
)

type fakeCaller struct {
	mu   sync.Mutex
	reqs []pbx.CallRequest
	done chan struct{}
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{done: make(chan struct{}, 8)}
}

func (c *fakeCaller) Dispatch(ctx context.Context, req pbx.CallRequest) pbx.Outcome {
	c.mu.Lock()
	c.reqs = append(c.reqs, req)
	c.mu.Unlock()
	c.done <- struct{}{}
	return pbx.Outcome{Kind: pbx.OutcomeSuccess, Number: req.Number}
}

func (c *fakeCaller) requests() []pbx.CallRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]pbx.CallRequest(nil), c.reqs...)
}

type fakeSink struct {
	mu   sync.Mutex
	uris []string
}

func (s *fakeSink) DeliverURI(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uris = append(s.uris, uri)
}

func (s *fakeSink) delivered() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.uris...)
}

func TestRouter_ConfiguredDialsSilently(t *testing.T) {
	caller := newFakeCaller()
	sink := &fakeSink{}
	store := state.NewStore(prefs.Settings{
		Domain: "pbx.example.com", Extension: "100", Key: "abc", AutoAnswer: true,
	})
	r := &router{store: store, caller: caller, notifier: notify.Nop{}, ui: sink}

	r.HandleTelURI("tel:+1 (555) 123-4567")

	select {
	case <-caller.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("silent dispatch never ran")
	}

	reqs := caller.requests()
	if len(reqs) != 1 {
		t.Fatalf("dispatch count = %d, want 1", len(reqs))
	}
	if reqs[0].Number != "+15551234567" {
		t.Fatalf("dialed %q, want normalized number", reqs[0].Number)
	}
	if !reqs[0].AutoAnswer || reqs[0].Key != "abc" {
		t.Fatalf("request = %+v, want settings snapshot applied", reqs[0])
	}
	if got := sink.delivered(); len(got) != 0 {
		t.Fatalf("form received %v during silent call", got)
	}
	if last, ok := store.LastCall(); !ok || last.Number != "+15551234567" {
		t.Fatalf("LastCall = %+v, %v", last, ok)
	}
}

func TestRouter_UnconfiguredHandsRawURIToForm(t *testing.T) {
	caller := newFakeCaller()
	sink := &fakeSink{}
	r := &router{
		store:    state.NewStore(prefs.Settings{Domain: "pbx.example.com"}),
		caller:   caller,
		notifier: notify.Nop{},
		ui:       sink,
	}

	r.HandleTelURI("tel:5551234567")

	if got := sink.delivered(); len(got) != 1 || got[0] != "tel:5551234567" {
		t.Fatalf("form received %v, want the raw URI", got)
	}
	if got := caller.requests(); len(got) != 0 {
		t.Fatalf("dispatch count = %d, want 0", len(got))
	}
}

func TestRouter_EmptyNumberIgnored(t *testing.T) {
	caller := newFakeCaller()
	sink := &fakeSink{}
	r := &router{
		store:    state.NewStore(prefs.Settings{Domain: "d", Extension: "e"}),
		caller:   caller,
		notifier: notify.Nop{},
		ui:       sink,
	}

	r.HandleTelURI("tel:")

	if got := caller.requests(); len(got) != 0 {
		t.Fatalf("dispatch count = %d, want 0", len(got))
	}
	if got := sink.delivered(); len(got) != 0 {
		t.Fatalf("form received %v for an empty number", got)
	}
}

func TestRouter_NoSinkDropsUnconfigured(t *testing.T) {
	caller := newFakeCaller()
	r := &router{
		store:    state.NewStore(prefs.Settings{}),
		caller:   caller,
		notifier: notify.Nop{},
	}

	r.HandleTelURI("tel:555") // must not panic without a form attached

	if got := caller.requests(); len(got) != 0 {
		t.Fatalf("dispatch count = %d, want 0", len(got))
	}
}
