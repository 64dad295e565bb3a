package app

import (
	"context"
	"log"

	"github.com/pbxkit/click-to-call/internal/notify"
	"github.com/pbxkit/click-to-call/internal/pbx"
	"github.com/pbxkit/click-to-call/internal/phone"
	"github.com/pbxkit/click-to-call/internal/state"
)

// Caller dispatches a prepared call request. Implemented by *pbx.Client.
type Caller interface {
	Dispatch(ctx context.Context, req pbx.CallRequest) pbx.Outcome
}

// URISink hands a raw tel: URI to the interactive form.
type URISink interface {
	DeliverURI(uri string)
}

// router routes forwarded URIs from the socket listener. With a complete
// account it dials silently on a short-lived goroutine so the form never
// steals focus; otherwise it hands the URI to the form for configuration.
type router struct {
	store    *state.Store
	caller   Caller
	notifier notify.Notifier
	ui       URISink // nil in background mode
}

// HandleTelURI implements instance.Handler. Runs on the listener goroutine;
// it never touches UI state directly.
func (r *router) HandleTelURI(uri string) {
	number := phone.Normalize(uri)
	if number == "" {
		return
	}

	settings := r.store.Settings()
	if settings.Configured() {
		req := pbx.CallRequest{
			Domain:     settings.Domain,
			Extension:  settings.Extension,
			Key:        settings.Key,
			Number:     number,
			AutoAnswer: settings.AutoAnswer,
		}
		go r.dispatch(req)
		return
	}

	if r.ui != nil {
		r.ui.DeliverURI(uri)
		return
	}
	log.Printf("router: dropping forwarded call: settings incomplete and no interactive form")
}

// dispatch runs one silent call attempt to completion. Dispatched attempts
// are never cancelled; process exit simply abandons them.
func (r *router) dispatch(req pbx.CallRequest) {
	outcome := r.caller.Dispatch(context.Background(), req)
	r.notifier.Notify(outcome.Notification())
	r.store.RecordOutcome(outcome)
	log.Printf("router: %s", outcome.StatusText())
}
