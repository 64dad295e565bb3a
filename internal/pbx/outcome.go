package pbx

import "fmt"

// OutcomeKind classifies the result of a call attempt.
type OutcomeKind int

const (
	// OutcomeSuccess means the PBX accepted the click-to-call request.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeHTTPError means the PBX answered with a non-2xx status.
	OutcomeHTTPError
	// OutcomeNetworkError means the request never completed (DNS,
	// connection or timeout failure).
	OutcomeNetworkError
)

// Outcome reports how a dispatched call attempt ended.
type Outcome struct {
	Kind       OutcomeKind
	Number     string
	StatusCode int   // set for OutcomeHTTPError
	Err        error // set for OutcomeNetworkError
}

// StatusText renders the outcome as the transient status line shown in the
// form. Last write wins when several attempts are in flight.
func (o Outcome) StatusText() string {
	switch o.Kind {
	case OutcomeSuccess:
		return fmt.Sprintf("Call initialized to %s", o.Number)
	case OutcomeHTTPError:
		return fmt.Sprintf("Error: HTTP status %d", o.StatusCode)
	default:
		return fmt.Sprintf("Error: %v", o.Err)
	}
}

// Notification renders the outcome as an advisory desktop notification.
func (o Outcome) Notification() (title, message string) {
	switch o.Kind {
	case OutcomeSuccess:
		return "Call Initiated", fmt.Sprintf("Calling %s...", o.Number)
	case OutcomeHTTPError:
		return "Call Failed", fmt.Sprintf("Failed to call %s: HTTP status %d", o.Number, o.StatusCode)
	default:
		return "Call Failed", fmt.Sprintf("Failed to call %s: %v", o.Number, o.Err)
	}
}
