// Package notify delivers advisory desktop notifications. Delivery is
// best-effort: failures are logged and swallowed, never surfaced to the
// caller. Components that run on background goroutines talk to this
// interface instead of platform APIs.
package notify

import (
	"log"

	"github.com/gen2brain/beeep"
)

// Notifier posts an advisory notification.
type Notifier interface {
	Notify(title, message string)
}

// Desktop posts notifications through the platform notification service.
type Desktop struct{}

// NewDesktop returns a Notifier backed by the platform service.
func NewDesktop() Desktop {
	return Desktop{}
}

// Notify implements Notifier.
func (Desktop) Notify(title, message string) {
	if err := beeep.Notify(title, message, ""); err != nil {
		log.Printf("notify: %v", err)
	}
}

// Nop discards notifications. Used in tests and on platforms without a
// notification service.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(title, message string) {}
