// Package instance coordinates single-instance operation per user session.
// The unix socket is the sole point of mutual exclusion: whoever holds the
// bind is the primary, everyone else forwards and exits. The wire protocol
// is a single UTF-8 payload per connection, either a raw tel: URI (a call
// request) or a ping-<timestamp> liveness probe (ignored as a call).
package instance
