package instance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/pbxkit/click-to-call/internal/phone"
)

// Handler receives forwarded tel: URIs accepted by the listener.
type Handler interface {
	HandleTelURI(uri string)
}

const (
	readBufferSize = 1024
	readTimeout    = 2 * time.Second
)

// Listener is the forwarding endpoint owned by the primary instance. It
// accepts connections on the unix socket, reads one payload per connection
// and hands tel: URIs to the Handler. Liveness pings and any other payload
// are discarded.
type Listener struct {
	socketPath string
	handler    Handler

	mu sync.Mutex
	ln net.Listener
	wg sync.WaitGroup
}

// NewListener builds a Listener for socketPath.
func NewListener(socketPath string, handler Handler) *Listener {
	return &Listener{socketPath: socketPath, handler: handler}
}

// Start binds the socket and launches the accept loop. A bind failure
// (typically losing the race to another instance) is returned to the caller
// and is not fatal to the process. Cancelling ctx closes the listener and
// ends the loop.
func (l *Listener) Start(ctx context.Context) error {
	if l.socketPath == "" {
		return fmt.Errorf("socket path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(l.socketPath), 0o755); err != nil {
		return fmt.Errorf("create socket dir: %w", err)
	}

	// Deliberately no removal of an existing socket here: the coordinator
	// already cleared stale files, so a bind conflict means a live primary.
	ln, err := net.Listen("unix", l.socketPath)
	if err != nil {
		return fmt.Errorf("bind socket: %w", err)
	}
	if err := os.Chmod(l.socketPath, 0o600); err != nil {
		_ = ln.Close()
		return fmt.Errorf("chmod socket: %w", err)
	}

	l.mu.Lock()
	l.ln = ln
	l.mu.Unlock()

	l.wg.Add(1)
	go l.acceptLoop(ctx, ln)
	go func() {
		<-ctx.Done()
		l.Close()
	}()

	return nil
}

// Close shuts the listener down and removes the socket file. Safe to call
// more than once and before Start.
func (l *Listener) Close() {
	l.mu.Lock()
	ln := l.ln
	l.ln = nil
	l.mu.Unlock()

	if ln == nil {
		return
	}
	_ = ln.Close()
	l.wg.Wait()
	if err := os.Remove(l.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("listener: remove socket: %v", err)
	}
}

// acceptLoop blocks on Accept until the listener is closed. Connections are
// handled serially so forwarded URIs are processed in accept order.
func (l *Listener) acceptLoop(ctx context.Context, ln net.Listener) {
	defer l.wg.Done()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return
			}
			log.Printf("listener: accept: %v", err)
			return
		}
		l.handleConn(conn)
	}
}

// handleConn reads one payload. Read and decode errors are non-fatal; the
// loop simply moves on to the next connection.
func (l *Listener) handleConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	buf := make([]byte, readBufferSize)
	n, err := conn.Read(buf)
	if n == 0 {
		if err != nil {
			log.Printf("listener: read: %v", err)
		}
		return
	}

	payload := buf[:n]
	if !utf8.Valid(payload) {
		return
	}
	msg := string(payload)
	if !phone.HasTelScheme(msg) {
		// Liveness probe or garbage; not a call request.
		return
	}
	l.handler.HandleTelURI(msg)
}
