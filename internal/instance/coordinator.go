package instance

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"time"
)

// Role is decided exactly once at process start and is immutable for the
// process's lifetime.
type Role int

const (
	// RolePrimary owns the socket listener and the interactive form.
	RolePrimary Role = iota
	// RoleSecondary forwards its work to the primary and exits.
	RoleSecondary
)

func (r Role) String() string {
	if r == RoleSecondary {
		return "secondary"
	}
	return "primary"
}

const (
	probeTimeout = 500 * time.Millisecond

	// SpawnWait is how long a secondary gives a freshly spawned background
	// instance to bind its socket before retrying the forward.
	SpawnWait = time.Second
)

// DetermineRole probes socketPath to decide whether another instance is
// already running. A successful connect plus liveness write means a live
// primary exists. A socket file that refuses the probe is stale: it is
// removed so the caller can bind it.
func DetermineRole(socketPath string) Role {
	if _, err := os.Stat(socketPath); err != nil {
		return RolePrimary
	}

	conn, err := net.DialTimeout("unix", socketPath, probeTimeout)
	if err == nil {
		defer func() { _ = conn.Close() }()
		_ = conn.SetWriteDeadline(time.Now().Add(probeTimeout))
		// The ping payload must not look like a call request; the listener
		// discards anything without the tel: prefix.
		ping := fmt.Sprintf("ping-%d", time.Now().Unix())
		if _, err := conn.Write([]byte(ping)); err == nil {
			return RoleSecondary
		}
	}

	_ = os.Remove(socketPath)
	return RolePrimary
}

// Forward writes the raw URI to the primary's socket and closes. No
// response is read; success is inferred from the write not failing.
func Forward(socketPath, uri string) error {
	conn, err := net.DialTimeout("unix", socketPath, probeTimeout)
	if err != nil {
		return fmt.Errorf("connect primary: %w", err)
	}
	defer func() { _ = conn.Close() }()

	_ = conn.SetWriteDeadline(time.Now().Add(probeTimeout))
	if _, err := conn.Write([]byte(uri)); err != nil {
		return fmt.Errorf("forward uri: %w", err)
	}
	return nil
}

// SpawnFunc launches a background instance of this program. Injectable so
// tests can substitute an in-process listener.
type SpawnFunc func() error

// SpawnBackground relaunches the current executable as a detached
// background listener.
func SpawnBackground() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	cmd := exec.Command(exe, "-background")
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn background instance: %w", err)
	}
	return cmd.Process.Release()
}

// ForwardOrSpawn forwards uri to the primary, and when no primary is
// reachable spawns one, waits for it to come up, and retries the forward
// once. A spawned instance that fails to bind within the wait window is
// indistinguishable from a crashed one; the returned error lets the caller
// fall back to operating independently.
func ForwardOrSpawn(socketPath, uri string, spawn SpawnFunc, wait time.Duration) error {
	if err := Forward(socketPath, uri); err == nil {
		return nil
	}

	if spawn == nil {
		spawn = SpawnBackground
	}
	if wait <= 0 {
		wait = SpawnWait
	}

	if err := spawn(); err != nil {
		return err
	}
	time.Sleep(wait)

	if err := Forward(socketPath, uri); err != nil {
		return fmt.Errorf("forward after spawn: %w", err)
	}
	return nil
}
