package instance

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// acceptOne reads a single connection's payload into the returned channel.
func acceptOne(t *testing.T, ln net.Listener) <-chan string {
	t.Helper()
	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		out <- string(data)
	}()
	return out
}

func TestDetermineRole_NoSocketIsPrimary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c2c.sock")
	if got := DetermineRole(path); got != RolePrimary {
		t.Fatalf("DetermineRole = %v, want primary", got)
	}
}

func TestDetermineRole_StaleSocketRemovedAndPrimary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c2c.sock")
	// A plain file at the socket path: stat succeeds, connect fails.
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if got := DetermineRole(path); got != RolePrimary {
		t.Fatalf("DetermineRole = %v, want primary", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("stale socket not removed: %v", err)
	}
}

func TestDetermineRole_LiveListenerIsSecondary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c2c.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()
	payload := acceptOne(t, ln)

	if got := DetermineRole(path); got != RoleSecondary {
		t.Fatalf("DetermineRole = %v, want secondary", got)
	}

	select {
	case msg := <-payload:
		if !strings.HasPrefix(msg, "ping-") {
			t.Fatalf("probe payload = %q, want ping- prefix", msg)
		}
		if strings.HasPrefix(msg, "tel:") {
			t.Fatalf("probe payload %q would be treated as a call", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("primary never received the liveness probe")
	}
}

func TestForward_WritesRawURI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c2c.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()
	payload := acceptOne(t, ln)

	if err := Forward(path, "tel:5551234567"); err != nil {
		t.Fatalf("Forward returned error: %v", err)
	}

	select {
	case msg := <-payload:
		if msg != "tel:5551234567" {
			t.Fatalf("payload = %q, want exactly tel:5551234567", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("primary never received the forwarded URI")
	}
}

func TestForward_NoListenerFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c2c.sock")
	if err := Forward(path, "tel:555"); err == nil {
		t.Fatalf("Forward succeeded with no listener")
	}
}

func TestForwardOrSpawn_SpawnsThenRetries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c2c.sock")

	var spawned int
	payload := make(chan string, 1)
	spawn := func() error {
		spawned++
		ln, err := net.Listen("unix", path)
		if err != nil {
			return err
		}
		go func() {
			defer ln.Close()
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
			data, _ := io.ReadAll(conn)
			payload <- string(data)
		}()
		return nil
	}

	if err := ForwardOrSpawn(path, "tel:5551234567", spawn, 50*time.Millisecond); err != nil {
		t.Fatalf("ForwardOrSpawn returned error: %v", err)
	}
	if spawned != 1 {
		t.Fatalf("spawn called %d times, want 1", spawned)
	}

	select {
	case msg := <-payload:
		if msg != "tel:5551234567" {
			t.Fatalf("payload = %q", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("spawned instance never received the URI")
	}
}

func TestForwardOrSpawn_SkipsSpawnWhenPrimaryLive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c2c.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()
	_ = acceptOne(t, ln)

	spawn := func() error {
		t.Fatalf("spawn called while a primary was reachable")
		return nil
	}
	if err := ForwardOrSpawn(path, "tel:555", spawn, 50*time.Millisecond); err != nil {
		t.Fatalf("ForwardOrSpawn returned error: %v", err)
	}
}

func TestForwardOrSpawn_FailsWhenSpawnNeverBinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c2c.sock")
	spawn := func() error { return nil } // pretends to launch, never binds

	err := ForwardOrSpawn(path, "tel:555", spawn, 10*time.Millisecond)
	if err == nil {
		t.Fatalf("ForwardOrSpawn succeeded with no listener ever bound")
	}
	if !strings.Contains(err.Error(), "forward after spawn") {
		t.Fatalf("error = %v, want forward-after-spawn failure", err)
	}
}
