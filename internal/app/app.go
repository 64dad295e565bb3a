package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pbxkit/click-to-call/internal/config"
	"github.com/pbxkit/click-to-call/internal/instance"
	"github.com/pbxkit/click-to-call/internal/notify"
	"github.com/pbxkit/click-to-call/internal/pbx"
	"github.com/pbxkit/click-to-call/internal/phone"
	"github.com/pbxkit/click-to-call/internal/prefs"
	"github.com/pbxkit/click-to-call/internal/state"
	"github.com/pbxkit/click-to-call/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses the default per-user path

	// TelURI is the tel: argument the OS passed when invoking us as the
	// registered handler, or empty for a plain interactive start.
	TelURI string

	// Background runs the forwarding listener without the form. This is
	// the mode a secondary spawns when no primary is reachable.
	Background bool
}

// Run boots the application until the work is done or ctx is cancelled.
// A nil error means a clean exit: a successful hand-off to a primary
// instance, a completed direct call, or normal form termination.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	settings := prefs.Load(opts.PrefsPath)
	store := state.NewStore(settings)
	client := pbx.NewClient(cfg.HTTPTimeout)
	notifier := notify.NewDesktop()

	// Role is decided exactly once; immutable for the process lifetime.
	role := instance.DetermineRole(cfg.SocketPath)
	log.Printf("app: starting as %s (socket %s)", role, cfg.SocketPath)

	if role == instance.RoleSecondary && opts.TelURI != "" {
		err := instance.ForwardOrSpawn(cfg.SocketPath, opts.TelURI, nil, instance.SpawnWait)
		if err == nil {
			log.Printf("app: handed off %s to primary", opts.TelURI)
			return nil
		}
		// Primary unreachable mid-race; operate independently. This can
		// transiently produce two foreground instances.
		log.Printf("app: hand-off failed, continuing independently: %v", err)
	}

	// A tel: invocation with a complete account dials directly and exits
	// without ever showing the form.
	if opts.TelURI != "" && settings.Configured() {
		if number := phone.Normalize(opts.TelURI); number != "" {
			outcome := client.Dispatch(ctx, pbx.CallRequest{
				Domain:     settings.Domain,
				Extension:  settings.Extension,
				Key:        settings.Key,
				Number:     number,
				AutoAnswer: settings.AutoAnswer,
			})
			notifier.Notify(outcome.Notification())
			log.Printf("app: %s", outcome.StatusText())
			return nil
		}
	}

	if opts.Background {
		return runBackground(ctx, cfg, store, client, notifier)
	}
	return runInteractive(ctx, cfg, opts, store, client, notifier, role)
}

// runBackground serves forwarded URIs with no form attached. Unconfigured
// accounts cannot prompt here; those URIs are dropped with a log line.
func runBackground(ctx context.Context, cfg config.Config, store *state.Store, client *pbx.Client, notifier notify.Notifier) error {
	listener := instance.NewListener(cfg.SocketPath, &router{
		store:    store,
		caller:   client,
		notifier: notifier,
	})
	if err := listener.Start(ctx); err != nil {
		return fmt.Errorf("start listener: %w", err)
	}
	defer listener.Close()

	<-ctx.Done()
	return nil
}

func runInteractive(ctx context.Context, cfg config.Config, opts Options, store *state.Store, client *pbx.Client, notifier notify.Notifier, role instance.Role) error {
	// The TUI owns the terminal; route log output to a file instead.
	if f, err := tea.LogToFile(logFilePath(), "c2c"); err == nil {
		defer func() { _ = f.Close() }()
	}

	initialURI := ""
	if opts.TelURI != "" {
		// Reaching here with a tel: URI means the account is incomplete;
		// open the form with the number prefilled.
		initialURI = opts.TelURI
	}

	program := ui.NewProgram(ui.Options{
		Context:        ctx,
		Caller:         client,
		Notifier:       notifier,
		Store:          store,
		PrefsPath:      opts.PrefsPath,
		ThemeName:      cfg.Theme,
		InitialURI:     initialURI,
		RaiseOnForward: cfg.RaiseOnForward,
	})

	// Only the primary owns the forwarding endpoint. Losing the bind race
	// is non-fatal: the form still works, we just cannot receive forwards.
	if role == instance.RolePrimary {
		listener := instance.NewListener(cfg.SocketPath, &router{
			store:    store,
			caller:   client,
			notifier: notifier,
			ui:       ui.NewSink(program),
		})
		if err := listener.Start(ctx); err != nil {
			log.Printf("app: forwarding listener unavailable: %v", err)
		} else {
			defer listener.Close()
		}
	}

	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			// Signal-driven shutdown is a normal termination.
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// logFilePath returns the per-user log location, best-effort.
func logFilePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	dir = filepath.Join(dir, "click-to-call")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "click-to-call.log")
}
