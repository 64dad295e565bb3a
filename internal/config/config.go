package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the application-level knobs that are not part of the PBX
// account settings: presentation, socket placement and transport tuning.
type Config struct {
	Theme          string
	SocketPath     string
	RaiseOnForward bool
	HTTPTimeout    time.Duration
}

const (
	defaultConfigPath = "~/.config/click-to-call/config.toml"
	defaultTheme      = "dark"
	socketFileName    = "click-to-call.sock"

	defaultHTTPTimeoutSeconds = 10
)

// DefaultSocketPath returns the well-known socket location: the per-user
// runtime directory when available, the temp directory otherwise.
func DefaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, socketFileName)
	}
	return filepath.Join(os.TempDir(), socketFileName)
}

// Load locates and parses the app config, falling back to defaults when the
// file is missing. Environment variables (optionally from a .env file)
// override file values.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Theme:       defaultTheme,
		SocketPath:  DefaultSocketPath(),
		HTTPTimeout: defaultHTTPTimeoutSeconds * time.Second,
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	var raw struct {
		Theme              string `toml:"theme"`
		SocketPath         string `toml:"socket_path"`
		RaiseOnForward     bool   `toml:"raise_on_forward"`
		HTTPTimeoutSeconds int    `toml:"http_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	if sock := strings.TrimSpace(raw.SocketPath); sock != "" {
		cfg.SocketPath = mustExpand(sock)
	}
	cfg.RaiseOnForward = raw.RaiseOnForward
	if raw.HTTPTimeoutSeconds > 0 {
		cfg.HTTPTimeout = time.Duration(raw.HTTPTimeoutSeconds) * time.Second
	}

	return applyEnv(cfg), nil
}

// applyEnv layers CLICK_TO_CALL_* environment overrides on top of cfg.
func applyEnv(cfg Config) Config {
	_ = godotenv.Load()

	if sock := strings.TrimSpace(os.Getenv("CLICK_TO_CALL_SOCKET")); sock != "" {
		cfg.SocketPath = mustExpand(sock)
	}
	if raise := os.Getenv("CLICK_TO_CALL_RAISE_ON_FORWARD"); raise != "" {
		if b, err := strconv.ParseBool(raise); err == nil {
			cfg.RaiseOnForward = b
		}
	}
	return cfg
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
