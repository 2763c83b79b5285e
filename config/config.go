// Package config loads the declarative SceneBridge configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/scenebridge/scenebridge/interact"
)

const (
	projectConfigName = "scenebridge.yaml"
	homeConfigDir     = ".scenebridge"
	homeConfigName    = "config.yaml"
)

// Config is the file-backed configuration shape.
type Config struct {
	Bridge    BridgeConfig    `yaml:"bridge"`
	Health    HealthConfig    `yaml:"health"`
	Modules   ModulesConfig   `yaml:"modules"`
	Prompt    PromptConfig    `yaml:"prompt"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// BridgeConfig locates the editor bridge and tunes per-endpoint timeouts.
// Timeouts are integer milliseconds; zero means the built-in default.
type BridgeConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`

	QueryTimeoutMS   int `yaml:"query_timeout_ms,omitempty"`
	CaptureTimeoutMS int `yaml:"capture_timeout_ms,omitempty"`
	RunCodeTimeoutMS int `yaml:"run_code_timeout_ms,omitempty"`
}

// QueryTimeout returns the read-query timeout override, zero if unset.
func (b BridgeConfig) QueryTimeout() time.Duration {
	return time.Duration(b.QueryTimeoutMS) * time.Millisecond
}

// CaptureTimeout returns the screenshot timeout override, zero if unset.
func (b BridgeConfig) CaptureTimeout() time.Duration {
	return time.Duration(b.CaptureTimeoutMS) * time.Millisecond
}

// RunCodeTimeout returns the code-execution timeout override, zero if unset.
func (b BridgeConfig) RunCodeTimeout() time.Duration {
	return time.Duration(b.RunCodeTimeoutMS) * time.Millisecond
}

// HealthConfig controls scheduled bridge probing.
type HealthConfig struct {
	// Cron is a standard five-field expression or a descriptor such as
	// "@every 30s". Empty disables scheduled probing.
	Cron string `yaml:"cron,omitempty"`

	ProbeTimeoutMS int `yaml:"probe_timeout_ms,omitempty"`
}

// ProbeTimeout returns the probe timeout override, zero if unset.
func (h HealthConfig) ProbeTimeout() time.Duration {
	return time.Duration(h.ProbeTimeoutMS) * time.Millisecond
}

// ModulesConfig enables or disables tool modules. Absent flags default
// to enabled.
type ModulesConfig struct {
	Editor   *bool `yaml:"editor,omitempty"`
	Interact *bool `yaml:"interact,omitempty"`
}

// PromptConfig selects the interactive prompt backend.
type PromptConfig struct {
	Backend string `yaml:"backend,omitempty"`

	// TimeoutMS bounds each human wait in milliseconds. Zero preserves
	// the default behavior: no timeout at all.
	TimeoutMS int `yaml:"timeout_ms,omitempty"`
}

// Timeout returns the human-wait bound, zero if unset.
func (p PromptConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutMS) * time.Millisecond
}

// TelemetryConfig controls OTLP export. An empty endpoint disables it.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Health: HealthConfig{Cron: "@every 30s"},
		Prompt: PromptConfig{Backend: string(interact.BackendAuto)},
	}
}

// EditorEnabled reports whether the editor module should register.
func (c Config) EditorEnabled() bool {
	return c.Modules.Editor == nil || *c.Modules.Editor
}

// InteractEnabled reports whether the interact module should register.
func (c Config) InteractEnabled() bool {
	return c.Modules.Interact == nil || *c.Modules.Interact
}

// Validate checks field values, naming the offending field.
func (c Config) Validate() error {
	switch interact.Backend(c.Prompt.Backend) {
	case interact.BackendAuto, interact.BackendDialog, interact.BackendTerminal, "":
	default:
		return fmt.Errorf("config: prompt.backend must be auto, dialog, or terminal, got %q", c.Prompt.Backend)
	}
	for name, ms := range map[string]int{
		"bridge.query_timeout_ms":    c.Bridge.QueryTimeoutMS,
		"bridge.capture_timeout_ms":  c.Bridge.CaptureTimeoutMS,
		"bridge.run_code_timeout_ms": c.Bridge.RunCodeTimeoutMS,
		"health.probe_timeout_ms":    c.Health.ProbeTimeoutMS,
		"prompt.timeout_ms":          c.Prompt.TimeoutMS,
	} {
		if ms < 0 {
			return fmt.Errorf("config: %s must not be negative", name)
		}
	}
	return nil
}

// DiscoverPath resolves the config file location with first-match
// semantics: explicit path, then ./scenebridge.yaml, then
// ~/.scenebridge/config.yaml.
func DiscoverPath(explicitPath string) (string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("resolve working directory: %w", err)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("resolve user home: %w", err)
	}
	return DiscoverPathFrom(explicitPath, cwd, homeDir)
}

// DiscoverPathFrom is a testable variant of DiscoverPath.
func DiscoverPathFrom(explicitPath, cwd, homeDir string) (string, bool, error) {
	candidates := make([]string, 0, 2)
	if clean := strings.TrimSpace(explicitPath); clean != "" {
		candidates = append(candidates, filepath.Clean(clean))
	} else {
		candidates = append(candidates, filepath.Join(cwd, projectConfigName))
		candidates = append(candidates, filepath.Join(homeDir, homeConfigDir, homeConfigName))
	}

	for i, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat config candidate %s: %w", candidate, err)
		}
		// An explicit path that does not exist is an error; fallback
		// candidates just move on.
		if i == 0 && strings.TrimSpace(explicitPath) != "" {
			return "", false, fmt.Errorf("config file not found: %s", candidate)
		}
	}
	return "", false, nil
}

// Load reads and validates the config at path, layered over defaults.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(strings.NewReader(string(raw)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve discovers, loads, and falls back to defaults when no file
// exists. The returned path is empty when defaults were used.
func Resolve(explicitPath string) (Config, string, error) {
	path, found, err := DiscoverPath(explicitPath)
	if err != nil {
		return Config{}, "", err
	}
	if !found {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}
