// Package cliconfig resolves the configuration shared by the testhub CLI and
// the agent runner.
//
// Values are layered, lowest precedence first:
//  1. built-in defaults
//  2. a YAML file ($TESTHUB_CONFIG, ./.testhub.yaml or
//     $XDG_CONFIG_HOME/testhub/config.yaml)
//  3. environment variables prefixed with TESTHUB_ (nested keys use "__",
//     e.g. TESTHUB_AGENT__POLL_INTERVAL)
//  4. command-line flags
package cliconfig

import "time"

// Config is the resolved configuration.
type Config struct {
	// BaseURL is the API root, e.g. http://127.0.0.1:8000/api.
	BaseURL string `koanf:"base_url"`
	// Token is sent as a bearer token. TokenFile is read when Token is empty.
	Token     string        `koanf:"token"`
	TokenFile string        `koanf:"token_file"`
	Timeout   time.Duration `koanf:"timeout"`
	UserAgent string        `koanf:"user_agent"`

	Log   LogConfig   `koanf:"log"`
	Agent AgentConfig `koanf:"agent"`

	// Sources records which layer supplied each key.
	Sources map[string]string `koanf:"-"`
	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// AgentConfig drives `testhub agent run`.
type AgentConfig struct {
	ID                string        `koanf:"id"`
	Version           string        `koanf:"version"`
	Workspace         string        `koanf:"workspace"`
	HeartbeatInterval time.Duration `koanf:"heartbeat_interval"`
	PollInterval      time.Duration `koanf:"poll_interval"`
	// GitToken authenticates clones of private repositories.
	GitToken    string `koanf:"git_token"`
	MetricsAddr string `koanf:"metrics_addr"`
	ForwardLogs bool   `koanf:"forward_logs"`
}

// Layers a value can come from.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)
