package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by WriteDefault when the target already exists.
var ErrConfigExists = errors.New("config file already exists")

const redacted = "********"

// Map renders the configuration as the nested document a config file holds,
// with durations in Go notation ("30s").
func (c *Config) Map() map[string]any {
	m := map[string]any{
		"base_url":   c.BaseURL,
		"timeout":    c.Timeout.String(),
		"user_agent": c.UserAgent,
		"log": map[string]any{
			"level":  c.Log.Level,
			"format": c.Log.Format,
		},
		"agent": map[string]any{
			"id":                 c.Agent.ID,
			"version":            c.Agent.Version,
			"workspace":          c.Agent.Workspace,
			"heartbeat_interval": c.Agent.HeartbeatInterval.String(),
			"poll_interval":      c.Agent.PollInterval.String(),
			"forward_logs":       c.Agent.ForwardLogs,
		},
	}
	if c.Token != "" {
		m["token"] = c.Token
	}
	if c.TokenFile != "" {
		m["token_file"] = c.TokenFile
	}
	agent := m["agent"].(map[string]any)
	if c.Agent.GitToken != "" {
		agent["git_token"] = c.Agent.GitToken
	}
	if c.Agent.MetricsAddr != "" {
		agent["metrics_addr"] = c.Agent.MetricsAddr
	}
	return m
}

// Redacted returns Map with secrets masked, for display.
func (c *Config) Redacted() map[string]any {
	m := c.Map()
	if _, ok := m["token"]; ok {
		m["token"] = redacted
	}
	agent := m["agent"].(map[string]any)
	if _, ok := agent["git_token"]; ok {
		agent["git_token"] = redacted
	}
	return m
}

// WriteDefault writes a starter config file to path with a generated agent
// id. An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) (*Config, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	cfg := NewDefault()
	cfg.Agent.ID = DefaultAgentID()

	data, err := yaml.Marshal(cfg.Map())
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}
	cfg.File = path
	return cfg, nil
}
