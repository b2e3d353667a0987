package cliconfig

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/testhub/testhub-go/pkg/agents"
	"github.com/testhub/testhub-go/pkg/apiclient"
)

// Defaults that are not owned by another package.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// NewDefault returns the configuration used when nothing else is set.
func NewDefault() *Config {
	return &Config{
		BaseURL:   apiclient.DefaultBaseURL,
		Timeout:   apiclient.DefaultTimeout,
		UserAgent: apiclient.DefaultUserAgent,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Agent: AgentConfig{
			Version:           agents.DefaultAgentVersion,
			Workspace:         agents.DefaultWorkspace(),
			HeartbeatInterval: agents.DefaultHeartbeatInterval,
			PollInterval:      agents.DefaultPollInterval,
			ForwardLogs:       true,
		},
		Sources: map[string]string{},
	}
}

// defaultsMap flattens NewDefault for the koanf defaults layer.
func defaultsMap() map[string]any {
	d := NewDefault()
	return map[string]any{
		"base_url":                 d.BaseURL,
		"timeout":                  d.Timeout.String(),
		"user_agent":               d.UserAgent,
		"log.level":                d.Log.Level,
		"log.format":               d.Log.Format,
		"agent.version":            d.Agent.Version,
		"agent.workspace":          d.Agent.Workspace,
		"agent.heartbeat_interval": d.Agent.HeartbeatInterval.String(),
		"agent.poll_interval":      d.Agent.PollInterval.String(),
		"agent.forward_logs":       d.Agent.ForwardLogs,
	}
}

// DefaultAgentID derives a stable id from the host name and the last six
// hex digits of the first hardware address, e.g. "agent-build01-3FA2C1".
func DefaultAgentID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("agent-%s-%s", host, macSuffix())
}

func macSuffix() string {
	ifaces, err := net.Interfaces()
	if err == nil {
		for _, iface := range ifaces {
			if iface.Flags&net.FlagLoopback != 0 || len(iface.HardwareAddr) < 3 {
				continue
			}
			hw := strings.ToUpper(strings.ReplaceAll(iface.HardwareAddr.String(), ":", ""))
			return hw[len(hw)-6:]
		}
	}
	return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
}

// DefaultConfigPath is $XDG_CONFIG_HOME/testhub/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return LocalConfigFileName
	}
	return filepath.Join(dir, GlobalConfigDir, GlobalConfigFileName)
}
