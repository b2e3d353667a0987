package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/testhub/testhub-go/pkg/apiclient"
	"github.com/testhub/testhub-go/pkg/cliconfig"
	"github.com/testhub/testhub-go/pkg/logging"
	"github.com/testhub/testhub-go/pkg/testhub"
)

var (
	// Persistent flags available to all subcommands
	configPath string
	baseURL    string
	token      string
	timeout    time.Duration
	jsonOutput bool
	yamlOutput bool
	query      string
	logLevel   string
	logFormat  string

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"

	// Resolved before any subcommand runs.
	cfg    *cliconfig.Config
	logger = logging.Nop()
)

// configKeys maps flag names to the config keys they override.
var configKeys = map[string]string{
	"base-url":     "base_url",
	"token":        "token",
	"timeout":      "timeout",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"agent-id":     "agent.id",
	"workspace":    "agent.workspace",
	"metrics-addr": "agent.metrics_addr",
	"git-token":    "agent.git_token",
}

// skipConfig marks commands that must work without a valid configuration.
const skipConfig = "skip-config"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "testhub",
	Short: "testhub talks to a TestHub test-management platform",
	Long: `testhub calls the TestHub API: API-testing and UI-automation resources,
test runs and reports, and the agent protocol used by execution agents.

Configuration is layered: built-in defaults, a YAML file (--config,
$TESTHUB_CONFIG, ./.testhub.yaml or ~/.config/testhub/config.yaml),
TESTHUB_* environment variables, then flags.`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Execute()
	PersistentPreRunE: loadConfig,
}

// Execute runs the command tree and prints a formatted error on failure.
// The error is returned so main can report it and pick an exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, FormatError(err))
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default: search ./.testhub.yaml, ~/.config/testhub/config.yaml)")
	pf.StringVar(&baseURL, "base-url", "", "API root, e.g. http://127.0.0.1:8000/api")
	pf.StringVar(&token, "token", "", "Bearer token")
	pf.DurationVar(&timeout, "timeout", 0, "Default request timeout (e.g. 30s)")
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	pf.BoolVar(&yamlOutput, "yaml", false, "Output command results in YAML format")
	pf.StringVarP(&query, "query", "q", "", "JSONPath applied to the response, e.g. '$.results[*].name'")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	rootCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipConfig] == "true" {
		return nil
	}
	flags := map[string]any{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := configKeys[f.Name]; ok {
			flags[key] = f.Value.String()
		}
	})

	loaded, err := cliconfig.Load(cliconfig.LoadOptions{Path: configPath, Flags: flags})
	if err != nil {
		return err
	}
	cfg = loaded
	logger = logging.FromStrings(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	logger.Debug("configuration loaded", "file", cfg.File, "base_url", cfg.BaseURL)
	return nil
}

// newClient builds the API facade from the resolved configuration.
func newClient(opts ...apiclient.Option) (*testhub.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: configuration not loaded", cliconfig.ErrLoadConfig)
	}
	return testhub.FromConfig(cfg, append([]apiclient.Option{apiclient.WithLogger(logger)}, opts...)...)
}

// structured reports whether a machine-readable format was requested.
func structured() bool {
	return jsonOutput || yamlOutput || query != ""
}
