package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/testhub/testhub-go/pkg/cli/internal/output"
	"github.com/testhub/testhub-go/pkg/cliconfig"
)

var (
	configInitPath  string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the testhub configuration",
}

// ConfigShowOutput is the structured form of `config show`.
type ConfigShowOutput struct {
	File    string            `json:"file,omitempty" yaml:"file,omitempty"`
	Config  map[string]any    `json:"config" yaml:"config"`
	Sources map[string]string `json:"sources" yaml:"sources"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display resolved configuration and where each value came from",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ConfigShowOutput{
			File:    cfg.File,
			Config:  cfg.Redacted(),
			Sources: cfg.Sources,
		}
		return printResult(cmd, out, func(w io.Writer) {
			if out.File != "" {
				fmt.Fprintf(w, "Config file: %s\n\n", out.File)
			} else {
				fmt.Fprint(w, "Config file: (none)\n\n")
			}
			tw := output.Table(w)
			fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
			for _, key := range flatKeys(out.Config, "") {
				fmt.Fprintf(tw, "%s\t%v\t%s\n", key.name, key.value, out.Sources[key.name])
			}
			_ = tw.Flush()
		})
	},
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a starter config file with a generated agent id",
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configInitPath
		if path == "" {
			path = cliconfig.DefaultConfigPath()
		}
		written, err := cliconfig.WriteDefault(path, configInitForce)
		if err != nil {
			return err
		}
		return printResult(cmd, map[string]string{"file": path, "agent_id": written.Agent.ID}, func(w io.Writer) {
			fmt.Fprintf(w, "Wrote %s\n", path)
			fmt.Fprintf(w, "Agent id: %s\n", written.Agent.ID)
			fmt.Fprintln(w, "Review base_url and set a token before running commands.")
		})
	},
}

type flatKey struct {
	name  string
	value any
}

// flatKeys lists the leaves of a nested config map as dotted keys, sorted.
func flatKeys(m map[string]any, prefix string) []flatKey {
	var out []flatKey
	for k, v := range m {
		name := prefix + k
		if nested, ok := v.(map[string]any); ok {
			out = append(out, flatKeys(nested, name+".")...)
			continue
		}
		out = append(out, flatKey{name: name, value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "Where to write the file (default: ~/.config/testhub/config.yaml)")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
