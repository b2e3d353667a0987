package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/testhub/testhub-go/pkg/testhub"
)

var completionCmd = &cobra.Command{
	Use:   "completion <bash|zsh|fish|powershell>",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts.

Examples:
  testhub completion bash > /etc/bash_completion.d/testhub
  testhub completion zsh > "${fpath[1]}/_testhub"
  testhub completion fish > ~/.config/fish/completions/testhub.fish`,
	Args:        cobra.ExactArgs(1),
	ValidArgs:   []string{"bash", "zsh", "fish", "powershell"},
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(w, true)
		case "zsh":
			return rootCmd.GenZshCompletion(w)
		case "fish":
			return rootCmd.GenFishCompletion(w, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(w)
		}
		return fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish, powershell)", args[0])
	},
}

// completeEndpoints suggests qualified endpoint names for `call`.
func completeEndpoints(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, family := range testhub.Families {
		for _, ep := range testhub.Endpoints(family) {
			if strings.HasPrefix(ep.Name, toComplete) {
				names = append(names, ep.Name)
			}
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	callCmd.ValidArgsFunction = completeEndpoints
	rootCmd.AddCommand(completionCmd)
}
