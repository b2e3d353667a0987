package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/testhub/testhub-go/pkg/cli/internal/parse"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage API-testing request history",
}

var historyBatchDeleteCmd = &cobra.Command{
	Use:   "batch-delete <id>...",
	Short: "Delete several request-history records in one call",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parse.IDs(args)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		resp, err := client.APITesting.BatchDeleteRequestHistory(cmd.Context(), ids)
		if err != nil {
			return err
		}
		if !resp.Empty() {
			return printResponse(cmd, resp)
		}
		return printResult(cmd, map[string]any{"deleted": ids}, func(w io.Writer) {
			fmt.Fprintf(w, "Deleted %d history record(s)\n", len(ids))
		})
	},
}

func init() {
	historyCmd.AddCommand(historyBatchDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
