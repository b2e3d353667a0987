package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/testhub/testhub-go/pkg/cli/internal/flags"
	"github.com/testhub/testhub-go/pkg/cli/internal/parse"
)

var (
	aiExportOutput string
	aiExportParams flags.StringSlice
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Work with AI execution records",
}

var aiExportPDFCmd = &cobra.Command{
	Use:   "export-pdf <record-id>",
	Short: "Download the PDF report of an AI execution record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parse.ID(args[0])
		if err != nil {
			return err
		}
		params, err := parse.Params(aiExportParams)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		resp, err := client.UIAutomation.ExportAIExecutionReportPDF(cmd.Context(), id, params)
		if err != nil {
			return err
		}
		path := aiExportOutput
		if path == "" && resp.Filename() == "" {
			path = fmt.Sprintf("ai-execution-report-%d.pdf", id)
		}
		return writeDownload(cmd, resp, path)
	},
}

func init() {
	aiExportPDFCmd.Flags().StringVarP(&aiExportOutput, "output", "o", "", "Output file (default: name suggested by the server)")
	aiExportPDFCmd.Flags().Var(&aiExportParams, "param", "Query parameter key=value (repeatable)")
	aiCmd.AddCommand(aiExportPDFCmd)
	rootCmd.AddCommand(aiCmd)
}
