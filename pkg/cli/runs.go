package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/testhub/testhub-go/pkg/apiclient"
	"github.com/testhub/testhub-go/pkg/cli/internal/parse"
	"github.com/testhub/testhub-go/pkg/testhub"
)

var (
	runData     string
	runDataFile string
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "Work with UI-automation test cases",
}

var casesRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Run a test case and wait for the result (up to 5 minutes)",
	Args:  cobra.ExactArgs(1),
	RunE: runByID(func(ctx context.Context, c *testhub.Client, id int64, data any) (*apiclient.Response, error) {
		return c.UIAutomation.RunTestCase(ctx, id, data)
	}),
}

var suitesCmd = &cobra.Command{
	Use:   "suites",
	Short: "Work with UI-automation test suites",
}

var suitesRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Run a test suite and wait for the result (up to 10 minutes)",
	Args:  cobra.ExactArgs(1),
	RunE: runByID(func(ctx context.Context, c *testhub.Client, id int64, data any) (*apiclient.Response, error) {
		return c.UIAutomation.RunTestSuite(ctx, id, data)
	}),
}

type runFunc func(ctx context.Context, c *testhub.Client, id int64, data any) (*apiclient.Response, error)

func runByID(run runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parse.ID(args[0])
		if err != nil {
			return err
		}
		data, err := readData(cmd, runData, runDataFile)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		logger.Info("run started", "command", cmd.Parent().Name(), "id", id)
		resp, err := run(cmd.Context(), client, id, data)
		if err != nil {
			return err
		}
		return printResponse(cmd, resp)
	}
}

func init() {
	for _, c := range []*cobra.Command{casesRunCmd, suitesRunCmd} {
		c.Flags().StringVarP(&runData, "data", "d", "", "JSON run options, e.g. '{\"environment_id\": 3}'")
		c.Flags().StringVar(&runDataFile, "data-file", "", "Read run options from a file (- for stdin)")
	}
	casesCmd.AddCommand(casesRunCmd)
	suitesCmd.AddCommand(suitesRunCmd)
	rootCmd.AddCommand(casesCmd, suitesCmd)
}
