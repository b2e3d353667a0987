package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/testhub/testhub-go/pkg/apitesting"
	"github.com/testhub/testhub-go/pkg/cli/internal/output"
	"github.com/testhub/testhub-go/pkg/uiautomation"
)

// DashboardOutput combines the dashboard counters of both families.
type DashboardOutput struct {
	APITesting   map[string]any `json:"apitesting" yaml:"apitesting"`
	UIAutomation map[string]any `json:"uiautomation" yaml:"uiautomation"`
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show API-testing and UI-automation dashboard stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		var out DashboardOutput
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			resp, err := client.APITesting.GetDashboardStats(ctx)
			if err != nil {
				return fmt.Errorf("%s stats: %w", apitesting.Family, err)
			}
			return resp.Decode(&out.APITesting)
		})
		g.Go(func() error {
			resp, err := client.UIAutomation.GetDashboardStats(ctx)
			if err != nil {
				return fmt.Errorf("%s stats: %w", uiautomation.Family, err)
			}
			return resp.Decode(&out.UIAutomation)
		})
		if err := g.Wait(); err != nil {
			return err
		}

		return printResult(cmd, out, func(w io.Writer) {
			tw := output.Table(w)
			fmt.Fprintln(tw, "FAMILY\tSTAT\tVALUE")
			writeStats(tw, apitesting.Family, out.APITesting)
			writeStats(tw, uiautomation.Family, out.UIAutomation)
			_ = tw.Flush()
		})
	},
}

func writeStats(w io.Writer, family string, stats map[string]any) {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := stats[k]
		switch v.(type) {
		case map[string]any, []any:
			b, _ := json.Marshal(v)
			v = string(b)
		}
		fmt.Fprintf(w, "%s\t%s\t%v\n", family, k, v)
	}
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
