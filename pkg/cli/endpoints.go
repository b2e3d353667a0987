package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/testhub/testhub-go/pkg/apiclient"
	"github.com/testhub/testhub-go/pkg/cli/internal/output"
	"github.com/testhub/testhub-go/pkg/cli/internal/parse"
	"github.com/testhub/testhub-go/pkg/testhub"
)

var endpointsFamily string

// EndpointInfo describes one endpoint in `endpoints` output.
type EndpointInfo struct {
	Name     string `json:"name" yaml:"name"`
	Method   string `json:"method" yaml:"method"`
	Path     string `json:"path" yaml:"path"`
	Wrap     string `json:"wrap,omitempty" yaml:"wrap,omitempty"`
	Timeout  string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Response string `json:"response" yaml:"response"`
}

var endpointsCmd = &cobra.Command{
	Use:         "endpoints",
	Short:       "List every endpoint binding by name",
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		families := parse.SplitTrim(endpointsFamily, ",")
		var eps []apiclient.Endpoint
		for _, family := range families {
			if !knownFamily(family) {
				return fmt.Errorf("unknown family %q (want one of %v)", family, testhub.Families)
			}
			eps = append(eps, testhub.Endpoints(family)...)
		}
		if len(families) == 0 {
			eps = testhub.Endpoints("")
		}
		infos := make([]EndpointInfo, 0, len(eps))
		for _, ep := range eps {
			infos = append(infos, endpointInfo(ep))
		}
		return printResult(cmd, infos, func(w io.Writer) {
			tw := output.Table(w)
			fmt.Fprintln(tw, "NAME\tMETHOD\tPATH\tNOTES")
			for _, info := range infos {
				notes := ""
				if info.Timeout != "" {
					notes += "timeout " + info.Timeout + " "
				}
				if info.Response != apiclient.ResponseDefault.String() {
					notes += info.Response + " "
				}
				if info.Wrap != "" {
					notes += "wraps " + info.Wrap
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Name, info.Method, info.Path, notes)
			}
			_ = tw.Flush()
		})
	},
}

func endpointInfo(ep apiclient.Endpoint) EndpointInfo {
	info := EndpointInfo{
		Name:     ep.Name,
		Method:   ep.Method,
		Path:     ep.Path,
		Wrap:     ep.Wrap,
		Response: ep.ResponseType.String(),
	}
	if ep.Timeout > 0 {
		info.Timeout = ep.Timeout.String()
	}
	return info
}

func knownFamily(family string) bool {
	for _, f := range testhub.Families {
		if f == family {
			return true
		}
	}
	return false
}

func init() {
	endpointsCmd.Flags().StringVar(&endpointsFamily, "family", "", "Comma-separated families to list: apitesting, uiautomation, agents")
	rootCmd.AddCommand(endpointsCmd)
}
