package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/testhub/testhub-go/pkg/apiclient"
	"github.com/testhub/testhub-go/pkg/cli/internal/flags"
	"github.com/testhub/testhub-go/pkg/cli/internal/parse"
)

var (
	callID       string
	callParams   flags.StringSlice
	callData     string
	callDataFile string
	callOutput   string
)

var callCmd = &cobra.Command{
	Use:   "call <endpoint>",
	Short: "Invoke any endpoint by name",
	Long: `Invoke any endpoint by its qualified name, as listed by 'testhub endpoints'.

Examples:
  testhub call apitesting.GetRequestHistory --param page=2 --param page_size=50
  testhub call uiautomation.GetProjectDetail --id 12
  testhub call uiautomation.CreateProject --data '{"name": "Checkout"}'
  testhub call uiautomation.ExportAIExecutionReportPDF --id 15 -o report.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := parse.Params(callParams)
		if err != nil {
			return err
		}
		data, err := readData(cmd, callData, callDataFile)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		resp, err := client.Call(cmd.Context(), args[0], callID, params, data)
		if err != nil {
			return err
		}
		if resp.Type == apiclient.ResponseBinary || callOutput != "" {
			return writeDownload(cmd, resp, callOutput)
		}
		return printResponse(cmd, resp)
	},
}

// readData decodes the request body from --data or --data-file ("-" reads
// stdin). Numbers keep their literal form.
func readData(cmd *cobra.Command, inline, file string) (any, error) {
	var raw []byte
	switch {
	case inline != "" && file != "":
		return nil, fmt.Errorf("--data and --data-file cannot be combined")
	case inline != "":
		raw = []byte(inline)
	case file == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		raw = b
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		raw = b
	default:
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("request body is not valid JSON: %w", err)
	}
	return v, nil
}

// writeDownload saves a response body to path, or to the server-suggested
// file name when path is empty.
func writeDownload(cmd *cobra.Command, resp *apiclient.Response, path string) error {
	if path == "" {
		path = resp.Filename()
	}
	if path == "" {
		return fmt.Errorf("response is binary; choose a file with --output")
	}
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(resp.Blob())
		return err
	}
	if err := os.WriteFile(path, resp.Blob(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return printResult(cmd, map[string]any{"file": path, "bytes": len(resp.Blob()), "content_type": resp.ContentType()}, func(w io.Writer) {
		fmt.Fprintf(w, "Saved %d bytes to %s\n", len(resp.Blob()), filepath.Clean(path))
	})
}

func init() {
	callCmd.Flags().StringVar(&callID, "id", "", "Identifier for endpoints whose path takes one")
	callCmd.Flags().Var(&callParams, "param", "Query parameter key=value (repeatable; repeated keys become a list)")
	callCmd.Flags().StringVarP(&callData, "data", "d", "", "JSON request body")
	callCmd.Flags().StringVar(&callDataFile, "data-file", "", "Read the JSON request body from a file (- for stdin)")
	callCmd.Flags().StringVarP(&callOutput, "output", "o", "", "Write the response body to a file (- for stdout)")
	rootCmd.AddCommand(callCmd)
}
