package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/testhub/testhub-go/pkg/apiclient"
	"github.com/testhub/testhub-go/pkg/cli/internal/output"
)

// printResult outputs a single operation result.
//
// Contract: when --json or --yaml is active, ONLY the encoding of data is
// written to stdout. Human-readable prose (progress messages, hints) must go
// to stderr or be omitted entirely. textFn is called only in text mode.
func printResult(cmd *cobra.Command, data any, textFn func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	switch {
	case query != "":
		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		return printQuery(w, raw)
	case yamlOutput:
		return output.YAML(w, data)
	case jsonOutput:
		return output.JSON(w, data)
	}
	textFn(w)
	return nil
}

// printResponse writes a JSON response body. Text mode and --json both
// pretty-print it; --yaml converts it; --query prints only the matches.
func printResponse(cmd *cobra.Command, resp *apiclient.Response) error {
	w := cmd.OutOrStdout()
	if resp.Type == apiclient.ResponseBinary {
		return fmt.Errorf("response is binary (%s); write it to a file with --output", resp.ContentType())
	}
	if resp.Empty() {
		if !structured() {
			fmt.Fprintf(cmd.ErrOrStderr(), "OK (%d)\n", resp.StatusCode)
		}
		return nil
	}
	if query != "" {
		return printQuery(w, resp.Body)
	}
	if yamlOutput {
		v, err := resp.JSON()
		if err != nil {
			return err
		}
		return output.YAML(w, v)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, resp.Body, "", "  "); err != nil {
		// Not JSON: show it as-is.
		_, err = w.Write(resp.Body)
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func printQuery(w io.Writer, body []byte) error {
	results, err := output.Query(query, body)
	if err != nil {
		return err
	}
	for _, r := range results {
		if s, ok := r.(string); ok && !jsonOutput && !yamlOutput {
			fmt.Fprintln(w, s)
			continue
		}
		if yamlOutput {
			if err := output.YAML(w, r); err != nil {
				return err
			}
			continue
		}
		line, err := json.Marshal(r)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(line))
	}
	return nil
}
