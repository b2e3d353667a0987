package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testhub/testhub-go/pkg/logging"
)

// backend records requests and replies with a canned response per path.
type backend struct {
	mu       sync.Mutex
	requests []recorded
	replies  map[string]reply
}

type recorded struct {
	method string
	path   string
	query  string
	body   string
	auth   string
	ua     string
}

type reply struct {
	status      int
	contentType string
	header      map[string]string
	body        string
}

func newBackend(t *testing.T, replies map[string]reply) (*backend, string) {
	t.Helper()
	b := &backend{replies: replies}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.requests = append(b.requests, recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			body:   string(body),
			auth:   r.Header.Get("Authorization"),
			ua:     r.Header.Get("User-Agent"),
		})
		b.mu.Unlock()

		rep, ok := b.replies[r.URL.Path]
		if !ok {
			http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
			return
		}
		ct := rep.contentType
		if ct == "" {
			ct = "application/json"
		}
		w.Header().Set("Content-Type", ct)
		for k, v := range rep.header {
			w.Header().Set(k, v)
		}
		status := rep.status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, rep.body)
	}))
	t.Cleanup(ts.Close)
	return b, ts.URL + "/api"
}

func (b *backend) last() recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return recorded{}
	}
	return b.requests[len(b.requests)-1]
}

func (b *backend) paths() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, r := range b.requests {
		out = append(out, r.method+" "+r.path)
	}
	return out
}

// resetFlags restores every flag in the tree to its default so commands can
// be executed repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with an empty config file and returns what
// was written to stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	for _, kv := range os.Environ() {
		if name, _, _ := strings.Cut(kv, "="); strings.HasPrefix(name, "TESTHUB_") {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	empty := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("{}\n"), 0o600))

	resetFlags(rootCmd)
	cfg = nil
	logger = logging.Nop()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{"--config", empty, "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCallCommand(t *testing.T) {
	b, base := newBackend(t, map[string]reply{
		"/api/ui-automation/projects/12/": {body: `{"id":12,"name":"Checkout"}`},
	})

	stdout, _, err := execute(t, "call", "uiautomation.GetProjectDetail", "--id", "12", "--base-url", base, "--token", "s3cret")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":12,"name":"Checkout"}`, stdout)
	assert.Contains(t, stdout, "\n  \"id\": 12", "text mode pretty-prints JSON")

	got := b.last()
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "Bearer s3cret", got.auth)
}

func TestCallCommand_ParamsAndData(t *testing.T) {
	b, base := newBackend(t, map[string]reply{
		"/api/api-testing/histories/":      {body: `{"count":0,"results":[]}`},
		"/api/ui-automation/projects/":     {status: http.StatusCreated, body: `{"id":3}`},
		"/api/ui-automation/test-cases/5/": {status: http.StatusNoContent},
	})

	_, _, err := execute(t, "call", "apitesting.GetRequestHistory", "--param", "page=2", "--param", "status=ok", "--param", "status=fail", "--base-url", base)
	require.NoError(t, err)
	assert.Equal(t, "page=2&status=ok&status=fail", b.last().query)

	_, _, err = execute(t, "call", "uiautomation.CreateProject", "-d", `{"name":"Checkout","retries":3}`, "--base-url", base)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Checkout","retries":3}`, b.last().body)

	_, stderr, err := execute(t, "call", "uiautomation.DeleteTestCase", "--id", "5", "--base-url", base)
	require.NoError(t, err)
	assert.Equal(t, "OK (204)\n", stderr)
}

func TestCallCommand_Query(t *testing.T) {
	_, base := newBackend(t, map[string]reply{
		"/api/api-testing/histories/": {body: `{"count":2,"results":[{"name":"login"},{"name":"logout"}]}`},
	})

	stdout, _, err := execute(t, "call", "apitesting.GetRequestHistory", "-q", "$.results[*].name", "--base-url", base)
	require.NoError(t, err)
	assert.Equal(t, "login\nlogout\n", stdout)

	stdout, _, err = execute(t, "call", "apitesting.GetRequestHistory", "-q", "$.count", "--json", "--base-url", base)
	require.NoError(t, err)
	assert.Equal(t, "2\n", stdout)
}

func TestCallCommand_Errors(t *testing.T) {
	_, base := newBackend(t, nil)

	_, _, err := execute(t, "call", "uiautomation.NoSuchThing", "--base-url", base)
	require.Error(t, err)
	assert.Contains(t, FormatError(err), "testhub endpoints")

	_, _, err = execute(t, "call", "uiautomation.GetProjectDetail", "--base-url", base)
	assert.ErrorContains(t, err, "id")

	_, _, err = execute(t, "call", "uiautomation.GetProjects", "--id", "12", "--base-url", base)
	assert.ErrorContains(t, err, "does not take an id")

	_, _, err = execute(t, "call", "uiautomation.CreateProject", "-d", "{not json", "--base-url", base)
	assert.ErrorContains(t, err, "request body is not valid JSON")

	_, _, err = execute(t, "call", "uiautomation.GetProjectDetail", "--id", "404", "--base-url", base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestAIExportPDF(t *testing.T) {
	b, base := newBackend(t, map[string]reply{
		"/api/ui-automation/ai-execution-records/15/export-pdf/": {
			contentType: "application/pdf",
			header:      map[string]string{"Content-Disposition": `attachment; filename="record-15.pdf"`},
			body:        "%PDF-1.7",
		},
	})
	out := filepath.Join(t.TempDir(), "report.pdf")

	stdout, _, err := execute(t, "ai", "export-pdf", "15", "-o", out, "--param", "lang=en", "--json", "--base-url", base)
	require.NoError(t, err)
	assert.Equal(t, "lang=en", b.last().query)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "application/pdf", result["content_type"])
	assert.EqualValues(t, 8, result["bytes"])

	stdout, _, err = execute(t, "call", "uiautomation.ExportAIExecutionReportPDF", "--id", "15", "-o", "-", "--base-url", base)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", stdout)
}

func TestHistoryBatchDelete(t *testing.T) {
	b, base := newBackend(t, map[string]reply{
		"/api/api-testing/histories/batch-delete/": {status: http.StatusNoContent},
	})

	stdout, _, err := execute(t, "history", "batch-delete", "4", "5", "--base-url", base)
	require.NoError(t, err)
	assert.Equal(t, "Deleted 2 history record(s)\n", stdout)
	assert.JSONEq(t, `{"ids":[4,5]}`, b.last().body)

	_, _, err = execute(t, "history", "batch-delete", "4", "x", "--base-url", base)
	assert.ErrorContains(t, err, `invalid id "x"`)
}

func TestRunCommands(t *testing.T) {
	b, base := newBackend(t, map[string]reply{
		"/api/ui-automation/test-cases/7/run/":        {body: `{"status":"passed"}`},
		"/api/ui-automation/test-suites/9/run_suite/": {body: `{"status":"failed","passed":3,"failed":1}`},
	})

	stdout, _, err := execute(t, "cases", "run", "7", "-d", `{"environment_id":3}`, "--base-url", base)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"passed"}`, stdout)
	assert.Equal(t, http.MethodPost, b.last().method)
	assert.JSONEq(t, `{"environment_id":3}`, b.last().body)

	stdout, _, err = execute(t, "suites", "run", "9", "-q", "$.status", "--base-url", base)
	require.NoError(t, err)
	assert.Equal(t, "failed\n", stdout)
}

func TestDashboard(t *testing.T) {
	b, base := newBackend(t, map[string]reply{
		"/api/api-testing/dashboard/stats/":   {body: `{"projects":4,"requests":120}`},
		"/api/ui-automation/dashboard/stats/": {body: `{"projects":2,"pass_rate":97.5}`},
	})

	stdout, _, err := execute(t, "dashboard", "--json", "--base-url", base)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"apitesting": {"projects": 4, "requests": 120},
		"uiautomation": {"projects": 2, "pass_rate": 97.5}
	}`, stdout)
	assert.ElementsMatch(t, []string{
		"GET /api/api-testing/dashboard/stats/",
		"GET /api/ui-automation/dashboard/stats/",
	}, b.paths())

	stdout, _, err = execute(t, "dashboard", "--base-url", base)
	require.NoError(t, err)
	assert.Contains(t, stdout, "FAMILY")
	assert.Regexp(t, `uiautomation\s+pass_rate\s+97.5`, stdout)
}

func TestEndpointsCommand(t *testing.T) {
	stdout, _, err := execute(t, "endpoints", "--family", "uiautomation", "--json")
	require.NoError(t, err)

	var infos []EndpointInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &infos))
	byName := map[string]EndpointInfo{}
	for _, info := range infos {
		byName[info.Name] = info
	}
	assert.Equal(t, "10m0s", byName["uiautomation.RunTestSuite"].Timeout)
	assert.Equal(t, "binary", byName["uiautomation.ExportAIExecutionReportPDF"].Response)
	_, hasAgents := byName["agents.Register"]
	assert.False(t, hasAgents)

	_, _, err = execute(t, "endpoints", "--family", "billing")
	assert.ErrorContains(t, err, `unknown family "billing"`)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version", "--json")
	require.NoError(t, err)

	var out VersionOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "TestHubClient/1.0", out.Client)
	assert.NotEmpty(t, out.Go)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testhub", "config.yaml")

	stdout, _, err := execute(t, "config", "init", "--path", path, "--json")
	require.NoError(t, err)
	var created map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &created))
	assert.Equal(t, path, created["file"])
	assert.True(t, strings.HasPrefix(created["agent_id"], "agent-"))

	_, _, err = execute(t, "config", "init", "--path", path)
	require.Error(t, err)

	resetFlags(rootCmd)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"config", "show", "--config", path, "--token", "abc", "--json"})
	require.NoError(t, rootCmd.Execute())

	var shown ConfigShowOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &shown))
	assert.Equal(t, path, shown.File)
	assert.Equal(t, "********", shown.Config["token"])
	assert.Equal(t, "flag", shown.Sources["token"])
	assert.Equal(t, "file", shown.Sources["agent.id"])
}

func TestOutputFlagsAreExclusive(t *testing.T) {
	_, _, err := execute(t, "version", "--json", "--yaml")
	assert.Error(t, err)
}
