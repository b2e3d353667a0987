package uiautomation

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testhub/testhub-go/pkg/apiclient"
	"github.com/testhub/testhub-go/pkg/apiclient/apiclienttest"
)

var (
	ctxType    = reflect.TypeOf((*context.Context)(nil)).Elem()
	paramsType = reflect.TypeOf(apiclient.Params{})
	idsType    = reflect.TypeOf([]int64{})
	anyType    = reflect.TypeOf((*any)(nil)).Elem()
)

// boundCall is the request a binding produced and the arguments it was given.
type boundCall struct {
	req    *apiclient.Request
	params apiclient.Params
	data   any
}

// callEveryBinding invokes each exported Client method with synthetic
// arguments and returns the request each one produced. The first int64 is
// the path id; a second one is body data.
func callEveryBinding(t *testing.T) map[string]boundCall {
	t.Helper()
	rec := &apiclienttest.Recorder{}
	client := reflect.ValueOf(New(rec))
	ctx := context.Background()

	out := map[string]boundCall{}
	for i := 0; i < client.NumMethod(); i++ {
		m := client.Type().Method(i)
		fn := client.Method(i)

		var (
			args []reflect.Value
			call boundCall
		)
		nextID := int64(7)
		for j := 0; j < fn.Type().NumIn(); j++ {
			switch in := fn.Type().In(j); {
			case in == ctxType:
				args = append(args, reflect.ValueOf(ctx))
			case in.Kind() == reflect.Int64:
				if nextID > 7 {
					call.data = nextID
				}
				args = append(args, reflect.ValueOf(nextID))
				nextID += 2
			case in == paramsType:
				call.params = apiclient.Params{"page": 2}
				args = append(args, reflect.ValueOf(call.params))
			case in == idsType:
				call.data = []int64{5, 1, 3}
				args = append(args, reflect.ValueOf(call.data))
			case in == anyType:
				call.data = map[string]any{"k": "v"}
				args = append(args, reflect.ValueOf(&call.data).Elem())
			default:
				t.Fatalf("%s: unexpected argument type %s", m.Name, in)
			}
		}

		results := fn.Call(args)
		require.Len(t, results, 2, m.Name)
		require.True(t, results[1].IsNil(), "%s returned an error", m.Name)

		call.req = rec.Last()
		out[m.Name] = call
		rec.Reset()
	}
	return out
}

func TestEveryBindingMatchesItsEndpoint(t *testing.T) {
	calls := callEveryBinding(t)
	require.Len(t, calls, len(Endpoints), "one method per endpoint")

	byName := map[string]apiclient.Endpoint{}
	for _, ep := range Endpoints {
		byName[ep.Name] = ep
	}

	for method, call := range calls {
		t.Run(method, func(t *testing.T) {
			req := call.req
			require.NotNil(t, req)
			ep, ok := byName[Family+"."+method]
			require.True(t, ok, "no endpoint for %s", method)

			assert.Equal(t, ep.Name, req.Endpoint)
			assert.Equal(t, ep.Method, req.Method)
			if ep.HasID() {
				assert.Equal(t, ep.URL("7"), req.Path)
			} else {
				assert.Equal(t, ep.Path, req.Path)
			}
			assert.Equal(t, ep.Timeout, req.Timeout)
			assert.Equal(t, ep.ResponseType, req.ResponseType)
			assert.NotContains(t, req.Path, "{id}")

			assert.Equal(t, call.params, req.Params)
			want := call.data
			if ep.Wrap != "" {
				want = map[string]any{ep.Wrap: call.data}
			}
			assert.Equal(t, want, req.Body)
		})
	}
}

func TestWrappedBodies(t *testing.T) {
	calls := callEveryBinding(t)

	assert.Equal(t, map[string]any{"test_case_id": int64(9)}, calls["RemoveTestCaseFromTestSuite"].req.Body)
	assert.Equal(t, http.MethodDelete, calls["RemoveTestCaseFromTestSuite"].req.Method)
	assert.Equal(t, map[string]any{"test_case_orders": map[string]any{"k": "v"}}, calls["UpdateTestCaseOrder"].req.Body)
	assert.Equal(t, map[string]any{"ids": []int64{5, 1, 3}}, calls["BatchDeleteTestCaseExecutions"].req.Body)
	assert.Equal(t, map[string]any{"ids": []int64{5, 1, 3}}, calls["BatchDeleteAIExecutionRecords"].req.Body)
}

func TestEndpoints_Table(t *testing.T) {
	seen := map[string]bool{}
	var timed, binary []string
	for _, ep := range Endpoints {
		assert.False(t, seen[ep.Name], "duplicate endpoint %s", ep.Name)
		seen[ep.Name] = true

		if ep.Name != Family+".GetUsers" {
			assert.True(t, strings.HasPrefix(ep.Path, Prefix+"/"), ep.Name)
		}
		assert.True(t, strings.HasSuffix(ep.Path, "/"), ep.Name)

		if ep.Timeout != 0 {
			timed = append(timed, ep.Name)
		}
		if ep.ResponseType == apiclient.ResponseBinary {
			binary = append(binary, ep.Name)
		}
	}

	assert.ElementsMatch(t, []string{"uiautomation.RunTestCase", "uiautomation.RunTestSuite"}, timed)
	assert.Equal(t, []string{"uiautomation.ExportAIExecutionReportPDF"}, binary)
}

func TestRunTestCase(t *testing.T) {
	rec := &apiclienttest.Recorder{}
	data := map[string]any{"env": "stage"}

	_, err := New(rec).RunTestCase(context.Background(), 7, data)
	require.NoError(t, err)

	req := rec.Last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/ui-automation/test-cases/7/run/", req.Path)
	assert.Equal(t, data, req.Body)
	assert.Equal(t, 300000*time.Millisecond, req.Timeout)
}

func TestRunTestSuite(t *testing.T) {
	rec := &apiclienttest.Recorder{}

	_, err := New(rec).RunTestSuite(context.Background(), 4, nil)
	require.NoError(t, err)

	req := rec.Last()
	assert.Equal(t, "/ui-automation/test-suites/4/run_suite/", req.Path)
	assert.Equal(t, 600000*time.Millisecond, req.Timeout)
	assert.Nil(t, req.Body)
}

func TestSuiteMembershipBodies(t *testing.T) {
	rec := &apiclienttest.Recorder{}
	c := New(rec)
	ctx := context.Background()

	_, err := c.RemoveTestCaseFromTestSuite(ctx, 3, 12)
	require.NoError(t, err)
	req := rec.Last()
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/ui-automation/test-suites/3/remove_test_case/", req.Path)
	assert.Equal(t, map[string]any{"test_case_id": int64(12)}, req.Body)

	orders := []map[string]any{{"test_case_id": 12, "order": 1}, {"test_case_id": 9, "order": 2}}
	_, err = c.UpdateTestCaseOrder(ctx, 3, orders)
	require.NoError(t, err)
	req = rec.Last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/ui-automation/test-suites/3/update_test_case_order/", req.Path)
	assert.Equal(t, map[string]any{"test_case_orders": orders}, req.Body)
}

func TestBatchDeletes(t *testing.T) {
	rec := &apiclienttest.Recorder{}
	c := New(rec)
	ctx := context.Background()
	ids := []int64{9, 2, 4}

	_, err := c.BatchDeleteTestCaseExecutions(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, "/ui-automation/test-case-executions/batch-delete/", rec.Last().Path)
	assert.Equal(t, map[string]any{"ids": ids}, rec.Last().Body)

	_, err = c.BatchDeleteAIExecutionRecords(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, "/ui-automation/ai-execution-records/batch_delete/", rec.Last().Path)
	assert.Equal(t, map[string]any{"ids": ids}, rec.Last().Body)
}

func TestGetUsersUsesSharedDirectory(t *testing.T) {
	rec := &apiclienttest.Recorder{}
	_, err := New(rec).GetUsers(context.Background(), apiclient.Params{"search": "li"})
	require.NoError(t, err)
	assert.Equal(t, "/api-testing/users/", rec.Last().Path)
	assert.Equal(t, apiclient.Params{"search": "li"}, rec.Last().Params)
}

func TestExportAIExecutionReportPDF_OverHTTP(t *testing.T) {
	pdf := []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")
	var gotPath, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="ai-report-15.pdf"`)
		_, _ = w.Write(pdf)
	}))
	defer ts.Close()

	c := New(apiclient.New(ts.URL + "/api"))
	resp, err := c.ExportAIExecutionReportPDF(context.Background(), 15, apiclient.Params{"lang": "en"})
	require.NoError(t, err)

	assert.Equal(t, "/api/ui-automation/ai-execution-records/15/export-pdf/", gotPath)
	assert.Equal(t, "lang=en", gotQuery)
	assert.Equal(t, pdf, resp.Blob())
	assert.Equal(t, "ai-report-15.pdf", resp.Filename())
}

func TestRunTestCase_OverHTTP(t *testing.T) {
	var body []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		// The case run outlives the dispatcher default but not its own limit.
		time.Sleep(50 * time.Millisecond)
		_, _ = io.WriteString(w, `{"status":"passed"}`)
	}))
	defer ts.Close()

	d := apiclient.New(ts.URL+"/api", apiclient.WithTimeout(10*time.Millisecond))
	c := New(d)

	resp, err := c.RunTestCase(context.Background(), 7, map[string]any{"env": "stage"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"env":"stage"}`, string(body))

	var result struct {
		Status string `json:"status"`
	}
	require.NoError(t, resp.Decode(&result))
	assert.Equal(t, "passed", result.Status)

	// A binding without an override is held to the short default.
	_, err = c.GetProjects(context.Background(), nil)
	assert.True(t, apiclient.IsTimeout(err))
}
