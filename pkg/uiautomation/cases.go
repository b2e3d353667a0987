package uiautomation

import (
	"context"
	"net/http"
	"time"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

// RunTestCaseTimeout bounds a single case run, which starts a browser and
// replays every step.
const RunTestCaseTimeout = 300000 * time.Millisecond

var (
	getTestCases      = endpoint("GetTestCases", http.MethodGet, "/test-cases/")
	createTestCase    = endpoint("CreateTestCase", http.MethodPost, "/test-cases/")
	getTestCaseDetail = endpoint("GetTestCaseDetail", http.MethodGet, "/test-cases/{id}/")
	updateTestCase    = endpoint("UpdateTestCase", http.MethodPatch, "/test-cases/{id}/")
	deleteTestCase    = endpoint("DeleteTestCase", http.MethodDelete, "/test-cases/{id}/")
	runTestCase       = endpoint("RunTestCase", http.MethodPost, "/test-cases/{id}/run/").WithTimeout(RunTestCaseTimeout)
	copyTestCase      = endpoint("CopyTestCase", http.MethodPost, "/test-cases/{id}/copy_case/")
	batchRunTestCases = endpoint("BatchRunTestCases", http.MethodPost, "/test-cases/batch-run/")

	getTestCaseExecutions         = endpoint("GetTestCaseExecutions", http.MethodGet, "/test-case-executions/")
	deleteTestCaseExecution       = endpoint("DeleteTestCaseExecution", http.MethodDelete, "/test-case-executions/{id}/")
	batchDeleteTestCaseExecutions = endpoint("BatchDeleteTestCaseExecutions", http.MethodPost, "/test-case-executions/batch-delete/").WithWrap("ids")
)

// GetTestCases lists test cases. Filter and page with params.
func (c *Client) GetTestCases(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getTestCases.Call(ctx, c.d, "", params, nil)
}

// CreateTestCase creates a test case from data.
func (c *Client) CreateTestCase(ctx context.Context, data any) (*apiclient.Response, error) {
	return createTestCase.Call(ctx, c.d, "", nil, data)
}

// GetTestCaseDetail returns the test case with the given id.
func (c *Client) GetTestCaseDetail(ctx context.Context, caseID int64) (*apiclient.Response, error) {
	return getTestCaseDetail.Call(ctx, c.d, apiclient.FormatID(caseID), nil, nil)
}

// UpdateTestCase patches a test case; data holds only the changed fields.
func (c *Client) UpdateTestCase(ctx context.Context, caseID int64, data any) (*apiclient.Response, error) {
	return updateTestCase.Call(ctx, c.d, apiclient.FormatID(caseID), nil, data)
}

// DeleteTestCase deletes the test case.
func (c *Client) DeleteTestCase(ctx context.Context, caseID int64) (*apiclient.Response, error) {
	return deleteTestCase.Call(ctx, c.d, apiclient.FormatID(caseID), nil, nil)
}

// RunTestCase executes one case and blocks until the platform reports the
// outcome or RunTestCaseTimeout passes. data typically carries the
// environment and browser settings.
func (c *Client) RunTestCase(ctx context.Context, caseID int64, data any) (*apiclient.Response, error) {
	return runTestCase.Call(ctx, c.d, apiclient.FormatID(caseID), nil, data)
}

// CopyTestCase duplicates a case together with its steps.
func (c *Client) CopyTestCase(ctx context.Context, caseID int64) (*apiclient.Response, error) {
	return copyTestCase.Call(ctx, c.d, apiclient.FormatID(caseID), nil, nil)
}

// BatchRunTestCases queues several cases. It returns once they are queued,
// so the default timeout applies.
func (c *Client) BatchRunTestCases(ctx context.Context, data any) (*apiclient.Response, error) {
	return batchRunTestCases.Call(ctx, c.d, "", nil, data)
}

// GetTestCaseExecutions lists past case runs.
func (c *Client) GetTestCaseExecutions(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getTestCaseExecutions.Call(ctx, c.d, "", params, nil)
}

// DeleteTestCaseExecution removes one case run and its screenshots.
func (c *Client) DeleteTestCaseExecution(ctx context.Context, executionID int64) (*apiclient.Response, error) {
	return deleteTestCaseExecution.Call(ctx, c.d, apiclient.FormatID(executionID), nil, nil)
}

// BatchDeleteTestCaseExecutions sends ids as {"ids": [...]} in the given order.
func (c *Client) BatchDeleteTestCaseExecutions(ctx context.Context, ids []int64) (*apiclient.Response, error) {
	return batchDeleteTestCaseExecutions.Call(ctx, c.d, "", nil, ids)
}
