package uiautomation

import (
	"context"
	"net/http"
	"time"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

// RunTestSuiteTimeout bounds a suite run, which executes every case in the
// suite before the platform replies.
const RunTestSuiteTimeout = 600000 * time.Millisecond

var (
	getTestSuites      = endpoint("GetTestSuites", http.MethodGet, "/test-suites/")
	createTestSuite    = endpoint("CreateTestSuite", http.MethodPost, "/test-suites/")
	getTestSuiteDetail = endpoint("GetTestSuiteDetail", http.MethodGet, "/test-suites/{id}/")
	updateTestSuite    = endpoint("UpdateTestSuite", http.MethodPatch, "/test-suites/{id}/")
	deleteTestSuite    = endpoint("DeleteTestSuite", http.MethodDelete, "/test-suites/{id}/")

	getTestSuiteTestCases       = endpoint("GetTestSuiteTestCases", http.MethodGet, "/test-suites/{id}/test_cases/")
	addTestCaseToTestSuite      = endpoint("AddTestCaseToTestSuite", http.MethodPost, "/test-suites/{id}/add_test_case/")
	removeTestCaseFromTestSuite = endpoint("RemoveTestCaseFromTestSuite", http.MethodDelete, "/test-suites/{id}/remove_test_case/").WithWrap("test_case_id")
	updateTestCaseOrder         = endpoint("UpdateTestCaseOrder", http.MethodPost, "/test-suites/{id}/update_test_case_order/").WithWrap("test_case_orders")
	runTestSuite                = endpoint("RunTestSuite", http.MethodPost, "/test-suites/{id}/run_suite/").WithTimeout(RunTestSuiteTimeout)
)

// GetTestSuites lists test suites.
func (c *Client) GetTestSuites(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getTestSuites.Call(ctx, c.d, "", params, nil)
}

// CreateTestSuite creates a test suite.
func (c *Client) CreateTestSuite(ctx context.Context, data any) (*apiclient.Response, error) {
	return createTestSuite.Call(ctx, c.d, "", nil, data)
}

// GetTestSuiteDetail fetches one test suite.
func (c *Client) GetTestSuiteDetail(ctx context.Context, suiteID int64) (*apiclient.Response, error) {
	return getTestSuiteDetail.Call(ctx, c.d, apiclient.FormatID(suiteID), nil, nil)
}

// UpdateTestSuite patches a test suite; data holds only the changed fields.
func (c *Client) UpdateTestSuite(ctx context.Context, suiteID int64, data any) (*apiclient.Response, error) {
	return updateTestSuite.Call(ctx, c.d, apiclient.FormatID(suiteID), nil, data)
}

// DeleteTestSuite removes a test suite.
func (c *Client) DeleteTestSuite(ctx context.Context, suiteID int64) (*apiclient.Response, error) {
	return deleteTestSuite.Call(ctx, c.d, apiclient.FormatID(suiteID), nil, nil)
}

// GetTestSuiteTestCases lists the suite's cases in execution order.
func (c *Client) GetTestSuiteTestCases(ctx context.Context, suiteID int64) (*apiclient.Response, error) {
	return getTestSuiteTestCases.Call(ctx, c.d, apiclient.FormatID(suiteID), nil, nil)
}

// AddTestCaseToTestSuite appends a case to the suite.
func (c *Client) AddTestCaseToTestSuite(ctx context.Context, suiteID int64, data any) (*apiclient.Response, error) {
	return addTestCaseToTestSuite.Call(ctx, c.d, apiclient.FormatID(suiteID), nil, data)
}

// RemoveTestCaseFromTestSuite detaches one case. The case id travels in the
// body of the DELETE as {"test_case_id": ...}.
func (c *Client) RemoveTestCaseFromTestSuite(ctx context.Context, suiteID, testCaseID int64) (*apiclient.Response, error) {
	return removeTestCaseFromTestSuite.Call(ctx, c.d, apiclient.FormatID(suiteID), nil, testCaseID)
}

// UpdateTestCaseOrder sends orders as {"test_case_orders": orders}. The
// platform expects a list of {"test_case_id", "order"} objects.
func (c *Client) UpdateTestCaseOrder(ctx context.Context, suiteID int64, orders any) (*apiclient.Response, error) {
	return updateTestCaseOrder.Call(ctx, c.d, apiclient.FormatID(suiteID), nil, orders)
}

// RunTestSuite runs the whole suite synchronously on the platform and waits
// up to RunTestSuiteTimeout for the result.
func (c *Client) RunTestSuite(ctx context.Context, suiteID int64, data any) (*apiclient.Response, error) {
	return runTestSuite.Call(ctx, c.d, apiclient.FormatID(suiteID), nil, data)
}
