package uiautomation

import (
	"context"
	"net/http"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

var (
	getTestExecutions      = endpoint("GetTestExecutions", http.MethodGet, "/test-executions/")
	createTestExecution    = endpoint("CreateTestExecution", http.MethodPost, "/test-executions/")
	getTestExecutionDetail = endpoint("GetTestExecutionDetail", http.MethodGet, "/test-executions/{id}/")
	deleteTestExecution    = endpoint("DeleteTestExecution", http.MethodDelete, "/test-executions/{id}/")
	runTestExecution       = endpoint("RunTestExecution", http.MethodPost, "/test-executions/{id}/run/")
	abortTestExecution     = endpoint("AbortTestExecution", http.MethodPost, "/test-executions/{id}/abort/")

	getTestEnvironments      = endpoint("GetTestEnvironments", http.MethodGet, "/test-environments/")
	createTestEnvironment    = endpoint("CreateTestEnvironment", http.MethodPost, "/test-environments/")
	getTestEnvironmentDetail = endpoint("GetTestEnvironmentDetail", http.MethodGet, "/test-environments/{id}/")
	updateTestEnvironment    = endpoint("UpdateTestEnvironment", http.MethodPatch, "/test-environments/{id}/")
	deleteTestEnvironment    = endpoint("DeleteTestEnvironment", http.MethodDelete, "/test-environments/{id}/")

	getScreenshots      = endpoint("GetScreenshots", http.MethodGet, "/screenshots/")
	createScreenshot    = endpoint("CreateScreenshot", http.MethodPost, "/screenshots/")
	getScreenshotDetail = endpoint("GetScreenshotDetail", http.MethodGet, "/screenshots/{id}/")
	deleteScreenshot    = endpoint("DeleteScreenshot", http.MethodDelete, "/screenshots/{id}/")

	getOperationRecords   = endpoint("GetOperationRecords", http.MethodGet, "/operation-records/")
	createOperationRecord = endpoint("CreateOperationRecord", http.MethodPost, "/operation-records/")
)

// GetTestExecutions lists test executions.
func (c *Client) GetTestExecutions(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getTestExecutions.Call(ctx, c.d, "", params, nil)
}

// CreateTestExecution creates a test execution.
func (c *Client) CreateTestExecution(ctx context.Context, data any) (*apiclient.Response, error) {
	return createTestExecution.Call(ctx, c.d, "", nil, data)
}

// GetTestExecutionDetail returns the test execution with the given id.
func (c *Client) GetTestExecutionDetail(ctx context.Context, executionID int64) (*apiclient.Response, error) {
	return getTestExecutionDetail.Call(ctx, c.d, apiclient.FormatID(executionID), nil, nil)
}

// DeleteTestExecution deletes the test execution.
func (c *Client) DeleteTestExecution(ctx context.Context, executionID int64) (*apiclient.Response, error) {
	return deleteTestExecution.Call(ctx, c.d, apiclient.FormatID(executionID), nil, nil)
}

// RunTestExecution starts a prepared execution.
func (c *Client) RunTestExecution(ctx context.Context, executionID int64) (*apiclient.Response, error) {
	return runTestExecution.Call(ctx, c.d, apiclient.FormatID(executionID), nil, nil)
}

// AbortTestExecution stops a running execution on the platform. Cancelling ctx only abandons the local call.
func (c *Client) AbortTestExecution(ctx context.Context, executionID int64) (*apiclient.Response, error) {
	return abortTestExecution.Call(ctx, c.d, apiclient.FormatID(executionID), nil, nil)
}

// GetTestEnvironments returns a page of test environments; params carries filters and paging.
func (c *Client) GetTestEnvironments(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getTestEnvironments.Call(ctx, c.d, "", params, nil)
}

// CreateTestEnvironment creates a test environment from data.
func (c *Client) CreateTestEnvironment(ctx context.Context, data any) (*apiclient.Response, error) {
	return createTestEnvironment.Call(ctx, c.d, "", nil, data)
}

// GetTestEnvironmentDetail fetches one test environment.
func (c *Client) GetTestEnvironmentDetail(ctx context.Context, envID int64) (*apiclient.Response, error) {
	return getTestEnvironmentDetail.Call(ctx, c.d, apiclient.FormatID(envID), nil, nil)
}

// UpdateTestEnvironment patches a test environment; data holds only the changed fields.
func (c *Client) UpdateTestEnvironment(ctx context.Context, envID int64, data any) (*apiclient.Response, error) {
	return updateTestEnvironment.Call(ctx, c.d, apiclient.FormatID(envID), nil, data)
}

// DeleteTestEnvironment removes a test environment.
func (c *Client) DeleteTestEnvironment(ctx context.Context, envID int64) (*apiclient.Response, error) {
	return deleteTestEnvironment.Call(ctx, c.d, apiclient.FormatID(envID), nil, nil)
}

// GetScreenshots lists screenshots. Filter and page with params.
func (c *Client) GetScreenshots(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getScreenshots.Call(ctx, c.d, "", params, nil)
}

// CreateScreenshot creates a screenshot.
func (c *Client) CreateScreenshot(ctx context.Context, data any) (*apiclient.Response, error) {
	return createScreenshot.Call(ctx, c.d, "", nil, data)
}

// GetScreenshotDetail returns the screenshot with the given id.
func (c *Client) GetScreenshotDetail(ctx context.Context, screenshotID int64) (*apiclient.Response, error) {
	return getScreenshotDetail.Call(ctx, c.d, apiclient.FormatID(screenshotID), nil, nil)
}

func (c *Client) DeleteScreenshot(ctx context.Context, screenshotID int64) (*apiclient.Response, error) {
	return deleteScreenshot.Call(ctx, c.d, apiclient.FormatID(screenshotID), nil, nil)
}

// GetOperationRecords lists UI-automation audit records.
func (c *Client) GetOperationRecords(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getOperationRecords.Call(ctx, c.d, "", params, nil)
}

// CreateOperationRecord appends an audit record.
func (c *Client) CreateOperationRecord(ctx context.Context, data any) (*apiclient.Response, error) {
	return createOperationRecord.Call(ctx, c.d, "", nil, data)
}
