package apitesting

import (
	"context"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

// GetDashboardStats fetches the API-testing dashboard counters.
func (c *Client) GetDashboardStats(ctx context.Context) (*apiclient.Response, error) {
	return getDashboardStats.Call(ctx, c.d, "", nil, nil)
}

// --- Scheduled tasks ---

// GetScheduledTasks lists scheduled tasks.
func (c *Client) GetScheduledTasks(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getScheduledTasks.Call(ctx, c.d, "", params, nil)
}

// CreateScheduledTask creates a scheduled task from data.
func (c *Client) CreateScheduledTask(ctx context.Context, data any) (*apiclient.Response, error) {
	return createScheduledTask.Call(ctx, c.d, "", nil, data)
}

// UpdateScheduledTask patches a scheduled task; data holds only the changed fields.
func (c *Client) UpdateScheduledTask(ctx context.Context, taskID int64, data any) (*apiclient.Response, error) {
	return updateScheduledTask.Call(ctx, c.d, apiclient.FormatID(taskID), nil, data)
}

// DeleteScheduledTask deletes the scheduled task.
func (c *Client) DeleteScheduledTask(ctx context.Context, taskID int64) (*apiclient.Response, error) {
	return deleteScheduledTask.Call(ctx, c.d, apiclient.FormatID(taskID), nil, nil)
}

// RunScheduledTask triggers the task immediately, outside its schedule.
func (c *Client) RunScheduledTask(ctx context.Context, taskID int64) (*apiclient.Response, error) {
	return runScheduledTask.Call(ctx, c.d, apiclient.FormatID(taskID), nil, nil)
}

// GetExecutionLogs lists the runs recorded for a scheduled task.
func (c *Client) GetExecutionLogs(ctx context.Context, taskID int64, params apiclient.Params) (*apiclient.Response, error) {
	return getExecutionLogs.Call(ctx, c.d, apiclient.FormatID(taskID), params, nil)
}

// --- Catalog ---

// GetTestSuites returns a page of test suites; params carries filters and paging.
func (c *Client) GetTestSuites(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getTestSuites.Call(ctx, c.d, "", params, nil)
}

// GetAPIRequests lists API requests. Filter and page with params.
func (c *Client) GetAPIRequests(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getAPIRequests.Call(ctx, c.d, "", params, nil)
}

// GetEnvironments lists environments.
func (c *Client) GetEnvironments(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getEnvironments.Call(ctx, c.d, "", params, nil)
}

// GetAPIProjects returns a page of API projects; params carries filters and paging.
func (c *Client) GetAPIProjects(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getAPIProjects.Call(ctx, c.d, "", params, nil)
}

// GetAPICollections lists API collections. Filter and page with params.
func (c *Client) GetAPICollections(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getAPICollections.Call(ctx, c.d, "", params, nil)
}

// --- Execution ---

// ExecuteTestSuite runs every request in the suite. data may select an
// environment.
func (c *Client) ExecuteTestSuite(ctx context.Context, suiteID int64, data any) (*apiclient.Response, error) {
	return executeTestSuite.Call(ctx, c.d, apiclient.FormatID(suiteID), nil, data)
}

// ExecuteAPIRequest runs a saved request on the platform.
func (c *Client) ExecuteAPIRequest(ctx context.Context, requestID int64, data any) (*apiclient.Response, error) {
	return executeAPIRequest.Call(ctx, c.d, apiclient.FormatID(requestID), nil, data)
}

// GetExecutionResult fetches the outcome of a suite execution.
func (c *Client) GetExecutionResult(ctx context.Context, executionID int64) (*apiclient.Response, error) {
	return getExecutionResult.Call(ctx, c.d, apiclient.FormatID(executionID), nil, nil)
}

// --- Request history ---

// GetRequestHistory lists previously executed requests.
func (c *Client) GetRequestHistory(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getRequestHistory.Call(ctx, c.d, "", params, nil)
}

// DeleteRequestHistory removes a single history entry.
func (c *Client) DeleteRequestHistory(ctx context.Context, historyID int64) (*apiclient.Response, error) {
	return deleteRequestHistory.Call(ctx, c.d, apiclient.FormatID(historyID), nil, nil)
}

// BatchDeleteRequestHistory deletes the listed history entries. The ids are
// sent as {"ids": [...]} in the given order.
func (c *Client) BatchDeleteRequestHistory(ctx context.Context, ids []int64) (*apiclient.Response, error) {
	return batchDeleteRequestHistory.Call(ctx, c.d, "", nil, ids)
}

// --- Accounts ---

// GetUsers lists platform users. The UI-automation screens read the same
// endpoint.
func (c *Client) GetUsers(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getUsers.Call(ctx, c.d, "", params, nil)
}

// GetOperationLogs lists audit entries for API-testing changes.
func (c *Client) GetOperationLogs(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getOperationLogs.Call(ctx, c.d, "", params, nil)
}
