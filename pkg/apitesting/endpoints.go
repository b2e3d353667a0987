package apitesting

import (
	"net/http"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

var (
	getDashboardStats = endpoint("GetDashboardStats", http.MethodGet, "/dashboard/stats/")

	getScheduledTasks   = endpoint("GetScheduledTasks", http.MethodGet, "/scheduled-tasks/")
	createScheduledTask = endpoint("CreateScheduledTask", http.MethodPost, "/scheduled-tasks/")
	updateScheduledTask = endpoint("UpdateScheduledTask", http.MethodPatch, "/scheduled-tasks/{id}/")
	deleteScheduledTask = endpoint("DeleteScheduledTask", http.MethodDelete, "/scheduled-tasks/{id}/")
	runScheduledTask    = endpoint("RunScheduledTask", http.MethodPost, "/scheduled-tasks/{id}/run_now/")
	getExecutionLogs    = endpoint("GetExecutionLogs", http.MethodGet, "/scheduled-tasks/{id}/execution_logs/")

	getTestSuites     = endpoint("GetTestSuites", http.MethodGet, "/test-suites/")
	getAPIRequests    = endpoint("GetAPIRequests", http.MethodGet, "/requests/")
	getEnvironments   = endpoint("GetEnvironments", http.MethodGet, "/environments/")
	getAPIProjects    = endpoint("GetAPIProjects", http.MethodGet, "/projects/")
	getAPICollections = endpoint("GetAPICollections", http.MethodGet, "/collections/")

	executeTestSuite   = endpoint("ExecuteTestSuite", http.MethodPost, "/test-suites/{id}/execute/")
	executeAPIRequest  = endpoint("ExecuteAPIRequest", http.MethodPost, "/api-requests/{id}/execute/")
	getExecutionResult = endpoint("GetExecutionResult", http.MethodGet, "/executions/{id}/")

	getRequestHistory         = endpoint("GetRequestHistory", http.MethodGet, "/histories/")
	deleteRequestHistory      = endpoint("DeleteRequestHistory", http.MethodDelete, "/histories/{id}/")
	batchDeleteRequestHistory = endpoint("BatchDeleteRequestHistory", http.MethodPost, "/histories/batch-delete/").WithWrap("ids")

	getUsers         = endpoint("GetUsers", http.MethodGet, "/users/")
	getOperationLogs = endpoint("GetOperationLogs", http.MethodGet, "/operation-logs/")
)

// Endpoints lists every binding in this package.
var Endpoints = []apiclient.Endpoint{
	getDashboardStats,
	getScheduledTasks,
	createScheduledTask,
	updateScheduledTask,
	deleteScheduledTask,
	runScheduledTask,
	getExecutionLogs,
	getTestSuites,
	getAPIRequests,
	getEnvironments,
	getAPIProjects,
	getAPICollections,
	executeTestSuite,
	executeAPIRequest,
	getExecutionResult,
	getRequestHistory,
	deleteRequestHistory,
	batchDeleteRequestHistory,
	getUsers,
	getOperationLogs,
}
