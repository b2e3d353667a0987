// Package uiautomation binds the TestHub UI-automation endpoints under
// /ui-automation.
//
// Projects, elements, page objects, scripts, suites, cases, executions,
// schedules, notifications and AI-driven cases each get one method per
// endpoint. Every method issues a single request through the injected Doer.
// Only RunTestCase and RunTestSuite override the dispatcher timeout, and
// only ExportAIExecutionReportPDF returns a binary body.
package uiautomation

import (
	"context"
	"net/http"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

// Family prefixes every endpoint name in this package.
const Family = "uiautomation"

// Prefix is the path prefix of UI-automation endpoints.
const Prefix = "/ui-automation"

// Client exposes the UI-automation bindings.
type Client struct {
	d apiclient.Doer
}

// New returns a client that dispatches through d.
func New(d apiclient.Doer) *Client {
	return &Client{d: d}
}

func endpoint(name, method, path string) apiclient.Endpoint {
	return apiclient.NewEndpoint(Family+"."+name, method, Prefix+path)
}

// The user directory lives under the API-testing prefix and is shared by
// both areas.
var getUsers = apiclient.NewEndpoint(Family+".GetUsers", http.MethodGet, "/api-testing/users/")

// GetUsers lists platform users, e.g. to pick task owners or notification
// recipients.
func (c *Client) GetUsers(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getUsers.Call(ctx, c.d, "", params, nil)
}

// Endpoints lists every binding in this package.
var Endpoints = []apiclient.Endpoint{
	getDashboardStats,
	getProjects,
	createProject,
	getProjectDetail,
	updateProject,
	deleteProject,
	getLocatorStrategies,
	createLocatorStrategy,
	getElements,
	createElement,
	getElementDetail,
	updateElement,
	deleteElement,
	validateElementLocator,
	getElementUsages,
	getElementTree,
	addBackupLocator,
	generateElementSuggestions,
	getElementGroups,
	createElementGroup,
	getElementGroupDetail,
	updateElementGroup,
	deleteElementGroup,
	getElementGroupTree,
	getPageObjects,
	createPageObject,
	getPageObjectDetail,
	updatePageObject,
	deletePageObject,
	generatePageObjectCode,
	addElementToPageObject,
	getPageObjectElements,
	getPageObjectElementDetails,
	createPageObjectElement,
	updatePageObjectElement,
	deletePageObjectElement,
	getScriptSteps,
	createScriptStep,
	batchCreateScriptSteps,
	updateScriptStep,
	deleteScriptStep,
	getScriptElementUsages,
	analyzeScriptElements,
	createScriptElementUsage,
	updateScriptElementUsage,
	deleteScriptElementUsage,
	getTestScripts,
	createTestScript,
	getTestScriptDetail,
	updateTestScript,
	deleteTestScript,
	getTestSuites,
	createTestSuite,
	getTestSuiteDetail,
	updateTestSuite,
	deleteTestSuite,
	getTestSuiteTestCases,
	addTestCaseToTestSuite,
	removeTestCaseFromTestSuite,
	updateTestCaseOrder,
	runTestSuite,
	getTestExecutions,
	createTestExecution,
	getTestExecutionDetail,
	deleteTestExecution,
	runTestExecution,
	abortTestExecution,
	getTestEnvironments,
	createTestEnvironment,
	getTestEnvironmentDetail,
	updateTestEnvironment,
	deleteTestEnvironment,
	getScreenshots,
	createScreenshot,
	getScreenshotDetail,
	deleteScreenshot,
	getOperationRecords,
	createOperationRecord,
	getTestCases,
	createTestCase,
	getTestCaseDetail,
	updateTestCase,
	deleteTestCase,
	runTestCase,
	copyTestCase,
	batchRunTestCases,
	getTestCaseExecutions,
	deleteTestCaseExecution,
	batchDeleteTestCaseExecutions,
	getScheduledTasks,
	createScheduledTask,
	getScheduledTaskDetail,
	updateScheduledTask,
	deleteScheduledTask,
	pauseScheduledTask,
	resumeScheduledTask,
	runScheduledTask,
	getNotificationConfigs,
	createNotificationConfig,
	getNotificationConfigDetail,
	updateNotificationConfig,
	deleteNotificationConfig,
	setDefaultNotificationConfig,
	getNotificationLogs,
	retryNotification,
	getTaskNotificationSettings,
	createTaskNotificationSetting,
	updateTaskNotificationSetting,
	getUsers,
	getAICases,
	createAICase,
	getAICaseDetail,
	updateAICase,
	deleteAICase,
	runAICase,
	getAIExecutionRecords,
	getAIExecutionRecordDetail,
	runAdhocAITask,
	stopAITask,
	batchDeleteAIExecutionRecords,
	getAIExecutionReport,
	exportAIExecutionReportPDF,
}
