package uiautomation

import (
	"context"
	"net/http"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

var (
	getScriptSteps         = endpoint("GetScriptSteps", http.MethodGet, "/script-steps/")
	createScriptStep       = endpoint("CreateScriptStep", http.MethodPost, "/script-steps/")
	batchCreateScriptSteps = endpoint("BatchCreateScriptSteps", http.MethodPost, "/script-steps/batch_create/")
	updateScriptStep       = endpoint("UpdateScriptStep", http.MethodPatch, "/script-steps/{id}/")
	deleteScriptStep       = endpoint("DeleteScriptStep", http.MethodDelete, "/script-steps/{id}/")

	getScriptElementUsages   = endpoint("GetScriptElementUsages", http.MethodGet, "/script-element-usages/")
	analyzeScriptElements    = endpoint("AnalyzeScriptElements", http.MethodPost, "/script-element-usages/analyze_script/")
	createScriptElementUsage = endpoint("CreateScriptElementUsage", http.MethodPost, "/script-element-usages/")
	updateScriptElementUsage = endpoint("UpdateScriptElementUsage", http.MethodPatch, "/script-element-usages/{id}/")
	deleteScriptElementUsage = endpoint("DeleteScriptElementUsage", http.MethodDelete, "/script-element-usages/{id}/")

	getTestScripts      = endpoint("GetTestScripts", http.MethodGet, "/test-scripts/")
	createTestScript    = endpoint("CreateTestScript", http.MethodPost, "/test-scripts/")
	getTestScriptDetail = endpoint("GetTestScriptDetail", http.MethodGet, "/test-scripts/{id}/")
	updateTestScript    = endpoint("UpdateTestScript", http.MethodPatch, "/test-scripts/{id}/")
	deleteTestScript    = endpoint("DeleteTestScript", http.MethodDelete, "/test-scripts/{id}/")
)

// GetScriptSteps lists script steps.
func (c *Client) GetScriptSteps(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getScriptSteps.Call(ctx, c.d, "", params, nil)
}

// CreateScriptStep creates a script step from data.
func (c *Client) CreateScriptStep(ctx context.Context, data any) (*apiclient.Response, error) {
	return createScriptStep.Call(ctx, c.d, "", nil, data)
}

// BatchCreateScriptSteps creates several steps in one call. data is the list of steps.
func (c *Client) BatchCreateScriptSteps(ctx context.Context, data any) (*apiclient.Response, error) {
	return batchCreateScriptSteps.Call(ctx, c.d, "", nil, data)
}

// UpdateScriptStep updates the script step. Only the fields in data change.
func (c *Client) UpdateScriptStep(ctx context.Context, stepID int64, data any) (*apiclient.Response, error) {
	return updateScriptStep.Call(ctx, c.d, apiclient.FormatID(stepID), nil, data)
}

// DeleteScriptStep removes a script step.
func (c *Client) DeleteScriptStep(ctx context.Context, stepID int64) (*apiclient.Response, error) {
	return deleteScriptStep.Call(ctx, c.d, apiclient.FormatID(stepID), nil, nil)
}

// GetScriptElementUsages returns a page of script element usages; params carries filters and paging.
func (c *Client) GetScriptElementUsages(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getScriptElementUsages.Call(ctx, c.d, "", params, nil)
}

// AnalyzeScriptElements extracts the elements a script refers to.
func (c *Client) AnalyzeScriptElements(ctx context.Context, data any) (*apiclient.Response, error) {
	return analyzeScriptElements.Call(ctx, c.d, "", nil, data)
}

// CreateScriptElementUsage creates a script element usage.
func (c *Client) CreateScriptElementUsage(ctx context.Context, data any) (*apiclient.Response, error) {
	return createScriptElementUsage.Call(ctx, c.d, "", nil, data)
}

// UpdateScriptElementUsage patches a script element usage; data holds only the changed fields.
func (c *Client) UpdateScriptElementUsage(ctx context.Context, usageID int64, data any) (*apiclient.Response, error) {
	return updateScriptElementUsage.Call(ctx, c.d, apiclient.FormatID(usageID), nil, data)
}

func (c *Client) DeleteScriptElementUsage(ctx context.Context, usageID int64) (*apiclient.Response, error) {
	return deleteScriptElementUsage.Call(ctx, c.d, apiclient.FormatID(usageID), nil, nil)
}

// GetTestScripts lists test scripts. Filter and page with params.
func (c *Client) GetTestScripts(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getTestScripts.Call(ctx, c.d, "", params, nil)
}

// CreateTestScript creates a test script from data.
func (c *Client) CreateTestScript(ctx context.Context, data any) (*apiclient.Response, error) {
	return createTestScript.Call(ctx, c.d, "", nil, data)
}

// GetTestScriptDetail returns the test script with the given id.
func (c *Client) GetTestScriptDetail(ctx context.Context, scriptID int64) (*apiclient.Response, error) {
	return getTestScriptDetail.Call(ctx, c.d, apiclient.FormatID(scriptID), nil, nil)
}

// UpdateTestScript updates the test script. Only the fields in data change.
func (c *Client) UpdateTestScript(ctx context.Context, scriptID int64, data any) (*apiclient.Response, error) {
	return updateTestScript.Call(ctx, c.d, apiclient.FormatID(scriptID), nil, data)
}

// DeleteTestScript deletes the test script.
func (c *Client) DeleteTestScript(ctx context.Context, scriptID int64) (*apiclient.Response, error) {
	return deleteTestScript.Call(ctx, c.d, apiclient.FormatID(scriptID), nil, nil)
}
