package uiautomation

import (
	"context"
	"net/http"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

var (
	getAICases      = endpoint("GetAICases", http.MethodGet, "/ai-cases/")
	createAICase    = endpoint("CreateAICase", http.MethodPost, "/ai-cases/")
	getAICaseDetail = endpoint("GetAICaseDetail", http.MethodGet, "/ai-cases/{id}/")
	updateAICase    = endpoint("UpdateAICase", http.MethodPatch, "/ai-cases/{id}/")
	deleteAICase    = endpoint("DeleteAICase", http.MethodDelete, "/ai-cases/{id}/")
	runAICase       = endpoint("RunAICase", http.MethodPost, "/ai-cases/{id}/run/")

	getAIExecutionRecords         = endpoint("GetAIExecutionRecords", http.MethodGet, "/ai-execution-records/")
	getAIExecutionRecordDetail    = endpoint("GetAIExecutionRecordDetail", http.MethodGet, "/ai-execution-records/{id}/")
	runAdhocAITask                = endpoint("RunAdhocAITask", http.MethodPost, "/ai-execution-records/run_adhoc/")
	stopAITask                    = endpoint("StopAITask", http.MethodPost, "/ai-execution-records/{id}/stop/")
	batchDeleteAIExecutionRecords = endpoint("BatchDeleteAIExecutionRecords", http.MethodPost, "/ai-execution-records/batch_delete/").WithWrap("ids")
	getAIExecutionReport          = endpoint("GetAIExecutionReport", http.MethodGet, "/ai-execution-records/{id}/report/")
	exportAIExecutionReportPDF    = endpoint("ExportAIExecutionReportPDF", http.MethodGet, "/ai-execution-records/{id}/export-pdf/").WithResponseType(apiclient.ResponseBinary)
)

// GetAICases lists AI cases.
func (c *Client) GetAICases(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getAICases.Call(ctx, c.d, "", params, nil)
}

// CreateAICase creates an AI case.
func (c *Client) CreateAICase(ctx context.Context, data any) (*apiclient.Response, error) {
	return createAICase.Call(ctx, c.d, "", nil, data)
}

// GetAICaseDetail fetches one AI case.
func (c *Client) GetAICaseDetail(ctx context.Context, caseID int64) (*apiclient.Response, error) {
	return getAICaseDetail.Call(ctx, c.d, apiclient.FormatID(caseID), nil, nil)
}

// UpdateAICase updates the AI case. Only the fields in data change.
func (c *Client) UpdateAICase(ctx context.Context, caseID int64, data any) (*apiclient.Response, error) {
	return updateAICase.Call(ctx, c.d, apiclient.FormatID(caseID), nil, data)
}

// DeleteAICase removes an AI case.
func (c *Client) DeleteAICase(ctx context.Context, caseID int64) (*apiclient.Response, error) {
	return deleteAICase.Call(ctx, c.d, apiclient.FormatID(caseID), nil, nil)
}

// RunAICase starts an AI-driven run of the case. It returns once the run is queued.
func (c *Client) RunAICase(ctx context.Context, caseID int64) (*apiclient.Response, error) {
	return runAICase.Call(ctx, c.d, apiclient.FormatID(caseID), nil, nil)
}

// GetAIExecutionRecords returns a page of AI execution records; params carries filters and paging.
func (c *Client) GetAIExecutionRecords(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getAIExecutionRecords.Call(ctx, c.d, "", params, nil)
}

// GetAIExecutionRecordDetail fetches one AI execution record with its steps.
func (c *Client) GetAIExecutionRecordDetail(ctx context.Context, recordID int64) (*apiclient.Response, error) {
	return getAIExecutionRecordDetail.Call(ctx, c.d, apiclient.FormatID(recordID), nil, nil)
}

// RunAdhocAITask starts an AI task from a free-form description without saving a case.
func (c *Client) RunAdhocAITask(ctx context.Context, data any) (*apiclient.Response, error) {
	return runAdhocAITask.Call(ctx, c.d, "", nil, data)
}

// StopAITask asks the platform to stop a running AI execution.
func (c *Client) StopAITask(ctx context.Context, recordID int64) (*apiclient.Response, error) {
	return stopAITask.Call(ctx, c.d, apiclient.FormatID(recordID), nil, nil)
}

// GetAIExecutionReport returns the JSON report of an AI execution.
func (c *Client) GetAIExecutionReport(ctx context.Context, recordID int64, params apiclient.Params) (*apiclient.Response, error) {
	return getAIExecutionReport.Call(ctx, c.d, apiclient.FormatID(recordID), params, nil)
}

// BatchDeleteAIExecutionRecords sends ids as {"ids": [...]} in the given order.
func (c *Client) BatchDeleteAIExecutionRecords(ctx context.Context, ids []int64) (*apiclient.Response, error) {
	return batchDeleteAIExecutionRecords.Call(ctx, c.d, "", nil, ids)
}

// ExportAIExecutionReportPDF downloads the rendered report. The response is
// binary: read it with Blob, not Decode.
func (c *Client) ExportAIExecutionReportPDF(ctx context.Context, recordID int64, params apiclient.Params) (*apiclient.Response, error) {
	return exportAIExecutionReportPDF.Call(ctx, c.d, apiclient.FormatID(recordID), params, nil)
}
