package uiautomation

import (
	"context"
	"net/http"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

var (
	getDashboardStats = endpoint("GetDashboardStats", http.MethodGet, "/dashboard/stats/")

	getProjects      = endpoint("GetProjects", http.MethodGet, "/projects/")
	createProject    = endpoint("CreateProject", http.MethodPost, "/projects/")
	getProjectDetail = endpoint("GetProjectDetail", http.MethodGet, "/projects/{id}/")
	updateProject    = endpoint("UpdateProject", http.MethodPatch, "/projects/{id}/")
	deleteProject    = endpoint("DeleteProject", http.MethodDelete, "/projects/{id}/")

	getLocatorStrategies  = endpoint("GetLocatorStrategies", http.MethodGet, "/locator-strategies/")
	createLocatorStrategy = endpoint("CreateLocatorStrategy", http.MethodPost, "/locator-strategies/")
)

// GetDashboardStats fetches the UI-automation dashboard counters.
func (c *Client) GetDashboardStats(ctx context.Context) (*apiclient.Response, error) {
	return getDashboardStats.Call(ctx, c.d, "", nil, nil)
}

// GetProjects lists projects.
func (c *Client) GetProjects(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getProjects.Call(ctx, c.d, "", params, nil)
}

// CreateProject creates a project from data.
func (c *Client) CreateProject(ctx context.Context, data any) (*apiclient.Response, error) {
	return createProject.Call(ctx, c.d, "", nil, data)
}

// GetProjectDetail fetches one project.
func (c *Client) GetProjectDetail(ctx context.Context, projectID int64) (*apiclient.Response, error) {
	return getProjectDetail.Call(ctx, c.d, apiclient.FormatID(projectID), nil, nil)
}

// UpdateProject updates the project. Only the fields in data change.
func (c *Client) UpdateProject(ctx context.Context, projectID int64, data any) (*apiclient.Response, error) {
	return updateProject.Call(ctx, c.d, apiclient.FormatID(projectID), nil, data)
}

// DeleteProject deletes the project.
func (c *Client) DeleteProject(ctx context.Context, projectID int64) (*apiclient.Response, error) {
	return deleteProject.Call(ctx, c.d, apiclient.FormatID(projectID), nil, nil)
}

// GetLocatorStrategies lists the available locator kinds (id, css, xpath, ...).
func (c *Client) GetLocatorStrategies(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getLocatorStrategies.Call(ctx, c.d, "", params, nil)
}

func (c *Client) CreateLocatorStrategy(ctx context.Context, data any) (*apiclient.Response, error) {
	return createLocatorStrategy.Call(ctx, c.d, "", nil, data)
}
