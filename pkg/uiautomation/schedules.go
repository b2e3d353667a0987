package uiautomation

import (
	"context"
	"net/http"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

var (
	getScheduledTasks      = endpoint("GetScheduledTasks", http.MethodGet, "/scheduled-tasks/")
	createScheduledTask    = endpoint("CreateScheduledTask", http.MethodPost, "/scheduled-tasks/")
	getScheduledTaskDetail = endpoint("GetScheduledTaskDetail", http.MethodGet, "/scheduled-tasks/{id}/")
	updateScheduledTask    = endpoint("UpdateScheduledTask", http.MethodPatch, "/scheduled-tasks/{id}/")
	deleteScheduledTask    = endpoint("DeleteScheduledTask", http.MethodDelete, "/scheduled-tasks/{id}/")
	pauseScheduledTask     = endpoint("PauseScheduledTask", http.MethodPost, "/scheduled-tasks/{id}/pause/")
	resumeScheduledTask    = endpoint("ResumeScheduledTask", http.MethodPost, "/scheduled-tasks/{id}/resume/")
	runScheduledTask       = endpoint("RunScheduledTask", http.MethodPost, "/scheduled-tasks/{id}/run_now/")

	getNotificationConfigs       = endpoint("GetNotificationConfigs", http.MethodGet, "/notification-configs/")
	createNotificationConfig     = endpoint("CreateNotificationConfig", http.MethodPost, "/notification-configs/")
	getNotificationConfigDetail  = endpoint("GetNotificationConfigDetail", http.MethodGet, "/notification-configs/{id}/")
	updateNotificationConfig     = endpoint("UpdateNotificationConfig", http.MethodPatch, "/notification-configs/{id}/")
	deleteNotificationConfig     = endpoint("DeleteNotificationConfig", http.MethodDelete, "/notification-configs/{id}/")
	setDefaultNotificationConfig = endpoint("SetDefaultNotificationConfig", http.MethodPost, "/notification-configs/{id}/set_default/")

	getNotificationLogs = endpoint("GetNotificationLogs", http.MethodGet, "/notification-logs/")
	retryNotification   = endpoint("RetryNotification", http.MethodPost, "/notification-logs/{id}/retry/")

	getTaskNotificationSettings   = endpoint("GetTaskNotificationSettings", http.MethodGet, "/task-notification-settings/")
	createTaskNotificationSetting = endpoint("CreateTaskNotificationSetting", http.MethodPost, "/task-notification-settings/")
	updateTaskNotificationSetting = endpoint("UpdateTaskNotificationSetting", http.MethodPatch, "/task-notification-settings/{id}/")
)

// GetScheduledTasks returns a page of scheduled tasks; params carries filters and paging.
func (c *Client) GetScheduledTasks(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getScheduledTasks.Call(ctx, c.d, "", params, nil)
}

// CreateScheduledTask creates a scheduled task.
func (c *Client) CreateScheduledTask(ctx context.Context, data any) (*apiclient.Response, error) {
	return createScheduledTask.Call(ctx, c.d, "", nil, data)
}

// GetScheduledTaskDetail returns the scheduled task with the given id.
func (c *Client) GetScheduledTaskDetail(ctx context.Context, taskID int64) (*apiclient.Response, error) {
	return getScheduledTaskDetail.Call(ctx, c.d, apiclient.FormatID(taskID), nil, nil)
}

// UpdateScheduledTask patches a scheduled task; data holds only the changed fields.
func (c *Client) UpdateScheduledTask(ctx context.Context, taskID int64, data any) (*apiclient.Response, error) {
	return updateScheduledTask.Call(ctx, c.d, apiclient.FormatID(taskID), nil, data)
}

// DeleteScheduledTask removes a scheduled task.
func (c *Client) DeleteScheduledTask(ctx context.Context, taskID int64) (*apiclient.Response, error) {
	return deleteScheduledTask.Call(ctx, c.d, apiclient.FormatID(taskID), nil, nil)
}

// PauseScheduledTask stops future triggers without deleting the task.
func (c *Client) PauseScheduledTask(ctx context.Context, taskID int64) (*apiclient.Response, error) {
	return pauseScheduledTask.Call(ctx, c.d, apiclient.FormatID(taskID), nil, nil)
}

// ResumeScheduledTask re-enables a paused task.
func (c *Client) ResumeScheduledTask(ctx context.Context, taskID int64) (*apiclient.Response, error) {
	return resumeScheduledTask.Call(ctx, c.d, apiclient.FormatID(taskID), nil, nil)
}

// RunScheduledTask triggers the task immediately, outside its schedule.
func (c *Client) RunScheduledTask(ctx context.Context, taskID int64) (*apiclient.Response, error) {
	return runScheduledTask.Call(ctx, c.d, apiclient.FormatID(taskID), nil, nil)
}

// GetNotificationConfigs lists notification configs. Filter and page with params.
func (c *Client) GetNotificationConfigs(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getNotificationConfigs.Call(ctx, c.d, "", params, nil)
}

// CreateNotificationConfig creates a notification config from data.
func (c *Client) CreateNotificationConfig(ctx context.Context, data any) (*apiclient.Response, error) {
	return createNotificationConfig.Call(ctx, c.d, "", nil, data)
}

// GetNotificationConfigDetail fetches one notification config.
func (c *Client) GetNotificationConfigDetail(ctx context.Context, configID int64) (*apiclient.Response, error) {
	return getNotificationConfigDetail.Call(ctx, c.d, apiclient.FormatID(configID), nil, nil)
}

// UpdateNotificationConfig updates the notification config. Only the fields in data change.
func (c *Client) UpdateNotificationConfig(ctx context.Context, configID int64, data any) (*apiclient.Response, error) {
	return updateNotificationConfig.Call(ctx, c.d, apiclient.FormatID(configID), nil, data)
}

// DeleteNotificationConfig deletes the notification config.
func (c *Client) DeleteNotificationConfig(ctx context.Context, configID int64) (*apiclient.Response, error) {
	return deleteNotificationConfig.Call(ctx, c.d, apiclient.FormatID(configID), nil, nil)
}

// SetDefaultNotificationConfig makes this config the one new tasks use.
func (c *Client) SetDefaultNotificationConfig(ctx context.Context, configID int64) (*apiclient.Response, error) {
	return setDefaultNotificationConfig.Call(ctx, c.d, apiclient.FormatID(configID), nil, nil)
}

// GetNotificationLogs lists sent and failed notifications.
func (c *Client) GetNotificationLogs(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getNotificationLogs.Call(ctx, c.d, "", params, nil)
}

// RetryNotification resends a failed notification.
func (c *Client) RetryNotification(ctx context.Context, logID int64) (*apiclient.Response, error) {
	return retryNotification.Call(ctx, c.d, apiclient.FormatID(logID), nil, nil)
}

// GetTaskNotificationSettings lists per-task notification settings.
func (c *Client) GetTaskNotificationSettings(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getTaskNotificationSettings.Call(ctx, c.d, "", params, nil)
}

// CreateTaskNotificationSetting creates a task notification setting.
func (c *Client) CreateTaskNotificationSetting(ctx context.Context, data any) (*apiclient.Response, error) {
	return createTaskNotificationSetting.Call(ctx, c.d, "", nil, data)
}

// UpdateTaskNotificationSetting patches a task notification setting; data holds only the changed fields.
func (c *Client) UpdateTaskNotificationSetting(ctx context.Context, settingID int64, data any) (*apiclient.Response, error) {
	return updateTaskNotificationSetting.Call(ctx, c.d, apiclient.FormatID(settingID), nil, data)
}
