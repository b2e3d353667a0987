// Package agents implements the platform protocol spoken by execution
// agents: registration, heartbeats, task polling, status and log reporting,
// and report upload. Runner drives that protocol in a loop.
package agents

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

// Family prefixes every endpoint name in this package.
const Family = "agents"

// UploadTimeout bounds a report upload.
const UploadTimeout = 5 * time.Minute

func endpoint(name, method, path string) apiclient.Endpoint {
	return apiclient.NewEndpoint(Family+"."+name, method, path)
}

var (
	register         = endpoint("Register", http.MethodPost, "/agents/register/")
	heartbeat        = endpoint("Heartbeat", http.MethodPost, "/agents/heartbeat/")
	pollTask         = endpoint("PollTask", http.MethodGet, "/tasks/poll/")
	updateTaskStatus = endpoint("UpdateTaskStatus", http.MethodPost, "/tasks/{id}/status/")
	sendTaskLog      = endpoint("SendTaskLog", http.MethodPost, "/tasks/{id}/log/")
	uploadReport     = endpoint("UploadReport", http.MethodPost, "/reports/agent-reports/tasks/{id}/report/").WithTimeout(UploadTimeout)
)

// Endpoints lists every binding in this package.
var Endpoints = []apiclient.Endpoint{
	register,
	heartbeat,
	pollTask,
	updateTaskStatus,
	sendTaskLog,
	uploadReport,
}

// Client exposes the agent-facing endpoints.
type Client struct {
	d apiclient.Doer
}

// New returns a client that dispatches through d.
func New(d apiclient.Doer) *Client {
	return &Client{d: d}
}

// Register creates or refreshes the agent record.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*apiclient.Response, error) {
	return register.Call(ctx, c.d, "", nil, req)
}

func (c *Client) Heartbeat(ctx context.Context, req HeartbeatRequest) (*apiclient.Response, error) {
	return heartbeat.Call(ctx, c.d, "", nil, req)
}

// PollTask asks for the next task assigned to agentID. It returns nil and no
// error when the platform has nothing queued (204).
func (c *Client) PollTask(ctx context.Context, agentID string) (*Task, error) {
	resp, err := pollTask.Call(ctx, c.d, "", apiclient.Params{"agent_id": agentID}, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNoContent || resp.Empty() {
		return nil, nil
	}
	var task Task
	if err := resp.Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	return &task, nil
}

func (c *Client) UpdateTaskStatus(ctx context.Context, taskID, status, message string) (*apiclient.Response, error) {
	return updateTaskStatus.Call(ctx, c.d, taskID, nil, StatusUpdate{Status: status, Message: message})
}

// SendTaskLog appends one line to the task's live log.
func (c *Client) SendTaskLog(ctx context.Context, taskID string, entry LogEntry) (*apiclient.Response, error) {
	return sendTaskLog.Call(ctx, c.d, taskID, nil, entry)
}
