package agents

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testhub/testhub-go/pkg/apiclient"
	"github.com/testhub/testhub-go/pkg/apiclient/apiclienttest"
)

func TestRegister(t *testing.T) {
	rec := &apiclienttest.Recorder{}
	req := RegisterRequest{
		AgentID:      "agent-1",
		OSInfo:       "Linux 6.8",
		AgentVersion: "1.0.0",
		Resources:    Resources{CPUUsage: 12.5, MemoryUsage: 40, DiskUsage: 71.25},
	}

	_, err := New(rec).Register(context.Background(), req)
	require.NoError(t, err)

	got := rec.Last()
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/agents/register/", got.Path)
	assert.Equal(t, "agents.Register", got.Endpoint)

	body, err := json.Marshal(got.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"agent_id": "agent-1",
		"os_info": "Linux 6.8",
		"agent_version": "1.0.0",
		"cpu_usage": 12.5,
		"memory_usage": 40,
		"disk_usage": 71.25
	}`, string(body))
}

func TestHeartbeatNestsResources(t *testing.T) {
	rec := &apiclienttest.Recorder{}
	_, err := New(rec).Heartbeat(context.Background(), HeartbeatRequest{
		AgentID:   "agent-1",
		Status:    StatusBusy,
		Resources: Resources{CPUUsage: 1},
	})
	require.NoError(t, err)

	body, err := json.Marshal(rec.Last().Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"agent_id": "agent-1",
		"status": "busy",
		"resources": {"cpu_usage": 1, "memory_usage": 0, "disk_usage": 0}
	}`, string(body))
	assert.Equal(t, "/agents/heartbeat/", rec.Last().Path)
}

func TestPollTask(t *testing.T) {
	tests := []struct {
		name     string
		response *apiclient.Response
		wantNil  bool
		wantID   TaskID
	}{
		{
			name:     "no content",
			response: &apiclient.Response{StatusCode: http.StatusNoContent},
			wantNil:  true,
		},
		{
			name:     "empty body",
			response: &apiclient.Response{StatusCode: http.StatusOK, Body: []byte("  ")},
			wantNil:  true,
		},
		{
			name:     "numeric id",
			response: &apiclient.Response{StatusCode: http.StatusOK, Body: []byte(`{"id": 42, "name": "smoke", "script": "make test", "timeout": 60}`)},
			wantID:   "42",
		},
		{
			name:     "string id",
			response: &apiclient.Response{StatusCode: http.StatusOK, Body: []byte(`{"id": "a1b2", "script": "true"}`)},
			wantID:   "a1b2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &apiclienttest.Recorder{Response: tt.response}
			task, err := New(rec).PollTask(context.Background(), "agent-9")
			require.NoError(t, err)

			req := rec.Last()
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, "/tasks/poll/", req.Path)
			assert.Equal(t, apiclient.Params{"agent_id": "agent-9"}, req.Params)

			if tt.wantNil {
				assert.Nil(t, task)
				return
			}
			require.NotNil(t, task)
			assert.Equal(t, tt.wantID, task.ID)
		})
	}
}

func TestPollTask_Errors(t *testing.T) {
	rec := &apiclienttest.Recorder{Err: &apiclient.APIError{StatusCode: 401, Code: apiclient.CodeHTTPError}}
	task, err := New(rec).PollTask(context.Background(), "agent-9")
	assert.Nil(t, task)
	assert.True(t, errors.Is(err, apiclient.ErrUnauthorized))

	rec = &apiclienttest.Recorder{Response: &apiclient.Response{StatusCode: 200, Body: []byte(`{"id": [1]}`)}}
	_, err = New(rec).PollTask(context.Background(), "agent-9")
	assert.ErrorContains(t, err, "failed to decode task")
}

func TestTaskStatusAndLog(t *testing.T) {
	rec := &apiclienttest.Recorder{}
	c := New(rec)
	ctx := context.Background()

	_, err := c.UpdateTaskStatus(ctx, "17", TaskFailed, "exit 2")
	require.NoError(t, err)
	assert.Equal(t, "/tasks/17/status/", rec.Last().Path)
	assert.Equal(t, StatusUpdate{Status: "failed", Message: "exit 2"}, rec.Last().Body)

	at := time.Date(2024, 3, 9, 14, 5, 6, 0, time.FixedZone("CST", 8*3600))
	_, err = c.SendTaskLog(ctx, "17", NewLogEntry(LogStderr, "boom", at))
	require.NoError(t, err)
	assert.Equal(t, "/tasks/17/log/", rec.Last().Path)
	assert.Equal(t, LogEntry{Type: "stderr", Content: "boom", Timestamp: "2024-03-09T14:05:06+0800"}, rec.Last().Body)
}

func TestTask_Defaults(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "script": "true"}`), &task))
	assert.Equal(t, DefaultTaskTimeout, task.Timeout())
	assert.True(t, task.CleanWorkspace())

	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "timeout": 90, "workspace_clean": false, "git_repo": {"url": "https://git.example.com/qa.git"}}`), &task))
	assert.Equal(t, 90*time.Second, task.Timeout())
	assert.False(t, task.CleanWorkspace())
	require.NotNil(t, task.GitRepo)
	assert.Equal(t, "https://git.example.com/qa.git", task.GitRepo.URL)

	var id TaskID
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestEndpoints(t *testing.T) {
	seen := map[string]bool{}
	for _, ep := range Endpoints {
		assert.False(t, seen[ep.Name], ep.Name)
		seen[ep.Name] = true
	}
	assert.Len(t, Endpoints, 6)
	assert.Equal(t, UploadTimeout, uploadReport.Timeout)
	assert.Equal(t, "/reports/agent-reports/tasks/9/report/", uploadReport.URL("9"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.35, round2(12.3456))
	assert.Equal(t, 0.0, round2(0.001))
	assert.Equal(t, "Linux", osName("linux"))
	assert.Equal(t, "plan9", osName("plan9"))
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "TestHubAgent/1.0.0", UserAgent(""))
	assert.Equal(t, "TestHubAgent/2.1.0", UserAgent("2.1.0"))
}
