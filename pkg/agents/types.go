package agents

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Agent statuses reported by heartbeats.
const (
	StatusIdle = "idle"
	StatusBusy = "busy"
)

// Task statuses reported through UpdateTaskStatus.
const (
	TaskRunning = "running"
	TaskSuccess = "success"
	TaskFailed  = "failed"
	TaskTimeout = "timeout"
)

// Log streams accepted by SendTaskLog.
const (
	LogStdout = "stdout"
	LogStderr = "stderr"
	LogAgent  = "agent"
)

// DefaultTaskTimeout applies when a task does not carry its own limit.
const DefaultTaskTimeout = 1800 * time.Second

// Resources is a snapshot of host utilisation in percent.
type Resources struct {
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	DiskUsage   float64 `json:"disk_usage"`
}

// RegisterRequest announces an agent to the platform. Resource fields are
// sent at the top level.
type RegisterRequest struct {
	AgentID      string `json:"agent_id"`
	OSInfo       string `json:"os_info,omitempty"`
	AgentVersion string `json:"agent_version,omitempty"`
	Resources
}

// HeartbeatRequest keeps the agent marked online.
type HeartbeatRequest struct {
	AgentID      string    `json:"agent_id"`
	Status       string    `json:"status"`
	Resources    Resources `json:"resources"`
	AgentVersion string    `json:"agent_version,omitempty"`
	OSInfo       string    `json:"os_info,omitempty"`
}

// StatusUpdate is the body of UpdateTaskStatus.
type StatusUpdate struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// LogEntry is the body of SendTaskLog.
type LogEntry struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// NewLogEntry stamps content with t in the platform's timestamp format.
func NewLogEntry(logType, content string, t time.Time) LogEntry {
	return LogEntry{
		Type:      logType,
		Content:   content,
		Timestamp: t.Format("2006-01-02T15:04:05-0700"),
	}
}

// GitRepo points a task at a repository to check out.
type GitRepo struct {
	URL    string `json:"url"`
	Branch string `json:"branch,omitempty"`
}

// Task is a unit of work handed out by PollTask.
type Task struct {
	ID             TaskID            `json:"id"`
	Name           string            `json:"name"`
	Script         string            `json:"script"`
	EnvVars        map[string]string `json:"env_vars,omitempty"`
	TimeoutSeconds int               `json:"timeout,omitempty"`
	WorkspaceClean *bool             `json:"workspace_clean,omitempty"`
	GitRepo        *GitRepo          `json:"git_repo,omitempty"`
}

// Timeout returns the task's run limit.
func (t *Task) Timeout() time.Duration {
	if t.TimeoutSeconds <= 0 {
		return DefaultTaskTimeout
	}
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// CleanWorkspace reports whether the workspace should be wiped before the
// run. Tasks clean by default.
func (t *Task) CleanWorkspace() bool {
	return t.WorkspaceClean == nil || *t.WorkspaceClean
}

// TaskID accepts both string and numeric identifiers from the platform.
type TaskID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id: %w", err)
	}
	*id = TaskID(n.String())
	return nil
}

func (id TaskID) String() string {
	return string(id)
}
