package agents

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

type fakeProbe struct{}

func (fakeProbe) OSInfo(context.Context) string { return "Linux test" }

func (fakeProbe) Usage(context.Context) Resources {
	return Resources{CPUUsage: 10, MemoryUsage: 20, DiskUsage: 30}
}

// fakePlatform serves the agent protocol and records what it receives.
type fakePlatform struct {
	mu         sync.Mutex
	tasks      []string
	registered []RegisterRequest
	heartbeats []HeartbeatRequest
	statuses   []StatusUpdate
	logs       []LogEntry
	rejectReg  bool
}

func (p *fakePlatform) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/agents/register/", func(w http.ResponseWriter, r *http.Request) {
		if p.rejectReg {
			http.Error(w, `{"detail":"Invalid agent"}`, http.StatusBadRequest)
			return
		}
		var req RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		p.mu.Lock()
		p.registered = append(p.registered, req)
		p.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("POST /api/agents/heartbeat/", func(w http.ResponseWriter, r *http.Request) {
		var req HeartbeatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		p.mu.Lock()
		p.heartbeats = append(p.heartbeats, req)
		p.mu.Unlock()
	})
	mux.HandleFunc("GET /api/tasks/poll/", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		if len(p.tasks) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		task := p.tasks[0]
		p.tasks = p.tasks[1:]
		_, _ = w.Write([]byte(task))
	})
	mux.HandleFunc("POST /api/tasks/{id}/status/", func(w http.ResponseWriter, r *http.Request) {
		var req StatusUpdate
		_ = json.NewDecoder(r.Body).Decode(&req)
		p.mu.Lock()
		p.statuses = append(p.statuses, req)
		p.mu.Unlock()
	})
	mux.HandleFunc("POST /api/tasks/{id}/log/", func(w http.ResponseWriter, r *http.Request) {
		var req LogEntry
		_ = json.NewDecoder(r.Body).Decode(&req)
		p.mu.Lock()
		p.logs = append(p.logs, req)
		p.mu.Unlock()
	})
	return mux
}

func (p *fakePlatform) statusList() []StatusUpdate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]StatusUpdate(nil), p.statuses...)
}

type fakeObserver struct {
	mu        sync.Mutex
	tasks     []string
	busyCalls []bool
}

func (o *fakeObserver) ObserveTask(status string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tasks = append(o.tasks, status)
}

func (o *fakeObserver) ObserveHeartbeat(error) {}

func (o *fakeObserver) SetBusy(busy bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.busyCalls = append(o.busyCalls, busy)
}

// runUntil starts a runner against platform and stops it once done reports
// true.
func runUntil(t *testing.T, platform *fakePlatform, handler TaskHandler, done func() bool, opts ...RunnerOption) *Runner {
	t.Helper()
	ts := httptest.NewServer(platform.handler())
	defer ts.Close()

	opts = append([]RunnerOption{
		WithProbe(fakeProbe{}),
		WithPollInterval(10 * time.Millisecond),
		WithHeartbeatInterval(time.Hour),
	}, opts...)
	r := NewRunner(New(apiclient.New(ts.URL+"/api")), "agent-7", handler, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx) }()

	require.Eventually(t, done, 5*time.Second, 10*time.Millisecond)
	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop")
	}
	return r
}

func TestRunner_SuccessfulTask(t *testing.T) {
	platform := &fakePlatform{tasks: []string{`{"id": 11, "name": "smoke", "script": "true"}`}}
	obs := &fakeObserver{}

	var seen *Task
	handler := TaskHandlerFunc(func(ctx context.Context, task *Task, log *slog.Logger) error {
		seen = task
		log.Info("collected 3 tests", "stream", LogStdout)
		log.Warn("deprecated flag", "stream", LogStderr)
		log.Info("preparing workspace")
		return nil
	})

	r := runUntil(t, platform, handler, func() bool {
		return len(platform.statusList()) == 2
	}, WithObserver(obs))

	require.NotNil(t, seen)
	assert.Equal(t, TaskID("11"), seen.ID)
	assert.Equal(t, StatusIdle, r.Status())

	platform.mu.Lock()
	defer platform.mu.Unlock()

	require.Len(t, platform.registered, 1)
	assert.Equal(t, RegisterRequest{
		AgentID:      "agent-7",
		OSInfo:       "Linux test",
		AgentVersion: DefaultAgentVersion,
		Resources:    Resources{CPUUsage: 10, MemoryUsage: 20, DiskUsage: 30},
	}, platform.registered[0])

	assert.Equal(t, []StatusUpdate{{Status: TaskRunning}, {Status: TaskSuccess}}, platform.statuses)

	var busyBeat bool
	for _, hb := range platform.heartbeats {
		if hb.Status == StatusBusy {
			busyBeat = true
		}
	}
	assert.True(t, busyBeat, "a busy heartbeat is sent when a task starts")

	require.Len(t, platform.logs, 3)
	assert.Equal(t, LogStdout, platform.logs[0].Type)
	assert.Equal(t, "collected 3 tests", platform.logs[0].Content)
	assert.Equal(t, LogStderr, platform.logs[1].Type)
	assert.Equal(t, LogAgent, platform.logs[2].Type)
	assert.NotEmpty(t, platform.logs[2].Timestamp)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.Equal(t, []string{TaskSuccess}, obs.tasks)
	assert.Equal(t, []bool{true, false}, obs.busyCalls)
}

func TestRunner_FailedTask(t *testing.T) {
	platform := &fakePlatform{tasks: []string{`{"id": "x1", "script": "false"}`}}
	handler := TaskHandlerFunc(func(context.Context, *Task, *slog.Logger) error {
		return errors.New("script exited with code 2")
	})

	runUntil(t, platform, handler, func() bool {
		return len(platform.statusList()) == 2
	}, WithLogForwarding(false))

	assert.Equal(t, []StatusUpdate{
		{Status: TaskRunning},
		{Status: TaskFailed, Message: "script exited with code 2"},
	}, platform.statusList())
	assert.Empty(t, platform.logs)
}

func TestRunner_TimedOutTask(t *testing.T) {
	platform := &fakePlatform{tasks: []string{`{"id": 12, "script": "sleep 60", "timeout": 1}`}}
	handler := TaskHandlerFunc(func(ctx context.Context, _ *Task, _ *slog.Logger) error {
		<-ctx.Done()
		return ctx.Err()
	})

	runUntil(t, platform, handler, func() bool {
		return len(platform.statusList()) == 2
	})

	statuses := platform.statusList()
	assert.Equal(t, TaskTimeout, statuses[1].Status)
}

func TestRunner_RunsTasksInOrder(t *testing.T) {
	platform := &fakePlatform{tasks: []string{`{"id": 1}`, `{"id": 2}`}}
	var mu sync.Mutex
	var order []TaskID
	handler := TaskHandlerFunc(func(_ context.Context, task *Task, _ *slog.Logger) error {
		mu.Lock()
		order = append(order, task.ID)
		mu.Unlock()
		return nil
	})

	runUntil(t, platform, handler, func() bool {
		return len(platform.statusList()) == 4
	})
	assert.Equal(t, []TaskID{"1", "2"}, order)
}

func TestRunner_RegistrationFailure(t *testing.T) {
	platform := &fakePlatform{rejectReg: true}
	ts := httptest.NewServer(platform.handler())
	defer ts.Close()

	r := NewRunner(New(apiclient.New(ts.URL+"/api")), "agent-7", TaskHandlerFunc(nil), WithProbe(fakeProbe{}))
	err := r.Run(context.Background())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "agent registration failed"))
	assert.Equal(t, http.StatusBadRequest, apiclient.StatusCode(err))
}

func TestRunner_RequiresAgentID(t *testing.T) {
	r := NewRunner(New(nil), "", TaskHandlerFunc(nil))
	assert.ErrorIs(t, r.Run(context.Background()), ErrNoAgentID)
}
