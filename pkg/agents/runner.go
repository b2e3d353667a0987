package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/testhub/testhub-go/pkg/logging"
)

// Default loop intervals.
const (
	DefaultHeartbeatInterval = 30 * time.Second
	DefaultPollInterval      = 5 * time.Second
	DefaultAgentVersion      = "1.0.0"
)

// reportTimeout bounds the status and log calls made after a task ends, even
// when the agent is shutting down.
const reportTimeout = 10 * time.Second

// ErrNoAgentID is returned by Run when the runner has no agent id.
var ErrNoAgentID = errors.New("agent id is required")

// TaskHandler executes one task. A nil error reports success. An error
// returned after the task's own limit has passed reports a timeout; any
// other error reports failure with its message. Records logged
// through log are also forwarded to the task's live log when forwarding is
// enabled.
type TaskHandler interface {
	HandleTask(ctx context.Context, task *Task, log *slog.Logger) error
}

// TaskHandlerFunc adapts a function to TaskHandler.
type TaskHandlerFunc func(ctx context.Context, task *Task, log *slog.Logger) error

// HandleTask implements TaskHandler.
func (f TaskHandlerFunc) HandleTask(ctx context.Context, task *Task, log *slog.Logger) error {
	return f(ctx, task, log)
}

// Observer receives runner events, typically a metrics recorder.
type Observer interface {
	ObserveTask(status string, elapsed time.Duration)
	ObserveHeartbeat(err error)
	SetBusy(busy bool)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithHeartbeatInterval sets how often heartbeats are sent.
func WithHeartbeatInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.heartbeatInterval = d
		}
	}
}

// WithPollInterval sets how often an idle agent polls for work.
func WithPollInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.pollInterval = d
		}
	}
}

// WithAgentVersion sets the version reported to the platform.
func WithAgentVersion(v string) RunnerOption {
	return func(r *Runner) {
		if v != "" {
			r.version = v
		}
	}
}

// WithProbe replaces the host probe.
func WithProbe(p Probe) RunnerOption {
	return func(r *Runner) {
		if p != nil {
			r.probe = p
		}
	}
}

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver registers an Observer.
func WithObserver(o Observer) RunnerOption {
	return func(r *Runner) {
		r.observer = o
	}
}

// WithLogForwarding ships handler log records to the task's live log.
func WithLogForwarding(enabled bool) RunnerOption {
	return func(r *Runner) {
		r.forwardLogs = enabled
	}
}

// Runner registers an agent and then heartbeats and polls for tasks until
// its context is cancelled. Tasks run one at a time.
type Runner struct {
	client  *Client
	agentID string
	handler TaskHandler

	version           string
	heartbeatInterval time.Duration
	pollInterval      time.Duration
	probe             Probe
	logger            *slog.Logger
	observer          Observer
	forwardLogs       bool

	busy atomic.Bool
}

// NewRunner creates a runner for agentID that hands tasks to handler.
func NewRunner(client *Client, agentID string, handler TaskHandler, opts ...RunnerOption) *Runner {
	r := &Runner{
		client:            client,
		agentID:           agentID,
		handler:           handler,
		version:           DefaultAgentVersion,
		heartbeatInterval: DefaultHeartbeatInterval,
		pollInterval:      DefaultPollInterval,
		probe:             HostProbe{},
		logger:            logging.Nop(),
		forwardLogs:       true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Status returns "idle" or "busy".
func (r *Runner) Status() string {
	if r.busy.Load() {
		return StatusBusy
	}
	return StatusIdle
}

// Run registers the agent and blocks until ctx is done. Only a failed
// registration is returned as an error; loop failures are logged and retried
// on the next tick.
func (r *Runner) Run(ctx context.Context) error {
	if r.agentID == "" {
		return ErrNoAgentID
	}
	log := r.logger.With("agent_id", r.agentID)
	log.Info("starting agent")

	if err := r.register(ctx); err != nil {
		return fmt.Errorf("agent registration failed: %w", err)
	}
	log.Info("agent registered")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.heartbeatLoop(gctx)
		return nil
	})
	g.Go(func() error {
		r.pollLoop(gctx)
		return nil
	})
	err := g.Wait()
	log.Info("agent stopped")
	return err
}

func (r *Runner) register(ctx context.Context) error {
	_, err := r.client.Register(ctx, RegisterRequest{
		AgentID:      r.agentID,
		OSInfo:       r.probe.OSInfo(ctx),
		AgentVersion: r.version,
		Resources:    r.probe.Usage(ctx),
	})
	return err
}

func (r *Runner) sendHeartbeat(ctx context.Context) {
	_, err := r.client.Heartbeat(ctx, HeartbeatRequest{
		AgentID:      r.agentID,
		Status:       r.Status(),
		Resources:    r.probe.Usage(ctx),
		AgentVersion: r.version,
		OSInfo:       r.probe.OSInfo(ctx),
	})
	if r.observer != nil {
		r.observer.ObserveHeartbeat(err)
	}
	if err != nil && ctx.Err() == nil {
		r.logger.Warn("failed to send heartbeat", "error", err)
		return
	}
	r.logger.Debug("heartbeat sent", "status", r.Status())
}

func (r *Runner) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(r.heartbeatInterval)
	defer ticker.Stop()

	r.sendHeartbeat(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sendHeartbeat(ctx)
		}
	}
}

func (r *Runner) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		task, err := r.client.PollTask(ctx, r.agentID)
		if err != nil {
			if ctx.Err() == nil {
				r.logger.Error("failed to poll for tasks", "error", err)
			}
			continue
		}
		if task == nil {
			r.logger.Debug("no pending tasks")
			continue
		}
		r.execute(ctx, task)
	}
}

// execute runs one task and reports its lifecycle. It never returns an
// error; every outcome is reported to the platform instead.
func (r *Runner) execute(ctx context.Context, task *Task) {
	taskID := task.ID.String()
	log := r.logger.With("task_id", taskID, "task", task.Name)
	log.Info("new task received")

	r.setBusy(true)
	defer r.setBusy(false)
	r.sendHeartbeat(ctx)

	if _, err := r.client.UpdateTaskStatus(ctx, taskID, TaskRunning, ""); err != nil {
		log.Error("failed to update task status", "status", TaskRunning, "error", err)
	}

	taskLog, closeLog := r.taskLogger(log, taskID)

	start := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, task.Timeout())
	err := r.handler.HandleTask(runCtx, task, taskLog)
	timedOut := errors.Is(runCtx.Err(), context.DeadlineExceeded)
	cancel()
	elapsed := time.Since(start)

	status, message := TaskSuccess, ""
	switch {
	case err == nil:
	case timedOut && ctx.Err() == nil:
		status = TaskTimeout
	case ctx.Err() != nil:
		status, message = TaskFailed, "agent stopped before the task finished"
	default:
		status, message = TaskFailed, err.Error()
	}

	// Final reports must go out even while the agent shuts down.
	reportCtx, cancelReport := context.WithTimeout(context.WithoutCancel(ctx), reportTimeout)
	defer cancelReport()

	if err := closeLog(reportCtx); err != nil {
		log.Warn("failed to send task log", "error", err)
	}
	if _, err := r.client.UpdateTaskStatus(reportCtx, taskID, status, message); err != nil {
		log.Error("failed to update task status", "status", status, "error", err)
	}
	if r.observer != nil {
		r.observer.ObserveTask(status, elapsed)
	}
	log.Info("finished task", "status", status, "elapsed", elapsed)
}

func (r *Runner) setBusy(busy bool) {
	r.busy.Store(busy)
	if r.observer != nil {
		r.observer.SetBusy(busy)
	}
}

// taskLogger returns the logger handed to the task handler and a function
// that flushes whatever is still buffered for the platform.
func (r *Runner) taskLogger(log *slog.Logger, taskID string) (*slog.Logger, func(context.Context) error) {
	if !r.forwardLogs {
		return log, func(context.Context) error { return nil }
	}
	fwd := logging.NewForwardHandler(r.logSink(taskID), logging.WithForwardLevel(slog.LevelDebug))
	return slog.New(logging.Tee(log.Handler(), fwd)), fwd.Close
}

// logSink delivers forwarded records as task log lines. The "stream"
// attribute selects stdout or stderr; anything else is an agent line.
func (r *Runner) logSink(taskID string) logging.Sink {
	return func(ctx context.Context, entries []logging.Entry) error {
		var firstErr error
		for _, e := range entries {
			logType := LogAgent
			if s, ok := e.Attrs["stream"].(string); ok && (s == LogStdout || s == LogStderr) {
				logType = s
			}
			_, err := r.client.SendTaskLog(ctx, taskID, NewLogEntry(logType, e.Message, e.Time))
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}
}

// UserAgent is the User-Agent an agent of the given version sends.
func UserAgent(version string) string {
	return "TestHubAgent/" + orDefault(version, DefaultAgentVersion)
}
