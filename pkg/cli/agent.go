package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/testhub/testhub-go/pkg/agents"
	"github.com/testhub/testhub-go/pkg/apiclient"
	"github.com/testhub/testhub-go/pkg/cli/internal/output"
	"github.com/testhub/testhub-go/pkg/cli/internal/ports"
	"github.com/testhub/testhub-go/pkg/cliconfig"
	"github.com/testhub/testhub-go/pkg/metrics"
	"github.com/testhub/testhub-go/pkg/testhub"
)

var (
	agentIDFlag     string
	agentWorkspace  string
	agentMetrics    string
	agentGitToken   string
	agentShutdownIn = 5 * time.Second
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run a TestHub execution agent",
}

var agentRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Register with the platform and execute polled tasks",
	Long: `Register this machine as an execution agent, then send heartbeats and
poll for tasks until interrupted. Each task's script runs in its own
workspace directory; output is streamed back to the platform as task logs.

The agent id defaults to agent.id from the config file, or to one derived
from the host name.

Examples:
  testhub agent run
  testhub agent run --agent-id agent-ci-01 --metrics-addr :9102`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runAgent(ctx, cfg, cmd.ErrOrStderr())
	},
}

func runAgent(ctx context.Context, c *cliconfig.Config, stderr io.Writer) error {
	ac := c.Agent
	id := ac.ID
	if id == "" {
		id = cliconfig.DefaultAgentID()
		output.Warn(stderr, "no agent id configured, using %s (run 'testhub config init' to persist one)", id)
	}

	rec := metrics.NewRecorder(metrics.WithRuntimeCollectors())
	// The agent identifies itself as such unless a user agent was configured.
	ua := c.UserAgent
	if ua == "" || ua == apiclient.DefaultUserAgent {
		ua = agents.UserAgent(ac.Version)
	}
	client, err := testhub.FromConfig(c,
		apiclient.WithUserAgent(ua),
		apiclient.WithLogger(logger),
		apiclient.WithObserver(rec),
	)
	if err != nil {
		return err
	}
	agentClient := agents.New(client.Dispatcher())

	handler := &agents.ShellHandler{
		Client:    agentClient,
		Workspace: ac.Workspace,
		GitToken:  ac.GitToken,
	}
	runner := agents.NewRunner(agentClient, id, handler,
		agents.WithAgentVersion(ac.Version),
		agents.WithHeartbeatInterval(ac.HeartbeatInterval),
		agents.WithPollInterval(ac.PollInterval),
		agents.WithLogForwarding(ac.ForwardLogs),
		agents.WithObserver(rec),
		agents.WithLogger(logger),
	)

	g, gctx := errgroup.WithContext(ctx)
	if ac.MetricsAddr != "" {
		if err := ports.Check(ac.MetricsAddr); err != nil {
			return err
		}
		srv := &http.Server{
			Addr:              ac.MetricsAddr,
			Handler:           metricsMux(rec),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			logger.Info("serving metrics", "addr", ac.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), agentShutdownIn)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}
	g.Go(func() error {
		return runner.Run(gctx)
	})
	return g.Wait()
}

func metricsMux(rec *metrics.Recorder) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func init() {
	f := agentRunCmd.Flags()
	f.StringVar(&agentIDFlag, "agent-id", "", "Agent id (default: agent.id from config, or derived from the host)")
	f.StringVar(&agentWorkspace, "workspace", "", "Parent directory for task workspaces (default ~/testhub_agent/workspace)")
	f.StringVar(&agentMetrics, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9102")
	f.StringVar(&agentGitToken, "git-token", "", "Token for HTTPS clones of private repositories")
	agentCmd.AddCommand(agentRunCmd)
	rootCmd.AddCommand(agentCmd)
}
