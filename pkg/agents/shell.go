package agents

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// Defaults used by ShellHandler.
const (
	DefaultResultsDir = "allure-results"
	DefaultReportDir  = "allure-report"
	DefaultKillGrace  = 10 * time.Second
)

const maxLineLength = 1 << 20

// DefaultAttachmentPatterns select the files uploaded next to the report.
var DefaultAttachmentPatterns = []string{"**/*.log", "**/*.png", "**/*.jpg"}

// ShellHandler runs a task's script with the system shell inside a per-task
// workspace, then builds and uploads an Allure report when results exist.
type ShellHandler struct {
	// Client uploads reports. Without it reports are skipped.
	Client *Client
	// Workspace is the parent directory of per-task workspaces.
	Workspace string
	// GitToken authenticates HTTPS clones of private repositories.
	GitToken string

	ResultsDir         string
	ReportDir          string
	AttachmentPatterns []string
	// KillGrace is how long a timed-out script gets between SIGTERM and
	// SIGKILL.
	KillGrace time.Duration
}

// HandleTask implements TaskHandler.
func (h *ShellHandler) HandleTask(ctx context.Context, task *Task, log *slog.Logger) error {
	dir, err := h.prepareWorkspace(task, log)
	if err != nil {
		return err
	}

	if task.GitRepo != nil && task.GitRepo.URL != "" {
		if err := h.clone(ctx, task.GitRepo, dir, log); err != nil {
			return fmt.Errorf("git clone failed: %w", err)
		}
	}

	runErr := h.runScript(ctx, task, dir, log)

	// The report is built even when the script failed or ran out of time.
	h.processReports(context.WithoutCancel(ctx), task.ID.String(), dir, log)

	return runErr
}

func (h *ShellHandler) prepareWorkspace(task *Task, log *slog.Logger) (string, error) {
	base := h.Workspace
	if base == "" {
		base = DefaultWorkspace()
	}
	dir := filepath.Join(base, task.ID.String())
	if task.CleanWorkspace() {
		log.Info("cleaning workspace", "dir", dir)
		if err := os.RemoveAll(dir); err != nil {
			return "", fmt.Errorf("failed to clean workspace: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}
	return dir, nil
}

// DefaultWorkspace is ~/testhub_agent/workspace.
func DefaultWorkspace() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, "testhub_agent", "workspace")
}

func (h *ShellHandler) clone(ctx context.Context, repo *GitRepo, dir string, log *slog.Logger) error {
	branch := repo.Branch
	if branch == "" {
		branch = "main"
	}
	log.Info("cloning repository", "url", repo.URL, "branch", branch)

	url := repo.URL
	if h.GitToken != "" && strings.HasPrefix(url, "https://") {
		url = "https://oauth2:" + h.GitToken + "@" + strings.TrimPrefix(url, "https://")
	}
	cmd := exec.CommandContext(ctx, "git", "clone", "--branch", branch, url, ".")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
	}
	log.Debug("git clone finished", "output", strings.TrimSpace(string(out)))
	return nil
}

func shellCommand(ctx context.Context, script string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", script)
	}
	return exec.CommandContext(ctx, "sh", "-c", script)
}

// runScript executes the task script and streams its output line by line
// through log with a "stream" attribute.
func (h *ShellHandler) runScript(ctx context.Context, task *Task, dir string, log *slog.Logger) error {
	cmd := shellCommand(ctx, task.Script)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	for k, v := range task.EnvVars {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = h.KillGrace
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = DefaultKillGrace
	}

	stdout := &lineWriter{log: log, stream: LogStdout}
	stderr := &lineWriter{log: log, stream: LogStderr}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start script: %w", err)
	}

	err := cmd.Wait()
	stdout.Flush()
	stderr.Flush()
	if ctx.Err() != nil {
		log.Warn("script stopped", "timeout", task.Timeout(), "reason", ctx.Err())
		return ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("script exited with code %d", exitErr.ExitCode())
	}
	return err
}

// lineWriter logs every complete line written to it. exec copies each
// stream from a single goroutine, so it needs no locking.
type lineWriter struct {
	log     *slog.Logger
	stream  string
	pending []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		w.emit(w.pending[:i])
		w.pending = w.pending[i+1:]
	}
	if len(w.pending) > maxLineLength {
		w.Flush()
	}
	return len(p), nil
}

// Flush logs a trailing line that has no newline.
func (w *lineWriter) Flush() {
	w.emit(w.pending)
	w.pending = nil
}

func (w *lineWriter) emit(b []byte) {
	line := strings.TrimSpace(string(b))
	if line != "" {
		w.log.Info(line, "stream", w.stream)
	}
}

func (h *ShellHandler) processReports(ctx context.Context, taskID, dir string, log *slog.Logger) {
	if h.Client == nil {
		return
	}
	resultsDir := filepath.Join(dir, orDefault(h.ResultsDir, DefaultResultsDir))
	reportDir := filepath.Join(dir, orDefault(h.ReportDir, DefaultReportDir))

	entries, err := os.ReadDir(resultsDir)
	if err != nil || len(entries) == 0 {
		log.Info("no Allure results found, skipping report", "dir", resultsDir)
		return
	}

	gen := exec.CommandContext(ctx, "allure", "generate", resultsDir, "-o", reportDir, "--clean")
	if out, err := gen.CombinedOutput(); err != nil {
		log.Error("failed to generate Allure report", "error", err, "output", strings.TrimSpace(string(out)))
		return
	}

	zipPath := filepath.Join(dir, "allure-report-"+taskID+".zip")
	if err := zipDir(reportDir, zipPath); err != nil {
		log.Error("failed to compress report", "error", err)
		return
	}

	attachments, err := h.collectAttachments(dir)
	if err != nil {
		log.Warn("failed to collect attachments", "error", err)
	}

	if _, err := h.Client.UploadReportFiles(ctx, taskID, zipPath, attachments); err != nil {
		log.Error("failed to upload report", "error", err)
		return
	}
	log.Info("report uploaded", "attachments", len(attachments))
}

// collectAttachments returns absolute paths of files under dir matching the
// attachment patterns, skipping the Allure directories.
func (h *ShellHandler) collectAttachments(dir string) ([]string, error) {
	patterns := h.AttachmentPatterns
	if len(patterns) == 0 {
		patterns = DefaultAttachmentPatterns
	}
	skip := []string{
		orDefault(h.ResultsDir, DefaultResultsDir) + "/**",
		orDefault(h.ReportDir, DefaultReportDir) + "/**",
	}
	return CollectFiles(dir, patterns, skip)
}

// CollectFiles globs dir with doublestar patterns and returns sorted,
// de-duplicated absolute paths that match none of the exclude patterns.
func CollectFiles(dir string, include, exclude []string) ([]string, error) {
	fsys := os.DirFS(dir)
	seen := map[string]bool{}
	var out []string
	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
	next:
		for _, m := range matches {
			if seen[m] {
				continue
			}
			for _, ex := range exclude {
				if ok, _ := doublestar.Match(ex, m); ok {
					continue next
				}
			}
			seen[m] = true
			out = append(out, filepath.Join(dir, filepath.FromSlash(m)))
		}
	}
	sort.Strings(out)
	return out, nil
}

// zipDir writes every regular file under src into a deflated archive at dst,
// with paths relative to src.
func zipDir(src, dst string) (err error) {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(f)
	walkErr := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: filepath.ToSlash(rel), Method: zip.Deflate})
		if err != nil {
			return err
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = in.Close() }()
		_, err = io.Copy(w, in)
		return err
	})
	if walkErr != nil {
		_ = zw.Close()
		return walkErr
	}
	return zw.Close()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
