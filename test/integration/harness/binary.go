package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	// waitDelay bounds how long Wait blocks on pipes held open by orphaned children
	waitDelay = 5 * time.Second
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// CommandResult holds the result of one CLI invocation
type CommandResult struct {
	Args     []string
	Dir      string
	Duration time.Duration
	ExitCode int
	Output   string // stdout and stderr interleaved in arrival order
	Stderr   string
	Stdout   string
}

// BuildBinary compiles the productsearch binary once per test run.
// Call this from TestMain before running tests.
func BuildBinary() (string, error) {
	buildOnce.Do(func() {
		tempDir, err := os.MkdirTemp("", "productsearch-integration-test-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryPath = filepath.Join(tempDir, "productsearch")

		projectRoot, err := findProjectRoot()
		if err != nil {
			buildErr = err
			return
		}

		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd")
		cmd.Dir = projectRoot
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		buildErr = cmd.Run()
	})

	return binaryPath, buildErr
}

// CleanupBinary removes the compiled binary and its temp directory.
// Call this from TestMain after tests complete.
func CleanupBinary() {
	if binaryPath != "" {
		if err := os.RemoveAll(filepath.Dir(binaryPath)); err != nil {
			log.Printf("Warning: failed to cleanup binary directory: %v", err)
		}
	}
}

// GetBinaryPath returns the path to the compiled binary.
func GetBinaryPath() string {
	return binaryPath
}

// Runner executes a CLI binary as a subprocess.
// A zero Timeout means defaultTimeout; a nil Env inherits the current environment.
type Runner struct {
	Binary  string
	Dir     string
	Env     []string
	Timeout time.Duration
}

// Run executes the binary with args and waits for it to finish.
// A non-zero exit returns *ProcessError, an expired timeout returns *ProcessTimeout
// after the whole process group has been killed. The result is filled in either case.
func (r *Runner) Run(ctx context.Context, args ...string) (CommandResult, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Dir = r.Dir
	cmd.Env = r.Env
	cmd.WaitDelay = waitDelay
	configureProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	combined := &syncBuffer{}
	cmd.Stdout = io.MultiWriter(&stdout, combined)
	cmd.Stderr = io.MultiWriter(&stderr, combined)

	start := time.Now()
	err := cmd.Run()

	result := CommandResult{
		Args:     append([]string{r.Binary}, args...),
		Dir:      r.Dir,
		Duration: time.Since(start),
		Output:   combined.String(),
		Stderr:   stderr.String(),
		Stdout:   stdout.String(),
	}

	if ctx.Err() == context.DeadlineExceeded {
		result.ExitCode = -1
		return result, &ProcessTimeout{Args: result.Args, Output: result.Output, Timeout: timeout}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, &ProcessError{
			Args:     result.Args,
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
			Stdout:   result.Stdout,
		}
	}
	if err != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("failed to run %s: %w", r.Binary, err)
	}

	return result, nil
}

// RunCommand executes the productsearch binary with given arguments using default timeout.
func RunCommand(tb testing.TB, env *TestEnvironment, args ...string) CommandResult {
	tb.Helper()
	return RunCommandWithTimeout(tb, env, defaultTimeout, args...)
}

// RunCommandWithTimeout executes the productsearch binary with given arguments and timeout.
// Failures are reported through the result's exit code.
func RunCommandWithTimeout(tb testing.TB, env *TestEnvironment, timeout time.Duration, args ...string) CommandResult {
	tb.Helper()

	runner := env.Runner()
	runner.Timeout = timeout

	result, err := runner.Run(context.Background(), args...)

	var processErr *ProcessError
	var timeoutErr *ProcessTimeout
	switch {
	case err == nil, errors.As(err, &processErr):
	case errors.As(err, &timeoutErr):
		tb.Logf("Command timed out after %v: %v", timeout, result.Args)
	default:
		tb.Logf("Command execution error: %v", err)
	}

	return result
}

// syncBuffer is a bytes.Buffer safe for the concurrent stdout/stderr copiers
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// findProjectRoot uses go list to find the module root directory.
func findProjectRoot() (string, error) {
	cmd := exec.Command("go", "list", "-m", "-f", "{{.Dir}}")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
