package harness

import (
	"fmt"
	"strings"
	"time"
)

// ConfigurationError reports a missing or unusable pre-flight setting.
// No test runs once one is returned.
type ConfigurationError struct {
	Err     error
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %v", e.Setting, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// FixtureSetupError reports that a shared fixture could not be created
type FixtureSetupError struct {
	Err      error
	Resource string
}

func (e *FixtureSetupError) Error() string {
	return fmt.Sprintf("failed to set up fixture %s: %v", e.Resource, e.Err)
}

func (e *FixtureSetupError) Unwrap() error { return e.Err }

// ProcessError is returned when the CLI exits non-zero.
// Error includes stderr so service messages such as "Not found" can be matched.
type ProcessError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Stdout   string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("command %q exited with code %d: %s",
		strings.Join(e.Args, " "), e.ExitCode, strings.TrimSpace(e.Stderr))
}

// ProcessTimeout is returned when the CLI does not finish within the runner timeout
type ProcessTimeout struct {
	Args    []string
	Output  string
	Timeout time.Duration
}

func (e *ProcessTimeout) Error() string {
	return fmt.Sprintf("command %q timed out after %v", strings.Join(e.Args, " "), e.Timeout)
}

// AssertionFailure lists the expected substrings missing from an output
type AssertionFailure struct {
	Missing []string
	Output  string
}

func (e *AssertionFailure) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", m)
	}
	return fmt.Sprintf("output is missing %s\noutput:\n%s", strings.Join(quoted, ", "), e.Output)
}

// CleanupError records a failed teardown deletion. It is logged, never fatal.
type CleanupError struct {
	Err  error
	Kind string
	Path string
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("failed to delete %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *CleanupError) Unwrap() error { return e.Err }
