package harness

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// CheckContains returns an *AssertionFailure naming every expected substring
// missing from output, or nil when all are present
func CheckContains(output string, expected ...string) error {
	var missing []string
	for _, e := range expected {
		if !strings.Contains(output, e) {
			missing = append(missing, e)
		}
	}
	if len(missing) > 0 {
		return &AssertionFailure{Missing: missing, Output: output}
	}
	return nil
}

// CheckField checks for a "label: value" marker in output
func CheckField(output, label, value string) error {
	return CheckContains(output, label+": "+value)
}

// AssertSuccess verifies the command succeeded with exit code 0.
func AssertSuccess(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.Equal(tb, 0, result.ExitCode,
		"Expected success (exit 0), got %d.\nStdout: %s\nStderr: %s",
		result.ExitCode, result.Stdout, result.Stderr)
}

// AssertFailure verifies the command failed with non-zero exit code.
func AssertFailure(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.NotEqual(tb, 0, result.ExitCode,
		"Expected failure (non-zero exit), got success.\nStdout: %s",
		result.Stdout)
}

// AssertExitCode verifies the command exited with a specific code.
func AssertExitCode(tb testing.TB, result CommandResult, expected int) {
	tb.Helper()
	assert.Equal(tb, expected, result.ExitCode,
		"Expected exit code %d, got %d.\nStdout: %s\nStderr: %s",
		expected, result.ExitCode, result.Stdout, result.Stderr)
}

// AssertOutputContains verifies the combined output contains every expected string.
func AssertOutputContains(tb testing.TB, output string, expected ...string) bool {
	tb.Helper()
	if err := CheckContains(output, expected...); err != nil {
		return assert.Fail(tb, err.Error())
	}
	return true
}

// AssertField verifies output carries a "label: value" marker.
func AssertField(tb testing.TB, output, label, value string) bool {
	tb.Helper()
	if err := CheckField(output, label, value); err != nil {
		return assert.Fail(tb, err.Error())
	}
	return true
}

// AssertStdoutContains verifies stdout contains the expected string.
func AssertStdoutContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stdout, expected,
		"Expected stdout to contain %q.\nActual stdout: %s",
		expected, result.Stdout)
}

// AssertStderrContains verifies stderr contains the expected string.
func AssertStderrContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stderr, expected,
		"Expected stderr to contain %q.\nActual stderr: %s",
		expected, result.Stderr)
}

// AssertErrorContains verifies err is non-nil and its message contains expected.
func AssertErrorContains(tb testing.TB, err error, expected string) bool {
	tb.Helper()
	if !assert.Error(tb, err, "Expected an error containing %q", expected) {
		return false
	}
	return assert.Contains(tb, err.Error(), expected)
}

// AssertProcessError verifies err is a *ProcessError and returns it.
func AssertProcessError(tb testing.TB, err error) *ProcessError {
	tb.Helper()
	var processErr *ProcessError
	if !assert.True(tb, errors.As(err, &processErr), "Expected *ProcessError, got %v", err) {
		return nil
	}
	return processErr
}
