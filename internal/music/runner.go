package music

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes an AppleScript and returns its standard output.
type Runner interface {
	Run(ctx context.Context, script string) (string, error)
}

// ExecRunner runs scripts with osascript, passing the script on stdin.
type ExecRunner struct {
	Binary  string
	Timeout time.Duration
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, script string) (string, error) {
	binary := r.Binary
	if binary == "" {
		binary = "osascript"
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, binary)
	cmd.Stdin = strings.NewReader(script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%s timed out after %s: %w", binary, r.Timeout, ctx.Err())
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &ScriptError{Binary: binary, Err: err, Stderr: strings.TrimSpace(stderr.String())}
	}
	return stdout.String(), nil
}

// ScriptError reports a script that exited unsuccessfully.
type ScriptError struct {
	Binary string
	Err    error
	Stderr string
}

func (e *ScriptError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s failed: %v", e.Binary, e.Err)
	}
	return fmt.Sprintf("%s failed: %v: %s", e.Binary, e.Err, e.Stderr)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// ErrorKind classifies script failures for reporting.
func (e *ScriptError) ErrorKind() string { return "external" }
