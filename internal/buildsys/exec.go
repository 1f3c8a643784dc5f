package buildsys

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Output of one build-tool invocation.
type execResult struct {
	ExitCode int    // Exit code of the process.
	Stdout   string // Captured standard output.
	Stderr   string // Captured standard error.
}

// Runs a build tool and captures its output.
//
// A non-zero exit code is not treated as an error; the caller decides how to
// handle it. An error is returned only when the process could not run at all
// (e.g., the tool is not installed).
func runTool(ctx context.Context, name string, args ...string) (*execResult, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &execResult{
			ExitCode: exitErr.ExitCode(),
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return &execResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}, nil
}
