package extract

import (
	"context"
	"os/exec"
)

// CommandRunner executes an external command and returns its stdout.
// It exists as a seam so extractors that shell out (pdf, msg) stay testable
// without the tools installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

// NewExecRunner returns the production CommandRunner.
func NewExecRunner() CommandRunner {
	return &execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
