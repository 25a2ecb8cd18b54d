// Package runner executes external commands (git, npm, install
// scripts) on behalf of the installers, capturing output and
// surfacing failures as structured errors.
package runner

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single external command. Package installs
// over the network can be slow, so this is generous.
const DefaultTimeout = 5 * time.Minute

// Result represents the result of a command execution
type Result struct {
	Success bool
	Stdout  string
	Stderr  string
	Error   error
}

// Runner executes external commands
type Runner struct {
	logger  zerolog.Logger
	timeout time.Duration
}

// New creates a new command runner
func New() *Runner {
	return &Runner{
		logger:  logging.GetLogger("runner"),
		timeout: DefaultTimeout,
	}
}

// Run executes a command with arguments and returns a detailed result.
// A non-zero exit is reported through Result.Error as an
// EXTERNAL_PROCESS_FAILED error; it is never retried.
func (r *Runner) Run(name string, args ...string) Result {
	return r.RunIn("", name, args...)
}

// RunIn executes a command in the given working directory
func (r *Runner) RunIn(dir, name string, args ...string) Result {
	r.logger.Debug().
		Str("command", name).
		Strs("args", args).
		Str("workingDir", dir).
		Msg("Executing command")

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := Result{
		Success: err == nil,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}

	if stdout.Len() > 0 {
		r.logger.Debug().Str("output", stdout.String()).Msg("Command stdout")
	}
	if stderr.Len() > 0 {
		r.logger.Debug().Str("output", stderr.String()).Msg("Command stderr")
	}

	if err != nil {
		r.logger.Error().
			Err(err).
			Str("command", name).
			Strs("args", args).
			Str("stderr", stderr.String()).
			Msg("Command execution failed")

		result.Error = errors.Wrapf(err, errors.ErrExternalProcess,
			"failed to execute command: %s", name).
			WithDetail("stderr", stderr.String())
	}

	return result
}

// RunShell executes a command line through sh -c. Used for install
// scripts that are documented as shell one-liners.
func (r *Runner) RunShell(command string) Result {
	return r.Run("sh", "-c", command)
}
