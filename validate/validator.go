// Package validate invokes an external UCO schema validator (such as
// case_validate) against written output documents. Validation failures are
// reported as results, never as errors, and never undo a write.
package validate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultCommand is the validator binary looked up on PATH when the
// configuration names none.
const DefaultCommand = "case_validate"

// Result is the outcome of validating one output document.
type Result struct {
	// Path is the validated document path.
	Path string
	// Passed reports whether the validator exited zero.
	Passed bool
	// Output is the validator's combined stdout and stderr diagnostics.
	Output string
	// Duration is how long validation took.
	Duration time.Duration
}

// Validator runs an external validation command against output paths.
type Validator struct {
	command string
	args    []string
	logger  *slog.Logger
}

// New creates a validator for the given command and fixed leading
// arguments. The document path is appended per call.
func New(command string, args []string, logger *slog.Logger) *Validator {
	if command == "" {
		command = DefaultCommand
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{command: command, args: args, logger: logger}
}

// Validate runs the validator against one document path. A non-zero exit
// yields Passed=false with diagnostics; an error is returned only when the
// command could not be run at all.
func (v *Validator) Validate(ctx context.Context, path string) (*Result, error) {
	args := append(append([]string{}, v.args...), path)
	cmd := exec.CommandContext(ctx, v.command, args...)

	start := time.Now()
	out, err := cmd.CombinedOutput()
	elapsed := time.Since(start)

	result := &Result{
		Path:     path,
		Output:   strings.TrimSpace(string(out)),
		Duration: elapsed,
	}

	if err == nil {
		result.Passed = true
		v.logger.Info("Validation passed", "path", path, "duration", elapsed)
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		v.logger.Warn("Validation failed",
			"path", path,
			"exit_code", exitErr.ExitCode(),
			"output", result.Output)
		return result, nil
	}

	return nil, fmt.Errorf("run validator %s: %w", v.command, err)
}
