// Package gateways adapts the domain to the host: external tool execution,
// environment composition, and capability probing.
package gateways

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"rcheck/internal/domain/entities"
	"rcheck/internal/domain/interfaces"
)

// CommandRunner executes external toolchain commands as subprocesses.
type CommandRunner struct {
	log interfaces.Logger
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(log interfaces.Logger) *CommandRunner {
	if log == nil {
		log = &interfaces.NoOpLogger{}
	}
	return &CommandRunner{log: log}
}

// Run executes one command to completion. The environment overlay and, for
// isolated runs, the temporary library directory exist only for the duration
// of the call; the library directory is removed on every exit path.
func (r *CommandRunner) Run(ctx context.Context, inv entities.Invocation) (*entities.RunResult, error) {
	start := time.Now()

	overlay := entities.EnvOverlay{}.Merge(inv.Env)

	if inv.IsolatedLib {
		libDir, err := os.MkdirTemp("", "rcheck-lib-")
		if err != nil {
			return nil, fmt.Errorf("failed to create isolated library directory: %w", err)
		}
		defer os.RemoveAll(libDir)

		ambient := overlay["R_LIBS"]
		if ambient == "" {
			ambient = os.Getenv("R_LIBS")
		}
		overlay["R_LIBS"] = prependLibPath(libDir, ambient)
	}

	//nolint:gosec // G204: running the external toolchain is the whole point
	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Dir = inv.Dir

	env := os.Environ()
	for key, value := range overlay {
		env = append(env, key+"="+value)
	}
	cmd.Env = env

	if inv.Stream {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	r.log.Debug("running external tool",
		interfaces.F("command", strings.Join(inv.Command(), " ")),
		interfaces.F("dir", inv.Dir))

	err := cmd.Run()
	result := &entities.RunResult{Duration: time.Since(start)}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to run %s: %w", inv.Path, err)
		}
		result.ExitCode = exitErr.ExitCode()
		if inv.Policy == entities.PolicyTolerant {
			return result, nil
		}
		return result, &entities.ExternalToolError{
			Command:  inv.Command(),
			ExitCode: result.ExitCode,
		}
	}

	result.Success = true
	return result, nil
}

func prependLibPath(dir, existing string) string {
	if existing == "" {
		return dir
	}
	return dir + string(os.PathListSeparator) + existing
}

// RBinary returns the path of the R launcher, honoring R_HOME when set.
func RBinary() string {
	if home := os.Getenv("R_HOME"); home != "" {
		return filepath.Join(home, "bin", "R")
	}
	return "R"
}

// RscriptBinary returns the path of the Rscript launcher, honoring R_HOME.
func RscriptBinary() string {
	if home := os.Getenv("R_HOME"); home != "" {
		return filepath.Join(home, "bin", "Rscript")
	}
	return "Rscript"
}
