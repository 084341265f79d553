package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"rcheck/internal/domain/entities"
	"rcheck/internal/domain/interfaces"
)

// EnvComposer interface for producing the check environment overlay
type EnvComposer interface {
	ComposeCheckEnv(cranMode, checkVersion, forceSuggests bool) entities.EnvOverlay
}

// LogParser interface for classifying check log text
type LogParser interface {
	ParseCheckLog(text string) *entities.CheckReport
}

// CheckOrchestrator composes one validation invocation from a built artifact
// path, runs it under tolerant policy, and hands the resulting log to the
// parser. A check that reports errors is normal output, not a pipeline fault.
type CheckOrchestrator struct {
	runner  Runner
	env     EnvComposer
	parser  LogParser
	baseEnv entities.EnvOverlay
	tool    string
	stream  bool
	log     interfaces.Logger
}

// CheckOrchestratorConfig holds configuration for the orchestrator
type CheckOrchestratorConfig struct {
	// Tool is the path of the R launcher. Defaults to "R".
	Tool string
	// BaseEnv is merged under the composed overlay, so composed values
	// win. Used for .Renviron-style files.
	BaseEnv entities.EnvOverlay
	// Stream forwards the tool output to the host stdout/stderr.
	Stream bool
}

// NewCheckOrchestrator creates a new check orchestrator
func NewCheckOrchestrator(runner Runner, env EnvComposer, parser LogParser, log interfaces.Logger, config CheckOrchestratorConfig) *CheckOrchestrator {
	if log == nil {
		log = &interfaces.NoOpLogger{}
	}
	tool := config.Tool
	if tool == "" {
		tool = "R"
	}
	return &CheckOrchestrator{
		runner:  runner,
		env:     env,
		parser:  parser,
		baseEnv: config.BaseEnv,
		tool:    tool,
		stream:  config.Stream,
		log:     log,
	}
}

// CheckBuilt validates a built artifact and returns the classified report.
// The report is returned even when the check subprocess exits non-zero, as
// long as the log artifact exists; a missing log is a fatal
// entities.MissingReportError.
func (o *CheckOrchestrator) CheckBuilt(ctx context.Context, artifactPath string, opts entities.CheckOptions) (*entities.CheckReport, error) {
	absArtifact, err := filepath.Abs(artifactPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve artifact %s: %w", artifactPath, err)
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}
	workDir, err = filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve check directory %s: %w", opts.WorkDir, err)
	}
	if err := os.MkdirAll(workDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create check directory %s: %w", workDir, err)
	}

	args := []string{"CMD", "check", "--timings"}
	if opts.CranMode {
		args = append(args, "--as-cran")
	}
	if opts.RunDontTest {
		args = append(args, "--run-donttest")
	}
	args = append(args, opts.ExtraArgs...)
	args = append(args, absArtifact)

	env := o.baseEnv.Merge(o.env.ComposeCheckEnv(opts.CranMode, opts.CheckVersion, opts.ForceSuggests))

	result, err := o.runner.Run(ctx, entities.Invocation{
		Path:   o.tool,
		Args:   args,
		Dir:    workDir,
		Env:    env,
		Stream: o.stream,
		Policy: entities.PolicyTolerant,
	})
	if err != nil {
		return nil, fmt.Errorf("check of %s failed to run: %w", artifactPath, err)
	}
	if !result.Success {
		// Expected for packages with findings: the log has the details.
		o.log.Debug("check exited non-zero", interfaces.F("exit_code", result.ExitCode))
	}

	logPath := filepath.Join(workDir, packageNameFromArtifact(absArtifact)+".Rcheck", "00check.log")
	data, err := os.ReadFile(logPath) //nolint:gosec // G304: deterministic path under the check directory
	if err != nil {
		// Only absence means the tool crashed before writing the log; an
		// existing but unreadable log is a plain read failure.
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &entities.MissingReportError{Path: logPath}
		}
		return nil, fmt.Errorf("failed to read check log %s: %w", logPath, err)
	}

	return o.parser.ParseCheckLog(string(data)), nil
}

// packageNameFromArtifact strips the version and build suffix from an
// artifact file name: stringfix_1.2.3.tar.gz → stringfix.
func packageNameFromArtifact(artifactPath string) string {
	base := filepath.Base(artifactPath)
	if idx := strings.Index(base, "_"); idx >= 0 {
		return base[:idx]
	}
	if idx := strings.Index(base, "."); idx >= 0 {
		return base[:idx]
	}
	return base
}
