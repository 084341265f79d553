// Package orchestrators coordinates the build, check, and submission
// workflows across the toolchain gateways.
package orchestrators

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"rcheck/internal/domain/entities"
	"rcheck/internal/domain/interfaces"
)

// Runner interface for executing external toolchain commands
type Runner interface {
	Run(ctx context.Context, inv entities.Invocation) (*entities.RunResult, error)
}

// NamingStrategy computes the artifact path the external tool is expected to
// produce. The default encodes the tool's naming convention instead of
// scanning the destination directory; swap it in the config to change
// discovery without touching callers.
type NamingStrategy func(pkg *entities.PackageRef, destDir string, binary bool) string

// BuildOrchestrator composes one artifact-producing invocation from package
// metadata and options, and delegates it to the runner under fatal policy.
type BuildOrchestrator struct {
	runner   Runner
	pdfProbe func() (bool, error)
	naming   NamingStrategy
	tool     string
	stream   bool
	log      interfaces.Logger
}

// BuildOrchestratorConfig holds configuration for the orchestrator
type BuildOrchestratorConfig struct {
	// Tool is the path of the R launcher. Defaults to "R".
	Tool string
	// PDFProbe reports whether a PDF typesetter is present. Defaults to a
	// probe that always says no, which disables manual generation.
	PDFProbe func() (bool, error)
	// Naming overrides the convention-based artifact naming.
	Naming NamingStrategy
	// Stream forwards the tool output to the host stdout/stderr.
	Stream bool
}

// NewBuildOrchestrator creates a new build orchestrator
func NewBuildOrchestrator(runner Runner, log interfaces.Logger, config BuildOrchestratorConfig) *BuildOrchestrator {
	if log == nil {
		log = &interfaces.NoOpLogger{}
	}
	tool := config.Tool
	if tool == "" {
		tool = "R"
	}
	probe := config.PDFProbe
	if probe == nil {
		probe = func() (bool, error) { return false, nil }
	}
	naming := config.Naming
	if naming == nil {
		naming = ConventionNaming
	}
	return &BuildOrchestrator{
		runner:   runner,
		pdfProbe: probe,
		naming:   naming,
		tool:     tool,
		stream:   config.Stream,
		log:      log,
	}
}

// Build produces one distributable artifact for pkg in destDir and returns
// its path. A build failure aborts the pipeline: there is nothing useful to
// check afterward.
func (o *BuildOrchestrator) Build(ctx context.Context, pkg *entities.PackageRef, destDir string, opts entities.BuildOptions) (string, error) {
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve destination %s: %w", destDir, err)
	}
	if err := os.MkdirAll(absDest, 0750); err != nil {
		return "", fmt.Errorf("failed to create destination %s: %w", absDest, err)
	}

	inv := entities.Invocation{
		Path: o.tool,
		Args: o.composeArgs(pkg, opts),
		// The external tool writes the artifact to its working directory.
		Dir:         absDest,
		Stream:      o.stream,
		IsolatedLib: opts.Binary,
		Policy:      entities.PolicyFatal,
	}

	if _, err := o.runner.Run(ctx, inv); err != nil {
		return "", fmt.Errorf("build of %s failed: %w", pkg.Name, err)
	}

	return o.naming(pkg, absDest, opts.Binary), nil
}

func (o *BuildOrchestrator) composeArgs(pkg *entities.PackageRef, opts entities.BuildOptions) []string {
	var args []string
	if opts.Binary {
		args = append(args, "CMD", "INSTALL", "--build")
	} else {
		args = append(args, "CMD", "build", "--no-resave-data")
		if !o.manualWanted(opts) {
			args = append(args, "--no-manual")
		}
		if !opts.IncludeVignettes {
			args = append(args, "--no-build-vignettes")
		}
	}
	args = append(args, opts.ExtraArgs...)
	return append(args, pkg.Path)
}

// manualWanted downgrades a manual request silently when no PDF typesetter
// is present, warning instead of failing.
func (o *BuildOrchestrator) manualWanted(opts entities.BuildOptions) bool {
	if !opts.IncludeManual {
		return false
	}
	ok, err := o.pdfProbe()
	if err != nil {
		o.log.Warn("PDF typesetter probe failed, building without manual",
			interfaces.F("error", err))
		return false
	}
	if !ok {
		o.log.Warn("no PDF typesetter found, building without manual")
		return false
	}
	return true
}

// ConventionNaming is the default artifact naming strategy: the external
// tool names artifacts name_version plus a platform-dependent extension, and
// this computes the same path rather than reading it back from the tool.
func ConventionNaming(pkg *entities.PackageRef, destDir string, binary bool) string {
	return filepath.Join(destDir, pkg.Name+"_"+pkg.Version+artifactExt(binary))
}

func artifactExt(binary bool) string {
	if !binary {
		return ".tar.gz"
	}
	switch runtime.GOOS {
	case "windows":
		return ".zip"
	case "darwin":
		return ".tgz"
	default:
		return fmt.Sprintf("_R_%s-%s.tar.gz", runtime.GOOS, runtime.GOARCH)
	}
}
