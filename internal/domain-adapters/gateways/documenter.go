package gateways

import (
	"context"
	"fmt"

	"rcheck/internal/domain/entities"
)

// Documenter regenerates package documentation before a check by delegating
// to roxygen2 through the R scripting front end.
type Documenter struct {
	runner *CommandRunner
}

// NewDocumenter creates a new documenter
func NewDocumenter(runner *CommandRunner) *Documenter {
	return &Documenter{runner: runner}
}

// Document runs the documentation pass over the package source tree. A
// failing pass aborts the pipeline: checking stale documentation would
// produce misleading findings.
func (d *Documenter) Document(ctx context.Context, pkg *entities.PackageRef, stream bool) error {
	_, err := d.runner.Run(ctx, entities.Invocation{
		Path:   RscriptBinary(),
		Args:   []string{"--vanilla", "-e", `roxygen2::roxygenise(".")`},
		Dir:    pkg.Path,
		Stream: stream,
		Policy: entities.PolicyFatal,
	})
	if err != nil {
		return fmt.Errorf("documentation pass failed for %s: %w", pkg.Name, err)
	}
	return nil
}
