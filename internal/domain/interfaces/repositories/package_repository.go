// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"rcheck/internal/domain/entities"
)

// PackageRepository resolves package metadata from a source tree on disk.
type PackageRepository interface {
	// Resolve reads the metadata of the package rooted at path. It fails
	// with entities.PackageNotFoundError when the path does not hold a
	// resolvable package.
	Resolve(ctx context.Context, path string) (*entities.PackageRef, error)
}
