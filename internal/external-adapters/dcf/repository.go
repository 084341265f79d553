package dcf

import (
	"context"
	"os"
	"path/filepath"

	"rcheck/internal/domain/entities"
)

// Repository resolves PackageRefs from DESCRIPTION files on disk. It
// implements repositories.PackageRepository.
type Repository struct{}

// NewRepository creates a new DESCRIPTION-backed package repository
func NewRepository() *Repository {
	return &Repository{}
}

// Resolve loads the metadata of the package rooted at path.
func (r *Repository) Resolve(_ context.Context, path string) (*entities.PackageRef, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &entities.PackageNotFoundError{Path: path, Reason: err.Error()}
	}

	//nolint:gosec // G304: the caller names the package to resolve
	file, err := os.Open(filepath.Join(abs, "DESCRIPTION"))
	if err != nil {
		return nil, &entities.PackageNotFoundError{Path: path, Reason: "no DESCRIPTION file"}
	}
	//nolint:errcheck // Defer close
	defer file.Close()

	fields, err := Parse(file)
	if err != nil {
		return nil, &entities.PackageNotFoundError{Path: path, Reason: err.Error()}
	}

	name := fields["Package"]
	version := fields["Version"]
	if name == "" || version == "" {
		return nil, &entities.PackageNotFoundError{
			Path:   path,
			Reason: "DESCRIPTION lacks a Package or Version field",
		}
	}

	return &entities.PackageRef{
		Name:       name,
		Version:    version,
		Path:       abs,
		Maintainer: fields["Maintainer"],
	}, nil
}
