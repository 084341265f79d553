// Package entities defines core domain models and data structures.
package entities

// PackageRef identifies an R package source tree. It is resolved once from
// the package DESCRIPTION at the start of a run and stays immutable for the
// duration of that run.
type PackageRef struct {
	Name       string
	Version    string
	Path       string
	Maintainer string
}
