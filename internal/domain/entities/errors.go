package entities

import (
	"fmt"
	"strings"
)

// PackageNotFoundError indicates that package metadata could not be resolved
// from the given path.
type PackageNotFoundError struct {
	Path   string
	Reason string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("package not found at %s: %s", e.Path, e.Reason)
}

// ExternalToolError indicates that a fatal-policy subprocess exited non-zero.
type ExternalToolError struct {
	Command  []string
	ExitCode int
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", strings.Join(e.Command, " "), e.ExitCode)
}

// MissingReportError indicates that the check tool completed without writing
// its log artifact, which it is assumed to always do. Absence means the tool
// crashed before the log was written.
type MissingReportError struct {
	Path string
}

func (e *MissingReportError) Error() string {
	return fmt.Sprintf("check log not found at %s: the check tool appears to have crashed before writing it", e.Path)
}

// ProbeError indicates that a host-capability probe could not complete.
// Probe errors are collapsed to a boolean at the call site and never
// propagate out of the pipeline.
type ProbeError struct {
	Capability string
	Err        error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe for %s failed: %v", e.Capability, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}
