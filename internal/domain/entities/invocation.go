package entities

import "time"

// EnvOverlay is a set of environment variables merged on top of the ambient
// process environment for the duration of a single subprocess call. The
// overlay wins on key collision and never leaks to sibling calls.
type EnvOverlay map[string]string

// Merge returns a new overlay with other applied on top of e. Neither input
// is modified.
func (e EnvOverlay) Merge(other EnvOverlay) EnvOverlay {
	merged := make(EnvOverlay, len(e)+len(other))
	for k, v := range e {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// FailPolicy controls how a non-zero subprocess exit is treated.
type FailPolicy int

const (
	// PolicyFatal turns a non-zero exit into an ExternalToolError.
	PolicyFatal FailPolicy = iota
	// PolicyTolerant records the exit code in the result and returns no
	// error. Used for check runs, where a failing check still produces a
	// log worth parsing.
	PolicyTolerant
)

// Invocation describes one external tool command to run.
type Invocation struct {
	Path string
	Args []string
	// Dir is the working directory of the subprocess.
	Dir string
	// Env is merged over the ambient environment for this call only.
	Env EnvOverlay
	// Stream wires the subprocess to the host stdout/stderr. When false
	// the output is discarded; log inspection happens from artifacts on
	// disk, never from buffered output.
	Stream bool
	// IsolatedLib prepends a fresh, empty library directory to the R
	// library search path for the duration of the call.
	IsolatedLib bool
	Policy      FailPolicy
}

// Command returns the full command line, binary first.
func (i Invocation) Command() []string {
	return append([]string{i.Path}, i.Args...)
}

// RunResult reports the outcome of one external tool invocation.
type RunResult struct {
	Success  bool
	ExitCode int
	Duration time.Duration
}
