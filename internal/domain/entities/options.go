package entities

// BuildOptions selects the shape of the artifact-producing invocation.
type BuildOptions struct {
	// Binary switches from a source tarball to a platform binary build.
	Binary bool
	// IncludeVignettes keeps vignette building enabled in source mode.
	IncludeVignettes bool
	// IncludeManual keeps PDF manual generation enabled in source mode.
	// Downgraded silently when no PDF typesetter is present on the host.
	IncludeManual bool
	// ExtraArgs are appended verbatim to the tool invocation, in order.
	ExtraArgs []string
}

// CheckOptions tunes the validation invocation.
type CheckOptions struct {
	// CranMode adds the CRAN-compatibility flag to the check command.
	CranMode bool
	// CheckVersion enables the incoming-CRAN version checks.
	CheckVersion bool
	// ForceSuggests requires all suggested dependencies to be present.
	ForceSuggests bool
	// RunDontTest enables tests that are normally skipped.
	RunDontTest bool
	// ExtraArgs are appended verbatim to the tool invocation, in order.
	ExtraArgs []string
	// WorkDir is where the check output directory is written.
	WorkDir string
}
