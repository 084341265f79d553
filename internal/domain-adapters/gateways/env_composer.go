package gateways

import (
	"fmt"

	"github.com/joho/godotenv"

	"rcheck/internal/domain/entities"
	"rcheck/internal/domain/interfaces"
)

// EnvComposer builds the environment overlay handed to check invocations.
type EnvComposer struct {
	spellProbe func() (bool, error)
	log        interfaces.Logger
}

// NewEnvComposer creates a new environment composer
func NewEnvComposer(log interfaces.Logger) *EnvComposer {
	if log == nil {
		log = &interfaces.NoOpLogger{}
	}
	return &EnvComposer{
		spellProbe: HasSpellChecker,
		log:        log,
	}
}

// ComposeCheckEnv produces the variables that tune the check tool. The
// baseline set is independent of the inputs; the spell-check variable is set
// only when a spell checker is actually present on the host, and a failed
// probe omits it without propagating.
func (c *EnvComposer) ComposeCheckEnv(cranMode, checkVersion, forceSuggests bool) entities.EnvOverlay {
	overlay := entities.EnvOverlay{
		// Reproducibility baseline: no browser, no PDF viewer, no byte
		// compilation surprises, headless rgl.
		"NOT_CRAN":                       "true",
		"R_BROWSER":                      "false",
		"R_PDFVIEWER":                    "false",
		"RGL_USE_NULL":                   "true",
		"R_COMPILE_AND_INSTALL_PACKAGES": "never",

		"_R_CHECK_CRAN_INCOMING_":  rBool(cranMode && checkVersion),
		"_R_CHECK_FORCE_SUGGESTS_": rBool(forceSuggests),
	}

	ok, err := c.spellProbe()
	switch {
	case err != nil:
		c.log.Debug("spell checker probe failed, leaving spell check off",
			interfaces.F("error", err))
	case ok:
		overlay["_R_CHECK_USE_ASPELL_"] = "TRUE"
	}

	return overlay
}

// LoadEnvFile reads a .Renviron-style KEY=VALUE file into an overlay. The
// caller merges composed variables on top, so composed values win.
func LoadEnvFile(path string) (entities.EnvOverlay, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file %s: %w", path, err)
	}

	overlay := make(entities.EnvOverlay, len(values))
	for key, value := range values {
		overlay[key] = value
	}
	return overlay, nil
}

// rBool stringifies a boolean the way the R toolchain expects.
func rBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
