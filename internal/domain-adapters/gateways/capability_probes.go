package gateways

import (
	"errors"
	"os/exec"

	"rcheck/internal/domain/entities"
)

// HasSpellChecker probes the host for an aspell executable. Used to decide
// whether the check environment enables spell checking.
func HasSpellChecker() (bool, error) {
	return lookupTool("aspell")
}

// HasPDFTypesetter probes the host for a pdflatex executable. Used to decide
// whether a source build can generate the PDF manual.
func HasPDFTypesetter() (bool, error) {
	return lookupTool("pdflatex")
}

// lookupTool reports whether an executable is on the PATH. A plain "not
// found" is a clean false; anything else is a typed probe failure that the
// call site collapses to a boolean.
func lookupTool(name string) (bool, error) {
	if _, err := exec.LookPath(name); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return false, nil
		}
		return false, &entities.ProbeError{Capability: name, Err: err}
	}
	return true, nil
}
