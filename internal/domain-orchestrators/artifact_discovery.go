package orchestrators

import (
	"path/filepath"
	"strings"

	"rcheck/internal/domain/entities"
)

// ScanNaming locates the artifact by scanning the destination directory for
// files named after the package instead of trusting the convention. Useful
// when extra tool flags change the produced filename. Falls back to
// ConventionNaming when no candidate is found.
func ScanNaming(pkg *entities.PackageRef, destDir string, binary bool) string {
	pattern := filepath.Join(destDir, pkg.Name+"_"+pkg.Version+"*")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return ConventionNaming(pkg, destDir, binary)
	}

	binaryExt := artifactExt(true)
	for _, match := range matches {
		if binary == strings.HasSuffix(match, binaryExt) {
			return match
		}
	}
	return ConventionNaming(pkg, destDir, binary)
}
