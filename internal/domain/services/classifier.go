// Package services implements domain logic that is independent of any
// external tooling.
package services

import (
	"strings"

	"rcheck/internal/domain/entities"
)

// Severity markers introducing a new classified block in a check log.
// Matching is case-sensitive and anchored at the start of the line.
const (
	markerError   = "* ERROR"
	markerWarning = "* WARNING"
	markerNote    = "* NOTE"
)

// Classifier parses check logs into structured reports.
type Classifier struct{}

// NewClassifier creates a new classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// ParseCheckLog splits the log text into severity-classified blocks. A block
// starts at a marker line and runs up to (not including) the next marker line
// or the end of text; informational lines that are not markers belong to the
// block in progress. A log with no marker lines yields an empty report, and a
// truncated log is parsed best-effort with the trailing partial block kept.
func (c *Classifier) ParseCheckLog(text string) *entities.CheckReport {
	report := &entities.CheckReport{}

	var bucket *[]string
	var block []string

	flush := func() {
		if bucket == nil {
			return
		}
		*bucket = append(*bucket, strings.TrimSpace(strings.Join(block, "\n")))
		bucket = nil
		block = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")

		switch {
		case strings.HasPrefix(line, markerError):
			flush()
			bucket = &report.Errors
		case strings.HasPrefix(line, markerWarning):
			flush()
			bucket = &report.Warnings
		case strings.HasPrefix(line, markerNote):
			flush()
			bucket = &report.Notes
		default:
			if bucket != nil {
				block = append(block, line)
			}
		}
	}
	flush()

	return report
}
