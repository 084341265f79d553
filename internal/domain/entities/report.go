package entities

// CheckReport is the classified content of one check log. The three slices
// partition the log's itemized sections in order of appearance; an empty
// report is a clean check.
type CheckReport struct {
	Errors   []string
	Warnings []string
	Notes    []string
}

// Clean reports whether the check produced no findings at all.
func (r *CheckReport) Clean() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0 && len(r.Notes) == 0
}
