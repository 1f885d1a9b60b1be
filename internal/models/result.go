// Package models defines the value types shared across checkfmt packages.
package models

// CheckResult represents the outcome of checking a single file
type CheckResult struct {
	Path     string // Path exactly as it appeared in the input
	Conforms bool   // True when the file matches the formatter's output byte-for-byte
}

// RunSummary represents the aggregate outcome of a check run
type RunSummary struct {
	Checked         int           // Total number of files checked
	NeedsFormatting int           // Number of files that did not conform
	Results         []CheckResult // Per-file results in input order
}

// Add records a single file result into the summary.
func (s *RunSummary) Add(result CheckResult) {
	s.Checked++
	if !result.Conforms {
		s.NeedsFormatting++
	}
	s.Results = append(s.Results, result)
}

// ExitCode returns the process exit code for the run: the count of files
// that need formatting. Zero means every file conforms.
func (s *RunSummary) ExitCode() int {
	return s.NeedsFormatting
}
