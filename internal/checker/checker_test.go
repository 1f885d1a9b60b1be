package checker

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/harrison/checkfmt/internal/models"
	"github.com/harrison/checkfmt/internal/pipeline"
)

// recordingReporter captures results in arrival order for assertions.
type recordingReporter struct {
	results []models.CheckResult
	flushed bool
}

func (rr *recordingReporter) Report(result models.CheckResult) {
	rr.results = append(rr.results, result)
}

func (rr *recordingReporter) Flush() error {
	rr.flushed = true
	return nil
}

// writeStubFormatter writes an executable shell script standing in for the
// external formatter and returns its path.
func writeStubFormatter(t *testing.T, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub formatter scripts require a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "stub-formatter")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write stub formatter: %v", err)
	}
	return path
}

// writeFile writes a fixture source file and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

// newTestChecker builds a Checker around an identity stub formatter.
func newTestChecker(t *testing.T, reporter Reporter) *Checker {
	t.Helper()

	return &Checker{
		Runner: &pipeline.Runner{
			FormatterPath: writeStubFormatter(t, "#!/bin/sh\ncat\n"),
			Masker:        pipeline.NewMasker("#pragma omp"),
		},
		Reporter:       reporter,
		SkipBlankLines: true,
	}
}

// TestCheckPathsAllConforming verifies conforming files report OK and
// contribute nothing to the exit code
func TestCheckPathsAllConforming(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.cpp", "int main() { return 0; }\n")
	b := writeFile(t, dir, "b.hpp", "#pragma omp parallel\nvoid f();\n")

	reporter := &recordingReporter{}
	chk := newTestChecker(t, reporter)

	summary, err := chk.CheckPaths(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("CheckPaths() error = %v", err)
	}

	if summary.Checked != 2 {
		t.Errorf("Checked = %d, want 2", summary.Checked)
	}
	if summary.NeedsFormatting != 0 {
		t.Errorf("NeedsFormatting = %d, want 0", summary.NeedsFormatting)
	}
	if summary.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", summary.ExitCode())
	}
	for _, res := range reporter.results {
		if !res.Conforms {
			t.Errorf("result %s: Conforms = false, want true", res.Path)
		}
	}
}

// TestCheckPathsCountsNonConforming verifies the exit code equals the exact
// count of non-conforming files
func TestCheckPathsCountsNonConforming(t *testing.T) {
	dir := t.TempDir()
	// The stub squeezes runs of spaces on code lines, so double spaces mean
	// "needs formatting".
	squeeze := "#!/bin/sh\n" +
		`awk '{ if ($0 ~ /^\/\//) { print } else { gsub(/  +/, " "); print } }'` + "\n"

	clean := writeFile(t, dir, "clean.cpp", "int x;\n")
	dirty1 := writeFile(t, dir, "dirty1.cpp", "int  x;\n")
	dirty2 := writeFile(t, dir, "dirty2.cpp", "void  f();\n")

	reporter := &recordingReporter{}
	chk := &Checker{
		Runner: &pipeline.Runner{
			FormatterPath: writeStubFormatter(t, squeeze),
			Masker:        pipeline.NewMasker("#pragma omp"),
		},
		Reporter:       reporter,
		SkipBlankLines: true,
	}

	summary, err := chk.CheckPaths(context.Background(), []string{clean, dirty1, dirty2})
	if err != nil {
		t.Fatalf("CheckPaths() error = %v", err)
	}

	if summary.NeedsFormatting != 2 {
		t.Errorf("NeedsFormatting = %d, want 2", summary.NeedsFormatting)
	}
	if summary.ExitCode() != 2 {
		t.Errorf("ExitCode() = %d, want 2", summary.ExitCode())
	}
}

// TestCheckPathsPragmaShielded verifies a file whose only irregularity is
// pragma spacing still conforms: the directive is shielded from the formatter
func TestCheckPathsPragmaShielded(t *testing.T) {
	dir := t.TempDir()
	squeeze := "#!/bin/sh\n" +
		`awk '{ if ($0 ~ /^\/\//) { print } else { gsub(/  +/, " "); print } }'` + "\n"

	// Nonstandard pragma spacing the formatter would normally squeeze.
	src := writeFile(t, dir, "omp.cpp", "#pragma omp  parallel   for\nint x;\n")

	reporter := &recordingReporter{}
	chk := &Checker{
		Runner: &pipeline.Runner{
			FormatterPath: writeStubFormatter(t, squeeze),
			Masker:        pipeline.NewMasker("#pragma omp"),
		},
		Reporter:       reporter,
		SkipBlankLines: true,
	}

	summary, err := chk.CheckPaths(context.Background(), []string{src})
	if err != nil {
		t.Fatalf("CheckPaths() error = %v", err)
	}
	if summary.NeedsFormatting != 0 {
		t.Errorf("NeedsFormatting = %d, want 0 (pragma must not be reflowed)", summary.NeedsFormatting)
	}
}

// TestCheckPathsPreservesOrder verifies results arrive in input order
func TestCheckPathsPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "one.cpp", "int a;\n"),
		writeFile(t, dir, "two.cpp", "int b;\n"),
		writeFile(t, dir, "three.cpp", "int c;\n"),
	}

	reporter := &recordingReporter{}
	chk := newTestChecker(t, reporter)

	if _, err := chk.CheckPaths(context.Background(), paths); err != nil {
		t.Fatalf("CheckPaths() error = %v", err)
	}

	if len(reporter.results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(reporter.results), len(paths))
	}
	for i, res := range reporter.results {
		if res.Path != paths[i] {
			t.Errorf("result[%d].Path = %q, want %q", i, res.Path, paths[i])
		}
	}
}

// TestCheckPathsMissingFileAborts verifies an unreadable path is fatal and
// suppresses results for subsequent files
func TestCheckPathsMissingFileAborts(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.cpp", "int a;\n")
	missing := filepath.Join(dir, "missing.cpp")
	last := writeFile(t, dir, "last.cpp", "int c;\n")

	reporter := &recordingReporter{}
	chk := newTestChecker(t, reporter)

	summary, err := chk.CheckPaths(context.Background(), []string{first, missing, last})
	if err == nil {
		t.Fatal("CheckPaths() expected error for missing file")
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error %q does not name the missing path", err)
	}
	if summary != nil {
		t.Errorf("summary = %+v, want nil on fatal error", summary)
	}

	// The file before the failure was reported; the one after was not.
	if len(reporter.results) != 1 || reporter.results[0].Path != first {
		t.Errorf("results = %+v, want exactly one result for %s", reporter.results, first)
	}
}

// TestCheckReaderSkipsBlankLines verifies blank and whitespace-only input
// lines are skipped under the default policy
func TestCheckReaderSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.cpp", "int a;\n")

	reporter := &recordingReporter{}
	chk := newTestChecker(t, reporter)

	input := "\n  " + path + "  \n\n   \n"
	summary, err := chk.CheckReader(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("CheckReader() error = %v", err)
	}

	if summary.Checked != 1 {
		t.Errorf("Checked = %d, want 1", summary.Checked)
	}
	if reporter.results[0].Path != path {
		t.Errorf("Path = %q, want %q (whitespace must be stripped)", reporter.results[0].Path, path)
	}
}

// TestCheckReaderBlankLineFatalWhenNotSkipped verifies the preserve-fatal
// policy: a blank line becomes an (unopenable) empty path
func TestCheckReaderBlankLineFatalWhenNotSkipped(t *testing.T) {
	reporter := &recordingReporter{}
	chk := newTestChecker(t, reporter)
	chk.SkipBlankLines = false

	if _, err := chk.CheckReader(context.Background(), strings.NewReader("\n")); err == nil {
		t.Fatal("CheckReader() expected error for blank path when skipping is disabled")
	}
}

// TestCheckReaderEmptyInput verifies an empty input list yields no results
// and exit code 0
func TestCheckReaderEmptyInput(t *testing.T) {
	reporter := &recordingReporter{}
	chk := newTestChecker(t, reporter)

	summary, err := chk.CheckReader(context.Background(), strings.NewReader(""))
	if err != nil {
		t.Fatalf("CheckReader() error = %v", err)
	}
	if summary.Checked != 0 || summary.ExitCode() != 0 {
		t.Errorf("summary = %+v, want empty run with exit code 0", summary)
	}
	if len(reporter.results) != 0 {
		t.Errorf("results = %+v, want none", reporter.results)
	}
}
