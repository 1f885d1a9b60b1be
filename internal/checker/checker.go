// Package checker implements the sequential per-file conformance check:
// read a file, run it through the formatting pipeline, compare byte-for-byte,
// report, and count non-conforming files.
package checker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/harrison/checkfmt/internal/models"
	"github.com/harrison/checkfmt/internal/pipeline"
)

// Reporter receives per-file results as they are produced.
// Implementations must preserve the order in which results arrive.
type Reporter interface {
	// Report emits a single file result.
	Report(result models.CheckResult)

	// Flush finalizes the output after the last result (e.g. closes a JSON
	// array). Called once per run.
	Flush() error
}

// Logger receives diagnostic messages during a run. May be nil for silence.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogError(message string)
}

// Checker runs conformance checks over a list of file paths.
// Files are checked strictly sequentially, in input order.
type Checker struct {
	// Runner computes the formatted form of a file's content.
	// Defaults to pipeline.NewRunner() if nil.
	Runner *pipeline.Runner

	// Reporter receives per-file results (required).
	Reporter Reporter

	// Logger receives diagnostics. May be nil.
	Logger Logger

	// SkipBlankLines controls the policy for empty or whitespace-only input
	// lines: when true they are silently skipped, when false they are treated
	// as paths (and fail the run, since no file can be opened).
	SkipBlankLines bool
}

// ReadPaths reads newline-separated file paths from r until end of stream.
// Each line is stripped of surrounding whitespace. Blank lines are dropped
// when skipBlank is set, otherwise preserved as (empty) paths.
func ReadPaths(r io.Reader, skipBlank bool) ([]string, error) {
	var paths []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		path := strings.TrimSpace(scanner.Text())
		if path == "" && skipBlank {
			continue
		}
		paths = append(paths, path)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read path list: %w", err)
	}

	return paths, nil
}

// CheckReader reads paths from r (one per line) and checks each in order.
func (c *Checker) CheckReader(ctx context.Context, r io.Reader) (*models.RunSummary, error) {
	paths, err := ReadPaths(r, c.SkipBlankLines)
	if err != nil {
		return nil, err
	}
	return c.CheckPaths(ctx, paths)
}

// CheckPaths checks each path in order and returns the aggregate summary.
// The first unreadable file or pipeline failure aborts the run: no results
// are reported for subsequent paths and the partial summary is discarded.
func (c *Checker) CheckPaths(ctx context.Context, paths []string) (*models.RunSummary, error) {
	runner := c.Runner
	if runner == nil {
		runner = pipeline.NewRunner()
	}

	summary := &models.RunSummary{}

	for _, path := range paths {
		result, err := c.checkFile(ctx, runner, path)
		if err != nil {
			if c.Logger != nil {
				c.Logger.LogError(err.Error())
			}
			return nil, err
		}

		summary.Add(result)
		c.Reporter.Report(result)
	}

	if c.Logger != nil {
		c.Logger.LogInfo(fmt.Sprintf("checked %d file(s), %d need formatting",
			summary.Checked, summary.NeedsFormatting))
	}

	return summary, nil
}

// checkFile checks a single file against the pipeline's output.
func (c *Checker) checkFile(ctx context.Context, runner *pipeline.Runner, path string) (models.CheckResult, error) {
	if c.Logger != nil {
		c.Logger.LogDebug(fmt.Sprintf("checking %s", path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return models.CheckResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	formatted, err := runner.Format(ctx, string(content))
	if err != nil {
		return models.CheckResult{}, fmt.Errorf("failed to format %s: %w", path, err)
	}

	return models.CheckResult{
		Path:     path,
		Conforms: formatted == string(content),
	}, nil
}
