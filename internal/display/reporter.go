// Package display renders check results to the user.
//
// The text renderer produces the stable two-line-per-file format consumed by
// CI scripts ("<path>: OK" or "<path>: needs formatting", then a blank line);
// color is layered on only when writing to a terminal, so piped output stays
// byte-exact. A JSON renderer is available for machine consumption.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/checkfmt/internal/models"
)

// Verdict strings for the text output format.
const (
	verdictOK    = "OK"
	verdictDirty = "needs formatting"
)

// TextReporter writes one result per file in the plain text contract format.
type TextReporter struct {
	writer      io.Writer
	quiet       bool
	colorOutput bool
}

// NewTextReporter creates a TextReporter writing to w.
// When quiet is set, conforming files produce no output at all.
// Color is enabled automatically when w is a terminal.
func NewTextReporter(w io.Writer, quiet bool) *TextReporter {
	return &TextReporter{
		writer:      w,
		quiet:       quiet,
		colorOutput: isTerminal(w),
	}
}

// isTerminal reports whether w is a TTY that should receive colored output.
// Respects NO_COLOR via the color library's global detection.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Report writes the result line followed by a blank line.
func (tr *TextReporter) Report(result models.CheckResult) {
	if result.Conforms && tr.quiet {
		return
	}

	verdict := verdictDirty
	if result.Conforms {
		verdict = verdictOK
	}

	if tr.colorOutput {
		c := color.New(color.FgRed)
		if result.Conforms {
			c = color.New(color.FgGreen)
		}
		fmt.Fprintf(tr.writer, "%s: %s\n\n", result.Path, c.Sprint(verdict))
		return
	}

	fmt.Fprintf(tr.writer, "%s: %s\n\n", result.Path, verdict)
}

// Flush is a no-op for text output.
func (tr *TextReporter) Flush() error {
	return nil
}

// JSONReporter collects results and writes them as a single JSON array.
type JSONReporter struct {
	writer  io.Writer
	results []models.CheckResult
}

// NewJSONReporter creates a JSONReporter writing to w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

// Report buffers a result until Flush.
func (jr *JSONReporter) Report(result models.CheckResult) {
	jr.results = append(jr.results, result)
}

// Flush encodes all buffered results as an indented JSON array.
func (jr *JSONReporter) Flush() error {
	type jsonResult struct {
		Path     string `json:"path"`
		Conforms bool   `json:"conforms"`
	}

	payload := make([]jsonResult, 0, len(jr.results))
	for _, res := range jr.results {
		payload = append(payload, jsonResult{Path: res.Path, Conforms: res.Conforms})
	}

	encoder := json.NewEncoder(jr.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
