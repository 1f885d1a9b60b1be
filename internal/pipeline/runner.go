package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultFormatter is the formatter binary invoked when none is configured.
const DefaultFormatter = "clang-format"

// DefaultStyle is the default style argument. "file" tells clang-format to
// discover a .clang-format style file relative to the working directory.
const DefaultStyle = "file"

// Runner is a reusable client for invoking the external formatter.
// It follows the http.Client pattern: create once, use many times.
type Runner struct {
	// FormatterPath is the path to the formatter binary.
	// Defaults to "clang-format" (found in PATH).
	FormatterPath string

	// Style is the style argument passed as -style=<value>.
	// Empty means no style argument is passed.
	Style string

	// Masker shields directives from the formatter.
	// Defaults to a Masker for DefaultDirective if nil.
	Masker *Masker
}

// NewRunner creates a Runner with default settings: clang-format, style
// discovery from a project-local style file, and OpenMP pragma shielding.
func NewRunner() *Runner {
	return &Runner{
		FormatterPath: DefaultFormatter,
		Style:         DefaultStyle,
		Masker:        NewMasker(DefaultDirective),
	}
}

// Format runs src through the full pipeline: mask directives, feed the result
// to the external formatter on stdin, capture its stdout, unmask directives.
// Any formatter failure is returned as an error wrapping the formatter's
// stderr output; the caller is expected to treat it as fatal.
func (r *Runner) Format(ctx context.Context, src string) (string, error) {
	masker := r.Masker
	if masker == nil {
		masker = NewMasker(DefaultDirective)
	}

	formatted, err := r.run(ctx, masker.Mask(src))
	if err != nil {
		return "", err
	}

	return masker.Unmask(formatted), nil
}

// run performs the actual formatter invocation with the given stdin content.
func (r *Runner) run(ctx context.Context, input string) (string, error) {
	formatterPath := r.FormatterPath
	if formatterPath == "" {
		formatterPath = DefaultFormatter
	}

	var args []string
	if r.Style != "" {
		args = append(args, "-style="+r.Style)
	}

	cmd := exec.CommandContext(ctx, formatterPath, args...)
	cmd.Stdin = strings.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Scoped environment construction; no process-global state is mutated.
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("formatter %s failed: %w (stderr: %s)",
				formatterPath, err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("formatter %s failed: %w", formatterPath, err)
	}

	return stdout.String(), nil
}
