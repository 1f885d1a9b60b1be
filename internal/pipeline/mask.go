// Package pipeline implements the formatting pipeline used to compute the
// canonical formatted form of a source file: mask compiler directives the
// formatter cannot parse, run the external formatter, unmask the directives.
package pipeline

import (
	"regexp"
	"strings"
)

// DefaultDirective is the directive token shielded from the formatter.
// clang-format does not understand OpenMP pragmas and would reflow them.
const DefaultDirective = "#pragma omp"

// Masker performs the directive substitution on both sides of the formatter:
// Mask comments the directive out so the formatter treats it as an ordinary
// line comment, Unmask restores the active form afterwards.
type Masker struct {
	// Directive is the token to shield, e.g. "#pragma omp".
	Directive string

	// Masked is the commented-out replacement. Defaults to "//" + Directive.
	Masked string

	unmaskOnce *regexp.Regexp
}

// NewMasker creates a Masker for the given directive token.
// An empty directive defaults to DefaultDirective.
func NewMasker(directive string) *Masker {
	if directive == "" {
		directive = DefaultDirective
	}
	return &Masker{
		Directive: directive,
		Masked:    "//" + directive,
	}
}

// Mask replaces every occurrence of the directive with its commented form.
func (m *Masker) Mask(src string) string {
	return strings.ReplaceAll(src, m.Directive, m.masked())
}

// Unmask restores masked directives to their active form. The formatter is
// free to insert spaces between the comment marker and the directive, so any
// run of spaces after "//" is absorbed.
func (m *Masker) Unmask(src string) string {
	return m.unmaskPattern().ReplaceAllString(src, m.Directive)
}

// masked returns the commented-out form, deriving it from the directive when
// the Masked field was left empty.
func (m *Masker) masked() string {
	if m.Masked != "" {
		return m.Masked
	}
	return "//" + m.Directive
}

// unmaskPattern builds (and caches) the pattern matching the masked form with
// optional spaces after the comment marker.
func (m *Masker) unmaskPattern() *regexp.Regexp {
	if m.unmaskOnce == nil {
		masked := m.masked()
		var pattern string
		if rest, ok := strings.CutPrefix(masked, "//"); ok {
			pattern = "// *" + regexp.QuoteMeta(strings.TrimLeft(rest, " "))
		} else {
			pattern = regexp.QuoteMeta(masked)
		}
		m.unmaskOnce = regexp.MustCompile(pattern)
	}
	return m.unmaskOnce
}
