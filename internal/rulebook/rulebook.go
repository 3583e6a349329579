// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rulebook checks free-text requirement entries for the structural
// headings a rulebook requires. Headings may appear in any order, behind any
// bullet or numbering style, and in any casing. Headings that only occur
// inside prose do not count.
package rulebook

import (
	"regexp"
	"strings"

	"github.com/pdiddy/vergen/pkg/types"
)

var (
	// bulletRe matches leading runs of bullet glyphs or digits, each optionally
	// followed by periods, closing parentheses, and whitespace.
	bulletRe = regexp.MustCompile(`^(?:\s*[\x{2022}\x{25E6}\x{2023}\x{2043}\x{2981}0-9]+\.*\)*\s*)+`)

	// trailingColonRe matches every trailing colon and the spaces around them.
	trailingColonRe = regexp.MustCompile(`[\s:]+$`)

	// disallowedRe matches characters that never take part in a heading.
	disallowedRe = regexp.MustCompile(`[^a-zA-Z0-9\s\-:]`)
)

// Segmenter splits one line of text into sentences.
// Implementations must be safe for concurrent use.
type Segmenter interface {
	Segment(line string) []string
}

// SegmenterFunc adapts a plain function to Segmenter.
type SegmenterFunc func(line string) []string

// Segment calls f(line).
func (f SegmenterFunc) Segment(line string) []string { return f(line) }

// wholeLine treats every line as a single sentence.
var wholeLine = SegmenterFunc(func(line string) []string { return []string{line} })

// Validator classifies entries against one rulebook. It holds no mutable
// state; a single Validator may be shared across goroutines.
type Validator struct {
	rulebook types.Rulebook
	required map[string]bool
	seg      Segmenter
}

// New returns a Validator for rb that falls back to seg for lines that do not
// start with a heading. A nil seg treats each line as one sentence.
func New(rb types.Rulebook, seg Segmenter) *Validator {
	if seg == nil {
		seg = wholeLine
	}
	required := make(map[string]bool, len(rb.Headings))
	for _, h := range rb.Headings {
		required[h] = true
	}
	return &Validator{rulebook: rb, required: required, seg: seg}
}

// Rulebook returns the rulebook the validator checks against.
func (v *Validator) Rulebook() types.Rulebook { return v.rulebook }

// Normalize canonicalizes a candidate heading for comparison: bullets,
// numbering, trailing colons, and stray punctuation are removed and the
// result is lowercased. Disallowed characters are removed first, so a single
// pass is already a fixed point: Normalize(Normalize(x)) == Normalize(x).
func Normalize(candidate string) string {
	s := disallowedRe.ReplaceAllString(candidate, "")
	s = stripBullet(strings.TrimSpace(s))
	s = trailingColonRe.ReplaceAllString(s, "")
	return strings.TrimSpace(strings.ToLower(s))
}

func stripBullet(s string) string {
	return bulletRe.ReplaceAllString(s, "")
}

// ExtractCandidates splits text into lines and returns the strings that may
// be headings. A line whose text before the first colon is exactly a required
// heading contributes that heading alone; any other line is handed to the
// segmenter and contributes every sentence it returns.
func (v *Validator) ExtractCandidates(text string) []string {
	var candidates []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		lead, _, _ := strings.Cut(line, ":")
		lead = stripBullet(strings.ToLower(strings.TrimSpace(lead)))
		if v.required[lead] {
			candidates = append(candidates, lead)
			continue
		}
		candidates = append(candidates, v.seg.Segment(line)...)
	}
	return candidates
}

// Detect returns the set of required headings found among candidates.
func (v *Validator) Detect(candidates []string) map[string]bool {
	found := make(map[string]bool)
	for _, c := range candidates {
		if h := Normalize(c); v.required[h] {
			found[h] = true
		}
	}
	return found
}

// Classify validates one cell. An absent cell is StatusInvalid. Otherwise
// missing headings are listed in rulebook order and the result is
// StatusMatched when none are missing. Classify never fails.
func (v *Validator) Classify(cell types.Cell) types.ValidationResult {
	text, ok := cell.Value()
	if !ok {
		return types.ValidationResult{Status: types.StatusInvalid, Missing: []string{}}
	}

	found := v.Detect(v.ExtractCandidates(strings.TrimSpace(text)))
	missing := []string{}
	for _, h := range v.rulebook.Headings {
		if !found[h] {
			missing = append(missing, h)
		}
	}

	if len(missing) == 0 {
		return types.ValidationResult{Status: types.StatusMatched, Missing: missing}
	}
	return types.ValidationResult{
		Status:     types.StatusNotMatched,
		Missing:    missing,
		Suggestion: v.rulebook.Suggestion,
	}
}

// ClassifyText is a convenience wrapper for Classify(types.Present(text)).
func (v *Validator) ClassifyText(text string) types.ValidationResult {
	return v.Classify(types.Present(text))
}
