// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Cell is the content of one spreadsheet cell. A cell is either Absent
// (empty, or beyond the end of a short row) or Present with a string value.
// The zero value is Absent.
type Cell struct {
	value   string
	present bool
}

// Absent returns a cell that carries no value.
func Absent() Cell { return Cell{} }

// Present returns a cell holding s. An empty string is still Present.
func Present(s string) Cell { return Cell{value: s, present: true} }

// Value returns the cell text and whether the cell holds a value.
func (c Cell) Value() (string, bool) { return c.value, c.present }

// IsAbsent reports whether the cell carries no value.
func (c Cell) IsAbsent() bool { return !c.present }

// Status is the outcome of validating one entry against a rulebook.
type Status int

const (
	// StatusInvalid marks an absent cell. It is a terminal classification,
	// not an error.
	StatusInvalid Status = iota
	StatusMatched
	StatusNotMatched
)

// Serialized status labels consumed by the spreadsheet and chart stages.
const (
	LabelMatched    = "Matched with RuleBook"
	LabelNotMatched = "Not Matched with RuleBook"
	LabelInvalid    = "No"
)

// String returns the serialized label for s.
func (s Status) String() string {
	switch s {
	case StatusMatched:
		return LabelMatched
	case StatusNotMatched:
		return LabelNotMatched
	default:
		return LabelInvalid
	}
}

// ParseStatus converts a serialized label back to a Status.
func ParseStatus(label string) (Status, error) {
	switch label {
	case LabelMatched:
		return StatusMatched, nil
	case LabelNotMatched:
		return StatusNotMatched, nil
	case LabelInvalid:
		return StatusInvalid, nil
	}
	return StatusInvalid, fmt.Errorf("unknown status %q", label)
}

// MarshalText implements encoding.TextMarshaler so Status serializes to its
// label in both YAML and JSON.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ValidationResult is the outcome of classifying one entry.
// Missing is empty exactly when Status is StatusMatched. Suggestion holds the
// rulebook template exactly when Status is StatusNotMatched.
type ValidationResult struct {
	Status     Status   `json:"status" yaml:"status"`
	Missing    []string `json:"missing" yaml:"missing"`
	Suggestion string   `json:"suggestion" yaml:"suggestion"`
}

// MissingInfo renders Missing as "Missing: h1, h2" or "" when nothing is missing.
func (r ValidationResult) MissingInfo() string {
	if len(r.Missing) == 0 {
		return ""
	}
	return "Missing: " + strings.Join(r.Missing, ", ")
}

// Columns returns the three derived cell values written next to the source
// column: status label, missing info, suggested pattern.
func (r ValidationResult) Columns() []string {
	return []string{r.Status.String(), r.MissingInfo(), r.Suggestion}
}

// Rulebook is the vocabulary of headings every entry must contain.
type Rulebook struct {
	// Name labels the rulebook in summaries.
	Name string `json:"name" yaml:"name"`

	// Headings lists the required heading tokens, lowercase, in canonical
	// order. Missing headings are reported in this order.
	Headings []string `json:"headings" yaml:"headings"`

	// Suggestion is the template offered when an entry does not match.
	Suggestion string `json:"suggestion" yaml:"suggestion"`
}

// Heading tokens of the default rulebook.
const (
	HeadingPreCondition       = "pre-condition"
	HeadingAcceptanceCriteria = "acceptance criteria"
	HeadingInput              = "input"
	HeadingOutput             = "output"
)

// SuggestedPattern is the fixed template offered for non-matching entries.
// The leading spaces before Input and Output are part of the contract.
const SuggestedPattern = "Pre-Condition:\nAcceptance Criteria:\n Input:\n Output:"

// DefaultRulebook returns the verification-criteria rulebook:
// Pre-Condition, Acceptance Criteria, Input, Output.
func DefaultRulebook() Rulebook {
	return Rulebook{
		Name: "verification-criteria",
		Headings: []string{
			HeadingPreCondition,
			HeadingAcceptanceCriteria,
			HeadingInput,
			HeadingOutput,
		},
		Suggestion: SuggestedPattern,
	}
}
