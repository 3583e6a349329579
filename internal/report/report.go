// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report summarizes a validation run: counts per status, export to
// YAML or JSON, and a terminal bar rendering.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/vergen/pkg/types"
)

// Summary holds the counts from one validation run.
type Summary struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	Rulebook    string    `json:"rulebook" yaml:"rulebook"`
	Input       string    `json:"input,omitempty" yaml:"input,omitempty"`
	Output      string    `json:"output,omitempty" yaml:"output,omitempty"`
	Sheet       string    `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	Column      string    `json:"column,omitempty" yaml:"column,omitempty"`
	Total       int       `json:"total" yaml:"total"`
	Matched     int       `json:"matched" yaml:"matched"`
	NotMatched  int       `json:"not_matched" yaml:"not_matched"`
	Invalid     int       `json:"invalid" yaml:"invalid"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// Tally counts results by status and stamps the summary with a fresh run ID.
func Tally(results []types.ValidationResult) Summary {
	s := Summary{
		RunID:       uuid.NewString(),
		Total:       len(results),
		GeneratedAt: time.Now().UTC(),
	}
	for _, r := range results {
		switch r.Status {
		case types.StatusMatched:
			s.Matched++
		case types.StatusNotMatched:
			s.NotMatched++
		default:
			s.Invalid++
		}
	}
	return s
}

// HasMismatches reports whether any entry failed the rulebook.
func (s Summary) HasMismatches() bool {
	return s.NotMatched > 0
}

// MatchedPercent is the share of Matched among Matched and Not Matched
// entries. Invalid entries are excluded. Returns 0 when both are zero.
func (s Summary) MatchedPercent() float64 {
	checked := s.Matched + s.NotMatched
	if checked == 0 {
		return 0
	}
	return 100 * float64(s.Matched) / float64(checked)
}

// WriteFile exports s to path as JSON when the extension is .json and as
// YAML otherwise.
func WriteFile(path string, s Summary) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(s, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(&s)
	}
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating summary directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing summary %s: %w", path, err)
	}
	return nil
}

// barWidth is the number of cells a 100% bar occupies.
const barWidth = 40

// Render writes a bar per status to w, green for Matched and red for Not
// Matched. Colors are omitted when noColor is set.
func Render(w io.Writer, s Summary, noColor bool) {
	fmt.Fprintf(w, "Validation Summary (Total: %d)\n", s.Total)

	longest := max(s.Matched, s.NotMatched)
	rows := []struct {
		label string
		count int
		color lipgloss.Color
	}{
		{types.LabelMatched, s.Matched, lipgloss.Color("2")},
		{types.LabelNotMatched, s.NotMatched, lipgloss.Color("1")},
	}
	for _, r := range rows {
		n := 0
		if longest > 0 {
			n = r.count * barWidth / longest
		}
		bar := stylize(strings.Repeat("█", n), noColor, r.color)
		fmt.Fprintf(w, "%-26s %s %d\n", r.label, bar, r.count)
	}
	if s.Invalid > 0 {
		fmt.Fprintf(w, "%-26s %d\n", "Empty cells", s.Invalid)
	}
	fmt.Fprintf(w, "Matched: %.1f%%\n", s.MatchedPercent())
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor || text == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
