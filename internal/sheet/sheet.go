// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet reads verification criteria from an Excel workbook and writes
// the validation columns, cell styling, and summary charts back to it.
package sheet

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/vergen/pkg/types"
)

// Headers of the derived columns, inserted right of the source column.
const (
	HeaderStatus     = "Verification Criteria Validation Status"
	HeaderMissing    = "Missing Rule Patterns"
	HeaderSuggestion = "Suggested Rule Book Pattern"
)

// Fill colors for the status column.
const (
	ColorMatched    = "006400"
	ColorNotMatched = "FF0000"
)

// DefaultColumnWidth is applied to every used column.
const DefaultColumnWidth = 50

// SummarySheet names the sheet that holds the summary table and charts.
const SummarySheet = "RuleBook Summary"

// ErrColumnNotFound is returned when the header row lacks the requested column.
var ErrColumnNotFound = errors.New("column not found")

// ErrSummaryCollision is returned when the data sheet is named SummarySheet.
var ErrSummaryCollision = errors.New("data sheet has the summary sheet's name")

// Workbook wraps an open excelize file.
type Workbook struct {
	f *excelize.File
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return &Workbook{f: f}, nil
}

// Close releases the workbook.
func (wb *Workbook) Close() error {
	return wb.f.Close()
}

// SaveAs writes the workbook to path.
func (wb *Workbook) SaveAs(path string) error {
	if err := wb.f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

// ResolveSheet returns name when it exists, or the first sheet when name is empty.
func (wb *Workbook) ResolveSheet(name string) (string, error) {
	if name == "" {
		first := wb.f.GetSheetName(0)
		if first == "" {
			return "", fmt.Errorf("workbook has no sheets")
		}
		return first, nil
	}
	idx, err := wb.f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return "", fmt.Errorf("sheet %q not found", name)
	}
	return name, nil
}

// Column locates header in row 1 of sheet and returns its 1-based column
// number and one cell per data row. Empty cells, and cells past the end of a
// short row, are Absent.
func (wb *Workbook) Column(sheet, header string) (int, []types.Cell, error) {
	rows, err := wb.f.GetRows(sheet)
	if err != nil {
		return 0, nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return 0, nil, fmt.Errorf("%w: %q (sheet %s is empty)", ErrColumnNotFound, header, sheet)
	}

	idx := -1
	for i, h := range rows[0] {
		if h == header {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, nil, fmt.Errorf("%w: the sheet must contain a column named %q", ErrColumnNotFound, header)
	}

	cells := make([]types.Cell, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if idx >= len(row) || row[idx] == "" {
			cells = append(cells, types.Absent())
			continue
		}
		cells = append(cells, types.Present(row[idx]))
	}

	slog.Debug("read column", "sheet", sheet, "column", header, "rows", len(cells))
	return idx + 1, cells, nil
}

// InsertResults inserts the three derived columns right of col and fills
// them with one result per data row, starting at row 2.
func (wb *Workbook) InsertResults(sheet string, col int, results []types.ValidationResult) error {
	next, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return err
	}
	if err := wb.f.InsertCols(sheet, next, 3); err != nil {
		return fmt.Errorf("inserting result columns: %w", err)
	}

	headers := []string{HeaderStatus, HeaderMissing, HeaderSuggestion}
	for i, h := range headers {
		if err := wb.setCell(sheet, col+1+i, 1, h); err != nil {
			return err
		}
	}
	for r, res := range results {
		for i, v := range res.Columns() {
			if v == "" {
				continue
			}
			if err := wb.setCell(sheet, col+1+i, r+2, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (wb *Workbook) setCell(sheet string, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return wb.f.SetCellStr(sheet, cell, value)
}

// ApplyLayout sets every used column to width, wraps text in every used
// cell, and fills the status cells in statusCol by their label.
func (wb *Workbook) ApplyLayout(sheet string, statusCol int, width float64) error {
	if width <= 0 {
		width = DefaultColumnWidth
	}

	cols, err := wb.f.GetCols(sheet)
	if err != nil {
		return fmt.Errorf("reading columns of %s: %w", sheet, err)
	}
	rows, err := wb.f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("reading rows of %s: %w", sheet, err)
	}
	if len(cols) == 0 || len(rows) == 0 {
		return nil
	}

	lastCol, err := excelize.ColumnNumberToName(len(cols))
	if err != nil {
		return err
	}
	if err := wb.f.SetColWidth(sheet, "A", lastCol, width); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	styles := newStyleCache(wb.f)
	for row := 1; row <= len(rows); row++ {
		for col := 1; col <= len(cols); col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			fill := ""
			if col == statusCol && row > 1 {
				value, err := wb.f.GetCellValue(sheet, cell)
				if err != nil {
					return err
				}
				fill = statusFills[value]
			}
			if err := styles.apply(sheet, cell, fill); err != nil {
				return fmt.Errorf("styling %s: %w", cell, err)
			}
		}
	}
	return nil
}

// statusFills maps a status label to its fill color. Labels not listed keep
// their existing fill.
var statusFills = map[string]string{
	types.LabelMatched:    ColorMatched,
	types.LabelNotMatched: ColorNotMatched,
}

// styleCache derives wrapped (and optionally filled) styles from the styles
// cells already carry, so number formats, fonts, and borders survive.
type styleCache struct {
	f       *excelize.File
	derived map[styleKey]int
}

type styleKey struct {
	base int
	fill string
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, derived: make(map[styleKey]int)}
}

func (c *styleCache) apply(sheet, cell, fill string) error {
	base, err := c.f.GetCellStyle(sheet, cell)
	if err != nil {
		return err
	}
	key := styleKey{base: base, fill: fill}
	id, ok := c.derived[key]
	if !ok {
		style, err := c.f.GetStyle(base)
		if err != nil {
			return err
		}
		if style.Alignment == nil {
			style.Alignment = &excelize.Alignment{}
		}
		style.Alignment.WrapText = true
		if fill != "" {
			style.Fill = excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1}
		}
		if id, err = c.f.NewStyle(style); err != nil {
			return err
		}
		c.derived[key] = id
	}
	return c.f.SetCellStyle(sheet, cell, cell, id)
}

// AddSummary writes a sheet with the Matched and Not Matched counts and
// adds a pie chart and a column chart over them. A previous summary sheet is
// replaced, but never the dataSheet the counts came from.
func (wb *Workbook) AddSummary(dataSheet string, matched, notMatched int) error {
	if dataSheet == SummarySheet {
		return fmt.Errorf("%w: %q", ErrSummaryCollision, SummarySheet)
	}
	if idx, err := wb.f.GetSheetIndex(SummarySheet); err == nil && idx >= 0 {
		if err := wb.f.DeleteSheet(SummarySheet); err != nil {
			return fmt.Errorf("replacing %s: %w", SummarySheet, err)
		}
	}
	if _, err := wb.f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("creating %s: %w", SummarySheet, err)
	}

	table := [][]any{
		{"Validation Status", "Count"},
		{types.LabelMatched, matched},
		{types.LabelNotMatched, notMatched},
	}
	for r, row := range table {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := wb.f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("writing summary table: %w", err)
		}
	}
	if err := wb.f.SetColWidth(SummarySheet, "A", "A", 30); err != nil {
		return err
	}

	ref := "'" + SummarySheet + "'!"
	series := []excelize.ChartSeries{{
		Name:       ref + "$B$1",
		Categories: ref + "$A$2:$A$3",
		Values:     ref + "$B$2:$B$3",
	}}

	pie := &excelize.Chart{
		Type:     excelize.Pie,
		Series:   series,
		Title:    []excelize.RichTextRun{{Text: fmt.Sprintf("Validation Summary (Total: %d)", matched+notMatched)}},
		Legend:   excelize.ChartLegend{Position: "bottom"},
		PlotArea: excelize.ChartPlotArea{ShowPercent: true},
	}
	if err := wb.f.AddChart(SummarySheet, "D2", pie); err != nil {
		return fmt.Errorf("adding pie chart: %w", err)
	}

	bar := &excelize.Chart{
		Type:     excelize.Col,
		Series:   series,
		Title:    []excelize.RichTextRun{{Text: "Validation Count"}},
		Legend:   excelize.ChartLegend{Position: "none"},
		PlotArea: excelize.ChartPlotArea{ShowVal: true},
	}
	if err := wb.f.AddChart(SummarySheet, "D20", bar); err != nil {
		return fmt.Errorf("adding column chart: %w", err)
	}
	return nil
}

// Rows returns the cell values of sheet, as excelize reports them.
func (wb *Workbook) Rows(sheet string) ([][]string, error) {
	return wb.f.GetRows(sheet)
}
