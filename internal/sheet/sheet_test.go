// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/vergen/pkg/types"
)

// writeWorkbook creates an .xlsx file whose Sheet1 holds rows verbatim.
func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func openWorkbook(t *testing.T, path string) *Workbook {
	t.Helper()
	wb, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { wb.Close() })
	return wb
}

func sampleRows() [][]any {
	return [][]any{
		{"ID", "DA_Verification_Criteria", "Owner"},
		{"REQ-1", "Pre-Condition:\nAcceptance Criteria:\nInput:\nOutput:", "ana"},
		{"REQ-2", "", "bo"},
		{"REQ-3", "Input: only", "cy"},
		{"REQ-4"},
	}
}

func TestColumn(t *testing.T) {
	wb := openWorkbook(t, writeWorkbook(t, sampleRows()))

	col, cells, err := wb.Column("Sheet1", "DA_Verification_Criteria")
	require.NoError(t, err)
	assert.Equal(t, 2, col)
	require.Len(t, cells, 4)

	v, ok := cells[0].Value()
	assert.True(t, ok)
	assert.Contains(t, v, "Acceptance Criteria:")
	assert.True(t, cells[1].IsAbsent(), "empty cell is absent")
	assert.False(t, cells[2].IsAbsent())
	assert.True(t, cells[3].IsAbsent(), "short row is absent")
}

func TestColumnNotFound(t *testing.T) {
	wb := openWorkbook(t, writeWorkbook(t, [][]any{{"ID", "Criteria"}, {"1", "x"}}))

	_, _, err := wb.Column("Sheet1", "DA_Verification_Criteria")
	require.ErrorIs(t, err, ErrColumnNotFound)
	assert.Contains(t, err.Error(), "DA_Verification_Criteria")
}

func TestResolveSheet(t *testing.T) {
	wb := openWorkbook(t, writeWorkbook(t, sampleRows()))

	name, err := wb.ResolveSheet("")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", name)

	_, err = wb.ResolveSheet("Nope")
	require.Error(t, err)
}

func TestInsertResultsAndLayout(t *testing.T) {
	path := writeWorkbook(t, sampleRows())
	wb := openWorkbook(t, path)

	col, _, err := wb.Column("Sheet1", "DA_Verification_Criteria")
	require.NoError(t, err)

	results := []types.ValidationResult{
		{Status: types.StatusMatched, Missing: []string{}},
		{Status: types.StatusInvalid, Missing: []string{}},
		{
			Status:     types.StatusNotMatched,
			Missing:    []string{"pre-condition", "acceptance criteria", "output"},
			Suggestion: types.SuggestedPattern,
		},
		{Status: types.StatusInvalid, Missing: []string{}},
	}
	require.NoError(t, wb.InsertResults("Sheet1", col, results))
	require.NoError(t, wb.ApplyLayout("Sheet1", col+1, 0))

	out := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, wb.SaveAs(out))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "DA_Verification_Criteria", HeaderStatus, HeaderMissing, HeaderSuggestion, "Owner"}, rows[0])
	assert.Equal(t, types.LabelMatched, rows[1][2])
	assert.Equal(t, "ana", rows[1][5])
	assert.Equal(t, types.LabelInvalid, rows[2][2])
	assert.Equal(t, types.LabelNotMatched, rows[3][2])
	assert.Equal(t, "Missing: pre-condition, acceptance criteria, output", rows[3][3])
	assert.Equal(t, types.SuggestedPattern, rows[3][4])

	width, err := f.GetColWidth("Sheet1", "F")
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultColumnWidth), width)

	matchedStyle, err := f.GetCellStyle("Sheet1", "C2")
	require.NoError(t, err)
	invalidStyle, err := f.GetCellStyle("Sheet1", "C3")
	require.NoError(t, err)
	notMatchedStyle, err := f.GetCellStyle("Sheet1", "C4")
	require.NoError(t, err)
	plainStyle, err := f.GetCellStyle("Sheet1", "A2")
	require.NoError(t, err)

	assert.NotEqual(t, matchedStyle, notMatchedStyle)
	assert.NotEqual(t, matchedStyle, invalidStyle)
	assert.Equal(t, plainStyle, invalidStyle, "invalid rows carry only the wrap style")

	style, err := f.GetStyle(plainStyle)
	require.NoError(t, err)
	require.NotNil(t, style.Alignment)
	assert.True(t, style.Alignment.WrapText)
}

func TestAddSummary(t *testing.T) {
	wb := openWorkbook(t, writeWorkbook(t, sampleRows()))

	require.NoError(t, wb.AddSummary("Sheet1", 3, 2))
	// A second call replaces the sheet rather than failing.
	require.NoError(t, wb.AddSummary("Sheet1", 4, 1))

	rows, err := wb.Rows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Validation Status", "Count"},
		{types.LabelMatched, "4"},
		{types.LabelNotMatched, "1"},
	}, rows)
}

func TestApplyLayoutKeepsExistingFormats(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"Due", "DA_Verification_Criteria"},
		{45000, "Input: x"},
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14, Font: &excelize.Font{Bold: true}})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "A2", dateStyle))
	path := filepath.Join(t.TempDir(), "dated.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb := openWorkbook(t, path)
	before, err := wb.f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	require.NotEqual(t, "45000", before, "date is displayed formatted")

	col, _, err := wb.Column("Sheet1", "DA_Verification_Criteria")
	require.NoError(t, err)
	require.NoError(t, wb.InsertResults("Sheet1", col, []types.ValidationResult{
		{Status: types.StatusNotMatched, Missing: []string{"output"}, Suggestion: types.SuggestedPattern},
	}))
	require.NoError(t, wb.ApplyLayout("Sheet1", col+1, 0))

	after, err := wb.f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	id, err := wb.f.GetCellStyle("Sheet1", "A2")
	require.NoError(t, err)
	style, err := wb.f.GetStyle(id)
	require.NoError(t, err)
	assert.Equal(t, 14, style.NumFmt)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	require.NotNil(t, style.Alignment)
	assert.True(t, style.Alignment.WrapText)

	id, err = wb.f.GetCellStyle("Sheet1", "C2")
	require.NoError(t, err)
	style, err = wb.f.GetStyle(id)
	require.NoError(t, err)
	assert.Equal(t, 1, style.Fill.Pattern)
	require.Len(t, style.Fill.Color, 1)
	assert.Contains(t, style.Fill.Color[0], ColorNotMatched)
	assert.True(t, style.Alignment.WrapText)
}

func TestAddSummaryRefusesDataSheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SummarySheet))
	require.NoError(t, f.SetCellStr(SummarySheet, "A1", "DA_Verification_Criteria"))
	path := filepath.Join(t.TempDir(), "clash.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb := openWorkbook(t, path)
	err := wb.AddSummary(SummarySheet, 1, 0)
	require.ErrorIs(t, err, ErrSummaryCollision)

	rows, err := wb.Rows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"DA_Verification_Criteria"}}, rows, "data left untouched")
}
