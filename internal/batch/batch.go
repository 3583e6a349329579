// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch validates every row of a workbook column against a rulebook
// and writes the annotated workbook.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/vergen/internal/report"
	"github.com/pdiddy/vergen/internal/sheet"
	"github.com/pdiddy/vergen/pkg/types"
)

// Defaults applied by Run when the config leaves a field empty.
const (
	DefaultColumn = "DA_Verification_Criteria"
	DefaultOutput = "processed_output.xlsx"
)

// Classifier validates one cell. *rulebook.Validator satisfies it.
type Classifier interface {
	Classify(cell types.Cell) types.ValidationResult
	Rulebook() types.Rulebook
}

// ClassifyAll classifies cells with up to workers goroutines. Results are
// returned in row order. Rows are independent, so no coordination beyond
// the result slot is needed.
func ClassifyAll(ctx context.Context, c Classifier, cells []types.Cell, workers int) ([]types.ValidationResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]types.ValidationResult, len(cells))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, cell := range cells {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = c.Classify(cell)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Run validates cfg.Column of cfg.Input and saves the annotated workbook to
// cfg.Output. A missing column aborts before anything is written. Progress
// lines go to w.
func Run(ctx context.Context, c Classifier, cfg types.ValidateConfig, w io.Writer) (report.Summary, error) {
	if cfg.Column == "" {
		cfg.Column = DefaultColumn
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}

	wb, err := sheet.Open(cfg.Input)
	if err != nil {
		return report.Summary{}, err
	}
	defer wb.Close()

	sheetName, err := wb.ResolveSheet(cfg.Sheet)
	if err != nil {
		return report.Summary{}, err
	}
	if cfg.SummarySheet && sheetName == sheet.SummarySheet {
		return report.Summary{}, fmt.Errorf("%w: rename the sheet or disable the summary", sheet.ErrSummaryCollision)
	}

	col, cells, err := wb.Column(sheetName, cfg.Column)
	if err != nil {
		return report.Summary{}, err
	}
	fmt.Fprintf(w, "validating %d rows of %s[%s]\n", len(cells), sheetName, cfg.Column)

	results, err := ClassifyAll(ctx, c, cells, cfg.Workers)
	if err != nil {
		return report.Summary{}, fmt.Errorf("classifying rows: %w", err)
	}

	if err := wb.InsertResults(sheetName, col, results); err != nil {
		return report.Summary{}, err
	}
	if err := wb.ApplyLayout(sheetName, col+1, cfg.ColumnWidth); err != nil {
		return report.Summary{}, err
	}

	summary := report.Tally(results)
	summary.Rulebook = c.Rulebook().Name
	summary.Input = cfg.Input
	summary.Output = cfg.Output
	summary.Sheet = sheetName
	summary.Column = cfg.Column

	if cfg.SummarySheet {
		if err := wb.AddSummary(sheetName, summary.Matched, summary.NotMatched); err != nil {
			return report.Summary{}, err
		}
	}

	if err := wb.SaveAs(cfg.Output); err != nil {
		return report.Summary{}, err
	}
	slog.Debug("saved workbook", "path", cfg.Output, "run_id", summary.RunID)

	fmt.Fprintf(w, "matched: %d, not matched: %d, empty: %d\n",
		summary.Matched, summary.NotMatched, summary.Invalid)
	fmt.Fprintf(w, "wrote %s\n", cfg.Output)

	if cfg.SummaryOut != "" {
		if err := report.WriteFile(cfg.SummaryOut, summary); err != nil {
			return summary, err
		}
		fmt.Fprintf(w, "wrote %s\n", cfg.SummaryOut)
	}
	return summary, nil
}
