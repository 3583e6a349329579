// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/vergen/internal/batch"
	"github.com/pdiddy/vergen/internal/report"
	"github.com/pdiddy/vergen/internal/sheet"
	"github.com/pdiddy/vergen/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate <workbook.xlsx>",
	Short: "Validate every row of a workbook column",
	Long: `Validate reads the criteria column of an Excel workbook, checks each row
against the rulebook, and writes a copy with three columns inserted right of
the criteria column: validation status, missing rule patterns, and the
suggested pattern. Status cells are filled green (matched) or red (not
matched). Empty cells are reported as "No".

The workbook must contain the criteria column; otherwise nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := types.ValidateConfig{
		Input:        args[0],
		Output:       viper.GetString("validate.output"),
		Sheet:        viper.GetString("validate.sheet"),
		Column:       viper.GetString("validate.column"),
		ColumnWidth:  viper.GetFloat64("validate.column_width"),
		Workers:      viper.GetInt("validate.workers"),
		SummarySheet: viper.GetBool("validate.summary_sheet"),
		SummaryOut:   viper.GetString("validate.summary_out"),
	}

	v, err := newValidator()
	if err != nil {
		return err
	}

	summary, err := batch.Run(cmd.Context(), v, cfg, cmd.ErrOrStderr())
	if errors.Is(err, sheet.ErrColumnNotFound) {
		return fmt.Errorf("%s: %w", cfg.Input, err)
	}
	if err != nil {
		return err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	if os.Getenv("NO_COLOR") != "" {
		noColor = true
	}
	fmt.Fprintln(cmd.OutOrStdout())
	report.Render(cmd.OutOrStdout(), summary, noColor)
	return nil
}

func init() {
	validateCmd.Flags().String("output", batch.DefaultOutput, "annotated workbook to write")
	validateCmd.Flags().String("sheet", "", "worksheet to read (default: first sheet)")
	validateCmd.Flags().String("column", batch.DefaultColumn, "header of the criteria column")
	validateCmd.Flags().Float64("width", sheet.DefaultColumnWidth, "column width applied to every used column")
	validateCmd.Flags().Int("workers", 0, "parallel row workers (0 = number of CPUs)")
	validateCmd.Flags().Bool("summary-sheet", false, "add a summary sheet with pie and column charts")
	validateCmd.Flags().String("summary-out", "", "write the run summary to a .yaml or .json file")
	validateCmd.Flags().Bool("no-color", false, "disable colored terminal output")

	for key, flag := range map[string]string{
		"validate.output":        "output",
		"validate.sheet":         "sheet",
		"validate.column":        "column",
		"validate.column_width":  "width",
		"validate.workers":       "workers",
		"validate.summary_sheet": "summary-sheet",
		"validate.summary_out":   "summary-out",
	} {
		viper.BindPFlag(key, validateCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(validateCmd)
}
