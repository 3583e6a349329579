// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vergen/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check [text...]",
	Short: "Check a single entry against the rulebook",
	Long: `Check classifies one entry. The entry is taken from the arguments
(joined with spaces), from --file, or from stdin when neither is given.
Use \n inside arguments for line breaks.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	text, err := checkInput(cmd, args)
	if err != nil {
		return err
	}

	v, err := newValidator()
	if err != nil {
		return err
	}
	result := v.ClassifyText(text)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCheckOutput(cmd.OutOrStdout(), result, jsonOutput)
}

func checkInput(cmd *cobra.Command, args []string) (string, error) {
	path, _ := cmd.Flags().GetString("file")
	switch {
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.ReplaceAll(strings.Join(args, " "), `\n`, "\n"), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
}

func formatCheckOutput(w io.Writer, r types.ValidationResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	fmt.Fprintf(w, "Status:  %s\n", r.Status)
	if info := r.MissingInfo(); info != "" {
		fmt.Fprintf(w, "%s\n", info)
	}
	if r.Suggestion != "" {
		fmt.Fprintf(w, "\nSuggested Rule Book Pattern:\n%s\n", r.Suggestion)
	}
	return nil
}

func init() {
	checkCmd.Flags().String("file", "", "read the entry from a file")
	checkCmd.Flags().Bool("json", false, "output the result as JSON")

	rootCmd.AddCommand(checkCmd)
}
