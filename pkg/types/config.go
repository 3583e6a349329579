// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "vergen/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on 429 and 503 responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// SegmenterConfig holds settings for the sentence segmentation capability.
type SegmenterConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// TrainingFile is a Punkt training JSON file. When empty or missing the
	// embedded English model is used.
	TrainingFile string `json:"training_file" yaml:"training_file" mapstructure:"training_file"`

	// TrainingURL is where `punkt fetch` downloads training data from.
	TrainingURL string `json:"training_url" yaml:"training_url" mapstructure:"training_url"`
}

// ValidateConfig holds settings for the spreadsheet validation stage.
type ValidateConfig struct {
	// Input is the workbook to validate.
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// Output is where the annotated workbook is written
	// (default "processed_output.xlsx").
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Sheet names the worksheet to read. Empty selects the first sheet.
	Sheet string `json:"sheet" yaml:"sheet" mapstructure:"sheet"`

	// Column is the header of the column holding the criteria text
	// (default "DA_Verification_Criteria").
	Column string `json:"column" yaml:"column" mapstructure:"column"`

	// ColumnWidth is applied to every used column (default 50).
	ColumnWidth float64 `json:"column_width" yaml:"column_width" mapstructure:"column_width"`

	// Workers bounds parallel row classification (default: number of CPUs).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// SummarySheet adds a Summary sheet with pie and column charts.
	SummarySheet bool `json:"summary_sheet" yaml:"summary_sheet" mapstructure:"summary_sheet"`

	// SummaryOut writes the run summary to a .yaml or .json file when set.
	SummaryOut string `json:"summary_out,omitempty" yaml:"summary_out,omitempty" mapstructure:"summary_out"`
}
