// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentence

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/neurosnap/sentences"

	"github.com/pdiddy/vergen/internal/httputil"
	"github.com/pdiddy/vergen/pkg/types"
)

// DefaultTrainingURL points at the English Punkt model published with the
// tokenizer library.
const DefaultTrainingURL = "https://raw.githubusercontent.com/neurosnap/sentences/master/data/english.json"

// FetchTraining downloads Punkt training data from cfg.TrainingURL and
// writes it to cfg.TrainingFile. The payload is parsed before anything is
// written, so a bad download never replaces a good file.
func FetchTraining(ctx context.Context, client *http.Client, cfg types.SegmenterConfig, w io.Writer) error {
	if cfg.TrainingFile == "" {
		return fmt.Errorf("no training file destination configured")
	}
	url := cfg.TrainingURL
	if url == "" {
		url = DefaultTrainingURL
	}

	fmt.Fprintf(w, "fetching %s\n", url)
	data, err := httputil.Get(ctx, client, url, cfg.UserAgent, cfg.MaxRetries)
	if err != nil {
		return err
	}
	if _, err := sentences.LoadTraining(data); err != nil {
		return fmt.Errorf("downloaded training data is not valid: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.TrainingFile), 0o755); err != nil {
		return fmt.Errorf("creating training directory: %w", err)
	}
	tmp := cfg.TrainingFile + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, cfg.TrainingFile); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", cfg.TrainingFile, err)
	}

	fmt.Fprintf(w, "saved %s (%d bytes)\n", cfg.TrainingFile, len(data))
	return nil
}
