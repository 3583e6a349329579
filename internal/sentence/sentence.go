// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sentence provides the sentence segmentation capability used to
// split prose lines into candidate headings. It wraps an English Punkt
// tokenizer, which splits on sentence-final punctuation while staying
// resilient to abbreviations.
package sentence

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/pdiddy/vergen/pkg/types"
)

// Punkt segments text with a Punkt sentence tokenizer.
type Punkt struct {
	// mu serializes Tokenize; the tokenizer is not documented as safe for
	// concurrent use.
	mu        sync.Mutex
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunkt builds a tokenizer from a Punkt training JSON file. An empty path,
// or a path that does not exist, selects the embedded English model.
func NewPunkt(trainingFile string) (*Punkt, error) {
	storage, err := loadStorage(trainingFile)
	if err != nil {
		return nil, err
	}
	tok, err := english.NewSentenceTokenizer(storage)
	if err != nil {
		return nil, fmt.Errorf("building sentence tokenizer: %w", err)
	}
	return &Punkt{tokenizer: tok}, nil
}

func loadStorage(path string) (*sentences.Storage, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("punkt training file not found, using embedded model", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("reading training file %s: %w", path, err)
	}
	storage, err := sentences.LoadTraining(data)
	if err != nil {
		return nil, fmt.Errorf("parsing training file %s: %w", path, err)
	}
	slog.Debug("loaded punkt training data", "path", path)
	return storage, nil
}

// Segment splits line into trimmed, non-empty sentences in order.
func (p *Punkt) Segment(line string) []string {
	p.mu.Lock()
	tokens := p.tokenizer.Tokenize(line)
	p.mu.Unlock()

	out := make([]string, 0, len(tokens))
	for _, s := range tokens {
		if text := strings.TrimSpace(s.Text); text != "" {
			out = append(out, text)
		}
	}
	return out
}

var (
	initOnce sync.Once
	shared   *Punkt
	initErr  error
)

// Init prepares the process-wide segmenter. Only the first call does any
// work; later calls return the same segmenter (or error) regardless of cfg.
// Call it once at startup before classifying entries.
func Init(cfg types.SegmenterConfig) (*Punkt, error) {
	initOnce.Do(func() {
		shared, initErr = NewPunkt(cfg.TrainingFile)
	})
	return shared, initErr
}
