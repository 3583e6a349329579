// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentence

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vergen/pkg/types"
)

const minimalTraining = `{"AbbrevTypes":{"approx":1},"Collocations":{},"SentStarters":{},"OrthoContext":{}}`

func TestPunktSegment(t *testing.T) {
	p, err := NewPunkt("")
	require.NoError(t, err)

	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "two sentences",
			line: "First sentence here. Second one follows.",
			want: []string{"First sentence here.", "Second one follows."},
		},
		{
			name: "single sentence without terminator",
			line: "The input to this process must be validated",
			want: []string{"The input to this process must be validated"},
		},
		{
			name: "empty line",
			line: "",
			want: []string{},
		},
		{
			name: "whitespace line",
			line: "   ",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Segment(tt.line))
		})
	}
}

func TestNewPunktMissingFileUsesEmbeddedModel(t *testing.T) {
	p, err := NewPunkt(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Len(t, p.Segment("One here. Two here."), 2)
}

func TestNewPunktFromTrainingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "english.json")
	require.NoError(t, os.WriteFile(path, []byte(minimalTraining), 0o644))

	p, err := NewPunkt(path)
	require.NoError(t, err)
	assert.NotEmpty(t, p.Segment("Some text here."))
}

func TestNewPunktRejectsCorruptTraining(t *testing.T) {
	path := filepath.Join(t.TempDir(), "english.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewPunkt(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing training file")
}

func TestInitIsIdempotent(t *testing.T) {
	first, err := Init(types.SegmenterConfig{})
	require.NoError(t, err)
	second, err := Init(types.SegmenterConfig{TrainingFile: "ignored-after-first-call.json"})
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestFetchTraining(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good.json":
			w.Write([]byte(minimalTraining))
		case "/bad.json":
			w.Write([]byte("<html>proxy login</html>"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	t.Run("writes valid training data", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "punkt", "english.json")
		var buf bytes.Buffer
		err := FetchTraining(context.Background(), ts.Client(), types.SegmenterConfig{
			TrainingFile: dest,
			TrainingURL:  ts.URL + "/good.json",
		}, &buf)
		require.NoError(t, err)

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.JSONEq(t, minimalTraining, string(data))
		assert.Contains(t, buf.String(), "saved "+dest)
	})

	t.Run("keeps existing file when payload is invalid", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "english.json")
		require.NoError(t, os.WriteFile(dest, []byte(minimalTraining), 0o644))

		err := FetchTraining(context.Background(), ts.Client(), types.SegmenterConfig{
			TrainingFile: dest,
			TrainingURL:  ts.URL + "/bad.json",
		}, &bytes.Buffer{})
		require.Error(t, err)

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.JSONEq(t, minimalTraining, string(data))
	})

	t.Run("reports http failures", func(t *testing.T) {
		err := FetchTraining(context.Background(), ts.Client(), types.SegmenterConfig{
			TrainingFile: filepath.Join(t.TempDir(), "english.json"),
			TrainingURL:  ts.URL + "/missing.json",
		}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("requires a destination", func(t *testing.T) {
		err := FetchTraining(context.Background(), ts.Client(), types.SegmenterConfig{}, &bytes.Buffer{})
		require.Error(t, err)
	})
}
