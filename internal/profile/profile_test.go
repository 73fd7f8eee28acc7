package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heimdex/heimdex-media-contracts/internal/schema"
	"github.com/heimdex/heimdex-media-contracts/internal/shorts"
	"github.com/heimdex/heimdex-media-contracts/internal/speech"
)

func TestDefaultIsValid(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())
	assert.Equal(t, speech.DefaultKeywordDict().Names(), p.Tagger().Categories())
	assert.Equal(t, shorts.NewScorer(), p.Scorer())
	assert.Equal(t, 30.0, p.Export.FrameRate)
}

func TestLoadEmptyPath(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestParseYAMLOverlay(t *testing.T) {
	data := []byte(`
keywords:
  - name: price
    keywords: ["price", "deal"]
tag_weights:
  price: 0.25
shorts:
  target_count: 3
  min_duration_ms: 20000
ocr:
  min_confidence: 0.6
sampling:
  fps: 2
export:
  frame_rate: 29.97
`)
	p, err := ParseYAML(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"price"}, p.Keywords.Names())
	assert.Equal(t, 0.25, p.TagWeights["price"])
	assert.Equal(t, 1.0, p.TagWeights["cta"], "unset weights keep defaults")
	assert.Equal(t, 3, p.Shorts.TargetCount)
	assert.Equal(t, 20000, p.Shorts.MinDurationMs)
	assert.Equal(t, shorts.MaxDurationMs, p.Shorts.MaxDurationMs)
	assert.Equal(t, 0.6, p.OCR.MinConfidence)
	assert.Equal(t, 2.0, p.Sampling.FPS)
	assert.Equal(t, 29.97, p.Export.FrameRate)
	assert.Equal(t, speech.ProductKeywordDict(), p.ProductKeywords)

	tags, _ := p.Tagger().TagText("what a deal")
	assert.Equal(t, []string{"price"}, tags)
}

func TestParseYAMLEmptyDocument(t *testing.T) {
	p, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestParseYAMLUnknownField(t *testing.T) {
	_, err := ParseYAML([]byte("not_a_field: 1\n"))
	require.Error(t, err)
}

func TestParseTOMLOverlay(t *testing.T) {
	data := []byte(`
fallback_weight = 0.2

[[product_keywords]]
name = "serum"
keywords = ["serum", "ampoule"]

[shorts.weights]
keyword_density = 0.5
face_presence = 0.1
transcript_richness = 0.1
tag_diversity = 0.1
duration_fitness = 0.2

[ocr]
min_chars = 5
noise_threshold = 0.4
`)
	p, err := ParseTOML(data)
	require.NoError(t, err)

	assert.Equal(t, 0.2, p.FallbackWeight)
	assert.Equal(t, []string{"serum"}, p.ProductKeywords.Names())
	assert.Equal(t, 0.5, p.Shorts.Weights.KeywordDensity)
	assert.Equal(t, 5, p.GateOptions().MinChars)
	assert.Equal(t, 0.4, p.GateOptions().NoiseThreshold)
	assert.Equal(t, speech.DefaultKeywordDict(), p.Keywords)
}

func TestParseTOMLUnknownKey(t *testing.T) {
	_, err := ParseTOML([]byte("[ocr]\nmystery = 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ocr.mystery")
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"durations out of order", "shorts:\n  min_duration_ms: 70000\n"},
		{"negative weight", "tag_weights:\n  cta: -1\n"},
		{"confidence above one", "ocr:\n  min_confidence: 1.5\n"},
		{"zero fps", "sampling:\n  fps: 0\n"},
		{"frame rate below one", "export:\n  frame_rate: 0.5\n"},
		{"empty category", "keywords:\n  - name: price\n    keywords: []\n"},
		{"duplicate category", "keywords:\n  - {name: a, keywords: [x]}\n  - {name: a, keywords: [y]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, schema.ErrValidation))
		})
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "profile.yml")
	require.NoError(t, os.WriteFile(yml, []byte("min_tag_score: 0.2\n"), 0o644))
	p, err := Load(yml)
	require.NoError(t, err)
	assert.Equal(t, 0.2, p.MinTagScore)

	tml := filepath.Join(dir, "profile.toml")
	require.NoError(t, os.WriteFile(tml, []byte("min_tag_score = 0.3\n"), 0o644))
	p, err = Load(tml)
	require.NoError(t, err)
	assert.Equal(t, 0.3, p.MinTagScore)

	_, err = Load(filepath.Join(dir, "profile.json"))
	require.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
