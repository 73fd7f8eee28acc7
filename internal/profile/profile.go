// Package profile bundles every tunable table used by the contracts
// (keyword dictionaries, weights, gate thresholds, sampling and export
// defaults) and loads overrides from YAML or TOML files.
package profile

import (
	"fmt"
	"math"

	"github.com/heimdex/heimdex-media-contracts/internal/faces"
	"github.com/heimdex/heimdex-media-contracts/internal/ocr"
	"github.com/heimdex/heimdex-media-contracts/internal/schema"
	"github.com/heimdex/heimdex-media-contracts/internal/shorts"
	"github.com/heimdex/heimdex-media-contracts/internal/speech"
)

const DefaultExportFrameRate = 30.0

type ShortsConfig struct {
	Weights           shorts.Weights `json:"weights"`
	HighValueTags     []string       `json:"high_value_tags"`
	MinDurationMs     int            `json:"min_duration_ms"`
	MaxDurationMs     int            `json:"max_duration_ms"`
	IdealDurationMs   int            `json:"ideal_duration_ms"`
	TargetCharsPerSec float64        `json:"target_chars_per_sec"`
	TargetCount       int            `json:"target_count"`
}

type OCRConfig struct {
	MinConfidence float64         `json:"min_confidence"`
	Gate          ocr.GateOptions `json:"gate"`
}

type SamplingConfig struct {
	FPS             float64 `json:"fps"`
	BoundaryWindowS float64 `json:"boundary_window_s"`
}

type ExportConfig struct {
	FrameRate float64 `json:"frame_rate"`
}

// Profile is a complete, validated set of tables.
type Profile struct {
	Keywords        speech.KeywordDict `json:"keywords"`
	ProductKeywords speech.KeywordDict `json:"product_keywords"`
	MinTagScore     float64            `json:"min_tag_score"`
	TagWeights      speech.TagWeights  `json:"tag_weights"`
	FallbackWeight  float64            `json:"fallback_weight"`
	Shorts          ShortsConfig       `json:"shorts"`
	OCR             OCRConfig          `json:"ocr"`
	Sampling        SamplingConfig     `json:"sampling"`
	Export          ExportConfig       `json:"export"`
}

// Default returns the built-in tables.
func Default() Profile {
	return Profile{
		Keywords:        speech.DefaultKeywordDict(),
		ProductKeywords: speech.ProductKeywordDict(),
		MinTagScore:     0,
		TagWeights:      speech.DefaultTagWeights(),
		FallbackWeight:  speech.DefaultFallbackWeight,
		Shorts: ShortsConfig{
			Weights:           shorts.DefaultWeights(),
			HighValueTags:     shorts.DefaultHighValueTags(),
			MinDurationMs:     shorts.MinDurationMs,
			MaxDurationMs:     shorts.MaxDurationMs,
			IdealDurationMs:   shorts.IdealDurationMs,
			TargetCharsPerSec: shorts.TargetCharsPerSec,
			TargetCount:       shorts.DefaultTarget,
		},
		OCR: OCRConfig{
			MinConfidence: ocr.DefaultMinConfidence,
			Gate:          ocr.DefaultGateOptions(),
		},
		Sampling: SamplingConfig{
			FPS:             faces.DefaultSampleFPS,
			BoundaryWindowS: faces.DefaultBoundaryWindow,
		},
		Export: ExportConfig{FrameRate: DefaultExportFrameRate},
	}
}

func (p Profile) Tagger() *speech.Tagger {
	return speech.NewTagger(p.Keywords, p.MinTagScore)
}

func (p Profile) ProductTagger() *speech.Tagger {
	return speech.NewTagger(p.ProductKeywords, p.MinTagScore)
}

func (p Profile) Ranker() *speech.Ranker {
	return speech.NewRanker(p.TagWeights, p.FallbackWeight)
}

func (p Profile) Scorer() shorts.Scorer {
	return shorts.Scorer{
		Weights:           p.Shorts.Weights,
		HighValueTags:     append([]string(nil), p.Shorts.HighValueTags...),
		MinDurationMs:     p.Shorts.MinDurationMs,
		MaxDurationMs:     p.Shorts.MaxDurationMs,
		IdealDurationMs:   p.Shorts.IdealDurationMs,
		TargetCharsPerSec: p.Shorts.TargetCharsPerSec,
	}
}

func (p Profile) GateOptions() ocr.GateOptions {
	return p.OCR.Gate
}

// Validate reports every inconsistent table entry.
func (p Profile) Validate() error {
	c := schema.NewChecker("profile")
	checkDict(c, "keywords", p.Keywords)
	checkDict(c, "product_keywords", p.ProductKeywords)
	c.Require(p.MinTagScore >= 0 && p.MinTagScore < 1, "min_tag_score", "must be within [0, 1), got %g", p.MinTagScore)
	for tag, w := range p.TagWeights {
		c.Require(finite(w) && w >= 0, "tag_weights."+tag, "must be >= 0, got %g", w)
	}
	c.Require(finite(p.FallbackWeight) && p.FallbackWeight >= 0, "fallback_weight", "must be >= 0, got %g", p.FallbackWeight)

	s := p.Shorts
	c.Require(s.MinDurationMs >= 0 && s.MinDurationMs <= s.IdealDurationMs && s.IdealDurationMs <= s.MaxDurationMs,
		"shorts", "durations must satisfy 0 <= min (%d) <= ideal (%d) <= max (%d)", s.MinDurationMs, s.IdealDurationMs, s.MaxDurationMs)
	c.Require(s.TargetCharsPerSec > 0, "shorts.target_chars_per_sec", "must be > 0, got %g", s.TargetCharsPerSec)
	c.NonNegative("shorts.target_count", s.TargetCount)

	c.UnitInterval("ocr.min_confidence", p.OCR.MinConfidence)
	c.UnitInterval("ocr.gate.noise_threshold", p.OCR.Gate.NoiseThreshold)
	c.NonNegative("ocr.gate.min_chars", p.OCR.Gate.MinChars)
	c.Require(p.OCR.Gate.MaxChars > 0 && p.OCR.Gate.MaxChars <= ocr.MaxTextChars,
		"ocr.gate.max_chars", "must be within [1, %d], got %d", ocr.MaxTextChars, p.OCR.Gate.MaxChars)

	c.Require(finite(p.Sampling.FPS) && p.Sampling.FPS > 0, "sampling.fps", "must be > 0, got %g", p.Sampling.FPS)
	c.Require(finite(p.Sampling.BoundaryWindowS) && p.Sampling.BoundaryWindowS >= 0, "sampling.boundary_window_s", "must be >= 0, got %g", p.Sampling.BoundaryWindowS)
	c.Require(finite(p.Export.FrameRate) && p.Export.FrameRate >= 1, "export.frame_rate", "must be >= 1, got %g", p.Export.FrameRate)
	return c.Err()
}

func checkDict(c *schema.Checker, field string, d speech.KeywordDict) {
	seen := map[string]bool{}
	for i, cat := range d {
		f := fmt.Sprintf("%s[%d]", field, i)
		c.Require(cat.Name != "", f+".name", "must not be empty")
		c.Require(!seen[cat.Name], f+".name", "duplicate category %q", cat.Name)
		seen[cat.Name] = true
		c.Require(len(cat.Keywords) > 0, f+".keywords", "must not be empty")
		for _, kw := range cat.Keywords {
			c.Require(kw != "", f+".keywords", "must not contain blank keywords")
		}
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
