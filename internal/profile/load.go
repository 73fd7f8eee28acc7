package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/heimdex/heimdex-media-contracts/internal/shorts"
	"github.com/heimdex/heimdex-media-contracts/internal/speech"
)

// overlay mirrors Profile with optional fields. Only what a file sets
// replaces the defaults; tag weights are merged key by key.
type overlay struct {
	Keywords        speech.KeywordDict `yaml:"keywords" toml:"keywords"`
	ProductKeywords speech.KeywordDict `yaml:"product_keywords" toml:"product_keywords"`
	MinTagScore     *float64           `yaml:"min_tag_score" toml:"min_tag_score"`
	TagWeights      map[string]float64 `yaml:"tag_weights" toml:"tag_weights"`
	FallbackWeight  *float64           `yaml:"fallback_weight" toml:"fallback_weight"`
	Shorts          struct {
		Weights           *shorts.Weights `yaml:"weights" toml:"weights"`
		HighValueTags     []string        `yaml:"high_value_tags" toml:"high_value_tags"`
		MinDurationMs     *int            `yaml:"min_duration_ms" toml:"min_duration_ms"`
		MaxDurationMs     *int            `yaml:"max_duration_ms" toml:"max_duration_ms"`
		IdealDurationMs   *int            `yaml:"ideal_duration_ms" toml:"ideal_duration_ms"`
		TargetCharsPerSec *float64        `yaml:"target_chars_per_sec" toml:"target_chars_per_sec"`
		TargetCount       *int            `yaml:"target_count" toml:"target_count"`
	} `yaml:"shorts" toml:"shorts"`
	OCR struct {
		MinConfidence  *float64 `yaml:"min_confidence" toml:"min_confidence"`
		MinChars       *int     `yaml:"min_chars" toml:"min_chars"`
		MaxChars       *int     `yaml:"max_chars" toml:"max_chars"`
		NoiseThreshold *float64 `yaml:"noise_threshold" toml:"noise_threshold"`
	} `yaml:"ocr" toml:"ocr"`
	Sampling struct {
		FPS             *float64 `yaml:"fps" toml:"fps"`
		BoundaryWindowS *float64 `yaml:"boundary_window_s" toml:"boundary_window_s"`
	} `yaml:"sampling" toml:"sampling"`
	Export struct {
		FrameRate *float64 `yaml:"frame_rate" toml:"frame_rate"`
	} `yaml:"export" toml:"export"`
}

func (o overlay) apply(p Profile) Profile {
	if o.Keywords != nil {
		p.Keywords = o.Keywords.Clone()
	}
	if o.ProductKeywords != nil {
		p.ProductKeywords = o.ProductKeywords.Clone()
	}
	setFloat(&p.MinTagScore, o.MinTagScore)
	if len(o.TagWeights) > 0 {
		merged := make(speech.TagWeights, len(p.TagWeights)+len(o.TagWeights))
		for k, v := range p.TagWeights {
			merged[k] = v
		}
		for k, v := range o.TagWeights {
			merged[k] = v
		}
		p.TagWeights = merged
	}
	setFloat(&p.FallbackWeight, o.FallbackWeight)

	if o.Shorts.Weights != nil {
		p.Shorts.Weights = *o.Shorts.Weights
	}
	if o.Shorts.HighValueTags != nil {
		p.Shorts.HighValueTags = append([]string(nil), o.Shorts.HighValueTags...)
	}
	setInt(&p.Shorts.MinDurationMs, o.Shorts.MinDurationMs)
	setInt(&p.Shorts.MaxDurationMs, o.Shorts.MaxDurationMs)
	setInt(&p.Shorts.IdealDurationMs, o.Shorts.IdealDurationMs)
	setFloat(&p.Shorts.TargetCharsPerSec, o.Shorts.TargetCharsPerSec)
	setInt(&p.Shorts.TargetCount, o.Shorts.TargetCount)

	setFloat(&p.OCR.MinConfidence, o.OCR.MinConfidence)
	setInt(&p.OCR.Gate.MinChars, o.OCR.MinChars)
	setInt(&p.OCR.Gate.MaxChars, o.OCR.MaxChars)
	setFloat(&p.OCR.Gate.NoiseThreshold, o.OCR.NoiseThreshold)

	setFloat(&p.Sampling.FPS, o.Sampling.FPS)
	setFloat(&p.Sampling.BoundaryWindowS, o.Sampling.BoundaryWindowS)
	setFloat(&p.Export.FrameRate, o.Export.FrameRate)
	return p
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Load reads a .yaml, .yml or .toml profile and applies it over Default.
// An empty path returns Default. Unknown keys are rejected.
func Load(path string) (Profile, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile %s: %w", filepath.Base(path), err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return Profile{}, fmt.Errorf("unsupported profile format %q: use .yaml, .yml or .toml", ext)
	}
}

func ParseYAML(data []byte) (Profile, error) {
	var o overlay
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("parse yaml profile: %w", err)
	}
	return finish(o)
}

func ParseTOML(data []byte) (Profile, error) {
	var o overlay
	md, err := toml.Decode(string(data), &o)
	if err != nil {
		return Profile{}, fmt.Errorf("parse toml profile: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Profile{}, fmt.Errorf("parse toml profile: unknown keys %s", strings.Join(keys, ", "))
	}
	return finish(o)
}

func finish(o overlay) (Profile, error) {
	p := o.apply(Default())
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}
