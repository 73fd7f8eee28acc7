package shorts

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/heimdex/heimdex-media-contracts/internal/scenes"
	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

const (
	MinDurationMs     = 30_000
	MaxDurationMs     = 60_000
	IdealDurationMs   = 45_000
	TargetCharsPerSec = 4.0
	DefaultTarget     = 15
	SnippetChars      = 200
)

// Weights scales the five sub-scores.
type Weights struct {
	KeywordDensity     float64 `json:"keyword_density" yaml:"keyword_density" toml:"keyword_density"`
	FacePresence       float64 `json:"face_presence" yaml:"face_presence" toml:"face_presence"`
	TranscriptRichness float64 `json:"transcript_richness" yaml:"transcript_richness" toml:"transcript_richness"`
	TagDiversity       float64 `json:"tag_diversity" yaml:"tag_diversity" toml:"tag_diversity"`
	DurationFitness    float64 `json:"duration_fitness" yaml:"duration_fitness" toml:"duration_fitness"`
}

func DefaultWeights() Weights {
	return Weights{
		KeywordDensity:     0.30,
		FacePresence:       0.20,
		TranscriptRichness: 0.15,
		TagDiversity:       0.15,
		DurationFitness:    0.20,
	}
}

// DefaultHighValueTags are the tags that signal purchase intent.
func DefaultHighValueTags() []string {
	return []string{"cta", "price", "benefit", "coupon"}
}

// Breakdown holds the unweighted sub-scores of one scene, each in [0, 1].
type Breakdown struct {
	KeywordDensity     float64 `json:"keyword_density"`
	FacePresence       float64 `json:"face_presence"`
	TranscriptRichness float64 `json:"transcript_richness"`
	TagDiversity       float64 `json:"tag_diversity"`
	DurationFitness    float64 `json:"duration_fitness"`
}

// Scorer scores scenes and selects candidates. The zero value is not
// useful; start from NewScorer.
type Scorer struct {
	Weights           Weights
	HighValueTags     []string
	MinDurationMs     int
	MaxDurationMs     int
	IdealDurationMs   int
	TargetCharsPerSec float64
}

func NewScorer() Scorer {
	return Scorer{
		Weights:           DefaultWeights(),
		HighValueTags:     DefaultHighValueTags(),
		MinDurationMs:     MinDurationMs,
		MaxDurationMs:     MaxDurationMs,
		IdealDurationMs:   IdealDurationMs,
		TargetCharsPerSec: TargetCharsPerSec,
	}
}

// Check rejects parameter combinations the formulas cannot handle.
func (s Scorer) Check() error {
	if s.MinDurationMs < 0 || s.MaxDurationMs < s.MinDurationMs {
		return schema.InvalidArgument("duration bounds must satisfy 0 <= min (%d) <= max (%d)", s.MinDurationMs, s.MaxDurationMs)
	}
	if s.TargetCharsPerSec <= 0 {
		return schema.InvalidArgument("target chars per second must be > 0, got %g", s.TargetCharsPerSec)
	}
	return nil
}

// Breakdown computes the sub-scores for scene.
func (s Scorer) Breakdown(scene scenes.Document) Breakdown {
	durationMs := scene.DurationMs()
	durationS := math.Max(float64(durationMs)/1000, 0.001)

	highValue := make(map[string]struct{}, len(s.HighValueTags))
	for _, t := range s.HighValueTags {
		highValue[t] = struct{}{}
	}
	hits := 0
	for _, t := range scene.KeywordTags {
		if _, ok := highValue[t]; ok {
			hits++
		}
	}

	var b Breakdown
	b.KeywordDensity = math.Min(1, float64(hits)/3)
	if len(scene.PeopleClusterIDs) > 0 {
		b.FacePresence = 1
	}
	b.TranscriptRichness = math.Min(1, float64(scene.TranscriptCharCount)/durationS/s.TargetCharsPerSec)

	all := map[string]struct{}{}
	for _, t := range scene.KeywordTags {
		all[t] = struct{}{}
	}
	for _, t := range scene.ProductTags {
		all[t] = struct{}{}
	}
	b.TagDiversity = math.Min(1, float64(len(all))/5)
	b.DurationFitness = s.fitness(durationMs)
	return b
}

func (s Scorer) fitness(durationMs int) float64 {
	d := float64(durationMs)
	lo, hi := float64(s.MinDurationMs), float64(s.MaxDurationMs)
	switch {
	case d < lo:
		return math.Max(0, 1-(lo-d)/lo)
	case d > hi:
		return math.Max(0, 1-(d-hi)/hi)
	case hi == lo:
		return 1
	default:
		return 1 - 0.5*math.Abs(d-float64(s.IdealDurationMs))/(hi-lo)
	}
}

// Total combines a breakdown with the scorer's weights, clamped to [0, 1]
// and rounded to 4 decimals.
func (s Scorer) Total(b Breakdown) float64 {
	w := s.Weights
	total := w.KeywordDensity*b.KeywordDensity +
		w.FacePresence*b.FacePresence +
		w.TranscriptRichness*b.TranscriptRichness +
		w.TagDiversity*b.TagDiversity +
		w.DurationFitness*b.DurationFitness
	return math.Round(math.Min(1, math.Max(0, total))*1e4) / 1e4
}

// Score rates scene in [0, 1].
func (s Scorer) Score(scene scenes.Document) float64 {
	return s.Total(s.Breakdown(scene))
}

// Select keeps scenes within the duration bounds, scores them, and returns
// up to target candidates ordered by descending score. Equal scores keep
// input order.
func (s Scorer) Select(docs []scenes.Document, target int) ([]Candidate, error) {
	if target < 0 {
		return nil, schema.InvalidArgument("target count must be >= 0, got %d", target)
	}
	if err := s.Check(); err != nil {
		return nil, err
	}

	type scored struct {
		doc   scenes.Document
		b     Breakdown
		score float64
	}
	pool := make([]scored, 0, len(docs))
	for _, d := range docs {
		if dur := d.DurationMs(); dur < s.MinDurationMs || dur > s.MaxDurationMs {
			continue
		}
		b := s.Breakdown(d)
		pool = append(pool, scored{doc: d, b: b, score: s.Total(b)})
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].score > pool[j].score })
	if len(pool) > target {
		pool = pool[:target]
	}

	out := make([]Candidate, 0, len(pool))
	for i, p := range pool {
		d := p.doc.Clone()
		out = append(out, Candidate{
			CandidateID:       fmt.Sprintf("%s_shorts_%03d", d.VideoID, i),
			VideoID:           d.VideoID,
			SceneIDs:          []string{d.SceneID},
			StartMs:           d.StartMs,
			EndMs:             d.EndMs,
			Reason:            reason(p.b),
			Score:             p.score,
			Tags:              d.KeywordTags,
			ProductRefs:       d.ProductTags,
			PeopleRefs:        d.PeopleClusterIDs,
			TranscriptSnippet: schema.TruncateChars(d.TranscriptRaw, SnippetChars),
		})
	}
	return out, nil
}

// reason names the signals that contributed to a score.
func reason(b Breakdown) string {
	parts := []string{}
	if b.KeywordDensity > 0 {
		parts = append(parts, fmt.Sprintf("high-value tags %.2f", b.KeywordDensity))
	}
	if b.FacePresence > 0 {
		parts = append(parts, "face present")
	}
	if b.TranscriptRichness > 0 {
		parts = append(parts, fmt.Sprintf("speech density %.2f", b.TranscriptRichness))
	}
	if b.TagDiversity > 0 {
		parts = append(parts, fmt.Sprintf("tag diversity %.2f", b.TagDiversity))
	}
	parts = append(parts, fmt.Sprintf("duration fit %.2f", b.DurationFitness))
	return strings.Join(parts, "; ")
}
