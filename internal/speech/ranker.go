package speech

import (
	"math"
	"sort"
)

// DefaultFallbackWeight applies to tags missing from the weight table.
const DefaultFallbackWeight = 0.1

// TagWeights maps a tag to its importance weight.
type TagWeights map[string]float64

// DefaultTagWeights ranks purchase-driving categories above logistics.
func DefaultTagWeights() TagWeights {
	return TagWeights{
		"cta":        1.0,
		"price":      0.9,
		"coupon":     0.85,
		"benefit":    0.8,
		"bundle":     0.7,
		"feature":    0.6,
		"comparison": 0.55,
		"tutorial":   0.5,
		"delivery":   0.4,
		"qna":        0.4,
	}
}

// Ranker orders tagged segments by importance.
type Ranker struct {
	weights  TagWeights
	fallback float64
}

func NewRanker(weights TagWeights, fallback float64) *Ranker {
	w := make(TagWeights, len(weights))
	for k, v := range weights {
		w[k] = v
	}
	return &Ranker{weights: w, fallback: fallback}
}

func NewDefaultRanker() *Ranker {
	return NewRanker(DefaultTagWeights(), DefaultFallbackWeight)
}

func (r *Ranker) weight(tag string) float64 {
	if w, ok := r.weights[tag]; ok {
		return w
	}
	return r.fallback
}

// Importance is the weighted mean of the segment's tag scores, clamped to
// [0, 1] and rounded to 4 decimals. Untagged segments score 0.
func (r *Ranker) Importance(seg TaggedSegment) float64 {
	var num, den float64
	for _, tag := range seg.Tags {
		w := r.weight(tag)
		num += w * seg.TagScores[tag]
		den += w
	}
	if den <= 0 {
		return 0
	}
	return round4(math.Min(1, math.Max(0, num/den)))
}

// Rank scores every segment, sorts descending by importance (input order on
// ties) and assigns ranks starting at 1.
func (r *Ranker) Rank(segments []TaggedSegment) []RankedSegment {
	out := make([]RankedSegment, len(segments))
	for i, seg := range segments {
		out[i] = seg.WithRank(0, r.Importance(seg))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ImportanceScore > out[j].ImportanceScore
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
