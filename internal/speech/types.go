// Package speech holds the speech-segment contracts and the keyword tagger
// and importance ranker that annotate them.
package speech

import (
	"encoding/json"
	"fmt"
)

// Segment is one STT segment. Times are seconds from the start of the video.
type Segment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

func (s Segment) Duration() float64 { return s.End - s.Start }

func (s Segment) SegmentStart() float64 { return s.Start }
func (s Segment) SegmentEnd() float64   { return s.End }
func (s Segment) SegmentText() string   { return s.Text }

// WithTags builds the tagged stage of s. The maps and slices are owned by
// the returned value.
func (s Segment) WithTags(tags []string, scores map[string]float64) TaggedSegment {
	if tags == nil {
		tags = []string{}
	}
	if scores == nil {
		scores = map[string]float64{}
	}
	return TaggedSegment{Segment: s, Tags: tags, TagScores: scores}
}

// TaggedSegment is a Segment annotated with category tags. Tags are ordered
// by descending score; TagScores holds every category that matched at all.
type TaggedSegment struct {
	Segment
	Tags      []string           `json:"tags"`
	TagScores map[string]float64 `json:"tag_scores"`
}

// SegmentTags exposes the tags for tag aggregation.
func (s TaggedSegment) SegmentTags() []string { return s.Tags }

func (s TaggedSegment) WithRank(rank int, importance float64) RankedSegment {
	return RankedSegment{TaggedSegment: s, Rank: rank, ImportanceScore: importance}
}

// RankedSegment is a TaggedSegment with a 1-indexed rank.
type RankedSegment struct {
	TaggedSegment
	Rank            int     `json:"rank"`
	ImportanceScore float64 `json:"importance_score"`
}

// PipelineResult is the full speech pipeline output for one video.
type PipelineResult struct {
	VideoPath      string          `json:"video_path"`
	Segments       []RankedSegment `json:"segments"`
	TotalDuration  float64         `json:"total_duration"`
	ProcessingTime float64         `json:"processing_time"`
	Status         string          `json:"status"`
	Error          *string         `json:"error"`
}

func NewPipelineResult(videoPath string) PipelineResult {
	return PipelineResult{VideoPath: videoPath, Segments: []RankedSegment{}, Status: "success"}
}

// JSON renders the result indented, keeping non-ASCII text unescaped.
func (r PipelineResult) JSON() (string, error) {
	if r.Segments == nil {
		r.Segments = []RankedSegment{}
	}
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal speech result: %w", err)
	}
	return string(out), nil
}
