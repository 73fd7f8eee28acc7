// Package shorts scores scene documents for short-form potential and selects
// the best of them as shorts candidates.
package shorts

import (
	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

// Candidate is a clip proposed for short-form generation. It is derived
// entirely from scene documents.
type Candidate struct {
	CandidateID       string   `json:"candidate_id"`
	VideoID           string   `json:"video_id"`
	SceneIDs          []string `json:"scene_ids"`
	StartMs           int      `json:"start_ms"`
	EndMs             int      `json:"end_ms"`
	TitleSuggestion   string   `json:"title_suggestion"`
	Reason            string   `json:"reason"`
	Score             float64  `json:"score"`
	Tags              []string `json:"tags"`
	ProductRefs       []string `json:"product_refs"`
	PeopleRefs        []string `json:"people_refs"`
	TranscriptSnippet string   `json:"transcript_snippet"`
}

func (c Candidate) DurationMs() int { return c.EndMs - c.StartMs }

func (c Candidate) Validate() error {
	ch := schema.NewChecker("shorts_candidate")
	ch.NotEmpty("candidate_id", c.CandidateID)
	ch.NotEmpty("video_id", c.VideoID)
	ch.Require(len(c.SceneIDs) > 0, "scene_ids", "must contain at least one scene id")
	if c.EndMs < c.StartMs {
		ch.Failf("end_ms", "must be >= start_ms (%d), got %d", c.StartMs, c.EndMs)
	}
	return ch.Err()
}
