package pipeline

import (
	"bytes"
	"fmt"
	"math"

	"github.com/heimdex/heimdex-media-contracts/internal/faces"
	"github.com/heimdex/heimdex-media-contracts/internal/ocr"
	"github.com/heimdex/heimdex-media-contracts/internal/scenes"
	"github.com/heimdex/heimdex-media-contracts/internal/schema"
	"github.com/heimdex/heimdex-media-contracts/internal/shorts"
	"github.com/heimdex/heimdex-media-contracts/internal/speech"
)

// VideoInput gathers one video's pipeline outputs.
type VideoInput struct {
	VideoID         string                  `json:"video_id"`
	VideoPath       string                  `json:"video_path"`
	TotalDurationMs int                     `json:"total_duration_ms"`
	PipelineVersion string                  `json:"pipeline_version"`
	ModelVersion    string                  `json:"model_version"`
	Scenes          []scenes.Boundary       `json:"scenes"`
	Segments        []speech.Segment        `json:"segments"`
	OCR             *ocr.PipelineResult     `json:"ocr,omitempty"`
	Faces           *faces.PresenceResponse `json:"faces,omitempty"`
	// ShortsTarget overrides the profile's candidate count when set.
	ShortsTarget *int `json:"shorts_target,omitempty"`
}

func (in VideoInput) Validate() error {
	c := schema.NewChecker("video")
	c.NotEmpty("video_id", in.VideoID)
	c.Require(!schema.HasPathTraversal(in.VideoID), "video_id", "must not contain path separators, NUL or '..'")
	c.NonNegative("total_duration_ms", in.TotalDurationMs)
	if in.ShortsTarget != nil {
		c.NonNegative("shorts_target", *in.ShortsTarget)
	}

	seen := make(map[string]bool, len(in.Scenes))
	for i, b := range in.Scenes {
		c.Require(!seen[b.SceneID], fmt.Sprintf("scenes[%d].scene_id", i), "duplicate scene id %q", b.SceneID)
		seen[b.SceneID] = true
		c.Merge(b.Validate())
	}
	for i, s := range in.Segments {
		f := fmt.Sprintf("segments[%d]", i)
		c.Require(finite(s.Start) && finite(s.End), f, "start and end must be finite")
		c.Require(s.Start >= 0, f+".start", "must be >= 0, got %g", s.Start)
		c.Require(s.End >= s.Start, f+".end", "must be >= start (%g), got %g", s.Start, s.End)
	}
	if in.OCR != nil {
		c.Require(in.OCR.VideoID == "" || in.OCR.VideoID == in.VideoID, "ocr.video_id",
			"must match video_id %q, got %q", in.VideoID, in.OCR.VideoID)
		// An embedded OCR result may omit schema_version.
		if in.OCR.SchemaVersion != "" {
			c.Merge(in.OCR.CheckSchemaVersion())
		}
		for _, s := range in.OCR.Scenes {
			c.Merge(s.Validate())
		}
	}
	if in.Faces != nil {
		c.Require(in.Faces.VideoID == "" || in.Faces.VideoID == in.VideoID, "faces.video_id",
			"must match video_id %q, got %q", in.VideoID, in.Faces.VideoID)
	}
	return c.Err()
}

// totalDurationMs falls back to the last scene end when no duration is given.
func (in VideoInput) totalDurationMs() int {
	if in.TotalDurationMs > 0 {
		return in.TotalDurationMs
	}
	total := 0
	for _, b := range in.Scenes {
		total = max(total, b.EndMs)
	}
	return total
}

// ParseVideoInput decodes a VideoInput, ignoring unknown fields as pipeline
// outputs do, and validates it.
func ParseVideoInput(data []byte) (VideoInput, error) {
	var in VideoInput
	if err := schema.DecodeReader(bytes.NewReader(data), &in, schema.Lenient); err != nil {
		return VideoInput{}, err
	}
	if in.OCR != nil {
		for i := range in.OCR.Scenes {
			in.OCR.Scenes[i].Sync()
		}
	}
	if err := in.Validate(); err != nil {
		return VideoInput{}, err
	}
	return in, nil
}

// VideoResult is the scene detection result plus the ranked segments and
// shorts candidates derived from it.
type VideoResult struct {
	scenes.DetectionResult
	Segments []speech.RankedSegment `json:"segments"`
	Shorts   []shorts.Candidate     `json:"shorts"`
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
