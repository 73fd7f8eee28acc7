// Package scenes defines the scene contracts and the pure transforms that
// fold speech, tag and OCR results into scene documents.
package scenes

import (
	"fmt"

	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

const (
	MaxTranscriptChars = 50_000
	MaxOCRChars        = 10_000
	MaxCaptionChars    = 5_000
)

// Boundary is one detected scene in a video.
type Boundary struct {
	SceneID             string  `json:"scene_id"`
	Index               int     `json:"index"`
	StartMs             int     `json:"start_ms"`
	EndMs               int     `json:"end_ms"`
	KeyframeTimestampMs int     `json:"keyframe_timestamp_ms"`
	KeyframePath        *string `json:"keyframe_path"`
}

func (b Boundary) DurationMs() int { return b.EndMs - b.StartMs }

func (b Boundary) Validate() error {
	c := schema.NewChecker("scene_boundary")
	checkIdentity(c, b.SceneID, b.Index, b.StartMs, b.EndMs, b.KeyframeTimestampMs)
	return c.Err()
}

func checkIdentity(c *schema.Checker, sceneID string, index, startMs, endMs, keyframeMs int) {
	c.Require(schema.IsPaddedSceneID(sceneID), "scene_id",
		"must match '{video_id}_scene_{index:03d}', got %q", sceneID)
	c.NonNegative("index", index)
	c.Range("start_ms", startMs, "end_ms", endMs)
	c.NonNegative("keyframe_timestamp_ms", keyframeMs)
}

// Document is a scene ready for indexing. It is replaced as a whole value;
// every transform in this package returns a new Document with its own
// slices.
type Document struct {
	SceneID             string   `json:"scene_id"`
	VideoID             string   `json:"video_id"`
	Index               int      `json:"index"`
	StartMs             int      `json:"start_ms"`
	EndMs               int      `json:"end_ms"`
	KeyframeTimestampMs int      `json:"keyframe_timestamp_ms"`
	TranscriptRaw       string   `json:"transcript_raw"`
	TranscriptNorm      string   `json:"transcript_norm"`
	TranscriptCharCount int      `json:"transcript_char_count"`
	SpeechSegmentCount  int      `json:"speech_segment_count"`
	PeopleClusterIDs    []string `json:"people_cluster_ids"`
	ThumbnailPath       *string  `json:"thumbnail_path"`
	ThumbnailURL        *string  `json:"thumbnail_url"`
	KeywordTags         []string `json:"keyword_tags"`
	ProductTags         []string `json:"product_tags"`
	ProductEntities     []string `json:"product_entities"`
	OCRTextRaw          string   `json:"ocr_text_raw"`
	OCRCharCount        int      `json:"ocr_char_count"`
	SceneCaption        string   `json:"scene_caption,omitempty"`
}

// NewDocument starts a document from a boundary with every list empty.
func NewDocument(videoID string, b Boundary) Document {
	d := Document{
		SceneID:             b.SceneID,
		VideoID:             videoID,
		Index:               b.Index,
		StartMs:             b.StartMs,
		EndMs:               b.EndMs,
		KeyframeTimestampMs: b.KeyframeTimestampMs,
	}
	d.Normalize()
	return d
}

func (d Document) DurationMs() int { return d.EndMs - d.StartMs }

// Boundary returns the identity and timing part of d.
func (d Document) Boundary() Boundary {
	return Boundary{
		SceneID:             d.SceneID,
		Index:               d.Index,
		StartMs:             d.StartMs,
		EndMs:               d.EndMs,
		KeyframeTimestampMs: d.KeyframeTimestampMs,
	}
}

// Normalize replaces nil lists with empty ones.
func (d *Document) Normalize() {
	if d.PeopleClusterIDs == nil {
		d.PeopleClusterIDs = []string{}
	}
	if d.KeywordTags == nil {
		d.KeywordTags = []string{}
	}
	if d.ProductTags == nil {
		d.ProductTags = []string{}
	}
	if d.ProductEntities == nil {
		d.ProductEntities = []string{}
	}
}

// Clone returns a copy of d that shares no slices or pointers with it.
func (d Document) Clone() Document {
	out := d
	out.PeopleClusterIDs = cloneStrings(d.PeopleClusterIDs)
	out.KeywordTags = cloneStrings(d.KeywordTags)
	out.ProductTags = cloneStrings(d.ProductTags)
	out.ProductEntities = cloneStrings(d.ProductEntities)
	out.ThumbnailPath = clonePtr(d.ThumbnailPath)
	out.ThumbnailURL = clonePtr(d.ThumbnailURL)
	return out
}

func (d Document) Validate() error {
	c := schema.NewChecker("scene")
	checkIdentity(c, d.SceneID, d.Index, d.StartMs, d.EndMs, d.KeyframeTimestampMs)
	c.NotEmpty("video_id", d.VideoID)
	c.MaxChars("transcript_raw", d.TranscriptRaw, MaxTranscriptChars)
	c.NonNegative("transcript_char_count", d.TranscriptCharCount)
	c.NonNegative("speech_segment_count", d.SpeechSegmentCount)
	c.MaxChars("ocr_text_raw", d.OCRTextRaw, MaxOCRChars)
	c.NonNegative("ocr_char_count", d.OCRCharCount)
	c.MaxChars("scene_caption", d.SceneCaption, MaxCaptionChars)
	return c.Err()
}

// DetectionResult is the scene detection pipeline output for one video.
type DetectionResult struct {
	schema.VersionInfo
	VideoPath       string     `json:"video_path"`
	VideoID         string     `json:"video_id"`
	TotalDurationMs int        `json:"total_duration_ms"`
	Scenes          []Document `json:"scenes"`
	ProcessingTimeS float64    `json:"processing_time_s"`
	Status          string     `json:"status"`
	Error           *string    `json:"error"`
}

func (r DetectionResult) Validate() error {
	c := schema.NewChecker("scene_result")
	c.NotEmpty("video_id", r.VideoID)
	c.NonNegative("total_duration_ms", r.TotalDurationMs)
	c.NonNegativeFloat("processing_time_s", r.ProcessingTimeS)
	c.Merge(r.CheckSchemaVersion())
	for _, s := range r.Scenes {
		c.Merge(s.Validate())
	}
	return c.Err()
}

// Boundaries returns the scene boundaries in result order.
func (r DetectionResult) Boundaries() []Boundary {
	out := make([]Boundary, len(r.Scenes))
	for i, s := range r.Scenes {
		out[i] = s.Boundary()
	}
	return out
}

// ParseDetectionResult decodes a scene detection output, ignoring unknown
// fields. The version contract must be complete.
func ParseDetectionResult(data []byte) (DetectionResult, error) {
	res := DetectionResult{
		VersionInfo: schema.VersionInfo{SchemaVersion: schema.CurrentSchemaVersion},
		Status:      "success",
	}
	if err := schema.Decode(data, &res, schema.Lenient); err != nil {
		return DetectionResult{}, fmt.Errorf("decode scene result: %w", err)
	}
	if err := res.CheckComplete(); err != nil {
		return DetectionResult{}, err
	}
	if res.Scenes == nil {
		res.Scenes = []Document{}
	}
	for i := range res.Scenes {
		res.Scenes[i].Normalize()
	}
	if err := res.Validate(); err != nil {
		return DetectionResult{}, err
	}
	return res, nil
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string{}, s...)
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
