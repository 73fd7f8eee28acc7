// Package ingest defines the scene ingestion request accepted by the search
// backend.
package ingest

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

const (
	MaxTranscriptChars = 50_000
	MaxOCRChars        = 10_000
	MaxCaptionChars    = 5_000
	MaxTitleChars      = 500
	MaxSourcePathChars = 1_000
)

// SourceType says where the original media lives.
type SourceType string

const (
	SourceGDrive        SourceType = "gdrive"
	SourceRemovableDisk SourceType = "removable_disk"
	SourceLocal         SourceType = "local"
)

// SourceTypes lists the accepted source types.
func SourceTypes() []SourceType {
	return []SourceType{SourceGDrive, SourceRemovableDisk, SourceLocal}
}

func (s SourceType) Valid() bool {
	switch s {
	case SourceGDrive, SourceRemovableDisk, SourceLocal:
		return true
	}
	return false
}

// SceneDocument is one scene in an ingestion request.
type SceneDocument struct {
	SceneID               string     `json:"scene_id"`
	Index                 int        `json:"index"`
	StartMs               int        `json:"start_ms"`
	EndMs                 int        `json:"end_ms"`
	KeyframeTimestampMs   int        `json:"keyframe_timestamp_ms"`
	TranscriptRaw         string     `json:"transcript_raw"`
	SpeechSegmentCount    int        `json:"speech_segment_count"`
	PeopleClusterIDs      []string   `json:"people_cluster_ids"`
	KeywordTags           []string   `json:"keyword_tags"`
	ProductTags           []string   `json:"product_tags"`
	ProductEntities       []string   `json:"product_entities"`
	OCRTextRaw            string     `json:"ocr_text_raw"`
	OCRCharCount          int        `json:"ocr_char_count"`
	SceneCaption          string     `json:"scene_caption"`
	SourceType            SourceType `json:"source_type"`
	RequiredDriveNickname *string    `json:"required_drive_nickname"`
	CaptureTime           *time.Time `json:"capture_time"`
}

// applyDefaults fills the fields that default to non-zero values.
func (d *SceneDocument) applyDefaults() {
	if d.SourceType == "" {
		d.SourceType = SourceGDrive
	}
	for _, p := range []*[]string{&d.PeopleClusterIDs, &d.KeywordTags, &d.ProductTags, &d.ProductEntities} {
		if *p == nil {
			*p = []string{}
		}
	}
}

func (d SceneDocument) Validate() error {
	return d.check(schema.NewChecker("scene"))
}

func (d SceneDocument) check(c *schema.Checker) error {
	c.Require(schema.IsSceneID(d.SceneID), "scene_id",
		"must match '{video_id}_scene_{index}' pattern, got %q", d.SceneID)
	c.Require(!schema.HasPathTraversal(d.SceneID), "scene_id", "must not contain path separators, NUL or '..'")
	c.NonNegative("index", d.Index)
	c.Range("start_ms", d.StartMs, "end_ms", d.EndMs)
	c.NonNegative("keyframe_timestamp_ms", d.KeyframeTimestampMs)
	c.MaxChars("transcript_raw", d.TranscriptRaw, MaxTranscriptChars)
	c.NonNegative("speech_segment_count", d.SpeechSegmentCount)
	c.MaxChars("ocr_text_raw", d.OCRTextRaw, MaxOCRChars)
	c.NonNegative("ocr_char_count", d.OCRCharCount)
	c.MaxChars("scene_caption", d.SceneCaption, MaxCaptionChars)
	c.Require(d.SourceType.Valid(), "source_type", "must be one of gdrive, removable_disk, local, got %q", d.SourceType)
	return c.Err()
}

// ScenesRequest is the body of a scene ingestion call.
type ScenesRequest struct {
	VideoID         string          `json:"video_id"`
	VideoTitle      string          `json:"video_title"`
	LibraryID       uuid.UUID       `json:"library_id"`
	PipelineVersion string          `json:"pipeline_version"`
	ModelVersion    string          `json:"model_version"`
	TotalDurationMs int             `json:"total_duration_ms"`
	SourcePath      *string         `json:"source_path"`
	Scenes          []SceneDocument `json:"scenes"`
}

func (r ScenesRequest) Validate() error {
	c := schema.NewChecker("ingest")
	c.NotEmpty("video_id", r.VideoID)
	c.Require(!schema.HasPathTraversal(r.VideoID), "video_id", "must not contain path separators, NUL or '..'")
	c.MaxChars("video_title", r.VideoTitle, MaxTitleChars)
	c.Require(r.LibraryID != uuid.Nil, "library_id", "must be a non-nil UUID")
	c.NonNegative("total_duration_ms", r.TotalDurationMs)
	if r.SourcePath != nil {
		c.MaxChars("source_path", *r.SourcePath, MaxSourcePathChars)
	}
	c.Require(r.Scenes != nil, "scenes", "is required")
	for i, s := range r.Scenes {
		c.Merge(s.check(schema.NewChecker(fmt.Sprintf("ingest.scenes[%d]", i))))
	}
	return c.Err()
}

// ParseScenesRequest decodes and validates an ingestion request. Unknown
// fields are rejected.
func ParseScenesRequest(r io.Reader) (ScenesRequest, error) {
	var req ScenesRequest
	if err := schema.DecodeReader(r, &req, schema.Strict); err != nil {
		return ScenesRequest{}, fmt.Errorf("decode ingest request: %w", err)
	}
	for i := range req.Scenes {
		req.Scenes[i].applyDefaults()
	}
	if err := req.Validate(); err != nil {
		return ScenesRequest{}, err
	}
	return req, nil
}
