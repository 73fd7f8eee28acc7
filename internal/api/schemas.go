package api

import (
	"github.com/heimdex/heimdex-media-contracts/internal/ocr"
	"github.com/heimdex/heimdex-media-contracts/internal/pipeline"
	"github.com/heimdex/heimdex-media-contracts/internal/scenes"
	"github.com/heimdex/heimdex-media-contracts/internal/shorts"
)

type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	SchemaVersion string `json:"schema_version"`
	UptimeS       int64  `json:"uptime_s"`
}

type ErrorResponse struct {
	Error   string               `json:"error"`
	Code    string               `json:"code"`
	Details []FieldErrorResponse `json:"details,omitempty"`
}

type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type BatchRequest struct {
	Videos []pipeline.VideoInput `json:"videos"`
}

type BatchResponse struct {
	Results []pipeline.VideoResult `json:"results"`
}

// GateRequest carries raw OCR frames for one scene. MinConfidence
// overrides the profile's block confidence threshold.
type GateRequest struct {
	SceneID       string            `json:"scene_id"`
	Frames        []ocr.FrameResult `json:"frames"`
	MinConfidence *float64          `json:"min_confidence,omitempty"`
}

type SampleRequest struct {
	DurationS   float64   `json:"duration_s"`
	FPS         *float64  `json:"fps,omitempty"`
	BoundariesS []float64 `json:"boundaries_s"`
	WindowS     *float64  `json:"window_s,omitempty"`
}

type SampleResponse struct {
	Timestamps []float64 `json:"timestamps"`
	Count      int       `json:"count"`
}

type SelectRequest struct {
	Scenes []scenes.Document `json:"scenes"`
	Target *int              `json:"target,omitempty"`
}

type SelectResponse struct {
	Candidates []shorts.Candidate `json:"candidates"`
}

// ExportResponse answers an export written to an output directory.
type ExportResponse struct {
	Status     string `json:"status"`
	Format     string `json:"format"`
	OutputPath string `json:"output_path"`
	ClipCount  int    `json:"clip_count"`
}

type IngestValidateResponse struct {
	Status     string `json:"status"`
	VideoID    string `json:"video_id"`
	SceneCount int    `json:"scene_count"`
}
