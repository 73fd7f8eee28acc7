// Package ocr defines the OCR pipeline output contract and the gating
// cascade that turns raw OCR blocks into searchable scene text.
//
// Blocks are grouped by frame, frames by scene, and scenes make up the
// pipeline result for one video.
package ocr

import (
	"fmt"

	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

const (
	// MaxTextChars caps ocr_text_raw per scene.
	MaxTextChars = 10_000
	// MaxFramesPerScene caps keyframes per scene.
	MaxFramesPerScene = 50
	// MaxBlocksPerFrame caps text regions per keyframe.
	MaxBlocksPerFrame = 50
)

// Block is a single text region detected in a keyframe. BBox is the
// normalized [x1, y1, x2, y2] rectangle.
type Block struct {
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox"`
}

func (b Block) Validate() error {
	return b.check(schema.NewChecker("block"))
}

func (b Block) check(c *schema.Checker) error {
	c.UnitInterval("confidence", b.Confidence)
	if len(b.BBox) != 4 {
		c.Failf("bbox", "must have exactly 4 values, got %d", len(b.BBox))
	}
	for i, v := range b.BBox {
		c.UnitInterval(fmt.Sprintf("bbox[%d]", i), v)
	}
	return c.Err()
}

// FrameResult holds the OCR output for one keyframe.
type FrameResult struct {
	FrameTsMs        int      `json:"frame_ts_ms"`
	Blocks           []Block  `json:"blocks"`
	TextConcat       string   `json:"text_concat"`
	ProcessingTimeMs *float64 `json:"processing_time_ms,omitempty"`
}

func (f FrameResult) Validate() error {
	c := schema.NewChecker("frame")
	c.NonNegative("frame_ts_ms", f.FrameTsMs)
	if f.ProcessingTimeMs != nil {
		c.NonNegativeFloat("processing_time_ms", *f.ProcessingTimeMs)
	}
	if len(f.Blocks) > MaxBlocksPerFrame {
		c.Failf("blocks", "too many OCR blocks: %d > %d", len(f.Blocks), MaxBlocksPerFrame)
	}
	for i, b := range f.Blocks {
		c.Merge(b.check(schema.NewChecker(fmt.Sprintf("frame.blocks[%d]", i))))
	}
	return c.Err()
}

// SceneResult aggregates OCR output for one scene. OCRCharCount always
// mirrors the code-point length of OCRTextRaw; call Sync after changing the
// text.
type SceneResult struct {
	SceneID      string        `json:"scene_id"`
	Frames       []FrameResult `json:"frames"`
	OCRTextRaw   string        `json:"ocr_text_raw"`
	OCRCharCount int           `json:"ocr_char_count"`
}

// Sync re-derives OCRCharCount from OCRTextRaw and fills nil slices.
func (s *SceneResult) Sync() {
	s.OCRCharCount = schema.CharCount(s.OCRTextRaw)
	if s.Frames == nil {
		s.Frames = []FrameResult{}
	}
	for i := range s.Frames {
		if s.Frames[i].Blocks == nil {
			s.Frames[i].Blocks = []Block{}
		}
	}
}

func (s SceneResult) Validate() error {
	c := schema.NewChecker("ocr_scene")
	c.Require(schema.IsSceneID(s.SceneID), "scene_id",
		"must match '{video_id}_scene_{index}', got %q", s.SceneID)
	if len(s.Frames) > MaxFramesPerScene {
		c.Failf("frames", "too many OCR frames: %d > %d", len(s.Frames), MaxFramesPerScene)
	}
	c.MaxChars("ocr_text_raw", s.OCRTextRaw, MaxTextChars)
	c.NonNegative("ocr_char_count", s.OCRCharCount)
	for _, f := range s.Frames {
		c.Merge(f.Validate())
	}
	return c.Err()
}

// PipelineResult is the full OCR output for one video.
type PipelineResult struct {
	schema.VersionInfo
	VideoID              string         `json:"video_id"`
	Scenes               []SceneResult  `json:"scenes"`
	TotalFramesProcessed int            `json:"total_frames_processed"`
	ProcessingTimeS      float64        `json:"processing_time_s"`
	Status               string         `json:"status"`
	Error                *string        `json:"error"`
	Meta                 map[string]any `json:"meta"`
}

// NewPipelineResult returns a successful, empty result for videoID.
func NewPipelineResult(videoID string) PipelineResult {
	return PipelineResult{
		VersionInfo: schema.VersionInfo{SchemaVersion: schema.CurrentSchemaVersion},
		VideoID:     videoID,
		Scenes:      []SceneResult{},
		Status:      "success",
		Meta:        map[string]any{},
	}
}

func (p PipelineResult) Validate() error {
	c := schema.NewChecker("ocr_result")
	c.NotEmpty("video_id", p.VideoID)
	c.NonNegative("total_frames_processed", p.TotalFramesProcessed)
	c.NonNegativeFloat("processing_time_s", p.ProcessingTimeS)
	c.Merge(p.CheckSchemaVersion())
	for _, s := range p.Scenes {
		c.Merge(s.Validate())
	}
	return c.Err()
}

// SceneByID indexes the scene results by scene id. Later duplicates win.
func (p PipelineResult) SceneByID() map[string]SceneResult {
	out := make(map[string]SceneResult, len(p.Scenes))
	for _, s := range p.Scenes {
		out[s.SceneID] = s
	}
	return out
}

// ParsePipelineResult decodes an OCR pipeline output. Unknown fields are
// ignored; defaults are applied for absent ones and char counts re-derived.
func ParsePipelineResult(data []byte) (PipelineResult, error) {
	res := PipelineResult{
		VersionInfo: schema.VersionInfo{SchemaVersion: schema.CurrentSchemaVersion},
		Status:      "success",
	}
	if err := schema.Decode(data, &res, schema.Lenient); err != nil {
		return PipelineResult{}, fmt.Errorf("decode ocr result: %w", err)
	}
	if res.Scenes == nil {
		res.Scenes = []SceneResult{}
	}
	if res.Meta == nil {
		res.Meta = map[string]any{}
	}
	for i := range res.Scenes {
		res.Scenes[i].Sync()
	}
	if err := res.Validate(); err != nil {
		return PipelineResult{}, err
	}
	return res, nil
}
