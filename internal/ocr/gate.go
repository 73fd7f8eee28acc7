package ocr

import (
	"strings"
	"unicode"

	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

// Gate defaults.
const (
	DefaultMinConfidence  = 0.3
	DefaultMinChars       = 3
	DefaultMaxChars       = MaxTextChars
	DefaultNoiseThreshold = 0.5
)

// GateOptions parameterizes GateText.
type GateOptions struct {
	MinChars       int     `json:"min_chars" yaml:"min_chars" toml:"min_chars"`
	MaxChars       int     `json:"max_chars" yaml:"max_chars" toml:"max_chars"`
	NoiseThreshold float64 `json:"noise_threshold" yaml:"noise_threshold" toml:"noise_threshold"`
}

// DefaultGateOptions returns the production thresholds.
func DefaultGateOptions() GateOptions {
	return GateOptions{
		MinChars:       DefaultMinChars,
		MaxChars:       DefaultMaxChars,
		NoiseThreshold: DefaultNoiseThreshold,
	}
}

// FilterBlocksByConfidence keeps blocks with confidence >= minConf, in order.
func FilterBlocksByConfidence(blocks []Block, minConf float64) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Confidence >= minConf {
			out = append(out, b)
		}
	}
	return out
}

// ConcatBlocks joins trimmed, non-blank block texts with single spaces.
func ConcatBlocks(blocks []Block) string {
	texts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if t := strings.TrimSpace(b.Text); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, " ")
}

// IsNoiseText reports whether the share of useful characters in text falls
// below threshold. Blank text is noise.
func IsNoiseText(text string, threshold float64) bool {
	stripped := strings.TrimSpace(text)
	if stripped == "" {
		return true
	}
	var total, useful int
	for _, r := range stripped {
		total++
		if isUseful(r) {
			useful++
		}
	}
	return float64(useful)/float64(total) < threshold
}

// isUseful matches word characters plus Hangul syllables and compatibility
// jamo.
func isUseful(r rune) bool {
	switch {
	case r == '_':
		return true
	case unicode.IsLetter(r), unicode.IsNumber(r):
		return true
	case r >= 0x3131 && r <= 0x318E:
		return true
	case r >= 0xAC00 && r <= 0xD7A3:
		return true
	}
	return false
}

// GateText trims text and applies the length and noise gates, returning the
// clean text clamped to MaxChars or "" when a gate rejects it.
func GateText(text string, opts GateOptions) string {
	stripped := strings.TrimSpace(text)
	if schema.CharCount(stripped) < opts.MinChars {
		return ""
	}
	if IsNoiseText(stripped, opts.NoiseThreshold) {
		return ""
	}
	return schema.TruncateChars(stripped, opts.MaxChars)
}

// BuildSceneResult applies the confidence gate to every frame, fills each
// frame's TextConcat and produces the gated scene text from the frame texts
// in order.
func BuildSceneResult(sceneID string, frames []FrameResult, minConf float64, opts GateOptions) SceneResult {
	out := SceneResult{SceneID: sceneID, Frames: make([]FrameResult, 0, len(frames))}
	texts := make([]string, 0, len(frames))
	for _, f := range frames {
		kept := FilterBlocksByConfidence(f.Blocks, minConf)
		f.Blocks = kept
		f.TextConcat = ConcatBlocks(kept)
		if f.TextConcat != "" {
			texts = append(texts, f.TextConcat)
		}
		out.Frames = append(out.Frames, f)
	}
	out.OCRTextRaw = GateText(strings.Join(texts, " "), opts)
	out.Sync()
	return out
}
