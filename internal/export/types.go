// Package export renders clip lists as timeline interchange documents for
// non-linear editors: CMX3600 EDL and FCPXML 1.9.
package export

import (
	"fmt"
	"strings"

	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

// Marker is a named point in a clip's source time.
type Marker struct {
	Name   string `json:"name"`
	TimeMs int    `json:"time_ms"`
	Note   string `json:"note"`
}

// Clip is one source range placed on the export timeline. MediaURL takes
// precedence over MediaPath as the media locator.
type Clip struct {
	ClipName  string   `json:"clip_name"`
	VideoID   string   `json:"video_id"`
	MediaPath string   `json:"media_path"`
	MediaURL  string   `json:"media_url"`
	StartMs   int      `json:"start_ms"`
	EndMs     int      `json:"end_ms"`
	SceneID   string   `json:"scene_id"`
	Markers   []Marker `json:"markers"`
}

func (c Clip) DurationMs() int { return c.EndMs - c.StartMs }

// Locator returns the media reference written into FCPXML assets.
func (c Clip) Locator() string {
	if c.MediaURL != "" {
		return c.MediaURL
	}
	return "file://" + c.MediaPath
}

func (c Clip) Validate() error {
	ch := schema.NewChecker("clip")
	ch.Range("start_ms", c.StartMs, "end_ms", c.EndMs)
	return ch.Err()
}

// Format names an export document type.
type Format string

const (
	FormatEDL    Format = "edl"
	FormatFCPXML Format = "fcpxml"
)

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatEDL, FormatFCPXML:
		return f, nil
	}
	return "", schema.InvalidArgument("format must be edl or fcpxml, got %q", s)
}

// Extension is the file extension for documents of format f.
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType is the MIME type served for documents of format f.
func (f Format) ContentType() string {
	if f == FormatFCPXML {
		return "application/xml; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Request is an export job as accepted by the HTTP and CLI surfaces. With
// OutputDir set the document is written there instead of returned.
type Request struct {
	ProjectName string  `json:"project_name"`
	Format      string  `json:"format"`
	FrameRate   float64 `json:"frame_rate"`
	OutputDir   string  `json:"output_dir,omitempty"`
	Clips       []Clip  `json:"clips"`
}

// Render produces the document for format f.
func Render(f Format, clips []Clip, title string, frameRate float64) (string, error) {
	switch f {
	case FormatEDL:
		return GenerateEDL(clips, title, frameRate)
	case FormatFCPXML:
		return GenerateFCPXML(clips, title, frameRate)
	}
	return "", schema.InvalidArgument("unknown export format %q", string(f))
}

func checkInputs(clips []Clip, frameRate float64) error {
	if len(clips) == 0 {
		return schema.InvalidArgument("clips must not be empty")
	}
	if !(frameRate > 0) || roundHalfEven(frameRate) < 1 {
		return schema.InvalidArgument("frame rate must round to at least 1 fps, got %g", frameRate)
	}
	for i, c := range clips {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("clip %d: %w", i, err)
		}
	}
	return nil
}
