package scenes

import "fmt"

// Segment is anything with a time span in seconds and text. The speech
// segment types, TimedText and MapSegment implement it.
type Segment interface {
	SegmentStart() float64
	SegmentEnd() float64
	SegmentText() string
}

// Tagged is a Segment that also carries category tags.
type Tagged interface {
	Segment
	SegmentTags() []string
}

// TimedText is a minimal Segment.
type TimedText struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

func (t TimedText) SegmentStart() float64 { return t.Start }
func (t TimedText) SegmentEnd() float64   { return t.End }
func (t TimedText) SegmentText() string   { return t.Text }

// MapSegment adapts a decoded JSON object with "start", "end" and optional
// "text" keys.
type MapSegment map[string]any

// NewMapSegment checks that m carries numeric start and end values.
func NewMapSegment(m map[string]any) (MapSegment, error) {
	for _, key := range []string{"start", "end"} {
		v, ok := m[key]
		if !ok {
			return nil, fmt.Errorf("segment missing %q", key)
		}
		if _, ok := toFloat(v); !ok {
			return nil, fmt.Errorf("segment %q is not a number: %v", key, v)
		}
	}
	return MapSegment(m), nil
}

func (m MapSegment) SegmentStart() float64 {
	v, _ := toFloat(m["start"])
	return v
}

func (m MapSegment) SegmentEnd() float64 {
	v, _ := toFloat(m["end"])
	return v
}

func (m MapSegment) SegmentText() string {
	s, _ := m["text"].(string)
	return s
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
