package export

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestJSONRoundTrip(t *testing.T) {
	clip := Clip{
		ClipName:  "Intro",
		VideoID:   "vid",
		MediaPath: "/media/vid.mp4",
		MediaURL:  "https://cdn.heimdex.co/vid.mp4",
		StartMs:   1000,
		EndMs:     6000,
		SceneID:   "vid_scene_000",
		Markers:   []Marker{{Name: "cta", TimeMs: 2500, Note: "buy now"}},
	}

	tests := []struct {
		name  string
		value any
	}{
		{"marker", Marker{Name: "price", TimeMs: 0, Note: ""}},
		{"clip", clip},
		{"clip with empty markers", Clip{ClipName: "c", VideoID: "vid", EndMs: 10, Markers: []Marker{}}},
		{"clip with nil markers", Clip{ClipName: "c", VideoID: "vid", EndMs: 10}},
		{"request", Request{ProjectName: "Spring Live", Format: "fcpxml", FrameRate: 29.97, Clips: []Clip{clip}}},
		{"request to dir", Request{ProjectName: "p", Format: "edl", FrameRate: 25, OutputDir: "/tmp/out", Clips: []Clip{}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.value)
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}
			out := reflect.New(reflect.TypeOf(tc.value))
			if err := json.Unmarshal(data, out.Interface()); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}
			if got := out.Elem().Interface(); !reflect.DeepEqual(got, tc.value) {
				t.Fatalf("round trip = %+v, want %+v", got, tc.value)
			}
		})
	}
}
