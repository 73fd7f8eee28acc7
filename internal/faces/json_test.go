package faces

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip encodes v and decodes it into a fresh value of the same type.
func roundTrip(t *testing.T, v any) any {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	out := reflect.New(reflect.TypeOf(v))
	require.NoError(t, json.Unmarshal(data, out.Interface()))
	return out.Elem().Interface()
}

func TestPresenceJSONRoundTrip(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name  string
		value any
	}{
		{"interval", Interval{StartS: 12, EndS: 14.5, Confidence: 0.9}},
		{"summary present", SceneSummary{SceneID: "vid_scene_000", Present: &yes, Confidence: 0.8}},
		{"summary absent", SceneSummary{SceneID: "vid_scene_001", Present: &no}},
		{"summary unknown", SceneSummary{SceneID: "vid_scene_002"}},
		{"response", PresenceResponse{
			VideoID: "vid",
			Identities: []IdentityPresence{
				{IdentityID: "id_a", Intervals: []Interval{{StartS: 1, EndS: 3, Confidence: 0.9}}, SceneSummary: []SceneSummary{}},
				{IdentityID: "id_b", SceneSummary: []SceneSummary{{SceneID: "vid_scene_000", Present: &yes}, {SceneID: "vid_scene_001"}}},
			},
			Meta: map[string]any{"model": "arcface", "threshold": 0.4},
		}},
		{"empty response", PresenceResponse{VideoID: "vid", Identities: []IdentityPresence{}, Meta: map[string]any{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.value, roundTrip(t, tt.value))
		})
	}
}

func TestSceneSummaryUnknownStaysNull(t *testing.T) {
	data, err := json.Marshal(SceneSummary{SceneID: "vid_scene_000"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"present":null`)
}
