package faces

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

const presenceJSON = `{
	"video_id": "vid",
	"identities": [
		{
			"identity_id": "person_b",
			"intervals": [{"start_s": 12.0, "end_s": 14.5, "confidence": 0.9}],
			"scene_summary": []
		},
		{
			"identity_id": "person_a",
			"intervals": [{"start_s": 0.0, "end_s": 3.0, "confidence": 0.8}],
			"scene_summary": [
				{"scene_id": "vid_scene_001", "present": true, "confidence": 0.7},
				{"scene_id": "vid_scene_000", "present": false, "confidence": 0.6}
			]
		},
		{
			"identity_id": "person_c",
			"intervals": [],
			"scene_summary": [{"scene_id": "vid_scene_001", "present": null, "confidence": 0.1}]
		}
	],
	"meta": {"model": "insightface"},
	"extra": 1
}`

func TestParsePresenceResponse(t *testing.T) {
	r, err := ParsePresenceResponse([]byte(presenceJSON))
	require.NoError(t, err)
	require.Len(t, r.Identities, 3)
	assert.Nil(t, r.Identities[2].SceneSummary[0].Present)
	assert.True(t, *r.Identities[1].SceneSummary[0].Present)
	assert.Equal(t, "insightface", r.Meta["model"])

	_, err = ParsePresenceResponse([]byte(`{"video_id": ""}`))
	assert.ErrorIs(t, err, schema.ErrValidation)

	_, err = ParsePresenceResponse([]byte(`{"video_id": "v", "identities": [{"identity_id": "a", "intervals": [{"start_s": 2, "end_s": 1}]}]}`))
	assert.Error(t, err)
}

func TestPresentIdentities(t *testing.T) {
	r, err := ParsePresenceResponse([]byte(presenceJSON))
	require.NoError(t, err)

	// The summary says absent even though the interval overlaps.
	assert.Equal(t, []string{}, PresentIdentities(r, "vid_scene_000", 0, 5000))
	assert.Equal(t, []string{"person_a", "person_b"}, PresentIdentities(r, "vid_scene_001", 10_000, 20_000))
	assert.Equal(t, []string{}, PresentIdentities(r, "vid_scene_002", 20_000, 30_000))
	assert.Equal(t, []string{"person_b"}, PresentIdentities(r, "vid_scene_009", 14_000, 15_000))
	assert.Equal(t, []string{}, PresentIdentities(r, "vid_scene_009", 14_500, 15_000), "touching is not overlapping")
}
