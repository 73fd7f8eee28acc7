// Package faces holds the face presence contract and the timestamp sampling
// used to pick frames for face detection.
package faces

import (
	"fmt"
	"sort"

	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

// Interval is a span in which an identity is visible.
type Interval struct {
	StartS     float64 `json:"start_s"`
	EndS       float64 `json:"end_s"`
	Confidence float64 `json:"confidence"`
}

// SceneSummary reports whether an identity appears in a scene. Present is
// nil when the detector could not decide.
type SceneSummary struct {
	SceneID    string  `json:"scene_id"`
	Present    *bool   `json:"present"`
	Confidence float64 `json:"confidence"`
}

type IdentityPresence struct {
	IdentityID   string         `json:"identity_id"`
	Intervals    []Interval     `json:"intervals"`
	SceneSummary []SceneSummary `json:"scene_summary"`
}

// PresenceResponse is the face presence pipeline output for one video.
type PresenceResponse struct {
	VideoID    string             `json:"video_id"`
	Identities []IdentityPresence `json:"identities"`
	Meta       map[string]any     `json:"meta"`
}

func (r PresenceResponse) Validate() error {
	c := schema.NewChecker("face_presence")
	c.NotEmpty("video_id", r.VideoID)
	for i, id := range r.Identities {
		c.Require(id.IdentityID != "", fmt.Sprintf("identities[%d].identity_id", i), "must not be empty")
		for j, iv := range id.Intervals {
			field := fmt.Sprintf("identities[%d].intervals[%d]", i, j)
			c.Require(iv.EndS >= iv.StartS, field, "end_s (%g) must be >= start_s (%g)", iv.EndS, iv.StartS)
		}
	}
	return c.Err()
}

// ParsePresenceResponse decodes a face presence output, ignoring unknown
// fields.
func ParsePresenceResponse(data []byte) (PresenceResponse, error) {
	var r PresenceResponse
	if err := schema.Decode(data, &r, schema.Lenient); err != nil {
		return PresenceResponse{}, fmt.Errorf("decode face presence: %w", err)
	}
	if r.Identities == nil {
		r.Identities = []IdentityPresence{}
	}
	if r.Meta == nil {
		r.Meta = map[string]any{}
	}
	if err := r.Validate(); err != nil {
		return PresenceResponse{}, err
	}
	return r, nil
}

// PresentIdentities lists, sorted, the identities seen in the scene
// [startMs, endMs). A definite scene summary decides; otherwise any interval
// overlapping the scene counts.
func PresentIdentities(r PresenceResponse, sceneID string, startMs, endMs int) []string {
	out := []string{}
	for _, id := range r.Identities {
		if identityInScene(id, sceneID, startMs, endMs) {
			out = append(out, id.IdentityID)
		}
	}
	sort.Strings(out)
	return out
}

func identityInScene(id IdentityPresence, sceneID string, startMs, endMs int) bool {
	for _, s := range id.SceneSummary {
		if s.SceneID == sceneID && s.Present != nil {
			return *s.Present
		}
	}
	for _, iv := range id.Intervals {
		ivStart := int(iv.StartS * 1000)
		ivEnd := int(iv.EndS * 1000)
		if min(ivEnd, endMs) > max(ivStart, startMs) {
			return true
		}
	}
	return false
}
