package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneIDPatterns(t *testing.T) {
	tests := []struct {
		id     string
		loose  bool
		padded bool
	}{
		{"vid_scene_0", true, false},
		{"vid_scene_001", true, true},
		{"my_video_scene_1234", true, true},
		{"_scene_001", false, false},
		{"vid_scene_", false, false},
		{"vid_scene_01a", false, false},
		{"vid-scene-001", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.loose, IsSceneID(tt.id))
			assert.Equal(t, tt.padded, IsPaddedSceneID(tt.id))
		})
	}
}

func TestSceneID(t *testing.T) {
	assert.Equal(t, "abc_scene_007", SceneID("abc", 7))
	assert.Equal(t, "abc_scene_1200", SceneID("abc", 1200))
	assert.True(t, IsPaddedSceneID(SceneID("abc", 0)))
}

func TestHasPathTraversal(t *testing.T) {
	for _, id := range []string{"../etc", "a/b", `a\b`, "a\x00b", "a..b"} {
		assert.True(t, HasPathTraversal(id), id)
	}
	for _, id := range []string{"vid_scene_001", "video.mp4", "a.b.c"} {
		assert.False(t, HasPathTraversal(id), id)
	}
}

func TestTruncateChars(t *testing.T) {
	assert.Equal(t, "수분", TruncateChars("수분크림", 2))
	assert.Equal(t, "abc", TruncateChars("abc", 10))
	assert.Equal(t, "", TruncateChars("abc", -1))
	assert.Equal(t, 4, CharCount("수분크림"))
}

func TestChecker(t *testing.T) {
	c := NewChecker("scene")
	c.NonNegative("index", -1)
	c.Range("start_ms", 100, "end_ms", 50)
	c.MaxChars("text", "가나다", 2)
	c.UnitInterval("confidence", 1.5)

	err := c.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "scene.index")
	assert.Contains(t, err.Error(), "scene.end_ms")
	assert.Contains(t, err.Error(), "scene.text")
	assert.Contains(t, err.Error(), "scene.confidence")

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "scene.index", fe.Field)
}

func TestCheckerNoErrors(t *testing.T) {
	c := NewChecker("")
	c.Range("start_ms", 0, "end_ms", 0)
	c.MaxChars("text", "abc", 3)
	assert.NoError(t, c.Err())
}

func TestInvalidArgument(t *testing.T) {
	err := InvalidArgument("fps must be > 0, got %g", 0.0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "fps must be > 0")
}

func TestVersionInfo(t *testing.T) {
	v := NewVersionInfo("0.3.0", "pyscenedetect-0.6")
	assert.True(t, v.RequiredFieldsPresent())
	assert.NoError(t, v.CheckComplete())
	assert.NoError(t, v.CheckSchemaVersion())

	partial := VersionInfo{SchemaVersion: "1.0"}
	assert.False(t, partial.RequiredFieldsPresent())
	assert.Equal(t, []string{"pipeline_version", "model_version"}, partial.MissingFields())
	err := partial.CheckComplete()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline_version, model_version")

	assert.NoError(t, VersionInfo{SchemaVersion: "1.3"}.CheckSchemaVersion())
	assert.ErrorIs(t, VersionInfo{SchemaVersion: "2.0"}.CheckSchemaVersion(), ErrValidation)
	assert.ErrorIs(t, VersionInfo{}.CheckSchemaVersion(), ErrValidation)
}

func TestDecodePolicy(t *testing.T) {
	type doc struct {
		Name string `json:"name"`
	}
	data := []byte(`{"name":"a","extra":1}`)

	var lenient doc
	require.NoError(t, Decode(data, &lenient, Lenient))
	assert.Equal(t, "a", lenient.Name)

	var strict doc
	err := Decode(data, &strict, Strict)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var trailing doc
	assert.Error(t, Decode([]byte(`{"name":"a"} {"name":"b"}`), &trailing, Lenient))
	assert.NoError(t, Decode([]byte("{\"name\":\"a\"}\n"), &trailing, Strict))
}
