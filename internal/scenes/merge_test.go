package scenes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heimdex/heimdex-media-contracts/internal/ocr"
	"github.com/heimdex/heimdex-media-contracts/internal/speech"
)

func boundaries() []Boundary {
	return []Boundary{
		{SceneID: "v_scene_000", Index: 0, StartMs: 0, EndMs: 5000},
		{SceneID: "v_scene_001", Index: 1, StartMs: 5000, EndMs: 10000},
		{SceneID: "v_scene_002", Index: 2, StartMs: 10000, EndMs: 15000},
	}
}

func texts[S Segment](segs []S) []string {
	out := []string{}
	for _, s := range segs {
		out = append(out, s.SegmentText())
	}
	return out
}

func TestAssignSegmentsToScenes(t *testing.T) {
	segs := []TimedText{
		{Start: 6, End: 7, Text: "b"},
		{Start: 1, End: 2, Text: "a"},
		{Start: 4, End: 8, Text: "spans"},
		{Start: 5.5, End: 6, Text: "early"},
	}
	got := AssignSegmentsToScenes(boundaries(), segs)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"a"}, texts(got["v_scene_000"]))
	assert.Equal(t, []string{"spans", "early", "b"}, texts(got["v_scene_001"]))
	assert.NotNil(t, got["v_scene_002"])
	assert.Empty(t, got["v_scene_002"])
}

func TestAssignTieGoesToFirstScene(t *testing.T) {
	got := AssignSegmentsToScenes(boundaries(), []TimedText{{Start: 4, End: 6, Text: "tie"}})
	assert.Equal(t, []string{"tie"}, texts(got["v_scene_000"]))
	assert.Empty(t, got["v_scene_001"])
}

func TestAssignDropsNonOverlapping(t *testing.T) {
	segs := []TimedText{
		{Start: 20, End: 25, Text: "after"},
		{Start: 5, End: 5, Text: "instant"},
		{Start: 4.9999, End: 5.0001, Text: "truncated"},
	}
	got := AssignSegmentsToScenes(boundaries(), segs)
	total := 0
	for _, s := range got {
		total += len(s)
	}
	// 4.9999 -> 4999, 5.0001 -> 5000: one millisecond inside the first scene.
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"truncated"}, texts(got["v_scene_000"]))
}

func TestAssignEachSegmentAtMostOnce(t *testing.T) {
	segs := []TimedText{}
	for i := 0; i < 30; i++ {
		segs = append(segs, TimedText{Start: float64(i) * 0.6, End: float64(i)*0.6 + 1.3, Text: "s"})
	}
	got := AssignSegmentsToScenes(boundaries(), segs)
	total := 0
	for _, s := range got {
		total += len(s)
	}
	assert.LessOrEqual(t, total, len(segs))
}

func TestAssignNoScenes(t *testing.T) {
	got := AssignSegmentsToScenes(nil, []TimedText{{Start: 0, End: 1}})
	assert.Empty(t, got)
}

func TestAssignMapSegments(t *testing.T) {
	seg, err := NewMapSegment(map[string]any{"start": 1.0, "end": 2.0, "text": "dict"})
	require.NoError(t, err)
	noText, err := NewMapSegment(map[string]any{"start": 11.0, "end": 12.0})
	require.NoError(t, err)

	got := AssignSegmentsToScenes(boundaries(), []MapSegment{seg, noText})
	assert.Equal(t, []string{"dict"}, texts(got["v_scene_000"]))
	assert.Equal(t, []string{""}, texts(got["v_scene_002"]))

	_, err = NewMapSegment(map[string]any{"start": "x", "end": 1.0})
	assert.Error(t, err)
	_, err = NewMapSegment(map[string]any{"end": 1.0})
	assert.Error(t, err)
}

func TestAssignSpeechSegments(t *testing.T) {
	tagged := speech.NewDefaultTagger().Tag([]speech.Segment{
		{Start: 11, End: 12, Text: "지금 구매"},
		{Start: 0.5, End: 1, Text: "할인"},
	})
	got := AssignSegmentsToScenes(boundaries(), tagged)
	require.Len(t, got["v_scene_002"], 1)
	assert.Equal(t, []string{"cta"}, AggregateSceneTags(got["v_scene_002"]))
}

func TestAggregateTranscript(t *testing.T) {
	segs := []TimedText{{Text: "  안녕하세요 "}, {Text: ""}, {Text: "   "}, {Text: "오늘은"}}
	assert.Equal(t, "안녕하세요 오늘은", AggregateTranscript(segs))
	assert.Equal(t, "", AggregateTranscript([]TimedText{}))
	assert.Equal(t, "", AggregateTranscript([]TimedText{{Text: " "}}))
}

func TestAggregateSceneTags(t *testing.T) {
	segs := []speech.TaggedSegment{
		speech.Segment{}.WithTags([]string{"price", "cta"}, nil),
		speech.Segment{}.WithTags([]string{"cta", "benefit"}, nil),
		speech.Segment{}.WithTags(nil, nil),
	}
	assert.Equal(t, []string{"benefit", "cta", "price"}, AggregateSceneTags(segs))
	assert.Equal(t, []string{}, AggregateSceneTags([]speech.TaggedSegment{}))
}

func TestNormalizeTranscript(t *testing.T) {
	assert.Equal(t, "hello world 123", NormalizeTranscript("  Hello\t\tＷＯＲＬＤ  １２３ "))
	assert.Equal(t, "", NormalizeTranscript("   "))
}

func TestWithTranscript(t *testing.T) {
	doc := NewDocument("v", boundaries()[0])
	out := WithTranscript(doc, []TimedText{{Text: "수분 크림"}, {Text: "Good"}})
	assert.Equal(t, "수분 크림 Good", out.TranscriptRaw)
	assert.Equal(t, "수분 크림 good", out.TranscriptNorm)
	assert.Equal(t, 10, out.TranscriptCharCount)
	assert.Equal(t, 2, out.SpeechSegmentCount)
	assert.Equal(t, "", doc.TranscriptRaw)
}

func TestMergeOCRIntoScene(t *testing.T) {
	doc := NewDocument("v", boundaries()[1])
	doc.TranscriptRaw = "keep me"
	doc.KeywordTags = []string{"cta"}

	t.Run("nil result copies", func(t *testing.T) {
		doc := doc
		doc.OCRTextRaw = "existing"
		doc.OCRCharCount = 8
		out := MergeOCRIntoScene(doc, nil)
		assert.Equal(t, doc, out)
		out.KeywordTags[0] = "changed"
		assert.Equal(t, "cta", doc.KeywordTags[0])
	})

	t.Run("gated text", func(t *testing.T) {
		res := &ocr.SceneResult{SceneID: "v_scene_001", OCRTextRaw: "  ₩39,900 수분크림  "}
		out := MergeOCRIntoScene(doc, res)
		assert.Equal(t, "₩39,900 수분크림", out.OCRTextRaw)
		assert.Equal(t, 12, out.OCRCharCount)
		assert.Equal(t, "keep me", out.TranscriptRaw)
		assert.Equal(t, doc.KeywordTags, out.KeywordTags)
		assert.Equal(t, "", doc.OCRTextRaw)
	})

	t.Run("noise rejected", func(t *testing.T) {
		out := MergeOCRIntoScene(doc, &ocr.SceneResult{OCRTextRaw: "---===***!!!"})
		assert.Equal(t, "", out.OCRTextRaw)
		assert.Equal(t, 0, out.OCRCharCount)
	})

	t.Run("idempotent", func(t *testing.T) {
		res := &ocr.SceneResult{OCRTextRaw: strings.Repeat("가나다 ", 4000)}
		once := MergeOCRIntoScene(doc, res)
		twice := MergeOCRIntoScene(once, res)
		assert.Equal(t, once, twice)
		assert.Equal(t, MaxOCRChars, once.OCRCharCount)
	})
}
