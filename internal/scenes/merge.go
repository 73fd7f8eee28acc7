package scenes

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/heimdex/heimdex-media-contracts/internal/ocr"
	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

// AssignSegmentsToScenes gives each segment to the scene it overlaps most.
// Segment times are converted to milliseconds by truncation. Ties go to the
// scene listed first, segments overlapping no scene are dropped, and every
// scene id is present in the result. Each scene's segments are sorted by
// start time, stably.
func AssignSegmentsToScenes[S Segment](scenes []Boundary, segments []S) map[string][]S {
	result := make(map[string][]S, len(scenes))
	for _, sc := range scenes {
		result[sc.SceneID] = []S{}
	}

	for _, seg := range segments {
		startMs := int(seg.SegmentStart() * 1000)
		endMs := int(seg.SegmentEnd() * 1000)

		best := -1
		bestOverlap := 0
		for i, sc := range scenes {
			overlap := min(endMs, sc.EndMs) - max(startMs, sc.StartMs)
			if overlap > bestOverlap {
				bestOverlap = overlap
				best = i
			}
		}
		if best >= 0 {
			id := scenes[best].SceneID
			result[id] = append(result[id], seg)
		}
	}

	for _, segs := range result {
		sort.SliceStable(segs, func(i, j int) bool {
			return segs[i].SegmentStart() < segs[j].SegmentStart()
		})
	}
	return result
}

// AggregateTranscript joins the trimmed, non-blank segment texts with single
// spaces in the order given.
func AggregateTranscript[S Segment](segments []S) string {
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if t := strings.TrimSpace(seg.SegmentText()); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, " ")
}

// AggregateSceneTags returns the sorted, deduplicated union of the segments'
// tags.
func AggregateSceneTags[S Tagged](segments []S) []string {
	seen := map[string]struct{}{}
	for _, seg := range segments {
		for _, tag := range seg.SegmentTags() {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// NormalizeTranscript produces the search form of a transcript: NFKC
// normalized, lower-cased, with whitespace runs collapsed to one space.
func NormalizeTranscript(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(norm.NFKC.String(text))), " ")
}

// WithTranscript returns a copy of d carrying the aggregated transcript of
// segments and the derived counts.
func WithTranscript[S Segment](d Document, segments []S) Document {
	out := d.Clone()
	out.TranscriptRaw = schema.TruncateChars(AggregateTranscript(segments), MaxTranscriptChars)
	out.TranscriptNorm = NormalizeTranscript(out.TranscriptRaw)
	out.TranscriptCharCount = schema.CharCount(out.TranscriptRaw)
	out.SpeechSegmentCount = len(segments)
	return out
}

// MergeOCRIntoScene returns a copy of scene with the gated OCR text. A nil
// result leaves the OCR fields untouched. The transcript is never modified.
func MergeOCRIntoScene(scene Document, res *ocr.SceneResult) Document {
	return MergeOCRIntoSceneWith(scene, res, ocr.DefaultGateOptions())
}

// MergeOCRIntoSceneWith is MergeOCRIntoScene with explicit gate options.
func MergeOCRIntoSceneWith(scene Document, res *ocr.SceneResult, opts ocr.GateOptions) Document {
	out := scene.Clone()
	if res == nil {
		return out
	}
	gated := ocr.GateText(res.OCRTextRaw, opts)
	out.OCRTextRaw = gated
	out.OCRCharCount = schema.CharCount(gated)
	return out
}
