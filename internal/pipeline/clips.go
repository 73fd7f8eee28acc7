package pipeline

import (
	"github.com/google/uuid"

	"github.com/heimdex/heimdex-media-contracts/internal/export"
	"github.com/heimdex/heimdex-media-contracts/internal/ingest"
	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

// markerNoteChars caps the transcript excerpt carried on a marker.
const markerNoteChars = 80

// SceneClips places every scene on the timeline in order. Each tagged
// segment starting inside a scene becomes a marker named after its top tag.
func SceneClips(res VideoResult) []export.Clip {
	clips := make([]export.Clip, 0, len(res.Scenes))
	for _, s := range res.Scenes {
		clip := export.Clip{
			ClipName:  s.SceneID,
			VideoID:   res.VideoID,
			MediaPath: res.VideoPath,
			StartMs:   s.StartMs,
			EndMs:     s.EndMs,
			SceneID:   s.SceneID,
		}
		for _, seg := range res.Segments {
			startMs := int(seg.Start * 1000)
			if len(seg.Tags) == 0 || startMs < s.StartMs || startMs >= s.EndMs {
				continue
			}
			clip.Markers = append(clip.Markers, export.Marker{
				Name:   seg.Tags[0],
				TimeMs: startMs,
				Note:   schema.TruncateChars(seg.Text, markerNoteChars),
			})
		}
		clips = append(clips, clip)
	}
	return clips
}

// CandidateClips places the shorts candidates on the timeline in rank order.
func CandidateClips(res VideoResult) []export.Clip {
	clips := make([]export.Clip, 0, len(res.Shorts))
	for _, c := range res.Shorts {
		clip := export.Clip{
			ClipName:  c.CandidateID,
			VideoID:   c.VideoID,
			MediaPath: res.VideoPath,
			StartMs:   c.StartMs,
			EndMs:     c.EndMs,
		}
		if len(c.SceneIDs) > 0 {
			clip.SceneID = c.SceneIDs[0]
		}
		clips = append(clips, clip)
	}
	return clips
}

// ToIngestRequest converts res into a scene ingestion request for libraryID.
// An empty source defaults to gdrive. The request is validated before it is
// returned.
func ToIngestRequest(res VideoResult, libraryID uuid.UUID, source ingest.SourceType) (ingest.ScenesRequest, error) {
	if source == "" {
		source = ingest.SourceGDrive
	}
	req := ingest.ScenesRequest{
		VideoID:         res.VideoID,
		LibraryID:       libraryID,
		PipelineVersion: res.PipelineVersion,
		ModelVersion:    res.ModelVersion,
		TotalDurationMs: res.TotalDurationMs,
		Scenes:          make([]ingest.SceneDocument, 0, len(res.Scenes)),
	}
	if res.VideoPath != "" {
		path := res.VideoPath
		req.SourcePath = &path
	}
	for _, s := range res.Scenes {
		req.Scenes = append(req.Scenes, ingest.SceneDocument{
			SceneID:             s.SceneID,
			Index:               s.Index,
			StartMs:             s.StartMs,
			EndMs:               s.EndMs,
			KeyframeTimestampMs: s.KeyframeTimestampMs,
			TranscriptRaw:       s.TranscriptRaw,
			SpeechSegmentCount:  s.SpeechSegmentCount,
			PeopleClusterIDs:    append([]string{}, s.PeopleClusterIDs...),
			KeywordTags:         append([]string{}, s.KeywordTags...),
			ProductTags:         append([]string{}, s.ProductTags...),
			ProductEntities:     append([]string{}, s.ProductEntities...),
			OCRTextRaw:          s.OCRTextRaw,
			OCRCharCount:        s.OCRCharCount,
			SceneCaption:        s.SceneCaption,
			SourceType:          source,
		})
	}
	if err := req.Validate(); err != nil {
		return ingest.ScenesRequest{}, err
	}
	return req, nil
}
