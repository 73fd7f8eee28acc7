// Package pipeline composes the contract packages into one pass over a
// video's pipeline outputs: scene boundaries, speech segments, optional OCR
// and face presence in; scene documents, ranked segments and shorts
// candidates out.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/heimdex/heimdex-media-contracts/internal/faces"
	"github.com/heimdex/heimdex-media-contracts/internal/logging"
	"github.com/heimdex/heimdex-media-contracts/internal/ocr"
	"github.com/heimdex/heimdex-media-contracts/internal/profile"
	"github.com/heimdex/heimdex-media-contracts/internal/scenes"
	"github.com/heimdex/heimdex-media-contracts/internal/schema"
	"github.com/heimdex/heimdex-media-contracts/internal/shorts"
	"github.com/heimdex/heimdex-media-contracts/internal/speech"
)

// UnknownVersion fills pipeline and model versions the input leaves blank.
const UnknownVersion = "unknown"

type Pipeline interface {
	Process(ctx context.Context, in VideoInput) (VideoResult, error)
}

// Processor is the Pipeline built from a profile. It holds no per-video
// state and is safe for concurrent use.
type Processor struct {
	logger        *slog.Logger
	tagger        *speech.Tagger
	productTagger *speech.Tagger
	ranker        *speech.Ranker
	scorer        shorts.Scorer
	gate          ocr.GateOptions
	shortsTarget  int
}

func NewProcessor(p profile.Profile, logger *slog.Logger) *Processor {
	return &Processor{
		logger:        logging.WithComponent(logger, "pipeline"),
		tagger:        p.Tagger(),
		productTagger: p.ProductTagger(),
		ranker:        p.Ranker(),
		scorer:        p.Scorer(),
		gate:          p.GateOptions(),
		shortsTarget:  p.Shorts.TargetCount,
	}
}

// sceneSegment remembers which input segment a keyword-tagged segment came
// from so its product tags can be found after assignment.
type sceneSegment struct {
	speech.TaggedSegment
	idx int
}

func (p *Processor) Process(ctx context.Context, in VideoInput) (VideoResult, error) {
	if err := ctx.Err(); err != nil {
		return VideoResult{}, err
	}
	if err := in.Validate(); err != nil {
		return VideoResult{}, err
	}
	started := time.Now()
	logger := logging.WithVideoID(p.logger, in.VideoID)

	tagged := p.tagger.Tag(in.Segments)
	productTagged := p.productTagger.Tag(in.Segments)
	ranked := p.ranker.Rank(tagged)

	refs := make([]sceneSegment, len(tagged))
	for i, seg := range tagged {
		refs[i] = sceneSegment{TaggedSegment: seg, idx: i}
	}
	assigned := scenes.AssignSegmentsToScenes(in.Scenes, refs)

	var ocrByScene map[string]ocr.SceneResult
	if in.OCR != nil {
		ocrByScene = in.OCR.SceneByID()
	}

	c := schema.NewChecker("video")
	docs := make([]scenes.Document, 0, len(in.Scenes))
	for _, b := range in.Scenes {
		segs := assigned[b.SceneID]
		products := make([]speech.TaggedSegment, len(segs))
		for i, s := range segs {
			products[i] = productTagged[s.idx]
		}

		doc := scenes.WithTranscript(scenes.NewDocument(in.VideoID, b), segs)
		doc.KeywordTags = scenes.AggregateSceneTags(segs)
		doc.ProductTags = scenes.AggregateSceneTags(products)
		doc.ProductEntities = p.productTagger.MatchedKeywords(doc.TranscriptRaw)
		if in.Faces != nil {
			doc.PeopleClusterIDs = faces.PresentIdentities(*in.Faces, b.SceneID, b.StartMs, b.EndMs)
		}
		if res, ok := ocrByScene[b.SceneID]; ok {
			doc = scenes.MergeOCRIntoSceneWith(doc, &res, p.gate)
		}
		c.Merge(doc.Validate())
		docs = append(docs, doc)
	}
	if err := c.Err(); err != nil {
		return VideoResult{}, err
	}

	target := p.shortsTarget
	if in.ShortsTarget != nil {
		target = *in.ShortsTarget
	}
	candidates, err := p.scorer.Select(docs, target)
	if err != nil {
		return VideoResult{}, fmt.Errorf("select shorts for %s: %w", in.VideoID, err)
	}

	elapsed := time.Since(started)
	res := VideoResult{
		DetectionResult: scenes.DetectionResult{
			VersionInfo:     schema.NewVersionInfo(orUnknown(in.PipelineVersion), orUnknown(in.ModelVersion)),
			VideoPath:       in.VideoPath,
			VideoID:         in.VideoID,
			TotalDurationMs: in.totalDurationMs(),
			Scenes:          docs,
			ProcessingTimeS: math.Round(elapsed.Seconds()*1000) / 1000,
			Status:          "success",
		},
		Segments: ranked,
		Shorts:   candidates,
	}

	logger.Debug("video processed",
		"scenes", len(docs),
		"segments", len(in.Segments),
		"shorts", len(candidates),
		"duration_ms", elapsed.Milliseconds(),
	)
	return res, nil
}

func orUnknown(v string) string {
	if v == "" {
		return UnknownVersion
	}
	return v
}
