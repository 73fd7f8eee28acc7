package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heimdex/heimdex-media-contracts/internal/faces"
	"github.com/heimdex/heimdex-media-contracts/internal/ingest"
	"github.com/heimdex/heimdex-media-contracts/internal/ocr"
	"github.com/heimdex/heimdex-media-contracts/internal/pipeline"
	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(CORSAllowlist())

	r.Get("/health", healthHandler(cfg))

	r.Route("/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.AuthToken, cfg.Logger))

		r.Post("/videos/process", processVideoHandler(cfg))
		r.Post("/videos/batch", processBatchHandler(cfg))
		r.Post("/ocr/gate", ocrGateHandler(cfg))
		r.Post("/faces/sample", sampleHandler(cfg))
		r.Post("/shorts/select", selectShortsHandler(cfg))
		r.Post("/export/{format}", exportHandler(cfg))
		r.Post("/ingest/validate", ingestValidateHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:        "ok",
			Version:       cfg.Version,
			SchemaVersion: schema.CurrentSchemaVersion,
			UptimeS:       int64(time.Since(cfg.StartTime).Seconds()),
		})
	}
}

func processVideoHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in pipeline.VideoInput
		if !decodeBody(w, r, &in, schema.Lenient) {
			return
		}
		res, err := cfg.Pipeline.Process(r.Context(), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, res)
	}
}

func processBatchHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BatchRequest
		if !decodeBody(w, r, &req, schema.Lenient) {
			return
		}
		if len(req.Videos) == 0 {
			WriteError(w, http.StatusBadRequest, "videos must not be empty", "BAD_REQUEST")
			return
		}
		results, err := pipeline.ProcessBatch(r.Context(), cfg.Pipeline, req.Videos, cfg.BatchConcurrency)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, BatchResponse{Results: results})
	}
}

func ocrGateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GateRequest
		if !decodeBody(w, r, &req, schema.Lenient) {
			return
		}
		minConf := cfg.Profile.OCR.MinConfidence
		if req.MinConfidence != nil {
			minConf = *req.MinConfidence
		}
		if minConf < 0 || minConf > 1 {
			WriteError(w, http.StatusBadRequest, "min_confidence must be within [0, 1]", "BAD_REQUEST")
			return
		}
		for _, f := range req.Frames {
			if err := f.Validate(); err != nil {
				writeDomainError(w, err)
				return
			}
		}
		res := ocr.BuildSceneResult(req.SceneID, req.Frames, minConf, cfg.Profile.GateOptions())
		if err := res.Validate(); err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, res)
	}
}

func sampleHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SampleRequest
		if !decodeBody(w, r, &req, schema.Lenient) {
			return
		}
		fps := cfg.Profile.Sampling.FPS
		if req.FPS != nil {
			fps = *req.FPS
		}
		window := cfg.Profile.Sampling.BoundaryWindowS
		if req.WindowS != nil {
			window = *req.WindowS
		}
		ts, err := faces.SampleTimestamps(req.DurationS, fps, req.BoundariesS, window)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, SampleResponse{Timestamps: ts, Count: len(ts)})
	}
}

func selectShortsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectRequest
		if !decodeBody(w, r, &req, schema.Lenient) {
			return
		}
		for i := range req.Scenes {
			req.Scenes[i].Normalize()
			if err := req.Scenes[i].Validate(); err != nil {
				writeDomainError(w, err)
				return
			}
		}
		target := cfg.Profile.Shorts.TargetCount
		if req.Target != nil {
			target = *req.Target
		}
		candidates, err := cfg.Profile.Scorer().Select(req.Scenes, target)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, SelectResponse{Candidates: candidates})
	}
}

func ingestValidateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := ingest.ParseScenesRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, IngestValidateResponse{
			Status:     "ok",
			VideoID:    req.VideoID,
			SceneCount: len(req.Scenes),
		})
	}
}
