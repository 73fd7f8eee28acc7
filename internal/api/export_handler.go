package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/heimdex/heimdex-media-contracts/internal/export"
	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

// exportHandler renders an EDL or FCPXML timeline. The document is returned
// as the response body, or written to output_dir when one is given.
func exportHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := export.ParseFormat(chi.URLParam(r, "format"))
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
			return
		}

		var req export.Request
		if !decodeBody(w, r, &req, schema.Lenient) {
			return
		}
		if req.Format != "" && req.Format != string(format) {
			WriteError(w, http.StatusBadRequest, "format in body does not match the route", "BAD_REQUEST")
			return
		}

		frameRate := req.FrameRate
		if frameRate == 0 {
			frameRate = cfg.ExportFrameRate
		}
		projectName := export.ProjectName(req.ProjectName)

		doc, err := export.Render(format, export.SanitizeClips(req.Clips), projectName, frameRate)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		if req.OutputDir == "" {
			w.Header().Set("Content-Type", format.ContentType())
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(projectName, format)))
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(doc))
			return
		}

		if err := export.ValidateOutputDir(req.OutputDir); err != nil {
			writeDomainError(w, err)
			return
		}
		outputPath := filepath.Join(req.OutputDir, export.FileName(projectName, format))
		if err := os.WriteFile(outputPath, []byte(doc), 0o644); err != nil {
			cfg.Logger.Error("export write failed", "error", err, "format", string(format))
			WriteError(w, http.StatusInternalServerError, "failed to write export file", "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusOK, ExportResponse{
			Status:     "ok",
			Format:     string(format),
			OutputPath: outputPath,
			ClipCount:  len(req.Clips),
		})
	}
}
