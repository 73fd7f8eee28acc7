package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/heimdex/heimdex-media-contracts/internal/pipeline"
	"github.com/heimdex/heimdex-media-contracts/internal/profile"
)

func testConfig() ServerConfig {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	prof := profile.Default()
	return ServerConfig{
		Pipeline:         pipeline.NewProcessor(prof, logger),
		Profile:          prof,
		BatchConcurrency: 2,
		ExportFrameRate:  30,
		Version:          "test",
		Logger:           logger,
		StartTime:        time.Now(),
	}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("json.Marshal error: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}
