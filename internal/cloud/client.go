// Package cloud pushes scene ingestion requests to the heimdex search
// backend.
package cloud

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heimdex/heimdex-media-contracts/internal/ingest"
)

type Client interface {
	UploadScenes(ctx context.Context, req ingest.ScenesRequest) (*IngestResult, error)
	Libraries() LibraryService
}

// IngestResult is the backend's answer to a scene ingestion call.
type IngestResult struct {
	IndexedCount int    `json:"indexed_count"`
	VideoID      string `json:"video_id"`
	SkippedCount int    `json:"skipped_count"`
}

// New returns an HTTPClient when baseURL and token are both set, and a
// StubClient otherwise.
func New(baseURL, token, orgSlug string, logger *slog.Logger) Client {
	if baseURL == "" || token == "" {
		return NewStubClient(logger)
	}
	return NewHTTPClient(baseURL, token, orgSlug, logger)
}

// StubClient validates and logs requests without sending them.
type StubClient struct {
	logger    *slog.Logger
	libraries *StubLibraryService
}

func NewStubClient(logger *slog.Logger) *StubClient {
	return &StubClient{
		logger:    logger,
		libraries: &StubLibraryService{logger: logger},
	}
}

func (c *StubClient) UploadScenes(ctx context.Context, req ingest.ScenesRequest) (*IngestResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c.logger.Info("cloud stub: scene upload requested",
		"video_id", req.VideoID,
		"library_id", req.LibraryID,
		"scene_count", len(req.Scenes),
	)
	return &IngestResult{IndexedCount: len(req.Scenes), VideoID: req.VideoID}, nil
}

func (c *StubClient) Libraries() LibraryService {
	return c.libraries
}

// stubLibraryID derives a stable id from a library name so repeated stub
// runs agree with each other.
func stubLibraryID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("heimdex:library:"+name))
}
