package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heimdex/heimdex-media-contracts/internal/ingest"
	"github.com/heimdex/heimdex-media-contracts/internal/logging"
)

const (
	tenantDomain     = ".app.heimdex.local"
	errorBodyLimit   = 4096
	successBodyLimit = 1 << 16
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cloud %s %s failed: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsRetryable reports whether the request may succeed if sent again.
// Client errors (4xx other than 429) are permanent.
func (e *StatusError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// IsRetryable reports whether err came from a retryable status or a
// network failure. Cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.IsRetryable()
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// HTTPClient talks to the backend. The org slug, when set, selects the
// tenant through the Host header.
type HTTPClient struct {
	baseURL    string
	token      string
	orgSlug    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPClient(baseURL, token, orgSlug string, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		orgSlug: orgSlug,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logging.WithComponent(logger, "cloud"),
	}
}

func (c *HTTPClient) Libraries() LibraryService {
	return &HTTPLibraryService{client: c}
}

// UploadScenes validates req and posts it to /api/ingest/scenes.
func (c *HTTPClient) UploadScenes(ctx context.Context, req ingest.ScenesRequest) (*IngestResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c.logger.Info("uploading scenes",
		"video_id", req.VideoID,
		"library_id", req.LibraryID,
		"scene_count", len(req.Scenes),
	)

	var result IngestResult
	if err := c.do(ctx, http.MethodPost, "/api/ingest/scenes", req, &result); err != nil {
		return nil, err
	}

	c.logger.Info("scene upload succeeded",
		"video_id", result.VideoID,
		"indexed_count", result.IndexedCount,
		"skipped_count", result.SkippedCount,
	)
	return &result, nil
}

// do sends one JSON request and decodes a 2xx body into out.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s body: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Heimdex-Request-Id", uuid.NewString())
	if c.orgSlug != "" {
		req.Host = c.orgSlug + tenantDomain
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, successBodyLimit)).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
