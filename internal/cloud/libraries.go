package cloud

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

// LibraryService resolves library names to the ids ingestion requests
// carry.
type LibraryService interface {
	GetOrCreate(ctx context.Context, name string) (*Library, error)
	List(ctx context.Context) ([]Library, error)
}

type Library struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Created bool      `json:"created"`
}

type HTTPLibraryService struct {
	client *HTTPClient
}

func (s *HTTPLibraryService) GetOrCreate(ctx context.Context, name string) (*Library, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, schema.InvalidArgument("library name must not be empty")
	}

	var lib Library
	if err := s.client.do(ctx, http.MethodPost, "/api/libraries", map[string]string{"name": name}, &lib); err != nil {
		return nil, err
	}
	if lib.ID == uuid.Nil {
		return nil, fmt.Errorf("library %q: backend returned a nil id", name)
	}
	return &lib, nil
}

func (s *HTTPLibraryService) List(ctx context.Context) ([]Library, error) {
	var wrapper struct {
		Libraries []Library `json:"libraries"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/api/libraries", nil, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Libraries, nil
}

type StubLibraryService struct {
	logger *slog.Logger
}

func (s *StubLibraryService) GetOrCreate(ctx context.Context, name string) (*Library, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, schema.InvalidArgument("library name must not be empty")
	}
	s.logger.Info("cloud stub: library get-or-create requested", "name", name)
	return &Library{ID: stubLibraryID(name), Name: name, Created: true}, nil
}

func (s *StubLibraryService) List(ctx context.Context) ([]Library, error) {
	s.logger.Info("cloud stub: library list requested")
	return nil, nil
}
