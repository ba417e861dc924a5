package storage

import (
	"context"
	"sync"

	"github.com/storefront/backend/internal/application/media"
)

// DefaultLocalBaseURL is used by the stub when no base URL is configured
const DefaultLocalBaseURL = "http://localhost:8080/media"

var _ media.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage keeps uploads in memory.
// It backs the media endpoints when object storage is disabled.
type StubObjectStorage struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]StoredObject
}

// StoredObject is an upload held by the stub
type StoredObject struct {
	Data        []byte
	ContentType string
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = DefaultLocalBaseURL
	}
	return &StubObjectStorage{
		BaseURL: baseURL,
		objects: make(map[string]StoredObject),
	}
}

// Upload keeps a copy of data under storageKey
func (s *StubObjectStorage) Upload(_ context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return ErrEmptyKey
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = StoredObject{Data: buf, ContentType: contentType}
	return nil
}

// DeleteObject drops the object; missing keys are ignored
func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// Object returns a stored upload
func (s *StubObjectStorage) Object(storageKey string) (StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[storageKey]
	return obj, ok
}

// PublicURL returns a deterministic URL under BaseURL
func (s *StubObjectStorage) PublicURL(storageKey string) string {
	return joinURL(s.BaseURL, storageKey)
}
