package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// StubPlaybackStorage is an in-memory playback storage used when object
// storage is disabled in configuration and in tests. URLs it returns are
// deterministic and not fetchable.
type StubPlaybackStorage struct {
	mu      sync.RWMutex
	objects map[string]struct{}
}

// NewStubPlaybackStorage creates an empty stub
func NewStubPlaybackStorage() *StubPlaybackStorage {
	return &StubPlaybackStorage{
		objects: make(map[string]struct{}),
	}
}

// AddObject registers a recording path so ObjectExists reports it
func (s *StubPlaybackStorage) AddObject(playbackPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[playbackPath] = struct{}{}
}

// GeneratePlaybackURL returns a deterministic fake URL
func (s *StubPlaybackStorage) GeneratePlaybackURL(
	_ context.Context,
	playbackPath string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if playbackPath == "" {
		return "", time.Time{}, errors.New("playback path is required")
	}
	if expiresIn <= 0 {
		expiresIn = time.Hour
	}
	url := fmt.Sprintf("https://storage.invalid/playback/%s", playbackPath)
	return url, time.Now().Add(expiresIn), nil
}

// ObjectExists reports whether AddObject registered the path
func (s *StubPlaybackStorage) ObjectExists(_ context.Context, playbackPath string) (bool, error) {
	if playbackPath == "" {
		return false, errors.New("playback path is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[playbackPath]
	return ok, nil
}
