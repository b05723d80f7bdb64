package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PhotoStore provides file-based storage for journal photos, one file per
// entry and capture timestamp.
type PhotoStore struct {
	basePath string
}

// NewPhotoStore creates a new PhotoStore and ensures the base directory exists.
func NewPhotoStore(basePath string) (*PhotoStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory %s: %w", basePath, err)
	}
	return &PhotoStore{basePath: basePath}, nil
}

// sanitizeTimestamp makes the timestamp safe for filenames.
func sanitizeTimestamp(ts string) string {
	return strings.ReplaceAll(ts, ":", "-")
}

// path returns the full path for a given entry ID and capture timestamp.
func (s *PhotoStore) path(entryID, capturedAt string) string {
	filename := fmt.Sprintf("%s_%s.jpg", entryID, sanitizeTimestamp(capturedAt))
	return filepath.Join(s.basePath, filename)
}

// Save stores the photo bytes for an entry and returns the stored path.
func (s *PhotoStore) Save(entryID, capturedAt string, data []byte) (string, error) {
	filePath := s.path(entryID, capturedAt)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write photo file: %w", err)
	}
	return filePath, nil
}

// Load retrieves the photo bytes for an entry and capture timestamp.
func (s *PhotoStore) Load(entryID, capturedAt string) ([]byte, error) {
	data, err := os.ReadFile(s.path(entryID, capturedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to read photo file: %w", err)
	}
	return data, nil
}

// Exists checks if a photo for the given entry and timestamp is stored.
func (s *PhotoStore) Exists(entryID, capturedAt string) bool {
	_, err := os.Stat(s.path(entryID, capturedAt))
	return !os.IsNotExist(err)
}

// RemoveStaleVersions removes all stored photos for an entry. Called
// before saving a replacement so only the latest capture remains.
func (s *PhotoStore) RemoveStaleVersions(entryID string) error {
	pattern := filepath.Join(s.basePath, fmt.Sprintf("%s_*.jpg", entryID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to glob stale photos: %w", err)
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("failed to remove stale photo %s: %w", match, err)
		}
	}
	return nil
}
