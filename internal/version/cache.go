package version

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// cacheTTL bounds how long a successful check result is reused before we
// ask GitHub again.
const cacheTTL = 24 * time.Hour

// userCacheDir is a var so tests can redirect cache writes.
var userCacheDir = os.UserCacheDir

// CacheEntry is the persisted result of the last successful version check.
type CacheEntry struct {
	LatestVersion  string    `json:"latest_version"`
	CurrentVersion string    `json:"current_version"`
	CheckedAt      time.Time `json:"checked_at"`
	HasUpdate      bool      `json:"has_update"`
}

func cacheFile() (string, error) {
	dir, err := userCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "margin", "version-check.json"), nil
}

// LoadCache reads the cached check result. A missing or corrupt file is an
// error; callers treat any error as a cache miss.
func LoadCache() (*CacheEntry, error) {
	path, err := cacheFile()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SaveCache persists the check result, creating the cache directory if needed.
func SaveCache(entry *CacheEntry) error {
	path, err := cacheFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// IsCacheValid reports whether the entry is fresh enough to reuse: checked
// within cacheTTL against the same running version.
func IsCacheValid(entry *CacheEntry, currentVersion string) bool {
	if entry == nil {
		return false
	}
	if entry.CurrentVersion != currentVersion {
		return false
	}
	return time.Since(entry.CheckedAt) < cacheTTL
}
