// Package cache provides localized filesystem-based caching for transient catalog responses.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/filesystem"
	"github.com/vidfeed-cli/vidfeed/key"
	"github.com/vidfeed-cli/vidfeed/where"
)

// TTL returns the configured lifetime of a cached catalog response.
// A non-positive lifetime disables caching entirely.
func TTL() time.Duration {
	return time.Duration(viper.GetInt(key.FeedCacheLifetime)) * time.Minute
}

// GenerateKey generates a deterministic SHA-256 hash from an endpoint and limit pair for use as a cache identifier.
func GenerateKey(endpoint string, limit int) string {
	sanitized := strings.ToLower(strings.ReplaceAll(endpoint, " ", ""))
	hash := sha256.Sum256([]byte(sanitized + "|" + strconv.Itoa(limit)))
	return hex.EncodeToString(hash[:])
}

// Read attempts to retrieve and deserialize a cached object if it exists and has not exceeded its TTL.
func Read(cacheKey string, target interface{}) bool {
	ttl := TTL()
	if ttl <= 0 {
		return false
	}

	path := filepath.Join(where.FeedCache(), cacheKey)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > ttl {
		return false
	}

	f, err := filesystem.API().Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(target); err != nil {
		return false
	}
	return true
}

// Write persists a serializable object to the cache using an atomic file swap to ensure data integrity.
func Write(cacheKey string, data interface{}) error {
	path := filepath.Join(where.FeedCache(), cacheKey)
	tmpPath := path + ".tmp"

	f, err := filesystem.API().Create(tmpPath)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(data); err != nil {
		f.Close()
		return err
	}
	f.Close()

	return filesystem.API().Rename(tmpPath, path)
}

// CollectGarbage prunes expired cache entries from the filesystem.
// Callers that want it off the startup path run it in a goroutine.
func CollectGarbage() {
	ttl := TTL()
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	dir := where.FeedCache()
	_ = afero.Walk(filesystem.API(), dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > ttl {
			_ = filesystem.API().Remove(path)
		}
		return nil
	})
}
