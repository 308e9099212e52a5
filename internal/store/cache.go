package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Cache timestamps are stored in the same text format SQLite's
// datetime('now') produces, so expiry comparisons work in SQL.
const cacheTimeLayout = "2006-01-02 15:04:05"

// AddToCache upserts a TTL cache entry under key. Existing entries are
// replaced, including their expiry.
func (s *SQLiteStore) AddToCache(key, content, contentType string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrNotInitialized
	}

	expires := time.Now().UTC().Add(ttl).Format(cacheTimeLayout)
	if _, err := s.db.Exec(`
		INSERT INTO api_cache (cache_key, content, content_type, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (cache_key) DO UPDATE SET
			content = excluded.content,
			content_type = excluded.content_type,
			expires_at = excluded.expires_at`,
		key, content, contentType, expires); err != nil {
		return fmt.Errorf("cache %q: %w", key, err)
	}
	return nil
}

// GetFromCache returns the entry for key, or nil when the key is absent
// or its expiry has passed. Expired rows become invisible immediately,
// whether or not ClearExpiredCache has swept them yet.
func (s *SQLiteStore) GetFromCache(key string) (*CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	var entry CacheEntry
	var expires, created string
	err := s.db.QueryRow(`
		SELECT cache_key, content, content_type, expires_at, created_at
		FROM api_cache
		WHERE cache_key = ? AND expires_at > datetime('now')`, key).
		Scan(&entry.Key, &entry.Content, &entry.ContentType, &expires, &created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache %q: %w", key, err)
	}

	entry.ExpiresAt, _ = time.ParseInLocation(cacheTimeLayout, expires, time.UTC)
	entry.CreatedAt, _ = time.ParseInLocation(cacheTimeLayout, created, time.UTC)
	return &entry, nil
}

// ClearExpiredCache removes exactly the rows whose expiry is in the past
// and returns how many were removed. Unexpired rows are untouched.
func (s *SQLiteStore) ClearExpiredCache() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return 0, ErrNotInitialized
	}

	res, err := s.db.Exec(
		"DELETE FROM api_cache WHERE expires_at <= datetime('now')")
	if err != nil {
		return 0, fmt.Errorf("sweep cache: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sweep cache: %w", err)
	}
	return removed, nil
}
