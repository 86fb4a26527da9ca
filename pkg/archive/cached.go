package archive

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archdeps/pkg/cache"
	"github.com/matzehuels/archdeps/pkg/errors"
	"github.com/matzehuels/archdeps/pkg/observability"
)

const cacheKeyType = "records"

// CachedReader serves records from a cache and falls back to an inner
// reader on a miss. Corrupt archives are never cached, so a file that is
// repaired in place is read again.
type CachedReader struct {
	Inner  RecordReader
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
	Logger *log.Logger
}

// NewCachedReader wraps inner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer], and a nil logger uses the default logger.
func NewCachedReader(inner RecordReader, c cache.Cache, keyer cache.Keyer, ttl time.Duration, logger *log.Logger) *CachedReader {
	if inner == nil {
		inner = NewReader()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &CachedReader{Inner: inner, Cache: c, Keyer: keyer, TTL: ttl, Logger: logger}
}

// Read returns the records for path, consulting the cache first.
// Cache failures are logged and otherwise ignored.
func (r *CachedReader) Read(ctx context.Context, path string) (Records, error) {
	if err := errors.ValidateArchivePath(path); err != nil {
		return Records{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return Records{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", path)
	}
	key := r.Keyer.RecordsKey(path, info.Size(), info.ModTime())

	if data, hit, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Debug("cache read failed", "path", path, "error", err)
	} else if hit {
		var rec Records
		if err := json.Unmarshal(data, &rec); err == nil {
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			rec.missingIssues(path)
			return rec, nil
		}
		_ = r.Cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)

	rec, err := r.Inner.Read(ctx, path)
	if err != nil || rec.Corrupt() {
		return rec, err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return rec, nil
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Debug("cache write failed", "path", path, "error", err)
		return rec, nil
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
	return rec, nil
}

var (
	_ RecordReader = (*Reader)(nil)
	_ RecordReader = (*CachedReader)(nil)
)
