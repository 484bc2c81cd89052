package repository

import (
	"context"
	"time"
)

// ReportPerformanceKey names the cached aggregate report.
const ReportPerformanceKey = "report:performance"

// UserCacheKey builds the cache key for a user read path.
func UserCacheKey(id string) string {
	return "user:" + id
}

// Cache is an optional invalidation-on-write collaborator for read paths.
// Callers must behave identically when no cache is wired in; a miss is
// reported as ok=false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}
