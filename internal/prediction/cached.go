// internal/prediction/cached.go
package prediction

import (
	"context"
	"errors"
	"strconv"
	"time"

	"chatbus/internal/common/database"
	"chatbus/internal/common/logger"
	"chatbus/internal/common/metrics"
	"chatbus/internal/features"
)

// Cache is the subset of database.RedisClient the decorator needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// CachedModel memoizes raw model output by feature vector. Cache failures
// are logged and never fail a prediction.
type CachedModel struct {
	next   Model
	cache  Cache
	ttl    time.Duration
	prefix string
	logger logger.Logger
}

func NewCachedModel(next Model, cache Cache, ttl time.Duration, prefix string, log logger.Logger) *CachedModel {
	return &CachedModel{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		prefix: prefix,
		logger: log.WithFields(map[string]interface{}{"component": "prediction-cache"}),
	}
}

func (m *CachedModel) key(v features.FeatureVector) string {
	return m.prefix + m.next.Name() + ":" + v.Key()
}

func (m *CachedModel) Predict(ctx context.Context, v features.FeatureVector) (float64, error) {
	key := m.key(v)

	cached, err := m.cache.Get(ctx, key)
	switch {
	case err == nil:
		if value, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return value, nil
		}
		m.logger.Warn("discarding unparsable cache entry", map[string]interface{}{"key": key})
		metrics.CacheLookups.WithLabelValues("error").Inc()
	case errors.Is(err, database.ErrCacheMiss):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		m.logger.Warn("prediction cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		metrics.CacheLookups.WithLabelValues("error").Inc()
	}

	value, err := m.next.Predict(ctx, v)
	if err != nil {
		return 0, err
	}

	if err := m.cache.Set(ctx, key, strconv.FormatFloat(value, 'g', -1, 64), m.ttl); err != nil {
		m.logger.Warn("prediction cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return value, nil
}

func (m *CachedModel) NumFeatures() int { return m.next.NumFeatures() }

func (m *CachedModel) Name() string { return m.next.Name() }

// FeatureNames forwards to the wrapped model when it knows its columns.
func (m *CachedModel) FeatureNames() []string {
	if namer, ok := m.next.(FeatureNamer); ok {
		return namer.FeatureNames()
	}
	return nil
}
