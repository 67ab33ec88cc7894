package service

import (
	"context"
	"errors"
	"time"

	"quiz-extensions/internal/cache"
	"quiz-extensions/internal/domain"
	"quiz-extensions/internal/logger"

	"go.uber.org/zap"
)

// ReportCache keeps the last result report of a session so it can be viewed
// again after the session was dismissed.
type ReportCache interface {
	Put(ctx context.Context, sessionID string, report *domain.ResultReport) error
	Get(ctx context.Context, sessionID string) (*domain.ResultReport, error)
	Delete(ctx context.Context, sessionID string) error
}

type reportCacheImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewReportCache falls back to a no-op implementation when c is nil.
func NewReportCache(c domain.Cache, ttl time.Duration) ReportCache {
	if c == nil {
		logger.Get().Warn("ReportCache initialized with nil cache. Reports will not survive dismissal.")
		return &noopReportCache{}
	}
	return &reportCacheImpl{cache: c, ttl: ttl}
}

func (s *reportCacheImpl) Put(ctx context.Context, sessionID string, report *domain.ResultReport) error {
	if report == nil {
		return domain.NewInvalidInputError("cannot cache nil report")
	}
	key := cache.ReportKey(sessionID)
	if err := cache.SetJSON(ctx, s.cache, key, report, s.ttl); err != nil {
		logger.Get().Error("Failed to cache result report", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError("failed to cache result report", err)
	}
	logger.Get().Debug("Cached result report", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *reportCacheImpl) Get(ctx context.Context, sessionID string) (*domain.ResultReport, error) {
	key := cache.ReportKey(sessionID)
	var report domain.ResultReport
	found, err := cache.GetJSON(ctx, s.cache, key, &report)
	if err != nil {
		logger.Get().Error("Failed to read result report from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError("failed to read result report", err)
	}
	if !found {
		return nil, domain.ErrReportNotReady
	}
	return &report, nil
}

func (s *reportCacheImpl) Delete(ctx context.Context, sessionID string) error {
	err := s.cache.Delete(ctx, cache.ReportKey(sessionID))
	if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
		return domain.NewInternalError("failed to delete result report", err)
	}
	return nil
}

type noopReportCache struct{}

func (noopReportCache) Put(ctx context.Context, sessionID string, report *domain.ResultReport) error {
	return nil
}

func (noopReportCache) Get(ctx context.Context, sessionID string) (*domain.ResultReport, error) {
	return nil, domain.ErrReportNotReady
}

func (noopReportCache) Delete(ctx context.Context, sessionID string) error {
	return nil
}
