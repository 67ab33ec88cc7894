package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"quiz-extensions/internal/cache"
	"quiz-extensions/internal/domain"

	"go.uber.org/zap"
)

// AdvisoryService answers whether a course has quizzes that have not
// received the standing extensions yet. The answer only drives a banner.
type AdvisoryService struct {
	jobs   domain.JobService
	cache  domain.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewAdvisoryService(jobs domain.JobService, c domain.Cache, ttl time.Duration, logger *zap.Logger) *AdvisoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		c = nil
	}
	return &AdvisoryService{jobs: jobs, cache: c, ttl: ttl, logger: logger}
}

func (s *AdvisoryService) MissingQuizzes(ctx context.Context, courseID string) (bool, error) {
	key := cache.AdvisoryKey(courseID)
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			if v, perr := strconv.ParseBool(raw); perr == nil {
				return v, nil
			}
		case !errors.Is(err, domain.ErrCacheMiss):
			s.logger.Warn("Advisory cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	missing, err := s.jobs.MissingQuizzes(ctx, courseID)
	if err != nil {
		s.logger.Warn("Failed to check for missing quizzes", zap.String("course_id", courseID), zap.Error(err))
		return false, domain.NewError(domain.CodeDataSource, "failed to check for missing quizzes", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, strconv.FormatBool(missing), s.ttl); err != nil {
			s.logger.Warn("Advisory cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return missing, nil
}

// Invalidate drops the cached flag, e.g. after a refresh job finished.
func (s *AdvisoryService) Invalidate(ctx context.Context, courseID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.AdvisoryKey(courseID)); err != nil {
		s.logger.Warn("Advisory cache delete failed", zap.String("course_id", courseID), zap.Error(err))
	}
}
