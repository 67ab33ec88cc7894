package service

import (
	"context"
	"time"

	"quiz-extensions/internal/cache"
	"quiz-extensions/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RosterService pages through a course's students, caching each page briefly.
type RosterService struct {
	jobs   domain.JobService
	cache  domain.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewRosterService returns an uncached service when c is nil or ttl is zero.
func NewRosterService(jobs domain.JobService, c domain.Cache, ttl time.Duration, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		c = nil
	}
	return &RosterService{jobs: jobs, cache: c, ttl: ttl, logger: logger}
}

func (s *RosterService) Page(ctx context.Context, courseID, query string, page int) (*domain.StudentPage, error) {
	if page < 1 {
		page = 1
	}
	key := cache.StudentPageKey(courseID, query, page)
	if s.cache != nil {
		var cached domain.StudentPage
		found, err := cache.GetJSON(ctx, s.cache, key, &cached)
		if err != nil {
			s.logger.Warn("Student page cache read failed", zap.String("key", key), zap.Error(err))
		} else if found {
			s.logger.Debug("Student page cache hit", zap.String("key", key))
			return &cached, nil
		}
	}

	result, err := s.jobs.SearchStudents(ctx, courseID, query, page)
	if err != nil {
		s.logger.Error("Failed to load students",
			zap.String("course_id", courseID),
			zap.Int("page", page),
			zap.Error(err))
		return nil, domain.NewDataSourceError(err)
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, result, s.ttl); err != nil {
			s.logger.Warn("Student page cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return result, nil
}

// Overview is the first screen of a session: a roster page and the
// missing-quizzes banner.
type Overview struct {
	Page           *domain.StudentPage
	MissingQuizzes bool
}

// LoadOverview fetches the roster page and the advisory concurrently. An
// advisory failure only hides the banner.
func LoadOverview(ctx context.Context, roster *RosterService, advisory *AdvisoryService, courseID, query string, page int) (*Overview, error) {
	var out Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := roster.Page(gctx, courseID, query, page)
		if err != nil {
			return err
		}
		out.Page = p
		return nil
	})
	if advisory != nil {
		g.Go(func() error {
			missing, err := advisory.MissingQuizzes(gctx, courseID)
			if err != nil {
				return nil
			}
			out.MissingQuizzes = missing
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
