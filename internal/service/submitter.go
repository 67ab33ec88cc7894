package service

import (
	"context"

	"quiz-extensions/internal/domain"

	"go.uber.org/zap"
)

// BatchSubmitter issues the batch update request and the standalone refresh
// request for one course.
type BatchSubmitter struct {
	jobs     domain.JobService
	courseID string
	logger   *zap.Logger
}

func NewBatchSubmitter(jobs domain.JobService, courseID string, logger *zap.Logger) *BatchSubmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchSubmitter{jobs: jobs, courseID: courseID, logger: logger}
}

// Submit builds one BatchRequest from ids and percent and sends it. An empty
// ids list is rejected locally and no request is made.
func (s *BatchSubmitter) Submit(ctx context.Context, ids []string, percent string) (*domain.SubmitResult, error) {
	if len(ids) == 0 {
		return nil, domain.ErrEmptySelection
	}

	req := domain.BatchRequest{
		UserIDs: append([]string(nil), ids...),
		Percent: domain.Percent(percent),
	}
	res, err := s.jobs.SubmitUpdate(ctx, s.courseID, req)
	if err != nil {
		s.logger.Error("Failed to submit extension request",
			zap.String("course_id", s.courseID),
			zap.Int("students", len(ids)),
			zap.Error(err))
		return nil, domain.NewSubmissionTransportError(err)
	}

	s.logger.Info("Extension request submitted",
		zap.String("course_id", s.courseID),
		zap.Int("students", len(ids)),
		zap.String("percent", percent),
		zap.String("refresh_job_url", res.Refresh.URL),
		zap.String("update_job_url", res.Update.URL))
	return res, nil
}

// SubmitRefresh asks the job service to re-sync the course's quiz list.
func (s *BatchSubmitter) SubmitRefresh(ctx context.Context) (*domain.JobHandle, error) {
	handle, err := s.jobs.SubmitRefresh(ctx, s.courseID)
	if err != nil {
		s.logger.Error("Failed to submit refresh request", zap.String("course_id", s.courseID), zap.Error(err))
		return nil, domain.NewSubmissionTransportError(err)
	}
	s.logger.Info("Refresh request submitted",
		zap.String("course_id", s.courseID),
		zap.String("refresh_job_url", handle.URL))
	return handle, nil
}
