package domain

import "context"

// JobService is the external service that owns students, quizzes and jobs.
type JobService interface {
	// SearchStudents returns one page of students matching query.
	SearchStudents(ctx context.Context, courseID, query string, page int) (*StudentPage, error)
	// SubmitUpdate enqueues a refresh job followed by an update job.
	SubmitUpdate(ctx context.Context, courseID string, req BatchRequest) (*SubmitResult, error)
	// SubmitRefresh enqueues a standalone refresh job.
	SubmitRefresh(ctx context.Context, courseID string) (*JobHandle, error)
	// JobStatus fetches the current status document of a job.
	JobStatus(ctx context.Context, jobURL string) (*JobStatus, error)
	// MissingQuizzes reports whether quizzes exist that have not received
	// the course's standing extensions yet.
	MissingQuizzes(ctx context.Context, courseID string) (bool, error)
}
