package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"quiz-extensions/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockJobService is a testify mock of domain.JobService.
type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) SearchStudents(ctx context.Context, courseID, query string, page int) (*domain.StudentPage, error) {
	args := m.Called(ctx, courseID, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentPage), args.Error(1)
}

func (m *MockJobService) SubmitUpdate(ctx context.Context, courseID string, req domain.BatchRequest) (*domain.SubmitResult, error) {
	args := m.Called(ctx, courseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmitResult), args.Error(1)
}

func (m *MockJobService) SubmitRefresh(ctx context.Context, courseID string) (*domain.JobHandle, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobHandle), args.Error(1)
}

func (m *MockJobService) JobStatus(ctx context.Context, jobURL string) (*domain.JobStatus, error) {
	args := m.Called(ctx, jobURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobStatus), args.Error(1)
}

func (m *MockJobService) MissingQuizzes(ctx context.Context, courseID string) (bool, error) {
	args := m.Called(ctx, courseID)
	return args.Bool(0), args.Error(1)
}

// statusStep is one scripted job-status answer.
type statusStep struct {
	status *domain.JobStatus
	err    error
}

// scriptedJobs answers job-status requests from a per-URL script, repeating
// the last step forever. Submission calls go through the func fields.
type scriptedJobs struct {
	mu            sync.Mutex
	scripts       map[string][]statusStep
	calls         map[string]int
	updates       []domain.BatchRequest
	refreshes     int
	submitUpdate  func(ctx context.Context, req domain.BatchRequest) (*domain.SubmitResult, error)
	submitRefresh func(ctx context.Context) (*domain.JobHandle, error)
}

func newScriptedJobs() *scriptedJobs {
	return &scriptedJobs{
		scripts: make(map[string][]statusStep),
		calls:   make(map[string]int),
	}
}

func (s *scriptedJobs) script(url string, steps ...statusStep) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts[url] = steps
}

func (s *scriptedJobs) Calls(url string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[url]
}

func (s *scriptedJobs) Updates() []domain.BatchRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.BatchRequest(nil), s.updates...)
}

func (s *scriptedJobs) SearchStudents(ctx context.Context, courseID, query string, page int) (*domain.StudentPage, error) {
	return nil, errors.New("not scripted")
}

func (s *scriptedJobs) SubmitUpdate(ctx context.Context, courseID string, req domain.BatchRequest) (*domain.SubmitResult, error) {
	s.mu.Lock()
	s.updates = append(s.updates, req)
	fn := s.submitUpdate
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return &domain.SubmitResult{
		Refresh: domain.JobHandle{Kind: domain.JobKindRefresh, URL: "/jobs/refresh/"},
		Update:  domain.JobHandle{Kind: domain.JobKindUpdate, URL: "/jobs/update/"},
	}, nil
}

func (s *scriptedJobs) SubmitRefresh(ctx context.Context, courseID string) (*domain.JobHandle, error) {
	s.mu.Lock()
	s.refreshes++
	fn := s.submitRefresh
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return &domain.JobHandle{Kind: domain.JobKindRefresh, URL: "/jobs/refresh/"}, nil
}

func (s *scriptedJobs) JobStatus(ctx context.Context, jobURL string) (*domain.JobStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	call := s.calls[jobURL]
	s.calls[jobURL]++
	steps := s.scripts[jobURL]
	if len(steps) == 0 {
		return &domain.JobStatus{Status: domain.JobStatusRunning}, nil
	}
	if call >= len(steps) {
		call = len(steps) - 1
	}
	return steps[call].status, steps[call].err
}

func (s *scriptedJobs) MissingQuizzes(ctx context.Context, courseID string) (bool, error) {
	return false, nil
}

// ManualMockCache is a func-field mock of domain.Cache.
type ManualMockCache struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, keys ...string) error
	PingFunc   func(ctx context.Context) error
}

func (m *ManualMockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", errors.New("GetFunc not set")
}

func (m *ManualMockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	return errors.New("SetFunc not set")
}

func (m *ManualMockCache) Delete(ctx context.Context, keys ...string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, keys...)
	}
	return errors.New("DeleteFunc not set")
}

func (m *ManualMockCache) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return errors.New("PingFunc not set")
}

// memoryCache is a map-backed domain.Cache that ignores TTLs.
type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]string)}
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryCache) Ping(ctx context.Context) error {
	return nil
}

func (m *memoryCache) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}
