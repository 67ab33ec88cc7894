package service

import (
	"context"
	"sync"
	"time"

	"quiz-extensions/internal/domain"
	"quiz-extensions/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const reportWriteTimeout = 5 * time.Second

// Session is one operator's controller, bound to the course of the launch
// token that opened it.
type Session struct {
	ID         string
	CourseID   string
	UserID     string
	CreatedAt  time.Time
	Controller *Controller
}

// SessionConfig carries the controller settings shared by every session.
type SessionConfig struct {
	Presets              []string
	DefaultPreset        string
	PollInterval         time.Duration
	MaxPollDuration      time.Duration
	RefreshTolerateEmpty bool
}

// SessionRegistry owns every live session. Sessions live in memory only.
type SessionRegistry struct {
	jobs     domain.JobService
	reports  ReportCache
	advisory *AdvisoryService
	cfg      SessionConfig
	logger   *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionRegistry(jobs domain.JobService, reports ReportCache, advisory *AdvisoryService, cfg SessionConfig, logger *zap.Logger) *SessionRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reports == nil {
		reports = noopReportCache{}
	}
	return &SessionRegistry{
		jobs:     jobs,
		reports:  reports,
		advisory: advisory,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create opens a new session for courseID.
func (r *SessionRegistry) Create(courseID, userID string) (*Session, error) {
	id := util.NewULID()
	sessionLogger := r.logger.With(zap.String("session_id", id))

	opts := ControllerOptions{
		CourseID:             courseID,
		Presets:              r.cfg.Presets,
		DefaultPreset:        r.cfg.DefaultPreset,
		PollInterval:         r.cfg.PollInterval,
		MaxPollDuration:      r.cfg.MaxPollDuration,
		RefreshTolerateEmpty: r.cfg.RefreshTolerateEmpty,
		Logger:               sessionLogger,
		OnReport: func(report *domain.ResultReport) {
			ctx, cancel := context.WithTimeout(context.Background(), reportWriteTimeout)
			defer cancel()
			if err := r.reports.Put(ctx, id, report); err != nil {
				sessionLogger.Warn("Failed to keep result report", zap.Error(err))
			}
		},
	}
	if r.advisory != nil {
		opts.OnRefreshComplete = func() {
			ctx, cancel := context.WithTimeout(context.Background(), reportWriteTimeout)
			defer cancel()
			r.advisory.Invalidate(ctx, courseID)
		}
	}

	ctrl, err := NewController(r.jobs, opts)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:         id,
		CourseID:   courseID,
		UserID:     userID,
		CreatedAt:  time.Now(),
		Controller: ctrl,
	}
	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	sessionLogger.Info("Session created", zap.String("course_id", courseID), zap.String("user_id", userID))
	return s, nil
}

// Get returns the session with id. A session of another course is reported
// as not found.
func (r *SessionRegistry) Get(id, courseID string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok || s.CourseID != courseID {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Report returns the live report of a session or, once it was dismissed, the
// cached copy.
func (r *SessionRegistry) Report(ctx context.Context, s *Session) (*domain.ResultReport, error) {
	report, err := s.Controller.Report()
	if err == nil {
		return report, nil
	}
	return r.reports.Get(ctx, s.ID)
}

// Remove closes the session and forgets its cached report.
func (r *SessionRegistry) Remove(ctx context.Context, id, courseID string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok || s.CourseID != courseID {
		r.mu.Unlock()
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	r.mu.Unlock()

	s.Controller.Close()
	if err := r.reports.Delete(ctx, id); err != nil {
		r.logger.Warn("Failed to drop cached report", zap.String("session_id", id), zap.Error(err))
	}
	r.logger.Info("Session removed", zap.String("session_id", id))
	return nil
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close stops every session concurrently and waits for their pollers.
func (r *SessionRegistry) Close(ctx context.Context) error {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, s := range sessions {
		s := s
		g.Go(func() error {
			done := make(chan struct{})
			go func() {
				s.Controller.Close()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	err := g.Wait()
	r.logger.Info("Session registry closed", zap.Int("sessions", len(sessions)), zap.Error(err))
	return err
}
