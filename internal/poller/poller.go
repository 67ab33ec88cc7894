// Package poller polls a job-status URL on a fixed period until the job
// reaches a terminal state or the poller is stopped.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"quiz-extensions/internal/domain"

	"go.uber.org/zap"
)

// State of a Poller. Complete, Failed and Cancelled are terminal.
type State string

const (
	StateIdle      State = "idle"
	StatePolling   State = "polling"
	StateComplete  State = "complete"
	StateFailed    State = "failed"
	StateCancelled State = "cancelled"
)

// DefaultInterval is the reference polling period.
const DefaultInterval = 1000 * time.Millisecond

var (
	ErrAlreadyPolling = errors.New("poller: already polling")
	ErrPollTimeout    = errors.New("poller: job did not finish in time")
	ErrEmptyStatus    = errors.New("poller: job status record is empty")
)

// StatusFetcher fetches one status document. domain.JobService satisfies it.
type StatusFetcher interface {
	JobStatus(ctx context.Context, jobURL string) (*domain.JobStatus, error)
}

type EventKind string

const (
	EventProgress EventKind = "progress"
	EventComplete EventKind = "complete"
	EventFailed   EventKind = "failed"
)

// Event reports one accepted poll result upward. Generation is the token
// captured when the poller was started.
type Event struct {
	Poller     string
	Kind       EventKind
	Generation uint64
	Status     *domain.JobStatus
	Err        error
}

// Sink receives events on the poller's goroutine, in tick order.
type Sink func(Event)

type Options struct {
	Name     string
	Interval time.Duration
	// MaxDuration fails the poller once exceeded. Zero polls without bound.
	MaxDuration time.Duration
	// TolerateEmpty turns an empty "{}" status into a silent continuation.
	TolerateEmpty bool
	Logger        *zap.Logger
}

// Progress is the visible state of a poller.
type Progress struct {
	State     State  `json:"state"`
	Percent   int    `json:"percent"`
	StatusMsg string `json:"status_msg"`
	JobURL    string `json:"job_url,omitempty"`
}

// Poller is a cancellable repeating task. Stop never waits for an in-flight
// request; the response is discarded when it arrives because its generation
// no longer matches.
type Poller struct {
	opts    Options
	fetcher StatusFetcher
	logger  *zap.Logger

	mu       sync.Mutex
	state    State
	gen      uint64
	jobURL   string
	progress int
	msg      string
	last     *domain.JobStatus
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(fetcher StatusFetcher, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		opts:    opts,
		fetcher: fetcher,
		logger:  logger.With(zap.String("poller", opts.Name)),
		state:   StateIdle,
	}
}

func (p *Poller) Name() string {
	return p.opts.Name
}

// Start begins polling jobURL and returns the generation token of this run.
// The first request is issued one Interval after Start.
func (p *Poller) Start(ctx context.Context, jobURL string, sink Sink) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StatePolling {
		return 0, ErrAlreadyPolling
	}

	p.gen++
	gen := p.gen
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	p.state = StatePolling
	p.jobURL = jobURL
	p.progress = 0
	p.msg = ""
	p.last = nil
	p.cancel = cancel
	p.done = done

	p.logger.Debug("Poller started", zap.String("job_url", jobURL), zap.Uint64("generation", gen))
	go p.run(runCtx, gen, jobURL, sink, done)
	return gen, nil
}

// Stop schedules no further ticks. It reports whether the poller was polling.
func (p *Poller) Stop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.state != StatePolling {
		return false
	}
	p.state = StateCancelled
	p.logger.Debug("Poller stopped", zap.String("job_url", p.jobURL))
	return true
}

// Reset stops the poller and restores the initial progress visuals.
func (p *Poller) Reset() {
	p.Stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateIdle
	p.jobURL = ""
	p.progress = 0
	p.msg = ""
	p.last = nil
}

// Wait blocks until the current run's goroutine has exited.
func (p *Poller) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Current reports whether gen is the token of the live run.
func (p *Poller) Current(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return gen == p.gen
}

func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller) Progress() Progress {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Progress{State: p.state, Percent: p.progress, StatusMsg: p.msg, JobURL: p.jobURL}
}

// Last returns the last accepted non-empty status.
func (p *Poller) Last() *domain.JobStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *Poller) run(ctx context.Context, gen uint64, jobURL string, sink Sink, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if p.opts.MaxDuration > 0 {
		timer := time.NewTimer(p.opts.MaxDuration)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			p.deliver(sink, gen, nil, domain.NewPollTransportError(jobURL, ErrPollTimeout))
			return
		case <-ticker.C:
			status, err := p.fetcher.JobStatus(ctx, jobURL)
			if err != nil {
				err = domain.NewPollTransportError(jobURL, err)
			}
			if !p.deliver(sink, gen, status, err) {
				return
			}
		}
	}
}

// deliver applies one poll result and forwards the resulting event. It
// returns false once the run must schedule no further ticks.
func (p *Poller) deliver(sink Sink, gen uint64, status *domain.JobStatus, err error) bool {
	ev, keepGoing := p.apply(gen, status, err)
	if ev != nil && sink != nil {
		sink(*ev)
	}
	return keepGoing
}

func (p *Poller) apply(gen uint64, status *domain.JobStatus, err error) (*Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen || p.state != StatePolling {
		p.logger.Debug("Discarding late poll response",
			zap.Uint64("generation", gen), zap.Uint64("current", p.gen))
		return nil, false
	}

	ev := &Event{Poller: p.opts.Name, Generation: gen, Status: status}
	switch {
	case err != nil:
		p.state = StateFailed
		p.msg = err.Error()
		ev.Kind = EventFailed
		ev.Err = err
		p.logger.Warn("Poll attempt failed", zap.String("job_url", p.jobURL), zap.Error(err))
	case status.IsEmpty():
		if p.opts.TolerateEmpty {
			return nil, true
		}
		p.state = StateFailed
		p.msg = ErrEmptyStatus.Error()
		ev.Kind = EventFailed
		ev.Err = domain.NewServerReportedFailure(p.msg)
		p.logger.Warn("Empty job status", zap.String("job_url", p.jobURL))
	case status.IsFailed():
		p.state = StateFailed
		p.progress = status.Percent
		p.msg = status.StatusMsg
		p.last = status
		ev.Kind = EventFailed
		ev.Err = domain.NewServerReportedFailure(status.StatusMsg)
		p.logger.Warn("Job reported failure", zap.String("job_url", p.jobURL), zap.String("status_msg", status.StatusMsg))
	case status.IsComplete():
		p.state = StateComplete
		p.progress = status.Percent
		p.msg = status.StatusMsg
		p.last = status
		ev.Kind = EventComplete
		p.logger.Info("Job complete", zap.String("job_url", p.jobURL))
	default:
		p.progress = status.Percent
		p.msg = status.StatusMsg
		p.last = status
		ev.Kind = EventProgress
		return ev, true
	}

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	return ev, false
}
