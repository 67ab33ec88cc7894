package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"quiz-extensions/internal/domain"
	"quiz-extensions/internal/percent"
	"quiz-extensions/internal/poller"
	"quiz-extensions/internal/selection"

	"go.uber.org/zap"
)

// ControllerState is the orchestration state of one operator session.
type ControllerState string

const (
	StateFormVisible  ControllerState = "form_visible"
	StateSubmitting   ControllerState = "submitting"
	StateDualPolling  ControllerState = "dual_polling"
	StateResultsReady ControllerState = "results_ready"
	StateRefreshing   ControllerState = "refreshing"
	StateFailed       ControllerState = "failed"
)

const (
	AlertError   = "error"
	AlertWarning = "warning"
)

// Alert is a transient message shown until the next submit or dismissal.
type Alert struct {
	Level   string           `json:"level"`
	Code    domain.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

type ControllerOptions struct {
	CourseID        string
	Presets         []string
	DefaultPreset   string
	PollInterval    time.Duration
	MaxPollDuration time.Duration
	// RefreshTolerateEmpty lets the Refresh poller ignore "{}" like the Update
	// poller does.
	RefreshTolerateEmpty bool
	// OnReport is called, without the controller lock, once per report built.
	OnReport func(report *domain.ResultReport)
	// OnRefreshComplete is called, without the controller lock, whenever a
	// refresh job of a live run completes.
	OnRefreshComplete func()
	Logger            *zap.Logger
}

// Snapshot is a consistent copy of everything the operator sees.
type Snapshot struct {
	Run         uint64             `json:"run"`
	State       ControllerState    `json:"state"`
	Chosen      []domain.Item      `json:"chosen"`
	Available   []selection.Entry  `json:"available"`
	Exhausted   bool               `json:"exhausted"`
	Preset      string             `json:"preset"`
	Override    string             `json:"override"`
	Presets     []string           `json:"presets"`
	Percent     percent.Resolution `json:"percent"`
	InputsOpen  bool               `json:"inputs_open"`
	Refresh     poller.Progress    `json:"refresh"`
	Update      poller.Progress    `json:"update"`
	Alerts      []Alert            `json:"alerts"`
	ReportReady bool               `json:"report_ready"`
}

// Controller owns the selection, the percent inputs and both pollers of one
// session. Every transition runs under mu; no network call is made while mu
// is held. Poller events re-enter through HandleRefreshEvent and
// HandleUpdateEvent and are dropped when their run token is stale.
type Controller struct {
	opts      ControllerOptions
	logger    *zap.Logger
	submitter *BatchSubmitter
	reporter  *ResultReporter

	baseCtx context.Context
	cancel  context.CancelFunc

	mu         sync.Mutex
	state      ControllerState
	run        uint64
	selection  *selection.Set
	percent    *percent.Resolver
	refresh    *poller.Poller
	update     *poller.Poller
	refreshGen uint64
	updateGen  uint64
	alerts     []Alert
	report     *domain.ResultReport
	closed     bool
}

func NewController(jobs domain.JobService, opts ControllerOptions) (*Controller, error) {
	if opts.CourseID == "" {
		return nil, domain.NewInvalidInputError("course id is required")
	}
	if len(opts.Presets) == 0 {
		return nil, domain.NewInvalidInputError("at least one percent preset is required")
	}
	if !contains(opts.Presets, opts.DefaultPreset) {
		return nil, domain.NewUnknownPresetError(opts.DefaultPreset)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("course_id", opts.CourseID))

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		opts:      opts,
		logger:    logger,
		submitter: NewBatchSubmitter(jobs, opts.CourseID, logger),
		reporter:  NewResultReporter(),
		baseCtx:   ctx,
		cancel:    cancel,
		state:     StateFormVisible,
		percent:   percent.NewResolver(opts.DefaultPreset),
		refresh: poller.New(jobs, poller.Options{
			Name:          string(domain.JobKindRefresh),
			Interval:      opts.PollInterval,
			MaxDuration:   opts.MaxPollDuration,
			TolerateEmpty: opts.RefreshTolerateEmpty,
			Logger:        logger,
		}),
		update: poller.New(jobs, poller.Options{
			Name:          string(domain.JobKindUpdate),
			Interval:      opts.PollInterval,
			MaxDuration:   opts.MaxPollDuration,
			TolerateEmpty: true,
			Logger:        logger,
		}),
	}
	c.selection = selection.New(func(op string, item domain.Item) {
		c.logger.Debug("Selection changed", zap.String("op", op), zap.String("student_id", item.ID))
	})
	return c, nil
}

func (c *Controller) CourseID() string {
	return c.opts.CourseID
}

func (c *Controller) State() ControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// inputsOpenLocked reports whether selection and percent accept input.
func (c *Controller) inputsOpenLocked() bool {
	return c.state == StateFormVisible && !c.closed
}

func (c *Controller) Choose(item domain.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.inputsOpenLocked() {
		return domain.ErrInputsLocked
	}
	c.selection.Choose(item)
	return nil
}

func (c *Controller) Recall(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.inputsOpenLocked() {
		return domain.ErrInputsLocked
	}
	c.selection.Recall(id)
	return nil
}

// ClearSelection returns every Chosen student to the Available pool.
func (c *Controller) ClearSelection() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.inputsOpenLocked() {
		return 0, domain.ErrInputsLocked
	}
	return c.selection.Clear(), nil
}

func (c *Controller) SetPreset(preset string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.inputsOpenLocked() {
		return domain.ErrInputsLocked
	}
	if !contains(c.opts.Presets, preset) {
		return domain.NewUnknownPresetError(preset)
	}
	c.percent.SetPreset(preset)
	return nil
}

func (c *Controller) SetOverride(override string) (percent.Resolution, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.inputsOpenLocked() {
		return percent.Resolution{}, domain.ErrInputsLocked
	}
	c.percent.SetOverride(override)
	return c.percent.Resolve(), nil
}

// LoadPage replaces the Available pool with a freshly fetched page. It is
// allowed in every state since it never touches the Chosen set.
func (c *Controller) LoadPage(page *domain.StudentPage) {
	if page == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.LoadAvailable(page.Items)
}

// Submit sends the Chosen ids with the resolved percent and starts both
// pollers. An empty selection is rejected before any state change.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrSessionNotFound
	}
	if c.state != StateFormVisible {
		c.mu.Unlock()
		return domain.ErrSubmitInProgress
	}
	ids := c.selection.ChosenIDs()
	if len(ids) == 0 {
		c.mu.Unlock()
		return domain.ErrEmptySelection
	}
	resolved := c.percent.Resolve()
	c.state = StateSubmitting
	c.alerts = nil
	c.run++
	run := c.run
	c.mu.Unlock()

	res, err := c.submitter.Submit(ctx, ids, resolved.Value)

	c.mu.Lock()
	defer c.mu.Unlock()
	if run != c.run {
		c.logger.Info("Discarding submit response from a dismissed run", zap.Uint64("run", run))
		return nil
	}
	if err != nil {
		c.state = StateFormVisible
		c.addAlertLocked(AlertError, err)
		return err
	}
	if err := c.startDualPollingLocked(run, res); err != nil {
		c.refresh.Reset()
		c.update.Reset()
		c.state = StateFormVisible
		c.addAlertLocked(AlertError, err)
		return err
	}
	c.state = StateDualPolling
	return nil
}

func (c *Controller) startDualPollingLocked(run uint64, res *domain.SubmitResult) error {
	refreshGen, err := c.refresh.Start(c.baseCtx, res.Refresh.URL, func(ev poller.Event) {
		c.HandleRefreshEvent(run, ev)
	})
	if err != nil {
		return domain.NewInternalError("failed to start refresh poller", err)
	}
	updateGen, err := c.update.Start(c.baseCtx, res.Update.URL, func(ev poller.Event) {
		c.HandleUpdateEvent(run, ev)
	})
	if err != nil {
		return domain.NewInternalError("failed to start update poller", err)
	}
	c.refreshGen = refreshGen
	c.updateGen = updateGen
	return nil
}

// StartRefresh runs a standalone refresh job. Its completion resets the
// session directly, without a result report.
func (c *Controller) StartRefresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrSessionNotFound
	}
	if c.state != StateFormVisible {
		c.mu.Unlock()
		return domain.ErrSubmitInProgress
	}
	c.state = StateRefreshing
	c.alerts = nil
	c.run++
	run := c.run
	c.mu.Unlock()

	handle, err := c.submitter.SubmitRefresh(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if run != c.run {
		c.logger.Info("Discarding refresh response from a dismissed run", zap.Uint64("run", run))
		return nil
	}
	if err != nil {
		c.state = StateFormVisible
		c.addAlertLocked(AlertError, err)
		return err
	}
	gen, err := c.refresh.Start(c.baseCtx, handle.URL, func(ev poller.Event) {
		c.HandleRefreshEvent(run, ev)
	})
	if err != nil {
		c.state = StateFormVisible
		derr := domain.NewInternalError("failed to start refresh poller", err)
		c.addAlertLocked(AlertError, derr)
		return derr
	}
	c.refreshGen = gen
	return nil
}

// HandleRefreshEvent applies one Refresh poller event of the given run.
func (c *Controller) HandleRefreshEvent(run uint64, ev poller.Event) {
	c.mu.Lock()
	completed := c.applyRefreshEventLocked(run, ev)
	hook := c.opts.OnRefreshComplete
	c.mu.Unlock()

	if completed && hook != nil {
		hook()
	}
}

func (c *Controller) applyRefreshEventLocked(run uint64, ev poller.Event) bool {
	if run != c.run || ev.Generation != c.refreshGen || c.closed {
		c.logger.Debug("Dropping stale refresh event", zap.Uint64("run", run), zap.String("kind", string(ev.Kind)))
		return false
	}

	switch ev.Kind {
	case poller.EventComplete:
		if c.state == StateRefreshing {
			c.logger.Info("Standalone refresh complete, resetting session")
			c.resetLocked()
		}
		return true
	case poller.EventFailed:
		switch c.state {
		case StateDualPolling:
			// Update results would be computed against a stale quiz list.
			c.update.Stop()
			c.state = StateFailed
			c.addAlertLocked(AlertError, domain.NewRefreshCascadeError(ev.Err))
			c.logger.Warn("Refresh failed, update cancelled", zap.Error(ev.Err))
		case StateRefreshing:
			c.state = StateFailed
			c.addAlertLocked(AlertError, ev.Err)
			c.logger.Warn("Standalone refresh failed", zap.Error(ev.Err))
		case StateResultsReady:
			c.addAlertLocked(AlertWarning, ev.Err)
			c.logger.Warn("Refresh failed after results were ready", zap.Error(ev.Err))
		}
	}
	return false
}

// HandleUpdateEvent applies one Update poller event of the given run.
func (c *Controller) HandleUpdateEvent(run uint64, ev poller.Event) {
	c.mu.Lock()
	report := c.applyUpdateEventLocked(run, ev)
	hook := c.opts.OnReport
	c.mu.Unlock()

	if report != nil && hook != nil {
		hook(report)
	}
}

func (c *Controller) applyUpdateEventLocked(run uint64, ev poller.Event) *domain.ResultReport {
	if run != c.run || ev.Generation != c.updateGen || c.closed || c.state != StateDualPolling {
		c.logger.Debug("Dropping stale update event", zap.Uint64("run", run), zap.String("kind", string(ev.Kind)))
		return nil
	}

	switch ev.Kind {
	case poller.EventComplete:
		report, err := c.reporter.Build(ev.Status)
		if err != nil {
			c.state = StateFailed
			c.addAlertLocked(AlertError, err)
			c.selection.Clear()
			return nil
		}
		c.report = report
		c.state = StateResultsReady
		c.selection.Clear()
		c.logger.Info("Update complete",
			zap.Int("updated", len(report.Updated.Rows)),
			zap.Int("unchanged", len(report.Unchanged.Rows)))
		return report
	case poller.EventFailed:
		c.state = StateFailed
		c.addAlertLocked(AlertError, ev.Err)
		c.selection.Clear()
		c.logger.Warn("Update failed", zap.Error(ev.Err))
	}
	return nil
}

// Dismiss returns the session to FormVisible from any state. Calling it again
// changes nothing.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	if c.state != StateFormVisible || c.refresh.State() != poller.StateIdle || c.update.State() != poller.StateIdle {
		c.run++
	}
	c.refresh.Reset()
	c.update.Reset()
	c.selection.Clear()
	c.alerts = nil
	c.report = nil
	c.state = StateFormVisible
}

// Report returns the report of the current run.
func (c *Controller) Report() (*domain.ResultReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.report == nil {
		return nil, domain.ErrReportNotReady
	}
	return c.report, nil
}

// ReportText renders the current report as a plain table.
func (c *Controller) ReportText() (string, error) {
	report, err := c.Report()
	if err != nil {
		return "", err
	}
	return c.reporter.Text(report), nil
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	alerts := make([]Alert, len(c.alerts))
	copy(alerts, c.alerts)
	return Snapshot{
		Run:         c.run,
		State:       c.state,
		Chosen:      c.selection.Chosen(),
		Available:   c.selection.Available(),
		Exhausted:   c.selection.Exhausted(),
		Preset:      c.percent.Preset(),
		Override:    c.percent.Override(),
		Presets:     append([]string(nil), c.opts.Presets...),
		Percent:     c.percent.Resolve(),
		InputsOpen:  c.inputsOpenLocked(),
		Refresh:     c.refresh.Progress(),
		Update:      c.update.Progress(),
		Alerts:      alerts,
		ReportReady: c.report != nil,
	}
}

// Close stops both pollers and waits for their goroutines to exit. The
// controller rejects every later transition.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.run++
	c.refresh.Stop()
	c.update.Stop()
	c.cancel()
	c.mu.Unlock()

	c.refresh.Wait()
	c.update.Wait()
	c.logger.Debug("Controller closed")
}

func (c *Controller) addAlertLocked(level string, err error) {
	code := domain.CodeInternal
	var derr *domain.DomainError
	if errors.As(err, &derr) {
		code = derr.Code
	}
	c.alerts = append(c.alerts, Alert{Level: level, Code: code, Message: err.Error()})
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
