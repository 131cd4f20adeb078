package session

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/rehearse/internal/errors"
	"github.com/felixgeelhaar/rehearse/internal/feedback"
	"github.com/felixgeelhaar/rehearse/internal/log"
	"github.com/felixgeelhaar/rehearse/internal/metrics"
)

// DefaultTickInterval is the wall-clock length of one countdown unit.
const DefaultTickInterval = time.Second

// Controller is the single owner of a practice run's State. It serializes
// every event, including timer ticks, behind one mutex and runs the
// countdown ticker only while the current answer is being timed.
type Controller struct {
	mu       sync.Mutex
	machine  *Machine
	state    State
	interval time.Duration
	logger   *log.Logger
	metrics  *metrics.Metrics
	onTick   func(State)

	// Countdown goroutine; nil when stopped.
	cancel context.CancelFunc
	done   chan struct{}
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithTickInterval sets the duration of one countdown unit.
func WithTickInterval(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithLogger sets the controller's logger.
func WithLogger(logger *log.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithMetrics records session activity into m.
func WithMetrics(m *metrics.Metrics) ControllerOption {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithTickObserver registers fn to receive the State after every applied
// tick. fn runs on the ticker goroutine without the controller lock held.
func WithTickObserver(fn func(State)) ControllerOption {
	return func(c *Controller) {
		c.onTick = fn
	}
}

// NewController returns a controller in the configuring phase.
func NewController(machine *Machine, opts ...ControllerOption) *Controller {
	c := &Controller{
		machine:  machine,
		state:    Reset(),
		interval: DefaultTickInterval,
		logger:   log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "session")
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// TimerRunning reports whether the countdown goroutine is live.
func (c *Controller) TimerRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Start replaces any current session with a new one. On error the current
// session is kept.
func (c *Controller) Start(opts Options) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.machine.Start(opts)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeSessionEmptyDraw) {
			c.metrics.RecordDrawRejected(string(opts.Type), opts.Difficulty.String())
		}
		c.metrics.RecordError(string(errors.CodeOf(err)), "session")
		c.logger.WithError(err).Warn("session start rejected")
		return c.state, err
	}

	c.abandonLocked()
	c.state = next
	c.restartTimerLocked()

	c.metrics.RecordSessionStarted(string(opts.Type), opts.Difficulty.String())
	c.logger.Debug("session started",
		"session_id", next.Session.ID,
		"job_role", next.Session.JobRole,
		"questions", len(next.Session.Questions),
	)
	return c.state, nil
}

// Submit scores text as the answer to the current question.
func (c *Controller) Submit(text string, confidence int) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.machine.Submit(c.state, text, confidence)
	if err != nil {
		c.rejectLocked("submit", err)
		return c.state, err
	}
	c.state = next
	c.syncTimerLocked()

	a, _ := next.LastAnswer()
	q, _ := next.Session.CurrentQuestion()
	c.metrics.RecordAnswer(q.Format().String(), a.Feedback.Band.String(), a.Feedback.Score, a.TimeSpentSeconds)
	c.logger.Debug("answer scored",
		"session_id", next.Session.ID,
		"question_id", a.QuestionID,
		"score", a.Feedback.Score,
		"time_spent", a.TimeSpentSeconds,
	)
	return c.state, nil
}

// Advance moves past the reviewed question.
func (c *Controller) Advance() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.machine.Advance(c.state)
	if err != nil {
		c.rejectLocked("advance", err)
		return c.state, err
	}
	c.state = next
	c.restartTimerLocked()

	if s := next.Session; s.IsComplete() {
		c.metrics.RecordSessionCompleted(string(s.Type), feedback.BandFor(*s.Score).String(), *s.Score, s.Duration())
		c.logger.Debug("session complete", "session_id", s.ID, "score", *s.Score, "duration", s.Duration())
	}
	return c.state, nil
}

// SetDraft updates the answer draft.
func (c *Controller) SetDraft(text string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.WithDraft(text)
	return c.state
}

// SetConfidence updates the draft confidence.
func (c *Controller) SetConfidence(confidence int) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.WithConfidence(confidence)
	return c.state
}

// Pause stops the countdown.
func (c *Controller) Pause() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Pause()
	c.syncTimerLocked()
	return c.state
}

// Resume restarts the countdown if an answer is being timed.
func (c *Controller) Resume() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Resume()
	c.syncTimerLocked()
	return c.state
}

// Reset discards the session and cancels the countdown.
func (c *Controller) Reset() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.abandonLocked()
	c.state = Reset()
	c.stopTimerLocked()
	return c.state
}

// Close cancels the countdown and waits for its goroutine to exit.
func (c *Controller) Close() {
	c.mu.Lock()
	done := c.done
	c.stopTimerLocked()
	c.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (c *Controller) rejectLocked(op string, err error) {
	phase := c.state.Phase().String()
	c.metrics.RecordTransitionRejected(op, phase)
	c.logger.WithError(err).Warn("transition rejected", "operation", op, "phase", phase)
}

func (c *Controller) abandonLocked() {
	switch phase := c.state.Phase(); phase {
	case PhaseAnswering, PhaseReviewing:
		c.metrics.RecordSessionAbandoned(phase.String())
		c.logger.Debug("session abandoned", "session_id", c.state.Session.ID, "phase", phase.String())
	}
}

// syncTimerLocked starts or stops the countdown to match the state.
func (c *Controller) syncTimerLocked() {
	if c.state.TimerActive() {
		c.startTimerLocked()
	} else {
		c.stopTimerLocked()
	}
}

// restartTimerLocked gives a new question a fresh countdown so no tick
// scheduled for the previous one can reach it.
func (c *Controller) restartTimerLocked() {
	c.stopTimerLocked()
	c.syncTimerLocked()
}

func (c *Controller) startTimerLocked() {
	if c.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	go c.run(ctx, done)
}

func (c *Controller) stopTimerLocked() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
	c.done = nil
}

func (c *Controller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !c.tick(ctx) {
				return
			}
		}
	}
}

// tick applies one countdown unit. It reports whether the ticker should
// keep running.
func (c *Controller) tick(ctx context.Context) bool {
	c.mu.Lock()
	// A stop may have won the race for the lock; its tick must not apply.
	if ctx.Err() != nil {
		c.mu.Unlock()
		return false
	}

	c.state = c.state.Tick()
	snapshot := c.state
	keepRunning := snapshot.TimerActive()
	if !keepRunning {
		c.logger.Debug("countdown expired", "session_id", snapshot.Session.ID, "question_index", snapshot.Session.CurrentIndex)
		c.stopTimerLocked()
	}
	c.mu.Unlock()

	if c.onTick != nil {
		c.onTick(snapshot)
	}
	return keepRunning
}
