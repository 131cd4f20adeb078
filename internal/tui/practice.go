package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/rehearse/internal/errors"
	"github.com/felixgeelhaar/rehearse/internal/feedback"
	"github.com/felixgeelhaar/rehearse/internal/log"
	"github.com/felixgeelhaar/rehearse/internal/metrics"
	"github.com/felixgeelhaar/rehearse/internal/session"
	"github.com/felixgeelhaar/rehearse/internal/ux"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	confidenceStep = 10
)

// tickMsg is one countdown second. Ticks carry the generation of the timer
// that scheduled them; a tick from an older generation is dropped.
type tickMsg struct {
	generation int
}

// PracticeModel is the interactive practice screen. It owns its session
// state and applies every transition through a session.Machine.
type PracticeModel struct {
	machine *session.Machine
	opts    session.Options
	state   session.State

	interval   time.Duration
	generation int

	editor    textarea.Model
	countdown progress.Model
	review    viewport.Model
	help      help.Model
	keys      keyMap
	styles    ux.Styles

	logger  *log.Logger
	metrics *metrics.Metrics

	width    int
	height   int
	aborted  bool
	quitting bool
	lastErr  error
}

// PracticeOption configures a PracticeModel.
type PracticeOption func(*PracticeModel)

// WithTickInterval sets the wall-clock length of one countdown second.
func WithTickInterval(d time.Duration) PracticeOption {
	return func(m *PracticeModel) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithStyles sets the styles used for rendering.
func WithStyles(s ux.Styles) PracticeOption {
	return func(m *PracticeModel) {
		m.styles = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) PracticeOption {
	return func(m *PracticeModel) {
		m.logger = l
	}
}

// WithMetrics records session activity on mt.
func WithMetrics(mt *metrics.Metrics) PracticeOption {
	return func(m *PracticeModel) {
		m.metrics = mt
	}
}

// NewPracticeModel starts a session with opts and returns the screen for it.
// An empty draw or invalid options are returned as errors before any screen
// is shown.
func NewPracticeModel(machine *session.Machine, opts session.Options, options ...PracticeOption) (*PracticeModel, error) {
	editor := textarea.New()
	editor.Placeholder = "Type your answer..."
	editor.CharLimit = 0
	editor.ShowLineNumbers = false
	editor.SetHeight(6)

	m := &PracticeModel{
		machine:   machine,
		opts:      opts,
		interval:  session.DefaultTickInterval,
		editor:    editor,
		countdown: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		review:    viewport.New(defaultWidth, defaultHeight-6),
		help:      help.New(),
		keys:      newKeyMap(),
		styles:    ux.DefaultStyles(),
		logger:    log.DefaultLogger(),
		width:     defaultWidth,
		height:    defaultHeight,
	}
	for _, o := range options {
		o(m)
	}
	m.logger = m.logger.With("component", "tui")
	m.resize()

	if err := m.start(); err != nil {
		return nil, err
	}
	return m, nil
}

// State returns the current session state.
func (m *PracticeModel) State() session.State {
	return m.state
}

// Aborted reports whether the user left before the session completed.
func (m *PracticeModel) Aborted() bool {
	return m.aborted
}

func (m *PracticeModel) start() error {
	next, err := m.machine.Start(m.opts)
	if err != nil {
		m.metrics.RecordError(string(errors.CodeOf(err)), "tui")
		m.logger.WithError(err).Warn("session start rejected")
		return err
	}
	if m.state.Phase() == session.PhaseAnswering || m.state.Phase() == session.PhaseReviewing {
		m.metrics.RecordSessionAbandoned(m.state.Phase().String())
	}
	m.state = next
	m.editor.Reset()
	m.editor.Focus()
	m.keys.update(m.state)
	m.metrics.RecordSessionStarted(string(m.opts.Type), m.opts.Difficulty.String())
	m.logger.Debug("session started",
		"session_id", next.Session.ID,
		"questions", len(next.Session.Questions),
	)
	return nil
}

// Init implements tea.Model.
func (m *PracticeModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.restartTimer())
}

// restartTimer invalidates outstanding ticks and schedules a new one when
// the countdown is active.
func (m *PracticeModel) restartTimer() tea.Cmd {
	m.generation++
	return m.scheduleTick()
}

func (m *PracticeModel) scheduleTick() tea.Cmd {
	if !m.state.TimerActive() {
		return nil
	}
	gen := m.generation
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{generation: gen}
	})
}

// Update implements tea.Model.
func (m *PracticeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tickMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.state = m.state.Tick()
		return m, m.scheduleTick()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Abort) {
			m.aborted = m.state.Phase() != session.PhaseComplete
			m.quitting = true
			m.generation++
			return m, tea.Quit
		}
		switch m.state.Phase() {
		case session.PhaseAnswering:
			return m.updateAnswering(msg)
		case session.PhaseReviewing:
			return m.updateReviewing(msg)
		case session.PhaseComplete:
			return m.updateComplete(msg)
		}
	}

	if m.state.Phase() == session.PhaseAnswering {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *PracticeModel) updateAnswering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keys.Pause):
		if m.state.Paused {
			m.state = m.state.Resume()
		} else {
			m.state = m.state.Pause()
		}
		m.keys.update(m.state)
		return m, m.restartTimer()

	case key.Matches(msg, m.keys.ConfUp):
		m.state = m.state.WithConfidence(m.state.Confidence + confidenceStep)
		return m, nil

	case key.Matches(msg, m.keys.ConfDn):
		m.state = m.state.WithConfidence(m.state.Confidence - confidenceStep)
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.state = m.state.WithDraft(m.editor.Value())
	return m, cmd
}

func (m *PracticeModel) submit() tea.Cmd {
	q, _ := m.state.Session.CurrentQuestion()
	next, err := m.machine.Submit(m.state, m.editor.Value(), m.state.Confidence)
	if err != nil {
		m.reject("submit", err)
		return nil
	}
	m.state = next
	m.lastErr = nil
	m.editor.Blur()
	m.keys.update(m.state)

	a, _ := m.state.LastAnswer()
	m.metrics.RecordAnswer(q.Format().String(), a.Feedback.Band.String(), a.Feedback.Score, a.TimeSpentSeconds)
	m.logger.Debug("answer scored", "question_id", q.ID, "score", a.Feedback.Score)

	m.review.SetContent(renderText(ux.NewFeedbackReport(q, a), m.styles))
	m.review.GotoTop()
	return m.restartTimer()
}

func (m *PracticeModel) updateReviewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		return m, m.advance()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		m.aborted = true
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.review, cmd = m.review.Update(msg)
	return m, cmd
}

func (m *PracticeModel) advance() tea.Cmd {
	next, err := m.machine.Advance(m.state)
	if err != nil {
		m.reject("advance", err)
		return nil
	}
	m.state = next
	m.lastErr = nil
	m.keys.update(m.state)

	if s := m.state.Session; m.state.Phase() == session.PhaseComplete {
		m.metrics.RecordSessionCompleted(string(s.Type), feedback.BandFor(*s.Score).String(), *s.Score, s.Duration())
		m.logger.Debug("session completed", "session_id", s.ID, "score", *s.Score)
		m.review.SetContent(renderText(ux.NewSessionSummary(s, false), m.styles))
		m.review.GotoTop()
		return m.restartTimer()
	}

	m.editor.Reset()
	return tea.Batch(m.editor.Focus(), m.restartTimer())
}

func (m *PracticeModel) updateComplete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Restart):
		if err := m.start(); err != nil {
			m.lastErr = err
			return m, nil
		}
		return m, m.restartTimer()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.review, cmd = m.review.Update(msg)
	return m, cmd
}

func (m *PracticeModel) reject(op string, err error) {
	m.lastErr = err
	m.metrics.RecordTransitionRejected(op, m.state.Phase().String())
	m.logger.WithError(err).Warn("transition rejected", "operation", op)
}

func (m *PracticeModel) resize() {
	inner := max(20, m.width-4)
	m.editor.SetWidth(inner)
	m.countdown.Width = min(inner, 60)
	m.help.Width = m.width
	m.review.Width = inner
	m.review.Height = max(5, m.height-8)
}

// RunPractice runs the practice screen until the user quits and returns the
// final session. Aborting before completion yields context.Canceled together
// with the partial session.
func RunPractice(ctx context.Context, m *PracticeModel, opts ...tea.ProgramOption) (*session.Session, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)

	final, err := p.Run()
	if ctx.Err() != nil {
		return m.state.Session, ctx.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("run practice screen: %w", err)
	}

	pm, ok := final.(*PracticeModel)
	if !ok {
		return nil, fmt.Errorf("invalid final model type %T", final)
	}
	if pm.Aborted() {
		if phase := pm.state.Phase(); phase == session.PhaseAnswering || phase == session.PhaseReviewing {
			pm.metrics.RecordSessionAbandoned(phase.String())
		}
		return pm.state.Session, context.Canceled
	}
	return pm.state.Session, nil
}
