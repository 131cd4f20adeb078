package session

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/rehearse/internal/catalog"
	"github.com/felixgeelhaar/rehearse/internal/errors"
	"github.com/felixgeelhaar/rehearse/internal/feedback"
)

// Source supplies the questions a session draws from.
type Source interface {
	ByType(t catalog.Type, d catalog.Difficulty) []catalog.Question
	ByKeyword(keywords ...string) []catalog.Question
}

// Scorer produces feedback for one answer.
type Scorer interface {
	Score(text string, timeSpentSeconds, confidence int, format catalog.AnswerFormat) feedback.Feedback
}

// Options configure a new session.
type Options struct {
	Type       catalog.Type
	Difficulty catalog.Difficulty
	Count      int
	// JobRole labels the session; derived from difficulty and type when empty.
	JobRole string
	// Keywords narrow the draw to questions mentioning any of them. When no
	// drawn question mentions a keyword, the keywords are ignored.
	Keywords []string
}

// Validate checks the options before a draw.
func (o Options) Validate() error {
	if err := o.Type.ValidateFilter(); err != nil {
		return errors.NewInvalidOptionsError(err.Error())
	}
	if o.Difficulty != catalog.DifficultyAny {
		if err := o.Difficulty.Validate(); err != nil {
			return errors.NewInvalidOptionsError(err.Error())
		}
	}
	if o.Count < 1 {
		return errors.NewInvalidOptionsError(fmt.Sprintf("count must be at least 1, got %d", o.Count))
	}
	return nil
}

func (o Options) jobRole() string {
	if o.JobRole != "" {
		return o.JobRole
	}
	parts := make([]string, 0, 3)
	if o.Difficulty != catalog.DifficultyAny {
		parts = append(parts, string(o.Difficulty))
	}
	return strings.Join(append(parts, string(o.Type), "interview"), " ")
}

// Machine computes session transitions. It owns no session; callers pass a
// State in and keep the State that comes out. A Machine is not safe for
// concurrent use because Start consumes its random source.
type Machine struct {
	source Source
	scorer Scorer
	rng    *rand.Rand
	now    func() time.Time
	newID  func() string
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithSeed makes question order reproducible.
func WithSeed(seed uint64) MachineOption {
	return func(m *Machine) {
		m.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand sets the random source used for shuffling.
func WithRand(rng *rand.Rand) MachineOption {
	return func(m *Machine) {
		m.rng = rng
	}
}

// WithClock sets the time source for start, submission and end times.
func WithClock(now func() time.Time) MachineOption {
	return func(m *Machine) {
		m.now = now
	}
}

// WithIDGenerator sets the session id generator.
func WithIDGenerator(newID func() string) MachineOption {
	return func(m *Machine) {
		m.newID = newID
	}
}

// NewMachine returns a Machine drawing from source and scoring with scorer.
func NewMachine(source Source, scorer Scorer, opts ...MachineOption) *Machine {
	m := &Machine{
		source: source,
		scorer: scorer,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start draws questions and begins answering the first one. The draw takes
// the first Count matching questions in catalog order and shuffles them.
// Fewer than Count questions are used when fewer match; an empty draw is an
// error and no session is created.
func (m *Machine) Start(opts Options) (State, error) {
	if err := opts.Validate(); err != nil {
		return Reset(), err
	}

	drawn := m.draw(opts)
	if len(drawn) == 0 {
		return Reset(), errors.NewEmptyDrawError(string(opts.Type), string(opts.Difficulty))
	}
	drawn = slices.Clone(drawn[:min(len(drawn), opts.Count)])
	shuffle(drawn, m.rng)

	s := &Session{
		ID:         m.newID(),
		JobRole:    opts.jobRole(),
		Type:       opts.Type,
		Difficulty: opts.Difficulty,
		Questions:  drawn,
		Answers:    []Answer{},
		StartTime:  m.now(),
	}

	return State{
		Session:    s,
		TimeLeft:   drawn[0].TimeLimit(),
		Answering:  true,
		Confidence: DefaultConfidence,
	}, nil
}

func (m *Machine) draw(opts Options) []catalog.Question {
	drawn := m.source.ByType(opts.Type, opts.Difficulty)
	if len(opts.Keywords) == 0 || len(drawn) == 0 {
		return drawn
	}

	relevant := make(map[string]bool)
	for _, q := range m.source.ByKeyword(opts.Keywords...) {
		relevant[q.ID] = true
	}
	narrowed := make([]catalog.Question, 0, len(drawn))
	for _, q := range drawn {
		if relevant[q.ID] {
			narrowed = append(narrowed, q)
		}
	}
	if len(narrowed) == 0 {
		return drawn
	}
	return narrowed
}

// shuffle is an in-place Fisher-Yates shuffle.
func shuffle(qs []catalog.Question, rng *rand.Rand) {
	for i := len(qs) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

// Submit scores text as the answer to the current question and moves to
// reviewing. Time spent is the question's limit minus the time left.
func (m *Machine) Submit(s State, text string, confidence int) (State, error) {
	if phase := s.Phase(); phase != PhaseAnswering || !s.Answering {
		return s, errors.NewInvalidTransitionError("submit an answer", phase.String())
	}
	q, _ := s.Session.CurrentQuestion()

	confidence = clampConfidence(confidence)
	spent := max(0, q.TimeLimit()-s.TimeLeft)

	answer := Answer{
		QuestionID:       q.ID,
		Text:             text,
		TimeSpentSeconds: spent,
		Confidence:       confidence,
		Feedback:         m.scorer.Score(text, spent, confidence, q.Format()),
		SubmittedAt:      m.now(),
	}

	next := s.Session.clone()
	next.Answers = append(next.Answers, answer)

	s.Session = next
	s.Draft = text
	s.Confidence = confidence
	s.Answering = false
	s.ShowFeedback = true
	return s, nil
}

// Advance leaves reviewing. After the last question the session completes
// with its overall score; otherwise the next question starts with a fresh
// draft and a full countdown.
func (m *Machine) Advance(s State) (State, error) {
	if phase := s.Phase(); phase != PhaseReviewing {
		return s, errors.NewInvalidTransitionError("advance", phase.String())
	}

	next := s.Session.clone()
	next.CurrentIndex++

	if next.IsComplete() {
		end := m.now()
		scores := make([]int, len(next.Answers))
		for i, a := range next.Answers {
			scores[i] = a.Feedback.Score
		}
		score := feedback.OverallScore(scores...)
		next.EndTime = &end
		next.Score = &score

		return State{Session: next, Confidence: DefaultConfidence}, nil
	}

	q, _ := next.CurrentQuestion()
	return State{
		Session:    next,
		TimeLeft:   q.TimeLimit(),
		Answering:  true,
		Paused:     s.Paused,
		Confidence: DefaultConfidence,
	}, nil
}
