package session

import (
	"time"

	"github.com/felixgeelhaar/rehearse/internal/catalog"
	"github.com/felixgeelhaar/rehearse/internal/feedback"
)

// DefaultConfidence is the confidence a fresh answer draft starts with.
const DefaultConfidence = 50

// Phase is the observable position of a practice run.
type Phase int

const (
	// PhaseConfiguring means no session exists yet
	PhaseConfiguring Phase = iota
	// PhaseAnswering means the current answer may be edited and the countdown runs
	PhaseAnswering
	// PhaseReviewing means feedback for the current question is shown
	PhaseReviewing
	// PhaseComplete means every question has been answered
	PhaseComplete
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseConfiguring:
		return "configuring"
	case PhaseAnswering:
		return "answering"
	case PhaseReviewing:
		return "reviewing"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Answer is one submitted response. It is never modified after submission.
type Answer struct {
	QuestionID       string            `json:"question_id" yaml:"question_id"`
	Text             string            `json:"text" yaml:"text"`
	TimeSpentSeconds int               `json:"time_spent_seconds" yaml:"time_spent_seconds"`
	Confidence       int               `json:"confidence" yaml:"confidence"`
	Feedback         feedback.Feedback `json:"feedback" yaml:"feedback"`
	SubmittedAt      time.Time         `json:"submitted_at" yaml:"submitted_at"`
}

// Session is the aggregate of one practice run. Questions are fixed at
// start; Answers grows by one per submission. EndTime and Score are set
// together when the last question is passed.
type Session struct {
	ID           string             `json:"id" yaml:"id"`
	JobRole      string             `json:"job_role" yaml:"job_role"`
	Type         catalog.Type       `json:"type" yaml:"type"`
	Difficulty   catalog.Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Questions    []catalog.Question `json:"questions" yaml:"questions"`
	CurrentIndex int                `json:"current_question_index" yaml:"current_question_index"`
	Answers      []Answer           `json:"answers" yaml:"answers"`
	StartTime    time.Time          `json:"start_time" yaml:"start_time"`
	EndTime      *time.Time         `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Score        *int               `json:"score,omitempty" yaml:"score,omitempty"`
}

// IsComplete reports whether every question has been passed.
func (s *Session) IsComplete() bool {
	return s.CurrentIndex >= len(s.Questions)
}

// CurrentQuestion returns the question at CurrentIndex.
func (s *Session) CurrentQuestion() (catalog.Question, bool) {
	if s.IsComplete() {
		return catalog.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Duration returns the elapsed time of a completed session, or zero.
func (s *Session) Duration() time.Duration {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// clone copies s so that appending answers never aliases a prior snapshot.
func (s *Session) clone() *Session {
	next := *s
	next.Answers = make([]Answer, len(s.Answers), len(s.Answers)+1)
	copy(next.Answers, s.Answers)
	return &next
}
