package catalog

import (
	"slices"
)

// DefaultTimeLimitSeconds applies to questions without an explicit limit.
const DefaultTimeLimitSeconds = 300

// Question is an immutable catalog entry.
type Question struct {
	ID               string       `yaml:"id" json:"id" validate:"required"`
	Text             string       `yaml:"text" json:"text" validate:"required"`
	Type             Type         `yaml:"type" json:"type" validate:"required,oneof=technical behavioral hr design"`
	Difficulty       Difficulty   `yaml:"difficulty" json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	Category         string       `yaml:"category" json:"category"`
	TimeLimitSeconds int          `yaml:"time_limit,omitempty" json:"time_limit,omitempty" validate:"gte=0"`
	ExpectedFormat   AnswerFormat `yaml:"expected_format,omitempty" json:"expected_format,omitempty" validate:"omitempty,oneof=star technical general none"`
	FollowUps        []string     `yaml:"follow_ups,omitempty" json:"follow_ups,omitempty" validate:"dive,required"`
}

// TimeLimit returns the question's limit in seconds, falling back to
// DefaultTimeLimitSeconds.
func (q Question) TimeLimit() int {
	if q.TimeLimitSeconds <= 0 {
		return DefaultTimeLimitSeconds
	}
	return q.TimeLimitSeconds
}

// Format returns the expected answer format, normalising the zero value to
// FormatNone.
func (q Question) Format() AnswerFormat {
	if q.ExpectedFormat == "" {
		return FormatNone
	}
	return q.ExpectedFormat
}

// Clone returns a copy that shares no slices with q.
func (q Question) Clone() Question {
	q.FollowUps = slices.Clone(q.FollowUps)
	return q
}
