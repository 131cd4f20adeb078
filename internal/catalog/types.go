package catalog

import (
	"fmt"
	"strings"
)

// Type is the kind of interview a question belongs to.
type Type string

const (
	TypeTechnical  Type = "technical"
	TypeBehavioral Type = "behavioral"
	TypeHR         Type = "hr"
	TypeDesign     Type = "design"

	// TypeMixed is only valid as a filter; it matches every question.
	TypeMixed Type = "mixed"
)

// QuestionTypes lists the concrete question types in display order.
var QuestionTypes = []Type{TypeTechnical, TypeBehavioral, TypeHR, TypeDesign}

// String returns the string representation of the type
func (t Type) String() string {
	return string(t)
}

// Validate checks that t is a concrete question type.
func (t Type) Validate() error {
	switch t {
	case TypeTechnical, TypeBehavioral, TypeHR, TypeDesign:
		return nil
	default:
		return fmt.Errorf("question type must be technical, behavioral, hr, or design, got %q", t)
	}
}

// ValidateFilter checks that t is a concrete type or mixed.
func (t Type) ValidateFilter() error {
	if t == TypeMixed {
		return nil
	}
	return t.Validate()
}

// ParseType converts user input into a Type filter.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return TypeMixed, nil
	}
	if err := t.ValidateFilter(); err != nil {
		return "", err
	}
	return t, nil
}

// Difficulty grades a question.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"

	// DifficultyAny leaves difficulty unfiltered.
	DifficultyAny Difficulty = ""
)

// Difficulties lists the concrete difficulties in ascending order.
var Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// String returns the string representation of the difficulty
func (d Difficulty) String() string {
	if d == DifficultyAny {
		return "any"
	}
	return string(d)
}

// Validate checks that d is a concrete difficulty.
func (d Difficulty) Validate() error {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return nil
	default:
		return fmt.Errorf("difficulty must be beginner, intermediate, or advanced, got %q", d)
	}
}

// ParseDifficulty converts user input into a Difficulty filter. Empty input
// and "any" yield DifficultyAny.
func ParseDifficulty(s string) (Difficulty, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == "any" {
		return DifficultyAny, nil
	}
	d := Difficulty(v)
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// AnswerFormat is the structure an answer is expected to follow.
type AnswerFormat string

const (
	FormatSTAR      AnswerFormat = "star"
	FormatTechnical AnswerFormat = "technical"
	FormatGeneral   AnswerFormat = "general"
	FormatNone      AnswerFormat = "none"
)

// String returns the string representation of the format
func (f AnswerFormat) String() string {
	if f == "" {
		return string(FormatNone)
	}
	return string(f)
}

// Validate checks that f is a known format. The zero value means none.
func (f AnswerFormat) Validate() error {
	switch f {
	case "", FormatSTAR, FormatTechnical, FormatGeneral, FormatNone:
		return nil
	default:
		return fmt.Errorf("answer format must be star, technical, general, or none, got %q", f)
	}
}

// ParseAnswerFormat converts user input into an AnswerFormat.
func ParseAnswerFormat(s string) (AnswerFormat, error) {
	f := AnswerFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatNone, nil
	}
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}
