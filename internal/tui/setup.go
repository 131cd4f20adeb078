package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/felixgeelhaar/rehearse/internal/catalog"
	"github.com/felixgeelhaar/rehearse/internal/session"
)

const maxSetupCount = 50

// setupValues backs the fields of the setup form.
type setupValues struct {
	Type       string
	Difficulty string
	Count      string
}

func newSetupValues(defaults session.Options) *setupValues {
	count := defaults.Count
	if count < 1 {
		count = 5
	}
	typ := defaults.Type
	if typ == "" {
		typ = catalog.TypeMixed
	}
	return &setupValues{
		Type:       string(typ),
		Difficulty: string(defaults.Difficulty),
		Count:      strconv.Itoa(count),
	}
}

// options applies the form values on top of base, keeping its job role and
// keywords.
func (v *setupValues) options(base session.Options) (session.Options, error) {
	t, err := catalog.ParseType(v.Type)
	if err != nil {
		return base, err
	}
	d, err := catalog.ParseDifficulty(v.Difficulty)
	if err != nil {
		return base, err
	}
	n, err := parseCount(v.Count)
	if err != nil {
		return base, err
	}
	base.Type = t
	base.Difficulty = d
	base.Count = n
	return base, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("enter a whole number")
	}
	if n < 1 || n > maxSetupCount {
		return 0, fmt.Errorf("choose between 1 and %d questions", maxSetupCount)
	}
	return n, nil
}

func newSetupForm(v *setupValues) *huh.Form {
	typeOptions := make([]huh.Option[string], 0, len(catalog.QuestionTypes)+1)
	typeOptions = append(typeOptions, huh.NewOption("mixed (all types)", string(catalog.TypeMixed)))
	for _, t := range catalog.QuestionTypes {
		typeOptions = append(typeOptions, huh.NewOption(t.String(), string(t)))
	}

	difficultyOptions := []huh.Option[string]{huh.NewOption("any", string(catalog.DifficultyAny))}
	for _, d := range catalog.Difficulties {
		difficultyOptions = append(difficultyOptions, huh.NewOption(d.String(), string(d)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Interview type").
				Options(typeOptions...).
				Value(&v.Type),
			huh.NewSelect[string]().
				Title("Difficulty").
				Options(difficultyOptions...).
				Value(&v.Difficulty),
			huh.NewInput().
				Title("Number of questions").
				Value(&v.Count).
				Validate(func(s string) error {
					_, err := parseCount(s)
					return err
				}),
		).Title("Practice setup").
			Description("Enter to confirm each field • Ctrl+C to quit"),
	)
}

// RunSetup asks for the interview type, difficulty and question count,
// starting from defaults.
func RunSetup(ctx context.Context, defaults session.Options) (session.Options, error) {
	v := newSetupValues(defaults)
	if err := newSetupForm(v).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return defaults, context.Canceled
		}
		return defaults, fmt.Errorf("setup form: %w", err)
	}
	return v.options(defaults)
}
