package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/rehearse/internal/catalog"
	"github.com/felixgeelhaar/rehearse/internal/errors"
	"github.com/felixgeelhaar/rehearse/internal/session"
	"github.com/felixgeelhaar/rehearse/internal/ux"
)

func newScoreCommand(a *app) *cobra.Command {
	var (
		questionID     string
		expectedFormat string
		answerFile     string
		timeSpent      int
		confidence     int
	)

	cmd := &cobra.Command{
		Use:   "score [ANSWER]",
		Short: "Score a single answer",
		Long: `Score one answer outside a session. The answer is taken from the argument,
from --file, or from standard input.

With --question the expected format and follow-up questions come from the
catalog entry; otherwise use --expected-format star to apply STAR scoring.

Examples:
  rehearse score "I led the migration and the result was a 40% cost reduction"
  rehearse score --question behav-001 --time 150 --file answer.txt
  rehearse score --expected-format star --confidence 80 < answer.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			if timeSpent < 0 {
				return errors.NewInvalidOptionsError(fmt.Sprintf("--time must not be negative, got %d", timeSpent))
			}

			var text string
			switch {
			case len(args) == 1:
				text = args[0]
			case answerFile != "":
				var err error
				if text, err = readSource(cmd, answerFile); err != nil {
					return err
				}
			default:
				var err error
				if text, err = readSource(cmd, stdinArg); err != nil {
					return err
				}
			}
			text = strings.TrimSpace(text)

			var q catalog.Question
			if questionID != "" {
				c, err := a.catalog()
				if err != nil {
					return err
				}
				var ok bool
				if q, ok = c.Get(questionID); !ok {
					return errors.NewInvalidOptionsError(fmt.Sprintf("unknown question id %q", questionID)).
						WithSuggestion("List question ids with 'rehearse questions'")
				}
			} else {
				format, err := catalog.ParseAnswerFormat(expectedFormat)
				if err != nil {
					return errors.NewInvalidOptionsError(err.Error())
				}
				q.ExpectedFormat = format
			}

			engine, err := a.engine()
			if err != nil {
				return err
			}
			fb := engine.Score(text, timeSpent, confidence, q.Format())
			a.metrics.RecordAnswer(q.Format().String(), fb.Band.String(), fb.Score, timeSpent)

			report := ux.NewFeedbackReport(q, session.Answer{
				QuestionID:       q.ID,
				Text:             text,
				TimeSpentSeconds: timeSpent,
				Confidence:       max(0, min(100, confidence)),
				Feedback:         fb,
			})
			return a.print(cmd, report)
		}),
	}

	f := cmd.Flags()
	f.StringVar(&questionID, "question", "", "catalog question id the answer responds to")
	f.StringVar(&expectedFormat, "expected-format", string(catalog.FormatNone), "expected answer format: star, technical, general, none")
	f.StringVarP(&answerFile, "file", "f", "", "read the answer from a file (- for stdin)")
	f.IntVar(&timeSpent, "time", 120, "seconds spent answering")
	f.IntVar(&confidence, "confidence", session.DefaultConfidence, "self-rated confidence 0-100")
	return cmd
}
