package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/rehearse/internal/catalog"
	"github.com/felixgeelhaar/rehearse/internal/errors"
	"github.com/felixgeelhaar/rehearse/internal/jobdesc"
	"github.com/felixgeelhaar/rehearse/internal/session"
	"github.com/felixgeelhaar/rehearse/internal/tui"
	"github.com/felixgeelhaar/rehearse/internal/ux"
)

type practiceOptions struct {
	role         string
	jobFile      string
	interactive  bool
	setup        bool
	showAnswers  bool
	flagsChanged bool
}

func newPracticeCommand(a *app) *cobra.Command {
	var po practiceOptions

	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Run a timed mock interview session",
		Long: `Run a mock interview session. Questions are drawn from the catalog by type
and difficulty, shuffled, and answered one at a time against a countdown.
Each answer is scored immediately and the session ends with a summary.

In the default line mode, finish an answer with a line containing only "."
and then enter your confidence from 0 to 100. Use --tui for the full-screen
interface.

Examples:
  rehearse practice --type technical --difficulty beginner --count 3
  rehearse practice --type behavioral --tui
  rehearse practice --job posting.txt --role "Backend Engineer"
  rehearse practice --seed 42 --format json < answers.txt`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationConfigFlags: "true"},
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			po.flagsChanged = cmd.Flags().Changed("type") || cmd.Flags().Changed("difficulty") || cmd.Flags().Changed("count")
			return a.practice(cmd, po)
		}),
	}

	f := cmd.Flags()
	f.String("type", string(catalog.TypeMixed), "question type: technical, behavioral, hr, design, mixed")
	f.String("difficulty", string(catalog.DifficultyIntermediate), "difficulty: beginner, intermediate, advanced, any")
	f.Int("count", 5, "number of questions")
	f.Uint64("seed", 0, "shuffle seed for a reproducible question order (0 is random)")
	f.StringVar(&po.role, "role", "", "job role shown for the session")
	f.StringVar(&po.jobFile, "job", "", "job description file used to pick relevant questions (- for stdin)")
	f.BoolVar(&po.interactive, "tui", false, "use the full-screen interface")
	f.BoolVar(&po.setup, "setup", false, "choose type, difficulty and count in a form (with --tui)")
	f.BoolVar(&po.showAnswers, "show-answers", false, "include answer texts and feedback in json/yaml summaries")
	return cmd
}

func (a *app) practice(cmd *cobra.Command, po practiceOptions) error {
	opts, err := a.cfg.SessionOptions()
	if err != nil {
		return err
	}
	opts.JobRole = po.role

	if po.jobFile == stdinArg && !po.interactive {
		return errors.NewInvalidOptionsError("--job - cannot share standard input with line-mode answers").
			WithSuggestion("Pass the job description as a file, or use --tui")
	}
	if po.jobFile != "" {
		job, err := a.readJob(cmd, po.jobFile)
		if err != nil {
			return err
		}
		opts.Keywords = job.Skills
		if opts.JobRole == "" && job.Title != "" {
			opts.JobRole = job.Title
		}
	}

	machine, _, err := a.machine(a.cfg.Practice.Seed)
	if err != nil {
		return err
	}

	var s *session.Session
	if po.interactive {
		s, err = a.practiceTUI(cmd, machine, opts, po)
	} else {
		s, err = a.practiceLines(cmd, machine, opts)
	}
	if s != nil && len(s.Answers) > 0 {
		if perr := a.print(cmd, ux.NewSessionSummary(s, po.showAnswers)); perr != nil && err == nil {
			err = perr
		}
	}
	return err
}

func (a *app) readJob(cmd *cobra.Command, name string) (jobdesc.JobDescription, error) {
	text, err := readSource(cmd, name)
	if err != nil {
		return jobdesc.JobDescription{}, err
	}
	job := jobdesc.Parse(text)
	a.metrics.RecordJobDescription(string(job.Industry))
	a.logger.Debug("job description parsed",
		"title", job.Title,
		"skills", strings.Join(job.Skills, ","),
		"industry", job.Industry,
	)
	return job, nil
}

func (a *app) practiceTUI(cmd *cobra.Command, machine *session.Machine, opts session.Options, po practiceOptions) (*session.Session, error) {
	ctx := cmd.Context()
	if po.setup || !po.flagsChanged {
		var err error
		if opts, err = tui.RunSetup(ctx, opts); err != nil {
			return nil, err
		}
	}

	m, err := tui.NewPracticeModel(machine, opts,
		tui.WithTickInterval(a.cfg.Practice.TickInterval),
		tui.WithStyles(a.styles),
		tui.WithLogger(a.logger),
		tui.WithMetrics(a.metrics),
	)
	if err != nil {
		return nil, err
	}
	return tui.RunPractice(ctx, m)
}

// practiceLines runs a session over line-oriented input. Prompts and
// per-answer feedback go to stdout for text output and to stderr otherwise,
// so that json and yaml summaries stay parseable.
func (a *app) practiceLines(cmd *cobra.Command, machine *session.Machine, opts session.Options) (*session.Session, error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	if !a.textOutput() {
		out = cmd.ErrOrStderr()
	}

	ctrl := session.NewController(machine,
		session.WithTickInterval(a.cfg.Practice.TickInterval),
		session.WithLogger(a.logger),
		session.WithMetrics(a.metrics),
	)
	defer ctrl.Close()

	st, err := ctrl.Start(opts)
	if err != nil {
		return nil, err
	}

	prompter := ux.NewPrompter(cmd.InOrStdin(), out)
	styles := a.styles
	if !a.textOutput() {
		styles = ux.PlainStyles()
	}

	for st.Phase() != session.PhaseComplete {
		s := st.Session
		q, _ := s.CurrentQuestion()
		fmt.Fprintf(out, "\n%s\n", styles.Title.Render(fmt.Sprintf("Question %d/%d", s.CurrentIndex+1, len(s.Questions))))
		fmt.Fprintf(out, "%s\n", styles.Muted.Render(questionLine(q)))
		fmt.Fprintf(out, "%s\n", q.Text)
		fmt.Fprintf(out, "%s\n", styles.Help.Render(`Finish your answer with a line containing only "."`))

		text, err := prompter.ReadAnswer(ctx)
		if err != nil {
			return s, a.endOfInput(ctrl, err)
		}
		confidence, err := prompter.PromptInt(ctx, "Confidence 0-100", session.DefaultConfidence, 0, 100)
		if err != nil {
			return s, a.endOfInput(ctrl, err)
		}

		expired := ctrl.State().Expired()
		if st, err = ctrl.Submit(text, confidence); err != nil {
			return st.Session, err
		}
		if expired {
			fmt.Fprintln(out, styles.Warning.Render("Time limit passed before you submitted."))
		}

		answer, _ := st.LastAnswer()
		if err := ux.NewFeedbackReport(q, answer).RenderText(out, styles); err != nil {
			return st.Session, err
		}

		if st, err = ctrl.Advance(); err != nil {
			return st.Session, err
		}
	}
	fmt.Fprintln(out)
	return st.Session, nil
}

// endOfInput abandons the running session when input ends or the context is
// cancelled before the last answer.
func (a *app) endOfInput(ctrl *session.Controller, err error) error {
	ctrl.Reset()
	if stderrors.Is(err, io.EOF) {
		return errors.Wrap(errors.ErrCodeFileReadFailed, "input ended before the session was complete", io.ErrUnexpectedEOF).
			WithSuggestion(`End each answer with a line containing only "." and provide one answer per question`)
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.NewFileReadError("standard input", err)
}

func questionLine(q catalog.Question) string {
	parts := []string{q.Type.String(), q.Difficulty.String()}
	if q.Category != "" {
		parts = append(parts, q.Category)
	}
	parts = append(parts, fmt.Sprintf("%ds", q.TimeLimit()))
	if q.Format() == catalog.FormatSTAR {
		parts = append(parts, "answer in STAR format")
	}
	return strings.Join(parts, " · ")
}
