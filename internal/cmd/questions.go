package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/rehearse/internal/catalog"
	"github.com/felixgeelhaar/rehearse/internal/errors"
	"github.com/felixgeelhaar/rehearse/internal/ux"
)

func newQuestionsCommand(a *app) *cobra.Command {
	var (
		typ         string
		difficulty  string
		keywords    []string
		fingerprint bool
	)

	cmd := &cobra.Command{
		Use:     "questions",
		Aliases: []string{"q"},
		Short:   "List catalog questions",
		Long: `List the questions in the catalog, optionally filtered by type, difficulty
and keywords. Keywords match the question text case-insensitively.

Examples:
  rehearse questions --type technical --difficulty advanced
  rehearse questions --keyword leadership --keyword conflict
  rehearse questions --catalog my-questions.yaml --fingerprint`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}

			t, err := catalog.ParseType(typ)
			if err != nil {
				return errors.NewInvalidOptionsError(err.Error())
			}
			d, err := catalog.ParseDifficulty(difficulty)
			if err != nil {
				return errors.NewInvalidOptionsError(err.Error())
			}

			qs := c.ByType(t, d)
			if len(keywords) > 0 {
				matched := make(map[string]bool)
				for _, q := range c.ByKeyword(keywords...) {
					matched[q.ID] = true
				}
				filtered := qs[:0]
				for _, q := range qs {
					if matched[q.ID] {
						filtered = append(filtered, q)
					}
				}
				qs = filtered
			}

			list := ux.QuestionList{Count: len(qs), Questions: qs}
			if fingerprint {
				if list.Fingerprint, err = c.Fingerprint(); err != nil {
					return err
				}
			}
			return a.print(cmd, list)
		}),
	}

	f := cmd.Flags()
	f.StringVar(&typ, "type", string(catalog.TypeMixed), "question type: technical, behavioral, hr, design, mixed")
	f.StringVar(&difficulty, "difficulty", "any", "difficulty: beginner, intermediate, advanced, any")
	f.StringSliceVarP(&keywords, "keyword", "k", nil, "only questions mentioning any of these keywords")
	f.BoolVar(&fingerprint, "fingerprint", false, "include the catalog fingerprint")
	return cmd
}
