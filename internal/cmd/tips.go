package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/rehearse/internal/errors"
	"github.com/felixgeelhaar/rehearse/internal/resources"
	"github.com/felixgeelhaar/rehearse/internal/ux"
)

func newTipsCommand(a *app) *cobra.Command {
	var (
		limit    int
		industry string
	)

	cmd := &cobra.Command{
		Use:   "tips",
		Short: "Show interview preparation tips",
		Long: `Show preparation material: the STAR method, common interview questions,
salary negotiation and body language tips, and sample questions by industry.

Examples:
  rehearse tips
  rehearse tips --limit 3
  rehearse tips --industry Finance --format yaml`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			bundle := resources.All(limit)
			if industry != "" {
				var kept []resources.IndustryQuestions
				for _, iq := range bundle.Industries {
					if strings.EqualFold(string(iq.Industry), industry) {
						kept = append(kept, iq)
					}
				}
				if len(kept) == 0 {
					return errors.NewInvalidOptionsError("no sample questions for industry " + industry).
						WithSuggestion("Known industries: " + knownIndustries(bundle))
				}
				bundle.Industries = kept
			}
			return a.print(cmd, ux.TipsReport{Bundle: bundle})
		}),
	}

	f := cmd.Flags()
	f.IntVar(&limit, "limit", 0, "show at most this many tips per list (0 shows all)")
	f.StringVar(&industry, "industry", "", "only show sample questions for this industry")
	return cmd
}

func knownIndustries(b resources.Bundle) string {
	names := make([]string, 0, len(b.Industries))
	for _, iq := range b.Industries {
		names = append(names, string(iq.Industry))
	}
	return strings.Join(names, ", ")
}
