package cmd

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/rehearse/internal/jobdesc"
	"github.com/felixgeelhaar/rehearse/internal/ux"
)

// maxParallelParse bounds concurrent job-description reads.
const maxParallelParse = 4

func newParseCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [FILE...]",
		Short: "Extract role details from job descriptions",
		Long: `Parse job descriptions and report the title, company, skills, required
experience and industry of each, with research tips and industry questions.
With no files, or with "-", the description is read from standard input.

Examples:
  rehearse parse posting.txt
  rehearse parse a.txt b.txt c.txt --format json
  pbpaste | rehearse parse`,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{stdinArg}
			}

			cache, err := jobdesc.NewCache(a.cfg.JobDesc.CacheSize)
			if err != nil {
				return err
			}

			reports := make(ux.JobReports, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxParallelParse)
			for i, name := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					text, err := readSource(cmd, name)
					if err != nil {
						return err
					}
					job := cache.Parse(text)
					a.metrics.RecordJobDescription(string(job.Industry))

					source := name
					if name == stdinArg {
						source = "stdin"
					}
					reports[i] = ux.NewJobReport(source, job)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			stats := cache.Stats()
			a.logger.Debug("job descriptions parsed",
				"files", len(args),
				"cache_hits", stats.Hits,
				"cache_misses", stats.Misses,
			)
			return a.print(cmd, reports)
		}),
	}
	return cmd
}
