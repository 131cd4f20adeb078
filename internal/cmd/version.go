package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/rehearse/internal/version"
)

func newVersionCommand(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print version information including version number, git commit,
build date, Go version, and platform.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			info := version.GetInfo()

			if !a.textOutput() {
				return a.print(cmd, info)
			}
			if verbose {
				return a.print(cmd, info.String())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rehearse %s\n", info.Short())
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed version information")
	return cmd
}
