package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"dendrify.dev/dendrify/internal/runtime"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var (
		repoDir string
		quiet   bool
		rooted  bool
		logFile string
	)

	rootCmd := &cobra.Command{
		Use:   "git-dendrify",
		Short: "Transform git histories between linear and dendrified form",
		Long: `git-dendrify converts between two shapes of the same history.

In the linear form, commits whose message starts with <s> or </s> mark the
start and end of a section. In the dendrified form, every section is a side
branch merged back into the main line by a merge commit that changes nothing.

Converting linear -> dendrified -> linear gives back the same messages, trees
and authorship.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsRepository(cmd) {
				return nil
			}
			flags := cmd.Flags()
			ctx, err := runtime.Open(repoDir, runtime.Overrides{
				Quiet:   boolOverride(flags, "quiet", quiet),
				Rooted:  boolOverride(flags, "rooted", rooted),
				LogFile: stringOverride(flags, "log-file", logFile),
			}, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			ctx.Splog.Debug("repository root: %s", ctx.RepoRoot)
			cmd.SetContext(runtime.WithContext(cmd.Context(), ctx))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&repoDir, "repo", "C", ".", "Run as if started in this directory")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Do not report each created commit")
	flags.BoolVar(&rooted, "rooted", false, "Allow walking down to a parentless commit; the base becomes optional")
	flags.StringVar(&logFile, "log-file", "", "Also write output to this rotating log file")

	rootCmd.AddCommand(newDendrifyCmd())
	rootCmd.AddCommand(newLinearizeCmd())
	rootCmd.AddCommand(newInitBaseCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// needsRepository is false for shell completion, which must work anywhere
func needsRepository(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// boolOverride returns a pointer to value only when the flag was given
func boolOverride(flags *pflag.FlagSet, name string, value bool) *bool {
	if !flags.Changed(name) {
		return nil
	}
	return &value
}

func stringOverride(flags *pflag.FlagSet, name string, value string) *string {
	if !flags.Changed(name) {
		return nil
	}
	return &value
}
