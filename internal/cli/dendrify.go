package cli

import (
	"github.com/spf13/cobra"

	"dendrify.dev/dendrify/internal/cli/common"
	"dendrify.dev/dendrify/internal/output"
	"dendrify.dev/dendrify/internal/runtime"
)

// newDendrifyCmd creates the dendrify command
func newDendrifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dendrify <new-branch> <base> <linear-branch>",
		Short: "Turn <s> ... </s> sections of a linear branch into merged side branches",
		Long: `Create <new-branch> from the commits of <linear-branch> after <base>.

A commit whose message starts with <s> opens a section and one starting with
</s> closes it. Each section becomes a side branch, joined back to the main
line by a merge whose tree equals the end of the section. The tags are
stripped from the messages. Trees, authors and committers are kept.

With --rooted, <base> may be left out and the history is walked down to its
root commit.`,
		Args:              cobra.RangeArgs(2, 3),
		ValidArgsFunction: common.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				newBranch, base, source, err := common.TransformArgs(ctx, args)
				if err != nil {
					return err
				}
				ctx.Splog.Debug("dendrify %s (base %q) into %s", source, base, newBranch)

				tip, err := ctx.Transformer.Dendrify(newBranch, base, source)
				if err != nil {
					return err
				}

				ctx.Splog.Info("Created dendrified branch %s at %s.", output.ColorBranchName(newBranch), output.ColorCyan(tip.String()[:12]))
				return nil
			})
		},
	}

	return cmd
}
