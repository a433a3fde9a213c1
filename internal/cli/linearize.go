package cli

import (
	"github.com/spf13/cobra"

	"dendrify.dev/dendrify/internal/cli/common"
	"dendrify.dev/dendrify/internal/output"
	"dendrify.dev/dendrify/internal/runtime"
)

// newLinearizeCmd creates the linearize command
func newLinearizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linearize <new-branch> <base> <dendrified-branch>",
		Short: "Flatten merged side branches back into a linear branch with <s> ... </s> tags",
		Long: `Create <new-branch> as a single-parent chain holding every commit of
<dendrified-branch> after <base>, oldest first.

The first commit of each side branch gets a <s> prefix and each merge commit
gets a </s> prefix. Every merge must be pure: its tree must equal the tree
of the side branch it merges.`,
		Args:              cobra.RangeArgs(2, 3),
		ValidArgsFunction: common.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				newBranch, base, source, err := common.TransformArgs(ctx, args)
				if err != nil {
					return err
				}

				tip, err := ctx.Transformer.Linearize(newBranch, base, source)
				if err != nil {
					return err
				}

				ctx.Splog.Info("Created linear branch %s at %s.", output.ColorBranchName(newBranch), output.ColorCyan(tip.String()[:12]))
				return nil
			})
		},
	}

	return cmd
}
