package cli

import (
	"time"

	"github.com/spf13/cobra"

	"dendrify.dev/dendrify/internal/cli/common"
	"dendrify.dev/dendrify/internal/output"
	"dendrify.dev/dendrify/internal/runtime"
)

// newInitBaseCmd creates the init-base command
func newInitBaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-base <branch>",
		Short: "Create a branch holding a single empty root commit",
		Long: `Create <branch> pointing at a new parentless commit with an empty tree.
It can serve as the base for building a history to dendrify. The commit is
signed with user.name and user.email from the git configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				identity, err := ctx.Repo.DefaultIdentity(time.Now())
				if err != nil {
					return err
				}

				id, err := ctx.Transformer.CreateBase(args[0], identity)
				if err != nil {
					return err
				}

				ctx.Splog.Info("Created base branch %s at %s.", output.ColorBranchName(args[0]), output.ColorCyan(id.String()[:12]))
				return nil
			})
		},
	}

	return cmd
}
