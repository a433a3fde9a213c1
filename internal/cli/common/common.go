// Package common provides shared helper functions for CLI commands.
package common

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dendrify.dev/dendrify/internal/git"
	"dendrify.dev/dendrify/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution
// function. The context is closed once fn returns, whether or not it failed.
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) (err error) {
	ctx, err := runtime.GetContext(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := ctx.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(ctx)
}

// TransformArgs splits <new-branch> [<base>] <source-branch>. The base may
// only be left out in rooted mode.
func TransformArgs(ctx *runtime.Context, args []string) (newBranch, base, source string, err error) {
	switch len(args) {
	case 3:
		return args[0], args[1], args[2], nil
	case 2:
		if !ctx.Transformer.Options().Rooted {
			return "", "", "", fmt.Errorf("a base revision is required unless --rooted is given")
		}
		return args[0], "", args[1], nil
	default:
		return "", "", "", fmt.Errorf("expected <new-branch> <base> <source-branch>, got %d argument(s)", len(args))
	}
}

// CompleteBranches is a helper for cobra.ValidArgsFunction that returns all
// branch names in the repository containing the working directory.
func CompleteBranches(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	repo, err := git.DiscoverRepository(wd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	branches, err := repo.GetBranchNames()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return branches, cobra.ShellCompDirectiveNoFileComp
}
