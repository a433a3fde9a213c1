package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dendrify.dev/dendrify/internal/cli/common"
	"dendrify.dev/dendrify/internal/config"
	"dendrify.dev/dendrify/internal/runtime"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set repository configuration",
		Long: `Get and set repository configuration values stored in .git/dendrify.yaml.

Examples:
  git-dendrify config get rooted
  git-dendrify config set quiet true
  git-dendrify config set log-file ~/.dendrify/dendrify.log`,
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

// newConfigGetCmd creates the config get command
func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Get a configuration value",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{config.KeyQuiet, config.KeyRooted, config.KeyLogFile},
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				value, err := config.Get(ctx.RepoRoot, args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
				return err
			})
		},
	}
}

// newConfigSetCmd creates the config set command
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a configuration value",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{config.KeyQuiet, config.KeyRooted, config.KeyLogFile},
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				if err := config.Set(ctx.RepoRoot, args[0], args[1]); err != nil {
					return err
				}
				ctx.Splog.Info("Set %s to: %s", args[0], args[1])
				return nil
			})
		},
	}
}
