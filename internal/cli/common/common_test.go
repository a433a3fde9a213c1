package common_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"dendrify.dev/dendrify/internal/cli/common"
	"dendrify.dev/dendrify/internal/config"
	"dendrify.dev/dendrify/internal/runtime"
	"dendrify.dev/dendrify/testhelpers"
)

func TestRunClosesContextOnFailure(t *testing.T) {
	scene := testhelpers.NewMemoryScene(t)
	logFile := filepath.Join(t.TempDir(), "dendrify.log")

	var out bytes.Buffer
	ctx, err := runtime.NewContext(scene.Repo, &config.Settings{LogFile: logFile}, &out)
	require.NoError(t, err)

	cmd := &cobra.Command{}
	cmd.SetContext(runtime.WithContext(context.Background(), ctx))

	failure := errors.New("transform failed")
	err = common.Run(cmd, func(ctx *runtime.Context) error {
		ctx.Splog.Info("while running")
		return failure
	})
	require.ErrorIs(t, err, failure)

	ctx.Splog.Info("after run")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "while running")
	require.NotContains(t, string(data), "after run")
}

func TestTransformArgs(t *testing.T) {
	scene := testhelpers.NewMemoryScene(t)

	ctx, err := runtime.NewContext(scene.Repo, &config.Settings{}, &bytes.Buffer{})
	require.NoError(t, err)

	newBranch, base, source, err := common.TransformArgs(ctx, []string{"new", "main", "linear"})
	require.NoError(t, err)
	require.Equal(t, []string{"new", "main", "linear"}, []string{newBranch, base, source})

	_, _, _, err = common.TransformArgs(ctx, []string{"new", "linear"})
	require.ErrorContains(t, err, "--rooted")

	rooted, err := runtime.NewContext(scene.Repo, &config.Settings{Rooted: true}, &bytes.Buffer{})
	require.NoError(t, err)
	newBranch, base, source, err = common.TransformArgs(rooted, []string{"new", "linear"})
	require.NoError(t, err)
	require.Equal(t, []string{"new", "", "linear"}, []string{newBranch, base, source})
}
