package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newRepoRoot(t *testing.T) string {
	t.Helper()
	t.Setenv("DENDRIFY_QUIET", "")
	t.Setenv("DENDRIFY_LOG_FILE", "")
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0750))
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when config does not exist", func(t *testing.T) {
		repoRoot := newRepoRoot(t)

		settings, err := Load(repoRoot)
		require.NoError(t, err)
		require.Equal(t, &Settings{}, settings)
	})

	t.Run("reads values from the yaml file", func(t *testing.T) {
		repoRoot := newRepoRoot(t)
		content := "quiet: true\nrooted: true\nlogFile: /tmp/dendrify.log\n"
		require.NoError(t, os.WriteFile(filepath.Join(repoRoot, ".git", FileName), []byte(content), 0600))

		settings, err := Load(repoRoot)
		require.NoError(t, err)
		require.True(t, settings.Quiet)
		require.True(t, settings.Rooted)
		require.Equal(t, "/tmp/dendrify.log", settings.LogFile)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		repoRoot := newRepoRoot(t)
		require.NoError(t, Set(repoRoot, KeyQuiet, "true"))
		t.Setenv("DENDRIFY_QUIET", "false")
		t.Setenv("DENDRIFY_LOG_FILE", "/var/log/other.log")

		settings, err := Load(repoRoot)
		require.NoError(t, err)
		require.False(t, settings.Quiet)
		require.Equal(t, "/var/log/other.log", settings.LogFile)
	})

	t.Run("rejects an invalid DENDRIFY_QUIET", func(t *testing.T) {
		repoRoot := newRepoRoot(t)
		t.Setenv("DENDRIFY_QUIET", "sometimes")

		_, err := Load(repoRoot)
		require.ErrorContains(t, err, "DENDRIFY_QUIET")
	})

	t.Run("fails on malformed yaml", func(t *testing.T) {
		repoRoot := newRepoRoot(t)
		require.NoError(t, os.WriteFile(filepath.Join(repoRoot, ".git", FileName), []byte("quiet: [\n"), 0600))

		_, err := Load(repoRoot)
		require.ErrorContains(t, err, "failed to parse repo config")
	})
}

func TestGetSet(t *testing.T) {
	repoRoot := newRepoRoot(t)

	value, err := Get(repoRoot, KeyRooted)
	require.NoError(t, err)
	require.Equal(t, "false", value)

	require.NoError(t, Set(repoRoot, KeyRooted, "true"))
	require.NoError(t, Set(repoRoot, KeyLogFile, "dendrify.log"))

	value, err = Get(repoRoot, KeyRooted)
	require.NoError(t, err)
	require.Equal(t, "true", value)

	value, err = Get(repoRoot, KeyLogFile)
	require.NoError(t, err)
	require.Equal(t, "dendrify.log", value)

	require.ErrorContains(t, Set(repoRoot, KeyQuiet, "maybe"), "must be true or false")
	require.ErrorContains(t, Set(repoRoot, "trunk", "main"), "unknown configuration key")

	_, err = Get(repoRoot, "trunk")
	require.Error(t, err)
}
