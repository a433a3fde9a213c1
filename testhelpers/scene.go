// Package testhelpers provides testing utilities for git-dendrify,
// including a scene system that builds commit graphs directly in a go-git
// repository, and custom assertions.
package testhelpers

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"

	"dendrify.dev/dendrify/internal/git"
)

// Test identity written into every scene
const (
	UserName  = "Test User"
	UserEmail = "test@example.com"
)

// Scene represents a test scene: a repository plus the bookkeeping needed to
// build histories in it.
type Scene struct {
	t    *testing.T
	Dir  string
	Repo *git.Repository

	// files holds the full snapshot of every commit created by the scene
	files map[plumbing.Hash]map[string]string
	clock int64
}

// NewScene creates a scene backed by an on-disk repository in a temporary
// directory, with user.name and user.email configured locally.
func NewScene(t *testing.T) *Scene {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err, "expected repo to be initialized")

	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = UserName
	cfg.User.Email = UserEmail
	require.NoError(t, repo.SetConfig(cfg))

	return newScene(t, dir, git.NewRepository(repo, dir))
}

// NewMemoryScene creates a scene backed by in-memory storage
func NewMemoryScene(t *testing.T) *Scene {
	t.Helper()

	repo, err := gogit.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err, "expected empty repo to be initialized")

	return newScene(t, "", git.NewRepository(repo, ""))
}

func newScene(t *testing.T, dir string, repo *git.Repository) *Scene {
	return &Scene{
		t:     t,
		Dir:   dir,
		Repo:  repo,
		files: map[plumbing.Hash]map[string]string{},
	}
}

// Store returns a git.Store over the scene's repository
func (s *Scene) Store() *git.Store {
	return git.NewStore(s.Repo)
}
