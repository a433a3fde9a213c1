package engine_test

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"dendrify.dev/dendrify/internal/engine"
	"dendrify.dev/dendrify/testhelpers"
)

// newTransformer returns a scene with a "main" branch holding a single root
// commit, and a transformer over it
func newTransformer(t *testing.T, opts engine.Options) (*testhelpers.Scene, *engine.Transformer, plumbing.Hash) {
	t.Helper()
	scene := testhelpers.NewMemoryScene(t)
	base := scene.Root("base")
	scene.SetBranch("main", base)
	return scene, engine.NewTransformer(scene.Store(), nil, opts), base
}

// countCommits counts every commit object in the scene's store
func countCommits(t *testing.T, scene *testhelpers.Scene) int {
	t.Helper()
	iter, err := scene.Repo.CommitObjects()
	require.NoError(t, err)
	n := 0
	require.NoError(t, iter.ForEach(func(*object.Commit) error {
		n++
		return nil
	}))
	return n
}

func testSignature() object.Signature {
	return object.Signature{
		Name:  testhelpers.UserName,
		Email: testhelpers.UserEmail,
		When:  time.Unix(1700000000, 0).UTC(),
	}
}
