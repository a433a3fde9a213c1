package testhelpers

import (
	"slices"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectBranches asserts that the repository has exactly the expected branches
func ExpectBranches(t *testing.T, scene *Scene, expected []string) {
	t.Helper()

	names, err := scene.Repo.GetBranchNames()
	require.NoError(t, err, "Failed to list branches")

	slices.Sort(names)
	expected = slices.Clone(expected)
	slices.Sort(expected)

	require.Equal(t, expected, names, "Branches do not match")
}

// ExpectParents asserts the parent list of a commit, in order
func ExpectParents(t *testing.T, scene *Scene, id plumbing.Hash, expected ...plumbing.Hash) {
	t.Helper()

	commit := scene.CommitObject(id)
	if len(expected) == 0 {
		require.Empty(t, commit.ParentHashes, "expected %s to be a root commit", id)
		return
	}
	require.Equal(t, expected, commit.ParentHashes, "Parents of %s do not match", id)
}

// ExpectSameContent asserts that two commits carry the same tree, author and committer
func ExpectSameContent(t *testing.T, scene *Scene, want, got plumbing.Hash) {
	t.Helper()

	w := scene.CommitObject(want)
	g := scene.CommitObject(got)
	require.Equal(t, w.TreeHash, g.TreeHash, "Trees differ")
	require.Equal(t, w.Author.Name, g.Author.Name)
	require.Equal(t, w.Author.Email, g.Author.Email)
	require.True(t, w.Author.When.Equal(g.Author.When), "Author times differ")
	require.True(t, w.Committer.When.Equal(g.Committer.When), "Committer times differ")
}
