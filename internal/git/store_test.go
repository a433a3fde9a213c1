package git_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"dendrify.dev/dendrify/internal/engine"
	dendrifyerrors "dendrify.dev/dendrify/internal/errors"
	"dendrify.dev/dendrify/internal/git"
	"dendrify.dev/dendrify/testhelpers"
)

func TestStoreResolveRevision(t *testing.T) {
	scene := testhelpers.NewMemoryScene(t)
	store := scene.Store()
	root := scene.Root("root")
	ids := scene.Chain(root, "a", "b")
	scene.SetBranch("main", ids[1])

	tests := []struct {
		name string
		rev  string
		want plumbing.Hash
	}{
		{name: "branch name", rev: "main", want: ids[1]},
		{name: "full ref name", rev: "refs/heads/main", want: ids[1]},
		{name: "full sha", rev: ids[0].String(), want: ids[0]},
		{name: "ancestry expression", rev: "main~2", want: root},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ResolveRevision(tt.rev)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("tag", func(t *testing.T) {
		_, err := scene.Repo.CreateTag("v1", ids[0], nil)
		require.NoError(t, err)

		got, err := store.ResolveRevision("v1")
		require.NoError(t, err)
		require.Equal(t, ids[0], got)
	})

	t.Run("unknown revision", func(t *testing.T) {
		_, err := store.ResolveRevision("missing")
		require.ErrorIs(t, err, dendrifyerrors.ErrBranchNotFound)
	})
}

func TestStoreBranches(t *testing.T) {
	scene := testhelpers.NewMemoryScene(t)
	store := scene.Store()
	root := scene.Root("root")

	exists, err := store.BranchExists("main")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = store.BranchTarget("main")
	require.ErrorIs(t, err, dendrifyerrors.ErrBranchNotFound)

	require.NoError(t, store.CreateBranch("main", root))

	exists, err = store.BranchExists("main")
	require.NoError(t, err)
	require.True(t, exists)

	target, err := store.BranchTarget("main")
	require.NoError(t, err)
	require.Equal(t, root, target)

	t.Run("existing branch is never moved", func(t *testing.T) {
		other := scene.Commit(root, "other")
		err := store.CreateBranch("main", other)
		require.ErrorIs(t, err, dendrifyerrors.ErrBranchExists)
		require.Equal(t, root, scene.BranchTip("main"))
	})

	t.Run("tags do not count as branches", func(t *testing.T) {
		_, err := scene.Repo.CreateTag("release", root, nil)
		require.NoError(t, err)

		exists, err := store.BranchExists("release")
		require.NoError(t, err)
		require.False(t, exists)
	})
}

func TestStoreChange(t *testing.T) {
	scene := testhelpers.NewMemoryScene(t)
	store := scene.Store()
	root := scene.Root("root")
	a := scene.Commit(root, "a\n\nbody")

	change, err := store.Change(a)
	require.NoError(t, err)

	commit := scene.CommitObject(a)
	require.Equal(t, a, change.ID)
	require.Equal(t, "a\n\nbody", change.Message)
	require.Equal(t, "a", change.Subject())
	require.Equal(t, []plumbing.Hash{root}, change.Parents)
	require.Equal(t, commit.TreeHash, change.Tree)
	require.Equal(t, testhelpers.UserName, change.Author.Name)

	_, err = store.Change(plumbing.NewHash("1111111111111111111111111111111111111111"))
	require.Error(t, err)
}

func TestStoreDiffTrees(t *testing.T) {
	scene := testhelpers.NewMemoryScene(t)
	store := scene.Store()
	root := scene.Root("root")
	a := scene.Commit(root, "a")
	b := scene.Commit(a, "b")
	merge := scene.Merge(root, b, "merge")
	impure := scene.ImpureMerge(root, b, "impure")

	tree := func(id plumbing.Hash) plumbing.Hash {
		return scene.CommitObject(id).TreeHash
	}

	n, err := store.DiffTrees(tree(b), tree(merge))
	require.NoError(t, err)
	require.Equal(t, 0, n)

	n, err = store.DiffTrees(tree(b), tree(impure))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = store.DiffTrees(tree(root), tree(b))
	require.NoError(t, err)
	require.Equal(t, 2, n)

	empty, err := store.EmptyTree()
	require.NoError(t, err)
	n, err = store.DiffTrees(empty, tree(root))
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestStoreCreateChange(t *testing.T) {
	scene := testhelpers.NewMemoryScene(t)
	store := scene.Store()
	root := scene.Root("root")

	empty, err := store.EmptyTree()
	require.NoError(t, err)
	require.Equal(t, "4b825dc642cb6eb9a060e54bf8d69288fbee4904", empty.String())

	sig := object.Signature{Name: "Someone", Email: "someone@example.com", When: time.Unix(1600000000, 0).UTC()}
	id, err := store.CreateChange(engine.NewChange{
		Message:   "created",
		Parents:   []plumbing.Hash{root},
		Tree:      empty,
		Author:    sig,
		Committer: sig,
	})
	require.NoError(t, err)

	testhelpers.ExpectParents(t, scene, id, root)
	commit := scene.CommitObject(id)
	require.Equal(t, "created", commit.Message)
	require.Equal(t, empty, commit.TreeHash)
	require.Equal(t, "Someone", commit.Committer.Name)

	// Writing a commit touches no ref
	testhelpers.ExpectBranches(t, scene, nil)
}

func TestDiscoverRepository(t *testing.T) {
	t.Run("finds the repository from a subdirectory", func(t *testing.T) {
		scene := testhelpers.NewScene(t)
		sub := filepath.Join(scene.Dir, "a", "b")
		require.NoError(t, os.MkdirAll(sub, 0o755))

		repo, err := git.DiscoverRepository(sub)
		require.NoError(t, err)
		require.Equal(t, scene.Dir, repo.GetRepoRoot())
	})

	t.Run("outside any repository", func(t *testing.T) {
		dir := t.TempDir()

		_, err := git.DiscoverRepository(dir)
		require.Error(t, err)
		require.Contains(t, err.Error(), "could not find git repository starting from")
	})
}

func TestDefaultIdentity(t *testing.T) {
	scene := testhelpers.NewScene(t)
	when := time.Unix(1700000000, 0).UTC()

	t.Run("reads the repository config", func(t *testing.T) {
		t.Setenv("GIT_AUTHOR_NAME", "")
		t.Setenv("GIT_AUTHOR_EMAIL", "")

		sig, err := scene.Repo.DefaultIdentity(when)
		require.NoError(t, err)
		require.Equal(t, testhelpers.UserName, sig.Name)
		require.Equal(t, testhelpers.UserEmail, sig.Email)
		require.True(t, sig.When.Equal(when))
	})

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("GIT_AUTHOR_NAME", "Env User")
		t.Setenv("GIT_AUTHOR_EMAIL", "env@example.com")

		sig, err := scene.Repo.DefaultIdentity(when)
		require.NoError(t, err)
		require.Equal(t, "Env User", sig.Name)
		require.Equal(t, "env@example.com", sig.Email)
	})
}
