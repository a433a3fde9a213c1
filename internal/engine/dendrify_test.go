package engine_test

import (
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dendrify.dev/dendrify/internal/engine"
	dendrifyerrors "dendrify.dev/dendrify/internal/errors"
	"dendrify.dev/dendrify/testhelpers"
)

type mockReporter struct {
	mock.Mock
}

func (m *mockReporter) Report(line string) {
	m.Called(line)
}

func TestDendrify(t *testing.T) {
	t.Run("turns a section into a side branch", func(t *testing.T) {
		scene, tr, base := newTransformer(t, engine.Options{})
		ids := scene.Chain(base, "node0", "node1", "<s>start", "inner", "</s>end")
		scene.SetBranch("linear", ids[4])

		tip, err := tr.Dendrify("dendrified", "main", "linear")
		require.NoError(t, err)
		require.Equal(t, tip, scene.BranchTip("dendrified"))

		end := scene.CommitObject(tip)
		require.Equal(t, "end", end.Message)
		require.Len(t, end.ParentHashes, 2)

		inner := end.ParentHashes[1]
		start := scene.CommitObject(inner).ParentHashes[0]
		node1 := end.ParentHashes[0]
		node0 := scene.CommitObject(node1).ParentHashes[0]

		testhelpers.ExpectParents(t, scene, inner, start)
		testhelpers.ExpectParents(t, scene, start, node1)
		testhelpers.ExpectParents(t, scene, node1, node0)
		testhelpers.ExpectParents(t, scene, node0, base)

		require.Equal(t, "start", scene.CommitObject(start).Message)
		require.Equal(t, "inner", scene.CommitObject(inner).Message)

		// Normal commits come out unchanged, so they keep their ids
		require.Equal(t, ids[0], node0)
		require.Equal(t, ids[1], node1)

		for i, id := range []plumbing.Hash{node0, node1, start, inner, tip} {
			testhelpers.ExpectSameContent(t, scene, ids[i], id)
		}
	})

	t.Run("history without sections is reproduced as is", func(t *testing.T) {
		scene, tr, base := newTransformer(t, engine.Options{})
		ids := scene.Chain(base, "a", "b", "c")
		scene.SetBranch("linear", ids[2])

		tip, err := tr.Dendrify("dendrified", "main", "linear")
		require.NoError(t, err)
		require.Equal(t, ids[2], tip)
	})

	t.Run("destination branch must not exist", func(t *testing.T) {
		scene, tr, base := newTransformer(t, engine.Options{})
		ids := scene.Chain(base, "<s>a", "</s>b")
		scene.SetBranch("linear", ids[1])
		scene.SetBranch("dendrified", base)
		before := countCommits(t, scene)

		_, err := tr.Dendrify("dendrified", "main", "linear")
		require.ErrorIs(t, err, dendrifyerrors.ErrBranchExists)
		require.EqualError(t, err, `destination branch "dendrified" exists`)

		require.Equal(t, base, scene.BranchTip("dendrified"))
		require.Equal(t, before, countCommits(t, scene))
	})

	t.Run("source branch must exist", func(t *testing.T) {
		_, tr, _ := newTransformer(t, engine.Options{})

		_, err := tr.Dendrify("dendrified", "main", "linear")
		require.ErrorIs(t, err, dendrifyerrors.ErrBranchNotFound)
		require.EqualError(t, err, `source branch "linear" does not exist`)
	})

	t.Run("section end without a start is dangling", func(t *testing.T) {
		scene, tr, base := newTransformer(t, engine.Options{})
		ids := scene.Chain(base, "a", "</s>b")
		scene.SetBranch("linear", ids[1])

		_, err := tr.Dendrify("dendrified", "main", "linear")
		require.ErrorIs(t, err, dendrifyerrors.ErrDanglingSectionEnd)
		require.Contains(t, err.Error(), ids[1].String())
		testhelpers.ExpectBranches(t, scene, []string{"main", "linear"})
	})

	t.Run("unclosed section creates no branch", func(t *testing.T) {
		scene, tr, base := newTransformer(t, engine.Options{})
		ids := scene.Chain(base, "<s>a", "b")
		scene.SetBranch("linear", ids[1])

		_, err := tr.Dendrify("dendrified", "main", "linear")
		require.ErrorIs(t, err, dendrifyerrors.ErrUnclosedSection)
		testhelpers.ExpectBranches(t, scene, []string{"main", "linear"})
	})

	t.Run("merge in the linear branch is rejected", func(t *testing.T) {
		scene, tr, base := newTransformer(t, engine.Options{})
		a := scene.Commit(base, "a")
		merge := scene.Merge(base, a, "merge")
		scene.SetBranch("linear", merge)

		_, err := tr.Dendrify("dendrified", "main", "linear")
		require.ErrorIs(t, err, dendrifyerrors.ErrNotLinear)
	})

	t.Run("reports one indented line per commit", func(t *testing.T) {
		scene := testhelpers.NewMemoryScene(t)
		base := scene.Root("base")
		scene.SetBranch("main", base)
		ids := scene.Chain(base, "a", "<s>b\n\nbody", "<s>c", "d", "</s>e", "</s>f")
		scene.SetBranch("linear", ids[5])

		var lines []string
		tr := engine.NewTransformer(scene.Store(), engine.ReporterFunc(func(line string) {
			lines = append(lines, line)
		}), engine.Options{})

		_, err := tr.Dendrify("dendrified", "main", "linear")
		require.NoError(t, err)

		require.Len(t, lines, 6)
		rest := make([]string, len(lines))
		for i, line := range lines {
			require.Regexp(t, `^[0-9a-f]{12}`, line)
			rest[i] = line[12:]
		}
		require.Equal(t, []string{
			" * a",
			"   * b",
			"     * c",
			"     * d",
			"   * e",
			" * f",
		}, rest)
	})

	t.Run("reporter is called once per written commit", func(t *testing.T) {
		scene := testhelpers.NewMemoryScene(t)
		base := scene.Root("base")
		scene.SetBranch("main", base)
		ids := scene.Chain(base, "<s>a", "</s>b")
		scene.SetBranch("linear", ids[1])

		rep := &mockReporter{}
		rep.On("Report", mock.MatchedBy(func(line string) bool {
			return strings.HasSuffix(line, " * a") || strings.HasSuffix(line, " * b")
		})).Return()

		tr := engine.NewTransformer(scene.Store(), rep, engine.Options{})
		_, err := tr.Dendrify("dendrified", "main", "linear")
		require.NoError(t, err)

		rep.AssertNumberOfCalls(t, "Report", 2)
		rep.AssertExpectations(t)
	})

	t.Run("rooted mode with an unrelated base creates no branch", func(t *testing.T) {
		scene, tr, base := newTransformer(t, engine.Options{Rooted: true})
		ids := scene.Chain(base, "<s>a", "</s>b")
		scene.SetBranch("linear", ids[1])
		scene.SetBranch("other", scene.Root("other"))

		_, err := tr.Dendrify("dendrified", "other", "linear")
		require.ErrorIs(t, err, dendrifyerrors.ErrNotAncestor)
		testhelpers.ExpectBranches(t, scene, []string{"main", "linear", "other"})
	})

	t.Run("rooted mode copies the root", func(t *testing.T) {
		scene, tr, base := newTransformer(t, engine.Options{Rooted: true})
		ids := scene.Chain(base, "<s>a", "</s>b")
		scene.SetBranch("linear", ids[1])

		tip, err := tr.Dendrify("dendrified", "", "linear")
		require.NoError(t, err)

		end := scene.CommitObject(tip)
		require.Len(t, end.ParentHashes, 2)
		// The root is rewritten unchanged, so it hashes to the same id
		require.Equal(t, base, end.ParentHashes[0])
		testhelpers.ExpectParents(t, scene, base)
	})
}
