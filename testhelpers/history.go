package testhelpers

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Root creates a parentless commit holding a single file
func (s *Scene) Root(msg string) plumbing.Hash {
	return s.commit(msg, nil, map[string]string{"root.txt": msg})
}

// Commit creates a commit on parent that adds one file named after the
// commit's position in the scene
func (s *Scene) Commit(parent plumbing.Hash, msg string) plumbing.Hash {
	files := maps.Clone(s.snapshot(parent))
	files[fmt.Sprintf("file_%03d.txt", s.clock)] = msg
	return s.commit(msg, []plumbing.Hash{parent}, files)
}

// Empty creates a commit on parent that keeps the parent's tree
func (s *Scene) Empty(parent plumbing.Hash, msg string) plumbing.Hash {
	return s.commit(msg, []plumbing.Hash{parent}, maps.Clone(s.snapshot(parent)))
}

// Chain creates one commit per message, each on top of the previous one,
// and returns them oldest first. A </s> commit is made with Empty, since a
// section end that adds content has no pure merge to become.
func (s *Scene) Chain(parent plumbing.Hash, msgs ...string) []plumbing.Hash {
	ids := make([]plumbing.Hash, 0, len(msgs))
	for _, msg := range msgs {
		if strings.HasPrefix(msg, "</s>") {
			parent = s.Empty(parent, msg)
		} else {
			parent = s.Commit(parent, msg)
		}
		ids = append(ids, parent)
	}
	return ids
}

// Merge creates a pure merge: its tree is the tree of second
func (s *Scene) Merge(first, second plumbing.Hash, msg string) plumbing.Hash {
	return s.commit(msg, []plumbing.Hash{first, second}, maps.Clone(s.snapshot(second)))
}

// ImpureMerge creates a merge that adds a file of its own on top of second
func (s *Scene) ImpureMerge(first, second plumbing.Hash, msg string) plumbing.Hash {
	files := maps.Clone(s.snapshot(second))
	files["merge_only.txt"] = msg
	return s.commit(msg, []plumbing.Hash{first, second}, files)
}

// Octopus creates a commit with all the given parents, using the tree of the last one
func (s *Scene) Octopus(msg string, parents ...plumbing.Hash) plumbing.Hash {
	return s.commit(msg, parents, maps.Clone(s.snapshot(parents[len(parents)-1])))
}

// SetBranch points refs/heads/<name> at id, creating or moving it
func (s *Scene) SetBranch(name string, id plumbing.Hash) {
	s.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), id)
	require.NoError(s.t, s.Repo.Storer.SetReference(ref))
}

// BranchTip returns the commit refs/heads/<name> points at
func (s *Scene) BranchTip(name string) plumbing.Hash {
	s.t.Helper()
	ref, err := s.Repo.Reference(plumbing.NewBranchReferenceName(name), true)
	require.NoError(s.t, err)
	return ref.Hash()
}

// CommitObject reads a commit
func (s *Scene) CommitObject(id plumbing.Hash) *object.Commit {
	s.t.Helper()
	commit, err := s.Repo.CommitObject(id)
	require.NoError(s.t, err)
	return commit
}

// FirstParentMessages returns the messages on the first-parent chain from
// the tip of branch back to base (exclusive), oldest first
func (s *Scene) FirstParentMessages(branch string, base plumbing.Hash) []string {
	s.t.Helper()
	var msgs []string
	for id := s.BranchTip(branch); id != base; {
		commit := s.CommitObject(id)
		msgs = append(msgs, commit.Message)
		if commit.NumParents() == 0 {
			break
		}
		id = commit.ParentHashes[0]
	}
	slices.Reverse(msgs)
	return msgs
}

func (s *Scene) snapshot(id plumbing.Hash) map[string]string {
	if files, ok := s.files[id]; ok {
		return files
	}
	return map[string]string{}
}

func (s *Scene) commit(msg string, parents []plumbing.Hash, files map[string]string) plumbing.Hash {
	s.t.Helper()
	s.clock++

	sig := object.Signature{
		Name:  UserName,
		Email: UserEmail,
		When:  time.Unix(1700000000+s.clock*60, 0).UTC(),
	}
	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      msg,
		TreeHash:     s.writeTree(files),
		ParentHashes: parents,
	}

	obj := s.Repo.Storer.NewEncodedObject()
	require.NoError(s.t, commit.Encode(obj))
	id, err := s.Repo.Storer.SetEncodedObject(obj)
	require.NoError(s.t, err)

	s.files[id] = files
	return id
}

func (s *Scene) writeTree(files map[string]string) plumbing.Hash {
	tree := &object.Tree{}
	for _, name := range slices.Sorted(maps.Keys(files)) {
		tree.Entries = append(tree.Entries, object.TreeEntry{
			Name: name,
			Mode: filemode.Regular,
			Hash: s.writeBlob(files[name]),
		})
	}

	obj := s.Repo.Storer.NewEncodedObject()
	require.NoError(s.t, tree.Encode(obj))
	id, err := s.Repo.Storer.SetEncodedObject(obj)
	require.NoError(s.t, err)
	return id
}

func (s *Scene) writeBlob(content string) plumbing.Hash {
	obj := s.Repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	require.NoError(s.t, err)
	_, err = w.Write([]byte(content))
	require.NoError(s.t, err)
	require.NoError(s.t, w.Close())

	id, err := s.Repo.Storer.SetEncodedObject(obj)
	require.NoError(s.t, err)
	return id
}
