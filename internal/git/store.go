package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"dendrify.dev/dendrify/internal/engine"
	dendrifyerrors "dendrify.dev/dendrify/internal/errors"
)

// emptyTreeHash is the well-known id of the tree with no entries. Git knows
// it without storing it, so reads of it must not depend on the object store.
var emptyTreeHash = plumbing.ComputeHash(plumbing.TreeObject, []byte{})

// Store implements engine.Store over a Repository
type Store struct {
	repo *Repository
}

var _ engine.Store = (*Store)(nil)

// NewStore creates a Store for repo
func NewStore(repo *Repository) *Store {
	return &Store{repo: repo}
}

// ResolveRevision resolves a branch name, ref, tag, SHA or revision
// expression such as HEAD~2 to a commit hash
func (s *Store) ResolveRevision(rev string) (plumbing.Hash, error) {
	hash, err := resolveRefHash(s.repo, rev)
	if err != nil {
		return plumbing.ZeroHash, dendrifyerrors.NewRevisionNotFoundError(rev, err)
	}
	return hash, nil
}

// BranchExists reports whether refs/heads/<branchName> exists
func (s *Store) BranchExists(branchName string) (bool, error) {
	_, err := s.repo.Reference(plumbing.NewBranchReferenceName(branchName), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get branch reference: %w", err)
	}
	return true, nil
}

// BranchTarget returns the commit refs/heads/<branchName> points at
func (s *Store) BranchTarget(branchName string) (plumbing.Hash, error) {
	ref, err := s.repo.Reference(plumbing.NewBranchReferenceName(branchName), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return plumbing.ZeroHash, dendrifyerrors.NewBranchNotFoundError("", branchName)
	}
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to get branch reference: %w", err)
	}
	return ref.Hash(), nil
}

// Change reads a commit
func (s *Store) Change(id plumbing.Hash) (*engine.ChangeNode, error) {
	commit, err := s.repo.CommitObject(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", id, err)
	}
	return &engine.ChangeNode{
		ID:        commit.Hash,
		Message:   commit.Message,
		Parents:   commit.ParentHashes,
		Tree:      commit.TreeHash,
		Author:    commit.Author,
		Committer: commit.Committer,
	}, nil
}

// DiffTrees returns the number of paths that differ between two trees
func (s *Store) DiffTrees(from, to plumbing.Hash) (int, error) {
	if from == to {
		return 0, nil
	}
	fromTree, err := s.tree(from)
	if err != nil {
		return 0, err
	}
	toTree, err := s.tree(to)
	if err != nil {
		return 0, err
	}
	changes, err := object.DiffTree(fromTree, toTree)
	if err != nil {
		return 0, fmt.Errorf("failed to diff trees: %w", err)
	}
	return changes.Len(), nil
}

// tree loads a tree object; nil stands for the empty tree
func (s *Store) tree(id plumbing.Hash) (*object.Tree, error) {
	tree, err := s.repo.TreeObject(id)
	if err != nil {
		if id == emptyTreeHash && errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tree %s: %w", id, err)
	}
	return tree, nil
}

// CreateChange writes a commit object. HEAD, the index and the worktree are
// left alone.
func (s *Store) CreateChange(change engine.NewChange) (plumbing.Hash, error) {
	commit := &object.Commit{
		Author:       change.Author,
		Committer:    change.Committer,
		Message:      change.Message,
		TreeHash:     change.Tree,
		ParentHashes: change.Parents,
	}
	obj := s.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to encode commit: %w", err)
	}
	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to store commit: %w", err)
	}
	return hash, nil
}

// EmptyTree stores the empty tree and returns its id
func (s *Store) EmptyTree() (plumbing.Hash, error) {
	tree := &object.Tree{}
	obj := s.repo.Storer.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to encode tree: %w", err)
	}
	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to store tree: %w", err)
	}
	return hash, nil
}

// CreateBranch creates refs/heads/<branchName> at target. It never moves an
// existing branch.
func (s *Store) CreateBranch(branchName string, target plumbing.Hash) error {
	exists, err := s.BranchExists(branchName)
	if err != nil {
		return err
	}
	if exists {
		return dendrifyerrors.NewBranchAlreadyExistsError("", branchName)
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branchName), target)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branchName, err)
	}
	return nil
}

// resolveRefHash resolves a ref (branch name, SHA, or ref path) to a hash
func resolveRefHash(repo *Repository, ref string) (plumbing.Hash, error) {
	// 1. Try as a full reference name
	if r, err := repo.Reference(plumbing.ReferenceName(ref), true); err == nil {
		return r.Hash(), nil
	}

	// 2. Try as a local branch
	if r, err := repo.Reference(plumbing.NewBranchReferenceName(ref), true); err == nil {
		return r.Hash(), nil
	}

	// 3. Try as a tag
	if r, err := repo.Reference(plumbing.NewTagReferenceName(ref), true); err == nil {
		if tag, err := repo.TagObject(r.Hash()); err == nil {
			return tag.Target, nil
		}
		return r.Hash(), nil
	}

	// 4. Try ResolveRevision (handles SHAs, short SHAs, and complex expressions like HEAD~1)
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err == nil {
		return *hash, nil
	}

	return plumbing.ZeroHash, fmt.Errorf("failed to resolve ref %s: reference not found", ref)
}
