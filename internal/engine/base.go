package engine

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// BaseCommitMessage is the message of the commit written by CreateBase
const BaseCommitMessage = "Base commit for dendrify"

// CreateBase creates branchName pointing at a new parentless commit with an
// empty tree, authored and committed by identity.
func (t *Transformer) CreateBase(branchName string, identity object.Signature) (plumbing.Hash, error) {
	if err := t.verifyBranchExistence("base", branchName, false); err != nil {
		return plumbing.ZeroHash, err
	}

	tree, err := t.store.EmptyTree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to write empty tree: %w", err)
	}

	id, err := t.store.CreateChange(NewChange{
		Message:   BaseCommitMessage,
		Tree:      tree,
		Author:    identity,
		Committer: identity,
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to create base commit: %w", err)
	}

	if err := t.store.CreateBranch(branchName, id); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to create branch %q: %w", branchName, err)
	}
	return id, nil
}
