package engine

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// Linearize rewrites the dendrified history of dendrifiedBranch after base
// into a new single-parent branch, marking each section with <s> and </s>.
// It is the inverse of Dendrify. It returns the tip of the new branch.
func (t *Transformer) Linearize(newBranch, base, dendrifiedBranch string) (plumbing.Hash, error) {
	if err := t.verifyBranchExistence("destination", newBranch, false); err != nil {
		return plumbing.ZeroHash, err
	}
	if err := t.verifyBranchExistence("source", dendrifiedBranch, true); err != nil {
		return plumbing.ZeroHash, err
	}

	baseID, err := t.resolveBase(base)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	elts, err := t.flattenedAncestry(base, baseID, dendrifiedBranch)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	tip := baseID
	for _, elt := range elts {
		change, err := t.store.Change(elt.ID)
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to read commit %s: %w", elt.ID, err)
		}

		var parents []plumbing.Hash
		if elt.Tag != Root {
			parents = []plumbing.Hash{tip}
		}
		tip, err = t.commitTo(change, TaggedMessage(elt.Tag, change.Message), parents, -1)
		if err != nil {
			return plumbing.ZeroHash, err
		}
	}

	if err := t.store.CreateBranch(newBranch, tip); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to create branch %q: %w", newBranch, err)
	}
	return tip, nil
}
