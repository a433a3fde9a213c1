package engine

import (
	"fmt"
	"slices"

	"github.com/go-git/go-git/v5/plumbing"

	dendrifyerrors "dendrify.dev/dendrify/internal/errors"
)

// LinearAncestry returns the commits after base up to and including the tip
// of branchName, oldest first. The chain from the tip back to base must not
// contain a merge commit.
func (t *Transformer) LinearAncestry(base, branchName string) ([]plumbing.Hash, error) {
	baseID, err := t.resolveBase(base)
	if err != nil {
		return nil, err
	}
	return t.linearAncestry(base, baseID, branchName)
}

func (t *Transformer) linearAncestry(base string, baseID plumbing.Hash, branchName string) ([]plumbing.Hash, error) {
	id, err := t.branchTip(branchName)
	if err != nil {
		return nil, err
	}

	var ids []plumbing.Hash
	for id != baseID {
		ids = append(ids, id)
		change, err := t.store.Change(id)
		if err != nil {
			return nil, fmt.Errorf("failed to read commit %s: %w", id, err)
		}
		if change.NumParents() > 1 {
			return nil, dendrifyerrors.NewNotLinearError(branchName, id.String())
		}
		if change.NumParents() == 0 {
			if t.walksToRoot(baseID) {
				break
			}
			return nil, dendrifyerrors.NewNotAncestorError(base, branchName)
		}
		id = change.Parents[0]
	}

	slices.Reverse(ids)
	return ids, nil
}

// FlattenedAncestry returns the tagged commits after base up to and including
// the tip of the dendrified branchName, oldest first. Every merge must be
// pure: its tree must equal the tree of its second parent.
func (t *Transformer) FlattenedAncestry(base, branchName string) ([]TaggedChange, error) {
	baseID, err := t.resolveBase(base)
	if err != nil {
		return nil, err
	}
	return t.flattenedAncestry(base, baseID, branchName)
}

func (t *Transformer) flattenedAncestry(base string, baseID plumbing.Hash, branchName string) ([]TaggedChange, error) {
	id, err := t.branchTip(branchName)
	if err != nil {
		return nil, err
	}

	var elts []TaggedChange
	var sections nestingStack[plumbing.Hash]
walk:
	for id != baseID {
		change, err := t.store.Change(id)
		if err != nil {
			return nil, fmt.Errorf("failed to read commit %s: %w", id, err)
		}

		switch n := change.NumParents(); n {
		case 0:
			if !t.walksToRoot(baseID) {
				return nil, dendrifyerrors.NewNotAncestorError(base, branchName)
			}
			elts = append(elts, TaggedChange{Tag: Root, ID: id})
			break walk
		case 1:
			parent := change.Parents[0]
			if sections.closeIfAnchor(parent) {
				elts = append(elts, TaggedChange{Tag: SectionStart, ID: id})
			} else {
				elts = append(elts, TaggedChange{Tag: Normal, ID: id})
			}
			id = parent
		case 2:
			if err := t.verifyPureMerge(change); err != nil {
				return nil, err
			}
			elts = append(elts, TaggedChange{Tag: SectionEnd, ID: id})
			// The first parent carries on the main line; the second is the
			// tip of the section body.
			sections.open(change.Parents[0])
			id = change.Parents[1]
		default:
			return nil, dendrifyerrors.NewUnsupportedTopologyError(id.String(), n)
		}
	}

	if err := sections.finish(branchName); err != nil {
		return nil, err
	}

	slices.Reverse(elts)
	return elts, nil
}

// walksToRoot reports whether meeting a parentless commit ends the walk.
// That only holds in rooted mode with no base; an explicit base must be met.
func (t *Transformer) walksToRoot(baseID plumbing.Hash) bool {
	return t.opts.Rooted && baseID.IsZero()
}

// verifyPureMerge checks that a merge introduces nothing beyond its second parent
func (t *Transformer) verifyPureMerge(merge *ChangeNode) error {
	body, err := t.store.Change(merge.Parents[1])
	if err != nil {
		return fmt.Errorf("failed to read commit %s: %w", merge.Parents[1], err)
	}
	changes, err := t.store.DiffTrees(body.Tree, merge.Tree)
	if err != nil {
		return fmt.Errorf("failed to diff %s against %s: %w", merge.ID, body.ID, err)
	}
	if changes > 0 {
		return dendrifyerrors.NewImpureMergeError(merge.ID.String(), changes)
	}
	return nil
}
