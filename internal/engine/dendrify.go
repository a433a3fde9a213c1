package engine

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"

	dendrifyerrors "dendrify.dev/dendrify/internal/errors"
)

// Dendrify rewrites the linear history of linearBranch after base into a new
// branch where every <s> ... </s> section becomes a side branch merged back
// into the main line. It returns the tip of the new branch.
//
// The new branch is only created once every commit has been written, so a
// failure leaves no branch behind.
func (t *Transformer) Dendrify(newBranch, base, linearBranch string) (plumbing.Hash, error) {
	if err := t.verifyBranchExistence("destination", newBranch, false); err != nil {
		return plumbing.ZeroHash, err
	}
	if err := t.verifyBranchExistence("source", linearBranch, true); err != nil {
		return plumbing.ZeroHash, err
	}

	baseID, err := t.resolveBase(base)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	ids, err := t.linearAncestry(base, baseID, linearBranch)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	tip := baseID
	var sections nestingStack[plumbing.Hash]
	for _, id := range ids {
		change, err := t.store.Change(id)
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to read commit %s: %w", id, err)
		}

		// A root keeps its message as is; there is nothing before it to
		// anchor a section on.
		if change.NumParents() == 0 {
			tip, err = t.commitTo(change, change.Message, nil, sections.depth())
			if err != nil {
				return plumbing.ZeroHash, err
			}
			continue
		}

		switch TagOfMessage(change.Message) {
		case SectionStart:
			sections.open(tip)
			tip, err = t.commitTo(change, PlainMessage(change.Message), []plumbing.Hash{tip}, sections.depth())
		case SectionEnd:
			start, ok := sections.close()
			if !ok {
				return plumbing.ZeroHash, dendrifyerrors.NewDanglingSectionEndError(id.String())
			}
			tip, err = t.commitTo(change, PlainMessage(change.Message), []plumbing.Hash{start, tip}, sections.depth())
		default:
			tip, err = t.commitTo(change, change.Message, []plumbing.Hash{tip}, sections.depth())
		}
		if err != nil {
			return plumbing.ZeroHash, err
		}
	}

	if err := sections.finish(linearBranch); err != nil {
		return plumbing.ZeroHash, err
	}

	if err := t.store.CreateBranch(newBranch, tip); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to create branch %q: %w", newBranch, err)
	}
	return tip, nil
}
