package engine

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"

	dendrifyerrors "dendrify.dev/dendrify/internal/errors"
)

// Transformer runs dendrify and linearize against a Store
type Transformer struct {
	store    Store
	reporter Reporter
	opts     Options
}

// NewTransformer creates a Transformer. A nil reporter reports nothing.
func NewTransformer(store Store, reporter Reporter, opts Options) *Transformer {
	if reporter == nil {
		reporter = NoReport{}
	}
	return &Transformer{
		store:    store,
		reporter: reporter,
		opts:     opts,
	}
}

// Options returns the traversal mode of the transformer
func (t *Transformer) Options() Options {
	return t.opts
}

// verifyBranchExistence checks that branchName exists exactly when mustExist is set.
// role names the branch in the error, e.g. "source" or "destination".
func (t *Transformer) verifyBranchExistence(role, branchName string, mustExist bool) error {
	exists, err := t.store.BranchExists(branchName)
	if err != nil {
		return fmt.Errorf("failed to look up %s branch %q: %w", role, branchName, err)
	}
	switch {
	case exists && !mustExist:
		return dendrifyerrors.NewBranchAlreadyExistsError(role, branchName)
	case !exists && mustExist:
		return dendrifyerrors.NewBranchNotFoundError(role, branchName)
	}
	return nil
}

// resolveBase resolves the base revision. In rooted mode an empty base is
// allowed and resolves to the zero hash, which no commit carries.
func (t *Transformer) resolveBase(base string) (plumbing.Hash, error) {
	if base == "" {
		if t.opts.Rooted {
			return plumbing.ZeroHash, nil
		}
		return plumbing.ZeroHash, dendrifyerrors.NewRevisionNotFoundError(base,
			errors.New("a base revision is required unless rooted mode is enabled"))
	}
	return t.store.ResolveRevision(base)
}

// branchTip returns the commit a branch points at
func (t *Transformer) branchTip(branchName string) (plumbing.Hash, error) {
	tip, err := t.store.BranchTarget(branchName)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return tip, nil
}

// commitTo writes a copy of source with a new message and parents, keeping
// its tree, author and committer. depth indents the progress line; a negative
// depth reports without indentation.
func (t *Transformer) commitTo(source *ChangeNode, msg string, parents []plumbing.Hash, depth int) (plumbing.Hash, error) {
	id, err := t.store.CreateChange(NewChange{
		Message:   msg,
		Parents:   parents,
		Tree:      source.Tree,
		Author:    source.Author,
		Committer: source.Committer,
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to create commit for %s: %w", source.ID, err)
	}
	t.reporter.Report(progressLine(id, depth, msg))
	return id, nil
}
