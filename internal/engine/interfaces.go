package engine

import (
	"github.com/go-git/go-git/v5/plumbing"
)

// Store defines what the engine needs from the underlying repository.
// It is implemented by git.Store over a go-git repository and by fakes in tests.
type Store interface {
	// Revision and branch lookup
	ResolveRevision(rev string) (plumbing.Hash, error)
	BranchExists(branchName string) (bool, error)
	BranchTarget(branchName string) (plumbing.Hash, error)

	// Commit information
	Change(id plumbing.Hash) (*ChangeNode, error)
	DiffTrees(from, to plumbing.Hash) (int, error)

	// Writes
	CreateChange(change NewChange) (plumbing.Hash, error)
	EmptyTree() (plumbing.Hash, error)
	CreateBranch(branchName string, target plumbing.Hash) error
}

// Reporter receives one line of progress per created commit
type Reporter interface {
	Report(line string)
}
