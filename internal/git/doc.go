// Package git provides the repository side of git-dendrify.
//
// It wraps a go-git repository and gives the engine what it needs:
//   - Revision and branch lookup (rev-parse style expressions, refs/heads)
//   - Commit reads (message, parents, tree, author, committer)
//   - Tree diffs used to check that merges are pure
//   - Writing commits and branch refs straight into the object store
//
// Nothing here touches HEAD, the index or the worktree. This package should be
// the only place that talks to go-git.
package git
