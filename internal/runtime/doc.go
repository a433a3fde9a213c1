// Package runtime provides the execution context for git-dendrify commands.
//
// It encapsulates shared dependencies and configuration needed by commands,
// such as the repository, the transformer, the logger, and the repository root path.
package runtime
