// Package engine reshapes commit histories between the linear and the
// dendrified form.
//
// It is the core of git-dendrify, responsible for:
//   - Walking a linear chain of commits back to a base revision
//   - Walking a dendrified history back to a base, checking every merge is pure
//   - Writing the new commits for either direction through a Store
//   - Creating the destination branch only once the whole transform succeeded
//
// The engine never owns commits or branches. It reads existing ones and asks
// the Store to create new ones, so the underlying repository stays the single
// source of truth.
package engine
