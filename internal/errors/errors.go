// Package errors provides sentinel errors and custom error types for git-dendrify.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the transform failure taxonomy
var (
	// ErrBranchExists indicates that a destination branch name is already taken
	ErrBranchExists = errors.New("branch already exists")

	// ErrBranchNotFound indicates that a branch or revision does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrNotAncestor indicates that the base is not an ancestor of the branch tip
	ErrNotAncestor = errors.New("not an ancestor")

	// ErrNotLinear indicates a merge commit where a simple chain was expected
	ErrNotLinear = errors.New("ancestry is not linear")

	// ErrDanglingSectionEnd indicates a section-end with no section in progress
	ErrDanglingSectionEnd = errors.New("unexpected section-end")

	// ErrUnclosedSection indicates a section still open at the end of a traversal
	ErrUnclosedSection = errors.New("unclosed section")

	// ErrImpureMerge indicates a merge commit whose tree differs from its second parent
	ErrImpureMerge = errors.New("impure merge")

	// ErrUnsupportedTopology indicates a commit with more than two parents
	ErrUnsupportedTopology = errors.New("unsupported topology")
)

// BranchAlreadyExistsError represents a destination branch that already exists
type BranchAlreadyExistsError struct {
	Role       string
	BranchName string
}

func (e *BranchAlreadyExistsError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("%s branch %q exists", e.Role, e.BranchName)
	}
	return fmt.Sprintf("branch %q already exists", e.BranchName)
}

// Is returns true if the target error is ErrBranchExists
func (e *BranchAlreadyExistsError) Is(target error) bool {
	return target == ErrBranchExists
}

// NewBranchAlreadyExistsError creates a new BranchAlreadyExistsError
func NewBranchAlreadyExistsError(role, branchName string) *BranchAlreadyExistsError {
	return &BranchAlreadyExistsError{Role: role, BranchName: branchName}
}

// BranchNotFoundError represents an error when a branch is not found
type BranchNotFoundError struct {
	Role       string
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("%s branch %q does not exist", e.Role, e.BranchName)
	}
	return fmt.Sprintf("branch %q does not exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(role, branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{Role: role, BranchName: branchName}
}

// RevisionNotFoundError represents a revision expression that does not resolve.
// It matches ErrBranchNotFound.
type RevisionNotFoundError struct {
	Revision string
	Err      error
}

func (e *RevisionNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("revision %q does not resolve: %v", e.Revision, e.Err)
	}
	return fmt.Sprintf("revision %q does not resolve", e.Revision)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *RevisionNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

func (e *RevisionNotFoundError) Unwrap() error {
	return e.Err
}

// NewRevisionNotFoundError creates a new RevisionNotFoundError
func NewRevisionNotFoundError(revision string, err error) *RevisionNotFoundError {
	return &RevisionNotFoundError{Revision: revision, Err: err}
}

// NotAncestorError represents a base that was never met while walking back from a branch
type NotAncestorError struct {
	Base       string
	BranchName string
}

func (e *NotAncestorError) Error() string {
	return fmt.Sprintf("%q is not an ancestor of %q", e.Base, e.BranchName)
}

// Is returns true if the target error is ErrNotAncestor
func (e *NotAncestorError) Is(target error) bool {
	return target == ErrNotAncestor
}

// NewNotAncestorError creates a new NotAncestorError
func NewNotAncestorError(base, branchName string) *NotAncestorError {
	return &NotAncestorError{Base: base, BranchName: branchName}
}

// NotLinearError represents a merge commit found on a branch expected to be a simple chain
type NotLinearError struct {
	BranchName string
	Commit     string
}

func (e *NotLinearError) Error() string {
	return fmt.Sprintf("ancestry of %q is not linear (merge commit %s)", e.BranchName, e.Commit)
}

// Is returns true if the target error is ErrNotLinear
func (e *NotLinearError) Is(target error) bool {
	return target == ErrNotLinear
}

// NewNotLinearError creates a new NotLinearError
func NewNotLinearError(branchName, commit string) *NotLinearError {
	return &NotLinearError{BranchName: branchName, Commit: commit}
}

// DanglingSectionEndError represents a section-end commit with no open section
type DanglingSectionEndError struct {
	Commit string
}

func (e *DanglingSectionEndError) Error() string {
	return fmt.Sprintf("unexpected section-end at %s (no section in progress)", e.Commit)
}

// Is returns true if the target error is ErrDanglingSectionEnd
func (e *DanglingSectionEndError) Is(target error) bool {
	return target == ErrDanglingSectionEnd
}

// NewDanglingSectionEndError creates a new DanglingSectionEndError
func NewDanglingSectionEndError(commit string) *DanglingSectionEndError {
	return &DanglingSectionEndError{Commit: commit}
}

// UnclosedSectionError represents sections still open when a traversal finished
type UnclosedSectionError struct {
	BranchName string
	Open       int
}

func (e *UnclosedSectionError) Error() string {
	return fmt.Sprintf("%d section(s) of %q still open at end of history", e.Open, e.BranchName)
}

// Is returns true if the target error is ErrUnclosedSection
func (e *UnclosedSectionError) Is(target error) bool {
	return target == ErrUnclosedSection
}

// NewUnclosedSectionError creates a new UnclosedSectionError
func NewUnclosedSectionError(branchName string, open int) *UnclosedSectionError {
	return &UnclosedSectionError{BranchName: branchName, Open: open}
}

// ImpureMergeError represents a merge commit whose tree differs from its second parent
type ImpureMergeError struct {
	Commit  string
	Changes int
}

func (e *ImpureMergeError) Error() string {
	return fmt.Sprintf("expected %s to be pure merge (%d path(s) differ from second parent)", e.Commit, e.Changes)
}

// Is returns true if the target error is ErrImpureMerge
func (e *ImpureMergeError) Is(target error) bool {
	return target == ErrImpureMerge
}

// NewImpureMergeError creates a new ImpureMergeError
func NewImpureMergeError(commit string, changes int) *ImpureMergeError {
	return &ImpureMergeError{Commit: commit, Changes: changes}
}

// UnsupportedTopologyError represents a commit with more than two parents
type UnsupportedTopologyError struct {
	Commit  string
	Parents int
}

func (e *UnsupportedTopologyError) Error() string {
	return fmt.Sprintf("unexpected number of parents (%d) at %s", e.Parents, e.Commit)
}

// Is returns true if the target error is ErrUnsupportedTopology
func (e *UnsupportedTopologyError) Is(target error) bool {
	return target == ErrUnsupportedTopology
}

// NewUnsupportedTopologyError creates a new UnsupportedTopologyError
func NewUnsupportedTopologyError(commit string, parents int) *UnsupportedTopologyError {
	return &UnsupportedTopologyError{Commit: commit, Parents: parents}
}
