package engine

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Message prefixes marking the boundaries of a section in a linear history
const (
	SectionStartPrefix = "<s>"
	SectionEndPrefix   = "</s>"
)

// Tag classifies a commit within a flattened history
type Tag int

const (
	// Normal is an ordinary commit
	Normal Tag = iota
	// SectionStart is the first commit of a section
	SectionStart
	// SectionEnd closes a section; in dendrified form it is the merge commit
	SectionEnd
	// Root is a parentless commit, only produced in rooted mode
	Root
)

func (t Tag) String() string {
	switch t {
	case SectionStart:
		return "SectionStart"
	case SectionEnd:
		return "SectionEnd"
	case Root:
		return "Root"
	default:
		return "Normal"
	}
}

// ChangeNode is an immutable view of one commit in the store
type ChangeNode struct {
	ID        plumbing.Hash
	Message   string
	Parents   []plumbing.Hash
	Tree      plumbing.Hash
	Author    object.Signature
	Committer object.Signature
}

// NumParents returns the number of parents of the commit
func (c *ChangeNode) NumParents() int {
	return len(c.Parents)
}

// Subject returns the first line of the message, cut to 80 characters
func (c *ChangeNode) Subject() string {
	return subjectOf(c.Message)
}

// NewChange describes a commit for the store to create
type NewChange struct {
	Message   string
	Parents   []plumbing.Hash
	Tree      plumbing.Hash
	Author    object.Signature
	Committer object.Signature
}

// TaggedChange is one element of a flattened history
type TaggedChange struct {
	Tag Tag
	ID  plumbing.Hash
}

// Options selects the traversal mode
type Options struct {
	// Rooted lets a traversal run down to a parentless commit, which is then
	// tagged Root instead of failing. The base revision becomes optional.
	Rooted bool
}

// TagOfMessage derives the section tag carried by a linear commit message
func TagOfMessage(msg string) Tag {
	switch {
	case strings.HasPrefix(msg, SectionStartPrefix):
		return SectionStart
	case strings.HasPrefix(msg, SectionEndPrefix):
		return SectionEnd
	default:
		return Normal
	}
}

// PlainMessage strips a section tag from a message
func PlainMessage(msg string) string {
	if s, ok := strings.CutPrefix(msg, SectionStartPrefix); ok {
		return s
	}
	if s, ok := strings.CutPrefix(msg, SectionEndPrefix); ok {
		return s
	}
	return msg
}

// TaggedMessage re-applies the prefix for tag to a plain message
func TaggedMessage(tag Tag, msg string) string {
	switch tag {
	case SectionStart:
		return SectionStartPrefix + msg
	case SectionEnd:
		return SectionEndPrefix + msg
	default:
		return msg
	}
}

func subjectOf(msg string) string {
	subject, _, _ := strings.Cut(msg, "\n")
	if r := []rune(subject); len(r) > 80 {
		subject = string(r[:80])
	}
	return subject
}

func shortID(id plumbing.Hash) string {
	return id.String()[:12]
}
