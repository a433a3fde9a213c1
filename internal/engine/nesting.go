package engine

import (
	dendrifyerrors "dendrify.dev/dendrify/internal/errors"
)

// nestingStack holds the anchors of open sections.
//
// Encoding forward, a section start opens a frame anchored at the tip just
// before the section, and a section end closes it. Decoding backward, a merge
// opens a frame anchored at its first parent, and the frame closes at the
// commit whose parent is that anchor.
type nestingStack[T comparable] struct {
	anchors []T
}

func (s *nestingStack[T]) open(anchor T) {
	s.anchors = append(s.anchors, anchor)
}

// close pops the innermost frame; ok is false on underflow
func (s *nestingStack[T]) close() (anchor T, ok bool) {
	if len(s.anchors) == 0 {
		return anchor, false
	}
	anchor = s.anchors[len(s.anchors)-1]
	s.anchors = s.anchors[:len(s.anchors)-1]
	return anchor, true
}

// closeIfAnchor pops the innermost frame only when it is anchored at id
func (s *nestingStack[T]) closeIfAnchor(id T) bool {
	if len(s.anchors) == 0 || s.anchors[len(s.anchors)-1] != id {
		return false
	}
	s.anchors = s.anchors[:len(s.anchors)-1]
	return true
}

func (s *nestingStack[T]) depth() int {
	return len(s.anchors)
}

// finish fails when frames are still open once a traversal is complete
func (s *nestingStack[T]) finish(branchName string) error {
	if n := s.depth(); n > 0 {
		return dendrifyerrors.NewUnclosedSectionError(branchName, n)
	}
	return nil
}
