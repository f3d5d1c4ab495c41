package model

import "fmt"

// Status is the lifecycle state of a user-authored job post.
//
// Valid status graph:
//
//	draft ───────► published ◄──► unpublished
//
// A post is created as draft or published; there is no way back to draft.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusPublished   Status = "published"
	StatusUnpublished Status = "unpublished"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusDraft:       {StatusPublished},
	StatusPublished:   {StatusUnpublished},
	StatusUnpublished: {StatusPublished},
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusDraft, StatusPublished, StatusUnpublished:
		return st, nil
	}
	return "", fmt.Errorf("unknown job post status %q", s)
}

// IsCreatable reports whether a new post may start in status s.
func IsCreatable(s Status) bool {
	return s == StatusDraft || s == StatusPublished
}

// IsTransitionAllowed returns true when moving from → to is permitted.
func IsTransitionAllowed(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsPublished returns true when s makes a post visible in search results.
func IsPublished(s Status) bool { return s == StatusPublished }
