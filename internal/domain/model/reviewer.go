package model

import "strings"

// groupReviewerPrefix is the handle namespace of projects; a review request
// whose reviewer handle lives there targets a group rather than a person.
const groupReviewerPrefix = "PHID-PROJ-"

// Reviewer is a review request: a record of a person or group asked to review
// a revision.
type Reviewer struct {
	ID           int64
	RevisionPHID string
	ReviewerPHID string
	Status       string
	DateCreated  int64
	DateModified int64
}

// IsGroup reports whether the review request targets a project rather than an
// individual user.
func (r Reviewer) IsGroup() bool {
	return strings.HasPrefix(r.ReviewerPHID, groupReviewerPrefix)
}
