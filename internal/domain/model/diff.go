package model

import "strings"

// landingAuthorPHID is the application identity Phabricator assigns to diffs
// it creates itself when a commit lands.
const landingAuthorPHID = "PHID-APPS-PhabricatorDiffusionApplication"

// repoIdentityPrefix marks diffs attributed to a repository identity rather
// than a user account.
const repoIdentityPrefix = "PHID-RIDT-"

// Diff is one submitted version of a revision's proposed change.
type Diff struct {
	ID          int64
	RevisionID  int64
	AuthorPHID  string
	DateCreated int64
}

// Synthetic reports whether the diff was produced by Phabricator itself (a
// landed commit or a repository identity) rather than submitted by a person.
// Synthetic diffs are excluded from the report.
func (d Diff) Synthetic() bool {
	return d.AuthorPHID == landingAuthorPHID || strings.HasPrefix(d.AuthorPHID, repoIdentityPrefix)
}

// Changeset is the set of line-level modifications to one file within a diff.
type Changeset struct {
	ID       int64
	DiffID   int64
	AddLines int64
	DelLines int64
}
