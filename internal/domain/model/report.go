package model

import "fmt"

// Report is the full snapshot: one nested record per revision, keyed by the
// revision's display id ("D123"). The JSON keys below are the established
// snapshot format consumed by downstream auditing and must not drift.
type Report map[string]RevisionRecord

// RevisionRecord is one revision's entry in the report.
type RevisionRecord struct {
	FirstSubmission  int64                 `json:"first submission timestamp (dateCreated)"`
	LastReviewID     *int64                `json:"last review id"`
	Status           string                `json:"current status"`
	TargetRepository string                `json:"target repository"`
	StackSize        int                   `json:"stack size"`
	Diffs            map[string]DiffDetail `json:"diffs"`
	// Comments holds the revision's general comments; inline comments live
	// under their changeset.
	Comments map[string]CommentDetail `json:"comments"`
}

// DiffDetail describes one human-submitted diff of a revision.
type DiffDetail struct {
	SubmissionTime int64                          `json:"submission time (dateCreated)"`
	Author         string                         `json:"author (userName)"`
	Changesets     map[string]ChangesetDetail     `json:"changesets"`
	ReviewRequests map[string]ReviewRequestDetail `json:"review requests"`
}

// ChangesetDetail describes one file's changes within a diff.
type ChangesetDetail struct {
	LinesAdded   int64                          `json:"lines added"`
	LinesRemoved int64                          `json:"lines removed"`
	Comments     map[string]InlineCommentDetail `json:"comments"`
}

// CommentDetail carries resolved authorship for one comment. CharacterCount
// counts Unicode code points, not bytes.
type CommentDetail struct {
	Author         string `json:"author"`
	Timestamp      int64  `json:"timestamp (dateCreated)"`
	CharacterCount int    `json:"character count"`
}

// InlineCommentDetail is a changeset comment with its suggestion flag.
type InlineCommentDetail struct {
	CommentDetail
	IsSuggestion bool `json:"is_suggestion"`
}

// ReviewRequestDetail carries resolved reviewer identity and status for one
// review request.
type ReviewRequestDetail struct {
	Reviewer          string `json:"reviewer"`
	IsGroup           bool   `json:"is group"`
	CreationTimestamp int64  `json:"creation timestamp"`
	ReviewTimestamp   int64  `json:"review timestamp"`
	Status            string `json:"status"`
}

// RevisionKey formats a revision id as its display form, e.g. "D123".
func RevisionKey(id int64) string { return fmt.Sprintf("D%d", id) }

// DiffKey formats a diff map key, e.g. "diff-45".
func DiffKey(id int64) string { return fmt.Sprintf("diff-%d", id) }

// ChangesetKey formats a changeset map key, e.g. "changeset-9".
func ChangesetKey(id int64) string { return fmt.Sprintf("changeset-%d", id) }

// CommentKey formats a comment map key, e.g. "comment-3".
func CommentKey(id int64) string { return fmt.Sprintf("comment-%d", id) }

// ReviewKey formats a review-request map key, e.g. "review-7".
func ReviewKey(id int64) string { return fmt.Sprintf("review-%d", id) }
