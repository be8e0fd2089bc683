package driven

import (
	"context"

	"github.com/mozilla-conduit/phab-etl/internal/domain/model"
)

// DifferentialStore is the driven port for the differential partition:
// revisions, diffs, changesets, transactions, comments, review requests, and
// dependency edges.
type DifferentialStore interface {
	// ListRevisions returns every revision in the store.
	ListRevisions(ctx context.Context) ([]model.Revision, error)

	// RevisionsByPHIDs returns the revisions whose handle appears in phids.
	// Handles with no matching revision are silently absent from the result.
	RevisionsByPHIDs(ctx context.Context, phids []string) ([]model.Revision, error)

	// ListDiffsByRevision returns all diffs of a revision, synthetic ones
	// included; filtering is the caller's concern.
	ListDiffsByRevision(ctx context.Context, revisionID int64) ([]model.Diff, error)

	// ListChangesetsByDiff returns all changesets of a diff.
	ListChangesetsByDiff(ctx context.Context, diffID int64) ([]model.Changeset, error)

	// ListInlineComments returns the comments attached to a changeset.
	ListInlineComments(ctx context.Context, changesetID int64) ([]model.TransactionComment, error)

	// ListCommentTransactions returns the core:comment transactions recorded
	// against the given object handle.
	ListCommentTransactions(ctx context.Context, objectPHID string) ([]model.Transaction, error)

	// GetCommentByPHID resolves exactly one comment by handle. Zero matches
	// yields ErrNotFound, more than one ErrAmbiguous.
	GetCommentByPHID(ctx context.Context, phid string) (*model.TransactionComment, error)

	// ListReviewersByRevision returns all review requests for a revision.
	ListReviewersByRevision(ctx context.Context, revisionPHID string) ([]model.Reviewer, error)

	// LatestReviewerByRevision returns the review request with the greatest
	// dateModified, or nil when the revision has none.
	LatestReviewerByRevision(ctx context.Context, revisionPHID string) (*model.Reviewer, error)

	// DependencyEdges returns every depends-on / depended-on-by edge touching
	// any of the given handles on either end. An empty handle set returns no
	// edges.
	DependencyEdges(ctx context.Context, phids []string) ([]model.Edge, error)
}
