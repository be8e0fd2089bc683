package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mozilla-conduit/phab-etl/internal/domain/model"
	"github.com/mozilla-conduit/phab-etl/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.DifferentialStore = (*DifferentialRepo)(nil)

// DifferentialRepo is the MySQL implementation of the DifferentialStore port
// interface.
type DifferentialRepo struct {
	db *DB
}

// NewDifferentialRepo creates a new DifferentialRepo backed by the given DB.
func NewDifferentialRepo(db *DB) *DifferentialRepo {
	return &DifferentialRepo{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// placeholders returns n comma-separated "?" markers for an IN clause.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// ListRevisions returns every revision in the store.
func (r *DifferentialRepo) ListRevisions(ctx context.Context) ([]model.Revision, error) {
	const query = `
		SELECT id, phid, title, status, repositoryPHID, dateCreated
		FROM differential_revision
	`

	rows, err := r.db.Differentials.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer rows.Close()

	return collectRevisions(rows)
}

// RevisionsByPHIDs returns the revisions whose handle appears in phids.
func (r *DifferentialRepo) RevisionsByPHIDs(ctx context.Context, phids []string) ([]model.Revision, error) {
	if len(phids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id, phid, title, status, repositoryPHID, dateCreated
		FROM differential_revision
		WHERE phid IN (%s)
	`, placeholders(len(phids)))

	args := make([]any, len(phids))
	for i, phid := range phids {
		args[i] = phid
	}

	rows, err := r.db.Differentials.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query revisions by phid: %w", err)
	}
	defer rows.Close()

	return collectRevisions(rows)
}

// ListDiffsByRevision returns all diffs of a revision.
func (r *DifferentialRepo) ListDiffsByRevision(ctx context.Context, revisionID int64) ([]model.Diff, error) {
	const query = `
		SELECT id, revisionID, authorPHID, dateCreated
		FROM differential_diff
		WHERE revisionID = ?
		ORDER BY id
	`

	rows, err := r.db.Differentials.QueryContext(ctx, query, revisionID)
	if err != nil {
		return nil, fmt.Errorf("query diffs for revision %d: %w", revisionID, err)
	}
	defer rows.Close()

	var diffs []model.Diff
	for rows.Next() {
		var d model.Diff
		if err := rows.Scan(&d.ID, &d.RevisionID, &d.AuthorPHID, &d.DateCreated); err != nil {
			return nil, fmt.Errorf("scan diff: %w", err)
		}
		diffs = append(diffs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diffs: %w", err)
	}

	return diffs, nil
}

// ListChangesetsByDiff returns all changesets of a diff.
func (r *DifferentialRepo) ListChangesetsByDiff(ctx context.Context, diffID int64) ([]model.Changeset, error) {
	const query = `
		SELECT id, diffID, addLines, delLines
		FROM differential_changeset
		WHERE diffID = ?
		ORDER BY id
	`

	rows, err := r.db.Differentials.QueryContext(ctx, query, diffID)
	if err != nil {
		return nil, fmt.Errorf("query changesets for diff %d: %w", diffID, err)
	}
	defer rows.Close()

	var changesets []model.Changeset
	for rows.Next() {
		var cs model.Changeset
		if err := rows.Scan(&cs.ID, &cs.DiffID, &cs.AddLines, &cs.DelLines); err != nil {
			return nil, fmt.Errorf("scan changeset: %w", err)
		}
		changesets = append(changesets, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate changesets: %w", err)
	}

	return changesets, nil
}

// ListInlineComments returns the comments attached to a changeset.
func (r *DifferentialRepo) ListInlineComments(ctx context.Context, changesetID int64) ([]model.TransactionComment, error) {
	const query = `
		SELECT id, phid, authorPHID, changesetID, content, attributes, dateCreated
		FROM differential_transaction_comment
		WHERE changesetID = ?
		ORDER BY id
	`

	rows, err := r.db.Differentials.QueryContext(ctx, query, changesetID)
	if err != nil {
		return nil, fmt.Errorf("query comments for changeset %d: %w", changesetID, err)
	}
	defer rows.Close()

	var comments []model.TransactionComment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}

// ListCommentTransactions returns the core:comment transactions recorded
// against the given object handle.
func (r *DifferentialRepo) ListCommentTransactions(ctx context.Context, objectPHID string) ([]model.Transaction, error) {
	const query = `
		SELECT id, phid, objectPHID, commentPHID, transactionType
		FROM differential_transaction
		WHERE objectPHID = ? AND transactionType = ?
		ORDER BY id
	`

	rows, err := r.db.Differentials.QueryContext(ctx, query, objectPHID, model.TransactionTypeComment)
	if err != nil {
		return nil, fmt.Errorf("query transactions for %s: %w", objectPHID, err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		var commentPHID sql.NullString
		if err := rows.Scan(&tx.ID, &tx.PHID, &tx.ObjectPHID, &commentPHID, &tx.TransactionType); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.CommentPHID = commentPHID.String
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}

// GetCommentByPHID resolves exactly one comment by handle.
func (r *DifferentialRepo) GetCommentByPHID(ctx context.Context, phid string) (*model.TransactionComment, error) {
	const query = `
		SELECT id, phid, authorPHID, changesetID, content, attributes, dateCreated
		FROM differential_transaction_comment
		WHERE phid = ?
	`

	rows, err := r.db.Differentials.QueryContext(ctx, query, phid)
	if err != nil {
		return nil, fmt.Errorf("query comment %s: %w", phid, err)
	}
	defer rows.Close()

	var comments []model.TransactionComment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	switch len(comments) {
	case 0:
		return nil, fmt.Errorf("comment %s: %w", phid, driven.ErrNotFound)
	case 1:
		return &comments[0], nil
	default:
		return nil, fmt.Errorf("comment %s: %w", phid, driven.ErrAmbiguous)
	}
}

// ListReviewersByRevision returns all review requests for a revision.
func (r *DifferentialRepo) ListReviewersByRevision(ctx context.Context, revisionPHID string) ([]model.Reviewer, error) {
	const query = `
		SELECT id, revisionPHID, reviewerPHID, reviewerStatus, dateCreated, dateModified
		FROM differential_reviewer
		WHERE revisionPHID = ?
		ORDER BY id
	`

	rows, err := r.db.Differentials.QueryContext(ctx, query, revisionPHID)
	if err != nil {
		return nil, fmt.Errorf("query reviewers for %s: %w", revisionPHID, err)
	}
	defer rows.Close()

	var reviewers []model.Reviewer
	for rows.Next() {
		var rv model.Reviewer
		if err := rows.Scan(&rv.ID, &rv.RevisionPHID, &rv.ReviewerPHID, &rv.Status, &rv.DateCreated, &rv.DateModified); err != nil {
			return nil, fmt.Errorf("scan reviewer: %w", err)
		}
		reviewers = append(reviewers, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviewers: %w", err)
	}

	return reviewers, nil
}

// LatestReviewerByRevision returns the review request with the greatest
// dateModified, or nil when the revision has none.
func (r *DifferentialRepo) LatestReviewerByRevision(ctx context.Context, revisionPHID string) (*model.Reviewer, error) {
	const query = `
		SELECT id, revisionPHID, reviewerPHID, reviewerStatus, dateCreated, dateModified
		FROM differential_reviewer
		WHERE revisionPHID = ?
		ORDER BY dateModified DESC
		LIMIT 1
	`

	var rv model.Reviewer
	err := r.db.Differentials.QueryRowContext(ctx, query, revisionPHID).
		Scan(&rv.ID, &rv.RevisionPHID, &rv.ReviewerPHID, &rv.Status, &rv.DateCreated, &rv.DateModified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest reviewer for %s: %w", revisionPHID, err)
	}

	return &rv, nil
}

// DependencyEdges returns every depends-on / depended-on-by edge touching any
// of the given handles on either end.
func (r *DifferentialRepo) DependencyEdges(ctx context.Context, phids []string) ([]model.Edge, error) {
	if len(phids) == 0 {
		return nil, nil
	}

	marks := placeholders(len(phids))
	query := fmt.Sprintf(`
		SELECT src, type, dst
		FROM edge
		WHERE (src IN (%s) OR dst IN (%s)) AND type IN (?, ?)
	`, marks, marks)

	args := make([]any, 0, 2*len(phids)+2)
	for _, phid := range phids {
		args = append(args, phid)
	}
	for _, phid := range phids {
		args = append(args, phid)
	}
	args = append(args, model.EdgeTypeDependsOn, model.EdgeTypeDependedOnBy)

	rows, err := r.db.Differentials.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query dependency edges: %w", err)
	}
	defer rows.Close()

	var edges []model.Edge
	for rows.Next() {
		var e model.Edge
		if err := rows.Scan(&e.Src, &e.Type, &e.Dst); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edges: %w", err)
	}

	return edges, nil
}

func collectRevisions(rows *sql.Rows) ([]model.Revision, error) {
	var revisions []model.Revision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revisions = append(revisions, *rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}

	return revisions, nil
}

func scanRevision(s scanner) (*model.Revision, error) {
	var rev model.Revision
	var repositoryPHID sql.NullString

	err := s.Scan(&rev.ID, &rev.PHID, &rev.Title, &rev.Status, &repositoryPHID, &rev.DateCreated)
	if err != nil {
		return nil, err
	}

	rev.RepositoryPHID = repositoryPHID.String
	return &rev, nil
}

func scanComment(s scanner) (*model.TransactionComment, error) {
	var c model.TransactionComment
	var changesetID sql.NullInt64

	err := s.Scan(&c.ID, &c.PHID, &c.AuthorPHID, &changesetID, &c.Content, &c.Attributes, &c.DateCreated)
	if err != nil {
		return nil, err
	}

	c.ChangesetID = changesetID.Int64
	return &c, nil
}
