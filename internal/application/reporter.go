package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mozilla-conduit/phab-etl/internal/domain/model"
	"github.com/mozilla-conduit/phab-etl/internal/domain/port/driven"
)

// Reporter assembles the full snapshot: one nested record per revision,
// composed from the stack resolver and the materializer. Revisions are
// independent units of work processed sequentially; the first unrecovered
// store failure aborts the whole build.
type Reporter struct {
	differentials driven.DifferentialStore
	repositories  driven.RepositoryStore
	stacks        *StackResolver
	materializer  *Materializer
	logger        *slog.Logger
}

// NewReporter creates a Reporter with the required collaborators.
func NewReporter(
	differentials driven.DifferentialStore,
	repositories driven.RepositoryStore,
	stacks *StackResolver,
	materializer *Materializer,
	logger *slog.Logger,
) *Reporter {
	return &Reporter{
		differentials: differentials,
		repositories:  repositories,
		stacks:        stacks,
		materializer:  materializer,
		logger:        logger,
	}
}

// BuildReport aggregates every revision in the store into a Report keyed by
// display id ("D123").
func (r *Reporter) BuildReport(ctx context.Context) (model.Report, error) {
	revisions, err := r.differentials.ListRevisions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}

	report := make(model.Report, len(revisions))
	for _, rev := range revisions {
		record, err := r.buildRevision(ctx, rev)
		if err != nil {
			return nil, fmt.Errorf("revision %s: %w", model.RevisionKey(rev.ID), err)
		}
		report[model.RevisionKey(rev.ID)] = record
		r.logger.Debug("revision aggregated",
			"revision", model.RevisionKey(rev.ID),
			"stack_size", record.StackSize,
			"diffs", len(record.Diffs),
		)
	}

	return report, nil
}

func (r *Reporter) buildRevision(ctx context.Context, rev model.Revision) (model.RevisionRecord, error) {
	lastReviewID, err := r.materializer.LastReviewID(ctx, rev.PHID)
	if err != nil {
		return model.RevisionRecord{}, err
	}

	uri, err := r.repositories.GetURIByRepositoryPHID(ctx, rev.RepositoryPHID)
	if err != nil {
		return model.RevisionRecord{}, fmt.Errorf("resolve target repository: %w", err)
	}

	stackSize, err := r.stacks.StackSize(ctx, rev)
	if err != nil {
		return model.RevisionRecord{}, err
	}

	diffs, err := r.buildDiffs(ctx, rev)
	if err != nil {
		return model.RevisionRecord{}, err
	}

	comments, err := r.buildGeneralComments(ctx, rev.PHID)
	if err != nil {
		return model.RevisionRecord{}, err
	}

	return model.RevisionRecord{
		FirstSubmission:  rev.DateCreated,
		LastReviewID:     lastReviewID,
		Status:           rev.Status,
		TargetRepository: uri,
		StackSize:        stackSize,
		Diffs:            diffs,
		Comments:         comments,
	}, nil
}

// buildDiffs materializes the revision's human-submitted diffs; synthetic
// diffs (landed commits, repository identities) are skipped entirely.
func (r *Reporter) buildDiffs(ctx context.Context, rev model.Revision) (map[string]model.DiffDetail, error) {
	diffs, err := r.differentials.ListDiffsByRevision(ctx, rev.ID)
	if err != nil {
		return nil, fmt.Errorf("list diffs: %w", err)
	}

	details := make(map[string]model.DiffDetail)
	for _, diff := range diffs {
		if diff.Synthetic() {
			continue
		}

		author, err := r.materializer.UserName(ctx, diff.AuthorPHID)
		if err != nil {
			return nil, fmt.Errorf("resolve author of diff %d: %w", diff.ID, err)
		}

		changesets, err := r.buildChangesets(ctx, diff.ID)
		if err != nil {
			return nil, fmt.Errorf("diff %d: %w", diff.ID, err)
		}

		requests, err := r.materializer.ReviewRequests(ctx, rev.PHID)
		if err != nil {
			return nil, err
		}

		details[model.DiffKey(diff.ID)] = model.DiffDetail{
			SubmissionTime: diff.DateCreated,
			Author:         author,
			Changesets:     changesets,
			ReviewRequests: requests,
		}
	}

	return details, nil
}

func (r *Reporter) buildChangesets(ctx context.Context, diffID int64) (map[string]model.ChangesetDetail, error) {
	changesets, err := r.differentials.ListChangesetsByDiff(ctx, diffID)
	if err != nil {
		return nil, fmt.Errorf("list changesets: %w", err)
	}

	details := make(map[string]model.ChangesetDetail, len(changesets))
	for _, cs := range changesets {
		comments, err := r.differentials.ListInlineComments(ctx, cs.ID)
		if err != nil {
			return nil, fmt.Errorf("list comments of changeset %d: %w", cs.ID, err)
		}

		commentDetails := make(map[string]model.InlineCommentDetail, len(comments))
		for _, c := range comments {
			detail, err := r.materializer.InlineCommentDetail(ctx, c)
			if err != nil {
				return nil, err
			}
			commentDetails[model.CommentKey(c.ID)] = detail
		}

		details[model.ChangesetKey(cs.ID)] = model.ChangesetDetail{
			LinesAdded:   cs.AddLines,
			LinesRemoved: cs.DelLines,
			Comments:     commentDetails,
		}
	}

	return details, nil
}

// buildGeneralComments materializes the revision-level comments reached
// through core:comment transactions.
func (r *Reporter) buildGeneralComments(ctx context.Context, revisionPHID string) (map[string]model.CommentDetail, error) {
	transactions, err := r.differentials.ListCommentTransactions(ctx, revisionPHID)
	if err != nil {
		return nil, fmt.Errorf("list comment transactions: %w", err)
	}

	details := make(map[string]model.CommentDetail, len(transactions))
	for _, tx := range transactions {
		comment, err := r.differentials.GetCommentByPHID(ctx, tx.CommentPHID)
		if err != nil {
			return nil, fmt.Errorf("resolve comment of transaction %d: %w", tx.ID, err)
		}

		detail, err := r.materializer.CommentDetail(ctx, *comment)
		if err != nil {
			return nil, err
		}
		details[model.CommentKey(comment.ID)] = detail
	}

	return details, nil
}
