package application

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/mozilla-conduit/phab-etl/internal/domain/model"
	"github.com/mozilla-conduit/phab-etl/internal/domain/port/driven"
)

// Materializer resolves authorship and classification for raw comment and
// review-request records by joining against the user and project partitions.
// Author handles are assumed referentially consistent with the user partition;
// a handle that does not resolve aborts the run.
type Materializer struct {
	users         driven.UserStore
	projects      driven.ProjectStore
	differentials driven.DifferentialStore
}

// NewMaterializer creates a Materializer with the required stores.
func NewMaterializer(
	users driven.UserStore,
	projects driven.ProjectStore,
	differentials driven.DifferentialStore,
) *Materializer {
	return &Materializer{
		users:         users,
		projects:      projects,
		differentials: differentials,
	}
}

// UserName resolves a user handle to its display name.
func (m *Materializer) UserName(ctx context.Context, phid string) (string, error) {
	user, err := m.users.GetUserByPHID(ctx, phid)
	if err != nil {
		return "", err
	}
	return user.UserName, nil
}

// CommentDetail resolves one comment's author and measures its content in
// Unicode code points.
func (m *Materializer) CommentDetail(ctx context.Context, c model.TransactionComment) (model.CommentDetail, error) {
	author, err := m.UserName(ctx, c.AuthorPHID)
	if err != nil {
		return model.CommentDetail{}, fmt.Errorf("resolve author of comment %d: %w", c.ID, err)
	}
	return model.CommentDetail{
		Author:         author,
		Timestamp:      c.DateCreated,
		CharacterCount: utf8.RuneCountInString(c.Content),
	}, nil
}

// InlineCommentDetail resolves one changeset comment, including its
// suggestion flag. Every comment is evaluated on its own; a suggestion on one
// comment never short-circuits the flagging of its siblings.
func (m *Materializer) InlineCommentDetail(ctx context.Context, c model.TransactionComment) (model.InlineCommentDetail, error) {
	detail, err := m.CommentDetail(ctx, c)
	if err != nil {
		return model.InlineCommentDetail{}, err
	}

	suggestion, err := c.IsSuggestion()
	if err != nil {
		return model.InlineCommentDetail{}, err
	}

	return model.InlineCommentDetail{
		CommentDetail: detail,
		IsSuggestion:  suggestion,
	}, nil
}

// ReviewRequests materializes every review request for a revision, keyed
// "review-<id>". Group reviewers (project handles) resolve through the
// project partition, all others through the user partition.
func (m *Materializer) ReviewRequests(ctx context.Context, revisionPHID string) (map[string]model.ReviewRequestDetail, error) {
	reviewers, err := m.differentials.ListReviewersByRevision(ctx, revisionPHID)
	if err != nil {
		return nil, fmt.Errorf("list reviewers: %w", err)
	}

	requests := make(map[string]model.ReviewRequestDetail, len(reviewers))
	for _, rv := range reviewers {
		var name string
		if rv.IsGroup() {
			project, err := m.projects.GetProjectByPHID(ctx, rv.ReviewerPHID)
			if err != nil {
				return nil, fmt.Errorf("resolve group reviewer %s: %w", rv.ReviewerPHID, err)
			}
			name = project.Name
		} else {
			name, err = m.UserName(ctx, rv.ReviewerPHID)
			if err != nil {
				return nil, fmt.Errorf("resolve reviewer %s: %w", rv.ReviewerPHID, err)
			}
		}

		requests[model.ReviewKey(rv.ID)] = model.ReviewRequestDetail{
			Reviewer:          name,
			IsGroup:           rv.IsGroup(),
			CreationTimestamp: rv.DateCreated,
			ReviewTimestamp:   rv.DateModified,
			Status:            rv.Status,
		}
	}

	return requests, nil
}

// LastReviewID returns the id of the most recently modified review request
// for a revision, or nil when none exist.
func (m *Materializer) LastReviewID(ctx context.Context, revisionPHID string) (*int64, error) {
	last, err := m.differentials.LatestReviewerByRevision(ctx, revisionPHID)
	if err != nil {
		return nil, fmt.Errorf("latest reviewer: %w", err)
	}
	if last == nil {
		return nil, nil
	}
	id := last.ID
	return &id, nil
}
