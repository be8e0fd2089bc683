package application_test

import (
	"context"
	"fmt"

	"github.com/mozilla-conduit/phab-etl/internal/domain/model"
	"github.com/mozilla-conduit/phab-etl/internal/domain/port/driven"
)

// In-memory port implementations backing the application tests.

type fakeUsers struct {
	users map[string]string // phid -> userName
}

func (f *fakeUsers) GetUserByPHID(_ context.Context, phid string) (*model.User, error) {
	name, ok := f.users[phid]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", phid, driven.ErrNotFound)
	}
	return &model.User{PHID: phid, UserName: name}, nil
}

type fakeProjects struct {
	projects map[string]string // phid -> name
}

func (f *fakeProjects) GetProjectByPHID(_ context.Context, phid string) (*model.Project, error) {
	name, ok := f.projects[phid]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", phid, driven.ErrNotFound)
	}
	return &model.Project{PHID: phid, Name: name}, nil
}

type fakeRepositories struct {
	uris map[string]string // repositoryPHID -> uri
}

func (f *fakeRepositories) GetURIByRepositoryPHID(_ context.Context, phid string) (string, error) {
	uri, ok := f.uris[phid]
	if !ok {
		return "", fmt.Errorf("repository %s: %w", phid, driven.ErrNotFound)
	}
	return uri, nil
}

type fakeDifferentials struct {
	revisions    []model.Revision
	diffs        map[int64][]model.Diff                // by revision id
	changesets   map[int64][]model.Changeset           // by diff id
	inline       map[int64][]model.TransactionComment  // by changeset id
	transactions map[string][]model.Transaction        // by object phid
	comments     map[string]model.TransactionComment   // by comment phid
	reviewers    map[string][]model.Reviewer           // by revision phid
	edges        []model.Edge
}

func newFakeDifferentials() *fakeDifferentials {
	return &fakeDifferentials{
		diffs:        map[int64][]model.Diff{},
		changesets:   map[int64][]model.Changeset{},
		inline:       map[int64][]model.TransactionComment{},
		transactions: map[string][]model.Transaction{},
		comments:     map[string]model.TransactionComment{},
		reviewers:    map[string][]model.Reviewer{},
	}
}

func (f *fakeDifferentials) ListRevisions(context.Context) ([]model.Revision, error) {
	return f.revisions, nil
}

func (f *fakeDifferentials) RevisionsByPHIDs(_ context.Context, phids []string) ([]model.Revision, error) {
	wanted := make(map[string]struct{}, len(phids))
	for _, phid := range phids {
		wanted[phid] = struct{}{}
	}
	var out []model.Revision
	for _, rev := range f.revisions {
		if _, ok := wanted[rev.PHID]; ok {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (f *fakeDifferentials) ListDiffsByRevision(_ context.Context, revisionID int64) ([]model.Diff, error) {
	return f.diffs[revisionID], nil
}

func (f *fakeDifferentials) ListChangesetsByDiff(_ context.Context, diffID int64) ([]model.Changeset, error) {
	return f.changesets[diffID], nil
}

func (f *fakeDifferentials) ListInlineComments(_ context.Context, changesetID int64) ([]model.TransactionComment, error) {
	return f.inline[changesetID], nil
}

func (f *fakeDifferentials) ListCommentTransactions(_ context.Context, objectPHID string) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, tx := range f.transactions[objectPHID] {
		if tx.TransactionType == model.TransactionTypeComment {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeDifferentials) GetCommentByPHID(_ context.Context, phid string) (*model.TransactionComment, error) {
	c, ok := f.comments[phid]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", phid, driven.ErrNotFound)
	}
	return &c, nil
}

func (f *fakeDifferentials) ListReviewersByRevision(_ context.Context, revisionPHID string) ([]model.Reviewer, error) {
	return f.reviewers[revisionPHID], nil
}

func (f *fakeDifferentials) LatestReviewerByRevision(_ context.Context, revisionPHID string) (*model.Reviewer, error) {
	var latest *model.Reviewer
	for i, rv := range f.reviewers[revisionPHID] {
		if latest == nil || rv.DateModified > latest.DateModified {
			latest = &f.reviewers[revisionPHID][i]
		}
	}
	return latest, nil
}

func (f *fakeDifferentials) DependencyEdges(_ context.Context, phids []string) ([]model.Edge, error) {
	frontier := make(map[string]struct{}, len(phids))
	for _, phid := range phids {
		frontier[phid] = struct{}{}
	}
	var out []model.Edge
	for _, e := range f.edges {
		if e.Type != model.EdgeTypeDependsOn && e.Type != model.EdgeTypeDependedOnBy {
			continue
		}
		_, srcHit := frontier[e.Src]
		_, dstHit := frontier[e.Dst]
		if srcHit || dstHit {
			out = append(out, e)
		}
	}
	return out, nil
}
