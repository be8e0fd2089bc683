package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mozilla-conduit/phab-etl/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RepositoryStore = (*RepositoryRepo)(nil)

// RepositoryRepo is the MySQL implementation of the RepositoryStore port
// interface.
type RepositoryRepo struct {
	db *DB
}

// NewRepositoryRepo creates a new RepositoryRepo backed by the given DB.
func NewRepositoryRepo(db *DB) *RepositoryRepo {
	return &RepositoryRepo{db: db}
}

// GetURIByRepositoryPHID returns the canonical URI for the repository with
// the given handle. A repository may carry several URI records; the first is
// taken.
func (r *RepositoryRepo) GetURIByRepositoryPHID(ctx context.Context, phid string) (string, error) {
	const query = `SELECT uri FROM repository_uri WHERE repositoryPHID = ? LIMIT 1`

	var uri string
	err := r.db.Repositories.QueryRowContext(ctx, query, phid).Scan(&uri)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("repository %s: %w", phid, driven.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("query repository %s: %w", phid, err)
	}

	return uri, nil
}
