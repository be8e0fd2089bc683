package driven

import (
	"context"

	"github.com/mozilla-conduit/phab-etl/internal/domain/model"
)

// UserStore is the driven port for the user partition.
type UserStore interface {
	// GetUserByPHID resolves exactly one user by handle. Zero matches yields
	// ErrNotFound, more than one ErrAmbiguous.
	GetUserByPHID(ctx context.Context, phid string) (*model.User, error)
}

// ProjectStore is the driven port for the project partition.
type ProjectStore interface {
	// GetProjectByPHID resolves exactly one project by handle. Zero matches
	// yields ErrNotFound, more than one ErrAmbiguous.
	GetProjectByPHID(ctx context.Context, phid string) (*model.Project, error)
}

// RepositoryStore is the driven port for the repository partition.
type RepositoryStore interface {
	// GetURIByRepositoryPHID returns the canonical URI of the repository with
	// the given handle, or ErrNotFound when no URI record matches.
	GetURIByRepositoryPHID(ctx context.Context, phid string) (string, error)
}
