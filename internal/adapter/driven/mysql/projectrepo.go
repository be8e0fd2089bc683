package mysql

import (
	"context"
	"fmt"

	"github.com/mozilla-conduit/phab-etl/internal/domain/model"
	"github.com/mozilla-conduit/phab-etl/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ProjectStore = (*ProjectRepo)(nil)

// ProjectRepo is the MySQL implementation of the ProjectStore port interface.
type ProjectRepo struct {
	db *DB
}

// NewProjectRepo creates a new ProjectRepo backed by the given DB.
func NewProjectRepo(db *DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// GetProjectByPHID resolves exactly one project by handle.
func (r *ProjectRepo) GetProjectByPHID(ctx context.Context, phid string) (*model.Project, error) {
	const query = `SELECT phid, name FROM project WHERE phid = ?`

	rows, err := r.db.Projects.QueryContext(ctx, query, phid)
	if err != nil {
		return nil, fmt.Errorf("query project %s: %w", phid, err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.PHID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	switch len(projects) {
	case 0:
		return nil, fmt.Errorf("project %s: %w", phid, driven.ErrNotFound)
	case 1:
		return &projects[0], nil
	default:
		return nil, fmt.Errorf("project %s: %w", phid, driven.ErrAmbiguous)
	}
}
