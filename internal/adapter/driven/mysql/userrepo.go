package mysql

import (
	"context"
	"fmt"

	"github.com/mozilla-conduit/phab-etl/internal/domain/model"
	"github.com/mozilla-conduit/phab-etl/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.UserStore = (*UserRepo)(nil)

// UserRepo is the MySQL implementation of the UserStore port interface.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo backed by the given DB.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetUserByPHID resolves exactly one user by handle.
func (r *UserRepo) GetUserByPHID(ctx context.Context, phid string) (*model.User, error) {
	const query = `SELECT phid, userName FROM user WHERE phid = ?`

	rows, err := r.db.Users.QueryContext(ctx, query, phid)
	if err != nil {
		return nil, fmt.Errorf("query user %s: %w", phid, err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.PHID, &u.UserName); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	switch len(users) {
	case 0:
		return nil, fmt.Errorf("user %s: %w", phid, driven.ErrNotFound)
	case 1:
		return &users[0], nil
	default:
		return nil, fmt.Errorf("user %s: %w", phid, driven.ErrAmbiguous)
	}
}
