package mysql

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// setupTestDB creates a named shared in-memory SQLite database carrying the
// Phabricator table subset and points all four partition pools at it. The
// queries in this package stick to portable SQL, so SQLite stands in for the
// live MySQL partitions without a server. A unique name derived from t.Name()
// isolates parallel tests.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Percent-encode the test name so it's a safe SQLite URI filename
	// component and cannot be misinterpreted as query parameters.
	safeName := url.PathEscape(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", safeName)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	pool.SetMaxOpenConns(1)
	if err := pool.PingContext(context.Background()); err != nil {
		_ = pool.Close()
		t.Fatalf("ping test db: %v", err)
	}

	if err := applySchema(pool); err != nil {
		_ = pool.Close()
		t.Fatalf("apply schema: %v", err)
	}

	db := &DB{
		Users:         pool,
		Projects:      pool,
		Repositories:  pool,
		Differentials: pool,
	}

	t.Cleanup(func() { _ = pool.Close() })

	return db
}

func applySchema(pool *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := migratesqlite.WithInstance(pool, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// Insert helpers keep fixture setup in the tests terse.

func insertUser(t *testing.T, db *DB, phid, userName string) {
	t.Helper()
	mustExec(t, db, `INSERT INTO user (phid, userName) VALUES (?, ?)`, phid, userName)
}

func insertProject(t *testing.T, db *DB, phid, name string) {
	t.Helper()
	mustExec(t, db, `INSERT INTO project (phid, name) VALUES (?, ?)`, phid, name)
}

func insertRepositoryURI(t *testing.T, db *DB, repositoryPHID, uri string) {
	t.Helper()
	mustExec(t, db, `INSERT INTO repository_uri (repositoryPHID, uri) VALUES (?, ?)`, repositoryPHID, uri)
}

func insertRevision(t *testing.T, db *DB, id int64, phid, title, status, repositoryPHID string, dateCreated int64) {
	t.Helper()
	mustExec(t, db,
		`INSERT INTO differential_revision (id, phid, title, status, repositoryPHID, dateCreated) VALUES (?, ?, ?, ?, ?, ?)`,
		id, phid, title, status, repositoryPHID, dateCreated,
	)
}

func insertDiff(t *testing.T, db *DB, id, revisionID int64, authorPHID string, dateCreated int64) {
	t.Helper()
	mustExec(t, db,
		`INSERT INTO differential_diff (id, revisionID, authorPHID, dateCreated) VALUES (?, ?, ?, ?)`,
		id, revisionID, authorPHID, dateCreated,
	)
}

func insertChangeset(t *testing.T, db *DB, id, diffID, addLines, delLines int64) {
	t.Helper()
	mustExec(t, db,
		`INSERT INTO differential_changeset (id, diffID, addLines, delLines) VALUES (?, ?, ?, ?)`,
		id, diffID, addLines, delLines,
	)
}

func insertInlineComment(t *testing.T, db *DB, id int64, phid, authorPHID string, changesetID int64, content, attributes string, dateCreated int64) {
	t.Helper()
	mustExec(t, db,
		`INSERT INTO differential_transaction_comment (id, phid, authorPHID, changesetID, content, attributes, dateCreated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, phid, authorPHID, changesetID, content, attributes, dateCreated,
	)
}

func insertGeneralComment(t *testing.T, db *DB, id int64, phid, authorPHID, content, attributes string, dateCreated int64) {
	t.Helper()
	mustExec(t, db,
		`INSERT INTO differential_transaction_comment (id, phid, authorPHID, changesetID, content, attributes, dateCreated) VALUES (?, ?, ?, NULL, ?, ?, ?)`,
		id, phid, authorPHID, content, attributes, dateCreated,
	)
}

func insertTransaction(t *testing.T, db *DB, id int64, phid, objectPHID, commentPHID, transactionType string) {
	t.Helper()
	mustExec(t, db,
		`INSERT INTO differential_transaction (id, phid, objectPHID, commentPHID, transactionType) VALUES (?, ?, ?, ?, ?)`,
		id, phid, objectPHID, commentPHID, transactionType,
	)
}

func insertReviewer(t *testing.T, db *DB, id int64, revisionPHID, reviewerPHID, status string, dateCreated, dateModified int64) {
	t.Helper()
	mustExec(t, db,
		`INSERT INTO differential_reviewer (id, revisionPHID, reviewerPHID, reviewerStatus, dateCreated, dateModified) VALUES (?, ?, ?, ?, ?, ?)`,
		id, revisionPHID, reviewerPHID, status, dateCreated, dateModified,
	)
}

func insertEdge(t *testing.T, db *DB, src string, edgeType int, dst string) {
	t.Helper()
	mustExec(t, db, `INSERT INTO edge (src, type, dst) VALUES (?, ?, ?)`, src, edgeType, dst)
}

func mustExec(t *testing.T, db *DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Differentials.ExecContext(context.Background(), query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}
