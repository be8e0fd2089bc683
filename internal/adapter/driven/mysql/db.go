// Package mysql provides read-only access to the four logical partitions of a
// Phabricator MySQL install. Phabricator splits its schema across databases
// named <namespace>_<partition>; each pool here points at one of them with the
// same credentials.
package mysql

import (
	"database/sql"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
)

// Params carries the connection parameters shared by all four partitions.
type Params struct {
	Host      string
	Port      string
	Namespace string
	User      string
	Token     string
}

// DB holds one connection pool per logical partition.
type DB struct {
	Users         *sql.DB
	Projects      *sql.DB
	Repositories  *sql.DB
	Differentials *sql.DB
}

// Open connects to the four partitions and verifies each with a ping. On any
// failure the pools opened so far are closed before returning.
func Open(p Params) (*DB, error) {
	db := &DB{}
	targets := []struct {
		partition string
		pool      **sql.DB
	}{
		{"user", &db.Users},
		{"project", &db.Projects},
		{"repository", &db.Repositories},
		{"differential", &db.Differentials},
	}

	for _, t := range targets {
		pool, err := open(p, t.partition)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		*t.pool = pool
	}

	return db, nil
}

func open(p Params, partition string) (*sql.DB, error) {
	cfg := mysql.NewConfig()
	cfg.User = p.User
	cfg.Passwd = p.Token
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(p.Host, p.Port)
	cfg.DBName = fmt.Sprintf("%s_%s", p.Namespace, partition)

	pool, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open %s partition: %w", partition, err)
	}

	if err := pool.Ping(); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping %s partition: %w", partition, err)
	}

	return pool, nil
}

// Close closes all partition pools. Returns the first error encountered.
func (db *DB) Close() error {
	var firstErr error
	for _, pool := range []*sql.DB{db.Users, db.Projects, db.Repositories, db.Differentials} {
		if pool == nil {
			continue
		}
		if err := pool.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close partition: %w", err)
		}
	}
	return firstErr
}
