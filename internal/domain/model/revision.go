// Package model defines typed read-only views over the Phabricator store:
// one struct per entity the exporter touches, plus the parsing conventions
// (title prefixes, handle namespaces, attribute blobs) that classify them.
package model

import "strings"

// Revision represents a proposed code change under review.
type Revision struct {
	ID             int64
	PHID           string
	Title          string
	Status         string
	RepositoryPHID string
	DateCreated    int64
}

// BugID returns the ticket identifier embedded as the title prefix: everything
// before the first "-", or the whole title when no dash is present. The value
// is an opaque key; no trimming or validation is applied, so "BUG123 - fix"
// yields "BUG123 " with its trailing space.
func (r Revision) BugID() string {
	if i := strings.Index(r.Title, "-"); i >= 0 {
		return r.Title[:i]
	}
	return r.Title
}
