// Package driven defines the driven ports: store interfaces over the four
// Phabricator partitions and the report writer.
package driven

import "errors"

var (
	// ErrNotFound indicates a lookup expected to resolve a record found none.
	// The store's cross-partition references are assumed consistent, so this
	// is a referential-integrity failure that aborts the run.
	ErrNotFound = errors.New("record not found")

	// ErrAmbiguous indicates a lookup expected to resolve exactly one record
	// matched several.
	ErrAmbiguous = errors.New("lookup matched multiple records")
)
