// Package jsonfile persists report snapshots as indented JSON files.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mozilla-conduit/phab-etl/internal/domain/model"
	"github.com/mozilla-conduit/phab-etl/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ReportWriter = (*Writer)(nil)

// Writer stores reports as revisions_YYYYMMDD.json (UTC date) in a fixed
// directory. The date stamp keeps runs on different days from overwriting
// each other; a re-run on the same day replaces that day's snapshot.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a Writer targeting dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// Write marshals the report with two-space indentation and writes it out,
// returning the full path of the snapshot file.
func (w *Writer) Write(report model.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	name := fmt.Sprintf("revisions_%s.json", w.now().UTC().Format("20060102"))
	path := filepath.Join(w.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}
