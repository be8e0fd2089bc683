package driven

import "github.com/mozilla-conduit/phab-etl/internal/domain/model"

// ReportWriter is the driven port for persisting one finished snapshot.
type ReportWriter interface {
	// Write stores the report and returns the path it was written to.
	Write(report model.Report) (string, error)
}
