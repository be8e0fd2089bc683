// Command phab-etl exports code-review activity from a Phabricator install
// into a date-stamped JSON snapshot. It reads the four logical MySQL
// partitions (user, project, repository, differential), aggregates one nested
// record per revision, writes revisions_YYYYMMDD.json, and exits. Any
// unrecovered failure aborts the run with a non-zero exit; no partial report
// is emitted.
package main

import (
	"context"
	"log/slog"
	"os"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/mozilla-conduit/phab-etl/internal/adapter/driven/jsonfile"
	mysqladapter "github.com/mozilla-conduit/phab-etl/internal/adapter/driven/mysql"
	"github.com/mozilla-conduit/phab-etl/internal/application"
	"github.com/mozilla-conduit/phab-etl/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing PHAB_TOKEN).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"host", cfg.Host,
		"port", cfg.Port,
		"namespace", cfg.Namespace,
		"output_dir", cfg.OutputDir,
	)

	ctx := context.Background()

	// 2. Open the four partition connections.
	db, err := mysqladapter.Open(mysqladapter.Params{
		Host:      cfg.Host,
		Port:      cfg.Port,
		Namespace: cfg.Namespace,
		User:      cfg.User,
		Token:     cfg.Token,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("partitions connected", "namespace", cfg.Namespace)

	// 3. Wire adapters and services.
	users := mysqladapter.NewUserRepo(db)
	projects := mysqladapter.NewProjectRepo(db)
	repositories := mysqladapter.NewRepositoryRepo(db)
	differentials := mysqladapter.NewDifferentialRepo(db)

	stacks := application.NewStackResolver(differentials)
	materializer := application.NewMaterializer(users, projects, differentials)
	reporter := application.NewReporter(differentials, repositories, stacks, materializer, slog.Default())

	// 4. Build and export the snapshot.
	report, err := reporter.BuildReport(ctx)
	if err != nil {
		return err
	}

	path, err := jsonfile.NewWriter(cfg.OutputDir).Write(report)
	if err != nil {
		return err
	}

	slog.Info("report written", "path", path, "revisions", len(report))
	return nil
}
