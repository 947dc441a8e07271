package app

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/dragon-lineup/internal/config"
	"github.com/riskibarqy/dragon-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dragon-lineup/internal/domain/person"
	"github.com/riskibarqy/dragon-lineup/internal/domain/seat"
	"github.com/riskibarqy/dragon-lineup/internal/domain/training"
	"github.com/riskibarqy/dragon-lineup/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/dragon-lineup/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/dragon-lineup/internal/interfaces/httpapi"
	"github.com/riskibarqy/dragon-lineup/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const dbPingTimeout = 5 * time.Second

type storage struct {
	lineups   lineup.Repository
	seats     seat.Registry
	persons   person.Lookup
	trainings training.Lookup
	// health is nil for the memory store.
	health httpapi.HealthChecker
	close  func() error
}

func openStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return storage{
			lineups:   store.Lineups(),
			seats:     store.Seats(),
			persons:   memory.NewPersonDirectory(memory.SeedPersons()),
			trainings: memory.NewTrainingDirectory(memory.SeedTrainings()),
			close:     func() error { return nil },
		}, nil
	}

	dsn := NormalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	dbName := dbNameFromURL(dsn)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return storage{}, crerr.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return storage{}, crerr.Wrapf(err, "ping postgres %s", dbName)
	}
	otelsql.ReportDBStatsMetrics(db.DB, otelsql.WithDBName(dbName))
	logger.Info("postgres connected", "db_name", dbName, "max_open_conns", cfg.DBMaxOpenConns)

	return storage{
		lineups:   postgres.NewLineupRepository(db),
		seats:     postgres.NewSeatRegistry(db),
		persons:   postgres.NewPersonRepository(db),
		trainings: postgres.NewTrainingRepository(db),
		health:    db,
		close:     db.Close,
	}, nil
}
