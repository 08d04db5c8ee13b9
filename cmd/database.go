package cmd

import (
	"context"
	"database/sql"

	"synth-pump/internal/config"
	"synth-pump/internal/dialect"
	"synth-pump/internal/logger"

	"github.com/cockroachdb/errors"
)

// openDatabase connects to the active database and resolves its dialect.
func openDatabase(ctx context.Context, cfg *config.Config, log logger.Logger) (*sql.DB, dialect.Dialect, *config.DBConfig, error) {
	dbc, err := cfg.ActiveDatabase()
	if err != nil {
		return nil, nil, nil, err
	}
	d, err := dialect.GetDialect(dbc.Driver)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := sql.Open(dialect.DriverName(dbc.Driver), dbc.DSN)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to open db")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, nil, errors.Wrap(err, "failed to connect to db")
	}

	log.Info("connected to %s (%s)", dbc.Name, dbc.Driver)
	return db, d, dbc, nil
}
