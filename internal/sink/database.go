package sink

import (
	"context"
	"database/sql"

	"synth-pump/internal/dialect"

	"github.com/cockroachdb/errors"
)

// DatabaseSink writes rows into a relational database, one transaction per table.
type DatabaseSink struct {
	db      *sql.DB
	dialect dialect.Dialect
}

var _ Sink = (*DatabaseSink)(nil)

func NewDatabaseSink(db *sql.DB, d dialect.Dialect) *DatabaseSink {
	return &DatabaseSink{db: db, dialect: d}
}

func (s *DatabaseSink) Kind() Kind {
	return Database
}

func (s *DatabaseSink) Exec(ctx context.Context, statement string) error {
	if _, err := s.db.ExecContext(ctx, statement); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}
	return nil
}

// Open begins a transaction and prepares the insert for the table.
func (s *DatabaseSink) Open(ctx context.Context, table string, fields []string) (Writer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to begin transaction for %s", table)
	}
	stmt, err := tx.PrepareContext(ctx, s.dialect.InsertQuery(table, fields))
	if err != nil {
		tx.Rollback()
		return nil, errors.Wrapf(err, "failed to prepare insert for %s", table)
	}
	return &dbWriter{ctx: ctx, table: table, tx: tx, stmt: stmt}, nil
}

type dbWriter struct {
	ctx    context.Context
	table  string
	tx     *sql.Tx
	stmt   *sql.Stmt
	failed bool
}

// Write inserts one row. Empty values are inserted as NULL so numeric and
// date columns accept rows whose generator had nothing to offer.
func (w *dbWriter) Write(values []string) error {
	args := make([]interface{}, len(values))
	for i, v := range values {
		if v != "" {
			args[i] = v
		}
	}
	if _, err := w.stmt.ExecContext(w.ctx, args...); err != nil {
		w.failed = true
		return errors.Wrapf(err, "failed to insert into %s", w.table)
	}
	return nil
}

// Close commits the rows, or rolls back when a write failed.
func (w *dbWriter) Close() error {
	w.stmt.Close()
	if w.failed {
		return w.tx.Rollback()
	}
	if err := w.tx.Commit(); err != nil {
		return errors.Wrapf(err, "failed to commit %s", w.table)
	}
	return nil
}

func (w *dbWriter) Artifact() string {
	return w.table
}
