package schema

import (
	"context"
	"database/sql"
	"strings"

	"synth-pump/internal/dialect"

	"github.com/cockroachdb/errors"
)

// ExistingTables lists the base tables in the connection's current schema, where
// the unqualified CREATE TABLE of a run lands. Keys are upper-cased names so
// lookups work for Oracle's upper-case catalog too.
func ExistingTables(ctx context.Context, db *sql.DB, d dialect.Dialect) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, d.GetTablesQuery())
	if err != nil {
		return nil, errors.Wrap(err, "failed to query tables")
	}
	defer rows.Close()

	tables := make(map[string]string)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "failed to scan table name")
		}
		tables[strings.ToUpper(name)] = name
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating tables")
	}
	return tables, nil
}
