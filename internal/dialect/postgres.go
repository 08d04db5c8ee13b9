package dialect

import (
	"fmt"

	"github.com/lib/pq"
)

// PostgresDialect also serves Redshift.
type PostgresDialect struct {
	driver string
}

func (d *PostgresDialect) Name() string {
	if d.driver == "" {
		return "postgres"
	}
	return d.driver
}

func (d *PostgresDialect) GetTablesQuery() string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = current_schema() AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *PostgresDialect) InsertQuery(table string, cols []string) string {
	return DefaultInsertQuery(table, cols, d.Placeholder)
}

// DropTableQuery quotes the catalog name so mixed-case tables resolve.
func (d *PostgresDialect) DropTableQuery(table string) string {
	return "DROP TABLE " + pq.QuoteIdentifier(table)
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}
