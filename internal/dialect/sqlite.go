package dialect

import "fmt"

type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string {
	return "sqlite3"
}

func (d *SQLiteDialect) GetTablesQuery() string {
	return `SELECT name FROM sqlite_master WHERE type = 'table'`
}

func (d *SQLiteDialect) InsertQuery(table string, cols []string) string {
	return DefaultInsertQuery(table, cols, d.Placeholder)
}

func (d *SQLiteDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
}

func (d *SQLiteDialect) Placeholder(index int) string {
	return "?"
}
