package dialect

import "fmt"

type MSSQLDialect struct {
	driver string
}

func (d *MSSQLDialect) Name() string {
	if d.driver == "" {
		return "sqlserver"
	}
	return d.driver
}

func (d *MSSQLDialect) GetTablesQuery() string {
	// SCHEMA_NAME() is the default schema of the connected user
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = SCHEMA_NAME() AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *MSSQLDialect) InsertQuery(table string, cols []string) string {
	return DefaultInsertQuery(table, cols, d.Placeholder)
}

func (d *MSSQLDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE %s", table)
}

// go-mssqldb prefers @p1, @p2 named parameters over ?
func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}
