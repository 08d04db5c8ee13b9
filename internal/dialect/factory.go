package dialect

import "github.com/cockroachdb/errors"

// GetDialect returns the Dialect implementation for a database/sql driver name.
func GetDialect(driver string) (Dialect, error) {
	switch driver {
	case "mysql":
		return &MysqlDialect{}, nil
	case "postgres", "redshift":
		return &PostgresDialect{driver: driver}, nil
	case "sqlserver", "mssql":
		return &MSSQLDialect{driver: driver}, nil
	case "oracle":
		return &OracleDialect{}, nil
	case "sqlite3":
		return &SQLiteDialect{}, nil
	default:
		return nil, errors.Newf("unsupported database driver: %s", driver)
	}
}

// DriverName maps a dialect alias to the database/sql driver that serves it.
// Redshift speaks the postgres wire protocol.
func DriverName(driver string) string {
	if driver == "redshift" {
		return "postgres"
	}
	return driver
}

// Ensure interface implementation
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
var _ Dialect = (*SQLiteDialect)(nil)
