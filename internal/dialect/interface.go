package dialect

// Dialect abstracts the database-specific SQL the database sink needs.
// CREATE TABLE is not part of it: those statements carry the scan
// report's type labels verbatim for every target.
type Dialect interface {
	// Name is the database/sql driver name the dialect was resolved from.
	Name() string

	// GetTablesQuery lists the base tables of the connection's current schema,
	// the one unqualified CREATE TABLE and DROP TABLE statements resolve to.
	GetTablesQuery() string

	// Query Generation
	InsertQuery(table string, cols []string) string
	DropTableQuery(table string) string
	Placeholder(index int) string // Returns ?, $1, @p1, :1
}
