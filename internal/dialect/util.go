package dialect

import "strings"

// DefaultInsertQuery builds a plain INSERT with one placeholder per column.
// There is no conflict clause: a duplicate key fails the insert.
func DefaultInsertQuery(table string, cols []string, placeholder func(int) string) string {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(") VALUES (")
	for i := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(placeholder(i))
	}
	sb.WriteString(")")
	return sb.String()
}
