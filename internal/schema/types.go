package schema

import "strings"

// TypeKind is the generation-relevant family of a scan report type label.
type TypeKind int

const (
	TypeUnknown TypeKind = iota
	TypeChar
	TypeInteger
	TypeDate
	TypeReal
	TypeEmpty
)

var kindNames = map[TypeKind]string{
	TypeUnknown: "unknown",
	TypeChar:    "char",
	TypeInteger: "integer",
	TypeDate:    "date",
	TypeReal:    "real",
	TypeEmpty:   "empty",
}

func (k TypeKind) String() string {
	return kindNames[k]
}

// Classify maps a type label to its TypeKind. Labels are compared case-insensitively
// so both scan report labels (VarChar, Integer) and SQL names (VARCHAR2, BIGINT) work.
func Classify(label string) TypeKind {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "VARCHAR", "VARCHAR2", "CHARACTER VARYING", "CHAR", "NVARCHAR", "TEXT":
		return TypeChar
	case "INT", "INTEGER", "BIGINT", "SMALLINT", "TINYINT":
		return TypeInteger
	case "DATE", "DATETIME", "TIMESTAMP":
		return TypeDate
	case "REAL", "FLOAT", "DOUBLE", "NUMERIC", "DECIMAL":
		return TypeReal
	case "EMPTY":
		return TypeEmpty
	default:
		return TypeUnknown
	}
}
