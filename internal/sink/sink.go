package sink

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrUnsupported is returned when a sink is asked for an operation its kind does not have.
var ErrUnsupported = errors.New("operation not supported by sink")

// Kind is the type of target a run writes to. It is fixed for the whole run.
type Kind int

const (
	Database Kind = iota + 1
	FileSet
)

func (k Kind) String() string {
	switch k {
	case Database:
		return "database"
	case FileSet:
		return "files"
	default:
		return "unknown"
	}
}

// ParseKind accepts "database"/"db" and "files"/"delimited" (plus the long
// "Delimited text files" label).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "database", "db":
		return Database, nil
	case "files", "file", "fileset", "delimited", "delimited text files", "csv":
		return FileSet, nil
	default:
		return 0, errors.Newf("unknown target %q (expected database or files)", s)
	}
}

// Sink is the tabular destination of a synthesis run.
type Sink interface {
	// Kind decides how the orchestrator names tables and whether it emits DDL.
	Kind() Kind

	// Exec runs a statement (CREATE TABLE) against the target.
	Exec(ctx context.Context, statement string) error

	// Open starts writing rows of one table with the given field order.
	// File sinks write the header row here.
	Open(ctx context.Context, table string, fields []string) (Writer, error)
}

// Writer receives the rows of one table. Close must be called once, also after a failed Write.
type Writer interface {
	Write(values []string) error
	Close() error

	// Artifact names what was written (file path or table name).
	Artifact() string
}
