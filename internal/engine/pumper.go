package engine

import (
	"context"
	"strings"
	"time"

	"synth-pump/internal/logger"
	"synth-pump/internal/schema"
	"synth-pump/internal/sink"

	"github.com/cockroachdb/errors"
)

const fileExt = ".csv"

// Options configures a Pump run.
type Options struct {
	SynthOptions

	Logger logger.Logger

	// OnTable is called before the rows of a table are written.
	OnTable func(table string, rows int)
	// OnRow is called after every row the sink accepted.
	OnRow func()
}

// Result is the outcome for one table.
type Result struct {
	Table    string // name in the scan report
	Artifact string // table or file the rows went to
	Target   int
	Written  int
}

// TableName normalizes a scan report table name for the sink: files always
// end in .csv, database tables never do.
func TableName(name string, kind sink.Kind) string {
	hasExt := strings.HasSuffix(strings.ToLower(name), fileExt)
	switch kind {
	case sink.FileSet:
		if !hasExt {
			return name + fileExt
		}
	case sink.Database:
		if hasExt {
			return name[:len(name)-len(fileExt)]
		}
	}
	return name
}

// CreateTableStatement renders the DDL for a table. Types are the scan report
// labels upper-cased; no dialect mapping is applied.
func CreateTableStatement(name string, table *schema.Table) string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(name)
	sb.WriteString(" (\n")
	for i, f := range table.Fields {
		sb.WriteString("  ")
		sb.WriteString(f.Name)
		sb.WriteString(" ")
		sb.WriteString(strings.ToUpper(f.Type))
		if i < len(table.Fields)-1 {
			sb.WriteString(",\n")
		}
	}
	sb.WriteString("\n)")
	return sb.String()
}

// Synthesize runs every table of the schema into the sink.
func Synthesize(ctx context.Context, s *schema.Schema, snk sink.Sink, opts Options) error {
	_, err := Pump(ctx, s.Tables, snk, opts)
	return err
}

// Pump synthesizes the tables in order. The first failure stops the run;
// tables already written are left as they are.
func Pump(ctx context.Context, tables []*schema.Table, snk sink.Sink, opts Options) ([]Result, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard
	}
	synth := NewSynthesizer(opts.SynthOptions)
	kind := snk.Kind()

	var results []Result
	for _, table := range tables {
		started := time.Now()
		name := TableName(table.Name, kind)
		target := synth.RowCount(table)
		log.Info("generating %s (%d rows)", name, target)

		if kind == sink.Database {
			stmt := CreateTableStatement(name, table)
			log.Trace("executing: %s", stmt)
			if err := snk.Exec(ctx, stmt); err != nil {
				return results, errors.Wrapf(err, "failed to create table %s", name)
			}
		}

		res, err := pumpTable(ctx, synth, table, name, snk, opts)
		if err != nil {
			return results, err
		}
		res.Target = target
		results = append(results, res)
		log.Info("wrote %d rows to %s in %s", res.Written, res.Artifact, time.Since(started))
	}
	return results, nil
}

func pumpTable(ctx context.Context, synth *Synthesizer, table *schema.Table, name string, snk sink.Sink, opts Options) (Result, error) {
	res := Result{Table: table.Name, Artifact: name}

	w, err := snk.Open(ctx, name, table.FieldNames())
	if err != nil {
		return res, errors.Wrapf(err, "failed to open %s", name)
	}
	res.Artifact = w.Artifact()

	if opts.OnTable != nil {
		opts.OnTable(name, synth.RowCount(table))
	}
	err = synth.EachRow(table, func(row Row) error {
		if err := w.Write(row.Values); err != nil {
			return err
		}
		res.Written++
		if opts.OnRow != nil {
			opts.OnRow()
		}
		return nil
	})
	closeErr := w.Close()
	if err != nil {
		return res, errors.Wrapf(err, "failed to write %s", name)
	}
	if closeErr != nil {
		return res, errors.Wrapf(closeErr, "failed to close %s", name)
	}
	return res, nil
}
