package sink

import (
	"context"
	"path/filepath"
	"strings"

	"synth-pump/internal/logger"
)

// DryRun logs what a real sink of the same kind would do and writes nothing.
type DryRun struct {
	kind Kind
	dir  string
	log  logger.Logger
}

var _ Sink = (*DryRun)(nil)

// NewDryRun returns a sink that only logs. dir is used to name file artifacts.
func NewDryRun(log logger.Logger, kind Kind, dir string) *DryRun {
	return &DryRun{kind: kind, dir: dir, log: log.WithPrefix("[dry-run]")}
}

func (s *DryRun) Kind() Kind {
	return s.kind
}

func (s *DryRun) Exec(ctx context.Context, statement string) error {
	s.log.Info("%s", strings.TrimRight(statement, "\n"))
	return nil
}

func (s *DryRun) Open(ctx context.Context, table string, fields []string) (Writer, error) {
	artifact := table
	if s.kind == FileSet {
		artifact = filepath.Join(s.dir, table)
	}
	s.log.Info("would write %s (%s)", artifact, strings.Join(fields, ", "))
	return &dryRunWriter{artifact: artifact, log: s.log}, nil
}

type dryRunWriter struct {
	artifact string
	rows     int
	log      logger.Logger
}

func (w *dryRunWriter) Write(values []string) error {
	w.rows++
	w.log.Trace("%s: %s", w.artifact, strings.Join(values, " | "))
	return nil
}

func (w *dryRunWriter) Close() error {
	w.log.Info("would have written %d rows to %s", w.rows, w.artifact)
	return nil
}

func (w *dryRunWriter) Artifact() string {
	return w.artifact
}
