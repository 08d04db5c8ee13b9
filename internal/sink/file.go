package sink

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// FileSink writes one delimited file per table into a directory.
type FileSink struct {
	dir    string
	format Format
}

var _ Sink = (*FileSink)(nil)

// NewFileSink creates the output directory if needed.
func NewFileSink(dir string, format Format) (*FileSink, error) {
	if dir == "" {
		return nil, errors.New("output directory is required")
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to get absolute path for %s", dir)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, errors.Wrap(err, "unable to create directory")
	}
	return &FileSink{dir: abs, format: format}, nil
}

func (s *FileSink) Kind() Kind {
	return FileSet
}

func (s *FileSink) Dir() string {
	return s.dir
}

func (s *FileSink) Exec(ctx context.Context, statement string) error {
	return errors.Wrap(ErrUnsupported, "file sink cannot execute statements")
}

// Open creates (or truncates) <dir>/<table> and writes the header row.
func (s *FileSink) Open(ctx context.Context, table string, fields []string) (Writer, error) {
	fp := filepath.Join(s.dir, table)
	f, err := os.Create(fp)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create %s", fp)
	}
	w := &fileWriter{path: fp, f: f, rw: s.format.NewRecordWriter(f)}
	if err := w.rw.Write(fields); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "unable to write header to %s", fp)
	}
	return w, nil
}

type fileWriter struct {
	path string
	f    *os.File
	rw   RecordWriter
}

func (w *fileWriter) Write(values []string) error {
	if err := w.rw.Write(values); err != nil {
		return errors.Wrapf(err, "unable to write to %s", w.path)
	}
	return nil
}

func (w *fileWriter) Close() error {
	flushErr := w.rw.Flush()
	closeErr := w.f.Close()
	if flushErr != nil {
		return errors.Wrapf(flushErr, "unable to flush %s", w.path)
	}
	if closeErr != nil {
		return errors.Wrapf(closeErr, "unable to close %s", w.path)
	}
	return nil
}

func (w *fileWriter) Artifact() string {
	return w.path
}
