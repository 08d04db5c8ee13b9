package sink

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"synth-pump/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bufWriter struct {
	strings.Builder
}

func (b *bufWriter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&b.Builder, format, args...)
}

func TestDryRun(t *testing.T) {
	var buf bufWriter
	s := NewDryRun(logger.New(&buf, logger.Config{LogLevel: logger.Info}), FileSet, "out")
	assert.Equal(t, FileSet, s.Kind())

	require.NoError(t, s.Exec(context.Background(), "CREATE TABLE x (\n  a INT\n)\n"))
	w, err := s.Open(context.Background(), "x.csv", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "x.csv"), w.Artifact())
	require.NoError(t, w.Write([]string{"1", "2"}))
	require.NoError(t, w.Write([]string{"3", "4"}))
	require.NoError(t, w.Close())

	out := buf.String()
	assert.Contains(t, out, "[dry-run] CREATE TABLE x")
	assert.Contains(t, out, "would write "+filepath.Join("out", "x.csv")+" (a, b)")
	assert.Contains(t, out, "would have written 2 rows")
}

func TestParseKind(t *testing.T) {
	for _, in := range []string{"files", "Delimited text files", "csv"} {
		k, err := ParseKind(in)
		require.NoError(t, err)
		assert.Equal(t, FileSet, k)
	}
	k, err := ParseKind("Database")
	require.NoError(t, err)
	assert.Equal(t, Database, k)
	assert.Equal(t, "database", k.String())

	_, err = ParseKind("kafka")
	assert.Error(t, err)
}
