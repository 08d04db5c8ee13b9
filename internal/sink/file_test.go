package sink

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileSinkCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	s, err := NewFileSink(dir, FormatDefault)
	require.NoError(t, err)
	assert.Equal(t, FileSet, s.Kind())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewFileSinkValidation(t *testing.T) {
	_, err := NewFileSink("", FormatDefault)
	assert.Error(t, err)

	_, err = NewFileSink(t.TempDir(), FormatCustom)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestFileSinkWrite(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSink(dir, FormatMySQL)
	require.NoError(t, err)

	w, err := s.Open(context.Background(), "person.csv", []string{"id", "sex"})
	require.NoError(t, err)
	require.NoError(t, w.Write([]string{"1", "M"}))
	require.NoError(t, w.Write([]string{"2", ""}))
	require.NoError(t, w.Close())
	assert.Equal(t, filepath.Join(dir, "person.csv"), w.Artifact())

	buf, err := os.ReadFile(filepath.Join(dir, "person.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id\tsex\n1\tM\n2\t\n", string(buf))
}

func TestFileSinkExecUnsupported(t *testing.T) {
	s, err := NewFileSink(t.TempDir(), FormatDefault)
	require.NoError(t, err)
	err = s.Exec(context.Background(), "CREATE TABLE x (a INT)")
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestFileSinkOpenFails(t *testing.T) {
	s, err := NewFileSink(t.TempDir(), FormatDefault)
	require.NoError(t, err)
	_, err = s.Open(context.Background(), filepath.Join("missing", "person.csv"), []string{"id"})
	assert.Error(t, err)
}
