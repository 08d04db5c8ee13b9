package config

import (
	"os"
	"path/filepath"
	"testing"

	"synth-pump/internal/sink"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, yaml string) *Config {
	t.Helper()
	p := filepath.Join(t.TempDir(), "synth-pump.yaml")
	require.NoError(t, os.WriteFile(p, []byte(yaml), 0644))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(p)
	require.NoError(t, v.ReadInConfig())
	c, err := Load(v)
	require.NoError(t, err)
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := load(t, "settings:\n  seed: 7\n")
	require.NoError(t, c.Validate())

	kind, _ := c.Target()
	assert.Equal(t, sink.FileSet, kind)
	assert.Equal(t, "fake", c.Settings.OutputDir)

	opts := c.SynthOptions()
	assert.Equal(t, 1000, opts.MaxRowsPerTable)
	assert.EqualValues(t, 7, opts.Seed)
	assert.False(t, opts.FirstFieldAsKey)
}

func TestLoadFull(t *testing.T) {
	c := load(t, `
databases:
  - name: local
    driver: postgres
    dsn: postgres://synth@localhost/synth
    active: false
  - name: warehouse
    driver: mysql
    dsn: synth:synth@tcp(127.0.0.1:3306)/synth
    active: true
settings:
  target: database
  max_rows: 50
  first_field_as_key: true
  uniform_sampling: true
  tables: [person, visit]
`)
	require.NoError(t, c.Validate())

	db, err := c.ActiveDatabase()
	require.NoError(t, err)
	assert.Equal(t, "warehouse", db.Name)
	assert.Equal(t, "mysql", db.Driver)
	assert.Equal(t, []string{"person", "visit"}, c.Settings.Tables)

	opts := c.SynthOptions()
	assert.Equal(t, 50, opts.MaxRowsPerTable)
	assert.True(t, opts.FirstFieldAsKey)
	assert.True(t, opts.UniformSampling)
}

func TestCommandLineDatabaseWins(t *testing.T) {
	c := &Config{
		Database:  DBConfig{Driver: "sqlite3", DSN: "file:synth.db"},
		Databases: []DBConfig{{Name: "a", Active: true}, {Name: "b", Active: true}},
	}
	db, err := c.ActiveDatabase()
	require.NoError(t, err)
	assert.Equal(t, "command line", db.Name)
	assert.Equal(t, "sqlite3", db.Driver)
}

func TestFileFormat(t *testing.T) {
	c := &Config{Settings: Settings{Format: "custom", Delimiter: ";"}}
	f, err := c.FileFormat()
	require.NoError(t, err)
	assert.Equal(t, ';', f.Delimiter)

	c.Settings.Format = "TDF (tab, CRLF)"
	c.Settings.Delimiter = ""
	f, err = c.FileFormat()
	require.NoError(t, err)
	assert.Equal(t, sink.FormatTDF, f)
}

func TestValidateErrors(t *testing.T) {
	valid := func() *Config {
		return &Config{Settings: Settings{
			Target:     "files",
			ScanReport: "scan.yaml",
			OutputDir:  "out",
			Format:     "default",
			MaxRows:    10,
		}}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown target", func(c *Config) { c.Settings.Target = "kafka" }},
		{"zero rows", func(c *Config) { c.Settings.MaxRows = 0 }},
		{"negative rows", func(c *Config) { c.Settings.MaxRows = -5 }},
		{"no scan report", func(c *Config) { c.Settings.ScanReport = " " }},
		{"no output dir", func(c *Config) { c.Settings.OutputDir = "" }},
		{"empty format", func(c *Config) { c.Settings.Format = "" }},
		{"unknown format", func(c *Config) { c.Settings.Format = "exel" }},
		{"custom without delimiter", func(c *Config) { c.Settings.Format = "custom" }},
		{"long delimiter", func(c *Config) { c.Settings.Delimiter = "||" }},
		{"no active database", func(c *Config) { c.Settings.Target = "database" }},
		{"two active databases", func(c *Config) {
			c.Settings.Target = "database"
			c.Databases = []DBConfig{{Name: "a", Driver: "mysql", DSN: "x", Active: true}, {Name: "b", Driver: "mysql", DSN: "y", Active: true}}
		}},
		{"database without dsn", func(c *Config) {
			c.Settings.Target = "database"
			c.Databases = []DBConfig{{Name: "a", Driver: "mysql", Active: true}}
		}},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestUnknownFormatSuggestion(t *testing.T) {
	c := &Config{Settings: Settings{Format: "exel"}}
	_, err := c.FileFormat()
	assert.Contains(t, err.Error(), `did you mean "excel"`)
	assert.True(t, errors.Is(err, sink.ErrInvalidFormat))
}
