package config

import (
	"strings"

	"synth-pump/internal/engine"
	"synth-pump/internal/sink"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// ErrInvalidConfig marks configuration that cannot start a run.
var ErrInvalidConfig = errors.New("invalid configuration")

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

type Settings struct {
	Target          string   `mapstructure:"target"`
	ScanReport      string   `mapstructure:"scan_report"`
	OutputDir       string   `mapstructure:"output_dir"`
	Format          string   `mapstructure:"format"`
	Delimiter       string   `mapstructure:"delimiter"`
	MaxRows         int      `mapstructure:"max_rows"`
	FirstFieldAsKey bool     `mapstructure:"first_field_as_key"`
	UniformSampling bool     `mapstructure:"uniform_sampling"`
	Seed            int64    `mapstructure:"seed"`
	Tables          []string `mapstructure:"tables"`
}

// Config is the whole synth-pump.yaml plus flag overrides.
type Config struct {
	// Database is filled from --driver/--dsn and wins over the databases list.
	Database  DBConfig   `mapstructure:"database"`
	Databases []DBConfig `mapstructure:"databases"`
	Settings  Settings   `mapstructure:"settings"`
}

// SetDefaults registers the fallback values used when neither the config
// file nor a flag sets a key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("settings.target", "files")
	v.SetDefault("settings.scan_report", "scan-report.yaml")
	v.SetDefault("settings.output_dir", "fake")
	v.SetDefault("settings.format", "default")
	v.SetDefault("settings.max_rows", 1000)
}

// Load decodes the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	return &c, nil
}

// ActiveDatabase returns the database a run writes to: the one given on the
// command line, else the single entry marked active.
func (c *Config) ActiveDatabase() (*DBConfig, error) {
	if c.Database.DSN != "" {
		db := c.Database
		if db.Name == "" {
			db.Name = "command line"
		}
		return &db, nil
	}

	var active *DBConfig
	count := 0
	for i := range c.Databases {
		if c.Databases[i].Active {
			active = &c.Databases[i]
			count++
		}
	}

	if count == 0 {
		return nil, errors.Mark(errors.New("no active database found in config (set active: true)"), ErrInvalidConfig)
	}
	if count > 1 {
		return nil, errors.Mark(errors.New("multiple active databases found (only one can be active)"), ErrInvalidConfig)
	}
	return active, nil
}

// Target resolves settings.target.
func (c *Config) Target() (sink.Kind, error) {
	k, err := sink.ParseKind(c.Settings.Target)
	if err != nil {
		return 0, errors.Mark(err, ErrInvalidConfig)
	}
	return k, nil
}

// FileFormat resolves the preset and applies the delimiter override.
func (c *Config) FileFormat() (sink.Format, error) {
	f, err := sink.ParseFormat(c.Settings.Format)
	if err != nil {
		return f, errors.Mark(err, ErrInvalidConfig)
	}
	if c.Settings.Delimiter != "" {
		if f, err = f.WithDelimiter(c.Settings.Delimiter); err != nil {
			return f, errors.Mark(err, ErrInvalidConfig)
		}
	}
	if err := f.Validate(); err != nil {
		return f, errors.Mark(errors.Wrap(err, "set settings.delimiter or --delimiter"), ErrInvalidConfig)
	}
	return f, nil
}

// Validate fails fast on anything that would only break mid-run.
func (c *Config) Validate() error {
	kind, err := c.Target()
	if err != nil {
		return err
	}
	if c.Settings.MaxRows <= 0 {
		return errors.Mark(errors.Newf("max rows must be positive, got %d", c.Settings.MaxRows), ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Settings.ScanReport) == "" {
		return errors.Mark(errors.New("scan report path is required"), ErrInvalidConfig)
	}

	switch kind {
	case sink.FileSet:
		if strings.TrimSpace(c.Settings.OutputDir) == "" {
			return errors.Mark(errors.New("output directory is required for files target"), ErrInvalidConfig)
		}
		if _, err := c.FileFormat(); err != nil {
			return err
		}
	case sink.Database:
		db, err := c.ActiveDatabase()
		if err != nil {
			return err
		}
		if db.Driver == "" || db.DSN == "" {
			return errors.Mark(errors.Newf("database %s needs both driver and dsn", db.Name), ErrInvalidConfig)
		}
	}
	return nil
}

func (c *Config) SynthOptions() engine.SynthOptions {
	return engine.SynthOptions{
		MaxRowsPerTable: c.Settings.MaxRows,
		FirstFieldAsKey: c.Settings.FirstFieldAsKey,
		UniformSampling: c.Settings.UniformSampling,
		Seed:            c.Settings.Seed,
	}
}
