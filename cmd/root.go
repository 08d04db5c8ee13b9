package cmd

import (
	"os"
	"path/filepath"

	"synth-pump/internal/config"
	"synth-pump/internal/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	silent  bool
)

var RootCmd = &cobra.Command{
	Use:   "synth-pump",
	Short: "A fake data generator driven by scan reports",
	Long: `
  ______   ___   _ _____ _   _   ____  _   _ __  __ ____
 / ___\ \ / / \ | |_   _| | | | |  _ \| | | |  \/  |  _ \
 \___ \\ V /|  \| | | | | |_| | | |_) | | | | |\/| | |_) |
  ___) || | | |\  | | | |  _  | |  __/| |_| | |  | |  __/
 |____/ |_| |_| \_| |_| |_| |_| |_|    \___/|_|  |_|_|

SYNTH PUMP - fake rows that look like your data
`,
	SilenceUsage: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	config.SetDefaults(viper.GetViper())

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./synth-pump.yaml)")
	RootCmd.PersistentFlags().String("driver", "", "database driver (mysql, postgres, sqlserver, oracle, sqlite3, redshift)")
	RootCmd.PersistentFlags().String("dsn", "", "Database Source Name (DSN), overrides the active database in config")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every statement and row")
	RootCmd.PersistentFlags().BoolVar(&silent, "silent", false, "log nothing but errors")

	RootCmd.PersistentFlags().StringP("scan-report", "s", "", "scan report to generate from (yaml or json)")
	RootCmd.PersistentFlags().String("target", "", "where rows go: files or database")
	RootCmd.PersistentFlags().StringP("out", "o", "", "output directory for files")
	RootCmd.PersistentFlags().StringSliceP("tables", "t", []string{}, "only these tables (comma-separated)")

	viper.BindPFlag("settings.scan_report", RootCmd.PersistentFlags().Lookup("scan-report"))
	viper.BindPFlag("settings.target", RootCmd.PersistentFlags().Lookup("target"))
	viper.BindPFlag("settings.output_dir", RootCmd.PersistentFlags().Lookup("out"))
	viper.BindPFlag("settings.tables", RootCmd.PersistentFlags().Lookup("tables"))
	viper.BindPFlag("database.driver", RootCmd.PersistentFlags().Lookup("driver"))
	viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("synth-pump")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		newLogger().Info("using config file: %s", viper.ConfigFileUsed())
	}
}

func newLogger() logger.Logger {
	switch {
	case silent:
		return logger.Default.LogMode(logger.Error)
	case verbose:
		return logger.Tracer
	default:
		return logger.Default
	}
}

// loadConfig decodes and validates the merged config file, env and flags.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
