package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"synth-pump/internal/config"
	"synth-pump/internal/engine"
	"synth-pump/internal/logger"
	"synth-pump/internal/schema"
	"synth-pump/internal/sink"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dryRun bool
	clean  bool
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"fill"},
	Short:   "Generate fake tables from a scan report",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		kind, _ := cfg.Target()

		tables, err := loadTables(cfg)
		if err != nil {
			return err
		}

		runID := uuid.New().String()
		log.Info("run %s: %d tables to %s", runID, len(tables), kind)

		ctx := cmd.Context()
		snk, closeSink, err := openSink(ctx, cfg, kind, log)
		if err != nil {
			return err
		}
		defer closeSink()

		if clean && !dryRun {
			if err := cleanTargets(ctx, cfg, kind, tables, log); err != nil {
				return err
			}
		}

		opts := engine.Options{SynthOptions: cfg.SynthOptions(), Logger: log}

		total := 0
		synth := engine.NewSynthesizer(opts.SynthOptions)
		for _, t := range tables {
			total += synth.RowCount(t)
		}

		showBar := !dryRun && !verbose && !silent && total > 0
		if showBar {
			// Per-table logs would tear the bar apart.
			opts.Logger = log.LogMode(logger.Warn)

			var current atomic.Value
			current.Store("")
			uiprogress.Start()
			bar := uiprogress.AddBar(total).AppendCompleted().PrependElapsed()
			bar.PrependFunc(func(b *uiprogress.Bar) string {
				return fmt.Sprintf("%-24s", current.Load().(string))
			})
			opts.OnTable = func(table string, rows int) { current.Store(table) }
			opts.OnRow = func() { bar.Incr() }
		}

		start := time.Now()
		results, err := engine.Pump(ctx, tables, snk, opts)
		if showBar {
			uiprogress.Stop()
		}

		printSummary(cmd.OutOrStdout(), runID, results, len(tables), time.Since(start))
		if err != nil {
			return errors.Wrapf(err, "run %s aborted", runID)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.Int("rows", 0, "maximum rows per table (overrides settings.max_rows)")
	flags.String("format", "", "file format: "+strings.Join(sink.FormatNames(), ", "))
	flags.String("delimiter", "", `delimiter override, one character or "tab"`)
	flags.Bool("first-field-key", false, "treat the first field of every table as a primary key")
	flags.Bool("uniform", false, "sample observed values uniformly instead of by frequency")
	flags.Int64("seed", 0, "seed for repeatable output (0 picks a random seed)")
	flags.BoolVar(&dryRun, "dry-run", false, "log what would be written without touching the target")
	flags.BoolVar(&clean, "clean", false, "remove previously generated tables or files first")

	viper.BindPFlag("settings.max_rows", flags.Lookup("rows"))
	viper.BindPFlag("settings.format", flags.Lookup("format"))
	viper.BindPFlag("settings.delimiter", flags.Lookup("delimiter"))
	viper.BindPFlag("settings.first_field_as_key", flags.Lookup("first-field-key"))
	viper.BindPFlag("settings.uniform_sampling", flags.Lookup("uniform"))
	viper.BindPFlag("settings.seed", flags.Lookup("seed"))
}

// loadTables reads the scan report and applies the table filter.
func loadTables(cfg *config.Config) ([]*schema.Table, error) {
	report, err := schema.LoadScanReport(cfg.Settings.ScanReport)
	if err != nil {
		return nil, err
	}
	tables := report.Filter(cfg.Settings.Tables)
	if len(cfg.Settings.Tables) > 0 && len(tables) == 0 {
		return nil, errors.Newf("no matching tables found for inputs: %v", cfg.Settings.Tables)
	}
	return tables, nil
}

func openSink(ctx context.Context, cfg *config.Config, kind sink.Kind, log logger.Logger) (sink.Sink, func(), error) {
	nop := func() {}
	if dryRun {
		return sink.NewDryRun(log, kind, cfg.Settings.OutputDir), nop, nil
	}

	if kind == sink.FileSet {
		format, err := cfg.FileFormat()
		if err != nil {
			return nil, nop, err
		}
		s, err := sink.NewFileSink(cfg.Settings.OutputDir, format)
		if err != nil {
			return nil, nop, err
		}
		log.Info("writing %s files to %s", format.Name, s.Dir())
		return s, nop, nil
	}

	db, d, _, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return nil, nop, err
	}
	return sink.NewDatabaseSink(db, d), func() { db.Close() }, nil
}

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
)

// printSummary reports every table the run finished, plus the ones it never reached.
func printSummary(w io.Writer, runID string, results []engine.Result, planned int, elapsed time.Duration) {
	fmt.Fprintf(w, "\nSummary Report (run %s):\n", runID)
	total := 0
	for i, r := range results {
		icon := okMark("✓")
		if r.Written != r.Target {
			icon = failMark("!")
		}
		fmt.Fprintf(w, "[%s] [%02d/%02d] %-20s : %d rows (Target: %d) -> %s\n",
			icon, i+1, planned, r.Table, r.Written, r.Target, r.Artifact)
		total += r.Written
	}
	if missed := planned - len(results); missed > 0 {
		fmt.Fprintf(w, "[%s] %d tables not written\n", failMark("x"), missed)
	}
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Total Rows: %d in %s\n", total, elapsed.Round(time.Millisecond))
}
