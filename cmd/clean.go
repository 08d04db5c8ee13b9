package cmd

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"synth-pump/internal/config"
	"synth-pump/internal/dialect"
	"synth-pump/internal/engine"
	"synth-pump/internal/logger"
	"synth-pump/internal/schema"
	"synth-pump/internal/sink"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the tables or files a previous run generated",
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
		return cleanTargets(cmd.Context(), cfg, kind, tables, log)
	},
}

func init() {
	RootCmd.AddCommand(cleanCmd)
}

func cleanTargets(ctx context.Context, cfg *config.Config, kind sink.Kind, tables []*schema.Table, log logger.Logger) error {
	if kind == sink.FileSet {
		_, err := removeFiles(cfg.Settings.OutputDir, tables, log)
		return err
	}

	db, d, _, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = dropTables(ctx, db, d, tables, log)
	return err
}

// removeFiles deletes the files generated for tables. Missing files are skipped.
func removeFiles(dir string, tables []*schema.Table, log logger.Logger) (int, error) {
	removed := 0
	for _, t := range tables {
		fp := filepath.Join(dir, engine.TableName(t.Name, sink.FileSet))
		err := os.Remove(fp)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return removed, errors.Wrapf(err, "failed to remove %s", fp)
		}
		log.Trace("removed %s", fp)
		removed++
	}
	log.Info("removed %d/%d files from %s", removed, len(tables), dir)
	return removed, nil
}

// dropTables drops the generated tables that exist in the connection's current
// schema, in reverse report order. Failures are logged and the rest are still attempted.
func dropTables(ctx context.Context, db *sql.DB, d dialect.Dialect, tables []*schema.Table, log logger.Logger) (int, error) {
	existing, err := schema.ExistingTables(ctx, db, d)
	if err != nil {
		return 0, err
	}

	count := 0
	total := len(tables)
	for i := len(tables) - 1; i >= 0; i-- {
		name := engine.TableName(tables[i].Name, sink.Database)
		actual, ok := existing[strings.ToUpper(name)]
		if !ok {
			log.Trace("table %s does not exist, skipping", name)
			continue
		}
		if _, err := db.ExecContext(ctx, d.DropTableQuery(actual)); err != nil {
			log.Warn("failed to drop %s: %v (continuing...)", actual, err)
			continue
		}
		count++
		if count%5 == 0 {
			log.Info("dropped %d tables...", count)
		}
	}

	log.Info("dropped %d/%d tables", count, total)
	return count, nil
}
