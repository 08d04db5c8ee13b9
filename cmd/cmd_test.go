package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"synth-pump/internal/dialect"
	"synth-pump/internal/engine"
	"synth-pump/internal/logger"
	"synth-pump/internal/schema"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestRemoveFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "person.csv"), []byte("id\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.csv"), []byte("id\n"), 0644))

	tables := []*schema.Table{{Name: "person"}, {Name: "visit.csv"}}
	removed, err := removeFiles(dir, tables, logger.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(filepath.Join(dir, "person.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "keep.csv"))
	assert.NoError(t, err)
}

func TestDropTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	d, _ := dialect.GetDialect("postgres")
	mock.ExpectQuery(regexp.QuoteMeta(d.GetTablesQuery())).
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("person").AddRow("visit").AddRow("other"))
	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE "visit"`)).WillReturnError(assert.AnError)
	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE "person"`)).WillReturnResult(sqlmock.NewResult(0, 0))

	tables := []*schema.Table{{Name: "person.csv"}, {Name: "drug.csv"}, {Name: "VISIT.csv"}}
	dropped, err := dropTables(context.Background(), db, d, tables, logger.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	results := []engine.Result{
		{Table: "person.csv", Artifact: "out/person.csv", Target: 5, Written: 5},
		{Table: "visit.csv", Artifact: "out/visit.csv", Target: 3, Written: 2},
	}
	printSummary(&buf, "run-1", results, 3, 1500*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "Summary Report (run run-1)")
	assert.Contains(t, out, "[✓] [01/03] person.csv")
	assert.Contains(t, out, "[!] [02/03] visit.csv")
	assert.Contains(t, out, "2 rows (Target: 3) -> out/visit.csv")
	assert.Contains(t, out, "[x] 1 tables not written")
	assert.Contains(t, out, "Total Rows: 7 in 1.5s")
}

const scanReport = `
tables:
  - name: person.csv
    row_count: 10
    rows_checked: 10
    fields:
      - name: person_id
        type: Integer
        max_length: 2
        value_counts:
          - {value: "1", frequency: 1}
          - {value: "2", frequency: 1}
      - name: gender
        type: VarChar
        max_length: 1
        value_counts:
          - {value: F, frequency: 1}
`

func TestGenerateFiles(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "scan.yaml")
	require.NoError(t, os.WriteFile(report, []byte(scanReport), 0644))
	cfg := filepath.Join(dir, "synth-pump.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("settings:\n  format: tdf\n"), 0644))
	out := filepath.Join(dir, "out")

	var stdout bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetArgs([]string{"generate", "--config", cfg, "--silent",
		"-s", report, "-o", out, "--rows", "3", "--first-field-key", "--seed", "11"})
	require.NoError(t, RootCmd.Execute())

	buf, err := os.ReadFile(filepath.Join(out, "person.csv"))
	require.NoError(t, err)
	assert.Equal(t, "person_id\tgender\r\n1\tF\r\n2\tF\r\n1\tF\r\n", string(buf))
	assert.Contains(t, stdout.String(), "3 rows (Target: 3)")
	assert.True(t, strings.Contains(stdout.String(), "Total Rows: 3"))
}
