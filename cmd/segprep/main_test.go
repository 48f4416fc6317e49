package main

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"segprep/internal/config"
	"segprep/internal/metrics"
)

func sample(t *testing.T) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("testdata", "azdias_sample.csv"))
	require.NoError(t, err)
	return p
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "segprep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func baseConfig(t *testing.T, out string) string {
	return `
job: cli-test
source:
  kind: file
  file:
    path: ` + sample(t) + `
parser:
  kind: csv
  options:
    comma: ";"
schema:
  mode: lenient
impute:
  numeric: constant
  numeric_fill: -1
report:
  top_n: 5
  width: 10
sinks:
  - kind: csv
    path: ` + filepath.Join(out, "azdias_clean.csv") + `
  - kind: sqlite
    db:
      dsn: file:` + filepath.Join(out, "segprep.db") + `
      table: azdias_clean
      auto_create_table: true
runtime:
  batch_size: 2
`
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvMetricsBackend, "")
	t.Setenv(config.EnvPushgatewayURL, "")
	t.Setenv(config.EnvDatadogAddr, "")

	cmd, a := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	a.shutdown()
	return out.String(), err
}

func TestRun_ExportsToAllSinks(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, baseConfig(t, dir))

	_, err := execute(t, "run", "-c", cfg)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "azdias_clean.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 5, "header plus four rows")

	header := strings.Split(lines[0], ";")
	assert.Contains(t, header, "OST_WEST_KZ")
	assert.Contains(t, header, "PRAEGENDE_JUGENDJAHRE_DEMOGRAPHY")
	assert.NotContains(t, header, "PRAEGENDE_JUGENDJAHRE")
	assert.NotContains(t, header, "KBA05_BAUMAX", "all-missing column dropped by the reducer")
	for _, l := range lines[1:] {
		for _, f := range strings.Split(l, ";") {
			assert.NotEmpty(t, f, "no missing cells after imputation: %q", l)
		}
	}

	db, err := sql.Open("sqlite", "file:"+filepath.Join(dir, "segprep.db"))
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "azdias_clean"`).Scan(&n))
	assert.Equal(t, 4, n)
}

func TestRun_Stdout(t *testing.T) {
	cfg := writeConfig(t, baseConfig(t, t.TempDir()))

	out, err := execute(t, "run", "--stdout", "-c", cfg)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "OST_WEST_KZ")
}

func TestRun_StrictSchemaFails(t *testing.T) {
	cfg := writeConfig(t, strings.Replace(baseConfig(t, t.TempDir()), "mode: lenient", "mode: strict", 1))

	_, err := execute(t, "run", "-c", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema mismatch")
}

func TestRun_FailureStillFlushesMetrics(t *testing.T) {
	var pushes atomic.Int32
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushes.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer gw.Close()
	t.Cleanup(func() { metrics.SetBackend(metrics.Nop()) })

	body := strings.Replace(baseConfig(t, t.TempDir()), "mode: lenient", "mode: strict", 1) + `
metrics:
  backend: prometheus
  pushgateway_url: ` + gw.URL + `
`
	_, err := execute(t, "run", "-c", writeConfig(t, body))
	require.Error(t, err)
	assert.Equal(t, int32(1), pushes.Load())
}

func TestMissing_PrintsBothCharts(t *testing.T) {
	cfg := writeConfig(t, baseConfig(t, t.TempDir()))

	out, err := execute(t, "missing", "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Missing values before cleaning")
	assert.Contains(t, out, "Missing values after sentinel normalization")
	assert.Contains(t, out, "KBA05_BAUMAX")
}

func TestClassify_PrintsReport(t *testing.T) {
	cfg := writeConfig(t, baseConfig(t, t.TempDir()))

	out, err := execute(t, "classify", "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "LNR,,numeric")
	assert.Contains(t, out, "OST_WEST_KZ,2,binary")
}

func TestValidate(t *testing.T) {
	cfg := writeConfig(t, baseConfig(t, t.TempDir()))
	out, err := execute(t, "validate", "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "warning: schema.mode")
	assert.Contains(t, out, "is valid")

	bad := writeConfig(t, strings.Replace(baseConfig(t, t.TempDir()), "kind: csv\n    path", "kind: parquet\n    path", 1))
	out, err = execute(t, "validate", "-c", bad)
	require.Error(t, err)
	assert.Contains(t, out, "error: sinks[0].kind")
}

func TestRun_MissingConfig(t *testing.T) {
	_, err := execute(t, "run", "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
