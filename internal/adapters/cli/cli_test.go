package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// isolate runs the command from an empty directory with no provider or
// database configured through the environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, k := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "DATABASE_URL", "SERVER_PORT"} {
		t.Setenv(k, "")
	}
	t.Setenv("STOCKMASTER_LOG_LEVEL", "disabled")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestSummary_DefaultSourceJSON(t *testing.T) {
	isolate(t)
	out, err := run(t, "summary", "--format", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "local", got["narrativeSource"])
	assert.Len(t, got["warehouseSummaries"], 3)
}

func TestSummary_InputFileTable(t *testing.T) {
	dir := isolate(t)
	input := filepath.Join(dir, "week.json")
	require.NoError(t, os.WriteFile(input, []byte(`{
		"North": [{"day": "Mon", "profit": 120}, {"day": "Tue", "profit": -20}],
		"South": [{"day": "Mon", "profit": -500}]
	}`), 0o644))
	chartPath := filepath.Join(dir, "totals.png")

	out, err := run(t, "summary", "--input", input, "--chart", chartPath)
	require.NoError(t, err)
	assert.Contains(t, out, "FINANCIAL SUMMARY")
	assert.Contains(t, out, "$100.00")
	assert.Contains(t, out, "-$500.00")
	assert.Contains(t, out, "-$400.00")
	assert.Contains(t, out, "Best performing : North")
	assert.Contains(t, out, "Lowest          : South")

	png, err := os.ReadFile(chartPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestSummary_Errors(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, "summary", "--format", "yaml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "summary", "--period", "last-year")
	assert.ErrorContains(t, err, "no data for period")

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{}`), 0o644))
	_, err = run(t, "summary", "--input", empty)
	assert.Error(t, err)

	_, err = run(t, "summary", "--input", empty, "--period", "this-week")
	assert.Error(t, err)
}

func TestPrefs_RoundTrip(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "prefs.toml")

	_, err := run(t, "prefs", "set", "userName", "Dana", "--file", file)
	require.NoError(t, err)
	_, err = run(t, "prefs", "set", "theme", "dark", "--file", file)
	require.NoError(t, err)

	out, err := run(t, "prefs", "get", "userName", "--file", file)
	require.NoError(t, err)
	assert.Equal(t, "Dana\n", out)

	_, err = run(t, "prefs", "set", "theme", "sepia", "--file", file)
	assert.Error(t, err)

	_, err = run(t, "prefs", "logout", "--file", file)
	require.NoError(t, err)

	out, err = run(t, "prefs", "get", "--file", file)
	require.NoError(t, err)
	assert.Equal(t, "theme=dark\n", out)

	_, err = run(t, "prefs", "unset", "theme", "--file", file)
	require.NoError(t, err)
	_, err = run(t, "prefs", "get", "theme", "--file", file)
	assert.Error(t, err)
}

func TestPrefs_DefaultFile(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, "prefs", "set", "shopName", "Corner Store")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, DefaultPreferencesFile))
}

func TestSummary_Workbook(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "week.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Harbor"))
	require.NoError(t, f.SetSheetRow("Harbor", "A1", &[]any{"Day", "Profit"}))
	require.NoError(t, f.SetSheetRow("Harbor", "A2", &[]any{"Monday", 250}))
	require.NoError(t, f.SetSheetRow("Harbor", "A3", &[]any{"Tuesday", -75}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	out, err := run(t, "summary", "--xlsx", path, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"bestPerformingWarehouse": "Harbor"`)
	assert.Contains(t, out, `"totalProfit": 175`)
}

func TestDB_RequiresURL(t *testing.T) {
	isolate(t)
	_, err := run(t, "db", "seed")
	assert.ErrorContains(t, err, "not set")
}
