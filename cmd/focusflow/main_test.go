package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/focusflow/internal/models"
)

// run executes the root command with args against the data dir in env and
// returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FOCUSFLOW_DATA_DIR", dir)
	t.Setenv("FOCUSFLOW_LOG_LEVEL", "error")
	return dir
}

func TestCLI_CaptureSurvivesRestart(t *testing.T) {
	dir := setupDataDir(t)

	out, err := run(t, "capture", "--layer", "trabajo", "--urgent", "Write", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Captured idea")

	out, err = run(t, "ideas", "--space", "activas")
	require.NoError(t, err)
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "trabajo")

	_, err = os.Stat(filepath.Join(dir, "focusflow.sqlite"))
	assert.NoError(t, err)
}

func TestCLI_CaptureRejectsBadLayer(t *testing.T) {
	setupDataDir(t)
	_, err := run(t, "capture", "--layer", "hobbies", "x")
	assert.Error(t, err)
}

func TestCLI_EventLifecycle(t *testing.T) {
	setupDataDir(t)

	_, err := run(t, "event", "add", "--date", "2099-01-02", "--time", "09:30", "Dentist")
	require.NoError(t, err)

	out, err := run(t, "event", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Dentist")

	_, err = run(t, "event", "add", "no date")
	assert.Error(t, err, "date and time are required")

	_, err = run(t, "event", "complete", "missing")
	assert.Error(t, err)
}

func TestCLI_CalmAndExport(t *testing.T) {
	setupDataDir(t)

	out, err := run(t, "calm", "on")
	require.NoError(t, err)
	assert.Contains(t, out, "Calm mode: on")

	_, err = run(t, "capture", "Keep me")
	require.NoError(t, err)

	out, err = run(t, "export", "-o", "-")
	require.NoError(t, err)
	var doc models.ExportDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Ideas, 1)
	assert.Equal(t, "Keep me", doc.Ideas[0].Title)
	assert.True(t, doc.Settings.CalmMode)
	assert.Equal(t, models.ExportVersion, doc.Version)
}

func TestCLI_ImportReplacesIdeas(t *testing.T) {
	dir := setupDataDir(t)

	_, err := run(t, "capture", "old idea")
	require.NoError(t, err)

	file := filepath.Join(dir, "backup.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"ideas":[{"id":"x1","title":"imported"}],"version":"2.0.0"}`), 0o600))

	out, err := run(t, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 ideas (settings applied: false)")

	out, err = run(t, "ideas", "--space", "activas")
	require.NoError(t, err)
	assert.Contains(t, out, "imported")
	assert.NotContains(t, out, "old idea")

	require.NoError(t, os.WriteFile(file, []byte(`{"ideas":{}}`), 0o600))
	_, err = run(t, "import", file)
	assert.Error(t, err)
}

func TestCLI_PurgeDryRun(t *testing.T) {
	setupDataDir(t)
	_, err := run(t, "capture", "one")
	require.NoError(t, err)

	out, err := run(t, "purge", "--all", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "[dry-run] would delete 1 ideas")

	out, err = run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Ideas: 1 total")
}

func TestCLI_Routines(t *testing.T) {
	setupDataDir(t)

	_, err := run(t, "routines", "schedule", "--date", "2099-01-02", "stretch", "read")
	require.NoError(t, err)

	_, err = run(t, "routines", "schedule", "only-one")
	assert.Error(t, err)

	out, err := run(t, "routines", "done", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Routine 0 completed")

	out, err = run(t, "storage", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "rutinasHoy")
	assert.Contains(t, out, "logrosRutina")
	assert.Contains(t, out, "Tier: primary")
}

func TestParseModule(t *testing.T) {
	m, err := parseModule("stretch:10:baja")
	require.NoError(t, err)
	assert.Equal(t, models.RoutineModule{Name: "stretch", Minutes: 10, Energy: models.EnergyLow}, m)

	m, err = parseModule("read")
	require.NoError(t, err)
	assert.Equal(t, "read", m.Name)

	for _, bad := range []string{":10", "x:ten", "x:1:hyper"} {
		_, err := parseModule(bad)
		assert.Error(t, err, bad)
	}
}
