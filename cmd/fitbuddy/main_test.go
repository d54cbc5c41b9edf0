package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCaloriesCmd(t *testing.T) {
	out, err := run(t, "calories", "Running", "--duration", "30")
	require.NoError(t, err)
	assert.Contains(t, out, `"calories": 356`)

	out, err = run(t, "calories", "rowing", "--duration", "60", "--weight", "100")
	require.NoError(t, err)
	assert.Contains(t, out, `"calories": 227`)

	out, err = run(t, "calories", "Running")
	require.NoError(t, err)
	assert.Contains(t, out, `"result": null`)

	_, err = run(t, "calories", "Running", "--duration", "-5")
	assert.Error(t, err)
}

func TestBMICmd(t *testing.T) {
	out, err := run(t, "bmi", "--height", "175", "--weight", "70")
	require.NoError(t, err)
	assert.Contains(t, out, `"bmi": 22.9`)
	assert.Contains(t, out, `"category": "Normal weight"`)
}

func TestExercisesCmdOffline(t *testing.T) {
	out, err := run(t, "exercises", "--offline", "--category", "Cardio")
	require.NoError(t, err)
	assert.Contains(t, out, "Running")
	assert.NotContains(t, out, "Push Up")
}

func TestImportBackupRestore(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "")
	dir := t.TempDir()
	dumpPath := filepath.Join(dir, "device.json")
	require.NoError(t, os.WriteFile(dumpPath, []byte(`{
		"fitbuddy_users": "[{\"id\":\"1\",\"name\":\"Alex\",\"email\":\"alex@example.com\",\"password\":\"secret1\"}]",
		"user": "{\"id\":\"1\",\"name\":\"Alex\",\"email\":\"alex@example.com\",\"token\":\"mock-jwt-token-1\"}",
		"workout_history": "[]",
		"water_2026-10-18": "500"
	}`), 0o644))

	source := filepath.Join(dir, "source.db")
	out, err := run(t, "--db", source, "import", dumpPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"accountsCreated": 1`)
	assert.Contains(t, out, "water_2026-10-18")

	snapshotPath := filepath.Join(dir, "backup.zst")
	out, err = run(t, "--db", source, "backup", snapshotPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "saved 2 entries"), out)

	target := filepath.Join(dir, "target.db")
	out, err = run(t, "--db", target, "restore", snapshotPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "restored 2 entries"), out)

	_, err = run(t, "--db", target, "restore", filepath.Join(dir, "missing.zst"))
	assert.Error(t, err)
}
