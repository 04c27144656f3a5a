package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioYAML builds a scenario over the 36-team test list.
func scenarioYAML(t *testing.T, name, body string) string {
	t.Helper()
	teams, err := filepath.Abs("testdata/teams36.txt")
	require.NoError(t, err)
	return fmt.Sprintf("name: %s\ndescription: %s scenario\nentrants_file: %s\n%s", name, name, teams, body)
}

func writeScenarioFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML(t, name, body)), 0o644))
	return path
}

const passingBody = `seed: 11
assertions:
  - type: valid_draw
  - type: match_count
    count: 144
`

const identityBody = `preserve_order: true
assertions:
  - type: group
    group: A
    entrants: [Team 1, Team 2, Team 3, Team 4, Team 5, Team 6, Team 7, Team 8, Team 9]
  - type: contains_match
    match: [Team 1, Team 10]
`

const failingBody = `remove: [0]
assertions:
  - type: valid_draw
`

func TestTestCommandMissingArgs(t *testing.T) {
	_, _, err := execute(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, _, err := execute(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, _, err := execute(t, "test", "--format", "json", t.TempDir())
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "ok", response.Status)
}

func TestTestCommandPassing(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "seeded", passingBody)
	writeScenarioFile(t, dir, "identity", identityBody)

	out, _, err := execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ identity\n")
	assert.Contains(t, out, "✓ seeded\n")
	assert.Contains(t, out, "Test Summary: 2 passed, 0 failed, 2 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommandFailing(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "seeded", passingBody)
	writeScenarioFile(t, dir, "short", failingBody)

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ short\n  assertions[0]: assertion failed: valid_draw: expected a draw, got VALIDATION: expected 36 entrants, got 35\n")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommandFailingJSON(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "short", failingBody)

	out, _, err := execute(t, "test", "--format", "json", dir)
	require.Error(t, err)

	var response struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "error", response.Status)
	assert.Equal(t, 1, response.Data.Failed)
	require.Len(t, response.Data.Scenarios, 1)
	assert.Equal(t, "short", response.Data.Scenarios[0].Name)
	require.NotNil(t, response.Error)
	assert.Equal(t, "E_TEST_FAILED", response.Error.Code)
}

func TestTestCommandLoadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: broken\n"), 0o644))

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml\n  failed to load scenario:")
}

func TestTestCommandGolden(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "identity", identityBody)

	out, _, err := execute(t, "test", "--update", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ identity (golden updated)")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "identity.golden"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(golden), "Group A:\nTeam 1\n"))

	// Golden now matches.
	out, _, err = execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ identity\n")

	// A stale golden fails.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "identity.golden"), []byte("stale\n"), 0o644))
	out, _, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "draw does not match golden file")
}

func TestTestCommandFilter(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "seeded-one", passingBody)
	writeScenarioFile(t, dir, "short", failingBody)

	out, _, err := execute(t, "test", "--filter", "seeded-*", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestHelpText(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTestCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "scenarios")
	assert.Contains(t, output, "--update")
	assert.Contains(t, output, "--filter")
	assert.Contains(t, output, "scenarios-dir")
}

func TestFindScenarioFiles(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "test1.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "test2.yml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ignore.txt"), []byte(""), 0o644))

	files, err := findScenarioFiles(tmpDir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFindScenarioFilesWithFilter(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "seeded-1.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "seeded-2.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "identity.yaml"), []byte(""), 0o644))

	files, err := findScenarioFiles(tmpDir, "seeded-*")
	require.NoError(t, err)
	assert.Len(t, files, 2)
	for _, f := range files {
		assert.True(t, strings.HasPrefix(filepath.Base(f), "seeded-"), f)
	}

	_, err = findScenarioFiles(tmpDir, "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}

func TestFindScenarioFilesSkipsSubdirectories(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "lists")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "root.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(subDir, "teams.yaml"), []byte(""), 0o644))

	files, err := findScenarioFiles(tmpDir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "root.yaml")}, files)
}

func TestGoldenFilePath(t *testing.T) {
	testCases := []struct {
		file     string
		name     string
		expected string
	}{
		{"/path/to/scenario.yaml", "scenario", "/path/to/golden/scenario.golden"},
		{"/path/to/scenario.yml", "scenario", "/path/to/golden/scenario.golden"},
		{"scenarios/01-identity.yaml", "identity", "scenarios/golden/identity.golden"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, goldenFilePath(tc.file, tc.name))
	}
}

func TestTestCommandGoldenNamedAfterScenario(t *testing.T) {
	dir := t.TempDir()
	teams, err := filepath.Abs("testdata/teams36.txt")
	require.NoError(t, err)
	body := fmt.Sprintf("name: identity\ndescription: file and scenario names differ\nentrants_file: %s\n%s", teams, identityBody)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01-identity.yaml"), []byte(body), 0o644))

	_, _, err = execute(t, "test", "--update", dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "golden", "identity.golden"))
	assert.NoFileExists(t, filepath.Join(dir, "golden", "01-identity.golden"))
}
