package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCheckText(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		wantOut  string
		wantCode int
	}{
		{
			name:     "ready",
			file:     "testdata/teams36.txt",
			wantOut:  "✓ 36 entrants, ready to draw\n",
			wantCode: ExitSuccess,
		},
		{
			name:     "short",
			file:     "testdata/teams35.txt",
			wantOut:  "✗ 35 of 36 entrants\n  1 missing\n  expected 36 entrants, got 35\n",
			wantCode: ExitFailure,
		},
		{
			name:     "long",
			file:     "testdata/teams37.txt",
			wantOut:  "✗ 37 of 36 entrants\n  1 too many\n  expected 36 entrants, got 37\n",
			wantCode: ExitFailure,
		},
		{
			name:     "duplicate",
			file:     "testdata/dupes.txt",
			wantOut:  "✗ 36 of 36 entrants\n  entrant \"Team 1\" is listed more than once\n",
			wantCode: ExitFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "check", tt.file)
			assert.Equal(t, tt.wantCode, GetExitCode(err))
			assert.Equal(t, tt.wantOut, out)
		})
	}
}

func TestCheckJSON(t *testing.T) {
	out, _, err := execute(t, "check", "--format", "json", "testdata/teams35.txt")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
		Error  *CLIError   `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, CheckResult{
		Path:     "testdata/teams35.txt",
		Count:    35,
		Required: 36,
		Missing:  1,
		Problem:  "expected 36 entrants, got 35",
	}, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION", resp.Error.Code)
}

func TestCheckYAMLReady(t *testing.T) {
	out, _, err := execute(t, "check", "--format", "yaml", "testdata/teams36.yaml")
	require.NoError(t, err)

	var resp struct {
		Status string      `yaml:"status"`
		Data   CheckResult `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Ready)
	assert.Equal(t, 36, resp.Data.Count)
	assert.Empty(t, resp.Data.Problem)
}

func TestCheckVerbose(t *testing.T) {
	_, errOut, err := execute(t, "check", "-v", "testdata/teams36.cue")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Loaded 36 name(s) from testdata/teams36.cue")
}

func TestCheckMissingFile(t *testing.T) {
	out, _, err := execute(t, "check", "testdata/nope.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "Error [E002]: testdata/nope.yaml: entrant file not found\n", out)
}

func TestCheckDuplicateIsNotReady(t *testing.T) {
	out, _, err := execute(t, "check", "--format", "json", "testdata/dupes.txt")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, CheckResult{
		Path:      "testdata/dupes.txt",
		Count:     36,
		Required:  36,
		Problem:   `entrant "Team 1" is listed more than once`,
		Duplicate: "Team 1",
	}, resp.Data)
}
