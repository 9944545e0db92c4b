package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	root, _ := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Contains(t, run(t, "version"), "pokesim dev")
}

func TestConfigDump(t *testing.T) {
	t.Setenv("POKESIM_SELFPLAY_WORKERS", "9")
	out := run(t, "config", "dump")
	assert.Contains(t, out, "workers: 9")
	assert.Contains(t, out, "stealth_rock:")
}

func TestChoose(t *testing.T) {
	t.Setenv("POKESIM_SEARCH_GENERAL", "1")
	t.Setenv("POKESIM_SEARCH_ITERATIVE", "false")
	t.Setenv("POKESIM_SEARCH_TABLE_BITS", "10")
	t.Setenv("POKESIM_SELFPLAY_TEAM_SIZE", "2")
	t.Setenv("POKESIM_LOG_LEVEL", "warn")

	var got choice
	require.NoError(t, json.Unmarshal([]byte(run(t, "choose", "--seed", "3")), &got))
	assert.NotEmpty(t, got.Selection)
	require.NotEmpty(t, got.Candidates)
	assert.Equal(t, got.Selection, got.Candidates[0].Selection)
	assert.Equal(t, "1/0", got.Depth)
}

func TestChoose_BadEvents(t *testing.T) {
	t.Setenv("POKESIM_LOG_LEVEL", "panic")
	path := filepath.Join(t.TempDir(), "events.log")
	require.NoError(t, os.WriteFile(path, []byte("|switch|ai|missingno\n"), 0o644))

	root, _ := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"choose", "--events", path})
	assert.Error(t, root.Execute())
}
