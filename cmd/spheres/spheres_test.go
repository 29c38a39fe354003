package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"robot-viewer/internal/spheres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataset = `{
  "wheel_fl::8": {"8": {"0": {"spheres": [{"origin": [0, 0, 0], "radius": 0.1}]},
                        "1": {"spheres": [{"origin": [0, 0.05, 0], "radius": 0.05}, {"origin": [0, -0.05, 0], "radius": 0.05}]}}},
  "base_link::4": {"4": {"0": {"spheres": [{"origin": [0, 0.2, 0], "radius": 0.4}]}}}
}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rover.json")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0644))
	return path
}

func TestReduceTable(t *testing.T) {
	out, err := run(t, "reduce", writeDataset(t))
	require.NoError(t, err)
	assert.Contains(t, out, "LINK")
	assert.Regexp(t, `wheel_fl\s+2\n`, out)
	assert.Regexp(t, `base_link\s+1\n`, out)
	assert.Regexp(t, `total\s+3\n`, out)
}

func TestReduceJSON(t *testing.T) {
	out, err := run(t, "reduce", "--json", writeDataset(t))
	require.NoError(t, err)
	var sets []spheres.LinkSpheres
	require.NoError(t, json.Unmarshal([]byte(out), &sets))
	require.Len(t, sets, 2)
	assert.Equal(t, "wheel_fl", sets[0].Link)
	assert.Len(t, sets[0].Spheres, 2)
	assert.Equal(t, 0.4, sets[1].Spheres[0].Radius)
}

func TestReduceErrors(t *testing.T) {
	_, err := run(t, "reduce")
	assert.Error(t, err)
	_, err = run(t, "reduce", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestColor(t *testing.T) {
	out, err := run(t, "color", "wheel_fl", "a")
	require.NoError(t, err)
	assert.Equal(t, "wheel_fl  #6415c6  0.7414 0.81 0.43\na  #bd1e25  0.9926 0.73 0.43\n", out)

	_, err = run(t, "color")
	assert.Error(t, err)
}
