package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefault(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "viewer.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoadInvalidReturnsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0644))
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestSaveLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "viewer.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{"show_fps": true, "collision_opacity": 7}`), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.True(t, p.ShowFPS)
	assert.True(t, p.GridVisible)
	assert.Equal(t, Default().SpheresPath, p.SpheresPath)
	assert.InDelta(t, 0.45, p.CollisionOpacity, 1e-6, "out of range opacity falls back")

	p.ShowCollision = false
	p.CollisionOpacity = 0.3
	require.NoError(t, Save(path, p))
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvModelPath, "robots/arm.yaml")
	t.Setenv(EnvSpheresPath, "")
	p := Default()
	p.ApplyEnv()
	assert.Equal(t, "robots/arm.yaml", p.ModelPath)
	assert.Equal(t, Default().SpheresPath, p.SpheresPath)
}
