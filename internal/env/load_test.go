package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# viewer paths\n\nVIEWER_MODEL = \"robots/arm.yaml\"\nexport VIEWER_SPHERES='robots/arm.json'\nVIEWER_KEEP=file\nbroken line\n=novalue\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("VIEWER_MODEL", "")
	t.Setenv("VIEWER_SPHERES", "")
	t.Setenv("VIEWER_KEEP", "shell")

	require.NoError(t, Load(path))
	assert.Equal(t, "robots/arm.yaml", os.Getenv("VIEWER_MODEL"))
	assert.Equal(t, "robots/arm.json", os.Getenv("VIEWER_SPHERES"))
	assert.Equal(t, "shell", os.Getenv("VIEWER_KEEP"))
}

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "absent.env")))
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line       string
		key, value string
		ok         bool
	}{
		{"A=1", "A", "1", true},
		{"  B = two words ", "B", "two words", true},
		{`C="quoted"`, "C", "quoted", true},
		{"D=", "D", "", true},
		{"# E=1", "", "", false},
		{"F", "", "", false},
		{"=1", "", "", false},
	}
	for _, tt := range tests {
		key, value, ok := parseLine(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.key, key, tt.line)
		assert.Equal(t, tt.value, value, tt.line)
	}
}
