package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rover.json")
	other := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	w, err := New(nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(path))
	require.NoError(t, w.Add(path))

	require.NoError(t, os.WriteFile(other, []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(path, []byte(`{"a::1": {}}`), 0644))

	select {
	case got := <-w.Changed():
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherDeliversSettledContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rover.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"old::1": {}}`), 0644))

	w, err := New(nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(path))

	final := `{"base_link::1": {"spheres": [{"center": [0, 0, 0], "radius": 0.1}]}}`
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	time.Sleep(debounce * 2 / 5)
	require.NoError(t, os.WriteFile(path, []byte(final), 0644))

	var reloaded []string
	timeout := time.After(5 * time.Second)
	for {
		select {
		case <-w.Changed():
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			reloaded = append(reloaded, string(data))
			continue
		case <-time.After(5 * debounce):
			if len(reloaded) == 0 {
				continue
			}
		case <-timeout:
		}
		break
	}
	require.NotEmpty(t, reloaded)
	assert.Equal(t, final, reloaded[len(reloaded)-1])
}

func TestNoticeCoalescesBursts(t *testing.T) {
	w, err := New(nil)
	require.NoError(t, err)
	defer w.Close()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, w.Add(path))

	assert.True(t, w.notice(path))
	assert.True(t, w.notice(path))
	assert.True(t, w.notice(path))
	assert.False(t, w.notice(filepath.Join(filepath.Dir(path), "unwatched.yaml")))

	select {
	case got := <-w.Changed():
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case got := <-w.Changed():
		t.Fatalf("burst delivered twice: %s", got)
	case <-time.After(3 * debounce):
	}
}

func TestAddKeepsLatestSpelling(t *testing.T) {
	w, err := New(nil)
	require.NoError(t, err)
	defer w.Close()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, w.Add("model.yaml"))
	require.NoError(t, w.Add("./model.yaml"))
	require.True(t, w.notice("model.yaml"))

	select {
	case got := <-w.Changed():
		assert.Equal(t, "./model.yaml", got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestSamePath(t *testing.T) {
	assert.True(t, SamePath("assets/spheres/rover.json", "./assets/spheres/rover.json"))
	assert.True(t, SamePath("a.json", "a.json"))
	assert.False(t, SamePath("a.json", "b.json"))
	assert.False(t, SamePath("", "a.json"))
}
