package spheres

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const armLink = `{
  "armLink::8": {
    "0": {"spheres": [{"origin": [0, 0, 0], "radius": 0.1}]},
    "1": {"spheres": [{"origin": [1, 1, 1], "radius": 0.05}, {"origin": [2, 2, 2], "radius": 0.05}]}
  }
}`

func mustParse(t *testing.T, src string) Hierarchy {
	t.Helper()
	h, err := Parse([]byte(src))
	require.NoError(t, err)
	return h
}

func TestReduceArmLink(t *testing.T) {
	got := Reduce(mustParse(t, armLink))
	want := []LinkSpheres{{
		Link: "armLink",
		Spheres: []Sphere{
			{Origin: [3]float64{1, 1, 1}, Radius: 0.05},
			{Origin: [3]float64{2, 2, 2}, Radius: 0.05},
		},
	}}
	assert.Equal(t, want, got)
}

func TestLinkName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"wheel_fl::8", "wheel_fl"},
		{"wheel_fl", "wheel_fl"},
		{"a::b::c", "a"},
		{"::x", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LinkName(tt.key), tt.key)
	}
}

func TestReduceKeepsKeyOrder(t *testing.T) {
	src := `{"zeta::1": {}, "alpha::1": {}, "mid::1": {}}`
	got := Reduce(mustParse(t, src))
	require.Len(t, got, 3)
	assert.Equal(t, "zeta", got[0].Link)
	assert.Equal(t, "alpha", got[1].Link)
	assert.Equal(t, "mid", got[2].Link)
}

func TestReduceTieKeepsFirst(t *testing.T) {
	src := `{
  "l::0": {
    "a": {"x": {"spheres": [{"radius": 1}, {"radius": 1}]}},
    "b": {"y": {"spheres": [{"radius": 2}, {"radius": 2}]}, "z": {"spheres": [{"radius": 3}]}}
  }
}`
	got := Reduce(mustParse(t, src))
	require.Len(t, got, 1)
	require.Len(t, got[0].Spheres, 2)
	assert.Equal(t, 1.0, got[0].Spheres[0].Radius)
}

func TestReduceMaximality(t *testing.T) {
	src := `{
  "l::0": {
    "0": {"0": {"spheres": [{}]}, "1": {"spheres": [{}, {}, {}]}},
    "1": {"0": {"spheres": [{}, {}]}},
    "2": {"0": {"spheres": [{}, {}, {}, {}]}, "1": {"spheres": []}}
  }
}`
	h := mustParse(t, src)
	got := Reduce(h)
	require.Len(t, got, 1)
	for _, lv := range h[0].Levels {
		for _, sub := range lv.Subdivisions {
			assert.GreaterOrEqual(t, len(got[0].Spheres), len(sub.Spheres))
		}
	}
	assert.Len(t, got[0].Spheres, 4)
}

func TestReduceSkipsInvalidSubdivisions(t *testing.T) {
	src := `{
  "onlyEmpty::0": {"0": {"a": {"spheres": 5}, "b": {"spheres": []}, "c": {"nope": [1, 2, 3]}}},
  "nothing::0": {"0": {"a": {"spheres": {"0": {}}}}},
  "scalarLevels::0": 7
}`
	got := Reduce(mustParse(t, src))
	require.Len(t, got, 3)
	for _, ls := range got {
		assert.NotNil(t, ls.Spheres, ls.Link)
		assert.Empty(t, ls.Spheres, ls.Link)
	}
}

func TestReduceDeterministicAndUnaliased(t *testing.T) {
	h := mustParse(t, armLink)
	first := Reduce(h)
	second := Reduce(h)
	assert.Equal(t, first, second)

	first[0].Spheres[0].Radius = 42
	assert.Equal(t, 0.05, h[0].Levels[1].Subdivisions[0].Spheres[0].Radius)
	assert.Equal(t, 0.05, second[0].Spheres[0].Radius)
}

func TestCloneSetsIsDeep(t *testing.T) {
	src := []LinkSpheres{
		{Link: "a", Spheres: []Sphere{{Origin: [3]float64{1, 2, 3}, Radius: 0.5}}},
		{Link: "b"},
	}
	dst := cloneSets(src)
	require.Len(t, dst, 2)
	assert.Equal(t, src[0], dst[0])
	assert.NotNil(t, dst[1].Spheres)
	assert.Empty(t, dst[1].Spheres)

	src[0].Spheres[0].Radius = 9
	src[0].Spheres[0].Origin[0] = 9
	assert.Equal(t, 0.5, dst[0].Spheres[0].Radius)
	assert.Equal(t, 1.0, dst[0].Spheres[0].Origin[0])
}

func TestReduceEmpty(t *testing.T) {
	assert.Empty(t, Reduce(nil))
	assert.Empty(t, Reduce(mustParse(t, "")))
}

func TestParseSphereDefaults(t *testing.T) {
	src := `{
  "l::0": {"0": {"0": {"spheres": [
    {"origin": [1, 2, 3]},
    {"origin": [4], "radius": "big"},
    {"origin": "nowhere", "radius": -1},
    {"radius": 0},
    {"origin": [1, true, 2.5], "radius": 0.2},
    null
  ]}}}
}`
	got := Reduce(mustParse(t, src))
	require.Len(t, got, 1)
	want := []Sphere{
		{Origin: [3]float64{1, 2, 3}, Radius: DefaultRadius},
		{Origin: [3]float64{4, 0, 0}, Radius: DefaultRadius},
		{Radius: DefaultRadius},
		{Radius: 0},
		{Origin: [3]float64{1, 0, 2.5}, Radius: 0.2},
		{Radius: DefaultRadius},
	}
	assert.Equal(t, want, got[0].Spheres)
}

func TestParseSequenceLevels(t *testing.T) {
	src := `{"l::0": [[{"spheres": [{}]}, {"spheres": [{}, {}]}]]}`
	h := mustParse(t, src)
	require.Len(t, h, 1)
	require.Len(t, h[0].Levels, 1)
	assert.Equal(t, "0", h[0].Levels[0].ID)
	assert.Equal(t, "1", h[0].Levels[0].Subdivisions[1].ID)
	assert.Len(t, Reduce(h)[0].Spheres, 2)
}

func TestParseYAML(t *testing.T) {
	src := `
base::3:
  "8":
    "0":
      spheres:
        - {origin: [0, 0, 0.1], radius: 0.2}
`
	got := Reduce(mustParse(t, src))
	require.Len(t, got, 1)
	assert.Equal(t, "base", got[0].Link)
	assert.Equal(t, []Sphere{{Origin: [3]float64{0, 0, 0.1}, Radius: 0.2}}, got[0].Spheres)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`[1, 2, 3]`))
	assert.ErrorIs(t, err, ErrNotMapping)
	_, err = Parse([]byte(`{"a": [1, 2`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spheres.json")
	require.NoError(t, os.WriteFile(path, []byte(armLink), 0644))

	h, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, Count(Reduce(h)))

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestParseLevelHoldingSpheres(t *testing.T) {
	h := mustParse(t, armLink)
	require.Len(t, h, 1)
	require.Len(t, h[0].Levels, 2)
	for _, lv := range h[0].Levels {
		require.Len(t, lv.Subdivisions, 1)
		assert.Equal(t, lv.ID, lv.Subdivisions[0].ID)
		assert.True(t, lv.Subdivisions[0].Valid)
	}

	mixed := mustParse(t, `{"l::0": {"8": {"spheres": [{}], "0": {"spheres": [{}, {}]}}}}`)
	subs := mixed[0].Levels[0].Subdivisions
	require.Len(t, subs, 2)
	assert.Equal(t, "8", subs[0].ID)
	assert.Equal(t, "0", subs[1].ID)
	assert.Len(t, Reduce(mixed)[0].Spheres, 2)
}
