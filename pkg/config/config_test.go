package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/series"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Wheel.Outcomes, 7)
	assert.Len(t, cfg.Constellation.Stars, 15)
	assert.Equal(t, 4, cfg.Pedigree.Root.Depth())
	assert.Equal(t, 450.0, cfg.Terrain.TokenValue)
	assert.Equal(t, "23:59:59", cfg.Live.Countdown.String())
}

func TestParseOverlaysDefaults(t *testing.T) {
	src := `
seed = 7
horse = "Northern Dancer"

[surface]
width = 800
height = 400
dpr = 2

[palette]
primary = "hsl(200, 50%, 50%)"

[terrain]
token_value = 380
timeframe = "1y"

[[ownership.owners]]
label = "You"
weight = 0.6
category = "owner"

[[ownership.owners]]
label = "Syndicate"
weight = 0.4
category = "owner"
`
	cfg, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, "Northern Dancer", cfg.Horse)
	assert.Equal(t, 800.0, cfg.Surface.Width)
	assert.Equal(t, series.Year, cfg.Terrain.Timeframe)
	assert.Equal(t, 7, cfg.Terrain.MovingAverage, "untouched keys keep defaults")
	require.Len(t, cfg.Ownership.Owners, 2)
	assert.Equal(t, entity.Owner, cfg.Ownership.Owners[1].Category)

	p, err := cfg.ResolvePalette()
	require.NoError(t, err)
	assert.Equal(t, 200.0, p["primary"].H)
	assert.Equal(t, 46.0, p["secondary"].H)
}

func TestParseNormalizesTimeframe(t *testing.T) {
	cfg, err := Parse(strings.NewReader("[terrain]\ntimeframe = \"3M\""))
	require.NoError(t, err)
	assert.Equal(t, series.Quarter, cfg.Terrain.Timeframe)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `seed = `},
		{"open ownership", "[[ownership.owners]]\nlabel = \"You\"\nweight = 0.5\ncategory = \"owner\""},
		{"bad category", "[[wheel.outcomes]]\nlabel = \"Speed\"\nweight = 1\ncategory = \"colour\""},
		{"bad color", "[palette]\nprimary = \"teal\""},
		{"bad timeframe", "[terrain]\ntimeframe = \"2d\""},
		{"surface", "[surface]\nwidth = 0"},
		{"score", "[helix]\nscore = 120"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvSeed:   "99",
		EnvDPR:    "3",
		EnvHeight: " 500 ",
	}
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 3.0, cfg.Surface.DPR)
	assert.Equal(t, 500.0, cfg.Surface.Height)
	assert.Equal(t, 600.0, cfg.Surface.Width)

	env[EnvSeed] = "-1"
	err := Default().ApplyEnv(func(k string) string { return env[k] })
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvWidth, "640")

	path := filepath.Join(dir, "paddock.toml")
	require.NoError(t, os.WriteFile(path, []byte("seed = 3\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), cfg.Seed)
	assert.Equal(t, 640.0, cfg.Surface.Width)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Encode(&buf))
	assert.Contains(t, buf.String(), `category = "trait"`)

	cfg, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, Default().Pedigree.Root, cfg.Pedigree.Root)
	assert.Equal(t, Default().Constellation.Stars, cfg.Constellation.Stars)
}
