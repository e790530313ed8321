package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/triplefit/internal/dataset"
	"github.com/KaramelBytes/triplefit/internal/rating"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
	assert.Equal(t, dataset.DefaultLayout(), c.Layout)
	assert.Equal(t, rating.DefaultThresholds(), c.Thresholds)
	assert.Zero(t, c.Pause())
}

func TestLoadFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := filepath.Join(home, "custom.yaml")
	body := "workers: 4\n" +
		"layout:\n  sets: 3\n  sheet: Data\n" +
		"thresholds:\n  exceptional: 0.5\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	t.Setenv("TRIPLEFIT_PAUSE_MS", "250")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, 3, c.Layout.Sets)
	assert.Equal(t, "Data", c.Layout.Sheet)
	assert.Equal(t, 6, c.Layout.DataStartRow)
	assert.Equal(t, 0.5, c.Thresholds.Exceptional)
	assert.Equal(t, 5.0, c.Thresholds.Superior)
	assert.Equal(t, 250, c.PauseMs)
}

func TestLoadRejectsInvalid(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := filepath.Join(home, "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("thresholds:\n  superior: 0.5\n"), 0o644))
	_, err := Load(p)
	assert.Error(t, err)

	_, err = Load(filepath.Join(home, "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c := Defaults()
	c.Workers = 2
	c.Precision.Error = 6
	require.NoError(t, Save(c, ""))

	path, err := Path("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".triplefit", "config.yaml"), path)

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, c, got)
}
