package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultTuningIsValid(t *testing.T) {
	assert.NoError(t, DefaultTuning().Validate())
}

func TestLoadTuningEmptyPath(t *testing.T) {
	got, err := LoadTuning("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), got)
}

func TestLoadTuningOverridesSubset(t *testing.T) {
	path := writeTuning(t, `
base_speed = 0.3
front_limit = 10.5
`)
	got, err := LoadTuning(path)
	require.NoError(t, err)

	want := DefaultTuning()
	want.BaseSpeed = 0.3
	want.FrontLimit = 10.5
	assert.Equal(t, want, got)
}

func TestLoadTuningRejectsUnknownKeys(t *testing.T) {
	path := writeTuning(t, `box_sise = 4`)
	_, err := LoadTuning(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "box_sise")
}

func TestLoadTuningMissingFile(t *testing.T) {
	_, err := LoadTuning(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTuningValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Tuning)
		wantErr string
	}{
		{"zero box", func(t *Tuning) { t.BoxSize = 0 }, "box_size"},
		{"negative speed", func(t *Tuning) { t.BaseSpeed = -1 }, "base_speed"},
		{"inverted limits", func(t *Tuning) { t.BackLimit = 9 }, "back_limit"},
		{"negative growth", func(t *Tuning) { t.SpeedGrowth = -0.1 }, "speed_growth"},
		{"zero step", func(t *Tuning) { t.FixedStep = 0 }, "fixed_step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.mutate(&tuning)
			err := tuning.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TOWERSTACK_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("TOWERSTACK_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("TOWERSTACK_TEST_MISSING", "fallback"))
}
