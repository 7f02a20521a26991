package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Server.SnapshotTTL)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.OpenAIModel)
	assert.Equal(t, 1024, cfg.AI.MaxTokens)
	assert.Equal(t, 10.0, cfg.Experiment.RatioArmOhms)
	assert.Equal(t, 0.02, cfg.Experiment.ResistivityPerCM)
	assert.Equal(t, 5.0, cfg.Experiment.TrueUnknownOhms)
	assert.Equal(t, 4, cfg.Experiment.RevealMinReadings)
	assert.True(t, cfg.Experiment.RandomizeTruths)
	assert.False(t, cfg.Profiling.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SNAPSHOT_TTL", "30m")
	t.Setenv("TRUE_UNKNOWN_OHMS", "7.25")
	t.Setenv("REVEAL_MIN_READINGS", "2")
	t.Setenv("RANDOMIZE_TRUTHS", "false")
	t.Setenv("PPROF_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Server.SnapshotTTL)
	assert.Equal(t, 7.25, cfg.Experiment.TrueUnknownOhms)
	assert.Equal(t, 2, cfg.Experiment.RevealMinReadings)
	assert.False(t, cfg.Experiment.RandomizeTruths)
	assert.True(t, cfg.Profiling.Enabled)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("MAX_TOKENS", "lots")
	t.Setenv("TEMPERATURE", "warm")
	t.Setenv("SNAPSHOT_TTL", "sometime")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.AI.MaxTokens)
	assert.Equal(t, 0.7, cfg.AI.Temperature)
	assert.Equal(t, 2*time.Hour, cfg.Server.SnapshotTTL)
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"non-positive rho", "WIRE_RHO_PER_CM", "0"},
		{"non-positive unknown", "TRUE_UNKNOWN_OHMS", "-1"},
		{"inverted bounds", "MAX_KNOWN_OHMS", "0.05"},
		{"non-positive tolerance", "BALANCE_TOLERANCE", "0"},
		{"negative reveal threshold", "REVEAL_MIN_READINGS", "-1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv(c.key, c.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
