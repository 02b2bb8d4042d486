package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/marbles/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.FromEnv(env(nil))
		require.NoError(t, err)
		assert.Equal(t, 60, cfg.RoundSeconds)
		assert.Equal(t, 50.0, cfg.Gain)
		assert.Equal(t, 3, cfg.TopN)
		assert.False(t, cfg.Strict)
		assert.Zero(t, cfg.Seed)
		assert.NotEmpty(t, cfg.ScoresDir)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := config.FromEnv(env(map[string]string{
			config.EnvRoundSeconds: "30",
			config.EnvGain:         "25.5",
			config.EnvSeed:         "1234",
			config.EnvBallSize:     "32",
			config.EnvScoresDir:    "/tmp/scores",
			config.EnvStrict:       "true",
			config.EnvTopN:         "5",
		}))
		require.NoError(t, err)
		assert.Equal(t, config.Config{
			RoundSeconds: 30,
			Gain:         25.5,
			Seed:         1234,
			BallSize:     32,
			ScoresDir:    "/tmp/scores",
			Strict:       true,
			TopN:         5,
		}, cfg)
	})

	bad := map[string]string{
		config.EnvRoundSeconds: "0",
		config.EnvGain:         "fast",
		config.EnvSeed:         "-1",
		config.EnvBallSize:     "-3",
		config.EnvStrict:       "maybe",
		config.EnvTopN:         "three",
	}
	for key, value := range bad {
		t.Run("invalid "+key, func(t *testing.T) {
			_, err := config.FromEnv(env(map[string]string{key: value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("MARBLES_ROUND_SECONDS=45\nMARBLES_STRICT=1\n"), 0644))

	t.Cleanup(func() {
		os.Unsetenv(config.EnvRoundSeconds)
		os.Unsetenv(config.EnvStrict)
	})

	cfg, err := config.Load(filepath.Join(dir, "missing.env"), file)
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.RoundSeconds)
	assert.True(t, cfg.Strict)
}
