// Package config loads the game settings from defaults, .env files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvRoundSeconds = "MARBLES_ROUND_SECONDS"
	EnvGain         = "MARBLES_GAIN"
	EnvSeed         = "MARBLES_SEED"
	EnvBallSize     = "MARBLES_BALL_SIZE"
	EnvScoresDir    = "MARBLES_SCORES_DIR"
	EnvStrict       = "MARBLES_STRICT"
	EnvTopN         = "MARBLES_TOP_N"
)

// Config holds the game settings.
type Config struct {
	RoundSeconds int
	Gain         float64
	// Seed for the board layout. 0 picks a random seed per round.
	Seed      uint64
	BallSize  float64
	ScoresDir string
	Strict    bool
	TopN      int
}

// Default returns the standard settings.
func Default() Config {
	return Config{
		RoundSeconds: 60,
		Gain:         50,
		BallSize:     40,
		ScoresDir:    defaultScoresDir(),
		TopN:         3,
	}
}

func defaultScoresDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".marbles"
	}
	return filepath.Join(dir, "marbles")
}

// Load reads the given .env files into the environment, skipping files that
// do not exist, then applies MARBLES_* variables on top of the defaults.
// Variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv applies variables returned by getenv on top of the defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv(EnvRoundSeconds); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s: want a positive integer, got %q", EnvRoundSeconds, v)
		}
		cfg.RoundSeconds = n
	}

	if v := getenv(EnvGain); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvGain, err)
		}
		cfg.Gain = f
	}

	if v := getenv(EnvSeed); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = n
	}

	if v := getenv(EnvBallSize); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return Config{}, fmt.Errorf("%s: want a positive number, got %q", EnvBallSize, v)
		}
		cfg.BallSize = f
	}

	if v := getenv(EnvScoresDir); v != "" {
		cfg.ScoresDir = v
	}

	if v := getenv(EnvStrict); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvStrict, err)
		}
		cfg.Strict = b
	}

	if v := getenv(EnvTopN); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s: want a positive integer, got %q", EnvTopN, v)
		}
		cfg.TopN = n
	}

	return cfg, nil
}
