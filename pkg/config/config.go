// Package config carries the game's enumerated configuration and the
// startup validation the engine relies on to treat bad configuration as a
// programmer error rather than a runtime failure mode.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable named in the specification.
type Config struct {
	DeckSize     int
	TableSize    int
	Rows         int
	Columns      int
	FeatureSize  int
	Players      int
	HumanPlayers int

	TurnTimeout        time.Duration
	TurnTimeoutWarning time.Duration
	PointFreeze        time.Duration
	PenaltyFreeze      time.Duration
	TableDelay         time.Duration

	Hints bool
}

// Default returns the configuration used by the reference implementation
// of the game (81-card deck, 4x3 grid, sets of 3).
func Default() Config {
	return Config{
		DeckSize:           81,
		TableSize:          12,
		Rows:               3,
		Columns:            4,
		FeatureSize:        3,
		Players:            2,
		HumanPlayers:       0,
		TurnTimeout:        60 * time.Second,
		TurnTimeoutWarning: 5 * time.Second,
		PointFreeze:        time.Second,
		PenaltyFreeze:      3 * time.Second,
		TableDelay:         100 * time.Millisecond,
		Hints:              false,
	}
}

// Validate reports configuration violations that spec.md classifies as
// programmer error: they are caught once at startup, never recovered from
// at runtime.
func (c Config) Validate() error {
	switch {
	case c.DeckSize <= 0:
		return fmt.Errorf("config: deckSize must be positive, got %d", c.DeckSize)
	case c.TableSize <= 0:
		return fmt.Errorf("config: tableSize must be positive, got %d", c.TableSize)
	case c.FeatureSize <= 0:
		return fmt.Errorf("config: featureSize must be positive, got %d", c.FeatureSize)
	case c.FeatureSize > c.TableSize:
		return fmt.Errorf("config: featureSize (%d) cannot exceed tableSize (%d)", c.FeatureSize, c.TableSize)
	case c.TableSize > c.DeckSize:
		return fmt.Errorf("config: tableSize (%d) cannot exceed deckSize (%d)", c.TableSize, c.DeckSize)
	case c.Rows*c.Columns != c.TableSize:
		return fmt.Errorf("config: rows*columns (%d*%d=%d) must equal tableSize (%d)", c.Rows, c.Columns, c.Rows*c.Columns, c.TableSize)
	case c.Players <= 0:
		return fmt.Errorf("config: players must be positive, got %d", c.Players)
	case c.HumanPlayers < 0 || c.HumanPlayers > c.Players:
		return fmt.Errorf("config: humanPlayers (%d) must be between 0 and players (%d)", c.HumanPlayers, c.Players)
	case c.TurnTimeout <= 0:
		return fmt.Errorf("config: turnTimeout must be positive, got %s", c.TurnTimeout)
	case c.TurnTimeoutWarning < 0 || c.TurnTimeoutWarning > c.TurnTimeout:
		return fmt.Errorf("config: turnTimeoutWarning (%s) must be between 0 and turnTimeout (%s)", c.TurnTimeoutWarning, c.TurnTimeout)
	case c.PointFreeze < 0:
		return fmt.Errorf("config: pointFreeze cannot be negative, got %s", c.PointFreeze)
	case c.PenaltyFreeze < 0:
		return fmt.Errorf("config: penaltyFreeze cannot be negative, got %s", c.PenaltyFreeze)
	case c.TableDelay < 0:
		return fmt.Errorf("config: tableDelay cannot be negative, got %s", c.TableDelay)
	}
	return nil
}

// Load builds a Config from an optional .env file, environment variables
// prefixed SETGAME_, and command-line flags (which take precedence), the
// same layering the reference command line entrypoint uses: flags override
// environment, and a missing .env file is not an error.
func Load(args []string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	cfg.DeckSize = envInt("SETGAME_DECK_SIZE", cfg.DeckSize)
	cfg.TableSize = envInt("SETGAME_TABLE_SIZE", cfg.TableSize)
	cfg.Rows = envInt("SETGAME_ROWS", cfg.Rows)
	cfg.Columns = envInt("SETGAME_COLUMNS", cfg.Columns)
	cfg.FeatureSize = envInt("SETGAME_FEATURE_SIZE", cfg.FeatureSize)
	cfg.Players = envInt("SETGAME_PLAYERS", cfg.Players)
	cfg.HumanPlayers = envInt("SETGAME_HUMAN_PLAYERS", cfg.HumanPlayers)
	cfg.TurnTimeout = envDuration("SETGAME_TURN_TIMEOUT", cfg.TurnTimeout)
	cfg.TurnTimeoutWarning = envDuration("SETGAME_TURN_TIMEOUT_WARNING", cfg.TurnTimeoutWarning)
	cfg.PointFreeze = envDuration("SETGAME_POINT_FREEZE", cfg.PointFreeze)
	cfg.PenaltyFreeze = envDuration("SETGAME_PENALTY_FREEZE", cfg.PenaltyFreeze)
	cfg.TableDelay = envDuration("SETGAME_TABLE_DELAY", cfg.TableDelay)
	cfg.Hints = envBool("SETGAME_HINTS", cfg.Hints)

	fs := flag.NewFlagSet("setgame", flag.ContinueOnError)
	fs.IntVar(&cfg.DeckSize, "deck-size", cfg.DeckSize, "number of distinct card ids")
	fs.IntVar(&cfg.TableSize, "table-size", cfg.TableSize, "number of grid slots")
	fs.IntVar(&cfg.Rows, "rows", cfg.Rows, "grid rows")
	fs.IntVar(&cfg.Columns, "columns", cfg.Columns, "grid columns")
	fs.IntVar(&cfg.FeatureSize, "feature-size", cfg.FeatureSize, "cardinality of a legal set")
	fs.IntVar(&cfg.Players, "players", cfg.Players, "total number of players")
	fs.IntVar(&cfg.HumanPlayers, "human-players", cfg.HumanPlayers, "number of keyboard-driven players")
	fs.DurationVar(&cfg.TurnTimeout, "turn-timeout", cfg.TurnTimeout, "countdown before reshuffle")
	fs.DurationVar(&cfg.TurnTimeoutWarning, "turn-timeout-warning", cfg.TurnTimeoutWarning, "countdown warning threshold")
	fs.DurationVar(&cfg.PointFreeze, "point-freeze", cfg.PointFreeze, "freeze duration after a point")
	fs.DurationVar(&cfg.PenaltyFreeze, "penalty-freeze", cfg.PenaltyFreeze, "freeze duration after a penalty")
	fs.DurationVar(&cfg.TableDelay, "table-delay", cfg.TableDelay, "simulated hardware placement latency")
	fs.BoolVar(&cfg.Hints, "hints", cfg.Hints, "print legal sets to the operator console")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
