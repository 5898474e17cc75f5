package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "default is valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "featureSize exceeds tableSize", mutate: func(c *Config) { c.FeatureSize = c.TableSize + 1 }, wantErr: true},
		{name: "tableSize exceeds deckSize", mutate: func(c *Config) { c.TableSize = c.DeckSize + 1 }, wantErr: true},
		{name: "rows*columns mismatch", mutate: func(c *Config) { c.Rows = c.Rows + 1 }, wantErr: true},
		{name: "humanPlayers exceeds players", mutate: func(c *Config) { c.HumanPlayers = c.Players + 1 }, wantErr: true},
		{name: "negative table delay", mutate: func(c *Config) { c.TableDelay = -1 }, wantErr: true},
		{name: "warning exceeds timeout", mutate: func(c *Config) { c.TurnTimeoutWarning = c.TurnTimeout + 1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
