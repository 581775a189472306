package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/sagythepigy/LAN-Poker/internal/game"
)

// Config is the resolved server configuration: listener settings, table
// rules, and the stats store.
type Config struct {
	Server ServerSettings
	Game   GameSettings
	Stats  StatsSettings
}

// ServerSettings contains listener-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings contains the table rules applied to every room.
type GameSettings struct {
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	Ante          int    `hcl:"ante,optional"`
	StartingChips int    `hcl:"starting_chips,optional"`
	MinPlayers    int    `hcl:"min_players,optional"`
	MaxPlayers    int    `hcl:"max_players,optional"`
	RestartDelay  string `hcl:"restart_delay,optional"`
}

// StatsSettings configures the SQLite stats store.
type StatsSettings struct {
	Enabled bool   `hcl:"enabled,optional"`
	Path    string `hcl:"path,optional"`
}

// fileConfig is the HCL file schema. Every block is optional so a partial
// file overrides only the settings it names.
type fileConfig struct {
	Server *ServerSettings `hcl:"server,block"`
	Game   *GameSettings   `hcl:"game,block"`
	Stats  *StatsSettings  `hcl:"stats,block"`
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "0.0.0.0",
			Port:     8080,
			LogLevel: "info",
		},
		Game: GameSettings{
			SmallBlind:    10,
			BigBlind:      20,
			Ante:          0,
			StartingChips: 1000,
			MinPlayers:    2,
			MaxPlayers:    10,
			RestartDelay:  "5s",
		},
		Stats: StatsSettings{
			Enabled: false,
			Path:    "lanpoker.db",
		},
	}
}

// LoadConfig loads configuration from an HCL file, layered over the
// defaults. A missing file (or an empty filename) yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()
	if filename == "" {
		return cfg, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", filename, diags.Error())
	}

	cfg.merge(&fc)
	return cfg, nil
}

func (c *Config) merge(fc *fileConfig) {
	if fc.Server != nil {
		if fc.Server.Address != "" {
			c.Server.Address = fc.Server.Address
		}
		if fc.Server.Port != 0 {
			c.Server.Port = fc.Server.Port
		}
		if fc.Server.LogLevel != "" {
			c.Server.LogLevel = fc.Server.LogLevel
		}
	}
	if fc.Game != nil {
		if fc.Game.SmallBlind != 0 {
			c.Game.SmallBlind = fc.Game.SmallBlind
		}
		if fc.Game.BigBlind != 0 {
			c.Game.BigBlind = fc.Game.BigBlind
		}
		if fc.Game.Ante != 0 {
			c.Game.Ante = fc.Game.Ante
		}
		if fc.Game.StartingChips != 0 {
			c.Game.StartingChips = fc.Game.StartingChips
		}
		if fc.Game.MinPlayers != 0 {
			c.Game.MinPlayers = fc.Game.MinPlayers
		}
		if fc.Game.MaxPlayers != 0 {
			c.Game.MaxPlayers = fc.Game.MaxPlayers
		}
		if fc.Game.RestartDelay != "" {
			c.Game.RestartDelay = fc.Game.RestartDelay
		}
	}
	if fc.Stats != nil {
		c.Stats.Enabled = fc.Stats.Enabled
		if fc.Stats.Path != "" {
			c.Stats.Path = fc.Stats.Path
		}
	}
}

// Validate checks the listener settings. Table rules are validated when they
// are resolved through GameConfig.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	return nil
}

// Addr returns the listener address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// GameConfig resolves the table rules into a validated game configuration.
func (c *Config) GameConfig() (game.Config, error) {
	delay, err := time.ParseDuration(c.Game.RestartDelay)
	if err != nil {
		return game.Config{}, fmt.Errorf("invalid restart_delay: %w", err)
	}
	gc := game.Config{
		SmallBlind:    c.Game.SmallBlind,
		BigBlind:      c.Game.BigBlind,
		Ante:          c.Game.Ante,
		StartingChips: c.Game.StartingChips,
		MinPlayers:    c.Game.MinPlayers,
		MaxPlayers:    c.Game.MaxPlayers,
		RestartDelay:  delay,
	}
	if err := gc.Validate(); err != nil {
		return game.Config{}, err
	}
	return gc, nil
}
