package game

import (
	"fmt"
	"time"
)

// Config holds the table rules shared by every room on a server.
type Config struct {
	SmallBlind    int
	BigBlind      int
	Ante          int
	StartingChips int
	MinPlayers    int
	MaxPlayers    int
	RestartDelay  time.Duration
}

// DefaultConfig returns the standard table rules: 10/20 blinds, no ante,
// 1000 starting chips, up to 10 seats, 5 second pause between hands.
func DefaultConfig() Config {
	return Config{
		SmallBlind:    10,
		BigBlind:      20,
		Ante:          0,
		StartingChips: 1000,
		MinPlayers:    2,
		MaxPlayers:    10,
		RestartDelay:  5 * time.Second,
	}
}

// Validate checks the config for values that would make a table unplayable.
func (c Config) Validate() error {
	if c.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", c.SmallBlind)
	}
	if c.BigBlind < c.SmallBlind {
		return fmt.Errorf("big blind %d is smaller than small blind %d", c.BigBlind, c.SmallBlind)
	}
	if c.Ante < 0 {
		return fmt.Errorf("ante must not be negative, got %d", c.Ante)
	}
	if c.StartingChips < c.BigBlind {
		return fmt.Errorf("starting chips %d cannot cover the big blind %d", c.StartingChips, c.BigBlind)
	}
	if c.MinPlayers < 2 {
		return fmt.Errorf("min players must be at least 2, got %d", c.MinPlayers)
	}
	// 22 two-card hands plus burns and board is all a 52-card deck covers.
	if c.MaxPlayers < c.MinPlayers || c.MaxPlayers > 22 {
		return fmt.Errorf("max players must be between %d and 22, got %d", c.MinPlayers, c.MaxPlayers)
	}
	if c.RestartDelay < 0 {
		return fmt.Errorf("restart delay must not be negative, got %s", c.RestartDelay)
	}
	return nil
}
