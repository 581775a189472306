package main

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/sagythepigy/LAN-Poker/cmd/lanpoker/shared"
	"github.com/sagythepigy/LAN-Poker/internal/server"
	"github.com/sagythepigy/LAN-Poker/internal/stats"
)

// ServeCmd runs the WebSocket poker server. Flags override the config file.
type ServeCmd struct {
	Addr   string `kong:"env='LANPOKER_ADDR',placeholder='HOST:PORT',help='Listen address (overrides config)'"`
	Config string `kong:"short='c',env='LANPOKER_CONFIG',placeholder='FILE',help='Path to HCL configuration file'"`
	Debug  bool   `kong:"env='LANPOKER_DEBUG',help='Enable debug logging'"`

	SmallBlind   int    `kong:"help='Small blind amount (overrides config)'"`
	BigBlind     int    `kong:"help='Big blind amount (overrides config)'"`
	Ante         int    `kong:"help='Ante collected from every dealt seat (overrides config)'"`
	Chips        int    `kong:"help='Starting chip count (overrides config)'"`
	MinPlayers   int    `kong:"help='Players required to deal a hand (overrides config)'"`
	MaxPlayers   int    `kong:"help='Seats per room (overrides config)'"`
	RestartDelay string `kong:"placeholder='DURATION',help='Pause between hands, e.g. 5s (overrides config)'"`

	Seed    *int64 `kong:"help='Deterministic shuffle seed (default: random)'"`
	Stats   bool   `kong:"env='LANPOKER_STATS',help='Enable the SQLite stats store'"`
	StatsDB string `kong:"name='stats-db',env='LANPOKER_STATS_DB',placeholder='FILE',help='SQLite stats database path (implies --stats)'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := c.applyOverrides(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	gameCfg, err := cfg.GameConfig()
	if err != nil {
		return err
	}

	logger := shared.SetupLogger(cfg.Server.LogLevel, c.Debug)

	var recorder stats.Recorder = stats.NewNopRecorder()
	if cfg.Stats.Enabled {
		store, err := stats.Open(cfg.Stats.Path, logger)
		if err != nil {
			return fmt.Errorf("open stats store: %w", err)
		}
		defer store.Close()
		recorder = store
	}

	if c.Seed != nil {
		logger.Info("using deterministic shuffle seed", "seed", *c.Seed)
	}

	rooms := server.NewRooms(gameCfg, logger, quartz.NewReal(), recorder, c.Seed)
	srv := server.NewServer(cfg.Addr(), logger, rooms)
	rooms.SetNotifier(srv)

	logger.Info("starting lanpoker",
		"version", version,
		"addr", cfg.Addr(),
		"smallBlind", gameCfg.SmallBlind,
		"bigBlind", gameCfg.BigBlind,
		"ante", gameCfg.Ante,
		"startingChips", gameCfg.StartingChips,
		"minPlayers", gameCfg.MinPlayers,
		"maxPlayers", gameCfg.MaxPlayers,
		"restartDelay", gameCfg.RestartDelay,
		"stats", cfg.Stats.Enabled)

	ctx := shared.SetupSignalHandler(logger)

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(srv.Start)
	g.Go(func() error {
		select {
		case <-ctx.Done():
		case <-gctx.Done():
			// Listener failed on its own; nothing to shut down.
			return nil
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// applyOverrides writes non-zero flag values over the loaded configuration.
func (c *ServeCmd) applyOverrides(cfg *server.Config) error {
	if c.Addr != "" {
		host, portStr, err := net.SplitHostPort(c.Addr)
		if err != nil {
			return fmt.Errorf("invalid addr %q: %w", c.Addr, err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid addr %q: %w", c.Addr, err)
		}
		if host != "" {
			cfg.Server.Address = host
		}
		cfg.Server.Port = port
	}
	if c.SmallBlind > 0 {
		cfg.Game.SmallBlind = c.SmallBlind
	}
	if c.BigBlind > 0 {
		cfg.Game.BigBlind = c.BigBlind
	}
	if c.Ante > 0 {
		cfg.Game.Ante = c.Ante
	}
	if c.Chips > 0 {
		cfg.Game.StartingChips = c.Chips
	}
	if c.MinPlayers > 0 {
		cfg.Game.MinPlayers = c.MinPlayers
	}
	if c.MaxPlayers > 0 {
		cfg.Game.MaxPlayers = c.MaxPlayers
	}
	if c.RestartDelay != "" {
		cfg.Game.RestartDelay = c.RestartDelay
	}
	if c.Stats {
		cfg.Stats.Enabled = true
	}
	if c.StatsDB != "" {
		cfg.Stats.Path = c.StatsDB
		cfg.Stats.Enabled = true
	}
	return nil
}
