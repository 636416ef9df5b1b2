package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gridclash/gridclash-engine/internal/config"
	"github.com/gridclash/gridclash-engine/internal/game/card"
	"github.com/gridclash/gridclash-engine/internal/sim"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	games      = flag.Int("games", 0, "number of games to simulate (overrides config)")
	seed       = flag.Int64("seed", 0, "random seed (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *games > 0 {
		cfg.Sim.Games = *games
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	catalog, err := card.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal("failed to load card catalog", zap.Error(err))
	}
	logger.Info("card catalog loaded",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("designs", catalog.Len()),
	)

	runner := sim.NewRunner(logger, catalog, cfg.Sim.Seed, cfg.Sim.DeckSize, cfg.Sim.MaxTurns)
	logger.Info("starting self-play simulation",
		zap.Int("games", cfg.Sim.Games),
		zap.Int64("seed", cfg.Sim.Seed),
	)

	results, err := runner.Run(cfg.Sim.Games)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	wins := make(map[string]int)
	totalTurns := 0
	for _, r := range results {
		wins[r.WinnerID]++
		totalTurns += r.Turns
		logger.Info("game finished",
			zap.String("game_id", r.GameID),
			zap.String("winner", r.WinnerID),
			zap.Int("turns", r.Turns),
			zap.String("checksum", r.Checksum[:12]),
		)
	}
	logger.Info("simulation complete",
		zap.Int("games", len(results)),
		zap.Any("wins", wins),
		zap.Float64("avg_turns", float64(totalTurns)/float64(len(results))),
	)
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
