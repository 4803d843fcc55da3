package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dobrilasunde/Shooting-Gallery/internal/config"
	"github.com/dobrilasunde/Shooting-Gallery/internal/game"
	"github.com/dobrilasunde/Shooting-Gallery/internal/persist"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string, width, height int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m          Shooting Gallery  v0.1.0         \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        headless FPS arena simulation      \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mSession:\033[0m %s \033[90m(%dx%d)\033[0m\n\n", name, width, height)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/gallery.toml"
	if p := os.Getenv("GALLERY_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Game.Name, cfg.Game.ScreenWidth, cfg.Game.ScreenHeight)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Optional session recording
	var opts game.Options
	if cfg.Database.Enabled {
		printSection("Database")

		dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(dbCtx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		version, err := persist.RunMigrations(dbCtx, db.Pool)
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK(fmt.Sprintf("Migrations applied (schema v%d)", version))
		fmt.Println()

		opts.Sessions = persist.NewSessionRepo(db)
		opts.Shots = persist.NewShotRepo(db)
	}

	// 4. Load assets and build the arena
	printSection("Arena")
	g := game.New(cfg, log, opts)
	defer g.Shutdown(context.Background())

	if err := g.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	printStat("Meshes", g.Catalog().Count())
	printStat("Textures", g.Catalog().TextureCount())
	printStat("Level scripts", len(g.Layout().Scripts))
	printStat("Planes", len(g.Scene().Planes))
	printStat("Targets", len(g.Scene().Targets))
	printStat("Point lights", len(g.Layout().Lights.Points))
	printStat("Systems", g.Runner().Len())
	fmt.Println()

	printSection("Ready")
	printReady(fmt.Sprintf("Input source: %s", cfg.Input.Source))
	printReady(fmt.Sprintf("Game loop started (tick: %s)", cfg.Loop.TickInterval))
	fmt.Println()

	// 5. Run until quit, max_frames or a signal
	if err := g.Run(ctx); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	log.Info("gallery stopped", zap.Uint64("frames", g.Frame()))
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
