package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mote2d/mote/internal/config"
	"github.com/mote2d/mote/internal/core/ecs"
	"github.com/mote2d/mote/internal/core/event"
	coresys "github.com/mote2d/mote/internal/core/system"
	"github.com/mote2d/mote/internal/data"
	"github.com/mote2d/mote/internal/persist"
	"github.com/mote2d/mote/internal/physics"
	"github.com/mote2d/mote/internal/sandbox"
	"github.com/mote2d/mote/internal/scenario"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/mote.toml"
	if p := os.Getenv("MOTE_CONFIG"); p != "" {
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

	log.Info("mote starting",
		zap.String("scenario_dir", cfg.Sandbox.ScenarioDir),
		zap.Duration("tick_rate", cfg.Sandbox.TickRate))

	// 3. Optional run recorder: connect and migrate only when a DSN is
	// configured.
	var repo *persist.RunRepo
	var runID int64
	if cfg.Recorder.DSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Recorder, log)
		if err != nil {
			return fmt.Errorf("recorder database: %w", err)
		}
		defer db.Close()

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}

		repo = persist.NewRunRepo(db)
		runID, err = repo.BeginRun(ctx, cfg.Sandbox.ScenarioDir)
		if err != nil {
			return fmt.Errorf("begin run: %w", err)
		}
		log.Info("run recording enabled", zap.Int64("run_id", runID))
	}

	// 4. Build the world and the physics bridge
	world := ecs.NewWorld()
	bus := event.NewBus()
	bridge := physics.Install(world, bus, physics.Config{
		Gravity:    cp.Vector{X: cfg.Space.GravityX, Y: cfg.Space.GravityY},
		Iterations: cfg.Space.Iterations,
	}, log)
	defer bridge.Teardown()

	impact := sandbox.NewImpactHandler(world, bus, log)

	// 5. Load material presets and scenario scripts
	mats := data.EmptyMaterials()
	if cfg.Sandbox.MaterialFile != "" {
		if mats, err = data.LoadMaterials(cfg.Sandbox.MaterialFile); err != nil {
			return fmt.Errorf("load materials: %w", err)
		}
		log.Info("materials loaded", zap.Int("count", mats.Count()))
	}

	scripts := scenario.NewEngine(world, bridge, mats, impact.Fragiles(), log)
	defer scripts.Close()
	if err := scripts.LoadDir(cfg.Sandbox.ScenarioDir); err != nil {
		return fmt.Errorf("load scenarios: %w", err)
	}
	log.Info("world populated", zap.Int("entities", world.Pool().Live()))

	// 6. Register systems
	runner := coresys.NewRunner()
	runner.Register(sandbox.NewEventDispatchSystem(bus))
	runner.Register(physics.NewStepSystem(bridge))
	runner.Register(sandbox.NewCleanupSystem(world, bus))
	if repo != nil {
		runner.Register(sandbox.NewRecorderSystem(bridge, repo, runID, cfg.Recorder.SampleInterval, log))
	}

	// 7. Tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Sandbox.TickRate)
	defer ticker.Stop()

	log.Info("simulation running")

	ticks := 0
loop:
	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Sandbox.TickRate)
			ticks++
			if cfg.Sandbox.MaxTicks > 0 && ticks >= cfg.Sandbox.MaxTicks {
				log.Info("max ticks reached", zap.Int("ticks", ticks))
				break loop
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			break loop
		}
	}

	if repo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.FinishRun(ctx, runID, int64(ticks)); err != nil {
			log.Error("finish run", zap.Error(err))
		}
	}

	log.Info("simulation stopped", zap.Int("ticks", ticks), zap.Int("entities", world.Pool().Live()))
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
