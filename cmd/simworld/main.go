package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/caolo-sim/engine/internal/archetype"
	"github.com/caolo-sim/engine/internal/config"
	"github.com/caolo-sim/engine/internal/executor"
	"github.com/caolo-sim/engine/internal/mapgen"
	"github.com/caolo-sim/engine/internal/persist"
	"github.com/caolo-sim/engine/internal/rpc"
	"github.com/caolo-sim/engine/internal/scripting"
	"github.com/caolo-sim/engine/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(queenTag string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             caolo simworld                \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      deterministic hex-grid bot sim       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mrun:\033[0m %s\n\n", queenTag)
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

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	cfgPath := "config/simworld.toml"
	if p := os.Getenv(config.EnvOverride); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.World.QueenTag)

	w := world.New(cfg.World.RoomRadius, log)

	var db *persist.DB
	if cfg.Database.DSN != "" {
		printSection("persistence")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err = persist.NewDB(ctx, cfg.Database, log)
		cancel()
		if err != nil {
			log.Warn("persistence backend unavailable, running in-memory only", zap.Error(err))
			db = nil
		} else {
			if err := persist.RunMigrations(context.Background(), db.Pool); err != nil {
				db.Close()
				return fmt.Errorf("migrations: %w", err)
			}
			printOK("snapshot store migrated")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			snap, found, err := persist.Latest(ctx, db, cfg.World.QueenTag, log)
			cancel()
			if err != nil {
				db.Close()
				return fmt.Errorf("load latest snapshot: %w", err)
			}
			if found {
				persist.Restore(w, snap)
				printOK(fmt.Sprintf("resumed from snapshot at tick %d", w.Tick()))
			}
			fmt.Println()
		}
	}

	printSection("world generation")
	mapCfg := mapgen.Config{
		MinBridgeLen:  cfg.MapGen.MinBridgeLen,
		MaxBridgeLen:  cfg.MapGen.MaxBridgeLen,
		BridgeChance:  cfg.MapGen.BridgeChance,
		ChancePlain:   cfg.MapGen.ChancePlain,
		ChanceWall:    cfg.MapGen.ChanceWall,
		PlainDilation: cfg.MapGen.PlainDilation,
	}
	if err := mapCfg.Validate(); err != nil {
		return fmt.Errorf("map_gen config: %w", err)
	}
	if w.Tick() == 0 {
		if err := mapgen.Overworld(w, cfg.World.WorldRadius, uint64(cfg.MapGen.Seed), mapCfg); err != nil {
			return fmt.Errorf("generate overworld: %w", err)
		}
	}
	printStat("rooms generated", w.Rooms.Len())
	fmt.Println()

	printSection("scripting")
	scripts := scripting.NewStore()
	engine := scripting.NewEngine(cfg.Execution.ExecutionLimit, log)
	printOK("lua host functions registered")

	// proc satisfies rpc.CommandProcessor and rpc.WorldStream; a transport
	// layer (out of scope here) wraps it to serve spec §6.1/§6.2 over the
	// wire. Keeping a reference avoids an unused-variable error while the
	// simulation core itself drives the tick loop below.
	proc := rpc.NewProcessor(w, scripts)
	log.Debug("command processor ready", zap.Int("populated_rooms", len(proc.PopulatedRooms())))
	fmt.Println()

	arch := archetype.BasicBot
	exec := executor.New(w, engine, scripts, arch, cfg.Execution, log)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printSection("ready")
	printReady(fmt.Sprintf("tick target %s, execution limit %d, worker pool %d",
		cfg.Execution.TargetTick, cfg.Execution.ExecutionLimit, executor.WorkerPoolSize(cfg.Execution.WorkerPoolSize)))
	fmt.Println()

	for {
		select {
		case <-shutdownCtx.Done():
			log.Info("shutdown signal received, saving final snapshot")
			if db != nil {
				snap := persist.Capture(w)
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				if err := persist.Save(ctx, db, cfg.World.QueenTag, snap); err != nil {
					log.Error("failed to save final snapshot", zap.Error(err))
				}
				cancel()
				db.Close()
			}
			log.Info("simworld stopped", zap.Int64("final_tick", w.Tick()))
			return nil
		default:
			if err := exec.Tick(shutdownCtx); err != nil {
				log.Error("tick error", zap.Error(err))
			}
		}
	}
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
