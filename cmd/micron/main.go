package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/micron/skirmish/internal/component"
	"github.com/micron/skirmish/internal/config"
	"github.com/micron/skirmish/internal/data"
	"github.com/micron/skirmish/internal/scripting"
	"github.com/micron/skirmish/internal/sim"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

var out = message.NewPrinter(language.English)

func printBanner(scenario string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            micron skirmish  v0.1.0        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mscenario:\033[0m %s\n\n", scenario)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

// printStat prints a dotted label/value row; numbers get thousands separators.
func printStat(label string, value any) {
	val := out.Sprintf("%v", value)
	if f, ok := value.(float64); ok {
		val = out.Sprintf("%.1f", f)
	}
	dotsLen := 42 - len(label) - len(val)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), val)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ─────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/sim.toml"
	if p := os.Getenv("MICRON_CONFIG"); p != "" {
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

	if stop := startProfile(cfg.Debug); stop != nil {
		defer stop()
	}

	// 3. Static data
	units, err := data.LoadUnitTable(cfg.Data.UnitList)
	if err != nil {
		return fmt.Errorf("load unit table: %w", err)
	}
	scenario, err := data.LoadScenario(cfg.Data.Scenario)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}

	printBanner(scenario.Name)
	printSection("data")
	printStat("unit templates", units.Count())
	printStat("unit groups", len(scenario.Units))
	printStat("ore patches", len(scenario.Patches))
	printStat("structures", len(scenario.Structures))
	fmt.Println()

	// 4. Scripting
	var lua *scripting.Engine
	if cfg.Scripting.Enabled {
		lua, err = scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer lua.Close()
		printOK("lua formulas loaded from " + cfg.Scripting.Dir)
	}

	// 5. World
	s := sim.New(sim.OptionsFrom(cfg), units, lua, log)
	if err := s.Load(scenario); err != nil {
		return fmt.Errorf("spawn scenario: %w", err)
	}
	printOK(out.Sprintf("%d entities spawned", s.State.Len()))
	fmt.Println()

	// 6. Loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	printSection("running")
	printReady(fmt.Sprintf("tick %s, realtime=%v, max ticks %d", s.TickDuration(), cfg.Sim.Realtime, cfg.Sim.MaxTicks))
	fmt.Println()

	started := time.Now()
	reason := loop(s, cfg.Sim, shutdownCh, log)

	log.Info("simulation stopped",
		zap.String("reason", reason),
		zap.Uint64("ticks", s.Ticks()),
		zap.Duration("wall", time.Since(started)),
	)
	printSummary(s.Summary())
	return nil
}

// loop steps s until max ticks, a decided skirmish or a signal. A world that
// starts without both sides never ends by decision. With realtime the ticker
// paces steps at the tick rate; otherwise it runs flat out and only checks
// for signals between steps.
func loop(s *sim.Sim, cfg config.SimConfig, shutdownCh <-chan os.Signal, log *zap.Logger) string {
	var tickC <-chan time.Time
	if cfg.Realtime {
		ticker := time.NewTicker(s.TickDuration())
		defer ticker.Stop()
		tickC = ticker.C
	}

	sides := s.Summary().Sides
	contested := sides[component.Player].Units > 0 && sides[component.Cpu].Units > 0

	for {
		if cfg.MaxTicks > 0 && s.Ticks() >= uint64(cfg.MaxTicks) {
			return "max ticks"
		}
		if w, ok := s.Winner(); ok && contested {
			return w.String() + " wins"
		}

		if tickC != nil {
			select {
			case <-tickC:
			case sig := <-shutdownCh:
				log.Info("shutdown signal", zap.String("signal", sig.String()))
				return "signal"
			}
		} else {
			select {
			case sig := <-shutdownCh:
				log.Info("shutdown signal", zap.String("signal", sig.String()))
				return "signal"
			default:
			}
		}
		s.Step()
	}
}

func printSummary(sum sim.Summary) {
	printSection("summary")
	printStat("ticks", sum.Tick)
	printStat("live entities", sum.Live)
	for _, owner := range []component.Owner{component.Player, component.Cpu} {
		side := sum.Sides[owner]
		name := strings.ToLower(owner.String())
		printStat(name+" units", side.Units)
		printStat(name+" hp", side.HP)
		printStat(name+" cargo", side.Cargo)
		printStat(name+" units lost", sum.Counters.UnitsLost[owner])
	}
	printStat("entities destroyed", sum.Counters.Destroyed)
	printStat("ore dropped", sum.Counters.OreDropped)
	printStat("orders completed", sum.Counters.OrdersCompleted)
	printStat("targets acquired", sum.Counters.TargetsAcquired)
	fmt.Println()
}

// startProfile starts the [debug] profile, if any, and returns its stop func.
func startProfile(cfg config.DebugConfig) func() {
	var mode func(*profile.Profile)
	switch cfg.Profile {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfileAllocs
	default:
		return nil
	}
	p := profile.Start(mode, profile.ProfilePath(cfg.ProfileDir), profile.NoShutdownHook, profile.Quiet)
	return p.Stop
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
