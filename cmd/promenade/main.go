// Command promenade runs the walking-demo world headlessly. It stands in
// for the render loop: it drives the system groups at a fixed tick rate and
// logs the lifecycle and interaction events a real UI would render.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/promenade/engine/internal/component"
	"github.com/promenade/engine/internal/config"
	"github.com/promenade/engine/internal/core/ecs"
	"github.com/promenade/engine/internal/core/event"
	coresys "github.com/promenade/engine/internal/core/system"
	"github.com/promenade/engine/internal/scene"
	"github.com/promenade/engine/internal/scripting"
	"github.com/promenade/engine/internal/system"
	"github.com/promenade/engine/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "config/engine.toml", "path to engine config")
	frames := flag.Uint("frames", 0, "stop after this many frames (0 = run until signal)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// Core wiring: factory, bus, world, manager. Everything is injected
	// explicitly; there is no shared global world.
	factory := ecs.NewFactory(cfg.Pools.MaxSize, log)
	component.RegisterDefaults(factory)
	bus := event.NewBus(log)
	w := ecs.NewWorld(factory, bus, log)
	mgr := coresys.NewManager(w, log)
	em := world.NewEntityManager(w, log)

	lua, err := scripting.NewEngine(cfg.Scripts.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer lua.Close()

	manifest, err := scene.Load(cfg.Scene.Manifest)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	stats, err := manifest.Populate(em)
	if err != nil {
		return fmt.Errorf("populate scene: %w", err)
	}
	log.Info("scene populated",
		zap.Int("npcs", stats.NPCs),
		zap.Int("billboards", stats.Billboards),
		zap.Int("entities", w.EntityCount()))

	aimPlayer(w, manifest)

	mgr.RegisterSystem(system.NewMovement(), "simulation")
	mgr.RegisterSystem(system.NewInteraction(lua, log), "interaction")
	mgr.RegisterSystem(system.NewBillboardProximity(log), "interaction")

	// The UI collaborator's seat: mirror interaction events into the log.
	bus.On(system.EventNPCGreeting, func(ev event.Event) {
		log.Info("dialogue panel", zap.Any("npc", ev.Data["npc"]), zap.Any("line", ev.Data["line"]))
	})
	bus.On(system.EventBillboardRead, func(ev event.Event) {
		log.Info("billboard panel", zap.Any("title", ev.Data["title"]))
	})

	bus.Emit(event.Event{Type: ecs.EventWorldInitialized})

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Engine.TickRate.Duration)
	defer ticker.Stop()

	dt := cfg.Engine.TickRate.Seconds()
	log.Info("engine loop started",
		zap.Duration("tick", cfg.Engine.TickRate.Duration),
		zap.Strings("groups", cfg.Engine.Groups))

	var frame uint64
	for {
		select {
		case <-ticker.C:
			for _, group := range cfg.Engine.Groups {
				mgr.UpdateSystemGroup(group, dt)
			}
			frame++
			if *frames > 0 && frame >= uint64(*frames) {
				log.Info("frame budget reached", zap.Uint64("frames", frame))
				return shutdown(log, mgr, w, factory, frame, dt)
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return shutdown(log, mgr, w, factory, frame, dt)
		}
	}
}

// aimPlayer points the player at the first NPC so a headless run actually
// walks somewhere. A real input collaborator overwrites this velocity every
// frame.
func aimPlayer(w *ecs.World, manifest *scene.Manifest) {
	if len(manifest.NPCs) == 0 || manifest.Player.Speed <= 0 {
		return
	}
	players := w.QueryEntities(ecs.Query{All: []ecs.Kind{ecs.KindTransform, ecs.KindVelocity}, Tags: []string{"player"}})
	if len(players) == 0 {
		return
	}
	t := players[0].Component(ecs.KindTransform).(*component.Transform)
	v := players[0].Component(ecs.KindVelocity).(*component.Velocity)
	dx := manifest.NPCs[0].X - t.X
	dz := manifest.NPCs[0].Z - t.Z
	dist := math.Hypot(dx, dz)
	if dist == 0 {
		return
	}
	v.DX = dx / dist * manifest.Player.Speed
	v.DZ = dz / dist * manifest.Player.Speed
}

func shutdown(log *zap.Logger, mgr *coresys.Manager, w *ecs.World, factory *ecs.Factory, frame uint64, dt float64) error {
	log.Info("session stats",
		zap.Uint64("frames", frame),
		zap.Float64("sim_seconds", float64(frame)*dt),
		zap.Int("entities", w.EntityCount()),
		zap.Int("systems", len(w.Systems())))
	mgr.Destroy()
	w.Destroy()
	factory.ClearPools()
	log.Info("engine stopped")
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
