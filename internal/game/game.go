// Package game owns one play session: it loads assets and the arena,
// spawns the scene, wires the frame systems and runs the loop until the
// context is cancelled, the player quits or the frame limit is reached.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/dobrilasunde/Shooting-Gallery/internal/config"
	"github.com/dobrilasunde/Shooting-Gallery/internal/core/clock"
	"github.com/dobrilasunde/Shooting-Gallery/internal/core/event"
	coresys "github.com/dobrilasunde/Shooting-Gallery/internal/core/system"
	"github.com/dobrilasunde/Shooting-Gallery/internal/data"
	"github.com/dobrilasunde/Shooting-Gallery/internal/gameplay"
	"github.com/dobrilasunde/Shooting-Gallery/internal/input"
	"github.com/dobrilasunde/Shooting-Gallery/internal/persist"
	"github.com/dobrilasunde/Shooting-Gallery/internal/render"
	"github.com/dobrilasunde/Shooting-Gallery/internal/scripting"
	"github.com/dobrilasunde/Shooting-Gallery/internal/system"
	"github.com/dobrilasunde/Shooting-Gallery/internal/world"
	"go.uber.org/zap"
)

// renderReportEvery is how often (in frames) draw stats are logged.
const renderReportEvery = 600

// shutdownTimeout bounds the final flush and session close.
const shutdownTimeout = 2 * time.Second

// SessionStore records the start and end of a session.
type SessionStore interface {
	Create(ctx context.Context, name string, startedAt time.Time) (int64, error)
	Finish(ctx context.Context, id int64, t persist.SessionTotals) error
}

// Options overrides collaborators. Zero values fall back to the real
// clock, the input source named in config and no persistence.
type Options struct {
	Clock    clock.Clock
	Input    input.Source
	Sessions SessionStore
	Shots    system.ShotWriter
}

type Game struct {
	cfg  *config.Config
	log  *zap.Logger
	opts Options

	catalog  *data.MeshCatalog
	layout   *data.Layout
	engine   *scripting.Engine
	renderer *render.Renderer
	bus      *event.Bus
	world    *world.World
	scene    *gameplay.Scene

	runner    *coresys.Runner
	scheduler *clock.Scheduler
	input     *system.InputSystem
	stats     *system.StatsSystem
	persist   *system.PersistenceSystem
	sessionID int64

	initialized bool
}

func New(cfg *config.Config, log *zap.Logger, opts Options) *Game {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	return &Game{cfg: cfg, log: log, opts: opts}
}

// Initialize loads every asset and builds the scene. On error the game
// must not be run; Shutdown still releases what was acquired.
func (g *Game) Initialize(ctx context.Context) error {
	var err error
	if g.catalog, err = data.LoadMeshCatalog(g.cfg.Assets.MeshCatalog); err != nil {
		return err
	}
	if g.layout, err = data.LoadLayout(g.cfg.Assets.SceneLayout); err != nil {
		return err
	}

	if g.engine, err = scripting.NewEngine(g.cfg.Assets.ScriptsDir, g.log); err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	for _, name := range g.layout.Scripts {
		lv, err := g.engine.RunLevel(name)
		if err != nil {
			return err
		}
		g.layout.Planes = append(g.layout.Planes, lv.Planes...)
		g.layout.Targets = append(g.layout.Targets, lv.Targets...)
	}

	g.renderer = render.New(g.log, g.catalog)
	if err := g.renderer.Initialize(float32(g.cfg.Game.ScreenWidth), float32(g.cfg.Game.ScreenHeight)); err != nil {
		return err
	}

	g.bus = event.NewBus()
	g.world = world.New(g.log, g.renderer, g.bus)
	g.scene = gameplay.Build(g.world, g.renderer, g.layout, gameplay.Settings{
		Player: g.cfg.Player,
		Ball:   g.cfg.Ball,
	})

	src, err := g.inputSource()
	if err != nil {
		return err
	}

	g.input = system.NewInputSystem(g.world, src, g.log)
	g.stats = system.NewStatsSystem(g.bus, g.log)
	g.runner = coresys.NewRunner()
	g.runner.Register(g.input)
	g.runner.Register(system.NewEventDispatchSystem(g.bus))
	g.runner.Register(system.NewActorSystem(g.world))
	g.runner.Register(system.NewSpliceSystem(g.world))
	g.runner.Register(system.NewCleanupSystem(g.world))
	g.runner.Register(system.NewRenderSystem(g.renderer, g.log, renderReportEvery))
	g.runner.Register(g.stats)

	if g.opts.Sessions != nil && g.opts.Shots != nil {
		id, err := g.opts.Sessions.Create(ctx, g.cfg.Game.Name, g.opts.Clock.Now())
		if err != nil {
			return err
		}
		g.sessionID = id
		g.persist = system.NewPersistenceSystem(g.bus, g.opts.Shots, id, g.log, g.cfg.Database.FlushInterval)
		g.runner.Register(g.persist)
		g.log.Info("session recording", zap.Int64("session", id))
	}

	g.scheduler = clock.NewScheduler(g.opts.Clock, g.cfg.Loop.TickInterval, g.cfg.Loop.MaxDelta)
	g.initialized = true
	return nil
}

func (g *Game) inputSource() (input.Source, error) {
	if g.opts.Input != nil {
		return g.opts.Input, nil
	}
	switch g.cfg.Input.Source {
	case "idle":
		return input.Idle{}, nil
	default:
		if err := g.engine.Load(g.cfg.Input.Script); err != nil {
			return nil, fmt.Errorf("autopilot: %w", err)
		}
		return scripting.NewScriptedInput(g.engine), nil
	}
}

// Run drives frames until ctx is cancelled, input asks to quit or
// max_frames is reached. Cancellation is a normal exit.
func (g *Game) Run(ctx context.Context) error {
	if !g.initialized {
		return fmt.Errorf("game: run before initialize")
	}
	g.scheduler.Reset()
	for {
		select {
		case <-ctx.Done():
			g.log.Info("loop stopped", zap.String("reason", "context"), zap.Uint64("frame", g.input.Frame()))
			return nil
		default:
		}

		g.runner.Tick(g.scheduler.Next())

		if g.input.QuitRequested() {
			g.log.Info("loop stopped", zap.String("reason", "quit"), zap.Uint64("frame", g.input.Frame()))
			return nil
		}
		if limit := g.cfg.Game.MaxFrames; limit > 0 && g.input.Frame() >= limit {
			g.log.Info("loop stopped", zap.String("reason", "max_frames"), zap.Uint64("frame", g.input.Frame()))
			return nil
		}
	}
}

// Shutdown flushes persistence, logs the session summary and tears the
// scene down. Safe to call after a failed Initialize.
func (g *Game) Shutdown(ctx context.Context) {
	if g.bus != nil && g.bus.Queued() > 0 {
		// The last frame's events have no next PreUpdate to deliver them.
		n := g.bus.Queued()
		g.bus.SwapBuffers()
		g.bus.DispatchAll()
		g.log.Debug("delivered final frame events", zap.Int("events", n))
	}
	if g.persist != nil {
		fctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		g.persist.Flush(fctx)
		st := g.stats.Stats()
		if err := g.opts.Sessions.Finish(fctx, g.sessionID, persist.SessionTotals{
			Frames:    st.Frames,
			Shots:     st.Shots,
			AimedHits: st.AimedHits,
			BallHits:  st.BallHits,
		}); err != nil {
			g.log.Error("finish session", zap.Error(err))
		}
	}
	if g.stats != nil {
		g.stats.LogSummary()
	}
	if g.world != nil {
		g.world.Shutdown()
	}
	if g.renderer != nil {
		g.renderer.Shutdown()
	}
	if g.engine != nil {
		g.engine.Close()
		g.engine = nil
	}
	g.initialized = false
}

func (g *Game) World() *world.World        { return g.world }
func (g *Game) Scene() *gameplay.Scene     { return g.scene }
func (g *Game) Renderer() *render.Renderer { return g.renderer }
func (g *Game) Layout() *data.Layout       { return g.layout }
func (g *Game) Stats() system.Stats        { return g.stats.Stats() }
func (g *Game) Frame() uint64              { return g.input.Frame() }
func (g *Game) Catalog() *data.MeshCatalog { return g.catalog }
func (g *Game) Runner() *coresys.Runner    { return g.runner }
