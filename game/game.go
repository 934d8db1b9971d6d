package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/plus3/crossing/ecs"
)

// Phase is the session state.
type Phase uint8

const (
	Idle Phase = iota
	Running
	Paused
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Game drives one World through its sessions. It is not safe for concurrent
// use; hosts call it from their frame callback.
type Game struct {
	cfg      Config
	log      *slog.Logger
	rng      *rand.Rand
	renderer Renderer
	audio    Audio
	clock    Clock
	timers   *ecs.Timers

	world     *World
	scheduler *ecs.Scheduler[Entity]
	phase     Phase
	// epoch is bumped on every reset; timers from older epochs do nothing.
	epoch   uint64
	effects map[Kind]*activeEffect
}

// Option configures a Game.
type Option func(*Game)

func WithRenderer(r Renderer) Option {
	return func(g *Game) { g.renderer = r }
}

func WithAudio(a Audio) Option {
	return func(g *Game) { g.audio = a }
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithRand sets the random source used by the spawner.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithSeed makes spawning reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Game) { g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithClock replaces the tick clock used for power-up expiry. The clock
// must run its callbacks on the goroutine that calls Tick.
func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

// New validates cfg and builds an idle game.
func New(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	g := &Game{
		cfg:     cfg,
		timers:  ecs.NewTimers(),
		effects: make(map[Kind]*activeEffect),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = slog.New(slog.DiscardHandler)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.renderer == nil {
		g.renderer = &NopRenderer{}
	}
	if g.audio == nil {
		g.audio = NopAudio{}
	}
	if g.clock == nil {
		g.clock = &tickClock{timers: g.timers, interval: cfg.World.TickInterval}
	}

	g.world = newWorld(&g.cfg)
	g.world.Entities.OnSpawn(func(_ ecs.EntityId, e *Entity) {
		e.Handle = g.renderer.CreateEntityHandle(e.Kind, e.Pos, e.Size)
	})
	g.world.Entities.OnDelete(func(_ ecs.EntityId, e *Entity) {
		g.renderer.DestroyHandle(e.Handle)
	})

	g.scheduler = ecs.NewScheduler(g.world.Entities)
	g.scheduler.Register(&spawnSystem{game: g})
	g.scheduler.Register(&motionSystem{game: g})
	g.scheduler.Register(&collisionSystem{game: g})
	g.scheduler.Register(&progressSystem{game: g})
	g.scheduler.Register(&presentSystem{game: g})

	return g, nil
}

// Start begins a fresh session from Idle or GameOver.
func (g *Game) Start() {
	switch g.phase {
	case Idle, GameOver:
	default:
		g.log.Debug("start ignored", slog.String("phase", g.phase.String()))
		return
	}

	g.reset()
	g.setPhase(Running)
	g.audio.PlaySound(SoundBackgroundLoop)
	g.presentPlayer()
	g.presentWorld()
}

func (g *Game) Pause() {
	if g.phase != Running {
		g.log.Debug("pause ignored", slog.String("phase", g.phase.String()))
		return
	}
	g.setPhase(Paused)
}

func (g *Game) Resume() {
	if g.phase != Paused {
		g.log.Debug("resume ignored", slog.String("phase", g.phase.String()))
		return
	}
	g.setPhase(Running)
}

// TogglePause pauses a running game and resumes a paused one.
func (g *Game) TogglePause() {
	if g.phase == Paused {
		g.Resume()
	} else {
		g.Pause()
	}
}

// Restart abandons the current session, passing through Idle, and starts
// a new one. Only the high score survives.
func (g *Game) Restart() {
	g.recordHighScore()
	g.setPhase(Idle)
	g.Start()
}

// MovePlayer steps the player one move in d. It does nothing unless running.
func (g *Game) MovePlayer(d Direction) {
	if g.phase != Running {
		g.log.Debug("move ignored", slog.String("direction", d.String()), slog.String("phase", g.phase.String()))
		return
	}
	g.world.Player.move(d, g.cfg.World.Width, g.cfg.World.Height)
	g.presentPlayer()
}

// Tick runs one full update: due timers, then spawn, motion, collision,
// progress and presentation. It reports whether the host should keep ticking.
func (g *Game) Tick() bool {
	if g.phase != Running {
		return false
	}
	g.world.Tick++
	g.timers.Advance()
	cont := g.scheduler.Once(g.cfg.World.TickInterval.Seconds())
	return cont && g.phase == Running
}

func (g *Game) gameOver(hit *Entity) {
	g.recordHighScore()
	g.setPhase(GameOver)
	g.audio.PlaySound(SoundCollision)
	g.renderer.ShowGameOverScreen()
	g.presentWorld()
	g.log.Info("game over",
		slog.String("kind", hit.Kind.String()),
		slog.Int("score", g.world.Score),
		slog.Int("level", g.world.Level),
		slog.Uint64("tick", g.world.Tick),
	)
}

// reset starts a new World, keeping the high score, and drops every
// pending power-up timer.
func (g *Game) reset() {
	g.epoch++
	g.cancelEffects()
	g.timers.Reset()
	g.world.reset()
	g.renderer.HideGameOverScreen()
}

func (g *Game) recordHighScore() {
	g.world.HighScore = max(g.world.HighScore, g.world.Score)
}

func (g *Game) setPhase(p Phase) {
	if p == g.phase {
		return
	}
	g.log.Info("phase changed", slog.String("from", g.phase.String()), slog.String("to", p.String()))
	g.phase = p
}

func (g *Game) Phase() Phase {
	return g.phase
}

// Running reports whether the game is ticking.
func (g *Game) Running() bool {
	return g.phase == Running
}

// World exposes the live state. Callers must not mutate it.
func (g *Game) World() *World {
	return g.world
}

func (g *Game) Config() Config {
	return g.cfg
}

func (g *Game) Layout() RoadLayout {
	return g.world.layout
}

// Stats bundles scheduler, storage and timer counters.
type Stats struct {
	Scheduler     *ecs.SchedulerStats
	Entities      ecs.StorageStats
	PendingTimers int
}

func (g *Game) Stats() Stats {
	return Stats{
		Scheduler:     g.scheduler.GetStats(),
		Entities:      g.world.Entities.CollectStats(),
		PendingTimers: g.timers.Pending(),
	}
}
