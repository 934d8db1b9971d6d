package game_test

import (
	"testing"
	"time"

	"github.com/plus3/crossing/ecs"
	"github.com/plus3/crossing/game"
	"github.com/stretchr/testify/require"
)

// recordingRenderer remembers every call the game makes.
type recordingRenderer struct {
	next      game.Handle
	live      map[game.Handle]game.Kind
	destroyed map[game.Handle]int
	moves     map[game.Handle]int

	playerPos  game.Vec2
	invincible bool

	tod       game.TimeOfDay
	score     int
	highScore int
	level     int

	gameOverShown bool
	gameOverCalls int
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		live:      make(map[game.Handle]game.Kind),
		destroyed: make(map[game.Handle]int),
		moves:     make(map[game.Handle]int),
	}
}

func (r *recordingRenderer) CreateEntityHandle(kind game.Kind, pos, size game.Vec2) game.Handle {
	r.next++
	r.live[r.next] = kind
	return r.next
}

func (r *recordingRenderer) UpdateHandlePosition(h game.Handle, pos game.Vec2) {
	r.moves[h]++
}

func (r *recordingRenderer) DestroyHandle(h game.Handle) {
	r.destroyed[h]++
	delete(r.live, h)
}

func (r *recordingRenderer) SetPlayerVisualState(pos game.Vec2, invincible bool) {
	r.playerPos = pos
	r.invincible = invincible
}

func (r *recordingRenderer) SetWorldVisualState(tod game.TimeOfDay, score, highScore, level int) {
	r.tod, r.score, r.highScore, r.level = tod, score, highScore, level
}

func (r *recordingRenderer) ShowGameOverScreen() {
	r.gameOverShown = true
	r.gameOverCalls++
}

func (r *recordingRenderer) HideGameOverScreen() {
	r.gameOverShown = false
}

type recordingAudio struct {
	played []game.Sound
}

func (a *recordingAudio) PlaySound(s game.Sound) {
	a.played = append(a.played, s)
}

// manualClock hands scheduled callbacks to the test instead of running them.
type manualClock struct {
	scheduled []*manualTimer
}

type manualTimer struct {
	d         time.Duration
	fn        func()
	cancelled bool
}

func (c *manualClock) After(d time.Duration, fn func()) func() bool {
	t := &manualTimer{d: d, fn: fn}
	c.scheduled = append(c.scheduled, t)
	return func() bool {
		was := t.cancelled
		t.cancelled = true
		return !was
	}
}

// fireAll runs every callback, including cancelled ones.
func (c *manualClock) fireAll() {
	for _, t := range c.scheduled {
		t.fn()
	}
}

// quietConfig never spawns anything on its own.
func quietConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.Spawn.VehicleChance = 0
	cfg.PowerUps.Chance = 0
	return cfg
}

func newTestGame(t *testing.T, cfg game.Config, opts ...game.Option) (*game.Game, *recordingRenderer) {
	t.Helper()
	r := newRecordingRenderer()
	opts = append([]game.Option{game.WithRenderer(r), game.WithSeed(1)}, opts...)
	g, err := game.New(cfg, opts...)
	require.NoError(t, err)
	return g, r
}

func spawn(g *game.Game, e game.Entity) ecs.EntityId {
	return g.World().Entities.Spawn(e)
}

// vehicleAt builds a vehicle in the first lane.
func vehicleAt(g *game.Game, x float64, dir, speed float64) game.Entity {
	lane := g.Layout().Lanes[0]
	return game.Entity{
		Kind:  game.KindCar,
		Pos:   game.Vec2{X: x, Y: lane.Y + 2},
		Size:  game.Vec2{X: 60, Y: lane.Height - 4},
		Dir:   dir,
		Speed: speed,
	}
}

// onPlayer builds an entity of kind sitting on top of the player.
func onPlayer(g *game.Game, kind game.Kind) game.Entity {
	p := g.World().Player
	return game.Entity{
		Kind: kind,
		Pos:  p.Pos,
		Size: game.Vec2{X: 24, Y: 24},
		Lane: -1,
	}
}
