package game_test

import (
	"math"
	"testing"

	"github.com/plus3/crossing/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Scoring.LevelSize = 0

	g, err := game.New(cfg)
	require.ErrorIs(t, err, game.ErrInvalidConfig)
	assert.Nil(t, g)
}

func TestPlayerMovesAndClamps(t *testing.T) {
	g, r := newTestGame(t, quietConfig())
	g.Start()

	p := &g.World().Player
	require.Equal(t, game.Vec2{X: 180, Y: 10}, p.Pos)

	for range 5 {
		g.MovePlayer(game.DirRight)
	}
	assert.Equal(t, 230.0, p.Pos.X)
	assert.Equal(t, p.Pos, r.playerPos)

	for range 20 {
		g.MovePlayer(game.DirRight)
	}
	assert.Equal(t, 360.0, p.Pos.X)

	for range 5 {
		g.MovePlayer(game.DirDown)
	}
	assert.Equal(t, 0.0, p.Pos.Y)

	for range 60 {
		g.MovePlayer(game.DirLeft)
	}
	assert.Equal(t, 0.0, p.Pos.X)
}

func TestCrossingsRaiseScoreAndLevel(t *testing.T) {
	cfg, ok := game.Preset("classic")
	require.True(t, ok)
	cfg.Spawn.VehicleChance = 0

	g, r := newTestGame(t, cfg)
	g.Start()
	w := g.World()

	lastScore := 0
	for range 5 {
		w.Player.Pos.Y = cfg.World.Height - cfg.Player.Height
		require.True(t, g.Tick())

		assert.GreaterOrEqual(t, w.Score, lastScore)
		assert.Equal(t, w.Score/cfg.Scoring.LevelSize+1, w.Level)
		assert.Equal(t, cfg.Player.StartMargin, w.Player.Pos.Y)
		lastScore = w.Score
	}

	assert.Equal(t, 5, w.Score)
	assert.Equal(t, 2, w.Level)
	assert.Equal(t, 5, w.Crossings)
	assert.Equal(t, 5, r.score)
	assert.Equal(t, 2, r.level)
}

func TestSpeedScalingEveryFiveCrossings(t *testing.T) {
	g, _ := newTestGame(t, quietConfig())
	g.Start()
	w := g.World()

	for i := range 10 {
		w.Player.Pos.Y = g.Config().World.Height - w.Player.Size.Y
		g.Tick()
		if i == 4 {
			assert.InDelta(t, 1.1, w.SpeedMultiplier, 1e-9)
		}
	}
	assert.InDelta(t, 1.2, w.SpeedMultiplier, 1e-9)
	assert.Equal(t, 100, w.Score)
	assert.Equal(t, 3, w.Level)
}

func TestInvertedGoalEdge(t *testing.T) {
	cfg, ok := game.Preset("inverted")
	require.True(t, ok)
	cfg.Spawn.VehicleChance = 0
	cfg.PowerUps.Chance = 0

	g, _ := newTestGame(t, cfg)
	g.Start()
	w := g.World()

	start := cfg.World.Height - cfg.Player.Height - cfg.Player.StartMargin
	require.Equal(t, start, w.Player.Pos.Y)

	w.Player.Pos.Y = 0
	g.Tick()
	assert.Equal(t, cfg.Scoring.Award, w.Score)
	assert.Equal(t, start, w.Player.Pos.Y)
}

func TestVehicleLeavesAfterCrossingTheWorld(t *testing.T) {
	g, r := newTestGame(t, quietConfig())
	g.Start()

	width := g.Config().World.Width
	id := spawn(g, vehicleAt(g, width, -1, 2))
	handle := g.World().Entities.Get(id).Handle

	ticks := int(width+60) / 2
	for range ticks - 1 {
		require.True(t, g.Tick())
	}
	assert.True(t, g.World().Entities.Has(id))

	require.True(t, g.Tick())
	assert.False(t, g.World().Entities.Has(id))
	assert.Equal(t, 1, r.destroyed[handle])
	assert.Zero(t, g.World().Entities.Len())
}

func TestVehicleExitsAfterCeilTicks(t *testing.T) {
	for _, speed := range []float64{0.7, 1.3, 2, 3, 4.4} {
		g, _ := newTestGame(t, quietConfig())
		g.Start()

		width := g.Config().World.Width
		id := spawn(g, vehicleAt(g, -60, 1, speed))
		ticks := int(math.Ceil((width + 120) / speed))

		for range ticks - 1 {
			require.True(t, g.Tick())
		}
		assert.True(t, g.World().Entities.Has(id), "speed %v gone early", speed)

		require.True(t, g.Tick())
		assert.False(t, g.World().Entities.Has(id), "speed %v still present", speed)
	}
}

func TestRemovalDuringMotionKeepsOtherEntities(t *testing.T) {
	g, r := newTestGame(t, quietConfig())
	g.Start()
	width := g.Config().World.Width

	var leaving, staying []game.Entity
	for i := range 20 {
		if i%2 == 0 {
			leaving = append(leaving, vehicleAt(g, width+60-3, 1, 3))
		} else {
			staying = append(staying, vehicleAt(g, float64(i*10), 1, 3))
		}
	}

	before := make(map[game.Handle]float64)
	for i := range 20 {
		var e game.Entity
		if i%2 == 0 {
			e = leaving[i/2]
		} else {
			e = staying[i/2]
		}
		id := spawn(g, e)
		before[g.World().Entities.Get(id).Handle] = e.Pos.X
	}

	require.True(t, g.Tick())

	assert.Equal(t, len(staying), g.World().Entities.Len())
	for _, e := range g.World().Entities.Iter() {
		assert.Equal(t, before[e.Handle]+3, e.Pos.X)
		assert.Equal(t, 1, r.moves[e.Handle])
	}
	for _, n := range r.destroyed {
		assert.Equal(t, 1, n)
	}
	assert.Len(t, r.destroyed, len(leaving))
}

func TestVehicleHitEndsSession(t *testing.T) {
	audio := &recordingAudio{}
	g, r := newTestGame(t, quietConfig(), game.WithAudio(audio))
	g.Start()
	w := g.World()
	w.Score = 30

	hit := onPlayer(g, game.KindTruck)
	spawn(g, hit)

	assert.False(t, g.Tick())
	assert.Equal(t, game.GameOver, g.Phase())
	assert.False(t, g.Running())
	assert.True(t, r.gameOverShown)
	assert.Equal(t, 1, r.gameOverCalls)
	assert.Equal(t, 30, w.HighScore)
	assert.Contains(t, audio.played, game.SoundCollision)

	tick := w.Tick
	pos := w.Player.Pos
	assert.False(t, g.Tick())
	g.MovePlayer(game.DirUp)
	assert.Equal(t, tick, w.Tick)
	assert.Equal(t, pos, w.Player.Pos)
	assert.Equal(t, 1, r.gameOverCalls)
}

func TestInvinciblePlayerSurvivesVehicles(t *testing.T) {
	g, r := newTestGame(t, quietConfig())
	g.Start()
	g.World().Player.Invincible = true

	for _, kind := range []game.Kind{game.KindCar, game.KindTruck, game.KindMotorcycle} {
		spawn(g, onPlayer(g, kind))
	}

	for range 10 {
		require.True(t, g.Tick())
	}
	assert.Equal(t, game.Running, g.Phase())
	assert.False(t, r.gameOverShown)
}

func TestShieldLastsItsDuration(t *testing.T) {
	g, r := newTestGame(t, quietConfig())
	g.Start()
	w := g.World()

	spawn(g, onPlayer(g, game.KindShield))
	require.True(t, g.Tick())
	pickedUp := w.Tick
	require.True(t, w.Player.Invincible)
	assert.True(t, r.invincible)
	assert.Equal(t, []game.Kind{game.KindShield}, g.ActivePowerUps())

	for w.Tick < pickedUp+299 {
		require.True(t, g.Tick())
		require.True(t, w.Player.Invincible, "tick %d", w.Tick)
	}

	require.True(t, g.Tick())
	assert.Equal(t, pickedUp+300, w.Tick)
	assert.False(t, w.Player.Invincible)
	assert.Empty(t, g.ActivePowerUps())
}

func TestPowerUpIsTakenOnce(t *testing.T) {
	audio := &recordingAudio{}
	g, r := newTestGame(t, quietConfig(), game.WithAudio(audio))
	g.Start()
	w := g.World()

	id := spawn(g, onPlayer(g, game.KindSpeedBoost))
	handle := w.Entities.Get(id).Handle

	for range 5 {
		require.True(t, g.Tick())
	}
	assert.False(t, w.Entities.Has(id))
	assert.Equal(t, 1, r.destroyed[handle])
	assert.Equal(t, g.Config().Player.Step+g.Config().PowerUps.Boost, w.Player.Speed)

	pickups := 0
	for _, s := range audio.played {
		if s == game.SoundPowerUp {
			pickups++
		}
	}
	assert.Equal(t, 1, pickups)
}

func TestRepeatedBoostDoesNotStack(t *testing.T) {
	g, _ := newTestGame(t, quietConfig())
	g.Start()
	w := g.World()
	step := g.Config().Player.Step
	boost := g.Config().PowerUps.Boost

	spawn(g, onPlayer(g, game.KindSpeedBoost))
	g.Tick()
	for range 100 {
		g.Tick()
	}
	spawn(g, onPlayer(g, game.KindSpeedBoost))
	g.Tick()
	assert.Equal(t, step+boost, w.Player.Speed)

	// the second pickup restarted the timer, so the first expiry passes unnoticed
	for range 250 {
		g.Tick()
	}
	assert.Equal(t, step+boost, w.Player.Speed)

	for range 50 {
		g.Tick()
	}
	assert.Equal(t, step, w.Player.Speed)
}

func TestMultiplicativeBoostReverts(t *testing.T) {
	cfg := quietConfig()
	cfg.PowerUps.BoostMode = game.BoostMultiply
	g, _ := newTestGame(t, cfg)
	g.Start()
	w := g.World()

	spawn(g, onPlayer(g, game.KindSpeedBoost))
	g.Tick()
	assert.Equal(t, 2*cfg.Player.Step, w.Player.Speed)

	for range 300 {
		g.Tick()
	}
	assert.Equal(t, cfg.Player.Step, w.Player.Speed)
}

func TestSlowTimeRestoresSurvivingVehicles(t *testing.T) {
	g, _ := newTestGame(t, quietConfig())
	g.Start()
	w := g.World()
	width := g.Config().World.Width

	// survives the first tick and leaves on the next one
	short := spawn(g, vehicleAt(g, width+60-6, 1, 4))
	long := spawn(g, vehicleAt(g, 0, 1, 0.25))
	spawn(g, onPlayer(g, game.KindSlowTime))

	g.Tick()
	require.True(t, w.Entities.Has(short))
	assert.Equal(t, 2.0, w.Entities.Get(short).Speed)
	assert.Equal(t, 0.125, w.Entities.Get(long).Speed)

	g.Tick()
	require.False(t, w.Entities.Has(short))

	for range 299 {
		g.Tick()
	}
	assert.Equal(t, 0.25, w.Entities.Get(long).Speed)
}

func TestStateMachine(t *testing.T) {
	g, r := newTestGame(t, quietConfig())
	assert.Equal(t, game.Idle, g.Phase())
	assert.False(t, g.Tick())

	g.Pause()
	assert.Equal(t, game.Idle, g.Phase())

	g.Start()
	assert.Equal(t, game.Running, g.Phase())

	g.Start()
	assert.Equal(t, game.Running, g.Phase())

	g.World().Player.Pos.X = 100
	g.Pause()
	assert.Equal(t, game.Paused, g.Phase())
	assert.False(t, g.Tick())
	g.MovePlayer(game.DirRight)
	assert.Equal(t, 100.0, g.World().Player.Pos.X)

	g.TogglePause()
	assert.Equal(t, game.Running, g.Phase())
	assert.Equal(t, 100.0, g.World().Player.Pos.X)
	g.TogglePause()
	assert.Equal(t, game.Paused, g.Phase())
	g.Resume()
	assert.True(t, g.Tick())

	spawn(g, onPlayer(g, game.KindCar))
	assert.False(t, g.Tick())
	assert.Equal(t, game.GameOver, g.Phase())

	g.Resume()
	assert.Equal(t, game.GameOver, g.Phase())

	g.Restart()
	assert.Equal(t, game.Running, g.Phase())
	assert.False(t, r.gameOverShown)
	assert.Zero(t, g.World().Entities.Len())
	assert.Empty(t, r.live)
}

func TestStartAfterGameOverActsAsRestart(t *testing.T) {
	g, r := newTestGame(t, quietConfig())
	g.Start()
	w := g.World()
	w.Score = 40
	w.Player.Pos.X = 0

	spawn(g, vehicleAt(g, 100, 1, 1))
	spawn(g, onPlayer(g, game.KindCar))
	require.False(t, g.Tick())

	g.Start()
	assert.Equal(t, game.Running, g.Phase())
	assert.Zero(t, w.Score)
	assert.Equal(t, 1, w.Level)
	assert.Equal(t, 40, w.HighScore)
	assert.Zero(t, w.Entities.Len())
	assert.Empty(t, r.live)
	assert.False(t, r.gameOverShown)
	assert.Equal(t, 40, r.highScore)
}

func TestRestartKeepsBestScore(t *testing.T) {
	g, _ := newTestGame(t, quietConfig())
	g.Start()
	g.World().Score = 70
	g.Restart()
	g.World().Score = 20
	g.Restart()

	assert.Equal(t, 70, g.World().HighScore)
	assert.Zero(t, g.World().Score)
}

func TestRestartCancelsPendingEffects(t *testing.T) {
	clock := &manualClock{}
	g, _ := newTestGame(t, quietConfig(), game.WithClock(clock))
	g.Start()
	w := g.World()

	spawn(g, onPlayer(g, game.KindShield))
	g.Tick()
	require.True(t, w.Player.Invincible)
	require.Len(t, clock.scheduled, 1)

	g.Restart()
	assert.True(t, clock.scheduled[0].cancelled)
	assert.False(t, w.Player.Invincible)
	assert.Empty(t, g.ActivePowerUps())

	spawn(g, onPlayer(g, game.KindSpeedBoost))
	g.Tick()
	require.Len(t, clock.scheduled, 2)

	// a stale shield revert must not touch the new session
	w.Player.Invincible = true
	clock.scheduled[0].fn()
	assert.True(t, w.Player.Invincible)

	clock.scheduled[1].fn()
	assert.Equal(t, g.Config().Player.Step, w.Player.Speed)
}

func TestRestartDropsTickTimers(t *testing.T) {
	g, _ := newTestGame(t, quietConfig())
	g.Start()

	spawn(g, onPlayer(g, game.KindShield))
	g.Tick()
	require.Equal(t, 1, g.Stats().PendingTimers)

	g.Restart()
	assert.Zero(t, g.Stats().PendingTimers)
}

func TestDayNightCycle(t *testing.T) {
	cfg := quietConfig()
	cfg.World.DayNightPeriod = 3
	g, r := newTestGame(t, cfg)
	g.Start()

	want := []game.TimeOfDay{game.Day, game.Day, game.Night, game.Night, game.Night, game.Day}
	for i, tod := range want {
		g.Tick()
		assert.Equal(t, tod, g.World().TimeOfDay, "tick %d", i+1)
		assert.Equal(t, tod, r.tod)
	}
}

func TestRandomSpawningStaysConsistent(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Spawn.VehicleChance = 0.2
	cfg.PowerUps.Enabled = false
	g, r := newTestGame(t, cfg, game.WithSeed(42))
	g.Start()
	g.World().Player.Invincible = true

	for range 2000 {
		require.True(t, g.Tick())
	}

	assert.Len(t, r.live, g.World().Entities.Len())
	for _, e := range g.World().Entities.Iter() {
		_, ok := r.live[e.Handle]
		assert.True(t, ok)
	}
	for h, n := range r.destroyed {
		assert.Equal(t, 1, n, "handle %d", h)
	}

	stats := g.Stats()
	require.NotNil(t, stats.Scheduler)
	assert.Equal(t, 5, stats.Scheduler.SystemCount)
	assert.Equal(t, uint64(2000), stats.Scheduler.Frames)
	assert.Equal(t, g.World().Entities.Len(), stats.Entities.Live)
}

func TestSnapshot(t *testing.T) {
	g, _ := newTestGame(t, quietConfig())
	g.Start()
	g.World().Score = 10
	g.World().HighScore = 5
	spawn(g, vehicleAt(g, 100, -1, 2))

	s := g.Snapshot()
	assert.Equal(t, game.Running, s.Phase)
	assert.Equal(t, 10, s.HighScore)
	require.Len(t, s.Entities, 1)
	assert.Equal(t, game.KindCar, s.Entities[0].Kind)
	assert.Equal(t, -1.0, s.Entities[0].Dir)

	s.Entities[0].Pos.X = 0
	for _, e := range g.World().Entities.Iter() {
		assert.Equal(t, 100.0, e.Pos.X)
	}
}
