package game

import (
	"log/slog"

	"github.com/plus3/crossing/ecs"
)

// progressSystem scores lane crossings and drives the day/night cycle.
type progressSystem struct {
	game *Game
}

func (s *progressSystem) Execute(frame *ecs.UpdateFrame[Entity]) {
	g := s.game
	w := g.world

	if w.atGoal() {
		g.crossLane()
	}

	if w.Tick%uint64(g.cfg.World.DayNightPeriod) == 0 {
		if w.TimeOfDay == Day {
			w.TimeOfDay = Night
		} else {
			w.TimeOfDay = Day
		}
		g.log.Debug("time of day changed", slog.String("now", w.TimeOfDay.String()), slog.Uint64("tick", w.Tick))
	}
}

// crossLane awards the crossing, recomputes the level and sends the player
// back to the start edge.
func (g *Game) crossLane() {
	w := g.world
	w.Score += g.cfg.Scoring.Award
	w.Crossings++

	level := w.levelFor(w.Score)
	if level != w.Level {
		g.log.Info("level up", slog.Int("level", level), slog.Int("score", w.Score))
	}
	w.Level = level
	w.resetPlayer()

	if g.cfg.Spawn.SpeedScaling && w.Crossings%g.cfg.Spawn.SpeedScaleEvery == 0 {
		w.SpeedMultiplier += g.cfg.Spawn.SpeedScaleStep
		g.log.Debug("traffic speeds up", slog.Float64("multiplier", w.SpeedMultiplier))
	}

	g.log.Debug("lane crossed", slog.Int("score", w.Score), slog.Int("crossings", w.Crossings))
}
