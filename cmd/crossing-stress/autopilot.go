package main

import "github.com/plus3/crossing/game"

// autopilot walks the player toward the goal, waiting or dodging when
// traffic would hit it within the next few ticks.
type autopilot struct {
	lookahead int
	width     float64
	height    float64
	forward   game.Direction
	back      game.Direction
}

func newAutopilot(cfg game.Config, lookahead int) *autopilot {
	a := &autopilot{
		lookahead: lookahead,
		width:     cfg.World.Width,
		height:    cfg.World.Height,
		forward:   game.DirUp,
		back:      game.DirDown,
	}
	if cfg.Scoring.GoalEdge == game.GoalBottom {
		a.forward, a.back = game.DirDown, game.DirUp
	}
	return a
}

// next returns the move to make, or false to stand still.
func (a *autopilot) next(s game.Snapshot) (game.Direction, bool) {
	here := game.RectAt(s.Player.Pos, s.Player.Size)
	if a.safe(s, a.shift(here, a.forward, s.Player.Speed)) {
		return a.forward, true
	}
	if a.safe(s, here) {
		return 0, false
	}
	for _, d := range []game.Direction{a.back, game.DirLeft, game.DirRight} {
		if a.safe(s, a.shift(here, d, s.Player.Speed)) {
			return d, true
		}
	}
	return 0, false
}

func (a *autopilot) shift(r game.Rect, d game.Direction, step float64) game.Rect {
	switch d {
	case game.DirLeft:
		r.X = max(r.X-step, 0)
	case game.DirRight:
		r.X = min(r.X+step, a.width-r.W)
	case game.DirUp:
		r.Y = min(r.Y+step, a.height-r.H)
	case game.DirDown:
		r.Y = max(r.Y-step, 0)
	}
	return r
}

// safe reports whether no vehicle reaches r within the lookahead.
func (a *autopilot) safe(s game.Snapshot, r game.Rect) bool {
	if s.Player.Invincible {
		return true
	}
	for _, e := range s.Entities {
		if !e.Kind.IsVehicle() {
			continue
		}
		for k := range a.lookahead + 1 {
			pos := e.Pos
			pos.X += e.Dir * e.Speed * float64(k)
			if game.Overlaps(r, game.RectAt(pos, e.Size)) {
				return false
			}
		}
	}
	return true
}
