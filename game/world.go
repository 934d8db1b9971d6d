package game

import "github.com/plus3/crossing/ecs"

// TimeOfDay is the cosmetic day/night cycle value.
type TimeOfDay uint8

const (
	Day TimeOfDay = iota
	Night
)

func (t TimeOfDay) String() string {
	if t == Night {
		return "night"
	}
	return "day"
}

// World owns all mutable state of one session.
type World struct {
	Player   Player
	Entities *ecs.Storage[Entity]

	Score     int
	HighScore int
	Level     int
	Crossings int
	// SpeedMultiplier scales the speed of newly spawned vehicles.
	SpeedMultiplier float64
	TimeOfDay       TimeOfDay
	Tick            uint64

	cfg    *Config
	layout RoadLayout
}

func newWorld(cfg *Config) *World {
	w := &World{
		Entities: ecs.NewStorage[Entity](),
		cfg:      cfg,
		layout:   NewRoadLayout(*cfg),
	}
	w.reset()
	return w
}

// reset clears the session and keeps only HighScore.
func (w *World) reset() {
	w.Entities.Clear()
	w.Player = Player{
		Size:  Vec2{X: w.cfg.Player.Width, Y: w.cfg.Player.Height},
		Speed: w.cfg.Player.Step,
	}
	w.resetPlayer()
	w.Score = 0
	w.Level = 1
	w.Crossings = 0
	w.SpeedMultiplier = 1
	w.TimeOfDay = Day
	w.Tick = 0
}

// resetPlayer puts the player back on the start edge, centered horizontally.
func (w *World) resetPlayer() {
	w.Player.Pos.X = w.cfg.World.Width/2 - w.Player.Size.X/2
	if w.cfg.Scoring.GoalEdge == GoalBottom {
		w.Player.Pos.Y = w.cfg.World.Height - w.Player.Size.Y - w.cfg.Player.StartMargin
	} else {
		w.Player.Pos.Y = w.cfg.Player.StartMargin
	}
}

// levelFor is the level reached with the given score.
func (w *World) levelFor(score int) int {
	return score/w.cfg.Scoring.LevelSize + 1
}

// atGoal reports whether the player touches the scoring edge.
func (w *World) atGoal() bool {
	if w.cfg.Scoring.GoalEdge == GoalBottom {
		return w.Player.Pos.Y <= 0
	}
	return w.Player.Pos.Y >= w.cfg.World.Height-w.Player.Size.Y
}

// exited reports whether a moving entity has fully left the playfield in its
// direction of travel.
func (w *World) exited(e *Entity) bool {
	switch {
	case e.Kind.IsVehicle() && e.Dir > 0:
		return e.Pos.X >= w.cfg.World.Width+e.Size.X
	case e.Kind.IsVehicle():
		return e.Pos.X <= -e.Size.X
	case e.Speed > 0:
		return e.Pos.Y <= -e.Size.Y
	}
	return false
}

// Layout returns the road layout of this world
func (w *World) Layout() RoadLayout {
	return w.layout
}
