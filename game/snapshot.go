package game

import "github.com/plus3/crossing/ecs"

// EntityState is a copy of one live entity.
type EntityState struct {
	Id    ecs.EntityId
	Kind  Kind
	Pos   Vec2
	Size  Vec2
	Dir   float64
	Speed float64
	Lane  int
}

type PlayerState struct {
	Pos        Vec2
	Size       Vec2
	Speed      float64
	Invincible bool
}

// Snapshot is a detached copy of the visible game state.
type Snapshot struct {
	Phase           Phase
	Tick            uint64
	Score           int
	HighScore       int
	Level           int
	Crossings       int
	SpeedMultiplier float64
	TimeOfDay       TimeOfDay
	Player          PlayerState
	Entities        []EntityState
	ActivePowerUps  []Kind
}

// Snapshot copies the current state. HighScore already includes the
// running score.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	s := Snapshot{
		Phase:           g.phase,
		Tick:            w.Tick,
		Score:           w.Score,
		HighScore:       max(w.HighScore, w.Score),
		Level:           w.Level,
		Crossings:       w.Crossings,
		SpeedMultiplier: w.SpeedMultiplier,
		TimeOfDay:       w.TimeOfDay,
		Player: PlayerState{
			Pos:        w.Player.Pos,
			Size:       w.Player.Size,
			Speed:      w.Player.Speed,
			Invincible: w.Player.Invincible,
		},
		Entities:       make([]EntityState, 0, w.Entities.Len()),
		ActivePowerUps: g.ActivePowerUps(),
	}
	for id, e := range w.Entities.Iter() {
		s.Entities = append(s.Entities, EntityState{
			Id:    id,
			Kind:  e.Kind,
			Pos:   e.Pos,
			Size:  e.Size,
			Dir:   e.Dir,
			Speed: e.Speed,
			Lane:  e.Lane,
		})
	}
	return s
}
