package game

import "github.com/plus3/crossing/ecs"

// motionSystem advances every entity and queues removal of the ones that
// left the playfield. Removal waits for the end-of-frame flush, so the
// pass itself never skips or repeats an entity.
type motionSystem struct {
	game *Game
}

func (s *motionSystem) Execute(frame *ecs.UpdateFrame[Entity]) {
	w := s.game.world
	for id, e := range frame.Storage.Iter() {
		if e.Kind.IsVehicle() {
			e.Pos.X += e.Dir * e.Speed
		} else {
			e.Pos.Y -= e.Speed
		}

		if w.exited(e) {
			frame.Commands.Delete(id)
		}
	}
}
