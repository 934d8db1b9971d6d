package game

import "github.com/plus3/crossing/ecs"

// collisionSystem tests the player against every entity. Vehicle hits are
// resolved first because game over ends the tick.
type collisionSystem struct {
	game *Game

	pickups []ecs.EntityId
}

func (s *collisionSystem) Execute(frame *ecs.UpdateFrame[Entity]) {
	g := s.game
	player := g.world.Player.Rect()

	if !g.world.Player.Invincible {
		for _, e := range frame.Storage.Iter() {
			if e.Kind.IsVehicle() && Overlaps(player, e.Rect()) {
				g.gameOver(e)
				frame.Halt()
				return
			}
		}
	}

	s.pickups = s.pickups[:0]
	for id, e := range frame.Storage.Iter() {
		if e.Kind.IsPowerUp() && Overlaps(player, e.Rect()) {
			s.pickups = append(s.pickups, id)
		}
	}
	for _, id := range s.pickups {
		g.pickUp(id)
	}
}
