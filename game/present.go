package game

import "github.com/plus3/crossing/ecs"

// presentSystem pushes the tick's outcome to the renderer.
type presentSystem struct {
	game *Game
}

func (s *presentSystem) Execute(frame *ecs.UpdateFrame[Entity]) {
	g := s.game
	for _, e := range frame.Storage.Iter() {
		g.renderer.UpdateHandlePosition(e.Handle, e.Pos)
	}
	g.presentPlayer()
	g.presentWorld()
}

func (g *Game) presentPlayer() {
	g.renderer.SetPlayerVisualState(g.world.Player.Pos, g.world.Player.Invincible)
}

func (g *Game) presentWorld() {
	w := g.world
	g.renderer.SetWorldVisualState(w.TimeOfDay, w.Score, max(w.HighScore, w.Score), w.Level)
}
