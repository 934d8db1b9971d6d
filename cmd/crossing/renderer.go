package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/kamstrup/intmap"
	"github.com/plus3/crossing/game"
)

var (
	grassDay    = color.RGBA{R: 106, G: 190, B: 48, A: 255}
	grassNight  = color.RGBA{R: 32, G: 64, B: 40, A: 255}
	roadDay     = color.RGBA{R: 85, G: 85, B: 85, A: 255}
	roadNight   = color.RGBA{R: 36, G: 36, B: 44, A: 255}
	laneMarking = color.RGBA{R: 230, G: 230, B: 200, A: 255}
	goalColor   = color.RGBA{R: 250, G: 215, B: 60, A: 255}
	playerColor = color.RGBA{R: 60, G: 120, B: 240, A: 255}
	shieldGlow  = color.RGBA{R: 120, G: 220, B: 255, A: 160}
	overlayDim  = color.RGBA{A: 170}
)

var kindColors = map[game.Kind]color.RGBA{
	game.KindCar:        {R: 220, G: 40, B: 40, A: 255},
	game.KindTruck:      {R: 230, G: 130, B: 30, A: 255},
	game.KindMotorcycle: {R: 170, G: 60, B: 200, A: 255},
	game.KindShield:     {R: 80, G: 200, B: 255, A: 255},
	game.KindSlowTime:   {R: 240, G: 240, B: 240, A: 255},
	game.KindSpeedBoost: {R: 60, G: 230, B: 110, A: 255},
}

type sprite struct {
	handle game.Handle
	kind   game.Kind
	pos    game.Vec2
	size   game.Vec2
}

// screenRenderer keeps the presentation state the game pushes to it and
// paints it on demand. Sprites live in a dense slice; index maps handles
// to slice positions.
type screenRenderer struct {
	worldHeight float64
	layout      game.RoadLayout

	next    game.Handle
	sprites []sprite
	index   *intmap.Map[game.Handle, int]

	player     game.Vec2
	playerSize game.Vec2
	invincible bool

	tod       game.TimeOfDay
	score     int
	highScore int
	level     int
	gameOver  bool
}

func newScreenRenderer(cfg game.Config, layout game.RoadLayout) *screenRenderer {
	return &screenRenderer{
		worldHeight: cfg.World.Height,
		layout:      layout,
		index:       intmap.New[game.Handle, int](64),
		playerSize:  game.Vec2{X: cfg.Player.Width, Y: cfg.Player.Height},
		level:       1,
	}
}

func (r *screenRenderer) CreateEntityHandle(kind game.Kind, pos, size game.Vec2) game.Handle {
	r.next++
	r.index.Put(r.next, len(r.sprites))
	r.sprites = append(r.sprites, sprite{handle: r.next, kind: kind, pos: pos, size: size})
	return r.next
}

func (r *screenRenderer) UpdateHandlePosition(h game.Handle, pos game.Vec2) {
	if i, ok := r.index.Get(h); ok {
		r.sprites[i].pos = pos
	}
}

func (r *screenRenderer) DestroyHandle(h game.Handle) {
	i, ok := r.index.Get(h)
	if !ok {
		return
	}
	r.index.Del(h)

	last := len(r.sprites) - 1
	if i != last {
		r.sprites[i] = r.sprites[last]
		r.index.Put(r.sprites[i].handle, i)
	}
	r.sprites = r.sprites[:last]
}

func (r *screenRenderer) SetPlayerVisualState(pos game.Vec2, invincible bool) {
	r.player = pos
	r.invincible = invincible
}

func (r *screenRenderer) SetWorldVisualState(tod game.TimeOfDay, score, highScore, level int) {
	r.tod, r.score, r.highScore, r.level = tod, score, highScore, level
}

func (r *screenRenderer) ShowGameOverScreen() { r.gameOver = true }
func (r *screenRenderer) HideGameOverScreen() { r.gameOver = false }

// screenY converts a world box's bottom edge to the screen's top-left origin.
func (r *screenRenderer) screenY(y, h float64) float32 {
	return float32(r.worldHeight - y - h)
}

func (r *screenRenderer) fillRect(screen *ebiten.Image, pos, size game.Vec2, clr color.Color) {
	vector.DrawFilledRect(screen, float32(pos.X), r.screenY(pos.Y, size.Y), float32(size.X), float32(size.Y), clr, false)
}

func (r *screenRenderer) Draw(screen *ebiten.Image, phase game.Phase) {
	width := float64(screen.Bounds().Dx())

	grass, road := grassDay, roadDay
	if r.tod == game.Night {
		grass, road = grassNight, roadNight
	}
	screen.Fill(grass)

	for _, band := range r.layout.Roads {
		r.fillRect(screen, game.Vec2{Y: band.Y}, game.Vec2{X: width, Y: band.Height}, road)
		mid := band.Y + band.Height/2
		for x := 0.0; x < width; x += 40 {
			r.fillRect(screen, game.Vec2{X: x, Y: mid - 1}, game.Vec2{X: 20, Y: 2}, laneMarking)
		}
	}
	goal := r.layout.Goal
	r.fillRect(screen, game.Vec2{Y: goal.Y}, game.Vec2{X: width, Y: goal.Height}, goalColor)

	for _, s := range r.sprites {
		r.fillRect(screen, s.pos, s.size, kindColors[s.kind])
	}

	if r.invincible {
		glow := game.Vec2{X: r.player.X - 4, Y: r.player.Y - 4}
		r.fillRect(screen, glow, game.Vec2{X: r.playerSize.X + 8, Y: r.playerSize.Y + 8}, shieldGlow)
	}
	r.fillRect(screen, r.player, r.playerSize, playerColor)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d  High: %d  Level: %d", r.score, r.highScore, r.level), 8, 6)

	switch {
	case r.gameOver:
		r.banner(screen, "GAME OVER", "Enter: play again")
	case phase == game.Idle:
		r.banner(screen, "CROSS THE ROAD", "Enter: start  Arrows/WASD: move  P: pause")
	case phase == game.Paused:
		r.banner(screen, "PAUSED", "P: resume")
	}
}

func (r *screenRenderer) banner(screen *ebiten.Image, title, hint string) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, float32(h/2-40), float32(w), 80, overlayDim, false)
	ebitenutil.DebugPrintAt(screen, title, w/2-len(title)*3, h/2-20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d  High: %d", r.score, r.highScore), w/2-60, h/2-2)
	ebitenutil.DebugPrintAt(screen, hint, w/2-len(hint)*3, h/2+16)
}
