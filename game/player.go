package game

import (
	"fmt"
	"strings"
)

// Direction is a discrete move command from the input collaborator.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection accepts left, right, up and down in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Player is the avatar crossing the road.
type Player struct {
	Pos        Vec2
	Size       Vec2
	Speed      float64
	Invincible bool
}

func (p *Player) Rect() Rect {
	return RectAt(p.Pos, p.Size)
}

// move steps the player by Speed and clamps it inside a world of the given size.
func (p *Player) move(d Direction, width, height float64) {
	switch d {
	case DirLeft:
		p.Pos.X -= p.Speed
	case DirRight:
		p.Pos.X += p.Speed
	case DirUp:
		p.Pos.Y += p.Speed
	case DirDown:
		p.Pos.Y -= p.Speed
	}
	p.Pos.X = clamp(p.Pos.X, 0, width-p.Size.X)
	p.Pos.Y = clamp(p.Pos.Y, 0, height-p.Size.Y)
}
