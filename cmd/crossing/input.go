package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/crossing/game"
)

// moveKeys maps every key that steps the player.
var moveKeys = map[ebiten.Key]game.Direction{
	ebiten.KeyArrowLeft:  game.DirLeft,
	ebiten.KeyA:          game.DirLeft,
	ebiten.KeyArrowRight: game.DirRight,
	ebiten.KeyD:          game.DirRight,
	ebiten.KeyArrowUp:    game.DirUp,
	ebiten.KeyW:          game.DirUp,
	ebiten.KeyArrowDown:  game.DirDown,
	ebiten.KeyS:          game.DirDown,
}

type command uint8

const (
	cmdNone command = iota
	cmdStart
	cmdTogglePause
	cmdRestart
	cmdToggleDebug
	cmdQuit
)

var commandKeys = map[ebiten.Key]command{
	ebiten.KeyEnter:  cmdStart,
	ebiten.KeySpace:  cmdStart,
	ebiten.KeyP:      cmdTogglePause,
	ebiten.KeyR:      cmdRestart,
	ebiten.KeyF1:     cmdToggleDebug,
	ebiten.KeyEscape: cmdQuit,
}

// readInput collects this frame's key presses. Each fresh press of a
// movement key is one step.
func readInput() (moves []game.Direction, cmds []command) {
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		if d, ok := moveKeys[key]; ok {
			moves = append(moves, d)
		}
		if c, ok := commandKeys[key]; ok {
			cmds = append(cmds, c)
		}
	}
	return moves, cmds
}
