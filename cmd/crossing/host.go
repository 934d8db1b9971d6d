package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/crossing/debugui"
	"github.com/plus3/crossing/game"
)

// host adapts a game.Game to ebiten's Update/Draw loop. Ebiten's TPS is set
// to the game's tick rate, so every Update is one game tick.
type host struct {
	game     *game.Game
	renderer *screenRenderer
	beeper   *beeper
	overlay  *debugui.Overlay

	width, height int
	lastPhase     game.Phase
}

func (h *host) Update() error {
	if h.overlay != nil {
		h.overlay.Update()
	}

	moves, cmds := readInput()
	if h.overlay != nil && h.overlay.WantsKeyboard() {
		moves, cmds = nil, nil
	}

	for _, c := range cmds {
		switch c {
		case cmdStart:
			h.game.Start()
		case cmdTogglePause:
			h.game.TogglePause()
		case cmdRestart:
			h.game.Restart()
		case cmdToggleDebug:
			if h.overlay != nil {
				h.overlay.Visible = !h.overlay.Visible
			}
		case cmdQuit:
			return ebiten.Termination
		}
	}
	for _, d := range moves {
		h.game.MovePlayer(d)
	}

	h.game.Tick()
	h.watchPhase()
	return nil
}

// watchPhase keeps the background loop in step with the session.
func (h *host) watchPhase() {
	phase := h.game.Phase()
	if phase == h.lastPhase {
		return
	}
	if h.beeper != nil {
		switch loopAction(h.lastPhase, phase) {
		case loopStop:
			h.beeper.stop(game.SoundBackgroundLoop)
		case loopResume:
			h.beeper.resume(game.SoundBackgroundLoop)
		}
	}
	h.lastPhase = phase
}

type loopChange int

const (
	loopKeep loopChange = iota
	loopStop
	loopResume
)

// loopAction decides what the background loop does on a phase change.
// Start plays the loop from the top itself, so only unpausing resumes it here.
func loopAction(last, now game.Phase) loopChange {
	switch {
	case last == now:
		return loopKeep
	case now != game.Running:
		return loopStop
	case last == game.Paused:
		return loopResume
	}
	return loopKeep
}

func (h *host) Draw(screen *ebiten.Image) {
	h.renderer.Draw(screen, h.game.Phase())
	if h.overlay != nil {
		h.overlay.Draw(screen)
	}
}

func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.overlay != nil {
		h.overlay.Layout(h.width, h.height)
	}
	return h.width, h.height
}
