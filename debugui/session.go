package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/crossing/game"
)

// SessionPanel shows the score state and drives the session commands.
type SessionPanel struct{}

func (sp *SessionPanel) Render(g *game.Game) {
	snap := g.Snapshot()

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 220), imgui.CondOnce)
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Phase: %s", snap.Phase))
	imgui.Text(fmt.Sprintf("Tick: %d (%s)", snap.Tick, snap.TimeOfDay))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Score: %d  High: %d", snap.Score, snap.HighScore))
	imgui.Text(fmt.Sprintf("Level: %d  Crossings: %d", snap.Level, snap.Crossings))
	imgui.Text(fmt.Sprintf("Traffic Speed: x%.2f", snap.SpeedMultiplier))
	imgui.Text(fmt.Sprintf("Player: %.0f, %.0f  step %.1f", snap.Player.Pos.X, snap.Player.Pos.Y, snap.Player.Speed))
	imgui.Text("Power-ups: " + powerUpList(snap.ActivePowerUps))
	imgui.Separator()

	if imgui.Button("Start") {
		g.Start()
	}
	imgui.SameLine()
	if imgui.Button("Pause/Resume") {
		g.TogglePause()
	}
	imgui.SameLine()
	if imgui.Button("Restart") {
		g.Restart()
	}

	imgui.End()
}

func powerUpList(kinds []game.Kind) string {
	if len(kinds) == 0 {
		return "none"
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
