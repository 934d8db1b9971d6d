// Package debugui draws a Dear ImGui overlay over a running crossing game.
// Windows are ImguiItems kept in their own ecs.Storage; each frame the
// ImguiSystem defers their render functions so they run between the
// backend's BeginFrame and EndFrame.
package debugui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/crossing/ecs"
	"github.com/plus3/crossing/game"
)

// ImguiItem holds a Dear ImGui render function.
type ImguiItem struct {
	Name   string
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes the input state and queues every item's render function.
type ImguiSystem struct {
	InputState *InputState
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame[ImguiItem]) {
	io := imgui.CurrentIO()
	i.InputState.WantCaptureMouse = io.WantCaptureMouse()
	i.InputState.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range frame.Storage.Iter() {
		frame.Commands.Defer(item.Render)
	}
}

// frameClock keeps the delta of the last frame it ran in, for the frame time plot.
type frameClock struct {
	seconds float64
}

func (c *frameClock) Execute(frame *ecs.UpdateFrame[ImguiItem]) {
	c.seconds = frame.DeltaTime
}

// Overlay owns the ImGui backend and the debug windows.
type Overlay struct {
	Visible bool

	backend   *ebitenbackend.EbitenBackend
	items     *ecs.Storage[ImguiItem]
	scheduler *ecs.Scheduler[ImguiItem]
	input     InputState
	timer     *FrameTimer
	clock     frameClock
}

// NewOverlay creates the ebiten window through the ImGui backend and adds
// the standard windows for g. Call it before ebiten.RunGame.
func NewOverlay(g *game.Game, title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	o := &Overlay{
		backend: backend,
		items:   ecs.NewStorage[ImguiItem](),
		timer:   NewFrameTimer(),
	}
	o.scheduler = ecs.NewScheduler(o.items)
	o.scheduler.Register(&o.clock)
	o.scheduler.Register(&ImguiSystem{InputState: &o.input})

	perf := NewPerformanceStats(120)
	browser := NewEntityBrowser(50)
	session := &SessionPanel{}
	o.Add("performance", func() { perf.Render(g.Stats(), float32(o.clock.seconds)) })
	o.Add("entities", func() { browser.Render(g.Snapshot()) })
	o.Add("session", func() { session.Render(g) })
	return o
}

// Add registers another window.
func (o *Overlay) Add(name string, render func()) ecs.EntityId {
	return o.items.Spawn(ImguiItem{Name: name, Render: render})
}

// Remove drops a window added with Add.
func (o *Overlay) Remove(id ecs.EntityId) bool {
	return o.items.Delete(id)
}

// Update builds this frame's ImGui draw data. It must run from ebiten's Update.
func (o *Overlay) Update() {
	dt := o.timer.GetDeltaTime()
	o.backend.BeginFrame()
	if o.Visible {
		o.scheduler.Once(float64(dt))
	}
	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.Visible {
		o.backend.Draw(screen)
	}
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Layout(outsideWidth, outsideHeight)
}

// WantsKeyboard reports whether a focused ImGui widget is taking key presses.
func (o *Overlay) WantsKeyboard() bool {
	return o.Visible && o.input.WantCaptureKeyboard
}
