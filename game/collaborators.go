package game

import (
	"time"

	"github.com/plus3/crossing/ecs"
)

// Renderer is the presentation collaborator. The core never draws; it only
// creates, moves and destroys handles and pushes the visible state.
type Renderer interface {
	CreateEntityHandle(kind Kind, pos Vec2, size Vec2) Handle
	UpdateHandlePosition(h Handle, pos Vec2)
	DestroyHandle(h Handle)
	SetPlayerVisualState(pos Vec2, invincible bool)
	SetWorldVisualState(tod TimeOfDay, score, highScore, level int)
	ShowGameOverScreen()
	HideGameOverScreen()
}

// Sound names an audio cue.
type Sound uint8

const (
	SoundCollision Sound = iota
	SoundPowerUp
	SoundBackgroundLoop
)

func (s Sound) String() string {
	switch s {
	case SoundCollision:
		return "collision"
	case SoundPowerUp:
		return "powerup"
	case SoundBackgroundLoop:
		return "backgroundLoop"
	default:
		return "unknown"
	}
}

// Audio is the optional sound collaborator.
type Audio interface {
	PlaySound(s Sound)
}

// Clock schedules deferred callbacks. Callbacks must run on the goroutine
// that calls Game.Tick; the returned cancel reports whether it stopped a
// pending callback.
type Clock interface {
	After(d time.Duration, fn func()) (cancel func() bool)
}

// NopRenderer discards everything and hands out sequential handles.
type NopRenderer struct {
	next Handle
}

func (r *NopRenderer) CreateEntityHandle(Kind, Vec2, Vec2) Handle {
	r.next++
	return r.next
}

func (*NopRenderer) UpdateHandlePosition(Handle, Vec2) {}
func (*NopRenderer) DestroyHandle(Handle) {}
func (*NopRenderer) SetPlayerVisualState(Vec2, bool) {}
func (*NopRenderer) SetWorldVisualState(TimeOfDay, int, int, int) {}
func (*NopRenderer) ShowGameOverScreen() {}
func (*NopRenderer) HideGameOverScreen() {}

// NopAudio plays nothing.
type NopAudio struct{}

func (NopAudio) PlaySound(Sound) {}

// tickClock runs callbacks on tick boundaries, rounding durations to the
// nearest whole tick (at least one).
type tickClock struct {
	timers   *ecs.Timers
	interval time.Duration
}

func (c *tickClock) ticks(d time.Duration) uint64 {
	n := (d + c.interval/2) / c.interval
	if n < 1 {
		n = 1
	}
	return uint64(n)
}

func (c *tickClock) After(d time.Duration, fn func()) func() bool {
	id := c.timers.After(c.ticks(d), fn)
	return func() bool {
		return c.timers.Cancel(id)
	}
}
