package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// TimerId identifies a scheduled timer. The zero value is never issued.
type TimerId uint64

type timer struct {
	id  TimerId
	due uint64
	fn  func()
}

// Timers runs deferred callbacks on frame boundaries.
// Time is counted in ticks and only moves when Advance is called, so a
// paused simulation also pauses its timers. Callbacks run on the caller's
// goroutine inside Advance.
type Timers struct {
	now     uint64
	nextId  TimerId
	queue   []*timer
	pending *intmap.Map[TimerId, *timer]
}

// NewTimers creates an empty timer set at tick zero
func NewTimers() *Timers {
	return &Timers{
		pending: intmap.New[TimerId, *timer](16),
	}
}

// Now returns the current tick
func (t *Timers) Now() uint64 {
	return t.now
}

// After schedules fn to run on the Advance that reaches now+ticks.
// Timers due on the same tick fire in scheduling order.
func (t *Timers) After(ticks uint64, fn func()) TimerId {
	t.nextId++
	tm := &timer{id: t.nextId, due: t.now + ticks, fn: fn}

	// ids grow monotonically, so inserting after every timer due no later keeps FIFO order
	pos, _ := slices.BinarySearchFunc(t.queue, tm.due, func(e *timer, due uint64) int {
		if e.due <= due {
			return -1
		}
		return 1
	})
	t.queue = slices.Insert(t.queue, pos, tm)
	t.pending.Put(tm.id, tm)
	return tm.id
}

// Cancel stops a pending timer. It returns false if the timer already fired
// or was cancelled.
func (t *Timers) Cancel(id TimerId) bool {
	tm, ok := t.pending.Get(id)
	if !ok {
		return false
	}
	t.pending.Del(id)
	tm.fn = nil
	return true
}

// Advance moves time forward one tick and runs every timer that is now due.
// It returns the number of callbacks run.
func (t *Timers) Advance() int {
	t.now++

	fired := 0
	for len(t.queue) > 0 && t.queue[0].due <= t.now {
		tm := t.queue[0]
		t.queue[0] = nil
		t.queue = t.queue[1:]

		if tm.fn == nil {
			continue
		}
		t.pending.Del(tm.id)
		fn := tm.fn
		tm.fn = nil
		fn()
		fired++
	}
	return fired
}

// Reset cancels every pending timer and returns how many were dropped.
// The clock itself keeps its value.
func (t *Timers) Reset() int {
	dropped := t.pending.Len()
	for _, tm := range t.queue {
		tm.fn = nil
	}
	clear(t.queue)
	t.queue = t.queue[:0]
	t.pending.Clear()
	return dropped
}

// Pending returns the number of timers that have not fired or been cancelled
func (t *Timers) Pending() int {
	return t.pending.Len()
}
