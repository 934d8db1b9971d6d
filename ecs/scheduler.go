package ecs

import (
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          uint64
	HaltedFrames    uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler manages and executes systems in order.
type Scheduler[T any] struct {
	storage     *Storage[T]
	commands    *Commands[T]
	systems     []System[T]
	systemStats []*systemStatsInternal

	frames       uint64
	haltedFrames uint64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler[T any](storage *Storage[T]) *Scheduler[T] {
	return &Scheduler[T]{
		storage:  storage,
		commands: NewCommands[T](),
		systems:  make([]System[T], 0),
	}
}

// Register appends a system; systems run in registration order.
func (s *Scheduler[T]) Register(system System[T]) {
	if system == nil {
		panic("cannot register a nil system")
	}
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once executes the registered systems once with the given delta time and
// flushes the frame's commands. It returns false if a system halted the frame.
func (s *Scheduler[T]) Once(dt float64) bool {
	s.frames++
	frame := &UpdateFrame[T]{
		Tick:      s.frames,
		DeltaTime: dt,
		Commands:  s.commands,
		Storage:   s.storage,
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}

		if frame.halted {
			break
		}
	}

	s.commands.Flush(s.storage)

	if frame.halted {
		s.haltedFrames++
		return false
	}
	return true
}

// GetStats returns statistics about system execution.
func (s *Scheduler[T]) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount:  len(s.systems),
		Frames:       s.frames,
		HaltedFrames: s.haltedFrames,
		Systems:      make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
