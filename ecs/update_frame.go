package ecs

// UpdateFrame is handed to every system during one scheduler pass.
type UpdateFrame[T any] struct {
	Tick      uint64
	DeltaTime float64
	Commands  *Commands[T]
	Storage   *Storage[T]

	halted bool
}

// Halt stops the frame: systems registered after the current one are skipped
// and the scheduler reports that no further frames should run.
func (f *UpdateFrame[T]) Halt() {
	f.halted = true
}
