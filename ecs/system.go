package ecs

// System represents a behavior that runs once per frame over a Storage.
// Systems keep their own state between frames as ordinary struct fields.
type System[T any] interface {
	Execute(frame *UpdateFrame[T])
}
