package ecs_test

// Common test entity type
type Mover struct {
	X, Y   float32
	DX, DY float32
	Name   string
}
