package ecs

// Commands provides a buffer for deferred storage operations that are executed at the end of a frame.
// This prevents structural changes to the storage while systems iterate over it.
type Commands[T any] struct {
	spawns  []T
	deletes []EntityId
	defers  []func()
}

// NewCommands creates an empty command buffer
func NewCommands[T any]() *Commands[T] {
	return &Commands[T]{}
}

// Defer queues a function execution operation.
func (c *Commands[T]) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation.
func (c *Commands[T]) Spawn(item T) {
	c.spawns = append(c.spawns, item)
}

// Delete queues an entity deletion operation.
// Deleting the same entity twice in one frame removes it once.
func (c *Commands[T]) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Flush applies deletes, then spawns, then deferred functions, resetting the buffer state
func (c *Commands[T]) Flush(storage *Storage[T]) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}

	for _, item := range c.spawns {
		storage.Spawn(item)
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
}
