package ecs

import (
	"iter"
	"weak"

	"github.com/kamstrup/intmap"
)

const (
	blockSize = 64
)

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	Live      int
	Capacity  int
	FreeSlots int
	Spawned   uint64
	Deleted   uint64
}

// Storage holds entities of a single type T in fixed-size blocks.
// Slots are reused after deletion; every reuse bumps the slot generation so
// ids issued for an earlier occupant no longer resolve.
type Storage[T any] struct {
	blocks      [][blockSize]T
	filled      [][blockSize]bool
	generations [][blockSize]uint32
	freeSlots   []int
	nextIndex   int
	live        int

	refs *intmap.Map[EntityId, weak.Pointer[EntityRef]]

	onSpawn  func(EntityId, *T)
	onDelete func(EntityId, *T)

	spawned uint64
	deleted uint64
}

// NewStorage creates an empty storage
func NewStorage[T any]() *Storage[T] {
	return &Storage[T]{
		refs: intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}
}

// OnSpawn installs a hook that runs after an entity is stored.
func (s *Storage[T]) OnSpawn(fn func(EntityId, *T)) {
	s.onSpawn = fn
}

// OnDelete installs a hook that runs right before an entity's slot is released.
// It runs exactly once per entity.
func (s *Storage[T]) OnDelete(fn func(EntityId, *T)) {
	s.onDelete = fn
}

// Spawn stores item and returns its id
func (s *Storage[T]) Spawn(item T) EntityId {
	var index int
	if len(s.freeSlots) > 0 {
		index = s.freeSlots[len(s.freeSlots)-1]
		s.freeSlots = s.freeSlots[:len(s.freeSlots)-1]
	} else {
		index = s.nextIndex
		s.nextIndex++
	}

	blockIdx := index / blockSize
	slotIdx := index % blockSize

	if blockIdx >= len(s.blocks) {
		s.blocks = append(s.blocks, [blockSize]T{})
		s.filled = append(s.filled, [blockSize]bool{})
		s.generations = append(s.generations, [blockSize]uint32{})
	}

	gen := s.generations[blockIdx][slotIdx] + 1
	if gen == 0 {
		gen = 1
	}
	s.generations[blockIdx][slotIdx] = gen
	s.blocks[blockIdx][slotIdx] = item
	s.filled[blockIdx][slotIdx] = true
	s.live++
	s.spawned++

	id := NewEntityId(gen, uint32(index))
	if s.onSpawn != nil {
		s.onSpawn(id, &s.blocks[blockIdx][slotIdx])
	}
	return id
}

func (s *Storage[T]) slot(id EntityId) (blockIdx, slotIdx int, ok bool) {
	index := int(id.Index())
	if id.Generation() == 0 || index >= s.nextIndex {
		return 0, 0, false
	}

	blockIdx = index / blockSize
	slotIdx = index % blockSize
	if !s.filled[blockIdx][slotIdx] || s.generations[blockIdx][slotIdx] != id.Generation() {
		return 0, 0, false
	}
	return blockIdx, slotIdx, true
}

// Get returns a pointer to the entity, or nil if id is not live.
// The pointer is only valid until the next Spawn.
func (s *Storage[T]) Get(id EntityId) *T {
	blockIdx, slotIdx, ok := s.slot(id)
	if !ok {
		return nil
	}
	return &s.blocks[blockIdx][slotIdx]
}

// Has reports whether id refers to a live entity
func (s *Storage[T]) Has(id EntityId) bool {
	_, _, ok := s.slot(id)
	return ok
}

// Delete removes the entity. It returns false if id was already gone.
func (s *Storage[T]) Delete(id EntityId) bool {
	blockIdx, slotIdx, ok := s.slot(id)
	if !ok {
		return false
	}

	if s.onDelete != nil {
		s.onDelete(id, &s.blocks[blockIdx][slotIdx])
	}

	if weakPtr, ok := s.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
		}
		s.refs.Del(id)
	}

	var zero T
	s.blocks[blockIdx][slotIdx] = zero
	s.filled[blockIdx][slotIdx] = false
	s.freeSlots = append(s.freeSlots, blockIdx*blockSize+slotIdx)
	s.live--
	s.deleted++
	return true
}

// Clear deletes every live entity, running the delete hook for each.
// Slot generations survive so ids from before the clear stay dead.
func (s *Storage[T]) Clear() {
	for id := range s.Iter() {
		s.Delete(id)
	}
}

// Len returns the number of live entities
func (s *Storage[T]) Len() int {
	return s.live
}

// Iter yields live entities in slot order.
// Deleting the yielded entity during iteration is safe; entities spawned
// during iteration may or may not be visited.
func (s *Storage[T]) Iter() iter.Seq2[EntityId, *T] {
	return func(yield func(EntityId, *T) bool) {
		for i := 0; i < s.nextIndex; i++ {
			blockIdx := i / blockSize
			slotIdx := i % blockSize

			if !s.filled[blockIdx][slotIdx] {
				continue
			}

			id := NewEntityId(s.generations[blockIdx][slotIdx], uint32(i))
			if !yield(id, &s.blocks[blockIdx][slotIdx]) {
				return
			}
		}
	}
}

// CreateEntityRef returns the shared reference for a live entity, or nil.
func (s *Storage[T]) CreateEntityRef(id EntityId) *EntityRef {
	if !s.Has(id) {
		return nil
	}

	if weakPtr, ok := s.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		// Weak pointer is dead, remove it
		s.refs.Del(id)
	}

	ref := &EntityRef{Id: id}
	s.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the id behind ref if the entity is still live.
func (s *Storage[T]) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Id == 0 {
		return 0, false
	}
	if !s.Has(ref.Id) {
		return 0, false
	}
	return ref.Id, true
}

// CollectStats summarizes the storage
func (s *Storage[T]) CollectStats() StorageStats {
	return StorageStats{
		Live:      s.live,
		Capacity:  s.nextIndex,
		FreeSlots: len(s.freeSlots),
		Spawned:   s.spawned,
		Deleted:   s.deleted,
	}
}
