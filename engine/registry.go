package engine

import (
	"fmt"

	"github.com/stormline/arena/engine/spatial"
)

// DuplicateId is returned by Registry.Add when the caller pre-assigns an ID
// already in use.
type DuplicateId struct{ ID EntityID }

func (e DuplicateId) Error() string { return fmt.Sprintf("entity id %s already in use", e.ID) }

// Registry stores entities keyed by opaque IDs and emits add/remove
// events. Iteration never re-enters Add/Remove, so it needs no
// buffered-write-during-iteration machinery.
type Registry struct {
	entities map[EntityID]*Entity
	order    []EntityID            // insertion order, all kinds (byKind determinism)
	byKind   map[EntityKind][]EntityID
	alloc    idAllocator
	grid     *spatial.Grid

	removed []Event // removal events pending drain, consumed by the serializer
}

// NewRegistry creates an empty Registry. cellSize should roughly match the
// typical spatialQuery radius.
func NewRegistry(cellSize float32) *Registry {
	return &Registry{
		entities: make(map[EntityID]*Entity),
		byKind:   make(map[EntityKind][]EntityID),
		grid:     spatial.New(cellSize),
	}
}

// Add assigns an ID if entity.ID is zero, or validates a pre-assigned one is
// free, and inserts entity into the registry and spatial index.
func (r *Registry) Add(entity *Entity) (EntityID, error) {
	if entity.ID != EntityIDInvalid {
		if _, exists := r.entities[entity.ID]; exists {
			return EntityIDInvalid, DuplicateId{ID: entity.ID}
		}
	} else {
		entity.ID = r.alloc.allocate()
		for {
			if _, exists := r.entities[entity.ID]; !exists {
				break
			}
			entity.ID = r.alloc.allocate()
		}
	}

	entity.Alive = true
	r.entities[entity.ID] = entity
	r.order = append(r.order, entity.ID)
	r.byKind[entity.Kind] = append(r.byKind[entity.Kind], entity.ID)
	r.grid.Insert(uint32(entity.ID), entity.Position.X, entity.Position.Y)

	return entity.ID, nil
}

// Remove is idempotent; it emits a removal event consumed by the serializer
// to push a deletion notice.
func (r *Registry) Remove(id EntityID) {
	entity, ok := r.entities[id]
	if !ok {
		return
	}

	delete(r.entities, id)
	r.order = removeID(r.order, id)
	r.byKind[entity.Kind] = removeID(r.byKind[entity.Kind], id)
	r.grid.Remove(uint32(id))

	r.removed = append(r.removed, Event{
		Type:     EventEntityRemoved,
		EntityID: id,
		Side:     entity.Side,
	})
}

func removeID(ids []EntityID, target EntityID) []EntityID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Get returns the entity for id, or nil if absent — nil is a legitimate
// result callers must handle.
func (r *Registry) Get(id EntityID) *Entity {
	return r.entities[id]
}

// ByKind iterates entities of one kind in insertion order, stable within a
// tick.
func (r *Registry) ByKind(kind EntityKind, fn func(*Entity)) {
	for _, id := range r.byKind[kind] {
		if e, ok := r.entities[id]; ok {
			fn(e)
		}
	}
}

// ForEach iterates every entity in insertion order.
func (r *Registry) ForEach(fn func(*Entity)) {
	for _, id := range r.order {
		if e, ok := r.entities[id]; ok {
			fn(e)
		}
	}
}

// Count returns the number of entities currently registered.
func (r *Registry) Count() int { return len(r.entities) }

// Reposition updates an entity's position in the spatial index; callers
// must invoke this after mutating Entity.Position directly (e.g. from
// State.Update), since Registry cannot observe field writes on its own.
func (r *Registry) Reposition(id EntityID, pos Vec2) {
	r.grid.Move(uint32(id), pos.X, pos.Y)
}

// SpatialQuery returns, via fn, every entity within radius of point.
// Backed by the uniform-grid spatial hash.
func (r *Registry) SpatialQuery(point Vec2, radius float32, fn func(e *Entity, distSq float32)) {
	r.grid.QueryRadius(point.X, point.Y, radius, func(id uint32, _, _, distSq float32) {
		if e, ok := r.entities[EntityID(id)]; ok {
			fn(e, distSq)
		}
	})
}

// DrainRemovals returns and clears the removal events accumulated since the
// last call (one per Remove, regardless of Add/ByKind activity in between).
func (r *Registry) DrainRemovals() []Event {
	if len(r.removed) == 0 {
		return nil
	}
	out := r.removed
	r.removed = nil
	return out
}
