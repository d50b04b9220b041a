// Package spatial implements the uniform-grid spatial hash backing
// Registry.SpatialQuery, with a configurable cell size and a plain
// cell-coordinate map from cell to the entity IDs it contains.
//
// Package spatial is deliberately untyped in terms of IDs/positions (plain
// uint32 and float32 X/Y) so that engine can import it without a cycle.
package spatial

import "math"

type cellCoord struct {
	x, y int32
}

type entry struct {
	id   uint32
	x, y float32
}

// Grid is a uniform-grid spatial hash.
type Grid struct {
	cellSize float32
	cells    map[cellCoord][]entry
	location map[uint32]cellCoord
}

// New creates a Grid whose cell size should roughly match the typical
// query radius used against it (sight radii for visibility, ability/attack
// ranges for combat queries).
func New(cellSize float32) *Grid {
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellCoord][]entry),
		location: make(map[uint32]cellCoord),
	}
}

func (g *Grid) coordOf(x, y float32) cellCoord {
	return cellCoord{
		x: int32(math.Floor(float64(x / g.cellSize))),
		y: int32(math.Floor(float64(y / g.cellSize))),
	}
}

// Insert adds id at (x, y). id must not already be present.
func (g *Grid) Insert(id uint32, x, y float32) {
	c := g.coordOf(x, y)
	g.cells[c] = append(g.cells[c], entry{id: id, x: x, y: y})
	g.location[id] = c
}

// Remove deletes id from the grid.
func (g *Grid) Remove(id uint32) {
	c, ok := g.location[id]
	if !ok {
		return
	}
	bucket := g.cells[c]
	for i, e := range bucket {
		if e.id == id {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			break
		}
	}
	if len(bucket) == 0 {
		delete(g.cells, c)
	} else {
		g.cells[c] = bucket
	}
	delete(g.location, id)
}

// Move rewires id's bucket membership if (x, y) crossed a cell boundary; a
// cheap in-place position update otherwise, per the "rewired in-place"
// contract (no reallocation of unrelated buckets on every tick).
func (g *Grid) Move(id uint32, x, y float32) {
	oldCoord, ok := g.location[id]
	newCoord := g.coordOf(x, y)
	if ok && oldCoord == newCoord {
		bucket := g.cells[oldCoord]
		for i, e := range bucket {
			if e.id == id {
				bucket[i].x, bucket[i].y = x, y
				return
			}
		}
		return
	}
	g.Remove(id)
	g.Insert(id, x, y)
}

// QueryRadius calls fn for every id within radius of (cx, cy), inclusive
// of the boundary, passing the squared distance so callers avoid a
// redundant sqrt.
func (g *Grid) QueryRadius(cx, cy, radius float32, fn func(id uint32, x, y, distSq float32)) {
	if radius <= 0 {
		return
	}
	r2 := radius * radius
	minC := g.coordOf(cx-radius, cy-radius)
	maxC := g.coordOf(cx+radius, cy+radius)

	for y := minC.y; y <= maxC.y; y++ {
		for x := minC.x; x <= maxC.x; x++ {
			bucket, ok := g.cells[cellCoord{x: x, y: y}]
			if !ok {
				continue
			}
			for _, e := range bucket {
				dx, dy := cx-e.x, cy-e.y
				d2 := dx*dx + dy*dy
				if d2 <= r2 {
					fn(e.id, e.x, e.y, d2)
				}
			}
		}
	}
}

// Count reports the total number of indexed entities, for tests/metrics.
func (g *Grid) Count() int { return len(g.location) }
