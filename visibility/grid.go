// Package visibility implements the per-team fog-of-war grid: a cell
// falls into one of {unexplored, explored, visible}, recomputed every
// tick from the positions and sight radii of each team's living
// entities. It reuses a uniform-grid approach for cell bucketing instead
// of entity lookup — cells are the indexed thing here, not entities.
package visibility

import (
	"math"

	"github.com/stormline/arena/engine"
)

// CellState is one of {unexplored, explored, visible}. The zero value is Unexplored.
type CellState uint8

const (
	Unexplored CellState = iota
	Explored
	Visible
)

func (s CellState) String() string {
	switch s {
	case Visible:
		return "visible"
	case Explored:
		return "explored"
	default:
		return "unexplored"
	}
}

type cellCoord struct{ x, y int32 }

// teamGrid holds one team's visible and explored cell sets. Visible is
// rebuilt from scratch every tick; explored only ever grows, enforcing the
// "once explored, never returns to unexplored" invariant.
type teamGrid struct {
	visible  map[cellCoord]bool
	explored map[cellCoord]bool
}

// Grid is the fog-of-war state for one match, one teamGrid
// per playable side. Cell size C is shared across teams.
type Grid struct {
	cellSize float32
	teams    map[engine.Side]*teamGrid
}

// New creates a Grid for the given sides. cellSize should trade fidelity
// against cost; a value close to the smallest sightRadius in play gives
// the finest boundary resolution worth paying for.
func New(cellSize float32, sides ...engine.Side) *Grid {
	g := &Grid{cellSize: cellSize, teams: make(map[engine.Side]*teamGrid)}
	for _, side := range sides {
		g.teams[side] = &teamGrid{
			visible:  make(map[cellCoord]bool),
			explored: make(map[cellCoord]bool),
		}
	}
	return g
}

func (g *Grid) coordOf(x, y float32) cellCoord {
	return cellCoord{
		x: int32(math.Floor(float64(x / g.cellSize))),
		y: int32(math.Floor(float64(y / g.cellSize))),
	}
}

// cellCenter returns the world-space centre of a cell, since the contract
// tests "centre of (i,j) lies within sightRadius" rather than any corner.
func (g *Grid) cellCenter(c cellCoord) (float32, float32) {
	half := g.cellSize / 2
	return float32(c.x)*g.cellSize + half, float32(c.y)*g.cellSize + half
}

// sightSource is one entity (or ward) contributing vision for a team.
type sightSource struct {
	x, y, radius float32
}

// Update recomputes every team's visible set from the registry's current
// living entities, then folds newly-visible cells into explored: compute
// the new visible bitset per team, fold it into the per-team explored
// bitset; State derives the three-state view from the two on query. Cost is linear in
// sighted entities * cells-per-radius, not total cells, since only cells
// within a bounding box around each source are touched.
func (g *Grid) Update(reg *engine.Registry) {
	sources := make(map[engine.Side][]sightSource, len(g.teams))

	reg.ForEach(func(e *engine.Entity) {
		if !e.Alive || e.SightRadius <= 0 {
			return
		}
		if _, tracked := g.teams[e.Side]; !tracked {
			return
		}
		sources[e.Side] = append(sources[e.Side], sightSource{x: e.Position.X, y: e.Position.Y, radius: e.SightRadius})
	})

	for side, tg := range g.teams {
		newVisible := make(map[cellCoord]bool)
		for _, src := range sources[side] {
			r2 := src.radius * src.radius
			min := g.coordOf(src.x-src.radius, src.y-src.radius)
			max := g.coordOf(src.x+src.radius, src.y+src.radius)
			for cy := min.y; cy <= max.y; cy++ {
				for cx := min.x; cx <= max.x; cx++ {
					c := cellCoord{x: cx, y: cy}
					if newVisible[c] {
						continue
					}
					ccx, ccy := g.cellCenter(c)
					dx, dy := ccx-src.x, ccy-src.y
					if dx*dx+dy*dy <= r2 {
						newVisible[c] = true
					}
				}
			}
		}

		for c := range newVisible {
			tg.explored[c] = true
		}
		tg.visible = newVisible
	}
}

// IsVisible reports whether position lies in a cell currently visible to
// team. Unknown teams are never visible (e.g. the neutral side, which has
// no grid).
func (g *Grid) IsVisible(team engine.Side, pos engine.Vec2) bool {
	tg, ok := g.teams[team]
	if !ok {
		return false
	}
	return tg.visible[g.coordOf(pos.X, pos.Y)]
}

// State returns the tri-state of the cell at pos for team.
func (g *Grid) State(team engine.Side, pos engine.Vec2) CellState {
	tg, ok := g.teams[team]
	if !ok {
		return Unexplored
	}
	c := g.coordOf(pos.X, pos.Y)
	if tg.visible[c] {
		return Visible
	}
	if tg.explored[c] {
		return Explored
	}
	return Unexplored
}

// TrueSightAt reports whether team has a true-sight source collocated with
// pos (within trueSightRadius of it), used to defeat an entity's requiresTrueSight stealth
// flag. A ward with TrueSight set counts as a source; ordinary vision
// does not.
func (g *Grid) TrueSightAt(reg *engine.Registry, team engine.Side, pos engine.Vec2, trueSightRadius float32) bool {
	found := false
	reg.SpatialQuery(pos, trueSightRadius, func(e *engine.Entity, _ float32) {
		if found || !e.Alive || e.Side != team {
			return
		}
		if e.TrueSight {
			found = true
		}
	})
	return found
}

// VisibleEntities calls fn for every living entity of the registry whose
// cell is visible to team, honoring the requiresTrueSight stealth
// override. trueSightRadius is the collocation tolerance used to decide
// "viewer has a collocated true-sight source".
func (g *Grid) VisibleEntities(reg *engine.Registry, team engine.Side, trueSightRadius float32, fn func(*engine.Entity)) {
	reg.ForEach(func(e *engine.Entity) {
		if !e.Alive {
			return
		}
		if !g.IsVisible(team, e.Position) {
			return
		}
		if e.RequiresTrueSight && !g.TrueSightAt(reg, team, e.Position, trueSightRadius) {
			return
		}
		fn(e)
	})
}
