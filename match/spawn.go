package match

import "github.com/stormline/arena/engine"

// spawnStructures places each side's towers and nexus from Config's map
// geometry.
func (m *Match) spawnStructures() {
	for _, side := range []engine.Side{engine.SideA, engine.SideB} {
		for _, pos := range m.config.TowerPosition[side] {
			m.registry.Add(&engine.Entity{
				Kind:     engine.EntityKindTower,
				Side:     side,
				Position: pos,
				State:    m.config.Catalogue.NewStructureState(engine.EntityKindTower),
			})
		}

		nexusPos, ok := m.config.NexusPosition[side]
		if !ok {
			continue
		}
		m.registry.Add(&engine.Entity{
			Kind:     engine.EntityKindNexus,
			Side:     side,
			Position: nexusPos,
			State:    m.config.Catalogue.NewStructureState(engine.EntityKindNexus),
		})
	}
}

// spawnChampion instantiates v's champion at its side's spawn point and
// records the resulting EntityID on the viewer.
func (m *Match) spawnChampion(v *viewer) {
	pos := m.config.ChampionSpawn[v.side]
	e := &engine.Entity{
		Kind:        engine.EntityKindChampion,
		Side:        v.side,
		Owner:       v.player,
		Position:    pos,
		Destination: pos,
		TypeTag:     v.championTag,
		SightRadius: m.config.Catalogue.ChampionSightRadius(v.championTag),
		State:       m.config.Catalogue.NewChampionState(v.championTag),
	}
	id, _ := m.registry.Add(e)
	v.championID = id
}
