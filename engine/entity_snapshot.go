package engine

// FieldFamily identifies one bit of a change mask.
type FieldFamily uint16

const (
	FieldPosition FieldFamily = 1 << iota
	FieldHealth
	FieldResource
	FieldLevel
	FieldEffects
	FieldAbilities
	FieldItems
	FieldTarget
	FieldState
	FieldTrinket
	FieldGold
	FieldShields
	FieldPassive

	FieldAll = FieldPosition | FieldHealth | FieldResource | FieldLevel |
		FieldEffects | FieldAbilities | FieldItems | FieldTarget | FieldState |
		FieldTrinket | FieldGold | FieldShields | FieldPassive
)

// positionEpsilon is the tolerance for comparing positions between
// snapshots; every other field family is compared exactly.
const positionEpsilon = 0.01

// StateFlags packs the boolean flags every kind may expose (isAttacking,
// isRecalling, and similar binary states) into the "state" field family.
type StateFlags uint16

const (
	StateAttacking StateFlags = 1 << iota
	StateRecalling
	StateStealthed
	StateChanneling
	StateDead
)

func (f StateFlags) Has(bit StateFlags) bool { return f&bit != 0 }

// EffectState is one active buff/debuff/DoT instance, opaque to the core.
type EffectState struct {
	Tag      string
	Stacks   int
	Expires  Ticks
	Magnitude float32
}

// AbilityState is the opaque cooldown/charge state of one ability slot.
type AbilityState struct {
	Slot           int
	CooldownTicks  Ticks
	ChargesCurrent int
	ChargesMax     int
}

// ItemState is the opaque state of one inventory or trinket slot.
type ItemState struct {
	Slot       int
	ItemTag    string
	CooldownTicks Ticks
	Charges    int
}

// EntitySnapshot is the flat record of an entity's observable fields,
// returned by State.Snapshot. Kind-specific attributes are opaque to the
// core: it never interprets EffectState.Tag or AbilityState.Slot, only
// compares them for equality when computing a delta.
type EntitySnapshot struct {
	Position       Vec2
	Direction      Angle
	Health         float32
	HealthMax      float32
	Resource       float32
	ResourceMax    float32
	Level          int
	KillCount      int
	AssistCount    int
	Gold           float32
	Shield         float32
	TargetEntityID EntityID
	State          StateFlags
	Effects        []EffectState
	Abilities      []AbilityState
	Items          []ItemState
	Trinket        *ItemState
	Passive        interface{}
}

// Diff computes the FieldFamily bits that differ between snap and
// baseline, using an epsilon tie-break for position and exact comparison
// for everything else. An empty mask means "no change, skip".
func (snap EntitySnapshot) Diff(baseline EntitySnapshot) FieldFamily {
	var mask FieldFamily

	if absDiff(snap.Position.X, baseline.Position.X) > positionEpsilon ||
		absDiff(snap.Position.Y, baseline.Position.Y) > positionEpsilon ||
		snap.Direction != baseline.Direction {
		mask |= FieldPosition
	}
	if snap.Health != baseline.Health || snap.HealthMax != baseline.HealthMax {
		mask |= FieldHealth
	}
	if snap.Resource != baseline.Resource || snap.ResourceMax != baseline.ResourceMax {
		mask |= FieldResource
	}
	if snap.Level != baseline.Level || snap.KillCount != baseline.KillCount || snap.AssistCount != baseline.AssistCount {
		mask |= FieldLevel
	}
	if !effectsEqual(snap.Effects, baseline.Effects) {
		mask |= FieldEffects
	}
	if !abilitiesEqual(snap.Abilities, baseline.Abilities) {
		mask |= FieldAbilities
	}
	if !itemsEqual(snap.Items, baseline.Items) {
		mask |= FieldItems
	}
	if snap.TargetEntityID != baseline.TargetEntityID {
		mask |= FieldTarget
	}
	if snap.State != baseline.State {
		mask |= FieldState
	}
	if !itemEqual(snap.Trinket, baseline.Trinket) {
		mask |= FieldTrinket
	}
	if snap.Gold != baseline.Gold {
		mask |= FieldGold
	}
	if snap.Shield != baseline.Shield {
		mask |= FieldShields
	}
	if snap.Passive != baseline.Passive {
		mask |= FieldPassive
	}

	return mask
}

func absDiff(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}

func effectsEqual(a, b []EffectState) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func abilitiesEqual(a, b []AbilityState) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func itemsEqual(a, b []ItemState) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func itemEqual(a, b *ItemState) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
