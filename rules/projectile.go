package rules

import "github.com/stormline/arena/engine"

// projectileSpeed is the flat travel speed for all cast/basic-attack
// projectiles; a richer catalogue could key this by sourceTag.
const projectileSpeed = 30

// ProjectileState travels in a straight line toward either a tracked target
// entity (homing) or a fixed point (skillshot), and removes itself on
// arrival. A homing projectile damages its target once on arrival; a
// skillshot deals no damage.
type ProjectileState struct {
	damage      float32
	target      engine.EntityID
	targetPoint engine.Vec2
	source      engine.EntityID
}

func NewProjectileState(damage float32, target engine.EntityID, targetPoint engine.Vec2, source engine.EntityID) *ProjectileState {
	return &ProjectileState{damage: damage, target: target, targetPoint: targetPoint, source: source}
}

func (p *ProjectileState) aimPoint(ctx *engine.UpdateContext) (engine.Vec2, bool) {
	if p.target == engine.EntityIDInvalid {
		return p.targetPoint, true
	}
	target := ctx.Registry.Get(p.target)
	if target == nil || !target.Alive {
		return engine.Vec2{}, false
	}
	return target.Position, true
}

func (p *ProjectileState) Update(e *engine.Entity, ctx *engine.UpdateContext) {
	if !e.Alive {
		return
	}
	aim, ok := p.aimPoint(ctx)
	if !ok {
		e.Die(ctx.Tick)
		return
	}

	step := projectileSpeed * ctx.Dt
	if e.Position.DistanceSquared(aim) <= step*step {
		e.Position = aim
		ctx.Registry.Reposition(e.ID, e.Position)
		if p.target != engine.EntityIDInvalid {
			if target := ctx.Registry.Get(p.target); target != nil {
				ApplyDamage(target, p.damage, p.source, ctx)
			}
		}
		e.Die(ctx.Tick)
		return
	}

	e.Position = e.Position.MoveToward(aim, step)
	e.Direction = aim.Sub(e.Position).Angle()
	ctx.Registry.Reposition(e.ID, e.Position)
}

func (p *ProjectileState) Snapshot(e *engine.Entity) engine.EntitySnapshot {
	return engine.EntitySnapshot{TargetEntityID: p.target}
}
