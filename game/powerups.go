package game

import (
	"log/slog"

	"github.com/plus3/crossing/ecs"
)

// boostFactor is the step multiplier used by BoostMultiply.
const boostFactor = 2

// activeEffect is a power-up whose revert is still pending.
type activeEffect struct {
	cancel func() bool
	// slowed holds the vehicles a slowTime pickup touched. A ref goes dead
	// when its vehicle is removed.
	slowed []*ecs.EntityRef
}

// pickUp removes the power-up and applies its effect. It reports false when
// id no longer names a live power-up, so a pickup can never fire twice.
func (g *Game) pickUp(id ecs.EntityId) bool {
	e := g.world.Entities.Get(id)
	if e == nil || !e.Kind.IsPowerUp() {
		return false
	}
	kind := e.Kind
	g.world.Entities.Delete(id)

	g.activatePowerUp(kind)
	g.audio.PlaySound(SoundPowerUp)
	g.log.Info("power-up collected", slog.String("kind", kind.String()), slog.Uint64("tick", g.world.Tick))
	return true
}

// activatePowerUp applies an effect and schedules its revert. Picking up a
// type that is already active only restarts its timer.
func (g *Game) activatePowerUp(kind Kind) {
	if fx, ok := g.effects[kind]; ok {
		fx.cancel()
		fx.cancel = g.scheduleRevert(kind)
		return
	}

	fx := &activeEffect{}
	w := g.world
	pu := g.cfg.PowerUps
	switch kind {
	case KindShield:
		w.Player.Invincible = true
	case KindSlowTime:
		for id, e := range w.Entities.Iter() {
			if e.Kind.IsVehicle() {
				e.Speed *= pu.SlowFactor
				fx.slowed = append(fx.slowed, w.Entities.CreateEntityRef(id))
			}
		}
	case KindSpeedBoost:
		if pu.BoostMode == BoostMultiply {
			w.Player.Speed *= boostFactor
		} else {
			w.Player.Speed += pu.Boost
		}
	}
	fx.cancel = g.scheduleRevert(kind)
	g.effects[kind] = fx
}

func (g *Game) scheduleRevert(kind Kind) func() bool {
	epoch := g.epoch
	return g.clock.After(g.cfg.PowerUps.Duration, func() {
		if epoch != g.epoch {
			return
		}
		g.revertPowerUp(kind)
	})
}

// revertPowerUp undoes an active effect. Slowed vehicles that have since
// been removed are skipped.
func (g *Game) revertPowerUp(kind Kind) {
	fx, ok := g.effects[kind]
	if !ok {
		return
	}
	delete(g.effects, kind)

	w := g.world
	pu := g.cfg.PowerUps
	switch kind {
	case KindShield:
		w.Player.Invincible = false
	case KindSlowTime:
		for _, ref := range fx.slowed {
			if id, ok := w.Entities.ResolveEntityRef(ref); ok {
				w.Entities.Get(id).Speed /= pu.SlowFactor
			}
		}
	case KindSpeedBoost:
		if pu.BoostMode == BoostMultiply {
			w.Player.Speed /= boostFactor
		} else {
			w.Player.Speed -= pu.Boost
		}
	}
	g.log.Debug("power-up expired", slog.String("kind", kind.String()), slog.Uint64("tick", w.Tick))
}

// cancelEffects drops every pending revert without applying it.
func (g *Game) cancelEffects() {
	for kind, fx := range g.effects {
		fx.cancel()
		delete(g.effects, kind)
	}
}

// ActivePowerUps lists the power-up kinds currently in effect.
func (g *Game) ActivePowerUps() []Kind {
	active := make([]Kind, 0, len(g.effects))
	for _, kind := range powerUpKinds {
		if _, ok := g.effects[kind]; ok {
			active = append(active, kind)
		}
	}
	return active
}
