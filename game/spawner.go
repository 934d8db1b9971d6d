package game

import "github.com/plus3/crossing/ecs"

// spawnSystem rolls for new vehicles and power-ups every tick. New entities
// are queued and join the world when the frame is flushed.
type spawnSystem struct {
	game *Game
}

func (s *spawnSystem) Execute(frame *ecs.UpdateFrame[Entity]) {
	g := s.game
	if g.rng.Float64() < g.vehicleChance() {
		frame.Commands.Spawn(g.newVehicle())
	}
	if g.cfg.PowerUps.Enabled && g.rng.Float64() < g.cfg.PowerUps.Chance {
		frame.Commands.Spawn(g.newPowerUp())
	}
}

// vehicleChance grows linearly with level up to the configured cap.
func (g *Game) vehicleChance() float64 {
	return min(g.cfg.Spawn.VehicleChance*float64(g.world.Level), g.cfg.Spawn.MaxVehicleChance)
}

func (g *Game) newVehicle() Entity {
	lanes := g.world.layout.Lanes
	lane := g.rng.IntN(len(lanes))

	dir := 1.0
	switch g.cfg.Spawn.LaneDirection {
	case LanesAlternating:
		if lane%2 == 1 {
			dir = -1
		}
	case LanesRandom:
		if g.rng.IntN(2) == 1 {
			dir = -1
		}
	}

	kind, spec := KindCar, untypedVehicle
	if g.cfg.Spawn.VehicleTypes {
		kind = vehicleKinds[g.rng.IntN(len(vehicleKinds))]
		spec = vehicleSpecs[kind]
	}
	speed := spec.minSpeed + g.rng.Float64()*(spec.maxSpeed-spec.minSpeed)

	band := lanes[lane]
	x := -spec.width
	if dir < 0 {
		x = g.cfg.World.Width
	}

	return Entity{
		Kind:  kind,
		Pos:   Vec2{X: x, Y: band.Y + vehiclePadding},
		Size:  Vec2{X: spec.width, Y: band.Height - 2*vehiclePadding},
		Dir:   dir,
		Speed: speed * g.world.SpeedMultiplier,
		Lane:  lane,
	}
}

func (g *Game) newPowerUp() Entity {
	pu := g.cfg.PowerUps
	w := g.cfg.World

	e := Entity{
		Kind: powerUpKinds[g.rng.IntN(len(powerUpKinds))],
		Size: Vec2{X: pu.Size, Y: pu.Size},
		Lane: -1,
	}
	e.Pos.X = g.rng.Float64() * (w.Width - pu.Size)
	if pu.Motion == PowerUpsFalling {
		e.Pos.Y = w.Height - pu.Size
		e.Speed = pu.FallSpeed
	} else {
		e.Pos.Y = g.rng.Float64() * (w.Height - pu.Size)
	}
	return e
}
