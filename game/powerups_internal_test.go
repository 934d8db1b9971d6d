package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlowTimeRevertSkipsReplacedVehicles(t *testing.T) {
	g := newInternalGame(t, DefaultConfig())
	g.Start()
	w := g.world

	gone := w.Entities.Spawn(Entity{Kind: KindCar, Speed: 2, Dir: 1})
	kept := w.Entities.Spawn(Entity{Kind: KindTruck, Speed: 1, Dir: -1})
	w.Entities.Spawn(Entity{Kind: KindShield})

	g.activatePowerUp(KindSlowTime)
	fx := g.effects[KindSlowTime]
	require.NotNil(t, fx)
	require.Len(t, fx.slowed, 2)
	assert.Equal(t, gone, fx.slowed[0].Id)

	require.True(t, w.Entities.Delete(gone))
	assert.Zero(t, fx.slowed[0].Id)

	// the freed slot goes to a new vehicle that was never slowed
	fresh := w.Entities.Spawn(Entity{Kind: KindCar, Speed: 3, Dir: 1})
	require.Equal(t, gone.Index(), fresh.Index())

	g.revertPowerUp(KindSlowTime)
	assert.Equal(t, 3.0, w.Entities.Get(fresh).Speed)
	assert.Equal(t, 1.0, w.Entities.Get(kept).Speed)
	assert.Empty(t, g.effects)
}
