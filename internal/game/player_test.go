package game

import (
	"testing"

	"gridcaster/internal/camera"
	"gridcaster/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomMap(t *testing.T) *world.Map {
	t.Helper()
	cells := []uint8{
		1, 1, 1, 1, 1,
		1, 0, 0, 0, 1,
		1, 0, 0, 0, 1,
		1, 0, 0, 0, 1,
		1, 1, 1, 1, 1,
	}
	m, err := world.NewMap(5, cells)
	require.NoError(t, err)
	return m
}

func newPlayer(x, y, dirX, dirY float64) *Player {
	return &Player{
		Observer:      camera.New(x, y, dirX, dirY, 1.2),
		MoveSpeed:     1,
		RotationSpeed: 2,
	}
}

func TestPlayerMovesForwardAndStrafes(t *testing.T) {
	m := roomMap(t)
	p := newPlayer(1.5, 2.5, 1, 0)

	p.Update(m, Input{Forward: true}, 1)
	assert.InDelta(t, 2.5, p.Observer.X, 1e-9)
	assert.InDelta(t, 2.5, p.Observer.Y, 1e-9)

	// right of +x is +y in map space
	p.Update(m, Input{StrafeRight: true}, 0.5)
	assert.InDelta(t, 2.5, p.Observer.X, 1e-9)
	assert.InDelta(t, 3.0, p.Observer.Y, 1e-9)

	p.Update(m, Input{Back: true, StrafeLeft: true}, 0.5)
	assert.InDelta(t, 2.0, p.Observer.X, 1e-9)
	assert.InDelta(t, 2.5, p.Observer.Y, 1e-9)
}

func TestPlayerSlidesAlongWall(t *testing.T) {
	m := roomMap(t)
	p := newPlayer(1.5, 1.5, 1, -1)

	p.Update(m, Input{Forward: true}, 1)
	// the diagonal step ends in the top wall; only x survives
	assert.InDelta(t, 1.5+0.7071067811865476, p.Observer.X, 1e-9)
	assert.Equal(t, 1.5, p.Observer.Y)
}

func TestPlayerBlockedInCorner(t *testing.T) {
	m := roomMap(t)
	p := newPlayer(1.2, 1.2, -1, -1)

	p.Update(m, Input{Forward: true}, 1)
	assert.Equal(t, 1.2, p.Observer.X)
	assert.Equal(t, 1.2, p.Observer.Y)
}

func TestPlayerTurnKeys(t *testing.T) {
	m := roomMap(t)
	p := newPlayer(2.5, 2.5, 1, 0)

	p.Update(m, Input{TurnRight: true}, 0.25)
	assert.InDelta(t, 0.5, p.Observer.Angle(), 1e-9)
	p.Update(m, Input{TurnLeft: true}, 0.5)
	assert.InDelta(t, -0.5, p.Observer.Angle(), 1e-9)
	p.Update(m, Input{TurnLeft: true, TurnRight: true}, 1)
	assert.InDelta(t, -0.5, p.Observer.Angle(), 1e-9)
}

func TestPlayerFireSpawnsAhead(t *testing.T) {
	m := roomMap(t)
	p := newPlayer(2.5, 2.5, 0, 1)
	p.ProjectileTex = 12

	require.True(t, p.Update(m, Input{Fire: true}, 0))
	require.Len(t, m.Sprites, 1)
	s := m.Sprites[0]
	assert.InDelta(t, 2.5, s.X, 1e-9)
	assert.InDelta(t, 3.0, s.Y, 1e-9)
	assert.Equal(t, 1.0, s.DirY)
	assert.Equal(t, 12, s.Texture)
	assert.True(t, s.Projectile)
}

func TestInputAxes(t *testing.T) {
	fwd, right := Input{Forward: true, StrafeLeft: true}.Move()
	assert.Equal(t, 1.0, fwd)
	assert.Equal(t, -1.0, right)

	fwd, right = Input{Forward: true, Back: true}.Move()
	assert.Zero(t, fwd)
	assert.Zero(t, right)

	assert.Equal(t, 1.0, Input{TurnRight: true}.Turn())
	assert.Equal(t, -1.0, Input{TurnLeft: true}.Turn())
}

func TestInputMerge(t *testing.T) {
	in := Input{Forward: true, YawDelta: 3}.Merge(Input{Fire: true, YawDelta: -1})
	assert.Equal(t, Input{Forward: true, Fire: true, YawDelta: 2}, in)
}

func TestAnimatorIgnoresShortCyclesAndProjectiles(t *testing.T) {
	m := roomMap(t)
	m.Spawn(world.Sprite{X: 1.5, Y: 1.5, Texture: 5})
	m.Spawn(world.Sprite{X: 2.5, Y: 1.5, Texture: 1, Projectile: true})
	m.Spawn(world.Sprite{X: 3.5, Y: 1.5, Texture: 1})

	a := NewAnimator()
	a.AddCycle([]int{5}, 1)
	a.AddCycle([]int{1, 2}, 2)
	a.AddCycle([]int{7, 8}, 0)

	assert.Zero(t, a.Step(m))
	assert.Equal(t, 1, a.Step(m))
	assert.Equal(t, 5, m.Sprites[0].Texture)
	assert.Equal(t, 1, m.Sprites[1].Texture)
	assert.Equal(t, 2, m.Sprites[2].Texture)
}
