package render

import (
	"math"
	"testing"

	"gridcaster/internal/camera"
	"gridcaster/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTransformUsesPerpendicularDistance checks that the camera-space depth
// is the distance along the view direction, not the Euclidean distance, so
// sprites stay aligned with the floor when seen at an angle.
func TestTransformUsesPerpendicularDistance(t *testing.T) {
	fov := math.Pi / 3

	testCases := []struct {
		name       string
		camX, camY float64
		camAngle   float64
		entityX    float64
		entityY    float64
	}{
		{
			name: "entity directly ahead - perp equals euclidean",
			camX: 5, camY: 5,
			camAngle: 0,
			entityX:  8, entityY: 5,
		},
		{
			name: "entity at angle - perp less than euclidean",
			camX: 5, camY: 5,
			camAngle: 0,
			entityX:  8, entityY: 7,
		},
		{
			name: "entity at steep angle",
			camX: 5, camY: 5,
			camAngle: 0,
			entityX:  6, entityY: 8,
		},
		{
			name: "rotated camera",
			camX: 3, camY: 4,
			camAngle: 2.1,
			entityX:  1.5, entityY: 6,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			obs := observer(tc.camX, tc.camY, 1, 0)
			obs = cameraFOV(obs, fov)
			obs.Rotate(tc.camAngle)

			dx := tc.entityX - tc.camX
			dy := tc.entityY - tc.camY
			euclideanDist := math.Hypot(dx, dy)
			angleDiff := math.Atan2(dy, dx) - tc.camAngle

			_, perpDist := Transform(obs, tc.entityX, tc.entityY)
			assert.InDelta(t, euclideanDist*math.Cos(angleDiff), perpDist, 1e-9)
			if math.Abs(math.Sin(angleDiff)) > 1e-9 {
				assert.Less(t, perpDist, euclideanDist)
			}
		})
	}
}

// cameraFOV rebuilds obs facing the same way with a different field of view.
func cameraFOV(obs camera.Observer, fov float64) camera.Observer {
	half := math.Tan(fov / 2)
	obs.PlaneX, obs.PlaneY = -obs.DirY*half, obs.DirX*half
	return obs
}

func TestTransformLateralOffset(t *testing.T) {
	obs := observer(5, 5, 1, 0)

	// right of the view direction is +y in map space
	tX, _ := Transform(obs, 8, 6)
	assert.Greater(t, tX, 0.0)
	tX, _ = Transform(obs, 8, 4)
	assert.Less(t, tX, 0.0)

	// a point on the rightmost ray lands on the right screen edge
	const w = 320.0
	tX, tY := Transform(obs, 5+2, 5+2*obs.PlaneY)
	assert.InDelta(t, w, w/2*(1+tX/tY), 1e-9)

	// behind the camera plane
	_, tY = Transform(obs, 4, 5)
	assert.Less(t, tY, 0.0)
}

func TestSortBackToFront(t *testing.T) {
	obs := observer(0, 0, 1, 0)
	sprites := []world.Sprite{
		{ID: 1, X: 1},
		{ID: 2, X: 3},
		{ID: 3, Y: 1}, // ties with ID 1
		{ID: 4, X: 2},
	}
	order := []int{0, 1, 2, 3}
	sortBackToFront(order, sprites, obs)
	assert.Equal(t, []int{1, 3, 0, 2}, order)
}

func TestSpriteOcclusion(t *testing.T) {
	r := newTestRenderer(t, 64, 64)
	m := boxMap(t, 7, [2]int{3, 3})
	m.Spawn(world.Sprite{X: 5.5, Y: 3.5, Texture: texCyan})   // behind the pillar
	m.Spawn(world.Sprite{X: 2.5, Y: 3.5, Texture: texYellow}) // in front of it

	fb, stats := r.RenderFrame(m, observer(1.5, 3.5, 1, 0), 0)
	assert.Equal(t, 1, stats.Sprites.Drawn)
	assert.Equal(t, 1, stats.Sprites.Occluded)
	assert.Equal(t, yellow, fb.At(32, 32))
	for i := range fb.Pix {
		require.NotEqual(t, cyan, fb.Pix[i])
	}
}

func TestSpritePainterOrder(t *testing.T) {
	for _, nearFirst := range []bool{true, false} {
		r := newTestRenderer(t, 64, 64)
		m := boxMap(t, 7)
		near := world.Sprite{X: 2.5, Y: 3.5, Texture: texYellow}
		far := world.Sprite{X: 3.5, Y: 3.5, Texture: texCyan}
		if nearFirst {
			m.Spawn(near)
			m.Spawn(far)
		} else {
			m.Spawn(far)
			m.Spawn(near)
		}

		fb, stats := r.RenderFrame(m, observer(1.5, 3.5, 1, 0), 0)
		assert.Equal(t, 2, stats.Sprites.Drawn)
		assert.Equal(t, yellow, fb.At(32, 32), "near sprite wins, list order %v", nearFirst)
	}
}

func TestSpriteTransparency(t *testing.T) {
	m := boxMap(t, 7)
	obs := observer(1.5, 3.5, 1, 0)

	base, _ := newTestRenderer(t, 64, 64).RenderFrame(m, obs, 0)
	base = base.Clone()

	m.Spawn(world.Sprite{X: 2.5, Y: 3.5, Texture: texKeyed})
	fb, stats := newTestRenderer(t, 64, 64).RenderFrame(m, obs, 0)
	require.Equal(t, 1, stats.Sprites.Drawn)

	// left half of the texture is fully transparent
	assert.Equal(t, base.At(10, 32), fb.At(10, 32))
	// opaque black is the colour key
	assert.Equal(t, base.At(0, 0), fb.At(0, 0))
	assert.Equal(t, yellow, fb.At(50, 32))
}

func TestSpriteBehindCameraIsCulled(t *testing.T) {
	r := newTestRenderer(t, 32, 32)
	m := boxMap(t, 7)
	m.Spawn(world.Sprite{X: 1.5, Y: 3.5, Texture: texYellow})

	_, stats := r.RenderFrame(m, observer(2.5, 3.5, 1, 0), 0)
	assert.Equal(t, 1, stats.Sprites.Culled)
	assert.Zero(t, stats.Sprites.Drawn)
}

func TestUIOverlayIgnoresDepth(t *testing.T) {
	r := newTestRenderer(t, 64, 64)
	m := boxMap(t, 5)
	id := m.Spawn(world.Sprite{X: 0.5, Y: 0.5, UI: true, Texture: texYellow})

	fb, stats := r.RenderFrame(m, observer(2.5, 2.5, 1, 0), 0)
	assert.Equal(t, 1, stats.Sprites.Overlays)
	assert.Zero(t, stats.Sprites.Drawn)

	// UIScale 0.5 of 64 rows: a 32px square centred on the screen
	assert.Equal(t, yellow, fb.At(32, 32))
	assert.Equal(t, yellow, fb.At(16, 16))
	assert.Equal(t, yellow, fb.At(47, 47))
	assert.NotEqual(t, yellow, fb.At(15, 32))
	assert.NotEqual(t, yellow, fb.At(48, 32))

	s := m.Sprite(id)
	require.NotNil(t, s)
	assert.Equal(t, 0.5, s.X)
	assert.Equal(t, 0.5, s.Y)
}

func TestProjectileImpactIsPurgedSameFrame(t *testing.T) {
	r := newTestRenderer(t, 32, 32)
	m := boxMap(t, 5)
	first := m.Spawn(world.Sprite{X: 2.5, Y: 1.5, Texture: texYellow})
	m.Spawn(world.Sprite{X: 3.5, Y: 2.5, DirX: 1, Projectile: true, Texture: texCyan})
	last := m.Spawn(world.Sprite{X: 2.5, Y: 3.5, Texture: texYellow})

	_, stats := r.RenderFrame(m, observer(1.5, 2.5, 1, 0), 1)
	assert.Equal(t, 1, stats.Sprites.Impacts)
	assert.Equal(t, 1, stats.Purged)
	require.Len(t, m.Sprites, 2)
	assert.Equal(t, first, m.Sprites[0].ID)
	assert.Equal(t, last, m.Sprites[1].ID)
}

func TestProjectileLeavingGridIsDestroyed(t *testing.T) {
	r := newTestRenderer(t, 16, 16)
	m := openMap(t, 3)
	m.Spawn(world.Sprite{X: 2.5, Y: 1.5, DirX: 1, Projectile: true})

	_, stats := r.RenderFrame(m, observer(0.5, 1.5, 1, 0), 1)
	assert.Equal(t, 1, stats.Sprites.Impacts)
	assert.Empty(t, m.Sprites)
}

func TestProjectileDeltaTimeIsClamped(t *testing.T) {
	r := newTestRenderer(t, 16, 16)
	m := boxMap(t, 13)
	id := m.Spawn(world.Sprite{X: 1.5, Y: 6.5, DirX: 1, Projectile: true})
	obs := observer(6.5, 10.5, 0, -1)

	r.RenderFrame(m, obs, -5)
	s := m.Sprite(id)
	require.NotNil(t, s)
	assert.Equal(t, 1.5, s.X)
	assert.Zero(t, s.Age)

	r.RenderFrame(m, obs, 10)
	s = m.Sprite(id)
	require.NotNil(t, s)
	assert.Equal(t, 2.5, s.X)
	assert.Equal(t, 6.5, s.Y)
	assert.Equal(t, 1.0, s.Age)
	assert.Equal(t, 1.0, s.VX)
}

func TestProjectileLifetime(t *testing.T) {
	r := newTestRenderer(t, 16, 16, func(o *Options) { o.ProjectileLifetime = 0.5 })
	m := boxMap(t, 13)
	id := m.Spawn(world.Sprite{X: 6.5, Y: 6.5, DirY: 1, Projectile: true})
	obs := observer(2.5, 2.5, 1, 0)

	_, stats := r.RenderFrame(m, obs, 0.3)
	require.NotNil(t, m.Sprite(id))
	assert.Zero(t, stats.Purged)

	_, stats = r.RenderFrame(m, obs, 0.3)
	assert.Nil(t, m.Sprite(id))
	assert.Equal(t, 1, stats.Purged)
	assert.Zero(t, stats.Sprites.Impacts)
}

func TestProjectileNoiseIsBounded(t *testing.T) {
	r := newTestRenderer(t, 16, 16, func(o *Options) { o.ProjectileNoise = 0.1 })
	m := boxMap(t, 13)
	obs := observer(2.5, 2.5, 1, 0)

	for i := 0; i < 50; i++ {
		id := m.Spawn(world.Sprite{X: 6.5, Y: 6.5, DirX: 1, Projectile: true})
		r.RenderFrame(m, obs, 1)
		s := m.Sprite(id)
		require.NotNil(t, s)
		assert.InDelta(t, 1.0, s.VX, 0.1)
		assert.InDelta(t, 0.0, s.VY, 0.1)
		assert.InDelta(t, 7.5, s.X, 0.1)
		assert.InDelta(t, 6.5, s.Y, 0.1)
		assert.Equal(t, 1.0, s.DirX, "noise never feeds back into the heading")
		s.Destroyed = true
	}
}
