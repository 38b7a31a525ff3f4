package render

import (
	"math"
	"testing"

	"gridcaster/internal/graphics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeltaDistSentinel(t *testing.T) {
	assert.Equal(t, float64(FarPlane), deltaDist(0))
	assert.Equal(t, float64(FarPlane), deltaDist(1e-21))
	assert.Equal(t, float64(FarPlane), deltaDist(-1e-21))
	assert.Equal(t, 2.0, deltaDist(-0.5))
	assert.Equal(t, 4.0, deltaDist(0.25))
}

func TestCastRayAxisAligned(t *testing.T) {
	m := boxMap(t, 5)

	tests := []struct {
		name       string
		dirX, dirY float64
		side       int
		mapX, mapY int
	}{
		{"east, zero y component", 1, 0, 0, 4, 2},
		{"west, zero y component", -1, 0, 0, 0, 2},
		{"south, zero x component", 0, 1, 1, 2, 4},
		{"north, zero x component", 0, -1, 1, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := CastRay(m, observer(2.5, 2.5, tt.dirX, tt.dirY), 0)
			require.True(t, hit.Hit)
			assert.False(t, math.IsNaN(hit.Dist))
			assert.Equal(t, 1.5, hit.Dist)
			assert.Equal(t, tt.side, hit.Side)
			assert.Equal(t, tt.mapX, hit.MapX)
			assert.Equal(t, tt.mapY, hit.MapY)
			assert.Equal(t, uint8(1), hit.Tile)
		})
	}
}

func TestCastRayMissLeavesGrid(t *testing.T) {
	m := openMap(t, 3)
	for _, cameraX := range []float64{-1, -0.3, 0, 0.7, 1} {
		hit := CastRay(m, observer(1.5, 1.5, 1, 0.2), cameraX)
		assert.False(t, hit.Hit)
		assert.Equal(t, float64(FarPlane), hit.Dist)
	}
}

func TestCastRayTextureFlip(t *testing.T) {
	m := boxMap(t, 5)

	tests := []struct {
		name       string
		x, y       float64
		dirX, dirY float64
		wantU      float64
	}{
		{"x side, ray +x is mirrored", 2.5, 2.3, 1, 0, 0.7},
		{"x side, ray -x reads directly", 2.5, 2.3, -1, 0, 0.3},
		{"y side, ray +y reads directly", 2.3, 2.5, 0, 1, 0.3},
		{"y side, ray -y is mirrored", 2.3, 2.5, 0, -1, 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := CastRay(m, observer(tt.x, tt.y, tt.dirX, tt.dirY), 0)
			require.True(t, hit.Hit)
			assert.InDelta(t, tt.wantU, hit.U, 1e-9)
			assert.GreaterOrEqual(t, hit.U, 0.0)
			assert.Less(t, hit.U, 1.0)
		})
	}
}

func TestCastRayPerpendicularDistance(t *testing.T) {
	// Flat wall at x = 4: every column's perpendicular distance is the same
	// even though edge rays travel further.
	m := boxMap(t, 9)
	obs := observer(2.5, 4.5, 1, 0)
	for _, cameraX := range []float64{-0.5, -0.25, 0, 0.25, 0.5} {
		hit := CastRay(m, obs, cameraX)
		require.True(t, hit.Hit)
		assert.Equal(t, 0, hit.Side)
		assert.Equal(t, 8, hit.MapX)
		assert.InDelta(t, 5.5, hit.Dist, 1e-9)
	}
}

func TestDrawWallsStripAndDepth(t *testing.T) {
	const w, h = 8, 120
	r := newTestRenderer(t, w, h)
	m := boxMap(t, 5)
	obs := observer(2.5, 2.5, 1, 0)

	fb, stats := r.RenderFrame(m, obs, 0)
	assert.Equal(t, w, stats.WallHits)

	// center column: cameraX = 0, dist 1.5, lineH = 80
	const cx = w / 2
	assert.Equal(t, 1.5, fb.Depth[cx])
	for y := 20; y <= 100; y++ {
		require.Equal(t, wallColor, fb.At(cx, y), "row %d", y)
	}
	assert.Equal(t, ceilingColor, fb.At(cx, 19))
	assert.Equal(t, floorColor, fb.At(cx, 101))

	for x := 0; x < w; x++ {
		hit := CastRay(m, obs, 2*float64(x)/float64(w)-1)
		assert.Equal(t, hit.Dist, fb.Depth[x], "column %d", x)
	}
}

func TestDrawWallsMissKeepsFarPlane(t *testing.T) {
	const w, h = 8, 120
	r := newTestRenderer(t, w, h)
	fb, stats := r.RenderFrame(openMap(t, 3), observer(1.5, 1.5, 1, 0), 0)

	assert.Zero(t, stats.WallHits)
	for x := 0; x < w; x++ {
		assert.Equal(t, float64(FarPlane), fb.Depth[x])
		assert.Equal(t, ceilingColor, fb.At(x, 10))
		assert.Equal(t, floorColor, fb.At(x, 100))
		// the horizon rows belong to neither floor nor ceiling
		assert.Equal(t, bgColor, fb.At(x, 59))
		assert.Equal(t, bgColor, fb.At(x, 60))
	}
}

func TestDrawWallsSideShade(t *testing.T) {
	const w, h = 8, 120
	m := boxMap(t, 5)
	obs := observer(2.5, 2.5, 0, 1)

	flat := newTestRenderer(t, w, h)
	fb, _ := flat.RenderFrame(m, obs, 0)
	assert.Equal(t, wallColor, fb.At(w/2, h/2))

	shaded := newTestRenderer(t, w, h, func(o *Options) { o.SideShade = true })
	fb, _ = shaded.RenderFrame(m, obs, 0)
	assert.Equal(t, graphics.Darken(wallColor), fb.At(w/2, h/2))

	// x-side hits are never shaded
	fb, _ = shaded.RenderFrame(m, observer(2.5, 2.5, 1, 0), 0)
	assert.Equal(t, wallColor, fb.At(w/2, h/2))
}

func TestDrawWallsUnboundCodeUsesDefault(t *testing.T) {
	const w, h = 8, 60
	m := boxMap(t, 5)
	m.Cells[2*5+4] = 9

	r := newTestRenderer(t, w, h, func(o *Options) { o.DefaultWall = texCyan })
	fb, _ := r.RenderFrame(m, observer(2.5, 2.5, 1, 0), 0)
	assert.Equal(t, cyan, fb.At(w/2, h/2))
}

func TestDrawWallsCloseWallIsClamped(t *testing.T) {
	const w, h = 4, 40
	m := boxMap(t, 5)
	r := newTestRenderer(t, w, h)

	// standing on the face of the wall: the strip covers the whole column
	fb, _ := r.RenderFrame(m, observer(3.9999999, 2.5, 1, 0), 0)
	for y := 0; y < h; y++ {
		assert.Equal(t, wallColor, fb.At(w/2, y))
	}
}
