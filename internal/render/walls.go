package render

import (
	"math"
	"sync/atomic"

	"gridcaster/internal/camera"
	"gridcaster/internal/graphics"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/workers"
	"gridcaster/internal/world"
)

const (
	// degenerateRay is the largest ray component treated as zero.
	degenerateRay = 1e-20
	// maxExtent caps projected wall and sprite sizes before int conversion.
	maxExtent = 1 << 20
)

// RayHit describes where one column's ray stopped.
type RayHit struct {
	Hit        bool
	MapX, MapY int
	// Side is 0 when the last DDA step crossed a vertical grid line (x step)
	// and 1 for a horizontal one.
	Side int
	// Dist is the perpendicular distance to the wall, FarPlane on a miss.
	Dist float64
	Tile uint8
	// U is the horizontal texture coordinate in [0, 1), already mirrored so
	// textures read left-to-right from every viewing side.
	U                float64
	RayDirX, RayDirY float64
}

func deltaDist(rayDir float64) float64 {
	if math.Abs(rayDir) < degenerateRay {
		return FarPlane
	}
	return math.Abs(1 / rayDir)
}

// CastRay marches the grid from the observer along dir + plane*cameraX,
// cameraX in [-1, 1], until it enters a solid cell or leaves the grid.
func CastRay(m *world.Map, obs camera.Observer, cameraX float64) RayHit {
	rayDirX := obs.DirX + obs.PlaneX*cameraX
	rayDirY := obs.DirY + obs.PlaneY*cameraX

	mapX := int(math.Floor(obs.X))
	mapY := int(math.Floor(obs.Y))

	deltaX := deltaDist(rayDirX)
	deltaY := deltaDist(rayDirY)

	var stepX, stepY int
	var sideX, sideY float64
	if rayDirX < 0 {
		stepX = -1
		sideX = (obs.X - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - obs.X) * deltaX
	}
	if rayDirY < 0 {
		stepY = -1
		sideY = (obs.Y - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1 - obs.Y) * deltaY
	}

	hit := RayHit{Dist: FarPlane, RayDirX: rayDirX, RayDirY: rayDirY}
	for {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			hit.Side = 0
		} else {
			sideY += deltaY
			mapY += stepY
			hit.Side = 1
		}
		code, ok := m.Tile(mapX, mapY)
		if !ok {
			return hit
		}
		if code != world.Empty {
			hit.Hit = true
			hit.Tile = code
			break
		}
	}

	hit.MapX, hit.MapY = mapX, mapY
	if hit.Side == 0 {
		hit.Dist = sideX - deltaX
	} else {
		hit.Dist = sideY - deltaY
	}

	var wallX float64
	if hit.Side == 0 {
		wallX = obs.Y + hit.Dist*rayDirY
	} else {
		wallX = obs.X + hit.Dist*rayDirX
	}
	wallX = mathutil.Frac(wallX)
	if (hit.Side == 0 && rayDirX > 0) || (hit.Side == 1 && rayDirY < 0) {
		wallX = 1 - wallX
	}
	hit.U = wallX
	return hit
}

// wallTexture maps a tile code to a texture ID, falling back to the default
// wall for codes without a binding.
func (r *Renderer) wallTexture(code uint8) int {
	if id, ok := r.opts.WallTextures[code]; ok {
		return id
	}
	return r.opts.DefaultWall
}

// drawWalls casts one ray per column, draws the textured strip and records
// the column's depth. Columns are independent and may run on the worker
// pool. It returns the number of columns that hit a wall.
func (r *Renderer) drawWalls(m *world.Map, obs camera.Observer) int {
	var hits atomic.Int32
	workers.Range(r.pool, 0, r.fb.Width, func(x int) {
		if r.drawWallColumn(m, obs, x) {
			hits.Add(1)
		}
	})
	return int(hits.Load())
}

func (r *Renderer) drawWallColumn(m *world.Map, obs camera.Observer, x int) bool {
	fb := r.fb
	w, h := fb.Width, fb.Height

	cameraX := 2*float64(x)/float64(w) - 1
	hit := CastRay(m, obs, cameraX)
	if !hit.Hit {
		fb.Depth[x] = FarPlane
		return false
	}

	tex := r.textures.Get(r.wallTexture(hit.Tile))
	texX := mathutil.IntClamp(int(hit.U*float64(tex.Width)), 0, tex.Width-1)

	lineH := int(math.Min(float64(h)/hit.Dist, maxExtent))
	if lineH < 1 {
		lineH = 1
	}
	drawStart := mathutil.IntMax(h/2-lineH/2, 0)
	drawEnd := mathutil.IntMin(h/2+lineH/2, h-1)

	step := float64(tex.Height) / float64(lineH)
	texPos := float64(drawStart-h/2+lineH/2) * step
	shade := r.opts.SideShade && hit.Side == 1
	for y := drawStart; y <= drawEnd; y++ {
		texY := int(texPos) & (tex.Height - 1)
		texPos += step
		c := tex.Pix[texY*tex.Width+texX]
		if shade {
			c = graphics.Darken(c)
		}
		fb.Pix[y*w+x] = c
	}
	fb.Depth[x] = hit.Dist
	return true
}
