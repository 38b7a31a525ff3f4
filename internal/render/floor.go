package render

import (
	"math"

	"gridcaster/internal/camera"
	"gridcaster/internal/workers"
)

// drawFloorCeiling fills every row below the horizon with the floor texture
// and mirrors each one to row H-1-y with the ceiling texture. It writes no
// depth; walls drawn afterwards overwrite it.
func (r *Renderer) drawFloorCeiling(obs camera.Observer) {
	fb := r.fb
	w, h := fb.Width, fb.Height
	floor := r.textures.Get(r.opts.Floor)
	ceil := r.textures.Get(r.opts.Ceiling)

	// leftmost and rightmost rays
	rayX0, rayY0 := obs.DirX-obs.PlaneX, obs.DirY-obs.PlaneY
	rayX1, rayY1 := obs.DirX+obs.PlaneX, obs.DirY+obs.PlaneY

	posZ := 0.5 * float64(h)
	// rows are independent; row y and its mirror H-1-y never collide
	workers.Range(r.pool, h/2, h, func(y int) {
		p := y - h/2
		if p <= 0 {
			return
		}
		rowDistance := posZ / float64(p)

		stepX := rowDistance * (rayX1 - rayX0) / float64(w)
		stepY := rowDistance * (rayY1 - rayY0) / float64(w)
		worldX := obs.X + rowDistance*rayX0
		worldY := obs.Y + rowDistance*rayY0

		floorRow := fb.Pix[y*w : (y+1)*w]
		ceilRow := fb.Pix[(h-1-y)*w : (h-y)*w]
		for x := 0; x < w; x++ {
			fx := worldX - math.Floor(worldX)
			fy := worldY - math.Floor(worldY)
			worldX += stepX
			worldY += stepY

			tx := int(float64(floor.Width)*fx) & (floor.Width - 1)
			ty := int(float64(floor.Height)*fy) & (floor.Height - 1)
			floorRow[x] = floor.Pix[ty*floor.Width+tx]

			tx = int(float64(ceil.Width)*fx) & (ceil.Width - 1)
			ty = int(float64(ceil.Height)*fy) & (ceil.Height - 1)
			ceilRow[x] = ceil.Pix[ty*ceil.Width+tx]
		}
	})
}
