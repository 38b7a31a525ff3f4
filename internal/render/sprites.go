package render

import (
	"math"
	"sort"

	"gridcaster/internal/camera"
	"gridcaster/internal/graphics"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/world"
)

// SpriteStats counts what the sprite pass did with each record.
type SpriteStats struct {
	Drawn    int // at least one column passed the depth test
	Culled   int // behind the camera plane
	Occluded int // no column survived clipping and the depth test
	Overlays int // screen-space UI sprites
	Impacts  int // projectiles destroyed by entering a solid or out-of-grid cell
}

// Transform maps a world position into camera space using the inverse of
// the [plane dir] matrix. tY is the depth along the view direction; tX is
// the lateral offset, positive to the right.
func Transform(obs camera.Observer, x, y float64) (tX, tY float64) {
	dx := x - obs.X
	dy := y - obs.Y
	invDet := 1 / (obs.PlaneX*obs.DirY - obs.DirX*obs.PlaneY)
	tX = invDet * (obs.DirY*dx - obs.DirX*dy)
	tY = invDet * (-obs.PlaneY*dx + obs.PlaneX*dy)
	return tX, tY
}

// clampExtent converts a projected screen quantity to int without overflow.
func clampExtent(v float64) int {
	return int(mathutil.Clamp(v, -maxExtent, maxExtent))
}

// sortBackToFront orders sprite indices by descending squared distance.
// Ties keep list order.
func sortBackToFront(order []int, sprites []world.Sprite, obs camera.Observer) {
	dist := func(i int) float64 {
		dx := sprites[i].X - obs.X
		dy := sprites[i].Y - obs.Y
		return dx*dx + dy*dy
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dist(order[a]) > dist(order[b])
	})
}

// advanceProjectile moves a projectile by one frame and destroys it when it
// enters a solid or out-of-grid cell or outlives its lifetime. It reports
// whether the projectile hit something.
func (r *Renderer) advanceProjectile(m *world.Map, s *world.Sprite, dt float64) bool {
	dx, dy := mathutil.Normalize(s.DirX, s.DirY)
	if n := r.opts.ProjectileNoise; n > 0 {
		dx += (r.rng.Float64()*2 - 1) * n
		dy += (r.rng.Float64()*2 - 1) * n
	}
	s.VX = dx * r.opts.ProjectileSpeed
	s.VY = dy * r.opts.ProjectileSpeed
	s.X += s.VX * dt
	s.Y += s.VY * dt
	s.Age += dt

	if !m.IsEmptyAt(int(math.Floor(s.X)), int(math.Floor(s.Y))) {
		s.Destroyed = true
		return true
	}
	if r.opts.ProjectileLifetime > 0 && s.Age >= r.opts.ProjectileLifetime {
		s.Destroyed = true
	}
	return false
}

// drawSprites composites world sprites back to front with a per-column depth
// test, then UI overlays on top with no depth test. dt is clamped to [0, 1].
func (r *Renderer) drawSprites(m *world.Map, obs camera.Observer, dt float64) SpriteStats {
	var stats SpriteStats
	dt = mathutil.Clamp(dt, 0, 1)

	r.order = r.order[:0]
	for i := range m.Sprites {
		s := &m.Sprites[i]
		if s.Destroyed || s.UI {
			continue
		}
		r.order = append(r.order, i)
	}
	sortBackToFront(r.order, m.Sprites, obs)

	for _, i := range r.order {
		s := &m.Sprites[i]
		if s.Projectile && r.advanceProjectile(m, s, dt) {
			stats.Impacts++
		}
		if s.Destroyed {
			continue
		}

		tX, tY := Transform(obs, s.X, s.Y)
		if tY <= 0 {
			stats.Culled++
			continue
		}

		w, h := r.fb.Width, r.fb.Height
		screenX := clampExtent(float64(w) / 2 * (1 + tX/tY))
		size := mathutil.IntAbs(clampExtent(float64(h) / tY))
		left := screenX - size/2
		top := h/2 - size/2
		if r.blit(r.textures.Get(s.Texture), left, top, size, tY) {
			stats.Drawn++
		} else {
			stats.Occluded++
		}
	}

	for i := range m.Sprites {
		s := &m.Sprites[i]
		if !s.UI || s.Destroyed {
			continue
		}
		w, h := r.fb.Width, r.fb.Height
		size := int(r.opts.UIScale * float64(h))
		cx := clampExtent(s.X * float64(w))
		cy := clampExtent(s.Y * float64(h))
		r.blit(r.textures.Get(s.Texture), cx-size/2, cy-size/2, size, -1)
		stats.Overlays++
	}
	return stats
}

// blit draws tex scaled to a size x size square at (left, top), clipped to
// the framebuffer. A column is written only when depth < Depth[column]; a
// negative depth disables the test. Transparent texels are skipped. It
// reports whether any column passed the depth test.
func (r *Renderer) blit(tex *graphics.Texture, left, top, size int, depth float64) bool {
	if size <= 0 {
		return false
	}
	fb := r.fb
	x0, x1 := mathutil.IntMax(left, 0), mathutil.IntMin(left+size, fb.Width)
	y0, y1 := mathutil.IntMax(top, 0), mathutil.IntMin(top+size, fb.Height)

	visible := false
	for x := x0; x < x1; x++ {
		if depth >= 0 && depth >= fb.Depth[x] {
			continue
		}
		visible = true
		texX := (x - left) * tex.Width / size
		for y := y0; y < y1; y++ {
			texY := (y - top) * tex.Height / size
			c := tex.Pix[texY*tex.Width+texX]
			if graphics.IsTransparent(c) {
				continue
			}
			fb.Pix[y*fb.Width+x] = c
		}
	}
	return visible
}
