// Package camera holds the first-person observer: a position, a unit view
// direction and the camera plane that sets the field of view.
package camera

import (
	"math"

	"gridcaster/internal/mathutil"
	"gridcaster/internal/world"
)

// Observer is the viewpoint for one frame. Plane is perpendicular to Dir and
// its length is tan(fov/2); it points to the right-hand side of the screen.
type Observer struct {
	X, Y           float64
	DirX, DirY     float64
	PlaneX, PlaneY float64
}

// New places an observer at (x, y) looking along (dirX, dirY) with the given
// horizontal field of view in radians. The direction is normalized once here.
func New(x, y, dirX, dirY, fov float64) Observer {
	dirX, dirY = mathutil.Normalize(dirX, dirY)
	if dirX == 0 && dirY == 0 {
		dirX = 1
	}
	half := math.Tan(fov / 2)
	return Observer{
		X: x, Y: y,
		DirX: dirX, DirY: dirY,
		PlaneX: -dirY * half, PlaneY: dirX * half,
	}
}

// Rotate turns dir and plane together by angle radians. Positive angles
// turn towards the plane, i.e. to the right on screen. No renormalization is
// applied; a rotation matrix preserves both lengths.
func (o *Observer) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)

	dirX := o.DirX
	o.DirX = dirX*cos - o.DirY*sin
	o.DirY = dirX*sin + o.DirY*cos

	planeX := o.PlaneX
	o.PlaneX = planeX*cos - o.PlaneY*sin
	o.PlaneY = planeX*sin + o.PlaneY*cos
}

// AttemptMove moves to (x, y) only if that cell is inside the grid and
// empty, and reports whether the move happened.
func (o *Observer) AttemptMove(m *world.Map, x, y float64) bool {
	if !m.IsEmptyAt(int(math.Floor(x)), int(math.Floor(y))) {
		return false
	}
	o.X, o.Y = x, y
	return true
}

// Cell returns the grid cell the observer stands in.
func (o Observer) Cell() (int, int) {
	return int(math.Floor(o.X)), int(math.Floor(o.Y))
}

// Angle returns the view heading in radians.
func (o Observer) Angle() float64 {
	return math.Atan2(o.DirY, o.DirX)
}

// FOV returns the horizontal field of view implied by the plane length.
func (o Observer) FOV() float64 {
	return 2 * math.Atan(math.Hypot(o.PlaneX, o.PlaneY)/math.Hypot(o.DirX, o.DirY))
}

// Right returns the unit vector to the observer's right.
func (o Observer) Right() (float64, float64) {
	return mathutil.Normalize(o.PlaneX, o.PlaneY)
}
