package game

import (
	"gridcaster/internal/camera"
	"gridcaster/internal/world"
)

// spawnDistance is how far ahead of the observer a projectile appears.
const spawnDistance = 0.5

// Player turns input into observer motion and projectile spawns.
type Player struct {
	Observer camera.Observer

	MoveSpeed        float64 // cells per second
	RotationSpeed    float64 // radians per second for the turn keys
	MouseSensitivity float64 // radians per pointer pixel
	FireCooldown     float64 // seconds between shots
	ProjectileTex    int

	cooldown float64
}

// Update applies one tick of input. It reports whether a projectile was
// appended to m.
func (p *Player) Update(m *world.Map, in Input, dt float64) bool {
	if p.cooldown > 0 {
		p.cooldown -= dt
	}

	yaw := in.YawDelta*p.MouseSensitivity + in.Turn()*p.RotationSpeed*dt
	if yaw != 0 {
		p.Observer.Rotate(yaw)
	}

	if fwd, right := in.Move(); fwd != 0 || right != 0 {
		step := p.MoveSpeed * dt
		rx, ry := p.Observer.Right()
		dx := (p.Observer.DirX*fwd + rx*right) * step
		dy := (p.Observer.DirY*fwd + ry*right) * step
		p.move(m, dx, dy)
	}

	if in.Fire && p.cooldown <= 0 {
		p.fire(m)
		p.cooldown = p.FireCooldown
		return true
	}
	return false
}

// move tries the full step, then each axis on its own so the observer slides
// along walls instead of sticking to them.
func (p *Player) move(m *world.Map, dx, dy float64) {
	o := &p.Observer
	if o.AttemptMove(m, o.X+dx, o.Y+dy) {
		return
	}
	if dx != 0 && o.AttemptMove(m, o.X+dx, o.Y) {
		return
	}
	if dy != 0 {
		o.AttemptMove(m, o.X, o.Y+dy)
	}
}

func (p *Player) fire(m *world.Map) {
	o := p.Observer
	m.Spawn(world.Sprite{
		X:          o.X + o.DirX*spawnDistance,
		Y:          o.Y + o.DirY*spawnDistance,
		DirX:       o.DirX,
		DirY:       o.DirY,
		Projectile: true,
		Texture:    p.ProjectileTex,
	})
}
