package game

import "gridcaster/internal/world"

// cycle is a resolved animation: texture IDs and ticks per frame.
type cycle struct {
	frames   []int
	interval int
}

// Animator steps sprites whose texture belongs to a cycle to the next frame
// of that cycle every interval update ticks.
type Animator struct {
	cycles []cycle
	// next maps a texture ID to its successor, per cycle index
	next map[int]animStep
	tick int
}

type animStep struct {
	cycle int
	to    int
}

func NewAnimator() *Animator {
	return &Animator{next: make(map[int]animStep)}
}

// AddCycle registers frames as a loop. A texture may only belong to one
// cycle; later registrations win.
func (a *Animator) AddCycle(frames []int, interval int) {
	if len(frames) < 2 || interval <= 0 {
		return
	}
	idx := len(a.cycles)
	a.cycles = append(a.cycles, cycle{frames: append([]int(nil), frames...), interval: interval})
	for i, f := range frames {
		a.next[f] = animStep{cycle: idx, to: frames[(i+1)%len(frames)]}
	}
}

// Step advances one update tick and returns how many sprites changed frame.
func (a *Animator) Step(m *world.Map) int {
	a.tick++
	changed := 0
	for i := range m.Sprites {
		s := &m.Sprites[i]
		if s.Destroyed || s.Projectile {
			continue
		}
		step, ok := a.next[s.Texture]
		if !ok || a.tick%a.cycles[step.cycle].interval != 0 {
			continue
		}
		s.Texture = step.to
		changed++
	}
	return changed
}
