// Package audio plays short synthesized cues when the observer fires and
// when a projectile hits something.
package audio

// Cues receives gameplay sound events. Implementations must not block the
// frame loop.
type Cues interface {
	Fire()
	Impact()
	Close()
}

// Nop is the silent Cues used when audio is disabled or unavailable.
type Nop struct{}

func (Nop) Fire()   {}
func (Nop) Impact() {}
func (Nop) Close()  {}
