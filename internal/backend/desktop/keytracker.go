package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// keyTracker remembers the previous pressed state of the keys it was asked
// about, for edge-triggered toggles.
type keyTracker struct {
	prev map[ebiten.Key]bool
}

func newKeyTracker() *keyTracker {
	return &keyTracker{prev: make(map[ebiten.Key]bool)}
}

// justPressed returns true if key was not pressed last tick but is now.
func (k *keyTracker) justPressed(key ebiten.Key) bool {
	pressed := ebiten.IsKeyPressed(key)
	just := pressed && !k.prev[key]
	k.prev[key] = pressed
	return just
}

// anyPressed reports whether at least one of keys is held.
func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
