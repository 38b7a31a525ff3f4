package inspect

import (
	"gridcaster/internal/monitoring"
	"gridcaster/internal/render"
	"gridcaster/internal/world"
)

// ObserverState is the published camera pose.
type ObserverState struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	DirX  float64 `json:"dir_x"`
	DirY  float64 `json:"dir_y"`
	Angle float64 `json:"angle"`
}

// SpriteState is one live sprite record.
type SpriteState struct {
	ID         world.SpriteID `json:"id"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Texture    int            `json:"texture"`
	Projectile bool           `json:"projectile,omitempty"`
	UI         bool           `json:"ui,omitempty"`
}

// Snapshot is an immutable copy of one frame's state. The frame loop builds
// it and hands it over; the server never touches the live map.
type Snapshot struct {
	Frame    uint64           `json:"frame"`
	Observer ObserverState    `json:"observer"`
	Sprites  []SpriteState    `json:"sprites"`
	Stats    monitoring.Stats `json:"stats"`

	Board string              `json:"-"`
	Image *render.Framebuffer `json:"-"`
}

// SpritesOf copies the non-destroyed sprites of m.
func SpritesOf(m *world.Map) []SpriteState {
	out := make([]SpriteState, 0, len(m.Sprites))
	for _, s := range m.Sprites {
		if s.Destroyed {
			continue
		}
		out = append(out, SpriteState{
			ID:         s.ID,
			X:          s.X,
			Y:          s.Y,
			Texture:    s.Texture,
			Projectile: s.Projectile,
			UI:         s.UI,
		})
	}
	return out
}
