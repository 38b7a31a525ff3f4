package world

import "errors"

// Tile code for an empty, walkable cell. Any other code is a solid wall.
const Empty uint8 = 0

var (
	// ErrNotSquare is returned when map rows do not form an N x N grid.
	ErrNotSquare = errors.New("map data is not square")
	// ErrNoMapData is returned when a level has no map rows at all.
	ErrNoMapData = errors.New("level contains no map data")
)

// SpriteID is a stable handle into the map's sprite list. IDs are never
// reused within one Map.
type SpriteID uint32

// Sprite is a billboard or projectile positioned in world space.
// UI sprites are screen-space overlays: X and Y are normalised screen
// coordinates of the overlay centre.
type Sprite struct {
	ID         SpriteID
	X, Y       float64
	VX, VY     float64
	DirX, DirY float64
	Projectile bool
	UI         bool
	Destroyed  bool
	Texture    int
	Age        float64 // seconds since spawn, advanced for projectiles
}

// Map is the shared arena for one level: an immutable square tile grid plus
// the mutable sprite list. Cells are row-major, Cells[y*Size+x].
type Map struct {
	Size    int
	Cells   []uint8
	Sprites []Sprite

	nextID SpriteID
}

// NewMap wraps cells as a size x size grid.
func NewMap(size int, cells []uint8) (*Map, error) {
	if size <= 0 {
		return nil, ErrNoMapData
	}
	if len(cells) != size*size {
		return nil, ErrNotSquare
	}
	return &Map{Size: size, Cells: cells}, nil
}
