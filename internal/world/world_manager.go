package world

// InBounds reports whether cell (x, y) lies inside the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Size && y < m.Size
}

// Tile returns the code at cell (x, y). ok is false outside the grid.
func (m *Map) Tile(x, y int) (code uint8, ok bool) {
	if !m.InBounds(x, y) {
		return 0, false
	}
	return m.Cells[y*m.Size+x], true
}

// IsEmptyAt reports whether (x, y) is inside the grid and walkable.
func (m *Map) IsEmptyAt(x, y int) bool {
	code, ok := m.Tile(x, y)
	return ok && code == Empty
}

// Spawn appends s with a fresh ID and returns that ID. Call it only from the
// update phase; the render phase holds indices into Sprites.
func (m *Map) Spawn(s Sprite) SpriteID {
	m.nextID++
	s.ID = m.nextID
	m.Sprites = append(m.Sprites, s)
	return s.ID
}

// Sprite returns the live record for id, or nil once it has been purged.
func (m *Map) Sprite(id SpriteID) *Sprite {
	for i := range m.Sprites {
		if m.Sprites[i].ID == id {
			return &m.Sprites[i]
		}
	}
	return nil
}

// LiveSprites counts sprites that are not destroyed.
func (m *Map) LiveSprites() int {
	n := 0
	for i := range m.Sprites {
		if !m.Sprites[i].Destroyed {
			n++
		}
	}
	return n
}

// PurgeDestroyed compacts the sprite list in place, keeping the relative
// order of survivors, and returns how many records were removed.
func (m *Map) PurgeDestroyed() int {
	kept := m.Sprites[:0]
	for _, s := range m.Sprites {
		if !s.Destroyed {
			kept = append(kept, s)
		}
	}
	removed := len(m.Sprites) - len(kept)
	clear(m.Sprites[len(kept):])
	m.Sprites = kept
	return removed
}

// Clone returns a deep copy, used for snapshots handed to other goroutines.
func (m *Map) Clone() *Map {
	c := &Map{
		Size:    m.Size,
		Cells:   append([]uint8(nil), m.Cells...),
		Sprites: append([]Sprite(nil), m.Sprites...),
		nextID:  m.nextID,
	}
	return c
}
