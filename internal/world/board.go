package world

import "strings"

// boardSymbols maps tile codes to their debug-board glyphs.
var boardSymbols = map[uint8]byte{
	0: '.',
	1: '#',
	2: 'O',
	3: 'X',
	4: '@',
}

// Board renders the grid as text, one row per line, marking the observer's
// cell with 'P'. Codes without a glyph print as '?'.
func Board(m *Map, px, py int) string {
	var b strings.Builder
	b.Grow((m.Size + 1) * m.Size)
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			if x == px && y == py {
				b.WriteByte('P')
				continue
			}
			code, _ := m.Tile(x, y)
			if sym, ok := boardSymbols[code]; ok {
				b.WriteByte(sym)
			} else {
				b.WriteByte('?')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
