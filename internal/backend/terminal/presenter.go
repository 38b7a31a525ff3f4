package terminal

import (
	"github.com/gdamore/tcell/v2"

	"gridcaster/internal/graphics"
	"gridcaster/internal/render"
)

// upperHalf draws the top pixel as foreground and the bottom one as
// background, giving two pixel rows per terminal cell.
const upperHalf = '▀'

// CellPresenter stretches a framebuffer over the whole terminal with
// nearest-neighbour sampling. Terminals are top-left origin surfaces.
type CellPresenter struct {
	screen tcell.Screen
}

func NewCellPresenter(screen tcell.Screen) *CellPresenter {
	return &CellPresenter{screen: screen}
}

func (p *CellPresenter) Present(fb *render.Framebuffer) error {
	cols, rows := p.screen.Size()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top, bottom := cellPixels(fb, cols, rows, cx, cy)
			style := tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
			p.screen.SetContent(cx, cy, upperHalf, nil, style)
		}
	}
	p.screen.Show()
	return nil
}

// cellPixels samples the two framebuffer pixels under cell (cx, cy) of a
// cols x rows grid.
func cellPixels(fb *render.Framebuffer, cols, rows, cx, cy int) (top, bottom uint32) {
	x := cx * fb.Width / cols
	y0 := (2 * cy) * fb.Height / (2 * rows)
	y1 := (2*cy + 1) * fb.Height / (2 * rows)
	return fb.At(x, y0), fb.At(x, y1)
}

func toColor(c uint32) tcell.Color {
	r, g, b, _ := graphics.Unpack(c)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
