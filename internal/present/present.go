// Package present moves a finished framebuffer onto a display surface.
//
// Every surface receives the same top-row-first RGBA bytes. Surfaces that
// store rows bottom-up (OpenGL textures and framebuffers) read them through
// a source rectangle with a negated height, so the image is flipped exactly
// once on the way to the screen.
package present

import (
	"gridcaster/internal/render"
)

// Presenter shows one frame.
type Presenter interface {
	Present(fb *render.Framebuffer) error
}

// Func adapts a function to Presenter.
type Func func(fb *render.Framebuffer) error

func (f Func) Present(fb *render.Framebuffer) error {
	return f(fb)
}

// Origin says where a surface keeps its first row.
type Origin int

const (
	OriginTopLeft Origin = iota
	OriginBottomLeft
)

func (o Origin) String() string {
	switch o {
	case OriginTopLeft:
		return "top-left"
	case OriginBottomLeft:
		return "bottom-left"
	default:
		return "unknown"
	}
}

// Rect is a blit rectangle. W or H may be negative to mirror the copy.
type Rect struct {
	X, Y, W, H int
}

// SourceRect is the rectangle to read a w x h upload from. For bottom-left
// surfaces it starts at row h and has height -h.
func SourceRect(w, h int, origin Origin) Rect {
	r := Rect{W: w, H: h}
	if origin == OriginBottomLeft {
		return r.Flipped()
	}
	return r
}

// Flipped mirrors r vertically. r.Flipped().Flipped() == r.
func (r Rect) Flipped() Rect {
	return Rect{X: r.X, Y: r.Y + r.H, W: r.W, H: -r.H}
}

// Corners returns the two corners in the x0, y0, x1, y1 order glBlitFramebuffer
// takes.
func (r Rect) Corners() (x0, y0, x1, y1 int32) {
	return int32(r.X), int32(r.Y), int32(r.X + r.W), int32(r.Y + r.H)
}

// Stretch returns the scale factors that map a srcW x srcH frame onto a
// dstW x dstH surface. Zero-sized inputs give (1, 1).
func Stretch(srcW, srcH, dstW, dstH int) (sx, sy float64) {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return 1, 1
	}
	return float64(dstW) / float64(srcW), float64(dstH) / float64(srcH)
}
