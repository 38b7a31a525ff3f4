package graphics

import (
	"errors"
	"fmt"
	"image"

	"gridcaster/internal/mathutil"

	xdraw "golang.org/x/image/draw"
)

var (
	// ErrNotPowerOfTwo is returned for textures whose sides are not powers
	// of two. Texel lookups wrap with a bit mask.
	ErrNotPowerOfTwo = errors.New("texture dimensions must be powers of two")
	// ErrUnknownTexture is returned when a texture name is not registered.
	ErrUnknownTexture = errors.New("unknown texture")
)

// Pack builds a pixel in the shared packed layout: R in the low byte, then
// G, B and A. Stored little-endian this is R,G,B,A in memory order.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// Unpack splits a packed pixel into its channels.
func Unpack(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// IsTransparent reports whether a sprite texel should be skipped: fully
// transparent alpha, or the pure black colour key.
func IsTransparent(c uint32) bool {
	return c>>24 == 0 || c&0x00FFFFFF == 0
}

// Darken halves the colour channels and keeps alpha.
func Darken(c uint32) uint32 {
	return (c&0x00FEFEFE)>>1 | c&0xFF000000
}

// Texture is an immutable block of packed texels, row-major, row 0 on top.
type Texture struct {
	Name          string
	Width, Height int
	Pix           []uint32
}

// NewTexture allocates a blank texture. Both sides must be powers of two.
func NewTexture(name string, w, h int) (*Texture, error) {
	if !mathutil.IsPowerOfTwo(w) || !mathutil.IsPowerOfTwo(h) {
		return nil, fmt.Errorf("%w: %s is %dx%d", ErrNotPowerOfTwo, name, w, h)
	}
	return &Texture{Name: name, Width: w, Height: h, Pix: make([]uint32, w*h)}, nil
}

// At returns the texel at (x, y), wrapping both coordinates.
func (t *Texture) At(x, y int) uint32 {
	return t.Pix[(y&(t.Height-1))*t.Width+(x&(t.Width-1))]
}

// Set writes a texel; out-of-range coordinates are ignored.
func (t *Texture) Set(x, y int, c uint32) {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return
	}
	t.Pix[y*t.Width+x] = c
}

// Fill sets every texel to c.
func (t *Texture) Fill(c uint32) {
	for i := range t.Pix {
		t.Pix[i] = c
	}
}

// Solid returns a size x size texture of a single colour.
func Solid(name string, size int, c uint32) (*Texture, error) {
	t, err := NewTexture(name, size, size)
	if err != nil {
		return nil, err
	}
	t.Fill(c)
	return t, nil
}

// FromImage converts a decoded image into a texture. Sides that are not
// powers of two are rescaled up to the next power of two with
// nearest-neighbour sampling so the colour key survives untouched.
func FromImage(name string, img image.Image) *Texture {
	b := img.Bounds()
	w := mathutil.NextPowerOfTwo(b.Dx())
	h := mathutil.NextPowerOfTwo(b.Dy())

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	} else {
		xdraw.NearestNeighbor.Scale(rgba, rgba.Bounds(), img, b, xdraw.Src, nil)
	}

	t := &Texture{Name: name, Width: w, Height: h, Pix: make([]uint32, w*h)}
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+4]
			t.Pix[y*w+x] = Pack(p[0], p[1], p[2], p[3])
		}
	}
	return t
}
