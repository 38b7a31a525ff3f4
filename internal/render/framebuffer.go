package render

import (
	"image"
)

// FarPlane is the depth of a column whose ray left the grid without a hit.
const FarPlane = 1e30

// Framebuffer is the packed-colour target of one frame plus its per-column
// depth buffer. Row 0 is the top of the image.
type Framebuffer struct {
	Width, Height int
	Pix           []uint32
	Depth         []float64
}

func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint32, w*h),
		Depth:  make([]float64, w),
	}
}

// Clear fills every pixel with c and resets depth to FarPlane.
func (fb *Framebuffer) Clear(c uint32) {
	for i := range fb.Pix {
		fb.Pix[i] = c
	}
	for i := range fb.Depth {
		fb.Depth[i] = FarPlane
	}
}

// At returns the pixel at (x, y).
func (fb *Framebuffer) At(x, y int) uint32 {
	return fb.Pix[y*fb.Width+x]
}

// RGBA serialises the frame as R,G,B,A bytes per pixel, independent of host
// byte order. This is the layout ebiten, GL_RGBA/GL_UNSIGNED_BYTE uploads
// and image.RGBA expect.
func (fb *Framebuffer) RGBA() []byte {
	return fb.AppendRGBA(make([]byte, 0, len(fb.Pix)*4))
}

// AppendRGBA is RGBA writing into dst's spare capacity, so presenters can
// reuse one upload buffer across frames.
func (fb *Framebuffer) AppendRGBA(dst []byte) []byte {
	for _, c := range fb.Pix {
		dst = append(dst, byte(c), byte(c>>8), byte(c>>16), byte(c>>24))
	}
	return dst
}

// Image copies the frame into an image.RGBA.
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	img.Pix = fb.AppendRGBA(img.Pix[:0])
	return img
}

// Clone returns an independent copy for publishing to other goroutines.
func (fb *Framebuffer) Clone() *Framebuffer {
	return &Framebuffer{
		Width:  fb.Width,
		Height: fb.Height,
		Pix:    append([]uint32(nil), fb.Pix...),
		Depth:  append([]float64(nil), fb.Depth...),
	}
}
