package present

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"gridcaster/internal/render"
)

// WritePNG encodes fb as a PNG image.
func WritePNG(w io.Writer, fb *render.Framebuffer) error {
	if err := png.Encode(w, fb.Image()); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// SavePNG writes fb to path, creating parent directories as needed.
func SavePNG(path string, fb *render.Framebuffer) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return WritePNG(f, fb)
}

// PNGFile presents each frame by overwriting one image file. The file ends
// up holding the last frame.
type PNGFile struct {
	Path   string
	Frames int
}

func (p *PNGFile) Present(fb *render.Framebuffer) error {
	if err := SavePNG(p.Path, fb); err != nil {
		return err
	}
	p.Frames++
	return nil
}
