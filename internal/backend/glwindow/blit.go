package glwindow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"gridcaster/internal/present"
	"gridcaster/internal/render"
)

// BlitPresenter uploads each frame into a texture attached to a read
// framebuffer and blits it onto the default framebuffer. Texture rows are
// stored bottom-up, so the blit reads through a flipped source rectangle.
type BlitPresenter struct {
	tex, fbo      uint32
	width, height int32
	pixels        []byte

	// drawable returns the current drawable size in pixels.
	drawable func() (int32, int32)
}

func NewBlitPresenter(w, h int, drawable func() (int32, int32)) (*BlitPresenter, error) {
	p := &BlitPresenter{width: int32(w), height: int32(h), drawable: drawable}

	gl.GenTextures(1, &p.tex)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, p.width, p.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.GenFramebuffers(1, &p.fbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, p.fbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, p.tex, 0)
	status := gl.CheckFramebufferStatus(gl.READ_FRAMEBUFFER)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		p.Delete()
		return nil, fmt.Errorf("read framebuffer incomplete: 0x%x", status)
	}
	return p, nil
}

func (p *BlitPresenter) Present(fb *render.Framebuffer) error {
	if int32(fb.Width) != p.width || int32(fb.Height) != p.height {
		return fmt.Errorf("frame is %dx%d, texture is %dx%d", fb.Width, fb.Height, p.width, p.height)
	}
	p.pixels = fb.AppendRGBA(p.pixels[:0])

	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, p.width, p.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(p.pixels))

	sx0, sy0, sx1, sy1 := present.SourceRect(fb.Width, fb.Height, present.OriginBottomLeft).Corners()
	dw, dh := p.drawable()

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, p.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(sx0, sy0, sx1, sy1, 0, 0, dw, dh, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("blit: gl error 0x%x", code)
	}
	return nil
}

// Delete releases the GL objects. The context must still be current.
func (p *BlitPresenter) Delete() {
	if p.fbo != 0 {
		gl.DeleteFramebuffers(1, &p.fbo)
		p.fbo = 0
	}
	if p.tex != 0 {
		gl.DeleteTextures(1, &p.tex)
		p.tex = 0
	}
}
