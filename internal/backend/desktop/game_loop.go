package desktop

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"gridcaster/internal/game"
	"gridcaster/internal/present"
	"gridcaster/internal/render"
)

// gameLoop adapts a session to ebiten.Game. The internal framebuffer is
// uploaded into one image and stretched over the window.
type gameLoop struct {
	ctx     context.Context
	session *game.Session
	keys    *keyTracker

	frame  *ebiten.Image
	pixels []byte

	captured    bool
	cursorKnown bool
	lastX       int
	lastDraw    time.Time
}

func newGameLoop(ctx context.Context, s *game.Session) *gameLoop {
	w, h := s.Size()
	return &gameLoop{
		ctx:     ctx,
		session: s,
		keys:    newKeyTracker(),
		frame:   ebiten.NewImage(w, h),
	}
}

// Update handles input for one tick at the fixed TPS.
func (gl *gameLoop) Update() error {
	if gl.ctx.Err() != nil {
		return ebiten.Termination
	}
	if gl.keys.justPressed(ebiten.KeyTab) {
		gl.setCaptured(!gl.captured)
	}

	in := gl.readInput()
	if gl.session.Update(in, 1/float64(ebiten.TPS())) {
		return ebiten.Termination
	}
	return nil
}

func (gl *gameLoop) readInput() game.Input {
	in := game.Input{
		Forward:     anyPressed(ebiten.KeyW, ebiten.KeyArrowUp),
		Back:        anyPressed(ebiten.KeyS, ebiten.KeyArrowDown),
		StrafeLeft:  anyPressed(ebiten.KeyQ),
		StrafeRight: anyPressed(ebiten.KeyE),
		TurnLeft:    anyPressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		TurnRight:   anyPressed(ebiten.KeyD, ebiten.KeyArrowRight),
		Fire:        anyPressed(ebiten.KeySpace) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Quit:        anyPressed(ebiten.KeyEscape),
	}

	// mouse look only while the cursor is captured
	x, _ := ebiten.CursorPosition()
	if gl.captured && gl.cursorKnown {
		in.YawDelta = float64(x - gl.lastX)
	}
	gl.lastX = x
	gl.cursorKnown = true
	return in
}

func (gl *gameLoop) setCaptured(on bool) {
	gl.captured = on
	gl.cursorKnown = false
	if on {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

// Draw renders a frame with the real elapsed time and stretches it over
// the screen.
func (gl *gameLoop) Draw(screen *ebiten.Image) {
	now := time.Now()
	dt := 1 / float64(ebiten.TPS())
	if !gl.lastDraw.IsZero() {
		dt = now.Sub(gl.lastDraw).Seconds()
	}
	gl.lastDraw = now

	fb := gl.session.Render(dt)
	_ = gl.session.Present(present.Func(gl.upload), fb)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	sx, sy := present.Stretch(fb.Width, fb.Height, sw, sh)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(gl.frame, op)
}

func (gl *gameLoop) upload(fb *render.Framebuffer) error {
	gl.pixels = fb.AppendRGBA(gl.pixels[:0])
	gl.frame.WritePixels(gl.pixels)
	return nil
}

// Layout keeps the screen at the window size; the framebuffer is scaled
// in Draw.
func (gl *gameLoop) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return outsideWidth, outsideHeight
}
