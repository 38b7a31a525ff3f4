// Package glwindow presents frames through an SDL window with an OpenGL
// 4.1 core context.
package glwindow

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"

	"gridcaster/internal/config"
	"gridcaster/internal/game"
	"gridcaster/internal/logger"

	"go.uber.org/zap"
)

// Run opens the window and loops until it is closed, Escape is pressed or
// ctx is cancelled. It must be called from the main goroutine.
func Run(ctx context.Context, cfg *config.Config, s *game.Session) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_SHOWN | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Display.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	window, err := sdl.CreateWindow(
		cfg.Display.WindowTitle,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Display.WindowWidth), int32(cfg.Display.WindowHeight),
		flags,
	)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	glContext, err := window.GLCreateContext()
	if err != nil {
		return fmt.Errorf("create GL context: %w", err)
	}
	defer sdl.GLDeleteContext(glContext)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	if cfg.Display.VSync {
		sdl.GLSetSwapInterval(1)
	} else {
		sdl.GLSetSwapInterval(0)
	}

	w, h := s.Size()
	blit, err := NewBlitPresenter(w, h, window.GLGetDrawableSize)
	if err != nil {
		return err
	}
	defer blit.Delete()

	sdl.SetRelativeMouseMode(true)
	defer sdl.SetRelativeMouseMode(false)

	last := time.Now()
	for {
		if ctx.Err() != nil {
			return nil
		}

		in := game.Input{}
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				in.Quit = true
			case *sdl.MouseMotionEvent:
				in.YawDelta += float64(e.XRel)
			}
		}
		in = in.Merge(keyboardInput(sdl.GetKeyboardState()))

		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		if s.Update(in, dt) {
			return nil
		}
		if err := s.Present(blit, s.Render(dt)); err != nil {
			logger.Warn("blit failed", zap.Error(err))
		}
		window.GLSwap()

		if !cfg.Display.VSync && cfg.Display.TargetFPS > 0 {
			budget := time.Second / time.Duration(cfg.Display.TargetFPS)
			if spent := time.Since(now); spent < budget {
				time.Sleep(budget - spent)
			}
		}
	}
}

// keyboardInput reads held keys from an SDL scancode state array. Bindings
// match the other interactive backends.
func keyboardInput(keys []uint8) game.Input {
	held := func(codes ...sdl.Scancode) bool {
		for _, c := range codes {
			if int(c) < len(keys) && keys[c] != 0 {
				return true
			}
		}
		return false
	}
	return game.Input{
		Forward:     held(sdl.SCANCODE_W, sdl.SCANCODE_UP),
		Back:        held(sdl.SCANCODE_S, sdl.SCANCODE_DOWN),
		StrafeLeft:  held(sdl.SCANCODE_Q),
		StrafeRight: held(sdl.SCANCODE_E),
		TurnLeft:    held(sdl.SCANCODE_A, sdl.SCANCODE_LEFT),
		TurnRight:   held(sdl.SCANCODE_D, sdl.SCANCODE_RIGHT),
		Fire:        held(sdl.SCANCODE_SPACE),
		Quit:        held(sdl.SCANCODE_ESCAPE),
	}
}
