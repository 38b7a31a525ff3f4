// Package terminal renders into a truecolor terminal with half-block cells.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"gridcaster/internal/config"
	"gridcaster/internal/game"
	"gridcaster/internal/logger"

	"go.uber.org/zap"
)

// Run drives the session from a ticker until Escape, Ctrl+C or ctx ends it.
// Logging must not write to the console while the screen is active.
func Run(ctx context.Context, cfg *config.Config, s *game.Session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.Clear()

	fps := cfg.Display.TargetFPS
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	presenter := NewCellPresenter(screen)
	var keys keyLatch
	last := time.Now()
	logger.Info("terminal backend started")

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					return nil
				}
				if a, ok := actionFor(ev); ok {
					keys.press(a, ev.When())
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			if s.Update(keys.input(now), dt) {
				return nil
			}
			fb := s.Render(dt)
			if err := s.Present(presenter, fb); err != nil {
				logger.Warn("terminal present failed", zap.Error(err))
			}
		}
	}
}
