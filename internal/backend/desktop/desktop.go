// Package desktop presents frames in an ebiten window.
package desktop

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"gridcaster/internal/config"
	"gridcaster/internal/game"
	"gridcaster/internal/logger"

	"go.uber.org/zap"
)

// Run opens the window and blocks until it closes. It must be called from
// the main goroutine.
func Run(ctx context.Context, cfg *config.Config, s *game.Session) error {
	ebiten.SetWindowSize(cfg.Display.WindowWidth, cfg.Display.WindowHeight)
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetVsyncEnabled(cfg.Display.VSync)
	if cfg.Display.TargetFPS > 0 {
		ebiten.SetTPS(cfg.Display.TargetFPS)
	}

	w, h := s.Size()
	logger.Info("desktop backend started",
		zap.Int("window_width", cfg.Display.WindowWidth),
		zap.Int("window_height", cfg.Display.WindowHeight),
		zap.Int("frame_width", w),
		zap.Int("frame_height", h))

	gl := newGameLoop(ctx, s)
	gl.setCaptured(true)
	if err := ebiten.RunGame(gl); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}
