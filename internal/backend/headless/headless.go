// Package headless renders a fixed number of frames without a window and
// writes the last one to a PNG file.
package headless

import (
	"context"
	"fmt"

	"gridcaster/internal/config"
	"gridcaster/internal/game"
	"gridcaster/internal/logger"
	"gridcaster/internal/present"

	"go.uber.org/zap"
)

// Run steps the session cfg.Backend.Frames times at the display rate with no
// input, presenting every frame to cfg.Backend.Output.
func Run(ctx context.Context, cfg *config.Config, s *game.Session) error {
	frames := cfg.Backend.Frames
	if frames < 1 {
		frames = 1
	}
	fps := cfg.Display.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	dt := 1 / float64(fps)

	out := &present.PNGFile{Path: cfg.Backend.Output}
	var p present.Presenter = out
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			logger.Info("headless run interrupted", zap.Int("frames", i))
			return nil
		}
		s.Update(game.Input{}, dt)
		fb := s.Render(dt)
		// only the last frame is worth the encode
		if i == frames-1 {
			if err := s.Present(p, fb); err != nil {
				return fmt.Errorf("headless present: %w", err)
			}
		}
	}

	stats := s.Monitor().Snapshot()
	logger.Info("headless run complete",
		zap.Int("frames", frames),
		zap.String("output", out.Path),
		zap.Float64("avg_frame_ms", stats.AvgFrameTimeMs),
		zap.Int32("live_sprites", stats.LiveSprites),
	)
	return nil
}
