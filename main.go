package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"gridcaster/internal/audio"
	"gridcaster/internal/backend"
	"gridcaster/internal/config"
	"gridcaster/internal/game"
	"gridcaster/internal/graphics"
	"gridcaster/internal/inspect"
	"gridcaster/internal/logger"
	"gridcaster/internal/world"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func init() {
	// Window backends must own the main thread.
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		// logger is not up yet
		os.Stderr.WriteString("gridcaster: " + err.Error() + "\n")
		os.Exit(1)
	}

	if backend.ConsoleSafe(cfg.Backend.Name) {
		err = logger.Init(cfg.Logging.Level, cfg.Logging.File)
	} else {
		logFile := cfg.Logging.File
		if logFile == "" {
			logFile = "gridcaster.log"
		}
		err = logger.InitWithFileConfig(cfg.Logging.Level, logger.DefaultFileConfig(logFile), false)
	}
	if err != nil {
		os.Stderr.WriteString("gridcaster: logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	run, err := backend.Lookup(cfg.Backend.Name)
	if err != nil {
		logger.Fatal("backend", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level, err := world.LoadLevel(cfg.Level.Path)
	if err != nil {
		logger.Fatal("failed to load level", zap.String("path", cfg.Level.Path), zap.Error(err))
	}

	textures := graphics.Builtin()
	if cfg.Textures.Manifest != "" {
		if textures, err = graphics.LoadManifest(cfg.Textures.Manifest); err != nil {
			logger.Fatal("failed to load textures", zap.Error(err))
		}
	}

	opts := []game.Option{game.WithRand(rand.New(rand.NewSource(cfg.Sprites.Seed)))}

	if cfg.Audio.Enabled {
		spk := audio.NewSpeaker(cfg.Audio.Volume)
		if err := spk.Initialize(); err != nil {
			logger.Warn("audio disabled", zap.Error(err))
		} else {
			opts = append(opts, game.WithAudio(spk))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Inspect.Enabled {
		srv := inspect.NewServer(cfg.Inspect.Addr)
		opts = append(opts, game.WithPublisher(srv))
		g.Go(func() error {
			return srv.Run(gctx)
		})
	}

	session, err := game.NewSession(cfg, level, textures, opts...)
	if err != nil {
		logger.Fatal("failed to start session", zap.Error(err))
	}
	defer session.Close()

	logger.Info("gridcaster starting",
		zap.String("backend", cfg.Backend.Name),
		zap.String("level", cfg.Level.Path),
		zap.Int("map_size", level.Size),
		zap.Int("sprites", len(level.Sprites)),
	)

	// the backend runs here, on the locked main thread
	runErr := run(gctx, cfg, session)
	stop()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("inspect server", zap.Error(err))
	}
	if runErr != nil {
		logger.Fatal("backend failed", zap.String("backend", cfg.Backend.Name), zap.Error(runErr))
	}
	logger.Info("gridcaster stopped", zap.Uint64("frames", session.Frame()))
}
