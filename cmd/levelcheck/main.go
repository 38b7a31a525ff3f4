// Command levelcheck validates level files and prints their boards.
package main

import (
	"flag"
	"fmt"
	"os"

	"gridcaster/internal/graphics"
	"gridcaster/internal/logger"
	"gridcaster/internal/world"

	"go.uber.org/zap"
)

func main() {
	manifest := flag.String("textures", "", "Texture manifest to check sprite textures against")
	quiet := flag.Bool("q", false, "Do not print boards")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: levelcheck [-textures manifest.yaml] [-q] level.txt...")
		os.Exit(2)
	}

	textures := graphics.Builtin()
	if *manifest != "" {
		var err error
		if textures, err = graphics.LoadManifest(*manifest); err != nil {
			logger.Fatal("failed to load textures", zap.Error(err))
		}
	}

	failed := 0
	for _, path := range flag.Args() {
		m, err := world.LoadLevel(path)
		if err != nil {
			logger.Error("invalid level", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}

		missing := 0
		for _, s := range m.Sprites {
			if !textures.Has(s.Texture) {
				logger.Warn("sprite texture not registered",
					zap.String("path", path), zap.Uint32("sprite", uint32(s.ID)), zap.Int("texture", s.Texture))
				missing++
			}
		}
		logger.Info("level ok",
			zap.String("path", path),
			zap.Int("size", m.Size),
			zap.Int("sprites", len(m.Sprites)),
			zap.Int("missing_textures", missing))

		if !*quiet {
			fmt.Printf("%s\n%s\n", path, world.Board(m, -1, -1))
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
