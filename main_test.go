package main

import (
	"context"
	"path/filepath"
	"testing"

	"gridcaster/internal/backend/headless"
	"gridcaster/internal/config"
	"gridcaster/internal/game"
	"gridcaster/internal/graphics"
	"gridcaster/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The bundled config, level and texture manifest must work together.
func TestBundledAssets(t *testing.T) {
	cfg, err := config.LoadConfig("config.yaml")
	require.NoError(t, err)
	assert.Equal(t, config.Default().Render, cfg.Render)

	level, err := world.LoadLevel(cfg.Level.Path)
	require.NoError(t, err)
	assert.Equal(t, 16, level.Size)
	assert.Len(t, level.Sprites, 8)

	textures, err := graphics.LoadManifest(filepath.Join("assets", "textures.yaml"))
	require.NoError(t, err)
	assert.Equal(t, graphics.Pack(70, 70, 74, 255), textures.Get(graphics.StoneWall).At(0, 0))
	assert.True(t, graphics.IsTransparent(textures.Get(graphics.Fireball).At(0, 0)))
	for _, s := range level.Sprites {
		assert.True(t, textures.Has(s.Texture), "sprite %d texture %d", s.ID, s.Texture)
	}
}

func TestHeadlessSessionOnBundledLevel(t *testing.T) {
	cfg, err := config.LoadConfig("config.yaml")
	require.NoError(t, err)
	cfg.Backend.Name = "headless"
	cfg.Backend.Frames = 30
	cfg.Backend.Output = filepath.Join(t.TempDir(), "frame.png")

	level, err := world.LoadLevel(cfg.Level.Path)
	require.NoError(t, err)
	s, err := game.NewSession(cfg, level, graphics.Builtin())
	require.NoError(t, err)
	defer s.Close()

	// fire once before the run; the projectile flies during the headless frames
	require.False(t, s.Update(game.Input{Fire: true}, 0))
	require.Len(t, level.Sprites, 9)

	require.NoError(t, headless.Run(context.Background(), cfg, s))
	assert.Equal(t, uint64(30), s.Frame())
	assert.FileExists(t, cfg.Backend.Output)

	snap := s.Monitor().Snapshot()
	assert.Equal(t, uint64(30), snap.Frames)
	assert.Equal(t, int32(cfg.Render.Width), snap.WallHits, "closed level: every column hits a wall")
}
