// Package render turns a tile grid, an observer and a sprite list into one
// packed-colour frame: floor and ceiling, DDA walls with a per-column depth
// buffer, then depth-tested billboards.
package render

import (
	"fmt"
	"math/rand"
	"runtime"

	"gridcaster/internal/camera"
	"gridcaster/internal/config"
	"gridcaster/internal/graphics"
	"gridcaster/internal/monitoring"
	"gridcaster/internal/workers"
	"gridcaster/internal/world"
)

// Options are the resolved renderer settings. Texture fields are registry IDs.
type Options struct {
	Width, Height int

	WallTextures map[uint8]int
	DefaultWall  int
	Floor        int
	Ceiling      int
	SideShade    bool
	Background   uint32

	ProjectileSpeed    float64
	ProjectileNoise    float64
	ProjectileLifetime float64
	UIScale            float64

	// Workers above 1 spread the floor and wall passes over a worker pool.
	Workers int
}

// OptionsFromConfig resolves configured texture names against textures.
func OptionsFromConfig(cfg *config.Config, textures *graphics.Registry) (Options, error) {
	opts := Options{
		Width:              cfg.Render.Width,
		Height:             cfg.Render.Height,
		WallTextures:       make(map[uint8]int, len(cfg.Render.WallTextures)),
		SideShade:          cfg.Render.SideShade,
		ProjectileSpeed:    cfg.Sprites.ProjectileSpeed,
		ProjectileNoise:    cfg.Sprites.ProjectileNoise,
		ProjectileLifetime: cfg.Sprites.ProjectileLifetime,
		UIScale:            cfg.Sprites.UIScale,
		Workers:            cfg.Render.Workers,
	}
	if opts.Workers == 0 {
		opts.Workers = runtime.NumCPU()
	}
	r, g, b := cfg.GetBackground()
	opts.Background = graphics.Pack(r, g, b, 255)

	for code, name := range cfg.Render.WallTextures {
		if code <= 0 || code > 255 {
			return Options{}, fmt.Errorf("wall_textures: tile code %d out of range 1..255", code)
		}
		id, err := textures.ID(name)
		if err != nil {
			return Options{}, fmt.Errorf("wall_textures[%d]: %w", code, err)
		}
		opts.WallTextures[uint8(code)] = id
	}

	var err error
	if opts.DefaultWall, err = textures.ID(cfg.Render.DefaultWall); err != nil {
		return Options{}, fmt.Errorf("default_wall: %w", err)
	}
	if opts.Floor, err = textures.ID(cfg.Render.Floor); err != nil {
		return Options{}, fmt.Errorf("floor: %w", err)
	}
	if opts.Ceiling, err = textures.ID(cfg.Render.Ceiling); err != nil {
		return Options{}, fmt.Errorf("ceiling: %w", err)
	}
	return opts, nil
}

// FrameStats summarises one RenderFrame call.
type FrameStats struct {
	WallHits int
	Sprites  SpriteStats
	Purged   int
}

// Renderer owns the framebuffer and the per-frame scratch state. It is not
// safe for concurrent use.
type Renderer struct {
	opts     Options
	textures *graphics.Registry
	fb       *Framebuffer
	rng      *rand.Rand
	monitor  *monitoring.FrameMonitor
	pool     *workers.Pool
	order    []int
}

// New creates a renderer. rng drives projectile noise; pass a seeded source
// for reproducible frames.
func New(opts Options, textures *graphics.Registry, rng *rand.Rand) *Renderer {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	r := &Renderer{
		opts:     opts,
		textures: textures,
		fb:       NewFramebuffer(opts.Width, opts.Height),
		rng:      rng,
		monitor:  monitoring.NewFrameMonitor(),
	}
	if opts.Workers > 1 {
		r.pool = workers.NewPool(opts.Workers)
		r.pool.Start()
	}
	return r
}

// Close stops the worker pool, if any.
func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.Stop()
	}
}

// SetMonitor replaces the frame monitor, e.g. to share it with a server.
func (r *Renderer) SetMonitor(m *monitoring.FrameMonitor) {
	r.monitor = m
}

func (r *Renderer) Monitor() *monitoring.FrameMonitor {
	return r.monitor
}

func (r *Renderer) Options() Options {
	return r.opts
}

// Framebuffer returns the target of the most recent frame.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// RenderFrame draws one frame: clear, floor and ceiling, walls (which fill
// the depth buffer), then sprites. Projectiles advance by dt during the
// sprite pass and destroyed sprites are purged from m before returning.
// The returned framebuffer is reused by the next call.
func (r *Renderer) RenderFrame(m *world.Map, obs camera.Observer, dt float64) (*Framebuffer, FrameStats) {
	timer := r.monitor.StartFrame()
	var stats FrameStats

	r.fb.Clear(r.opts.Background)
	r.monitor.TimePass(monitoring.PassFloor, func() {
		r.drawFloorCeiling(obs)
	})
	r.monitor.TimePass(monitoring.PassWalls, func() {
		stats.WallHits = r.drawWalls(m, obs)
	})
	r.monitor.TimePass(monitoring.PassSprites, func() {
		stats.Sprites = r.drawSprites(m, obs, dt)
	})
	stats.Purged = m.PurgeDestroyed()

	timer.EndFrame()
	r.monitor.RecordCounts(monitoring.FrameCounts{
		WallHits:    stats.WallHits,
		Drawn:       stats.Sprites.Drawn,
		Culled:      stats.Sprites.Culled,
		Occluded:    stats.Sprites.Occluded,
		Overlays:    stats.Sprites.Overlays,
		Impacts:     stats.Sprites.Impacts,
		Purged:      stats.Purged,
		LiveSprites: len(m.Sprites),
	})
	return r.fb, stats
}
