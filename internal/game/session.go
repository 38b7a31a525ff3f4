// Package game runs one level: it applies player input and sprite animation
// in the update phase, renders in the render phase, and hands the result to
// the inspection server and the audio cues.
package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gridcaster/internal/audio"
	"gridcaster/internal/camera"
	"gridcaster/internal/config"
	"gridcaster/internal/graphics"
	"gridcaster/internal/inspect"
	"gridcaster/internal/logger"
	"gridcaster/internal/monitoring"
	"gridcaster/internal/present"
	"gridcaster/internal/render"
	"gridcaster/internal/world"

	"go.uber.org/zap"
)

// ErrNoFreeCell is returned when a level has nowhere to place the observer.
var ErrNoFreeCell = errors.New("level has no empty cell for the observer")

// Publisher receives per-frame snapshots.
type Publisher interface {
	Publish(snap inspect.Snapshot)
}

type Option func(*Session)

func WithPublisher(p Publisher) Option {
	return func(s *Session) { s.publisher = p }
}

func WithAudio(c audio.Cues) Option {
	return func(s *Session) { s.cues = c }
}

func WithMonitor(m *monitoring.FrameMonitor) Option {
	return func(s *Session) { s.monitor = m }
}

// WithRand seeds projectile noise.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// Session owns the level and everything that mutates it. Backends call
// Update then Render from a single goroutine.
type Session struct {
	level    *world.Map
	player   *Player
	animator *Animator
	renderer *render.Renderer

	publisher    Publisher
	publishEvery uint64
	cues         audio.Cues
	monitor      *monitoring.FrameMonitor
	rng          *rand.Rand
	log          *zap.Logger

	frame uint64
}

func NewSession(cfg *config.Config, level *world.Map, textures *graphics.Registry, opts ...Option) (*Session, error) {
	s := &Session{
		level:        level,
		cues:         audio.Nop{},
		publishEvery: 1,
		log:          logger.Named("game"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(cfg.Sprites.Seed))
	}
	if cfg.Inspect.PublishEvery > 1 {
		s.publishEvery = uint64(cfg.Inspect.PublishEvery)
	}

	ropts, err := render.OptionsFromConfig(cfg, textures)
	if err != nil {
		return nil, fmt.Errorf("render options: %w", err)
	}
	s.renderer = render.New(ropts, textures, s.rng)
	if s.monitor != nil {
		s.renderer.SetMonitor(s.monitor)
	}
	s.monitor = s.renderer.Monitor()
	if cfg.Display.TargetFPS > 0 {
		s.monitor.SetFPSFloor(float64(cfg.Display.TargetFPS) / 2)
	}

	projTex, err := textures.ID(cfg.Sprites.ProjectileTexture)
	if err != nil {
		return nil, fmt.Errorf("projectile_texture: %w", err)
	}

	s.animator = NewAnimator()
	for i, c := range cfg.Animation.Cycles {
		frames := make([]int, 0, len(c.Frames))
		for _, name := range c.Frames {
			id, err := textures.ID(name)
			if err != nil {
				return nil, fmt.Errorf("animation cycle %d: %w", i, err)
			}
			frames = append(frames, id)
		}
		s.animator.AddCycle(frames, c.Interval)
	}

	x, y, err := startPosition(level, cfg.Camera.StartX, cfg.Camera.StartY)
	if err != nil {
		return nil, err
	}
	if x != cfg.Camera.StartX || y != cfg.Camera.StartY {
		s.log.Warn("start cell is blocked, moved observer",
			zap.Float64("x", x), zap.Float64("y", y))
	}

	s.player = &Player{
		Observer:         camera.New(x, y, cfg.Camera.DirX, cfg.Camera.DirY, cfg.GetCameraFOV()),
		MoveSpeed:        cfg.GetMoveSpeed(),
		RotationSpeed:    cfg.GetRotSpeed(),
		MouseSensitivity: cfg.Movement.MouseSensitivity,
		FireCooldown:     cfg.Sprites.FireCooldown,
		ProjectileTex:    projTex,
	}
	return s, nil
}

// startPosition keeps (x, y) when its cell is empty and otherwise picks the
// centre of the first empty cell in row-major order.
func startPosition(m *world.Map, x, y float64) (float64, float64, error) {
	if m.IsEmptyAt(int(math.Floor(x)), int(math.Floor(y))) {
		return x, y, nil
	}
	for cy := 0; cy < m.Size; cy++ {
		for cx := 0; cx < m.Size; cx++ {
			if m.IsEmptyAt(cx, cy) {
				return float64(cx) + 0.5, float64(cy) + 0.5, nil
			}
		}
	}
	return 0, 0, ErrNoFreeCell
}

// Update is the update phase: input, movement, spawns and animation. It
// reports whether the input asked to quit.
func (s *Session) Update(in Input, dt float64) bool {
	if in.Quit {
		return true
	}
	if s.player.Update(s.level, in, dt) {
		s.cues.Fire()
	}
	s.animator.Step(s.level)
	return false
}

// Render is the render phase. The returned framebuffer is reused by the
// next call.
func (s *Session) Render(dt float64) *render.Framebuffer {
	fb, stats := s.renderer.RenderFrame(s.level, s.player.Observer, dt)
	s.frame++

	if stats.Sprites.Impacts > 0 {
		s.cues.Impact()
	}
	if s.publisher != nil && s.frame%s.publishEvery == 0 {
		s.publisher.Publish(s.snapshot(fb))
	}
	if s.frame%600 == 0 {
		for _, alert := range s.monitor.CheckPerformanceAlerts() {
			s.log.Warn("performance", zap.String("type", alert.Type), zap.String("message", alert.Message))
		}
		if ce := s.log.Check(zap.DebugLevel, "frame stats"); ce != nil {
			ce.Write(zap.Any("stats", s.monitor.GetDetailedStats()))
		}
	}
	return fb
}

// Present hands fb to p and records the time under the present pass.
func (s *Session) Present(p present.Presenter, fb *render.Framebuffer) error {
	var err error
	s.monitor.TimePass(monitoring.PassPresent, func() {
		err = p.Present(fb)
	})
	return err
}

func (s *Session) snapshot(fb *render.Framebuffer) inspect.Snapshot {
	o := s.player.Observer
	return inspect.Snapshot{
		Frame: s.frame,
		Observer: inspect.ObserverState{
			X: o.X, Y: o.Y,
			DirX: o.DirX, DirY: o.DirY,
			Angle: o.Angle(),
		},
		Sprites: inspect.SpritesOf(s.level),
		Stats:   s.monitor.Snapshot(),
		Board:   s.Board(),
		Image:   fb.Clone(),
	}
}

func (s *Session) Observer() camera.Observer {
	return s.player.Observer
}

func (s *Session) Map() *world.Map {
	return s.level
}

func (s *Session) Frame() uint64 {
	return s.frame
}

func (s *Session) Monitor() *monitoring.FrameMonitor {
	return s.monitor
}

// Size returns the framebuffer dimensions.
func (s *Session) Size() (int, int) {
	o := s.renderer.Options()
	return o.Width, o.Height
}

// Board returns the ASCII map with the observer's cell marked.
func (s *Session) Board() string {
	px, py := s.player.Observer.Cell()
	return world.Board(s.level, px, py)
}

// Close stops the render workers and releases the audio device.
func (s *Session) Close() {
	s.renderer.Close()
	s.cues.Close()
}
