package config

import (
	"errors"
	"fmt"
	"math"
)

// Config holds all renderer and session configuration values
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Render    RenderConfig    `yaml:"render"`
	Camera    CameraConfig    `yaml:"camera"`
	Movement  MovementConfig  `yaml:"movement"`
	Sprites   SpriteConfig    `yaml:"sprites"`
	Animation AnimationConfig `yaml:"animation"`
	Level     LevelConfig     `yaml:"level"`
	Textures  TextureConfig   `yaml:"textures"`
	Backend   BackendConfig   `yaml:"backend"`
	Inspect   InspectConfig   `yaml:"inspect"`
	Audio     AudioConfig     `yaml:"audio"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DisplayConfig is the window the frame is stretched onto.
type DisplayConfig struct {
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	VSync        bool   `yaml:"vsync"`
	TargetFPS    int    `yaml:"target_fps"`
}

// RenderConfig is the internal framebuffer and its texture bindings.
// Texture fields are registry names, resolved to IDs at renderer construction.
type RenderConfig struct {
	Width        int            `yaml:"width"`
	Height       int            `yaml:"height"`
	WallTextures map[int]string `yaml:"wall_textures"`
	DefaultWall  string         `yaml:"default_wall"`
	Floor        string         `yaml:"floor"`
	Ceiling      string         `yaml:"ceiling"`
	SideShade    bool           `yaml:"side_shade"`
	Background   [3]int         `yaml:"background"`
	Workers      int            `yaml:"workers"` // 0 uses one per CPU, 1 renders inline
}

type CameraConfig struct {
	StartX      float64 `yaml:"start_x"`
	StartY      float64 `yaml:"start_y"`
	DirX        float64 `yaml:"dir_x"`
	DirY        float64 `yaml:"dir_y"`
	FieldOfView float64 `yaml:"field_of_view"` // degrees
}

type MovementConfig struct {
	MoveSpeed        float64 `yaml:"move_speed"`        // cells per second
	RotationSpeed    float64 `yaml:"rotation_speed"`    // radians per second
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // radians per pixel
}

type SpriteConfig struct {
	ProjectileSpeed    float64 `yaml:"projectile_speed"`
	ProjectileNoise    float64 `yaml:"projectile_noise"`
	ProjectileLifetime float64 `yaml:"projectile_lifetime"` // seconds, 0 disables expiry
	ProjectileTexture  string  `yaml:"projectile_texture"`
	FireCooldown       float64 `yaml:"fire_cooldown"`
	UIScale            float64 `yaml:"ui_scale"`
	Seed               int64   `yaml:"seed"`
}

// AnimationCycle is a list of texture names a sprite steps through.
type AnimationCycle struct {
	Frames   []string `yaml:"frames"`
	Interval int      `yaml:"interval"` // update ticks per frame
}

type AnimationConfig struct {
	Cycles []AnimationCycle `yaml:"cycles"`
}

type LevelConfig struct {
	Path string `yaml:"path"`
}

type TextureConfig struct {
	Manifest string `yaml:"manifest"`
}

type BackendConfig struct {
	Name   string `yaml:"name"` // desktop, glwindow, terminal, headless
	Frames int    `yaml:"frames"`
	Output string `yaml:"output"`
}

type InspectConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Addr         string `yaml:"addr"`
	PublishEvery int    `yaml:"publish_every"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns a configuration that renders the bundled level.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			WindowWidth:  960,
			WindowHeight: 720,
			WindowTitle:  "gridcaster",
			Resizable:    true,
			VSync:        true,
			TargetFPS:    60,
		},
		Render: RenderConfig{
			Width:  320,
			Height: 240,
			WallTextures: map[int]string{
				1: "stone_wall",
				2: "brick_wall",
				3: "metal_wall",
				4: "blue_wall",
			},
			DefaultWall: "stone_wall",
			Floor:       "floor",
			Ceiling:     "ceiling",
			SideShade:   true,
			Background:  [3]int{0, 0, 0},
		},
		Camera: CameraConfig{
			StartX:      3.5,
			StartY:      3.5,
			DirX:        1,
			DirY:        0.1,
			FieldOfView: 66,
		},
		Movement: MovementConfig{
			MoveSpeed:        3.0,
			RotationSpeed:    2.5,
			MouseSensitivity: 0.003,
		},
		Sprites: SpriteConfig{
			ProjectileSpeed:    6.0,
			ProjectileNoise:    0.1,
			ProjectileLifetime: 4.0,
			ProjectileTexture:  "fireball",
			FireCooldown:       0.3,
			UIScale:            0.35,
			Seed:               1,
		},
		Animation: AnimationConfig{
			Cycles: []AnimationCycle{
				{Frames: []string{"guard_1", "guard_2", "guard_3", "guard_4"}, Interval: 10},
			},
		},
		Level: LevelConfig{
			Path: "assets/levels/level1.txt",
		},
		Backend: BackendConfig{
			Name:   "desktop",
			Frames: 1,
			Output: "frame.png",
		},
		Inspect: InspectConfig{
			Enabled:      false,
			Addr:         ":2137",
			PublishEvery: 1,
		},
		Audio: AudioConfig{
			Volume: 0.5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate rejects configurations the renderer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180 {
		errs = append(errs, fmt.Errorf("field_of_view must be in (0, 180) degrees, got %v", c.Camera.FieldOfView))
	}
	if c.Camera.DirX == 0 && c.Camera.DirY == 0 {
		errs = append(errs, errors.New("camera direction must not be zero"))
	}
	if c.Movement.MoveSpeed < 0 {
		errs = append(errs, fmt.Errorf("move_speed must not be negative, got %v", c.Movement.MoveSpeed))
	}
	if c.Render.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Render.Workers))
	}
	if c.Sprites.ProjectileSpeed < 0 {
		errs = append(errs, fmt.Errorf("projectile_speed must not be negative, got %v", c.Sprites.ProjectileSpeed))
	}
	for i, cycle := range c.Animation.Cycles {
		if cycle.Interval <= 0 {
			errs = append(errs, fmt.Errorf("animation cycle %d: interval must be positive", i))
		}
	}
	for i, v := range c.Render.Background {
		if v < 0 || v > 255 {
			errs = append(errs, fmt.Errorf("background channel %d out of range: %d", i, v))
		}
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio volume must be in [0, 1], got %v", c.Audio.Volume))
	}
	switch c.Backend.Name {
	case "desktop", "glwindow", "terminal", "headless":
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend.Name))
	}
	return errors.Join(errs...)
}

// Helper functions for commonly used values

func (c *Config) GetScreenWidth() int {
	return c.Render.Width
}

func (c *Config) GetScreenHeight() int {
	return c.Render.Height
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

// GetCameraFOV returns the field of view in radians.
func (c *Config) GetCameraFOV() float64 {
	return c.Camera.FieldOfView * math.Pi / 180
}

// GetBackground returns the clear colour as 8-bit channels.
func (c *Config) GetBackground() (r, g, b uint8) {
	bg := c.Render.Background
	return uint8(bg[0]), uint8(bg[1]), uint8(bg[2])
}
