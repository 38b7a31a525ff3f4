package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagLevel   = flag.String("level", "", "Path to level file")
	flagBackend = flag.String("backend", "", "Presenter backend: desktop, glwindow, terminal, headless")
	flagFrames  = flag.Int("frames", 0, "Frames to render with the headless backend")
	flagOut     = flag.String("out", "", "PNG output path for the headless backend")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWidth   = flag.Int("width", 0, "Internal framebuffer width")
	flagHeight  = flag.Int("height", 0, "Internal framebuffer height")
	flagInspect = flag.String("inspect", "", "Serve the inspection endpoint on this address")
	flagSound   = flag.Bool("sound", false, "Enable audio cues")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

func applyFlags(cfg *Config) {
	if *flagLevel != "" {
		cfg.Level.Path = *flagLevel
	}
	if *flagBackend != "" {
		cfg.Backend.Name = *flagBackend
	}
	if *flagFrames > 0 {
		cfg.Backend.Frames = *flagFrames
	}
	if *flagOut != "" {
		cfg.Backend.Output = *flagOut
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagInspect != "" {
		cfg.Inspect.Enabled = true
		cfg.Inspect.Addr = *flagInspect
	}
	if *flagSound {
		cfg.Audio.Enabled = true
	}
}
