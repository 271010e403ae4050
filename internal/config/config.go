package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// Config holds everything the program reads at startup.
type Config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`

	Fullscreen bool `toml:"fullscreen"`
	Monitor    int  `toml:"monitor"`

	Samples      int `toml:"samples"`
	GLMajor      int `toml:"gl_major"`
	GLMinor      int `toml:"gl_minor"`
	SwapInterval int `toml:"swap_interval"`

	LogPath     string `toml:"log_path"`
	ArchiveLog  bool   `toml:"archive_log"`
	BufferedLog bool   `toml:"buffered_log"`

	// ShaderFailFast exits on a shader compile or link failure. When false
	// the failure is logged and the loop runs with whatever program linked.
	ShaderFailFast bool     `toml:"shader_fail_fast"`
	EscapeCloses   bool     `toml:"escape_closes"`
	FPSInterval    Duration `toml:"fps_interval"`
}

var (
	ErrBadSize     = errors.New("window size must be positive")
	ErrBadMonitor  = errors.New("monitor index must not be negative")
	ErrBadSamples  = errors.New("samples must not be negative")
	ErrBadVersion  = errors.New("GL major version must be at least 3")
	ErrBadInterval = errors.New("fps interval must be positive")
)

func Default() Config {
	return Config{
		Title:          "Hello Triangle",
		Width:          640,
		Height:         480,
		Samples:        4,
		GLMajor:        4,
		GLMinor:        1,
		SwapInterval:   1,
		LogPath:        "gl.log",
		ShaderFailFast: true,
		EscapeCloses:   true,
		FPSInterval:    Duration{250 * time.Millisecond},
	}
}

// Load builds a Config from defaults, an optional TOML file named by
// --config, and command-line flags. Flags set explicitly win over the file.
func Load(args []string) (Config, error) {
	const op = "config.Load"

	cfg := Default()

	fs := pflag.NewFlagSet("hellotriangle", pflag.ContinueOnError)
	path := fs.String("config", "", "path to a TOML config file")
	bind(fs, &cfg)

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%s: parse flags: %w", op, err)
	}

	if *path != "" {
		fromFile := Default()
		if err := readFile(*path, &fromFile); err != nil {
			return Config{}, fmt.Errorf("%s: %w", op, err)
		}

		// Re-apply explicitly set flags on top of the file values.
		fs = pflag.NewFlagSet("hellotriangle", pflag.ContinueOnError)
		fs.String("config", "", "")
		bind(fs, &fromFile)
		if err := fs.Parse(args); err != nil {
			return Config{}, fmt.Errorf("%s: parse flags: %w", op, err)
		}
		cfg = fromFile
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

// bind registers one flag per field, using the current values of cfg as
// defaults so that unset flags leave them untouched.
func bind(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Title, "title", cfg.Title, "window title")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "window width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "window height")
	fs.BoolVar(&cfg.Fullscreen, "fullscreen", cfg.Fullscreen, "open fullscreen at the monitor's video mode")
	fs.IntVar(&cfg.Monitor, "monitor", cfg.Monitor, "monitor index used for fullscreen")
	fs.IntVar(&cfg.Samples, "samples", cfg.Samples, "multisample count, 0 disables")
	fs.IntVar(&cfg.GLMajor, "gl-major", cfg.GLMajor, "requested GL context major version")
	fs.IntVar(&cfg.GLMinor, "gl-minor", cfg.GLMinor, "requested GL context minor version")
	fs.IntVar(&cfg.SwapInterval, "swap-interval", cfg.SwapInterval, "buffer swap interval (1 = vsync)")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "log file path")
	fs.BoolVar(&cfg.ArchiveLog, "archive-log", cfg.ArchiveLog, "compress the previous log before truncating it")
	fs.BoolVar(&cfg.BufferedLog, "buffered-log", cfg.BufferedLog, "buffer log writes and flush on exit")
	fs.BoolVar(&cfg.ShaderFailFast, "shader-fail-fast", cfg.ShaderFailFast, "exit when a shader fails to compile or link")
	fs.BoolVar(&cfg.EscapeCloses, "escape-closes", cfg.EscapeCloses, "close the window when Escape is pressed")
	fs.DurationVar(&cfg.FPSInterval.Duration, "fps-interval", cfg.FPSInterval.Duration, "how often the FPS title is refreshed")
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}

// Duration reads "250ms"-style strings from TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: %dx%d", ErrBadSize, c.Width, c.Height)
	case c.Monitor < 0:
		return fmt.Errorf("%w: %d", ErrBadMonitor, c.Monitor)
	case c.Samples < 0:
		return fmt.Errorf("%w: %d", ErrBadSamples, c.Samples)
	case c.GLMajor < 3:
		return fmt.Errorf("%w: %d", ErrBadVersion, c.GLMajor)
	case c.FPSInterval.Duration <= 0:
		return fmt.Errorf("%w: %s", ErrBadInterval, c.FPSInterval)
	}
	return nil
}
