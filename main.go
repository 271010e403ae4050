package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"hellotriangle/internal/compressor"
	"hellotriangle/internal/config"
	"hellotriangle/internal/diag"
	"hellotriangle/internal/frame"
	"hellotriangle/internal/logger"
	"hellotriangle/internal/render"
	"hellotriangle/internal/ui"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func init() {
	// GL and glfw calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return 1
	}

	lg := openLog(cfg)
	defer lg.Close()
	log := lg.Zap()

	log.Info("Config", zap.Any("config", cfg))

	if err := ui.Init(log); err != nil {
		lg.Error(fmt.Sprintf("ERROR: %s", err))
		return 1
	}
	defer glfw.Terminate()

	win, err := ui.PrimaryWindow(cfg, log)
	if err != nil {
		lg.Error(fmt.Sprintf("ERROR: %s", err))
		return 1
	}

	if err := render.Load(); err != nil {
		lg.Error(fmt.Sprintf("ERROR: %s", err))
		return 1
	}

	diag.Info(os.Stdout, log)
	if err := diag.LogParams(lg, diag.Params(diag.GLQuerier{})); err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", err)
	}

	pg, err := render.NewProgram(render.GLCompiler{}, cfg.ShaderFailFast, log)
	if err != nil {
		lg.Error(fmt.Sprintf("ERROR: %s", err))
		return 1
	}

	hv := ui.CreateHomeView(pg)
	defer hv.Close()

	surface := ui.NewSurface(win, log)
	state := frame.NewState(cfg.Width, cfg.Height, log)
	surface.Watch(state)

	loop := &frame.Loop{
		Surface:      surface,
		Scene:        hv,
		State:        state,
		FPS:          frame.NewFPSCounter(cfg.FPSInterval.Duration, surface.Time()),
		Title:        cfg.Title,
		EscapeCloses: cfg.EscapeCloses,
		Log:          log,
	}
	loop.Run()

	return 0
}

// openLog resets the log file and returns a logger appending to it. When the
// file cannot be written the program carries on logging errors to stderr.
func openLog(cfg config.Config) *logger.Logger {
	var archiver logger.Archiver
	if cfg.ArchiveLog {
		c, err := compressor.NewCompressor(logger.NewStderr(os.Stderr).Zap())
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: log archiving disabled: %s\n", err)
		} else {
			defer c.Close()
			archiver = c
		}
	}

	if err := logger.Reset(cfg.LogPath, time.Now(), archiver, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", err)
		return logger.NewStderr(os.Stderr)
	}

	return logger.New(cfg.LogPath, logger.Options{Buffered: cfg.BufferedLog})
}
