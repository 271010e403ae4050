package ui

import (
	"errors"
	"fmt"

	"hellotriangle/internal/config"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Init starts glfw and logs its version. The caller owns glfw.Terminate.
func Init(log *zap.Logger) error {
	const op = "ui.Init"

	err := guard(log, func() error {
		return glfw.Init()
	})
	if err != nil {
		return fmt.Errorf("%s: could not start GLFW3: %w", op, err)
	}

	log.Info("starting GLFW", zap.String("version", glfw.GetVersionString()))

	return nil
}

// PrimaryWindow creates the window described by cfg and makes its context
// current on the calling thread.
func PrimaryWindow(cfg config.Config, log *zap.Logger) (*glfw.Window, error) {
	const op = "ui.PrimaryWindow"

	var win *glfw.Window
	err := guard(log, func() error {
		glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
		glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
		glfw.WindowHint(glfw.Samples, cfg.Samples)

		w, h := cfg.Width, cfg.Height
		var monitor *glfw.Monitor
		if cfg.Fullscreen {
			var err error
			monitor, err = pickMonitor(glfw.GetMonitors(), glfw.GetPrimaryMonitor(), cfg.Monitor, log)
			if err != nil {
				return err
			}
			mode := monitor.GetVideoMode()
			if mode == nil {
				return fmt.Errorf("%w: %s reports no video mode", ErrNoMonitor, monitor.GetName())
			}

			glfw.WindowHint(glfw.RedBits, mode.RedBits)
			glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
			glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
			glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)

			w, h = mode.Width, mode.Height
			log.Info("Fullscreen video mode",
				zap.String("monitor", monitor.GetName()),
				zap.Int("width", w),
				zap.Int("height", h),
				zap.Int("refresh", mode.RefreshRate),
			)
		}

		var err error
		win, err = glfw.CreateWindow(w, h, cfg.Title, monitor, nil)
		if err != nil {
			return err
		}

		win.MakeContextCurrent()
		glfw.SwapInterval(cfg.SwapInterval)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: could not open window with GLFW3: %w", op, err)
	}

	return win, nil
}

var ErrNoMonitor = errors.New("no monitor available for fullscreen")

// pickMonitor returns monitors[idx], falling back to primary when idx is out
// of range.
func pickMonitor(monitors []*glfw.Monitor, primary *glfw.Monitor, idx int, log *zap.Logger) (*glfw.Monitor, error) {
	if idx < len(monitors) && monitors[idx] != nil {
		return monitors[idx], nil
	}

	if primary == nil {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNoMonitor, idx, len(monitors))
	}

	log.Warn("Monitor index out of range, using primary",
		zap.Int("monitor", idx),
		zap.Int("available", len(monitors)),
	)
	return primary, nil
}

// guard runs fn, turning the panics glfw raises for unexpected library
// errors into logged errors.
func guard(log *zap.Logger, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				rerr = fmt.Errorf("%v", r)
			}
			err = rerr
			logLibraryError(log, err)
		}
	}()

	err = fn()
	if err != nil {
		logLibraryError(log, err)
	}
	return err
}

func logLibraryError(log *zap.Logger, err error) {
	var glfwErr *glfw.Error
	if errors.As(err, &glfwErr) {
		log.Error(fmt.Sprintf("GLFW ERROR: code %d msg: %s", glfwErr.Code, glfwErr.Desc))
		return
	}
	log.Error("Window system failure", zap.Error(err))
}
