package frame

import "go.uber.org/zap"

type Size struct {
	W, H int
}

// State tracks the window size reported by the OS and the framebuffer size
// in pixels. Each is written only by its own resize callback.
type State struct {
	Window      Size
	Framebuffer Size

	log *zap.Logger
}

func NewState(w, h int, log *zap.Logger) *State {
	return &State{
		Window:      Size{w, h},
		Framebuffer: Size{w, h},
		log:         log,
	}
}

func (s *State) OnWindowSize(w, h int) {
	s.Window = Size{w, h}
	s.log.Debug("Window resized", zap.Int("width", w), zap.Int("height", h))
}

func (s *State) OnFramebufferSize(w, h int) {
	s.Framebuffer = Size{w, h}
	s.log.Debug("Framebuffer resized", zap.Int("width", w), zap.Int("height", h))
}
