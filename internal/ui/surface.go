package ui

import (
	"hellotriangle/internal/frame"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Surface adapts a glfw window to frame.Surface.
// Library failures inside the loop are logged and the frame carries on.
type Surface struct {
	win *glfw.Window
	log *zap.Logger
}

func NewSurface(win *glfw.Window, log *zap.Logger) *Surface {
	return &Surface{win: win, log: log}
}

// Watch seeds st with the window's current sizes and keeps it updated from
// the resize callbacks, which run inside PollEvents.
func (s *Surface) Watch(st *frame.State) {
	st.OnWindowSize(s.win.GetSize())
	st.OnFramebufferSize(s.win.GetFramebufferSize())

	s.win.SetSizeCallback(func(_ *glfw.Window, w, h int) {
		st.OnWindowSize(w, h)
	})
	s.win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		st.OnFramebufferSize(w, h)
	})
}

func (s *Surface) ShouldClose() bool { return s.win.ShouldClose() }
func (s *Surface) SetShouldClose(v bool) { s.win.SetShouldClose(v) }
func (s *Surface) Time() float64 { return glfw.GetTime() }

func (s *Surface) SetTitle(title string) {
	s.do(func() { s.win.SetTitle(title) })
}

func (s *Surface) SwapBuffers() {
	s.do(s.win.SwapBuffers)
}

func (s *Surface) PollEvents() {
	s.do(glfw.PollEvents)
}

func (s *Surface) EscapePressed() bool {
	return s.win.GetKey(glfw.KeyEscape) == glfw.Press
}

func (s *Surface) do(fn func()) {
	_ = guard(s.log, func() error {
		fn()
		return nil
	})
}
