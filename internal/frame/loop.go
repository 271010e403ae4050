// Package frame runs the render loop: FPS title updates, resize tracking and
// the close condition.
package frame

import (
	"go.uber.org/zap"
)

// Surface is the window the loop draws into.
type Surface interface {
	ShouldClose() bool
	SetShouldClose(bool)
	EscapePressed() bool
	SetTitle(string)
	PollEvents()
	SwapBuffers()
	// Time returns seconds since the windowing library started.
	Time() float64
}

// Scene clears the frame, sets the viewport and draws.
type Scene interface {
	Draw(viewport Size)
}

type Loop struct {
	Surface Surface
	Scene   Scene
	State   *State
	FPS     *FPSCounter

	Title        string
	EscapeCloses bool

	Log *zap.Logger
}

// Run draws frames until the surface is asked to close and returns how many
// frames were presented.
func (l *Loop) Run() int {
	l.Log.Info("Entering frame loop",
		zap.Int("width", l.State.Framebuffer.W),
		zap.Int("height", l.State.Framebuffer.H),
	)

	frames := 0
	for !l.closing() {
		if fps, ok := l.FPS.Tick(l.Surface.Time()); ok {
			l.Surface.SetTitle(Title(l.Title, fps))
		}

		l.Scene.Draw(l.State.Framebuffer)

		// Resize callbacks fire in here.
		l.Surface.PollEvents()
		l.Surface.SwapBuffers()

		frames++
	}

	l.Log.Info("Leaving frame loop", zap.Int("frames", frames))

	return frames
}

func (l *Loop) closing() bool {
	if l.EscapeCloses && l.Surface.EscapePressed() {
		l.Surface.SetShouldClose(true)
	}
	return l.Surface.ShouldClose()
}
