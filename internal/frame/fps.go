package frame

import (
	"fmt"
	"time"
)

// FPSCounter counts frames between title refreshes. A refresh happens at
// most once per interval.
type FPSCounter struct {
	interval float64
	last     float64
	frames   int
}

// NewFPSCounter starts counting at start, in seconds.
func NewFPSCounter(interval time.Duration, start float64) *FPSCounter {
	return &FPSCounter{interval: interval.Seconds(), last: start}
}

// Tick records a frame at now. Once more than the interval has passed since
// the last refresh it returns the rate over that span and starts over.
func (c *FPSCounter) Tick(now float64) (fps float64, ok bool) {
	elapsed := now - c.last
	if elapsed > c.interval {
		fps = float64(c.frames) / elapsed
		c.frames = 0
		c.last = now
		return fps, true
	}

	c.frames++
	return 0, false
}

func Title(base string, fps float64) string {
	return fmt.Sprintf("%s @ fps: %.2f", base, fps)
}
