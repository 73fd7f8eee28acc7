package export

import (
	"fmt"
	"math"
)

// ntscRate describes an NTSC-derived rate of timebase/1001 frames per second.
type ntscRate struct {
	nominal   float64
	timebase  int
	dropFrame bool
}

var ntscRates = []ntscRate{
	{nominal: 23.976, timebase: 24000},
	{nominal: 29.97, timebase: 30000, dropFrame: true},
	{nominal: 59.94, timebase: 60000, dropFrame: true},
}

func lookupNTSC(frameRate float64) (ntscRate, bool) {
	for _, r := range ntscRates {
		if math.Abs(frameRate-r.nominal) < 0.01 {
			return r, true
		}
	}
	return ntscRate{}, false
}

// isDropFrame reports whether timecode at frameRate is counted drop-frame.
func isDropFrame(frameRate float64) bool {
	r, ok := lookupNTSC(frameRate)
	return ok && r.dropFrame
}

func roundHalfEven(v float64) int {
	return int(math.RoundToEven(v))
}

// msToFrames converts milliseconds to a whole frame count at fps.
func msToFrames(ms int, fps float64) int {
	return roundHalfEven(float64(ms) * fps / 1000.0)
}

func msToTimecode(ms int, fps int) string {
	totalFrames := msToFrames(ms, float64(fps))
	frames := totalFrames % fps
	totalSeconds := totalFrames / fps
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, frames)
}

// timebase converts milliseconds to FCPXML rational time strings.
type timebase struct {
	fps  int
	ntsc *ntscRate
}

func newTimebase(frameRate float64) timebase {
	tb := timebase{fps: roundHalfEven(frameRate)}
	if r, ok := lookupNTSC(frameRate); ok {
		tb.ntsc = &r
	}
	return tb
}

// frameDuration is the duration of one frame.
func (tb timebase) frameDuration() string {
	if tb.ntsc != nil {
		return fmt.Sprintf("1001/%ds", tb.ntsc.timebase)
	}
	return fmt.Sprintf("1/%ds", tb.fps)
}

func (tb timebase) tcFormat() string {
	if tb.ntsc != nil && tb.ntsc.dropFrame {
		return "DF"
	}
	return "NDF"
}

// rational renders ms as a frame-aligned rational number of seconds. NTSC
// rates use exact 1001-based fractions.
func (tb timebase) rational(ms int) string {
	if tb.ntsc != nil {
		exact := float64(tb.ntsc.timebase) / 1001
		return fmt.Sprintf("%d/%ds", msToFrames(ms, exact)*1001, tb.ntsc.timebase)
	}
	return fmt.Sprintf("%d/%ds", msToFrames(ms, float64(tb.fps)), tb.fps)
}
