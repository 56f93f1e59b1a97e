// Package clock draws the analog New Year clock shown over the display.
package clock

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/vovakirdan/tui-fireworks/internal/core"
)

// Dial geometry in display units.
const (
	Radius        = 200
	DialWidth     = 2
	NumeralRadius = Radius - 20
	HourHand      = 120
	MinuteHand    = 160
	SecondHand    = 180
	DateOffset    = 240 // Below center
	CountOffset   = 280 // Below center

	// FinalSeconds is the window in which the countdown turns red.
	FinalSeconds = 10
)

// Clock renders wall-clock time and counts down to the next New Year.
type Clock struct {
	cx, cy  int
	now     func() time.Time
	newYear time.Time
}

// NewWithTime creates a clock centered on a width x height display that
// reads the time from now.
func NewWithTime(width, height int, now func() time.Time) *Clock {
	c := &Clock{cx: width / 2, cy: height / 2, now: now}
	c.Reset()
	return c
}

// Reset targets the first instant of the year after the current one.
func (c *Clock) Reset() {
	t := c.now()
	c.newYear = time.Date(t.Year()+1, time.January, 1, 0, 0, 0, 0, t.Location())
}

// Remaining returns whole seconds until the target, never negative.
func (c *Clock) Remaining() int {
	return max(0, int(c.newYear.Sub(c.now()).Seconds()))
}

// Render draws the clock and returns the seconds remaining to New Year.
func (c *Clock) Render(dst core.Surface) int {
	now := c.now()
	left := c.Remaining()
	final := left <= FinalSeconds

	dst.StrokeCircle(c.cx, c.cy, Radius, DialWidth, core.ColorWhite)
	for i := 1; i <= 12; i++ {
		x, y := c.polar(float64(90-i*30), NumeralRadius)
		dst.Text(x, y, strconv.Itoa(i), core.ColorWhite)
	}

	hour := float64(now.Hour()%12)*30 + float64(now.Minute())/60*30
	c.hand(dst, 90-hour, HourHand, 4, core.ColorWhite)
	c.hand(dst, float64(90-now.Minute()*6), MinuteHand, 3, core.ColorWhite)
	second := core.ColorWhite
	if final {
		second = core.ColorRed
	}
	c.hand(dst, float64(90-now.Second()*6), SecondHand, 2, second)

	dst.Text(c.cx, c.cy+DateOffset, now.Format("2006-01-02"), core.ColorWhite)

	if left == 0 {
		dst.Text(c.cx, c.cy+CountOffset, "Time to New Year: 0 seconds", core.ColorWhite)
		return 0
	}
	count := core.ColorWhite
	if final {
		count = core.ColorRed
	}
	dst.Text(c.cx-80, c.cy+CountOffset, "Time to New Year:", core.ColorWhite)
	dst.Text(c.cx+135, c.cy+CountOffset, fmt.Sprintf("%d seconds", left), count)
	return left
}

func (c *Clock) hand(dst core.Surface, deg float64, length, width int, col core.RGB) {
	x, y := c.polar(deg, length)
	dst.Line(c.cx, c.cy, x, y, width, col)
}

// polar converts a clock angle (degrees counter-clockwise from 3 o'clock)
// to display coordinates.
func (c *Clock) polar(deg float64, r int) (int, int) {
	rad := deg * math.Pi / 180
	return c.cx + int(float64(r)*math.Cos(rad)), c.cy - int(float64(r)*math.Sin(rad))
}
