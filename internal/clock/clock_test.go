package clock

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-fireworks/internal/core"
)

type line struct {
	x0, y0, x1, y1, width int
	c                     core.RGB
}

type text struct {
	x, y int
	s    string
	c    core.RGB
}

type recorder struct {
	circles int
	lines   []line
	texts   []text
}

func (r *recorder) Fill(core.RGB) {}
func (r *recorder) FillCircle(int, int, int, core.RGB) {}
func (r *recorder) StrokeCircle(x, y, rad, w int, c core.RGB) { r.circles++ }
func (r *recorder) Line(x0, y0, x1, y1, w int, c core.RGB) {
	r.lines = append(r.lines, line{x0, y0, x1, y1, w, c})
}
func (r *recorder) Text(x, y int, s string, c core.RGB) {
	r.texts = append(r.texts, text{x, y, s, c})
}

func fixed(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRemaining(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{"one minute before", time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC), 60},
		{"one day before", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 86400},
		{"half second before", time.Date(2025, 12, 31, 23, 59, 59, 5e8, time.UTC), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewWithTime(720, 720, fixed(tc.now))
			if got := c.Remaining(); got != tc.expected {
				t.Errorf("Remaining() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestRemainingClampsAtZero(t *testing.T) {
	now := time.Date(2025, 12, 31, 23, 59, 58, 0, time.UTC)
	c := NewWithTime(720, 720, func() time.Time { return now })
	now = now.Add(5 * time.Second)

	if got := c.Remaining(); got != 0 {
		t.Errorf("Remaining() = %d after the target, expected 0", got)
	}
	if got := c.Render(&recorder{}); got != 0 {
		t.Errorf("Render() = %d after the target, expected 0", got)
	}
}

func TestReset(t *testing.T) {
	now := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
	c := NewWithTime(720, 720, func() time.Time { return now })
	if c.newYear.Year() != 2026 {
		t.Fatalf("target year = %d, expected 2026", c.newYear.Year())
	}

	now = time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC)
	c.Reset()
	if c.newYear.Year() != 2027 {
		t.Errorf("target year after Reset = %d, expected 2027", c.newYear.Year())
	}
}

func TestRenderDial(t *testing.T) {
	// 03:00:00 puts the hour hand on 3 and both other hands on 12.
	c := NewWithTime(720, 720, fixed(time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)))
	r := &recorder{}
	left := c.Render(r)

	if r.circles != 1 {
		t.Errorf("expected one dial outline, got %d", r.circles)
	}
	if len(r.lines) != 3 {
		t.Fatalf("expected 3 hands, got %d", len(r.lines))
	}

	hour, minute, second := r.lines[0], r.lines[1], r.lines[2]
	if hour.x1 != 360+HourHand || hour.y1 != 360 || hour.width != 4 {
		t.Errorf("hour hand = %+v, expected end (%d, 360) width 4", hour, 360+HourHand)
	}
	if minute.x1 != 360 || minute.y1 != 360-MinuteHand || minute.width != 3 {
		t.Errorf("minute hand = %+v, expected end (360, %d) width 3", minute, 360-MinuteHand)
	}
	if second.width != 2 || second.c != core.ColorWhite {
		t.Errorf("second hand = %+v, expected white width 2", second)
	}

	var numerals, date int
	for _, tx := range r.texts {
		switch {
		case tx.s == "2025-06-01":
			date++
			if tx.y != 360+DateOffset {
				t.Errorf("date at y=%d, expected %d", tx.y, 360+DateOffset)
			}
		case len(tx.s) <= 2:
			numerals++
		}
	}
	if numerals != 12 {
		t.Errorf("expected 12 numerals, got %d", numerals)
	}
	if date != 1 {
		t.Errorf("expected the date once, got %d", date)
	}

	expected := int(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Sub(time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)).Seconds())
	if left != expected {
		t.Errorf("Render() = %d, expected %d", left, expected)
	}
}

func TestRenderFinalSeconds(t *testing.T) {
	c := NewWithTime(720, 720, fixed(time.Date(2025, 12, 31, 23, 59, 55, 0, time.UTC)))
	r := &recorder{}
	if left := c.Render(r); left != 5 {
		t.Fatalf("Render() = %d, expected 5", left)
	}

	if second := r.lines[2]; second.c != core.ColorRed {
		t.Errorf("second hand color = %v, expected red", second.c)
	}

	found := false
	for _, tx := range r.texts {
		if strings.HasSuffix(tx.s, "seconds") {
			found = true
			if tx.s != "5 seconds" || tx.c != core.ColorRed {
				t.Errorf("countdown = %q %v, expected red \"5 seconds\"", tx.s, tx.c)
			}
		}
	}
	if !found {
		t.Error("countdown text not drawn")
	}
}
