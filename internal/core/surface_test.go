package core

import "testing"

func TestViewportScalesCoordinates(t *testing.T) {
	c := NewCanvas(72, 36)
	v := NewViewport(c, 720, 720, 72, 36)

	v.FillCircle(360, 360, 4, testRed)
	// 4 * min(0.1, 0.05) rounds to 0, but visible shapes stay visible.
	if c.At(36, 18) != testRed {
		t.Error("scaled circle center should be painted")
	}
	if n := countColor(c, testRed); n != 1 {
		t.Errorf("scaled small circle painted %d pixels, expected 1", n)
	}

	v.FillCircle(0, 0, 0, ColorWhite)
	if c.At(0, 0) == ColorWhite {
		t.Error("zero radius should stay invisible after scaling")
	}
}

func TestViewportText(t *testing.T) {
	c := NewCanvas(72, 72)
	v := NewViewport(c, 720, 720, 72, 72)
	v.Text(360, 600, "Happy", ColorWhite)

	labels := c.Labels()
	if len(labels) != 1 || labels[0].X != 36 || labels[0].Y != 60 {
		t.Errorf("Text label = %+v, expected at (36, 60)", labels)
	}
}

func TestDisplayListReplay(t *testing.T) {
	d := NewDisplayList()
	d.FillCircle(1, 1, 5, testRed) // Dropped by the following fill
	d.Fill(ColorBlack)
	d.FillCircle(5, 5, 2, testRed)
	d.StrokeCircle(5, 5, 4, 1, ColorWhite)
	d.Line(0, 9, 9, 9, 1, ColorWhite)
	d.Text(5, 0, "hi", ColorWhite)

	if len(d.ops) != 5 {
		t.Fatalf("recorded %d operations, expected 5", len(d.ops))
	}

	c := NewCanvas(10, 10)
	c.Fill(RGB{1, 2, 3})
	d.Replay(c)

	if c.At(5, 5) != testRed {
		t.Error("replayed circle missing")
	}
	if c.At(0, 9) != ColorWhite {
		t.Error("replayed line missing")
	}
	if c.At(0, 0) != ColorBlack {
		t.Error("replayed fill missing")
	}
	if len(c.Labels()) != 1 {
		t.Error("replayed text missing")
	}
}
