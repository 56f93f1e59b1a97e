package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionLaunch) {
		t.Error("new frame should be empty")
	}

	f.Set(ActionLaunch)
	f.Set(ActionLaunch)
	f.Set(ActionPause)
	if f.Count(ActionLaunch) != 2 {
		t.Errorf("Count(Launch) = %d, expected 2", f.Count(ActionLaunch))
	}

	f.Clear()
	if f.Has(ActionPause) || f.Count(ActionLaunch) != 0 {
		t.Error("Clear should reset actions")
	}

	var zero InputFrame
	if zero.Has(ActionQuit) {
		t.Error("zero frame should report no actions")
	}
	zero.Set(ActionQuit)
	if !zero.Has(ActionQuit) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionLaunch, "Launch"},
		{ActionLaunchTen, "LaunchTen"},
		{ActionPause, "Pause"},
		{ActionQuit, "Quit"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}
