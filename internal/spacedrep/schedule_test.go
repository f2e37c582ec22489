package spacedrep

import (
	"testing"
	"time"
)

func TestBaseIntervals_Values(t *testing.T) {
	expected := []int{1, 5, 10, 60, 180}
	if len(BaseIntervals) != len(expected) {
		t.Fatalf("expected %d base intervals, got %d", len(expected), len(BaseIntervals))
	}
	for i, v := range expected {
		if BaseIntervals[i] != v {
			t.Errorf("BaseIntervals[%d] = %d, want %d", i, BaseIntervals[i], v)
		}
	}
	if MaxLevel != len(BaseIntervals)-1 {
		t.Errorf("MaxLevel = %d, want %d", MaxLevel, len(BaseIntervals)-1)
	}
}

func TestIntervalMinutes_Monotonic(t *testing.T) {
	prev := 0
	for level := 0; level <= 10; level++ {
		got := IntervalMinutes(level)
		if got < prev {
			t.Errorf("IntervalMinutes(%d) = %d, less than previous %d", level, got, prev)
		}
		prev = got
	}
}

func TestIntervalMinutes_BeyondMaxLevel(t *testing.T) {
	for _, level := range []int{4, 5, 10, 1000} {
		if got := IntervalMinutes(level); got != 180 {
			t.Errorf("IntervalMinutes(%d) = %d, want 180", level, got)
		}
	}
}

func TestNextState_Correct(t *testing.T) {
	tests := []struct {
		level     int
		wantLevel int
		wantMins  int
	}{
		{0, 1, 5},
		{1, 2, 10},
		{2, 3, 60},
		{3, 4, 180},
		{4, 5, 180},
		{9, 10, 180},
	}
	for _, tt := range tests {
		level, interval := NextState(tt.level, true)
		if level != tt.wantLevel {
			t.Errorf("NextState(%d, true) level = %d, want %d", tt.level, level, tt.wantLevel)
		}
		if interval != time.Duration(tt.wantMins)*time.Minute {
			t.Errorf("NextState(%d, true) interval = %v, want %dm", tt.level, interval, tt.wantMins)
		}
	}
}

func TestNextState_IncorrectResets(t *testing.T) {
	for level := 0; level <= 8; level++ {
		got, interval := NextState(level, false)
		if got != 0 {
			t.Errorf("NextState(%d, false) level = %d, want 0", level, got)
		}
		if interval != time.Minute {
			t.Errorf("NextState(%d, false) interval = %v, want 1m", level, interval)
		}
	}
}
