package worker

import (
	"testing"
	"time"
)

func TestNextMidnight(t *testing.T) {
	now := time.Date(2024, 6, 5, 14, 30, 45, 0, time.UTC)
	want := time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)
	if got := nextMidnight(now); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNextMidnight_MonthBoundary(t *testing.T) {
	now := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if got := nextMidnight(now); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNextMidnight_JustAfterMidnight(t *testing.T) {
	now := time.Date(2024, 6, 5, 0, 0, 1, 0, time.UTC)
	want := time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)
	if got := nextMidnight(now); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
