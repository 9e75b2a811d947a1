package progress

import (
	"testing"
	"time"
)

func TestRefillDeadline(t *testing.T) {
	statsAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	deadline := RefillDeadline(statsAt, 90_000)
	want := statsAt.Add(90 * time.Second)
	if !deadline.Equal(want) {
		t.Errorf("deadline = %v, want %v", deadline, want)
	}
}

func TestEnergyRemainingFloorsAtZero(t *testing.T) {
	deadline := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if got := EnergyRemaining(deadline, deadline.Add(-time.Minute)); got != time.Minute {
		t.Errorf("remaining before deadline = %v, want 1m", got)
	}
	if got := EnergyRemaining(deadline, deadline.Add(time.Minute)); got != 0 {
		t.Errorf("remaining after deadline = %v, want 0", got)
	}
}

func TestCountdownActive(t *testing.T) {
	tests := []struct {
		energy, max int
		remaining   time.Duration
		want        bool
	}{
		{3, 5, time.Minute, true},
		{5, 5, time.Minute, false}, // full hearts
		{3, 5, 0, false},           // deadline elapsed
		{0, 5, time.Second, true},
	}
	for _, tt := range tests {
		got := CountdownActive(tt.energy, tt.max, tt.remaining)
		if got != tt.want {
			t.Errorf("CountdownActive(%d, %d, %v) = %v, want %v", tt.energy, tt.max, tt.remaining, got, tt.want)
		}
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{3661 * time.Second, "1h 01m 01s"},
		{60 * time.Second, "01m 00s"},
		{59 * time.Second, "00m 59s"},
		{0, "00m 00s"},
		{-5 * time.Second, "00m 00s"},
		{2*time.Hour + 30*time.Minute, "2h 30m 00s"},
	}
	for _, tt := range tests {
		got := FormatCountdown(tt.d)
		if got != tt.want {
			t.Errorf("FormatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
