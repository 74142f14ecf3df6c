package game

import (
	"testing"
	"time"

	"github.com/michalkopec1981/saper/internal/store"
)

func TestReadClockInactive(t *testing.T) {
	now := time.Now()
	reading := ReadClock(store.Defaults(), now)

	if reading.Active || reading.Running {
		t.Fatal("fresh state should be neither active nor running")
	}
	if reading.TimeLeft != 0 || reading.ElapsedNet != 0 || reading.ElapsedGross != 0 {
		t.Fatalf("fresh state should read all zeros, got %+v", reading)
	}
}

func TestReadClockRunning(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := store.GameState{
		Active:      true,
		Running:     true,
		StartTime:   start,
		EndTime:     start.Add(600 * time.Second),
		Speed:       1,
		Bonus:       1,
		DurationSec: 600,
	}

	reading := ReadClock(st, start.Add(30*time.Second))
	if !reading.Active || !reading.Running {
		t.Fatal("expected active running reading")
	}
	if reading.TimeLeft != 570 {
		t.Fatalf("expected 570s left, got %v", reading.TimeLeft)
	}
	if reading.ElapsedNet != 30 || reading.ElapsedGross != 30 {
		t.Fatalf("expected 30s elapsed, got net=%v gross=%v", reading.ElapsedNet, reading.ElapsedGross)
	}
}

func TestReadClockPausedFreezesTimeLeft(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pausedAt := start.Add(100 * time.Second)
	st := store.GameState{
		Active:         true,
		Running:        false,
		StartTime:      start,
		EndTime:        start.Add(600 * time.Second), // stale while paused
		PauseStartedAt: pausedAt,
		FrozenTimeLeft: 500,
		Speed:          1,
		Bonus:          1,
		DurationSec:    600,
	}

	// Read twice, a minute apart: the frozen value must not move.
	for _, now := range []time.Time{pausedAt.Add(5 * time.Second), pausedAt.Add(65 * time.Second)} {
		reading := ReadClock(st, now)
		if reading.Running {
			t.Fatal("paused state must not read as running")
		}
		if reading.TimeLeft != 500 {
			t.Fatalf("paused time left should stay 500, got %v at %v", reading.TimeLeft, now)
		}
	}

	// Net elapsed excludes the open pause span, gross does not.
	reading := ReadClock(st, pausedAt.Add(60*time.Second))
	if reading.ElapsedGross != 160 {
		t.Fatalf("expected gross 160, got %v", reading.ElapsedGross)
	}
	if reading.ElapsedNet != 100 {
		t.Fatalf("expected net 100, got %v", reading.ElapsedNet)
	}
}

func TestReadClockCountsClosedPauses(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := store.GameState{
		Active:      true,
		Running:     true,
		StartTime:   start,
		EndTime:     start.Add(530 * time.Second),
		PausedAccum: 70,
		Speed:       1,
		Bonus:       1,
		DurationSec: 600,
	}

	reading := ReadClock(st, start.Add(200*time.Second))
	if reading.ElapsedGross != 200 {
		t.Fatalf("expected gross 200, got %v", reading.ElapsedGross)
	}
	if reading.ElapsedNet != 130 {
		t.Fatalf("expected net 130, got %v", reading.ElapsedNet)
	}
}

func TestReadClockNeverNegative(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := store.GameState{
		Active:      true,
		Running:     true,
		StartTime:   start,
		EndTime:     start.Add(10 * time.Second),
		Speed:       1,
		Bonus:       1,
		DurationSec: 10,
	}

	reading := ReadClock(st, start.Add(time.Hour))
	if reading.TimeLeft != 0 {
		t.Fatalf("expired countdown must read zero, got %v", reading.TimeLeft)
	}
}
