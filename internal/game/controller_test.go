package game

import (
	"testing"
	"time"
)

func TestStartState(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := startState(now, 10*time.Minute)

	if !st.Active || !st.Running {
		t.Fatal("a started game must be active and running")
	}
	if !st.StartTime.Equal(now) || !st.EndTime.Equal(now.Add(10*time.Minute)) {
		t.Fatalf("unexpected clock bounds: start=%v end=%v", st.StartTime, st.EndTime)
	}
	if st.Speed != 1 || st.Bonus != 1 {
		t.Fatalf("multipliers must reset to 1, got speed=%d bonus=%d", st.Speed, st.Bonus)
	}
	if st.PausedAccum != 0 || !st.PauseStartedAt.IsZero() {
		t.Fatal("a started game carries no pause history")
	}
	if st.DurationSec != 600 {
		t.Fatalf("expected 600s duration, got %v", st.DurationSec)
	}
}

func TestTogglePauseFreezesCountdown(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := startState(start, 10*time.Minute)

	pauseAt := start.Add(30 * time.Second)
	st, paused := togglePause(st, pauseAt)
	if !paused {
		t.Fatal("first toggle of a running game must pause")
	}
	if st.Running {
		t.Fatal("paused game must not be running")
	}
	if st.FrozenTimeLeft != 570 {
		t.Fatalf("expected 570s frozen, got %v", st.FrozenTimeLeft)
	}
	if !st.PauseStartedAt.Equal(pauseAt) {
		t.Fatalf("expected pause start %v, got %v", pauseAt, st.PauseStartedAt)
	}
}

func TestTogglePauseResumesFromFrozen(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := startState(start, 10*time.Minute)

	st, _ = togglePause(st, start.Add(30*time.Second))

	resumeAt := start.Add(90 * time.Second) // 60s paused
	st, paused := togglePause(st, resumeAt)
	if paused {
		t.Fatal("second toggle must resume")
	}
	if !st.Running {
		t.Fatal("resumed game must be running")
	}
	if !st.EndTime.Equal(resumeAt.Add(570 * time.Second)) {
		t.Fatalf("countdown must continue from the frozen value, got end=%v", st.EndTime)
	}
	if st.PausedAccum != 60 {
		t.Fatalf("expected 60s accumulated pause, got %v", st.PausedAccum)
	}
	if !st.PauseStartedAt.IsZero() {
		t.Fatal("resume must close the open pause")
	}
}

func TestPauseResumeKeepsElapsedNet(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := startState(start, 10*time.Minute)

	pauseAt := start.Add(30 * time.Second)
	before := ReadClock(st, pauseAt)

	st, _ = togglePause(st, pauseAt)
	during := ReadClock(st, pauseAt.Add(45*time.Second))

	resumeAt := pauseAt.Add(120 * time.Second)
	st, _ = togglePause(st, resumeAt)
	after := ReadClock(st, resumeAt)

	for name, reading := range map[string]ClockReading{
		"before pause": before, "while paused": during, "after resume": after,
	} {
		if reading.ElapsedNet != 30 {
			t.Fatalf("net elapsed must stay 30s %s, got %v", name, reading.ElapsedNet)
		}
	}
	if during.TimeLeft != 570 || after.TimeLeft != 570 {
		t.Fatalf("time left must stay frozen across the pause, got %v / %v", during.TimeLeft, after.TimeLeft)
	}
}

func TestTogglePauseSurvivesRepeatedCycles(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := startState(start, 10*time.Minute)

	now := start
	for i := 0; i < 3; i++ {
		now = now.Add(10 * time.Second)
		st, _ = togglePause(st, now) // pause after 10 running seconds
		now = now.Add(5 * time.Second)
		st, _ = togglePause(st, now) // resume after 5 paused seconds
	}

	reading := ReadClock(st, now)
	if reading.ElapsedNet != 30 {
		t.Fatalf("expected 30s net after three 10s bursts, got %v", reading.ElapsedNet)
	}
	if st.PausedAccum != 15 {
		t.Fatalf("expected 15s total paused, got %v", st.PausedAccum)
	}
	if reading.TimeLeft != 570 {
		t.Fatalf("expected 570s left, got %v", reading.TimeLeft)
	}
}

func TestToggleMultiplier(t *testing.T) {
	if got := toggleMultiplier(1, 2); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	// re-sending the active value resets to 1
	if got := toggleMultiplier(2, 2); got != 1 {
		t.Fatalf("expected reset to 1, got %d", got)
	}
	if got := toggleMultiplier(2, 3); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := toggleMultiplier(1, 1); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}
