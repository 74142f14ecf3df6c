package store

import (
	"testing"
	"time"
)

func TestStateRoundTrip(t *testing.T) {
	repo := NewMemoryStateRepository()

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	want := GameState{
		Active:         true,
		Running:        false,
		StartTime:      start,
		EndTime:        start.Add(600 * time.Second),
		PausedAccum:    42.5,
		PauseStartedAt: start.Add(100 * time.Second),
		FrozenTimeLeft: 457.5,
		Speed:          3,
		Bonus:          2,
		DurationSec:    600,
	}
	if err := repo.Save(1, want); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Load(1)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestLoadUnknownEventGivesDefaults(t *testing.T) {
	repo := NewMemoryStateRepository()

	got, err := repo.Load(99)
	if err != nil {
		t.Fatal(err)
	}
	if got != Defaults() {
		t.Fatalf("expected defaults for unknown event, got %+v", got)
	}
	if got.Speed != 1 || got.Bonus != 1 {
		t.Fatalf("multipliers must default to 1, got speed=%d bonus=%d", got.Speed, got.Bonus)
	}
}

func TestDecodeStateTolerantOfGarbage(t *testing.T) {
	got := decodeState(map[string]string{
		keyActive:         "maybe",
		keyRunning:        "",
		keyStartTime:      "not-a-timestamp",
		keyPausedAccum:    "NaN-ish",
		keyFrozenTimeLeft: "",
		keySpeed:          "0",
		keyBonus:          "-3",
		keyDuration:       "abc",
	})

	if got.Active || got.Running {
		t.Fatal("unparseable booleans must read false")
	}
	if !got.StartTime.IsZero() {
		t.Fatal("unparseable time must read zero")
	}
	if got.PausedAccum != 0 || got.FrozenTimeLeft != 0 || got.DurationSec != 0 {
		t.Fatalf("unparseable floats must read zero, got %+v", got)
	}
	if got.Speed != 1 || got.Bonus != 1 {
		t.Fatalf("multipliers below 1 must clamp to 1, got speed=%d bonus=%d", got.Speed, got.Bonus)
	}
}

func TestSetEndTimeOnlyTouchesEndTime(t *testing.T) {
	repo := NewMemoryStateRepository()

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := GameState{
		Active:      true,
		Running:     true,
		StartTime:   start,
		EndTime:     start.Add(600 * time.Second),
		Speed:       2,
		Bonus:       1,
		DurationSec: 600,
	}
	if err := repo.Save(4, st); err != nil {
		t.Fatal(err)
	}

	newEnd := start.Add(599 * time.Second)
	if err := repo.SetEndTime(4, newEnd); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Load(4)
	if err != nil {
		t.Fatal(err)
	}
	if !got.EndTime.Equal(newEnd) {
		t.Fatalf("expected end time %v, got %v", newEnd, got.EndTime)
	}
	st.EndTime = newEnd
	if got != st {
		t.Fatalf("only the end time should change:\nwant %+v\ngot  %+v", st, got)
	}
}

func TestActiveEventIDs(t *testing.T) {
	repo := NewMemoryStateRepository()

	if err := repo.Save(1, GameState{Active: true, Speed: 1, Bonus: 1}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(2, GameState{Active: false, Speed: 1, Bonus: 1}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(3, GameState{Active: true, Speed: 1, Bonus: 1}); err != nil {
		t.Fatal(err)
	}

	ids, err := repo.ActiveEventIDs()
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	if len(ids) != 2 || !seen[1] || !seen[3] {
		t.Fatalf("expected active events 1 and 3, got %v", ids)
	}
}

func TestClearRemovesState(t *testing.T) {
	repo := NewMemoryStateRepository()

	if err := repo.Save(8, GameState{Active: true, Speed: 2, Bonus: 2}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Clear(8); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Load(8)
	if err != nil {
		t.Fatal(err)
	}
	if got != Defaults() {
		t.Fatalf("cleared event must read as defaults, got %+v", got)
	}
}

func TestFlags(t *testing.T) {
	repo := NewMemoryStateRepository()

	on, err := repo.Flag(1, "minigame_tetris")
	if err != nil {
		t.Fatal(err)
	}
	if on {
		t.Fatal("unset flag must read false")
	}

	if err := repo.SetFlag(1, "minigame_tetris", true); err != nil {
		t.Fatal(err)
	}
	on, err = repo.Flag(1, "minigame_tetris")
	if err != nil {
		t.Fatal(err)
	}
	if !on {
		t.Fatal("flag should be on after SetFlag")
	}

	if err := repo.SetFlag(1, "minigame_tetris", false); err != nil {
		t.Fatal(err)
	}
	on, err = repo.Flag(1, "minigame_tetris")
	if err != nil {
		t.Fatal(err)
	}
	if on {
		t.Fatal("flag should be off again")
	}
}
