package services

import (
	"errors"
	"testing"

	"github.com/michalkopec1981/saper/internal/store"
)

type flagErrorStates struct {
	*store.MemoryStateRepository
}

func (flagErrorStates) Flag(eventID uint, name string) (bool, error) {
	return false, errors.New("storage down")
}

func TestActiveMinigamePropagatesStorageErrors(t *testing.T) {
	svc := NewPlayService(nil, flagErrorStates{store.NewMemoryStateRepository()}, nil, nil, nil)

	if _, err := svc.activeMinigameFor(1, "bialy1"); err == nil {
		t.Fatal("a flag read failure must surface, not fall through to a question")
	}
}

func TestActiveMinigamePicksFirstToggled(t *testing.T) {
	states := store.NewMemoryStateRepository()
	if err := states.SetFlag(1, "minigame_snake", true); err != nil {
		t.Fatal(err)
	}
	svc := NewPlayService(nil, states, nil, nil, nil)

	got, err := svc.activeMinigameFor(1, "bialy2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "snake" {
		t.Fatalf("expected snake, got %q", got)
	}
}

func TestActiveMinigameOnlyFirstThreeCodes(t *testing.T) {
	states := store.NewMemoryStateRepository()
	if err := states.SetFlag(1, "minigame_tetris", true); err != nil {
		t.Fatal(err)
	}
	svc := NewPlayService(nil, states, nil, nil, nil)

	got, err := svc.activeMinigameFor(1, "bialy4")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Fatalf("codes past the third must always serve questions, got %q", got)
	}
}
