package game

import "testing"

func TestMaxPoints(t *testing.T) {
	if got := MaxPoints(10, 0, 1); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := MaxPoints(10, 3, 1); got != 160 {
		t.Fatalf("expected 160, got %d", got)
	}
	// bonus multiplies regular questions only
	if got := MaxPoints(10, 3, 2); got != 260 {
		t.Fatalf("expected 260, got %d", got)
	}
	if got := MaxPoints(5, 0, 0); got != 50 {
		t.Fatalf("bonus below 1 should act as 1, got %d", got)
	}
}

func TestAnswerDelta(t *testing.T) {
	if got := AnswerDelta(true, false, 1); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := AnswerDelta(true, false, 3); got != 30 {
		t.Fatalf("bonus must scale regular answers, got %d", got)
	}
	// AI questions pay flat, bonus or not
	if got := AnswerDelta(true, true, 3); got != 20 {
		t.Fatalf("expected flat 20 for AI question, got %d", got)
	}
	if got := AnswerDelta(false, false, 3); got != -5 {
		t.Fatalf("wrong answers lose 5 regardless of bonus, got %d", got)
	}
}

func TestApplyDeltaFloorsAtZero(t *testing.T) {
	if got := ApplyDelta(3, -5); got != 0 {
		t.Fatalf("score must floor at zero, got %d", got)
	}
	if got := ApplyDelta(0, -5); got != 0 {
		t.Fatalf("zero score must stay zero, got %d", got)
	}
	if got := ApplyDelta(12, -5); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := ApplyDelta(7, 10); got != 17 {
		t.Fatalf("expected 17, got %d", got)
	}
}

func TestTargetLetters(t *testing.T) {
	// 100 max points at 10% -> one letter per 10 points
	if got := TargetLetters(35, 100, 10); got != 3 {
		t.Fatalf("expected 3 letters for score 35, got %d", got)
	}
	if got := TargetLetters(9, 100, 10); got != 0 {
		t.Fatalf("expected 0 letters for score 9, got %d", got)
	}
	if got := TargetLetters(1000, 100, 10); got != 100 {
		t.Fatalf("expected 100 before clamping to password length, got %d", got)
	}
}

func TestTargetLettersGuards(t *testing.T) {
	if got := TargetLetters(50, 0, 10); got != 0 {
		t.Fatalf("zero max points must disable reveal, got %d", got)
	}
	if got := TargetLetters(50, 100, 0); got != 0 {
		t.Fatalf("zero percent must disable reveal, got %d", got)
	}
	if got := TargetLetters(0, 100, 10); got != 0 {
		t.Fatalf("zero score reveals nothing, got %d", got)
	}
	if got := TargetLetters(-5, 100, 10); got != 0 {
		t.Fatalf("negative score reveals nothing, got %d", got)
	}
}

func TestDisplayPassword(t *testing.T) {
	// positions index non-space characters; spaces render as a double space
	got := DisplayPassword("AB CD", map[int]bool{0: true, 3: true})
	if got != "A_  _D" {
		t.Fatalf("expected %q, got %q", "A_  _D", got)
	}
}

func TestDisplayPasswordAllHidden(t *testing.T) {
	got := DisplayPassword("TAJNE", nil)
	if got != "_____" {
		t.Fatalf("expected %q, got %q", "_____", got)
	}
}

func TestDisplayPasswordAllRevealed(t *testing.T) {
	revealed := map[int]bool{}
	for i := 0; i < 10; i++ {
		revealed[i] = true
	}
	got := DisplayPassword("GRA WYGRANA", revealed)
	if got != "GRA  WYGRANA" {
		t.Fatalf("expected %q, got %q", "GRA  WYGRANA", got)
	}
}
