package domain_test

import (
	"testing"

	"evwatch/internal/modules/monitor/domain"
)

func batch() []domain.Session {
	return []domain.Session{
		{SessionID: "s-1", Category: domain.CategoryMultiUser, Status: domain.StatusWarning, Score: 0.75, EnergyKWh: 5},
		{SessionID: "s-2", Category: domain.CategoryFraud, Status: domain.StatusCritical, Score: 0.95, EnergyKWh: 40},
		{SessionID: "s-3", Category: domain.CategoryDoS, Status: domain.StatusCritical, Score: 0.92, EnergyKWh: 1},
	}
}

func TestReplaceAllSelectsFirstCritical(t *testing.T) {
	t.Parallel()
	board := domain.Board{}.ReplaceAll(batch())
	if board.SelectedID != "s-2" {
		t.Fatalf("selected = %q, want first critical s-2", board.SelectedID)
	}
}

func TestReplaceAllClearsSelectionWithoutCritical(t *testing.T) {
	t.Parallel()
	board := domain.Board{SelectedID: "old"}.ReplaceAll([]domain.Session{
		{SessionID: "s-1", Status: domain.StatusNormal},
		{SessionID: "s-2", Status: domain.StatusWarning},
	})
	if board.SelectedID != "" {
		t.Fatalf("selected = %q, want empty", board.SelectedID)
	}
	if _, ok := board.Selected(); ok {
		t.Fatalf("Selected should report nothing for a cleared selection")
	}
}

func TestReplaceAllCopiesInput(t *testing.T) {
	t.Parallel()
	sessions := batch()
	board := domain.Board{}.ReplaceAll(sessions)
	sessions[0].SessionID = "mutated"
	if board.Sessions[0].SessionID != "s-1" {
		t.Fatalf("board aliases the caller's slice")
	}
}

func TestSelectUnknownID(t *testing.T) {
	t.Parallel()
	board := domain.Board{}.ReplaceAll(batch()).Select("missing")
	if _, ok := board.Selected(); ok {
		t.Fatalf("unknown id should resolve to no selection")
	}
}

func TestFlagIsIdempotent(t *testing.T) {
	t.Parallel()
	board := domain.Board{}.ReplaceAll(batch())
	once := board.Flag("s-1")
	twice := once.Flag("s-1")

	s, ok := once.Select("s-1").Selected()
	if !ok || s.Status != domain.StatusCritical {
		t.Fatalf("flagged session status = %v, want critical", s.Status)
	}
	if s.Category != domain.CategoryMultiUser {
		t.Fatalf("flag must not touch the category, got %v", s.Category)
	}
	again, _ := twice.Select("s-1").Selected()
	if again != s {
		t.Fatalf("reflagging changed the session: %+v vs %+v", again, s)
	}
}

func TestAcknowledgeIsIdempotent(t *testing.T) {
	t.Parallel()
	board := domain.Board{}.ReplaceAll(batch())
	once := board.Acknowledge("s-2")
	twice := once.Acknowledge("s-2")

	s, ok := once.Select("s-2").Selected()
	if !ok || s.Status != domain.StatusNormal {
		t.Fatalf("acknowledged status = %v, want normal", s.Status)
	}
	if s.Category != domain.CategoryNone {
		t.Fatalf("acknowledge should clear the category, got %v", s.Category)
	}
	again, _ := twice.Select("s-2").Selected()
	if again != s {
		t.Fatalf("re-acknowledging changed the session")
	}
}

func TestReducersDoNotMutatePreviousBoard(t *testing.T) {
	t.Parallel()
	board := domain.Board{}.ReplaceAll(batch())
	_ = board.Flag("s-1")
	_ = board.Acknowledge("s-2")

	if board.Sessions[0].Status != domain.StatusWarning {
		t.Fatalf("flag mutated the previous board")
	}
	if board.Sessions[1].Status != domain.StatusCritical {
		t.Fatalf("acknowledge mutated the previous board")
	}
}

func TestFlagUnknownIDIsNoOp(t *testing.T) {
	t.Parallel()
	board := domain.Board{}.ReplaceAll(batch())
	after := board.Flag("missing")
	for i := range board.Sessions {
		if after.Sessions[i] != board.Sessions[i] {
			t.Fatalf("flagging an unknown id changed session %d", i)
		}
	}
}

func TestStatusCountsAndActiveCount(t *testing.T) {
	t.Parallel()
	board := domain.Board{}.ReplaceAll(batch())
	counts := board.StatusCounts()
	if counts.Critical != 2 || counts.Warning != 1 || counts.Normal != 0 {
		t.Fatalf("counts = %+v", counts)
	}
	if got := board.ActiveCount(); got != 1 {
		t.Fatalf("active = %d, want 1", got)
	}

	board = board.Acknowledge("s-2")
	if got := board.ActiveCount(); got != 2 {
		t.Fatalf("active after acknowledge = %d, want 2", got)
	}
}

func TestByCategory(t *testing.T) {
	t.Parallel()
	board := domain.Board{}.ReplaceAll(batch())
	fraud := board.ByCategory(domain.CategoryFraud)
	if len(fraud) != 1 || fraud[0].SessionID != "s-2" {
		t.Fatalf("fraud slice = %+v", fraud)
	}
	if got := board.ByCategory(domain.CategoryNone); len(got) != 0 {
		t.Fatalf("clean slice should be empty, got %+v", got)
	}
}

// Walks the operator flow end to end: load a batch, work the auto-selected
// alert, escalate a warning, and confirm the stats row follows every step.
func TestOperatorFlow(t *testing.T) {
	t.Parallel()
	board := domain.Board{}.ReplaceAll(batch())
	if board.SelectedID != "s-2" {
		t.Fatalf("load should auto-select s-2, got %q", board.SelectedID)
	}

	board = board.Acknowledge("s-2")
	counts := board.StatusCounts()
	if counts.Critical != 1 {
		t.Fatalf("critical after acknowledge = %d, want 1", counts.Critical)
	}
	if len(board.Anomalous()) != 2 {
		t.Fatalf("anomalous after acknowledge = %d, want 2", len(board.Anomalous()))
	}

	board = board.Select("s-1").Flag("s-1")
	s, _ := board.Selected()
	if s.Status != domain.StatusCritical || s.Category != domain.CategoryMultiUser {
		t.Fatalf("flagged warning session = %+v", s)
	}

	stats := board.Aggregate()
	if stats.DetectionRate <= 0 || stats.DetectionRate > 1 {
		t.Fatalf("detection rate out of range: %v", stats.DetectionRate)
	}

	board = board.ReplaceAll(nil)
	if len(board.Sessions) != 0 || board.SelectedID != "" {
		t.Fatalf("empty reload should clear the board, got %+v", board)
	}
}
