package domain_test

import (
	"testing"

	"evwatch/internal/modules/logs/domain"
)

func entries() []domain.LogEntry {
	return []domain.LogEntry{
		{ID: "log_1756500000000", Timestamp: "2026-08-29 21:00:00", SessionCount: 3},
		{ID: "log_1756586400000", Timestamp: "2026-08-30 21:00:00", SessionCount: 5},
		{ID: "log_1756590000000", Timestamp: "2026-08-30 22:00:00", SessionCount: 1},
	}
}

func TestFilterBlankQueryReturnsAll(t *testing.T) {
	t.Parallel()
	got := domain.Filter(entries(), "   ")
	if len(got) != 3 {
		t.Fatalf("blank query returned %d entries, want 3", len(got))
	}
}

func TestFilterMatchesIDCaseInsensitive(t *testing.T) {
	t.Parallel()
	got := domain.Filter(entries(), "LOG_17565864")
	if len(got) != 1 || got[0].ID != "log_1756586400000" {
		t.Fatalf("got %+v", got)
	}
}

func TestFilterMatchesTimestamp(t *testing.T) {
	t.Parallel()
	got := domain.Filter(entries(), "08-30")
	if len(got) != 2 {
		t.Fatalf("timestamp query returned %d entries, want 2", len(got))
	}
}

func TestFilterMissReturnsEmptyWithoutMutating(t *testing.T) {
	t.Parallel()
	in := entries()
	got := domain.Filter(in, "no-such-batch")
	if len(got) != 0 {
		t.Fatalf("miss returned %d entries", len(got))
	}
	if len(in) != 3 || in[0].ID != "log_1756500000000" {
		t.Fatalf("input slice was modified: %+v", in)
	}
}

func TestFilterDoesNotAliasInput(t *testing.T) {
	t.Parallel()
	in := entries()
	got := domain.Filter(in, "")
	got[0].ID = "mutated"
	if in[0].ID != "log_1756500000000" {
		t.Fatalf("filter result aliases the input slice")
	}
}
