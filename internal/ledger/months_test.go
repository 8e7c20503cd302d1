package ledger

import (
	"testing"
	"time"
)

func TestPrevHistoryMonthStopsAtTrailingBoundary(t *testing.T) {
	now := time.Date(2024, 7, 20, 12, 0, 0, 0, time.UTC)
	anchor := now

	steps := 0
	for {
		next, ok := PrevHistoryMonth(anchor, now, time.UTC)
		if !ok {
			break
		}
		anchor = next
		steps++
		if steps > 24 {
			t.Fatal("no boundary hit after 24 steps")
		}
	}

	if steps != 11 {
		t.Fatalf("accepted steps = %d, want 11 (12 reachable months incl. current)", steps)
	}
	if anchor.Year() != 2023 || anchor.Month() != time.August {
		t.Fatalf("boundary anchor = %v, want August 2023", anchor)
	}

	// Further prev calls keep refusing and leave the anchor alone.
	same, ok := PrevHistoryMonth(anchor, now, time.UTC)
	if ok {
		t.Fatal("step past the boundary accepted")
	}
	if !same.Equal(anchor) {
		t.Fatalf("refused step moved anchor: %v -> %v", anchor, same)
	}
}

func TestPrevHistoryMonthCrossesYear(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	prev, ok := PrevHistoryMonth(now, now, time.UTC)
	if !ok {
		t.Fatal("step refused, want accepted")
	}
	if prev.Year() != 2023 || prev.Month() != time.December {
		t.Fatalf("prev = %v, want December 2023", prev)
	}
}

func TestNextHistoryMonthRefusedAtCurrentMonth(t *testing.T) {
	now := time.Date(2024, 7, 20, 12, 0, 0, 0, time.UTC)

	if _, ok := NextHistoryMonth(now, now, time.UTC); ok {
		t.Fatal("next from current month accepted, want refused")
	}

	anchor := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	next, ok := NextHistoryMonth(anchor, now, time.UTC)
	if !ok {
		t.Fatal("next from prior month refused, want accepted")
	}
	if !SameMonth(next, now, time.UTC) {
		t.Fatalf("next = %v, want current month", next)
	}
}

func TestPrevFromMonthEndDoesNotSkipMonths(t *testing.T) {
	// Stepping back from March 31 must land in February, not skip it.
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	prev, ok := PrevHistoryMonth(now, now, time.UTC)
	if !ok {
		t.Fatal("step refused, want accepted")
	}
	if prev.Month() != time.February || prev.Year() != 2024 {
		t.Fatalf("prev = %v, want February 2024", prev)
	}
}

func TestHistoryMonthOptions(t *testing.T) {
	now := time.Date(2024, 7, 20, 12, 0, 0, 0, time.UTC)
	options := HistoryMonthOptions(now, time.UTC)

	if len(options) != 12 {
		t.Fatalf("options = %d, want 12", len(options))
	}
	if !SameMonth(options[0], now, time.UTC) {
		t.Fatalf("options[0] = %v, want current month", options[0])
	}
	last := options[len(options)-1]
	if last.Year() != 2023 || last.Month() != time.August {
		t.Fatalf("options[11] = %v, want August 2023", last)
	}
	for i := 1; i < len(options); i++ {
		if !options[i].Before(options[i-1]) {
			t.Fatalf("options not newest-first at %d", i)
		}
	}
}
