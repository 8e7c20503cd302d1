package report

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"pennywise/internal/api"
)

type fakeFetcher struct {
	monthly map[int][]api.ReportItem // keyed by month
	daily   []api.ReportItem
	err     error

	monthCalls []int
}

func (f *fakeFetcher) MonthReport(ctx context.Context, year, month int, typ api.CategoryType, timezone string) ([]api.ReportItem, error) {
	f.monthCalls = append(f.monthCalls, month)
	if f.err != nil {
		return nil, f.err
	}
	return f.monthly[month], nil
}

func (f *fakeFetcher) DayReport(ctx context.Context, year, month, day int, typ api.CategoryType, timezone string) ([]api.ReportItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.daily, nil
}

func item(category string, total int64) api.ReportItem {
	return api.ReportItem{Category: category, Type: "expense", Total: decimal.NewFromInt(total)}
}

func newTestService(f *fakeFetcher) *Service {
	return NewService(f, "UTC", zerolog.New(io.Discard))
}

func TestYearMergesTwelveMonths(t *testing.T) {
	f := &fakeFetcher{monthly: map[int][]api.ReportItem{
		1:  {item("Food", 10), item("Car", 5)},
		2:  {item("Car", 3), item("Home", 8)},
		12: {item("Food", 2)},
	}}
	svc := newTestService(f)

	got, err := svc.Fetch(context.Background(), ModeYear,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), api.Expense, time.UTC)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}

	if len(f.monthCalls) != 12 {
		t.Fatalf("month fetches = %d, want 12", len(f.monthCalls))
	}

	want := []struct {
		category string
		total    int64
	}{
		{"Food", 12}, // 10 (Jan) + 2 (Dec)
		{"Car", 8},   // 5 (Jan) + 3 (Feb)
		{"Home", 8},
	}
	if len(got) != len(want) {
		t.Fatalf("merged items = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Category != w.category {
			t.Fatalf("item %d category = %q, want %q (first-seen order)", i, got[i].Category, w.category)
		}
		if !got[i].Total.Equal(decimal.NewFromInt(w.total)) {
			t.Fatalf("item %d total = %s, want %d", i, got[i].Total, w.total)
		}
	}
}

func TestYearFailsOnAnyMonthError(t *testing.T) {
	f := &fakeFetcher{err: errors.New("boom")}
	svc := newTestService(f)

	_, err := svc.Fetch(context.Background(), ModeYear,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), api.Expense, time.UTC)
	if err == nil {
		t.Fatal("error = nil, want non-nil")
	}
}

func TestDayAndMonthPassThrough(t *testing.T) {
	f := &fakeFetcher{
		daily:   []api.ReportItem{item("Food", 4)},
		monthly: map[int][]api.ReportItem{3: {item("Car", 9)}},
	}
	svc := newTestService(f)
	date := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)

	day, err := svc.Fetch(context.Background(), ModeDay, date, api.Expense, time.UTC)
	if err != nil || len(day) != 1 || day[0].Category != "Food" {
		t.Fatalf("day fetch = %v, %v", day, err)
	}

	month, err := svc.Fetch(context.Background(), ModeMonth, date, api.Expense, time.UTC)
	if err != nil || len(month) != 1 || month[0].Category != "Car" {
		t.Fatalf("month fetch = %v, %v", month, err)
	}
}

func TestPercentages(t *testing.T) {
	items := []api.ReportItem{item("Food", 30), item("Car", 10)}

	got := Percentages(items)
	if len(got) != 2 {
		t.Fatalf("breakdown = %d items, want 2", len(got))
	}
	if !got[0].Percent.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("Food percent = %s, want 75", got[0].Percent)
	}
	if !got[1].Percent.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("Car percent = %s, want 25", got[1].Percent)
	}
}

func TestPercentagesZeroSumIsAllZeros(t *testing.T) {
	items := []api.ReportItem{item("Food", 0), item("Car", 0)}

	got := Percentages(items)
	for _, b := range got {
		if !b.Percent.IsZero() {
			t.Fatalf("%s percent = %s, want exactly 0", b.Category, b.Percent)
		}
	}
}

func TestPercentagesEmptyInput(t *testing.T) {
	if got := Percentages(nil); len(got) != 0 {
		t.Fatalf("breakdown of nil = %v, want empty", got)
	}
}

func TestStepDate(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		date time.Time
		dir  int
		want time.Time
	}{
		{
			name: "day forward",
			mode: ModeDay,
			date: time.Date(2024, 2, 28, 10, 0, 0, 0, time.UTC),
			dir:  1,
			want: time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "month back clamps day",
			mode: ModeMonth,
			date: time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC),
			dir:  -1,
			want: time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "month forward across year",
			mode: ModeMonth,
			date: time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC),
			dir:  1,
			want: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "year back",
			mode: ModeYear,
			date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			dir:  -1,
			want: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := StepDate(tc.mode, tc.date, tc.dir, time.UTC)
			if !got.Equal(tc.want) {
				t.Fatalf("StepDate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGenerationsDropStaleResponses(t *testing.T) {
	svc := newTestService(&fakeFetcher{})
	key := Key(ModeMonth, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), api.Expense, time.UTC)

	first := svc.Begin(key)
	second := svc.Begin(key)

	if svc.Current(key, first) {
		t.Fatal("superseded fetch still current, want stale")
	}
	if !svc.Current(key, second) {
		t.Fatal("latest fetch not current")
	}

	// A different key is tracked independently.
	otherKey := Key(ModeMonth, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), api.Expense, time.UTC)
	other := svc.Begin(otherKey)
	if !svc.Current(otherKey, other) {
		t.Fatal("other key's fetch not current")
	}
	if !svc.Current(key, second) {
		t.Fatal("other key's Begin disturbed this key")
	}
}
