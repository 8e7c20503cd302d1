// Package report fetches and aggregates time-bucketed spending reports.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"pennywise/internal/api"
)

// Mode selects the report bucket size.
type Mode string

const (
	ModeDay   Mode = "day"
	ModeMonth Mode = "month"
	ModeYear  Mode = "year"
)

// Fetcher is the slice of the API surface reports need.
type Fetcher interface {
	MonthReport(ctx context.Context, year, month int, typ api.CategoryType, timezone string) ([]api.ReportItem, error)
	DayReport(ctx context.Context, year, month, day int, typ api.CategoryType, timezone string) ([]api.ReportItem, error)
}

// Service fetches reports and guards against superseded responses.
type Service struct {
	client   Fetcher
	timezone string
	log      zerolog.Logger

	gens generations
}

// NewService builds a report service. timezone is passed through to the
// remote bucketing queries (the IANA name of the display zone).
func NewService(client Fetcher, timezone string, log zerolog.Logger) *Service {
	return &Service{client: client, timezone: timezone, log: log}
}

// Fetch loads the report for mode/date/typ. Year mode fetches the twelve
// month reports and merges them; day and month pass through.
func (s *Service) Fetch(ctx context.Context, mode Mode, date time.Time, typ api.CategoryType, loc *time.Location) ([]api.ReportItem, error) {
	local := date.In(loc)
	switch mode {
	case ModeDay:
		return s.client.DayReport(ctx, local.Year(), int(local.Month()), local.Day(), typ, s.timezone)
	case ModeMonth:
		return s.client.MonthReport(ctx, local.Year(), int(local.Month()), typ, s.timezone)
	case ModeYear:
		return s.year(ctx, local.Year(), typ)
	default:
		return nil, fmt.Errorf("unknown report mode %q", mode)
	}
}

// year merges twelve month reports. Totals add up per category; the merged
// order is first-seen-category order scanning months 1 through 12, not
// sorted by total.
func (s *Service) year(ctx context.Context, year int, typ api.CategoryType) ([]api.ReportItem, error) {
	merged := make([]api.ReportItem, 0, 16)
	index := make(map[string]int, 16)

	for month := 1; month <= 12; month++ {
		items, err := s.client.MonthReport(ctx, year, month, typ, s.timezone)
		if err != nil {
			return nil, fmt.Errorf("month %d of year report: %w", month, err)
		}
		for _, item := range items {
			if at, ok := index[item.Category]; ok {
				merged[at].Total = merged[at].Total.Add(item.Total)
				continue
			}
			index[item.Category] = len(merged)
			merged = append(merged, item)
		}
	}

	return merged, nil
}

// Breakdown is a report item with its share of the report's grand total.
type Breakdown struct {
	api.ReportItem
	Percent decimal.Decimal
}

// Percentages computes each item's share of the summed totals. When the sum
// is zero every share is exactly zero; there is no division.
func Percentages(items []api.ReportItem) []Breakdown {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Total)
	}

	out := make([]Breakdown, 0, len(items))
	hundred := decimal.NewFromInt(100)
	for _, item := range items {
		share := decimal.Zero
		if !sum.IsZero() {
			share = item.Total.Div(sum).Mul(hundred)
		}
		out = append(out, Breakdown{ReportItem: item, Percent: share})
	}
	return out
}

// StepDate moves a report date one unit in dir (+1/-1) for the given mode.
// Month steps clamp the day so stepping from Jan 31 lands in February, not
// March.
func StepDate(mode Mode, date time.Time, dir int, loc *time.Location) time.Time {
	local := date.In(loc)
	switch mode {
	case ModeDay:
		return local.AddDate(0, 0, dir)
	case ModeMonth:
		year, month := local.Year(), int(local.Month())+dir
		// day 0 of the following month = last day of the target month
		lastDay := time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, loc).Day()
		day := local.Day()
		if day > lastDay {
			day = lastDay
		}
		return time.Date(year, time.Month(month), day,
			local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), loc)
	case ModeYear:
		return local.AddDate(dir, 0, 0)
	default:
		return local
	}
}

// Key identifies one report slot for staleness tracking.
func Key(mode Mode, date time.Time, typ api.CategoryType, loc *time.Location) string {
	local := date.In(loc)
	switch mode {
	case ModeDay:
		return fmt.Sprintf("day/%s/%s", local.Format("2006-01-02"), typ)
	case ModeMonth:
		return fmt.Sprintf("month/%s/%s", local.Format("2006-01"), typ)
	default:
		return fmt.Sprintf("year/%s/%s", local.Format("2006"), typ)
	}
}

// Begin registers a new in-flight fetch for key and returns its sequence
// number. A later Begin for the same key supersedes it.
func (s *Service) Begin(key string) uint64 {
	return s.gens.begin(key)
}

// Current reports whether seq is still the latest issued fetch for key.
// Stale responses must be dropped, not applied; whichever fetch was issued
// last wins no matter the arrival order.
func (s *Service) Current(key string, seq uint64) bool {
	return s.gens.current(key, seq)
}
