package ledger

import "time"

// History can reach back at most this many months, counting the current one.
const historyMonths = 12

// PrevHistoryMonth steps the history anchor one month back. The step is
// refused (ok=false, anchor unchanged) once the target would leave the
// trailing window of historyMonths months.
func PrevHistoryMonth(anchor, now time.Time, loc *time.Location) (time.Time, bool) {
	target := monthIndex(anchor, loc) - 1
	if target <= monthIndex(now, loc)-historyMonths {
		return anchor, false
	}
	return monthStart(target, loc), true
}

// NextHistoryMonth steps the history anchor one month forward, refusing any
// month after the current one.
func NextHistoryMonth(anchor, now time.Time, loc *time.Location) (time.Time, bool) {
	target := monthIndex(anchor, loc) + 1
	if target > monthIndex(now, loc) {
		return anchor, false
	}
	return monthStart(target, loc), true
}

// HistoryMonthOptions returns the selectable history months, newest first:
// the current month and the eleven before it.
func HistoryMonthOptions(now time.Time, loc *time.Location) []time.Time {
	current := monthIndex(now, loc)
	out := make([]time.Time, 0, historyMonths)
	for i := 0; i < historyMonths; i++ {
		out = append(out, monthStart(current-i, loc))
	}
	return out
}

// SameMonth reports whether a and b fall in the same calendar month in loc.
func SameMonth(a, b time.Time, loc *time.Location) bool {
	return monthIndex(a, loc) == monthIndex(b, loc)
}

// monthIndex flattens year+month so month math cannot trip over day-of-month
// normalization (stepping back from the 31st, and so on).
func monthIndex(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Year()*12 + int(local.Month()) - 1
}

func monthStart(index int, loc *time.Location) time.Time {
	year := index / 12
	month := time.Month(index%12 + 1)
	return time.Date(year, month, 1, 0, 0, 0, 0, loc)
}
