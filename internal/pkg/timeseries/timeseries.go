// Package timeseries buckets payment records into fixed-size labeled
// series for charting. Aggregation is a pure transform: the same inputs
// always produce the same labels and totals.
package timeseries

import "time"

// Granularity selects the charting bucket size.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// Valid reports whether g is a known granularity.
func (g Granularity) Valid() bool {
	switch g {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// SeriesLen returns the fixed series length for g: 7 (daily),
// 5 (weekly) or 12 (monthly/yearly).
func (g Granularity) SeriesLen() int {
	switch g {
	case Daily:
		return 7
	case Weekly:
		return 5
	default:
		return 12
	}
}

// Record is one payment observation to be bucketed.
type Record struct {
	Date   time.Time
	Amount float64
}

// Series is a labeled chart series. Labels and Totals always have the
// same fixed length for a given granularity; empty buckets hold 0.
type Series struct {
	Labels []string  `json:"labels"`
	Totals []float64 `json:"totals"`
}

var dayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var weekLabels = []string{"Week 1", "Week 2", "Week 3", "Week 4", "Week 5"}

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Aggregate buckets records into the series for the period containing
// referenceNow. Records outside the period window are dropped, never
// attributed to another bucket.
func Aggregate(records []Record, granularity Granularity, referenceNow time.Time) Series {
	switch granularity {
	case Daily:
		return aggregateDaily(records, referenceNow)
	case Weekly:
		return aggregateWeekly(records, referenceNow)
	default:
		return aggregateMonthly(records, referenceNow)
	}
}

// aggregateDaily buckets by day of the ISO week (Monday-first)
// containing now. Only records dated within [weekStart, now] count:
// days of the week past now keep their zero bucket, and a record dated
// later in the week is excluded entirely.
func aggregateDaily(records []Record, now time.Time) Series {
	totals := make([]float64, 7)
	weekStart := startOfISOWeek(now)

	for _, r := range records {
		if r.Date.Before(weekStart) || r.Date.After(now) {
			continue
		}
		totals[mondayIndex(r.Date.Weekday())] += r.Amount
	}

	return Series{Labels: append([]string(nil), dayLabels...), Totals: totals}
}

// aggregateWeekly buckets by week of the calendar month containing now,
// indexed by ISO week number offset from the week of the month's first
// day. A computed index outside Week 1..Week 5 is dropped silently;
// late-month days that spill into a "6th" week are intentionally not
// counted.
func aggregateWeekly(records []Record, now time.Time) Series {
	totals := make([]float64, 5)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)
	_, firstWeek := monthStart.ISOWeek()

	for _, r := range records {
		if r.Date.Before(monthStart) || !r.Date.Before(nextMonth) {
			continue
		}
		_, week := r.Date.ISOWeek()
		idx := week - firstWeek
		if idx < 0 || idx >= 5 {
			continue
		}
		totals[idx] += r.Amount
	}

	return Series{Labels: append([]string(nil), weekLabels...), Totals: totals}
}

// aggregateMonthly buckets by calendar month of the year containing
// now. Used for both the monthly and yearly granularities; they differ
// only in the query window the caller fetches.
func aggregateMonthly(records []Record, now time.Time) Series {
	totals := make([]float64, 12)

	for _, r := range records {
		if r.Date.Year() != now.Year() {
			continue
		}
		totals[int(r.Date.Month())-1] += r.Amount
	}

	return Series{Labels: append([]string(nil), monthLabels...), Totals: totals}
}

// startOfISOWeek returns midnight of the Monday of t's ISO week.
func startOfISOWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -mondayIndex(t.Weekday()))
}

// mondayIndex maps a weekday to its Monday-first index 0..6.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
