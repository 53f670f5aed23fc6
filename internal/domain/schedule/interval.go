package schedule

import (
	"errors"
	"sort"
	"time"
)

var ErrInvalidInterval = errors.New("interval end must not precede start")

// Interval is a busy range at date granularity, inclusive on both ends.
// A single-day interval has From == To.
type Interval struct {
	From time.Time
	To   time.Time
}

func NewInterval(from, to time.Time) (Interval, error) {
	from, to = Day(from), Day(to)
	if to.Before(from) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{From: from, To: to}, nil
}

// FromRange normalizes a timestamp range to whole days. Callers must pass
// an ordered range (end >= start); booking periods always satisfy this.
func FromRange(start, end time.Time) Interval {
	return Interval{From: Day(start), To: Day(end)}
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps is inclusive on both boundaries: intervals that merely touch
// at an endpoint still overlap.
func (i Interval) Overlaps(other Interval) bool {
	return !i.From.After(other.To) && !i.To.Before(other.From)
}

// Days returns the number of calendar days the interval spans.
func (i Interval) Days() int {
	return int(i.To.Sub(i.From)/(24*time.Hour)) + 1
}

// Merge collapses overlapping and adjacent intervals into the minimal
// sorted, disjoint set. Adjacent means the next interval starts no later
// than the day after the current one ends. The input is not modified.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From.Equal(sorted[j].From) {
			return sorted[i].To.Before(sorted[j].To)
		}
		return sorted[i].From.Before(sorted[j].From)
	})

	merged := make([]Interval, 0, len(sorted))
	cur := sorted[0]
	for _, iv := range sorted[1:] {
		if !iv.From.After(cur.To.AddDate(0, 0, 1)) {
			if iv.To.After(cur.To) {
				cur.To = iv.To
			}
			continue
		}
		merged = append(merged, cur)
		cur = iv
	}
	return append(merged, cur)
}
