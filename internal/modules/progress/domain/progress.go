package domain

import (
	"sort"
	"time"

	practice "wellness/internal/modules/practice/domain"
)

// WeeklyGoal is the number of sessions that fills the weekly progress bar.
const WeeklyGoal = 7

// RecentLimit is how many sessions the history card shows.
const RecentLimit = 5

type Summary struct {
	Streak         int
	Total          int
	Successful     int
	WeeklyPercent  float64
	AverageSeconds int
	SuccessRate    float64
	Recent         []practice.SessionRecord
}

// ComputeStreak counts consecutive calendar days, ending today, that hold at
// least one session. Days are taken in now's location; several sessions on
// one day count once. Records with a zero date never match.
func ComputeStreak(records []practice.SessionRecord, now time.Time) int {
	if len(records) == 0 {
		return 0
	}
	loc := now.Location()
	days := make(map[civilDay]struct{}, len(records))
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		days[dayOf(r.Date.In(loc))] = struct{}{}
	}
	streak := 0
	check := now
	for {
		if _, ok := days[dayOf(check)]; !ok {
			return streak
		}
		streak++
		check = check.AddDate(0, 0, -1)
	}
}

// WeeklyProgress is the lifetime session count against WeeklyGoal, capped at 100.
// It is not windowed to the current week.
func WeeklyProgress(records []practice.SessionRecord) float64 {
	return min(float64(len(records))/WeeklyGoal*100, 100)
}

// AverageDuration is the floored mean duration in seconds, 0 when empty.
func AverageDuration(records []practice.SessionRecord) int {
	if len(records) == 0 {
		return 0
	}
	total := 0
	for _, r := range records {
		total += r.Duration
	}
	return total / len(records)
}

func CountSuccessful(records []practice.SessionRecord) int {
	n := 0
	for _, r := range records {
		if r.Success() {
			n++
		}
	}
	return n
}

// SuccessRate is the share of successful sessions as a percentage.
func SuccessRate(records []practice.SessionRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	return float64(CountSuccessful(records)) / float64(len(records)) * 100
}

// Recent returns up to n records, newest first. The input is not modified.
func Recent(records []practice.SessionRecord, n int) []practice.SessionRecord {
	if n <= 0 || len(records) == 0 {
		return []practice.SessionRecord{}
	}
	sorted := make([]practice.SessionRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func Summarize(records []practice.SessionRecord, now time.Time) Summary {
	return Summary{
		Streak:         ComputeStreak(records, now),
		Total:          len(records),
		Successful:     CountSuccessful(records),
		WeeklyPercent:  WeeklyProgress(records),
		AverageSeconds: AverageDuration(records),
		SuccessRate:    SuccessRate(records),
		Recent:         Recent(records, RecentLimit),
	}
}

type civilDay struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time) civilDay {
	y, m, d := t.Date()
	return civilDay{year: y, month: m, day: d}
}
