package domain

import (
	"math"
	"time"
)

type Progress struct {
	CompletedCount int
	TotalCount     int
	Percentage     int
}

// Percentage rounds 100*completed/total to the nearest integer; an empty
// total is 0%.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

func toSet(completed []string) map[string]bool {
	set := make(map[string]bool, len(completed))
	for _, key := range completed {
		set[key] = true
	}
	return set
}

func (p Plan) PhaseProgress(phaseID int, completed []string) Progress {
	done := toSet(completed)
	out := Progress{}
	for _, entry := range p.entries {
		if entry.PhaseID != phaseID {
			continue
		}
		out.TotalCount++
		if done[entry.Date] {
			out.CompletedCount++
		}
	}
	out.Percentage = Percentage(out.CompletedCount, out.TotalCount)
	return out
}

func (p Plan) OverallProgress(completed []string) Progress {
	done := toSet(completed)
	out := Progress{TotalCount: len(p.entries)}
	for _, entry := range p.entries {
		if done[entry.Date] {
			out.CompletedCount++
		}
	}
	out.Percentage = Percentage(out.CompletedCount, out.TotalCount)
	return out
}

// WeekBounds returns the Monday and Sunday of the week containing ref.
func WeekBounds(ref time.Time) (time.Time, time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// WeeklyPending lists the not yet completed entries of the Monday-Sunday
// week containing ref, in calendar order.
func (p Plan) WeeklyPending(ref time.Time, completed []string) []ReadingEntry {
	done := toSet(completed)
	monday, _ := WeekBounds(ref)
	var out []ReadingEntry
	for i := 0; i < 7; i++ {
		entry, ok := p.EntryForDate(monday.AddDate(0, 0, i))
		if !ok || done[entry.Date] {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// LongestStreak is the longest run of consecutive plan entries that are
// all completed.
func (p Plan) LongestStreak(completed []string) int {
	done := toSet(completed)
	best, run := 0, 0
	for _, entry := range p.entries {
		if !done[entry.Date] {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}
	return best
}

// CurrentStreak counts consecutive completed entries backwards from the
// latest entry dated on or before ref. An unfinished entry for ref itself
// does not break the streak; the count then starts from the entry before.
func (p Plan) CurrentStreak(ref time.Time, completed []string) int {
	done := toSet(completed)
	key := DateKey(ref)
	idx := -1
	for i, entry := range p.entries {
		if entry.Date > key {
			break
		}
		idx = i
	}
	if idx < 0 {
		return 0
	}
	if p.entries[idx].Date == key && !done[key] {
		idx--
	}
	streak := 0
	for ; idx >= 0 && done[p.entries[idx].Date]; idx-- {
		streak++
	}
	return streak
}
