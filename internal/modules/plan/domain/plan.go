package domain

import (
	"fmt"
	"sort"
	"time"
)

const PhaseCount = 10

type Quarter string

const (
	Q1 Quarter = "1º Trimestre"
	Q2 Quarter = "2º Trimestre"
	Q3 Quarter = "3º Trimestre"
	Q4 Quarter = "4º Trimestre"
)

var Quarters = []Quarter{Q1, Q2, Q3, Q4}

func (q Quarter) Validate() error {
	for _, known := range Quarters {
		if q == known {
			return nil
		}
	}
	return fmt.Errorf("unknown quarter %q", string(q))
}

type QuarterInfo struct {
	Tag   Quarter
	Title string
	Focus string
}

type Phase struct {
	ID          int
	Name        string
	Description string
	Books       []string
}

// ReadingEntry is one day of the plan. Date is the MM-DD key.
type ReadingEntry struct {
	Date            string
	Reading         string
	IsMeditationDay bool
	Quarter         Quarter
	PhaseID         int
	Focus           string
}

// Plan is the immutable reading table. Entries are kept in calendar order.
type Plan struct {
	quarters []QuarterInfo
	phases   []Phase
	entries  []ReadingEntry
	byKey    map[string]int
}

func NewPlan(quarters []QuarterInfo, phases []Phase, entries []ReadingEntry) (Plan, error) {
	if len(entries) == 0 {
		return Plan{}, fmt.Errorf("plan has no entries")
	}
	phaseIDs := make(map[int]bool, len(phases))
	for _, phase := range phases {
		if phase.ID < 1 || phase.ID > PhaseCount {
			return Plan{}, fmt.Errorf("phase id %d out of range", phase.ID)
		}
		if phaseIDs[phase.ID] {
			return Plan{}, fmt.Errorf("duplicate phase id %d", phase.ID)
		}
		phaseIDs[phase.ID] = true
	}
	for _, info := range quarters {
		if err := info.Tag.Validate(); err != nil {
			return Plan{}, err
		}
	}

	sorted := make([]ReadingEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	byKey := make(map[string]int, len(sorted))
	for i, entry := range sorted {
		if !ValidKey(entry.Date) {
			return Plan{}, fmt.Errorf("invalid date key %q", entry.Date)
		}
		if _, dup := byKey[entry.Date]; dup {
			return Plan{}, fmt.Errorf("duplicate date key %q", entry.Date)
		}
		if !phaseIDs[entry.PhaseID] {
			return Plan{}, fmt.Errorf("entry %s references unknown phase %d", entry.Date, entry.PhaseID)
		}
		if err := entry.Quarter.Validate(); err != nil {
			return Plan{}, fmt.Errorf("entry %s: %w", entry.Date, err)
		}
		byKey[entry.Date] = i
	}

	sortedPhases := make([]Phase, len(phases))
	copy(sortedPhases, phases)
	sort.Slice(sortedPhases, func(i, j int) bool { return sortedPhases[i].ID < sortedPhases[j].ID })

	return Plan{
		quarters: append([]QuarterInfo(nil), quarters...),
		phases:   sortedPhases,
		entries:  sorted,
		byKey:    byKey,
	}, nil
}

// DateKey renders the MM-DD plan key of t.
func DateKey(t time.Time) string {
	return t.Format("01-02")
}

// ValidKey reports whether key is a real MM-DD calendar day (02-29 included).
func ValidKey(key string) bool {
	_, err := time.Parse("2006-01-02", "2000-"+key)
	return len(key) == 5 && err == nil
}

func (p Plan) Len() int { return len(p.entries) }

func (p Plan) Entries() []ReadingEntry {
	return append([]ReadingEntry(nil), p.entries...)
}

func (p Plan) Phases() []Phase {
	return append([]Phase(nil), p.phases...)
}

func (p Plan) Quarters() []QuarterInfo {
	return append([]QuarterInfo(nil), p.quarters...)
}

func (p Plan) Phase(id int) (Phase, bool) {
	for _, phase := range p.phases {
		if phase.ID == id {
			return phase, true
		}
	}
	return Phase{}, false
}

func (p Plan) PhaseOf(entry ReadingEntry) (Phase, bool) {
	return p.Phase(entry.PhaseID)
}

func (p Plan) QuarterInfo(q Quarter) (QuarterInfo, bool) {
	for _, info := range p.quarters {
		if info.Tag == q {
			return info, true
		}
	}
	return QuarterInfo{}, false
}

func (p Plan) EntryByKey(key string) (ReadingEntry, bool) {
	idx, ok := p.byKey[key]
	if !ok {
		return ReadingEntry{}, false
	}
	return p.entries[idx], true
}

// EntryForDate looks the entry up by the month-day part of date only.
func (p Plan) EntryForDate(date time.Time) (ReadingEntry, bool) {
	return p.EntryByKey(DateKey(date))
}

// Resolve returns the entry for date or, when the day has none, the next
// entry in calendar order. The plan recurs every year, so a date after the
// last entry wraps to the first.
func (p Plan) Resolve(date time.Time) ReadingEntry {
	key := DateKey(date)
	idx := sort.Search(len(p.entries), func(i int) bool { return p.entries[i].Date >= key })
	if idx == len(p.entries) {
		idx = 0
	}
	return p.entries[idx]
}

// PrecedingReadings returns up to n entries immediately before key, in
// plan order. Unknown keys yield nil.
func (p Plan) PrecedingReadings(key string, n int) []ReadingEntry {
	idx, ok := p.byKey[key]
	if !ok || n <= 0 {
		return nil
	}
	from := idx - n
	if from < 0 {
		from = 0
	}
	return append([]ReadingEntry(nil), p.entries[from:idx]...)
}

func (p Plan) ByQuarter(q Quarter) []ReadingEntry {
	var out []ReadingEntry
	for _, entry := range p.entries {
		if entry.Quarter == q {
			out = append(out, entry)
		}
	}
	return out
}

func (p Plan) ByPhase(phaseID int) []ReadingEntry {
	var out []ReadingEntry
	for _, entry := range p.entries {
		if entry.PhaseID == phaseID {
			out = append(out, entry)
		}
	}
	return out
}
