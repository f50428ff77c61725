package domain

import (
	"fmt"
	"regexp"
	"strings"
)

const SchemaVersion = 1

type Edition string

const (
	EditionARC      Edition = "ARC"
	EditionKJV      Edition = "KJV"
	EditionScofield Edition = "SCOFIELD"
)

var Editions = []Edition{EditionARC, EditionKJV, EditionScofield}

func ParseEdition(raw string) (Edition, error) {
	e := Edition(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Editions {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown edition %q (want ARC, KJV or SCOFIELD)", raw)
}

type GoalKind string

const (
	GoalReading GoalKind = "reading"
	GoalPrayer  GoalKind = "prayer"
	GoalExtra   GoalKind = "extra"
)

var GoalKinds = []GoalKind{GoalReading, GoalPrayer, GoalExtra}

func ParseGoalKind(raw string) (GoalKind, error) {
	k := GoalKind(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range GoalKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown goal %q (want reading, prayer or extra)", raw)
}

// Step is the increment the goal controls use: minutes for reading and
// prayer, chapters for extra.
func (k GoalKind) Step() int {
	if k == GoalExtra {
		return 1
	}
	return 5
}

type DailyGoalsConfig struct {
	ReadingMinutes int `json:"readingMinutes"`
	PrayerMinutes  int `json:"prayerMinutes"`
	ExtraChapters  int `json:"extraChapters"`
}

func DefaultGoals() DailyGoalsConfig {
	return DailyGoalsConfig{ReadingMinutes: 15, PrayerMinutes: 10, ExtraChapters: 1}
}

func (c DailyGoalsConfig) Value(kind GoalKind) int {
	switch kind {
	case GoalReading:
		return c.ReadingMinutes
	case GoalPrayer:
		return c.PrayerMinutes
	default:
		return c.ExtraChapters
	}
}

// With returns a copy with kind set to value, clamped to zero.
func (c DailyGoalsConfig) With(kind GoalKind, value int) DailyGoalsConfig {
	if value < 0 {
		value = 0
	}
	switch kind {
	case GoalReading:
		c.ReadingMinutes = value
	case GoalPrayer:
		c.PrayerMinutes = value
	case GoalExtra:
		c.ExtraChapters = value
	}
	return c
}

// DailyGoalProgress is reset whenever Date is not the current day.
type DailyGoalProgress struct {
	Date        string `json:"date"`
	ReadingDone bool   `json:"readingDone"`
	PrayerDone  bool   `json:"prayerDone"`
	ExtraDone   bool   `json:"extraDone"`
}

func (d DailyGoalProgress) Done(kind GoalKind) bool {
	switch kind {
	case GoalReading:
		return d.ReadingDone
	case GoalPrayer:
		return d.PrayerDone
	default:
		return d.ExtraDone
	}
}

func (d DailyGoalProgress) Toggle(kind GoalKind) DailyGoalProgress {
	switch kind {
	case GoalReading:
		d.ReadingDone = !d.ReadingDone
	case GoalPrayer:
		d.PrayerDone = !d.PrayerDone
	case GoalExtra:
		d.ExtraDone = !d.ExtraDone
	}
	return d
}

type ReminderKind string

const (
	ReminderPrayer  ReminderKind = "prayer"
	ReminderReading ReminderKind = "reading"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type Reminder struct {
	ID     string       `json:"id"`
	Time   string       `json:"time"`
	Label  string       `json:"label"`
	Type   ReminderKind `json:"type"`
	Active bool         `json:"active"`
}

func (r Reminder) Validate() error {
	if !clockPattern.MatchString(r.Time) {
		return fmt.Errorf("reminder time %q must be HH:mm", r.Time)
	}
	if strings.TrimSpace(r.Label) == "" {
		return fmt.Errorf("reminder label is required")
	}
	if r.Type != ReminderPrayer && r.Type != ReminderReading {
		return fmt.Errorf("reminder type %q must be prayer or reading", r.Type)
	}
	return nil
}

type Devotional struct {
	Title           string   `json:"title"`
	Verse           string   `json:"verse"`
	Reflection      string   `json:"reflection"`
	PracticalPoints []string `json:"practicalPoints"`
	Prayer          string   `json:"prayer"`
}

// UserProgress is the single per-installation aggregate.
type UserProgress struct {
	UserName          string
	StartDate         string
	CompletedDates    []string
	Reflections       map[string]string
	Badges            []string
	SavedDevotionals  map[string]Devotional
	LastViewedDate    string
	DailyGoalsConfig  DailyGoalsConfig
	DailyGoalProgress DailyGoalProgress
	Version           Edition
	Reminders         []Reminder
}

func New(userName, startDate, today, lastViewed string) UserProgress {
	return UserProgress{
		UserName:          userName,
		StartDate:         startDate,
		CompletedDates:    []string{},
		Reflections:       map[string]string{},
		Badges:            []string{},
		SavedDevotionals:  map[string]Devotional{},
		LastViewedDate:    lastViewed,
		DailyGoalsConfig:  DefaultGoals(),
		DailyGoalProgress: DailyGoalProgress{Date: today},
		Version:           EditionARC,
		Reminders:         []Reminder{},
	}
}

// Clone deep-copies p so a mutation never aliases the committed state.
func (p UserProgress) Clone() UserProgress {
	out := p
	out.CompletedDates = append([]string{}, p.CompletedDates...)
	out.Badges = append([]string{}, p.Badges...)
	out.Reminders = append([]Reminder{}, p.Reminders...)
	out.Reflections = make(map[string]string, len(p.Reflections))
	for k, v := range p.Reflections {
		out.Reflections[k] = v
	}
	out.SavedDevotionals = make(map[string]Devotional, len(p.SavedDevotionals))
	for k, v := range p.SavedDevotionals {
		v.PracticalPoints = append([]string(nil), v.PracticalPoints...)
		out.SavedDevotionals[k] = v
	}
	return out
}

func (p UserProgress) IsCompleted(key string) bool {
	for _, done := range p.CompletedDates {
		if done == key {
			return true
		}
	}
	return false
}

// Complete adds key to the completion set; it reports false when the key
// was already there.
func (p *UserProgress) Complete(key string) bool {
	if p.IsCompleted(key) {
		return false
	}
	p.CompletedDates = append(p.CompletedDates, key)
	return true
}

// ResetDaily clears the daily goal booleans when they belong to another day.
func (p *UserProgress) ResetDaily(today string) bool {
	if p.DailyGoalProgress.Date == today {
		return false
	}
	p.DailyGoalProgress = DailyGoalProgress{Date: today}
	return true
}

// Normalize fills missing collections, clamps negative goal targets,
// collapses duplicated set members and applies the daily reset. It reports whether anything changed.
func (p *UserProgress) Normalize(today string) bool {
	changed := false
	if p.Reflections == nil {
		p.Reflections = map[string]string{}
	}
	if p.SavedDevotionals == nil {
		p.SavedDevotionals = map[string]Devotional{}
	}
	if p.Reminders == nil {
		p.Reminders = []Reminder{}
	}
	if _, err := ParseEdition(string(p.Version)); err != nil {
		p.Version = EditionARC
		changed = true
	}
	for _, kind := range GoalKinds {
		if p.DailyGoalsConfig.Value(kind) < 0 {
			p.DailyGoalsConfig = p.DailyGoalsConfig.With(kind, 0)
			changed = true
		}
	}
	var dup bool
	p.CompletedDates, dup = dedupe(p.CompletedDates)
	changed = changed || dup
	p.Badges, dup = dedupe(p.Badges)
	changed = changed || dup
	if p.ResetDaily(today) {
		changed = true
	}
	return changed
}

func (p UserProgress) Reminder(id string) (int, bool) {
	for i, r := range p.Reminders {
		if r.ID == id {
			return i, true
		}
	}
	return -1, false
}

func dedupe(values []string) ([]string, bool) {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, len(out) != len(values)
}
