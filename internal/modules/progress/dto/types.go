package dto

import "time"

type GoalsOutput struct {
	ReadingMinutes int
	PrayerMinutes  int
	ExtraChapters  int
}

type DailyOutput struct {
	Date        string
	ReadingDone bool
	PrayerDone  bool
	ExtraDone   bool
}

type ReminderInput struct {
	Time  string
	Label string
	Type  string
}

type ReminderOutput struct {
	ID     string
	Time   string
	Label  string
	Type   string
	Active bool
}

type DevotionalOutput struct {
	Title           string
	Verse           string
	Reflection      string
	PracticalPoints []string
	Prayer          string
}

type ProgressOutput struct {
	UserName         string
	StartDate        string
	CompletedDates   []string
	Reflections      map[string]string
	Badges           []string
	SavedDevotionals []string
	LastViewedDate   string
	Version          string
	Goals            GoalsOutput
	Daily            DailyOutput
	Reminders        []ReminderOutput
}

// CommitOutput carries the committed state and how long the UI should show
// its syncing indicator.
type CommitOutput struct {
	Progress ProgressOutput
	SyncFor  time.Duration
}

type CompleteInput struct {
	DateKey    string
	Reflection string
}

type CompleteOutput struct {
	Progress  ProgressOutput
	SyncFor   time.Duration
	NewBadges []string
}

type BadgeOutput struct {
	Name        string
	Description string
	Earned      bool
}

type PhaseStatus struct {
	ID         int
	Name       string
	Completed  int
	Total      int
	Percentage int
}

type StatusOutput struct {
	Progress      ProgressOutput
	Today         time.Time
	Completed     int
	Total         int
	Percentage    int
	CurrentStreak int
	LongestStreak int
	Phases        []PhaseStatus
	WeekPending   []string
	GoalsDone     int
}
