package dto

import "time"

type EntryOutput struct {
	Date            string
	Reading         string
	IsMeditationDay bool
	Quarter         string
	PhaseID         int
	PhaseName       string
	Focus           string
}

type TodayOutput struct {
	Today   time.Time
	Found   bool
	Entry   EntryOutput
	Quarter QuarterOutput
}

type QuarterOutput struct {
	Tag     string
	Title   string
	Focus   string
	Entries int
}

type PhaseOutput struct {
	ID          int
	Name        string
	Description string
	Books       []string
	Completed   int
	Total       int
	Percentage  int
}

type WeekOutput struct {
	From    time.Time
	To      time.Time
	Pending []EntryOutput
}

type StreakOutput struct {
	Current int
	Longest int
}

type ProgressOutput struct {
	Completed  int
	Total      int
	Percentage int
}
