package dto

import "time"

type OpenReadingInput struct {
	DateKey string
	Edition string
}

type ReadingOutput struct {
	DateKey         string
	Reading         string
	Focus           string
	PhaseName       string
	Quarter         string
	IsMeditationDay bool
	Edition         string
	Text            string
	Cached          bool
	Fallback        bool
}

type DevotionalOutput struct {
	DateKey         string
	Title           string
	Verse           string
	Reflection      string
	PracticalPoints []string
	Prayer          string
	FromCache       bool
}

type DownloadOutput struct {
	Key       string
	Reference string
	Edition   string
	SavedAt   time.Time
}

type PhraseOutput struct {
	DateKey string
	Theme   string
	Phrase  string
}

type MessiahOutput struct {
	DateKey string
	Reading string
	Text    string
}

type TermOutput struct {
	Term       string
	Definition string
}
