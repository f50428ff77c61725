package domain

// ReadingRef is the slice of a plan entry the content module needs.
type ReadingRef struct {
	DateKey         string
	Reading         string
	Focus           string
	PhaseName       string
	Quarter         string
	IsMeditationDay bool
}

// Opened is a reading ready to display. Text is empty on meditation days.
type Opened struct {
	Ref        ReadingRef
	Text       ReadingText
	Downloaded bool
}
