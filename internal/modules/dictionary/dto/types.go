package dto

type TermOutput struct {
	Term       string
	Definition string
	Online     bool
}
