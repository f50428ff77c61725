package domain

import (
	"errors"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Term struct {
	Term       string
	Definition string
}

// Dictionary is the fixed glossary shipped with the app.
type Dictionary struct {
	terms []Term
}

func NewDictionary(terms []Term) (Dictionary, error) {
	seen := make(map[string]struct{}, len(terms))
	out := make([]Term, 0, len(terms))
	for _, t := range terms {
		t.Term = strings.TrimSpace(t.Term)
		t.Definition = strings.TrimSpace(t.Definition)
		if t.Term == "" || t.Definition == "" {
			return Dictionary{}, errors.New("dictionary term and definition are required")
		}
		key := strings.ToLower(t.Term)
		if _, dup := seen[key]; dup {
			return Dictionary{}, errors.New("duplicate dictionary term: " + t.Term)
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return Dictionary{terms: out}, nil
}

func (d Dictionary) Len() int { return len(d.terms) }

// Search matches query case-insensitively against terms and definitions and
// orders the hits by Brazilian Portuguese collation. An empty query returns
// every term.
func (d Dictionary) Search(query string) []Term {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]Term, 0, len(d.terms))
	for _, t := range d.terms {
		if needle == "" ||
			strings.Contains(strings.ToLower(t.Term), needle) ||
			strings.Contains(strings.ToLower(t.Definition), needle) {
			out = append(out, t)
		}
	}
	c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Term, out[j].Term) < 0
	})
	return out
}

// Find returns the term whose name equals name, ignoring case.
func (d Dictionary) Find(name string) (Term, bool) {
	for _, t := range d.terms {
		if strings.EqualFold(t.Term, strings.TrimSpace(name)) {
			return t, true
		}
	}
	return Term{}, false
}
