package domain

import (
	"fmt"
	"sort"
	"strings"

	"jornada/internal/platform/slug"
)

const SchemaVersion = 1

// Entry is one reflection written next to its plan reading.
type Entry struct {
	DateKey    string
	Reading    string
	PhaseName  string
	Quarter    string
	Focus      string
	Reflection string
	Completed  bool
}

// FileName is <date key>-<slugged reading>.md, e.g. 01-05-genesis-1-4.md.
func (e Entry) FileName() string {
	return fmt.Sprintf("%s-%s.md", e.DateKey, slug.Make(e.Reading))
}

// Exportable keeps entries with a non-blank reflection, ordered by date key.
func Exportable(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Reflection) == "" {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateKey < out[j].DateKey })
	return out
}
