package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	PhraseFallback    = "Toda a Escritura é divinamente inspirada e proveitosa."
	MessianicFallback = "Não foi possível carregar a conexão messiânica no momento."
	// DevotionalWindow is how many plan entries before a day feed its devotional.
	DevotionalWindow = 6
)

// Editions are the scripture editions a reading can be requested in.
var Editions = []string{"ARC", "KJV", "SCOFIELD"}

// ParseEdition upper-cases raw and rejects anything outside Editions.
func ParseEdition(raw string) (string, error) {
	e := strings.ToUpper(strings.TrimSpace(raw))
	for _, known := range Editions {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown edition %q (want ARC, KJV or SCOFIELD)", raw)
}

// whitespace also matches Unicode space separators and U+FEFF, since keys
// written by the browser build treat those as whitespace too.
var whitespace = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`)

// OfflineKey is the cache key of a downloaded text:
// offline_bible_<edition>_<reference with each whitespace rune as "_">.
func OfflineKey(edition, reference string) string {
	return "offline_bible_" + edition + "_" + whitespace.ReplaceAllString(reference, "_")
}

// ConnectionErrorText is shown in place of scripture when the provider
// cannot be reached.
func ConnectionErrorText(reference, edition string) string {
	return "[Erro de Conexão] Não foi possível carregar o texto bíblico online.\n\n" +
		"Verifique sua conexão ou tente novamente mais tarde.\n\n" +
		"Referência: " + reference + " (" + edition + ")"
}

type ReadingText struct {
	Reference string
	Edition   string
	Text      string
	Cached    bool
	Fallback  bool
}

type CachedText struct {
	Key       string
	Edition   string
	Reference string
	Text      string
	SavedAt   time.Time
}

func NewCachedText(edition, reference, text string, savedAt time.Time) CachedText {
	return CachedText{
		Key:       OfflineKey(edition, reference),
		Edition:   edition,
		Reference: reference,
		Text:      text,
		SavedAt:   savedAt,
	}
}

type Devotional struct {
	Title           string   `json:"title" validate:"required"`
	Verse           string   `json:"verse" validate:"required"`
	Reflection      string   `json:"reflection" validate:"required"`
	PracticalPoints []string `json:"practicalPoints" validate:"required,min=1,dive,required"`
	Prayer          string   `json:"prayer" validate:"required"`
}

type Term struct {
	Term       string `json:"term" validate:"required"`
	Definition string `json:"definition" validate:"required"`
}

// ResourceKey identifies one outbound request so identical concurrent
// requests can share a single call.
func ResourceKey(kind string, parts ...string) string {
	return kind + ":" + strings.Join(parts, "|")
}
