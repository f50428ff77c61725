package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{input: "read", want: "reading:open ", ok: true},
		{input: "reading:c", want: "reading:complete ", ok: true},
		{input: "GOAL:A", want: "goal:adjust ", ok: true},
		{input: "ref", want: "refresh ", ok: true},
		{input: "download 01-05", ok: false},
		{input: "zzz", ok: false},
		{input: "", ok: false},
	}
	for _, tc := range cases {
		got, ok := complete(tc.input)
		assert.Equal(t, tc.ok, ok, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}
}

func TestPaletteSubmitTrimsInput(t *testing.T) {
	t.Parallel()

	p := NewPalette()
	p.Open()
	require.True(t, p.Visible())

	for _, r := range "  version:set KJV " {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, p.Visible())
	assert.Equal(t, PaletteSubmitMsg{Input: "version:set KJV"}, cmd())
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()

	p := NewPalette()
	p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.False(t, p.Visible())
	assert.Equal(t, PaletteCancelMsg{}, cmd())
}

func TestPaletteHistoryRecall(t *testing.T) {
	t.Parallel()

	p := NewPalette()
	for _, line := range []string{"refresh", "dict graça", "dict graça"} {
		p.Open()
		p.input.SetValue(line)
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	require.Equal(t, []string{"refresh", "dict graça"}, p.history)

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "dict graça", p.input.Value())
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "refresh", p.input.Value())
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "refresh", p.input.Value())
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "dict graça", p.input.Value())
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, p.input.Value())
}

func TestSuggestionsMatchFirstWord(t *testing.T) {
	t.Parallel()

	names := func(cs []command) []string {
		out := make([]string, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.name)
		}
		return out
	}
	assert.Equal(t, []string{"goal:toggle", "goal:adjust"}, names(suggestions("goal")))
	assert.Equal(t, []string{"download"}, names(suggestions("download 01-05")))
	assert.Len(t, suggestions(""), len(commands))
}
