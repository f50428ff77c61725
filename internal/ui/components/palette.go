package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jornada/internal/ui/theme"
)

// PaletteSubmitMsg carries the trimmed command line the user confirmed.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted on esc.
type PaletteCancelMsg struct{}

type command struct {
	name string
	args string
	help string
}

// commands must match the switch in app/model.go executePalette.
var commands = []command{
	{name: "reading:open", args: "[MM-DD]", help: "open a reading (today by default)"},
	{name: "reading:complete", args: "[reflection]", help: "mark the focused reading as read"},
	{name: "devotional", args: "[MM-DD]", help: "show or generate the devotional"},
	{name: "messiah", args: "[MM-DD]", help: "how the passage points to Christ"},
	{name: "download", args: "[MM-DD]", help: "keep the text for offline reading"},
	{name: "version:set", args: "<ARC|KJV|SCOFIELD>", help: "choose the Bible edition"},
	{name: "goal:toggle", args: "<reading|prayer|extra>", help: "tick a daily goal"},
	{name: "goal:adjust", args: "<reading|prayer|extra> <delta>", help: "change a goal target"},
	{name: "reminder:add", args: "<HH:mm> <prayer|reading> <label>", help: "add a reminder"},
	{name: "dict", args: "<term>", help: "define a theological term"},
	{name: "refresh", help: "reload progress and badges"},
}

const (
	maxSuggestions = 5
	maxHistory     = 20
)

var (
	paletteFrame = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	argStyle  = lipgloss.NewStyle().Foreground(theme.Subtext0)
	helpStyle = lipgloss.NewStyle().Foreground(theme.Surface1).Italic(true)
)

// Palette is the ":" command line. Tab completes the command name and
// up/down walk through earlier submissions.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	recall  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "reading:open 01-05"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows an empty palette and returns the cursor blink command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.recall = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			line := strings.TrimSpace(p.input.Value())
			p.remember(line)
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case "tab":
			if c, ok := complete(p.input.Value()); ok {
				p.setLine(c)
			}
			return p, nil
		case "up":
			if p.recall > 0 {
				p.recall--
				p.setLine(p.history[p.recall])
			}
			return p, nil
		case "down":
			if p.recall < len(p.history)-1 {
				p.recall++
				p.setLine(p.history[p.recall])
			} else {
				p.recall = len(p.history)
				p.setLine("")
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) setLine(line string) {
	p.input.SetValue(line)
	p.input.CursorEnd()
}

func (p *Palette) remember(line string) {
	if line == "" {
		return
	}
	if n := len(p.history); n > 0 && p.history[n-1] == line {
		return
	}
	p.history = append(p.history, line)
	if len(p.history) > maxHistory {
		p.history = p.history[len(p.history)-maxHistory:]
	}
}

// complete expands a partial command name to the first command it prefixes.
// Input that already carries arguments is left alone.
func complete(input string) (string, bool) {
	if input == "" || strings.Contains(input, " ") {
		return "", false
	}
	if matches := suggestions(input); len(matches) > 0 {
		return matches[0].name + " ", true
	}
	return "", false
}

// suggestions lists commands whose name starts with the first word of line.
func suggestions(line string) []command {
	word, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(line)), " ")
	var out []command
	for _, c := range commands {
		if strings.HasPrefix(c.name, word) {
			out = append(out, c)
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(p.input.View() + "\n")

	matches := suggestions(p.input.Value())
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	if len(matches) > 0 {
		sb.WriteString("\n")
	}
	for _, c := range matches {
		line := "  " + theme.Hot.Render(c.name)
		if c.args != "" {
			line += " " + argStyle.Render(c.args)
		}
		sb.WriteString(line + "  " + helpStyle.Render(c.help) + "\n")
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteFrame.Width(w - 2).Render(sb.String())
}
