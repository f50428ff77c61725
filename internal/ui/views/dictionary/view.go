package dictionary

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dictionarydto "jornada/internal/modules/dictionary/dto"
	"jornada/internal/ui/theme"
)

type Port interface {
	Search(ctx context.Context, query string) ([]dictionarydto.TermOutput, error)
	Lookup(ctx context.Context, term string) (dictionarydto.TermOutput, error)
}

type SearchMsg struct {
	Query string
	Terms []dictionarydto.TermOutput
	Err   error
}

type LookupMsg struct {
	Term dictionarydto.TermOutput
	Err  error
}

type Model struct {
	port    Port
	input   textinput.Model
	results viewport.Model
	spinner spinner.Model
	terms   []dictionarydto.TermOutput
	online  *dictionarydto.TermOutput
	notice  string
	busy    bool
	width   int
	height  int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "search terms (/ to focus, enter to ask online)"
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, input: ti, results: viewport.New(0, 0), spinner: sp}
}

func (m Model) Init() tea.Cmd { return m.searchCmd("") }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(m.width-6, 10)
		m.results.Width = m.width
		m.results.Height = max(m.height-3, 1)
		m.results.SetContent(m.render())

	case SearchMsg:
		if msg.Query == strings.TrimSpace(m.input.Value()) {
			m.terms = msg.Terms
			m.online = nil
			m.notice = ""
			if msg.Err != nil {
				m.notice = msg.Err.Error()
			}
			m.results.SetContent(m.render())
			m.results.GotoTop()
		}

	case LookupMsg:
		m.busy = false
		if msg.Err != nil {
			m.notice = "No definition found online."
		} else {
			term := msg.Term
			m.online = &term
			m.notice = ""
		}
		m.results.SetContent(m.render())

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.input.Focused() {
			switch msg.String() {
			case "esc":
				m.input.Blur()
				return m, nil
			case "enter":
				return m, m.Lookup(m.input.Value())
			}
			prev := m.input.Value()
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
			if m.input.Value() != prev {
				cmds = append(cmds, m.searchCmd(m.input.Value()))
			}
			return m, tea.Batch(cmds...)
		}
		if msg.String() == "/" {
			return m, m.input.Focus()
		}
	}

	var vCmd tea.Cmd
	m.results, vCmd = m.results.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	prompt := theme.Title.Render("Dictionary") + "  " + m.input.View()
	if m.busy {
		prompt += "  " + m.spinner.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, prompt, "", m.results.View())
}

// Filtering reports whether the search box owns the keyboard.
func (m Model) Filtering() bool { return m.input.Focused() }

// Lookup asks for an online definition unless one is already in flight.
func (m *Model) Lookup(term string) tea.Cmd {
	term = strings.TrimSpace(term)
	if term == "" || m.busy {
		return nil
	}
	m.busy = true
	m.input.SetValue(term)
	port := m.port
	return tea.Batch(func() tea.Msg {
		out, err := port.Lookup(context.Background(), term)
		return LookupMsg{Term: out, Err: err}
	}, m.spinner.Tick)
}

func (m Model) render() string {
	var sb strings.Builder
	if m.notice != "" {
		sb.WriteString(theme.Hot.Render(m.notice) + "\n\n")
	}
	if m.online != nil {
		sb.WriteString(theme.Title.Render(m.online.Term) + theme.Muted.Render("  (online)") + "\n")
		sb.WriteString(wrap(m.online.Definition, m.width) + "\n\n")
	}
	if len(m.terms) == 0 && m.online == nil {
		sb.WriteString(theme.Muted.Render("No local match. Press enter to look it up online.") + "\n")
	}
	for _, t := range m.terms {
		sb.WriteString(theme.Title.Render(t.Term) + "\n")
		sb.WriteString(wrap(t.Definition, m.width) + "\n\n")
	}
	return sb.String()
}

func (m Model) searchCmd(query string) tea.Cmd {
	port := m.port
	query = strings.TrimSpace(query)
	return func() tea.Msg {
		terms, err := port.Search(context.Background(), query)
		return SearchMsg{Query: query, Terms: terms, Err: err}
	}
}

func wrap(text string, width int) string {
	if width < 20 {
		return text
	}
	return lipgloss.NewStyle().Width(width - 2).Render(text)
}
