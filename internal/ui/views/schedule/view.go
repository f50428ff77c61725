package schedule

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plandto "jornada/internal/modules/plan/dto"
	"jornada/internal/ui/theme"
)

type Port interface {
	Quarters(ctx context.Context) ([]plandto.QuarterOutput, error)
	Schedule(ctx context.Context, quarter string) ([]plandto.EntryOutput, error)
}

type QuartersLoadedMsg struct {
	Quarters []plandto.QuarterOutput
	Err      error
}

type EntriesLoadedMsg struct {
	Quarter string
	Entries []plandto.EntryOutput
	Err     error
}

type entryItem struct {
	entry plandto.EntryOutput
	done  bool
}

func (i entryItem) Title() string {
	mark := "○"
	if i.done {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s  %s", mark, i.entry.Date, i.entry.Reading)
}

func (i entryItem) Description() string { return i.entry.PhaseName }
func (i entryItem) FilterValue() string { return i.entry.Date + " " + i.entry.Reading }

type Model struct {
	port      Port
	list      list.Model
	detail    viewport.Model
	quarters  []plandto.QuarterOutput
	current   int
	entries   []plandto.EntryOutput
	completed map[string]bool
	width     int
	height    int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Schedule"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	return Model{port: port, list: l, detail: vp, completed: map[string]bool{}}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		quarters, err := m.port.Quarters(context.Background())
		return QuartersLoadedMsg{Quarters: quarters, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case QuartersLoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Schedule: " + msg.Err.Error()
			return m, nil
		}
		m.quarters = msg.Quarters
		if len(m.quarters) > 0 {
			cmds = append(cmds, m.loadCmd(m.quarters[m.current].Tag))
		}

	case EntriesLoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Schedule: " + msg.Err.Error()
			return m, nil
		}
		m.entries = msg.Entries
		m.list.Title = msg.Quarter
		cmds = append(cmds, m.list.SetItems(m.items()))
		m.detail.SetContent(m.renderDetail())

	case tea.KeyMsg:
		if !m.Filtering() && len(m.quarters) > 0 {
			switch msg.String() {
			case "]":
				m.current = (m.current + 1) % len(m.quarters)
				return m, m.loadCmd(m.quarters[m.current].Tag)
			case "[":
				m.current = (m.current + len(m.quarters) - 1) % len(m.quarters)
				return m, m.loadCmd(m.quarters[m.current].Tag)
			}
		}
	}

	prevIdx := m.list.Index()
	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prevIdx {
		m.detail.SetContent(m.renderDetail())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width / 2
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - listW - 2).
		Height(m.height - 2).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SetCompleted marks entries done without reloading the quarter.
func (m *Model) SetCompleted(keys []string) tea.Cmd {
	m.completed = make(map[string]bool, len(keys))
	for _, k := range keys {
		m.completed[k] = true
	}
	if len(m.entries) == 0 {
		return nil
	}
	m.detail.SetContent(m.renderDetail())
	return m.list.SetItems(m.items())
}

func (m Model) SelectedKey() (string, bool) {
	if item, ok := m.list.SelectedItem().(entryItem); ok {
		return item.entry.Date, true
	}
	return "", false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) resize() {
	listW := m.width / 2
	m.list.SetSize(listW, m.height)
	m.detail.Width = m.width - listW - 4
	m.detail.Height = m.height - 4
}

func (m Model) items() []list.Item {
	items := make([]list.Item, len(m.entries))
	for i, e := range m.entries {
		items[i] = entryItem{entry: e, done: m.completed[e.Date]}
	}
	return items
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return theme.Muted.Render("[ / ]: quarter   /: filter")
	}
	e := item.entry
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(e.Reading) + "\n\n")
	sb.WriteString(theme.Muted.Render("date:    ") + e.Date + "\n")
	sb.WriteString(theme.Muted.Render("quarter: ") + e.Quarter + "\n")
	sb.WriteString(theme.Muted.Render("phase:   ") + fmt.Sprintf("%d. %s", e.PhaseID, e.PhaseName) + "\n")
	sb.WriteString(theme.Muted.Render("focus:   ") + e.Focus + "\n")
	if e.IsMeditationDay {
		sb.WriteString("\n" + theme.Hot.Render("Meditation day") + "\n")
	}
	if item.done {
		sb.WriteString("\n" + theme.Done.Render("Completed") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: open   [ / ]: quarter"))
	return sb.String()
}

func (m Model) loadCmd(quarter string) tea.Cmd {
	return func() tea.Msg {
		entries, err := m.port.Schedule(context.Background(), quarter)
		return EntriesLoadedMsg{Quarter: quarter, Entries: entries, Err: err}
	}
}
