package goals

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "jornada/internal/modules/progress/dto"
	"jornada/internal/ui/components"
	"jornada/internal/ui/theme"
)

type Port interface {
	ToggleGoal(ctx context.Context, kind string) (progressdto.CommitOutput, error)
	AdjustGoal(ctx context.Context, kind string, delta int) (progressdto.CommitOutput, error)
	ToggleReminder(ctx context.Context, reminderID string) (progressdto.ReminderOutput, error)
}

type row struct {
	kind  string
	label string
	unit  string
	step  int
}

var rows = []row{
	{kind: "reading", label: "Reading", unit: "min", step: 5},
	{kind: "prayer", label: "Prayer", unit: "min", step: 5},
	{kind: "extra", label: "Extra chapters", unit: "ch", step: 1},
}

type Model struct {
	port     Port
	progress progressdto.ProgressOutput
	loaded   bool
	cursor   int
	width    int
	height   int
}

func New(port Port) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd { return nil }

// SetProgress replaces the rendered record.
func (m *Model) SetProgress(progress progressdto.ProgressOutput, loaded bool) {
	m.progress = progress
	m.loaded = loaded
	if limit := len(rows) + len(progress.Reminders); m.cursor >= limit {
		m.cursor = limit - 1
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if !m.loaded {
			return m, nil
		}
		limit := len(rows) + len(m.progress.Reminders)
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < limit-1 {
				m.cursor++
			}
		case " ", "enter":
			if m.cursor < len(rows) {
				return m, m.toggleCmd(rows[m.cursor].kind)
			}
			return m, m.toggleReminderCmd(m.progress.Reminders[m.cursor-len(rows)].ID)
		case "+", "=":
			if m.cursor < len(rows) {
				return m, m.adjustCmd(rows[m.cursor].kind, rows[m.cursor].step)
			}
		case "-":
			if m.cursor < len(rows) {
				return m, m.adjustCmd(rows[m.cursor].kind, -rows[m.cursor].step)
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Daily goals appear after `jornada init <name>`."))
	}
	p := m.progress
	done := []bool{p.Daily.ReadingDone, p.Daily.PrayerDone, p.Daily.ExtraDone}
	targets := []int{p.Goals.ReadingMinutes, p.Goals.PrayerMinutes, p.Goals.ExtraChapters}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Daily goals") + theme.Muted.Render("  "+p.Daily.Date) + "\n\n")
	for i, r := range rows {
		box := "[ ]"
		if done[i] {
			box = theme.Done.Render("[✓]")
		}
		line := fmt.Sprintf("%s %-16s %3d %s", box, r.label, targets[i], r.unit)
		sb.WriteString(m.cursorMark(i) + line + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Reminders") + "\n\n")
	if len(p.Reminders) == 0 {
		sb.WriteString(theme.Muted.Render("  none (palette: reminder:add 07:00 prayer Oração da manhã)") + "\n")
	}
	for i, r := range p.Reminders {
		state := theme.Muted.Render("off")
		if r.Active {
			state = theme.Done.Render("on ")
		}
		sb.WriteString(m.cursorMark(len(rows)+i) + fmt.Sprintf("%s %s  %-8s %s", state, r.Time, r.Type, r.Label) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("↑/↓: select  space: toggle  +/-: adjust target"))
	return theme.Pane.Width(max(m.width-4, 20)).Render(sb.String())
}

func (m Model) cursorMark(i int) string {
	if i == m.cursor {
		return theme.Hot.Render("› ")
	}
	return "  "
}

func (m Model) toggleCmd(kind string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		out, err := port.ToggleGoal(context.Background(), kind)
		return components.CommittedMsg{Label: "goal " + kind, SyncFor: out.SyncFor, Err: err}
	}
}

func (m Model) adjustCmd(kind string, delta int) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		out, err := port.AdjustGoal(context.Background(), kind, delta)
		return components.CommittedMsg{Label: "goal " + kind, SyncFor: out.SyncFor, Err: err}
	}
}

func (m Model) toggleReminderCmd(id string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		_, err := port.ToggleReminder(context.Background(), id)
		return components.CommittedMsg{Label: "reminder", Err: err}
	}
}
