package badges

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	progressdto "jornada/internal/modules/progress/dto"
	"jornada/internal/ui/theme"
)

type Port interface {
	Badges(ctx context.Context) ([]progressdto.BadgeOutput, error)
}

type LoadedMsg struct {
	Badges []progressdto.BadgeOutput
	Err    error
}

type badgeItem struct {
	badge progressdto.BadgeOutput
}

func (i badgeItem) Title() string {
	if i.badge.Earned {
		return "★ " + i.badge.Name
	}
	return "☆ " + i.badge.Name
}

func (i badgeItem) Description() string { return i.badge.Description }
func (i badgeItem) FilterValue() string { return i.badge.Name }

type Model struct {
	port   Port
	list   list.Model
	earned int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Peach).BorderForeground(theme.Peach)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Subtext0).BorderForeground(theme.Peach)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Badges"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Refresh() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		badges, err := port.Badges(context.Background())
		return LoadedMsg{Badges: badges, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Badges"
			return m, m.list.SetItems(nil)
		}
		items := make([]list.Item, len(msg.Badges))
		m.earned = 0
		for i, b := range msg.Badges {
			items[i] = badgeItem{badge: b}
			if b.Earned {
				m.earned++
			}
		}
		m.list.Title = fmt.Sprintf("Badges %d/%d", m.earned, len(items))
		cmds = append(cmds, m.list.SetItems(items))
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string { return m.list.View() }

