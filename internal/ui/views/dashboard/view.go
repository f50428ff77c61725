package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	contentdto "jornada/internal/modules/content/dto"
	plandto "jornada/internal/modules/plan/dto"
	progressdto "jornada/internal/modules/progress/dto"
	apperrors "jornada/internal/platform/errors"
	"jornada/internal/ui/theme"
)

type Port interface {
	Today(ctx context.Context) (plandto.TodayOutput, error)
	Status(ctx context.Context) (progressdto.StatusOutput, error)
	Phrase(ctx context.Context, dateKey string) (contentdto.PhraseOutput, error)
}

type LoadedMsg struct {
	Today  plandto.TodayOutput
	Status progressdto.StatusOutput
	Err    error
}

type PhraseMsg struct {
	Phrase contentdto.PhraseOutput
	Err    error
}

type Model struct {
	port       Port
	viewport   viewport.Model
	spinner    spinner.Model
	bar        progress.Model
	today      plandto.TodayOutput
	status     progressdto.StatusOutput
	onboarded  bool
	phrase     contentdto.PhraseOutput
	phraseBusy bool
	err        error
	loading    bool
	width      int
	height     int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:     port,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		bar:      progress.New(progress.WithSolidFill(string(theme.Lavender)), progress.WithoutPercentage()),
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh reloads today's entry and the progress summary.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		today, err := m.port.Today(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		status, err := m.port.Status(ctx)
		return LoadedMsg{Today: today, Status: status, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = m.height
		m.bar.Width = min(m.width/3, 40)
		m.viewport.SetContent(m.render())

	case LoadedMsg:
		m.loading = false
		m.today = msg.Today
		m.err = nil
		m.onboarded = true
		if msg.Err != nil {
			m.onboarded = false
			if !errors.Is(msg.Err, apperrors.ErrNoProgress) {
				m.err = msg.Err
			}
		} else {
			m.status = msg.Status
		}
		if m.today.Found && m.phrase.DateKey != m.today.Entry.Date && !m.phraseBusy {
			m.phraseBusy = true
			cmds = append(cmds, m.phraseCmd(m.today.Entry.Date))
		}
		m.viewport.SetContent(m.render())

	case PhraseMsg:
		m.phraseBusy = false
		if msg.Err == nil {
			m.phrase = msg.Phrase
		}
		m.viewport.SetContent(m.render())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var vCmd tea.Cmd
	m.viewport, vCmd = m.viewport.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading journey…")
	}
	return m.viewport.View()
}

// TodayKey is the date key of today's plan entry, if any.
func (m Model) TodayKey() (string, bool) {
	return m.today.Entry.Date, m.today.Found
}

func (m Model) render() string {
	var sb strings.Builder
	if m.err != nil {
		sb.WriteString(theme.Hot.Render("Error: "+m.err.Error()) + "\n\n")
	}

	if m.onboarded {
		sb.WriteString(theme.Title.Render("Olá, "+m.status.Progress.UserName) + "\n")
	} else {
		sb.WriteString(theme.Title.Render("Jornada Bíblica") + "\n")
		sb.WriteString(theme.Muted.Render("No profile yet. Run `jornada init <name>` to begin.") + "\n")
	}
	sb.WriteString(theme.Muted.Render(m.today.Today.Format("Monday, 02 Jan 2006")) + "\n\n")

	if m.today.Found {
		e := m.today.Entry
		sb.WriteString(theme.Hot.Render("Today") + "  " + e.Reading)
		if m.onboarded && contains(m.status.Progress.CompletedDates, e.Date) {
			sb.WriteString("  " + theme.Done.Render("✓"))
		}
		sb.WriteString("\n")
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%s · %s · %s", e.Quarter, e.PhaseName, e.Focus)) + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("No reading scheduled today.") + "\n")
	}
	if m.phrase.Phrase != "" {
		sb.WriteString("\n" + lipgloss.NewStyle().Italic(true).Foreground(theme.Lavender).Render("“"+m.phrase.Phrase+"”") + "\n")
	}

	if !m.onboarded {
		return sb.String()
	}
	s := m.status
	sb.WriteString("\n" + theme.Title.Render("Progress") + "\n")
	sb.WriteString(fmt.Sprintf("%s %3d%%  %d/%d readings\n", m.bar.ViewAs(float64(s.Percentage)/100), s.Percentage, s.Completed, s.Total))
	sb.WriteString(fmt.Sprintf("Streak: %d days (best %d)   Goals today: %d/3   Edition: %s\n",
		s.CurrentStreak, s.LongestStreak, s.GoalsDone, s.Progress.Version))

	sb.WriteString("\n" + theme.Title.Render("Phases") + "\n")
	for _, p := range s.Phases {
		mark := " "
		if p.Total > 0 && p.Completed == p.Total {
			mark = theme.Done.Render("✓")
		}
		sb.WriteString(fmt.Sprintf("%s %2d. %-28s %s %3d%%\n", mark, p.ID, truncate(p.Name, 28), m.bar.ViewAs(float64(p.Percentage)/100), p.Percentage))
	}

	sb.WriteString("\n" + theme.Title.Render("This week") + "\n")
	if len(s.WeekPending) == 0 {
		sb.WriteString(theme.Done.Render("All caught up.") + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("Pending: ") + strings.Join(s.WeekPending, ", ") + "\n")
	}
	return sb.String()
}

func (m Model) phraseCmd(dateKey string) tea.Cmd {
	return func() tea.Msg {
		phrase, err := m.port.Phrase(context.Background(), dateKey)
		return PhraseMsg{Phrase: phrase, Err: err}
	}
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
