package reading

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	contentdto "jornada/internal/modules/content/dto"
	"jornada/internal/ui/theme"
)

type Port interface {
	Read(ctx context.Context, dateKey, edition string) (contentdto.ReadingOutput, error)
	Devotional(ctx context.Context, dateKey string) (contentdto.DevotionalOutput, error)
	Messiah(ctx context.Context, dateKey string) (contentdto.MessiahOutput, error)
}

// OpenedMsg is sent when a reading has been opened (or failed to open).
type OpenedMsg struct {
	Result contentdto.ReadingOutput
	Err    error
}

type DevotionalMsg struct {
	Result contentdto.DevotionalOutput
	Err    error
}

type MessiahMsg struct {
	Result contentdto.MessiahOutput
	Err    error
}

type Model struct {
	port       Port
	viewport   viewport.Model
	spinner    spinner.Model
	renderer   *glamour.TermRenderer
	result     contentdto.ReadingOutput
	devotional contentdto.DevotionalOutput
	messiah    contentdto.MessiahOutput
	notice     string
	busy       string
	width      int
	height     int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)
	return Model{port: port, viewport: viewport.New(0, 0), spinner: sp, renderer: r}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.viewport.SetContent(m.renderContent())

	case OpenedMsg:
		m.busy = ""
		if msg.Err != nil && msg.Result.DateKey == "" {
			m.notice = "Error: " + msg.Err.Error()
		} else {
			m.notice = ""
			if msg.Result.DateKey != m.result.DateKey {
				m.devotional = contentdto.DevotionalOutput{}
				m.messiah = contentdto.MessiahOutput{}
			}
			m.result = msg.Result
		}
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()

	case DevotionalMsg:
		m.busy = ""
		if msg.Err != nil && msg.Result.Title == "" {
			m.notice = "Could not generate the devotional. Try again later."
		} else {
			m.notice = ""
			m.devotional = msg.Result
		}
		m.viewport.SetContent(m.renderContent())

	case MessiahMsg:
		m.busy = ""
		if msg.Err != nil {
			m.notice = "Error: " + msg.Err.Error()
		} else {
			m.messiah = msg.Result
		}
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.busy != "" {
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
	header := m.renderHeader()
	vpHeight := m.height - lipgloss.Height(header) - 1
	if vpHeight < 1 {
		vpHeight = 1
	}
	if m.busy != "" && m.result.DateKey == "" {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.Place(m.width, vpHeight, lipgloss.Center, lipgloss.Center, m.spinner.View()+" "+m.busy))
	}
	vp := m.viewport
	vp.Height = vpHeight
	return lipgloss.JoinVertical(lipgloss.Left, header, vp.View(), m.renderFooter())
}

// Busy reports whether a request is in flight; triggers are ignored until
// it completes.
func (m Model) Busy() bool { return m.busy != "" }

// CurrentKey is the date key of the open reading.
func (m Model) CurrentKey() (string, bool) {
	return m.result.DateKey, m.result.DateKey != ""
}

// Open loads dateKey (today when empty). The returned Cmd produces an OpenedMsg.
func (m *Model) Open(dateKey string) tea.Cmd {
	if m.Busy() {
		return nil
	}
	m.busy = "Opening reading…"
	port := m.port
	return tea.Batch(func() tea.Msg {
		result, err := port.Read(context.Background(), dateKey, "")
		return OpenedMsg{Result: result, Err: err}
	}, m.spinner.Tick)
}

func (m *Model) LoadDevotional(dateKey string) tea.Cmd {
	if m.Busy() {
		return nil
	}
	m.busy = "Preparing devotional…"
	port := m.port
	return tea.Batch(func() tea.Msg {
		result, err := port.Devotional(context.Background(), dateKey)
		return DevotionalMsg{Result: result, Err: err}
	}, m.spinner.Tick)
}

func (m *Model) LoadMessiah(dateKey string) tea.Cmd {
	if m.Busy() {
		return nil
	}
	m.busy = "Tracing the scarlet thread…"
	port := m.port
	return tea.Batch(func() tea.Msg {
		result, err := port.Messiah(context.Background(), dateKey)
		return MessiahMsg{Result: result, Err: err}
	}, m.spinner.Tick)
}

func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-3, 1)
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.width),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) renderHeader() string {
	if m.result.DateKey == "" {
		return theme.Title.Render("Reading") +
			theme.Muted.Render("  Open today's reading with enter, or pick one in Schedule") + "\n"
	}
	r := m.result
	parts := []string{
		theme.Title.Render(r.Reading),
		theme.Muted.Render(r.DateKey),
		theme.Muted.Render(r.PhaseName),
	}
	if !r.IsMeditationDay {
		parts = append(parts, theme.Muted.Render("["+r.Edition+"]"))
	}
	if r.Cached {
		parts = append(parts, theme.Done.Render("offline"))
	}
	if m.busy != "" {
		parts = append(parts, m.spinner.View()+" "+theme.Muted.Render(m.busy))
	}
	return strings.Join(parts, "  ") + "\n"
}

func (m Model) renderFooter() string {
	keys := "c: complete  m: messiah  w: download"
	if m.result.IsMeditationDay {
		keys = "c: complete  d: devotional"
	}
	return theme.Muted.Render(fmt.Sprintf("%3.0f%%  %s", m.viewport.ScrollPercent()*100, keys))
}

func (m Model) renderContent() string {
	var md strings.Builder
	r := m.result
	if m.notice != "" {
		md.WriteString("> " + m.notice + "\n\n")
	}
	if r.DateKey == "" {
		return m.render(md.String())
	}
	fmt.Fprintf(&md, "# %s\n\n_%s_\n\n", r.Reading, r.Focus)
	if r.IsMeditationDay {
		md.WriteString("**Dia de Meditação.** Descanse e revise as leituras da semana.\n\n")
	} else {
		md.WriteString(r.Text + "\n\n")
	}
	if d := m.devotional; d.Title != "" {
		fmt.Fprintf(&md, "---\n\n## %s\n\n> %s\n\n%s\n\n", d.Title, d.Verse, d.Reflection)
		for _, p := range d.PracticalPoints {
			md.WriteString("- " + p + "\n")
		}
		fmt.Fprintf(&md, "\n**Oração:** %s\n\n", d.Prayer)
	}
	if m.messiah.Text != "" {
		fmt.Fprintf(&md, "---\n\n## Fio Escarlate\n\n%s\n", m.messiah.Text)
	}
	return m.render(md.String())
}

func (m Model) render(markdown string) string {
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(markdown); err == nil {
			return rendered
		}
	}
	return markdown
}
