package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	contentdto "jornada/internal/modules/content/dto"
	dictionarydto "jornada/internal/modules/dictionary/dto"
	plandto "jornada/internal/modules/plan/dto"
	progressdto "jornada/internal/modules/progress/dto"
	apperrors "jornada/internal/platform/errors"
	"jornada/internal/ui/components"
	"jornada/internal/ui/theme"
	badgesview "jornada/internal/ui/views/badges"
	dashboardview "jornada/internal/ui/views/dashboard"
	dictionaryview "jornada/internal/ui/views/dictionary"
	goalsview "jornada/internal/ui/views/goals"
	readingview "jornada/internal/ui/views/reading"
	scheduleview "jornada/internal/ui/views/schedule"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type planPort interface {
	Today(ctx context.Context) (plandto.TodayOutput, error)
	Quarters(ctx context.Context) ([]plandto.QuarterOutput, error)
	Schedule(ctx context.Context, quarter string) ([]plandto.EntryOutput, error)
}

type progressPort interface {
	Load(ctx context.Context) (progressdto.ProgressOutput, error)
	Status(ctx context.Context) (progressdto.StatusOutput, error)
	Complete(ctx context.Context, dateKey, reflection string) (progressdto.CompleteOutput, error)
	ToggleGoal(ctx context.Context, kind string) (progressdto.CommitOutput, error)
	AdjustGoal(ctx context.Context, kind string, delta int) (progressdto.CommitOutput, error)
	SetVersion(ctx context.Context, edition string) (progressdto.CommitOutput, error)
	Badges(ctx context.Context) ([]progressdto.BadgeOutput, error)
	AddReminder(ctx context.Context, at, label, kind string) (progressdto.ReminderOutput, error)
	ToggleReminder(ctx context.Context, reminderID string) (progressdto.ReminderOutput, error)
}

type contentPort interface {
	Read(ctx context.Context, dateKey, edition string) (contentdto.ReadingOutput, error)
	Devotional(ctx context.Context, dateKey string) (contentdto.DevotionalOutput, error)
	Messiah(ctx context.Context, dateKey string) (contentdto.MessiahOutput, error)
	Phrase(ctx context.Context, dateKey string) (contentdto.PhraseOutput, error)
	Download(ctx context.Context, dateKey string) (contentdto.DownloadOutput, error)
}

type dictionaryPort interface {
	Search(ctx context.Context, query string) ([]dictionarydto.TermOutput, error)
	Lookup(ctx context.Context, term string) (dictionarydto.TermOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabSchedule
	tabReading
	tabGoals
	tabBadges
	tabDictionary
	tabCount
)

var tabLabels = [tabCount]string{
	"Dashboard", "Schedule", "Reading", "Goals", "Badges", "Dictionary",
}

// ─── async messages ───────────────────────────────────────────────────────────

type progressLoadedMsg struct {
	progress progressdto.ProgressOutput
	err      error
}

type syncDoneMsg struct{ seq int }

type downloadedMsg struct {
	out contentdto.DownloadOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab        key.Binding
	Help       key.Binding
	Palette    key.Binding
	Quit       key.Binding
	Enter      key.Binding
	Complete   key.Binding
	Devotional key.Binding
	Messiah    key.Binding
	Download   key.Binding
	Quarter    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open reading")),
		Complete:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "mark read")),
		Devotional: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "devotional")),
		Messiah:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "messiah")),
		Download:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "download")),
		Quarter:    key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "quarter")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Quarter},
		{k.Complete, k.Devotional, k.Messiah, k.Download},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes tabs, runs the palette and
// owns the status bar with its syncing indicator and persistence notice.
type Model struct {
	progress progressPort
	content  contentPort

	dashView  dashboardview.Model
	schedView scheduleview.Model
	readView  readingview.Model
	goalsView goalsview.Model
	badgeView badgesview.Model
	dictView  dictionaryview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	syncing   bool
	syncSeq   int
	notice    string
	width     int
	height    int
}

func NewModel(plan planPort, progress progressPort, content contentPort, dictionary dictionaryPort) Model {
	return Model{
		progress:  progress,
		content:   content,
		dashView:  dashboardview.New(dashboardBridge{plan: plan, progress: progress, content: content}),
		schedView: scheduleview.New(plan),
		readView:  readingview.New(content),
		goalsView: goalsview.New(progress),
		badgeView: badgesview.New(progress),
		dictView:  dictionaryview.New(dictionary),
		activeTab: tabDashboard,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashView.Init(),
		m.schedView.Init(),
		m.badgeView.Init(),
		m.dictView.Init(),
		m.loadProgressCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.notice != "" {
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "enter", "esc":
				m.notice = ""
			case "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}
	}

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cmd
		}
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case progressLoadedMsg:
		m.goalsView.SetProgress(msg.progress, msg.err == nil)
		if msg.err == nil {
			cmds = append(cmds, m.schedView.SetCompleted(msg.progress.CompletedDates))
		}
		return m, tea.Batch(cmds...)

	case components.CommittedMsg:
		return m.handleCommit(msg)

	case syncDoneMsg:
		if msg.seq == m.syncSeq {
			m.syncing = false
		}
		return m, nil

	case downloadedMsg:
		if msg.err != nil {
			m.status = "download: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("saved offline: %s (%s)", msg.out.Reference, msg.out.Edition)
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case spinner.TickMsg:
		var c1, c2, c3 tea.Cmd
		m.dashView, c1 = m.dashView.Update(msg)
		m.readView, c2 = m.readView.Update(msg)
		m.dictView, c3 = m.dictView.Update(msg)
		return m, tea.Batch(append(cmds, c1, c2, c3)...)

	case readingview.OpenedMsg:
		switch {
		case errors.Is(msg.Err, apperrors.ErrPersistence):
			m.notice = persistenceNotice(msg.Err)
		case msg.Err != nil:
			m.status = "reading: " + msg.Err.Error()
		case msg.Result.Fallback:
			m.status = "reading: offline and not downloaded"
		default:
			m.status = "reading: " + msg.Result.Reading
		}
		var cmd tea.Cmd
		m.readView, cmd = m.readView.Update(msg)
		return m, cmd

	case readingview.DevotionalMsg:
		if errors.Is(msg.Err, apperrors.ErrPersistence) {
			m.notice = persistenceNotice(msg.Err)
		}
		var cmd tea.Cmd
		m.readView, cmd = m.readView.Update(msg)
		return m, cmd

	case readingview.MessiahMsg, dashboardview.LoadedMsg, dashboardview.PhraseMsg,
		scheduleview.QuartersLoadedMsg, scheduleview.EntriesLoadedMsg,
		badgesview.LoadedMsg, dictionaryview.SearchMsg, dictionaryview.LookupMsg:
		return m.routeToOwner(msg)

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "enter":
			switch m.activeTab {
			case tabDashboard:
				return m, m.openReading("")
			case tabSchedule:
				if k, ok := m.schedView.SelectedKey(); ok {
					return m, m.openReading(k)
				}
			}
		case "c":
			if k, ok := m.focusKey(); ok && m.activeTab <= tabReading {
				return m, m.completeCmd(k, "")
			}
		case "d":
			if m.activeTab == tabReading {
				if k, ok := m.readView.CurrentKey(); ok {
					return m, m.readView.LoadDevotional(k)
				}
			}
		case "m":
			if m.activeTab == tabReading {
				if k, ok := m.readView.CurrentKey(); ok {
					return m, m.readView.LoadMessiah(k)
				}
			}
		case "w":
			if k, ok := m.focusKey(); ok && m.activeTab <= tabReading {
				return m, m.downloadCmd(k)
			}
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabDashboard:
		m.dashView, tabCmd = m.dashView.Update(msg)
	case tabSchedule:
		m.schedView, tabCmd = m.schedView.Update(msg)
	case tabReading:
		m.readView, tabCmd = m.readView.Update(msg)
	case tabGoals:
		m.goalsView, tabCmd = m.goalsView.Update(msg)
	case tabBadges:
		m.badgeView, tabCmd = m.badgeView.Update(msg)
	case tabDictionary:
		m.dictView, tabCmd = m.dictView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// routeToOwner delivers an async result to the view that requested it,
// whichever tab is active.
func (m Model) routeToOwner(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.(type) {
	case readingview.MessiahMsg:
		m.readView, cmd = m.readView.Update(msg)
	case dashboardview.LoadedMsg, dashboardview.PhraseMsg:
		m.dashView, cmd = m.dashView.Update(msg)
	case scheduleview.QuartersLoadedMsg, scheduleview.EntriesLoadedMsg:
		m.schedView, cmd = m.schedView.Update(msg)
	case badgesview.LoadedMsg:
		m.badgeView, cmd = m.badgeView.Update(msg)
	case dictionaryview.SearchMsg, dictionaryview.LookupMsg:
		m.dictView, cmd = m.dictView.Update(msg)
	}
	return m, cmd
}

func (m Model) handleCommit(msg components.CommittedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil && !errors.Is(msg.Err, apperrors.ErrPersistence) {
		m.status = msg.Label + ": " + msg.Err.Error()
		return m, nil
	}
	if msg.Err != nil {
		m.notice = persistenceNotice(msg.Err)
	} else {
		m.status = msg.Label + " saved"
		if len(msg.NewBadges) > 0 {
			m.status = "new badge: " + strings.Join(msg.NewBadges, ", ")
		}
	}
	cmds := []tea.Cmd{m.refreshCmd()}
	if msg.Err == nil && msg.SyncFor > 0 {
		m.syncSeq++
		m.syncing = true
		seq := m.syncSeq
		cmds = append(cmds, tea.Tick(msg.SyncFor, func(time.Time) tea.Msg { return syncDoneMsg{seq: seq} }))
	}
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.notice != "":
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			theme.Notice.Width(min(m.width-4, 70)).Render(m.notice+"\n\n"+theme.Muted.Render("enter: dismiss")))
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabSchedule:
		return m.schedView.View()
	case tabReading:
		return m.readView.View()
	case tabGoals:
		return m.goalsView.View()
	case tabBadges:
		return m.badgeView.View()
	case tabDictionary:
		return m.dictView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "jornada  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.syncing {
		left = theme.Sync.Render("⟳ syncing…") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	arg := func(i int) string {
		if len(parts) > i {
			return parts[i]
		}
		return ""
	}
	rest := func(i int) string {
		if len(parts) <= i {
			return ""
		}
		return strings.Join(parts[i:], " ")
	}
	current, _ := m.focusKey()

	switch parts[0] {
	case "reading:open":
		return m, m.openReading(arg(1))

	case "reading:complete":
		key := current
		if key == "" {
			m.status = "no reading selected"
			return m, nil
		}
		return m, m.completeCmd(key, rest(1))

	case "devotional":
		m.activeTab = tabReading
		key := arg(1)
		if key == "" {
			key = current
		}
		return m, m.readView.LoadDevotional(key)

	case "messiah":
		m.activeTab = tabReading
		key := arg(1)
		if key == "" {
			key = current
		}
		return m, m.readView.LoadMessiah(key)

	case "download":
		key := arg(1)
		if key == "" {
			key = current
		}
		return m, m.downloadCmd(key)

	case "version:set":
		if arg(1) == "" {
			m.status = "usage: version:set <ARC|KJV|SCOFIELD>"
			return m, nil
		}
		return m, m.commitCmd("version", func(ctx context.Context) (progressdto.CommitOutput, error) {
			return m.progress.SetVersion(ctx, arg(1))
		})

	case "goal:toggle":
		if arg(1) == "" {
			m.status = "usage: goal:toggle <reading|prayer|extra>"
			return m, nil
		}
		return m, m.commitCmd("goal "+arg(1), func(ctx context.Context) (progressdto.CommitOutput, error) {
			return m.progress.ToggleGoal(ctx, arg(1))
		})

	case "goal:adjust":
		delta, err := strconv.Atoi(arg(2))
		if arg(1) == "" || err != nil {
			m.status = "usage: goal:adjust <reading|prayer|extra> <delta>"
			return m, nil
		}
		return m, m.commitCmd("goal "+arg(1), func(ctx context.Context) (progressdto.CommitOutput, error) {
			return m.progress.AdjustGoal(ctx, arg(1), delta)
		})

	case "reminder:add":
		if len(parts) < 4 {
			m.status = "usage: reminder:add <HH:mm> <prayer|reading> <label>"
			return m, nil
		}
		progress := m.progress
		at, kind, label := arg(1), arg(2), rest(3)
		return m, func() tea.Msg {
			_, err := progress.AddReminder(context.Background(), at, label, kind)
			return components.CommittedMsg{Label: "reminder", Err: err}
		}

	case "dict":
		m.activeTab = tabDictionary
		return m, m.dictView.Lookup(rest(1))

	case "refresh":
		m.status = "refreshing"
		return m, m.refreshCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// focusKey is the reading the user is looking at: the open reading on the
// Reading tab, the selection on Schedule, otherwise today's entry.
func (m Model) focusKey() (string, bool) {
	switch m.activeTab {
	case tabReading:
		if k, ok := m.readView.CurrentKey(); ok {
			return k, true
		}
	case tabSchedule:
		if k, ok := m.schedView.SelectedKey(); ok {
			return k, true
		}
	}
	return m.dashView.TodayKey()
}

func (m *Model) openReading(dateKey string) tea.Cmd {
	m.activeTab = tabReading
	return m.readView.Open(dateKey)
}

func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabSchedule:
		return m.schedView.Filtering()
	case tabDictionary:
		return m.dictView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.dashView, _ = m.dashView.Update(sz)
	m.schedView, _ = m.schedView.Update(sz)
	m.readView, _ = m.readView.Update(sz)
	m.goalsView, _ = m.goalsView.Update(sz)
	m.badgeView, _ = m.badgeView.Update(sz)
	m.dictView, _ = m.dictView.Update(sz)
}

func persistenceNotice(err error) string {
	return theme.Hot.Render("Could not save your progress.") + "\n\n" +
		"Your changes are kept for this session but were not written to disk.\n" +
		theme.Muted.Render(err.Error())
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) refreshCmd() tea.Cmd {
	return tea.Batch(m.dashView.Refresh(), m.badgeView.Refresh(), m.loadProgressCmd())
}

func (m Model) loadProgressCmd() tea.Cmd {
	progress := m.progress
	return func() tea.Msg {
		out, err := progress.Load(context.Background())
		return progressLoadedMsg{progress: out, err: err}
	}
}

func (m Model) commitCmd(label string, fn func(context.Context) (progressdto.CommitOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := fn(context.Background())
		return components.CommittedMsg{Label: label, SyncFor: out.SyncFor, Err: err}
	}
}

func (m Model) completeCmd(dateKey, reflection string) tea.Cmd {
	progress := m.progress
	return func() tea.Msg {
		out, err := progress.Complete(context.Background(), dateKey, reflection)
		return components.CommittedMsg{Label: "reading " + dateKey, SyncFor: out.SyncFor, NewBadges: out.NewBadges, Err: err}
	}
}

func (m Model) downloadCmd(dateKey string) tea.Cmd {
	content := m.content
	return func() tea.Msg {
		out, err := content.Download(context.Background(), dateKey)
		return downloadedMsg{out: out, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type dashboardBridge struct {
	plan     planPort
	progress progressPort
	content  contentPort
}

func (b dashboardBridge) Today(ctx context.Context) (plandto.TodayOutput, error) {
	return b.plan.Today(ctx)
}

func (b dashboardBridge) Status(ctx context.Context) (progressdto.StatusOutput, error) {
	return b.progress.Status(ctx)
}

func (b dashboardBridge) Phrase(ctx context.Context, dateKey string) (contentdto.PhraseOutput, error) {
	return b.content.Phrase(ctx, dateKey)
}
