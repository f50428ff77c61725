package goals

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	progressdto "jornada/internal/modules/progress/dto"
	"jornada/internal/ui/components"
)

type fakePort struct {
	toggled  []string
	adjusted map[string]int
	reminder string
}

func (f *fakePort) ToggleGoal(_ context.Context, kind string) (progressdto.CommitOutput, error) {
	f.toggled = append(f.toggled, kind)
	return progressdto.CommitOutput{SyncFor: 800 * time.Millisecond}, nil
}

func (f *fakePort) AdjustGoal(_ context.Context, kind string, delta int) (progressdto.CommitOutput, error) {
	if f.adjusted == nil {
		f.adjusted = map[string]int{}
	}
	f.adjusted[kind] += delta
	return progressdto.CommitOutput{SyncFor: 800 * time.Millisecond}, nil
}

func (f *fakePort) ToggleReminder(_ context.Context, id string) (progressdto.ReminderOutput, error) {
	f.reminder = id
	return progressdto.ReminderOutput{ID: id}, nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeysIgnoredBeforeLoad(t *testing.T) {
	t.Parallel()

	m := New(&fakePort{})
	_, cmd := m.Update(key("space"))
	assert.Nil(t, cmd)
}

func TestToggleAndAdjustEmitCommits(t *testing.T) {
	t.Parallel()

	port := &fakePort{}
	m := New(port)
	m.SetProgress(progressdto.ProgressOutput{}, true)

	m, cmd := m.Update(key("space"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(components.CommittedMsg)
	require.True(t, ok)
	assert.Equal(t, "goal reading", msg.Label)
	assert.Equal(t, 800*time.Millisecond, msg.SyncFor)
	assert.Equal(t, []string{"reading"}, port.toggled)

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	_, cmd = m.Update(key("-"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, map[string]int{"extra": -1}, port.adjusted)
}

func TestEnterOnReminderTogglesIt(t *testing.T) {
	t.Parallel()

	port := &fakePort{}
	m := New(port)
	m.SetProgress(progressdto.ProgressOutput{
		Reminders: []progressdto.ReminderOutput{{ID: "r-1", Time: "07:00", Type: "prayer"}},
	}, true)

	for range rows {
		m, _ = m.Update(key("down"))
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, "r-1", port.reminder)
}
