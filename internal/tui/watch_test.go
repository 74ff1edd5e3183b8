package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gestloc/gestloc/internal/model"
	"github.com/gestloc/gestloc/internal/notify"
)

// newTestModel builds a watch model over an idle engine. The engine has no
// token configured so it never reaches for the network.
func newTestModel() WatchModel {
	engine := notify.NewEngine(notify.Config{})
	updates := make(chan []model.Notification, 1)
	return NewWatchModel(engine, updates)
}

func makeNotification(id string, priority model.Priority, read bool) model.Notification {
	return model.Notification{
		ID:          id,
		Type:        model.NotifyOverdue,
		Priority:    priority,
		Title:       id,
		Message:     "message " + id,
		Timestamp:   time.Now(),
		TimestampFR: "aujourd'hui",
		Read:        read,
	}
}

func feed(t *testing.T, m WatchModel, list []model.Notification) WatchModel {
	t.Helper()
	result, _ := m.Update(feedMsg(list))
	return result.(WatchModel)
}

func TestFeedClampsCursor(t *testing.T) {
	m := newTestModel()
	m = feed(t, m, []model.Notification{
		makeNotification("a", model.PriorityHigh, false),
		makeNotification("b", model.PriorityLow, false),
		makeNotification("c", model.PriorityLow, true),
	})
	m.cursor = 2

	// A shorter feed pulls the cursor back in range.
	m = feed(t, m, []model.Notification{
		makeNotification("a", model.PriorityHigh, false),
	})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after shrink", m.cursor)
	}

	m = feed(t, m, nil)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 on empty feed", m.cursor)
	}
}

func TestKeyNavigationStaysInBounds(t *testing.T) {
	m := newTestModel()
	m = feed(t, m, []model.Notification{
		makeNotification("a", model.PriorityHigh, false),
		makeNotification("b", model.PriorityLow, false),
	})

	press := func(m WatchModel, key string) WatchModel {
		result, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
		return result.(WatchModel)
	}

	m = press(m, "k")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, up at top must stay at 0", m.cursor)
	}

	m = press(m, "j")
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1 after down", m.cursor)
	}

	m = press(m, "j")
	if m.cursor != 1 {
		t.Errorf("cursor = %d, down at bottom must stay at last row", m.cursor)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel()

	result, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = result.(WatchModel)
	if !m.quitting {
		t.Error("q must set quitting")
	}
	if cmd == nil {
		t.Fatal("q must produce the quit command")
	}
	if m.View() != "" {
		t.Error("a quitting model renders nothing")
	}
}

func TestViewShowsFeed(t *testing.T) {
	m := newTestModel()
	m = feed(t, m, []model.Notification{
		makeNotification("loyer-janvier", model.PriorityHigh, false),
		makeNotification("sauvegarde", model.PriorityLow, true),
	})

	view := m.View()
	for _, want := range []string{"Notifications", "loyer-janvier", "sauvegarde", "quitter"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	// The selected row shows its message line.
	if !strings.Contains(view, "message loyer-janvier") {
		t.Error("view must show the selected notification's message")
	}
}

func TestViewEmptyFeed(t *testing.T) {
	m := newTestModel()
	if !strings.Contains(m.View(), "Aucune notification.") {
		t.Error("empty feed must show the placeholder")
	}
}

func TestRefreshDoneClearsSpinner(t *testing.T) {
	m := newTestModel()
	m.refreshing = true

	result, _ := m.Update(refreshDoneMsg{})
	m = result.(WatchModel)
	if m.refreshing {
		t.Error("refreshDoneMsg must clear the refreshing flag")
	}
}
