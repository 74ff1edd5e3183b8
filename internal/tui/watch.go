// Package tui hosts the interactive notification watch screen.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gestloc/gestloc/internal/model"
	"github.com/gestloc/gestloc/internal/notify"
)

// feedMsg carries a fresh notification list pushed by the engine.
type feedMsg []model.Notification

// refreshDoneMsg signals a manual refresh cycle finished.
type refreshDoneMsg struct{}

// WatchModel is the Bubble Tea model for the live notification feed.
type WatchModel struct {
	engine  *notify.Engine
	updates chan []model.Notification

	notifications []model.Notification
	cursor        int
	spin          spinner.Model
	refreshing    bool
	statusMsg     string
	statusTime    time.Time
	windowWidth   int
	windowHeight  int
	quitting      bool
}

// NewWatchModel creates the watch model over a running engine. The updates
// channel is fed by the engine listener registered in Run.
func NewWatchModel(engine *notify.Engine, updates chan []model.Notification) WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return WatchModel{
		engine:       engine,
		updates:      updates,
		spin:         s,
		windowWidth:  80,
		windowHeight: 24,
	}
}

// Run wires the engine to a watch screen and blocks until the user quits.
// The engine's poll loop is started here and stopped on exit.
func Run(ctx context.Context, engine *notify.Engine, interval time.Duration) error {
	updates := make(chan []model.Notification, 16)

	unsubscribe := engine.AddListener(func(list []model.Notification) {
		select {
		case updates <- list:
		default:
			// A slow screen drops intermediate frames; the next push
			// carries the full current list anyway.
		}
	})
	defer unsubscribe()

	engine.StartPolling(ctx, interval)
	defer engine.StopPolling()

	p := tea.NewProgram(NewWatchModel(engine, updates), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init starts the spinner and the update subscription.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.waitForFeed())
}

// waitForFeed blocks on the listener channel and converts pushes to messages.
func (m WatchModel) waitForFeed() tea.Cmd {
	return func() tea.Msg {
		return feedMsg(<-m.updates)
	}
}

// Update handles messages
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case feedMsg:
		m.notifications = msg
		if m.cursor >= len(m.notifications) {
			m.cursor = len(m.notifications) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, m.waitForFeed()

	case refreshDoneMsg:
		m.refreshing = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.notifications)-1 {
			m.cursor++
		}

	case "enter":
		if n, ok := m.current(); ok {
			m.engine.ExecuteAction(n)
			m.setStatus("action: " + n.Title)
		}

	case "m":
		if n, ok := m.current(); ok {
			m.engine.MarkAsRead(n.ID)
			m.setStatus("lu: " + n.Title)
		}

	case "a":
		m.engine.MarkAllAsRead()
		m.setStatus("tout marqué lu")

	case "x", "d":
		if n, ok := m.current(); ok {
			m.engine.RemoveNotification(n.ID)
			m.setStatus("supprimé: " + n.Title)
		}

	case "r":
		if !m.refreshing {
			m.refreshing = true
			engine := m.engine
			return m, func() tea.Msg {
				engine.FetchNotifications(context.Background())
				return refreshDoneMsg{}
			}
		}
	}

	return m, nil
}

func (m WatchModel) current() (model.Notification, bool) {
	if m.cursor < 0 || m.cursor >= len(m.notifications) {
		return model.Notification{}, false
	}
	return m.notifications[m.cursor], true
}

func (m *WatchModel) setStatus(s string) {
	m.statusMsg = s
	m.statusTime = time.Now()
}

// View renders the feed
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	stats := m.engine.GetStats()
	header := fmt.Sprintf("Notifications (%d, %d non lues)", stats.Total, stats.Unread)
	if m.refreshing {
		header += "  " + m.spin.View()
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	if len(m.notifications) == 0 {
		b.WriteString(dimStyle.Render("Aucune notification."))
		b.WriteString("\n")
	}

	visible := m.windowHeight - 6
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.notifications) {
		end = len(m.notifications)
	}

	for i := start; i < end; i++ {
		n := m.notifications[i]

		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		marker := "●"
		lineStyle := unreadStyle
		if n.Read {
			marker = " "
			lineStyle = readStyle
		}

		line := fmt.Sprintf("%s %s %s  %s",
			marker,
			priorityBadge(n.Priority),
			lineStyle.Render(n.Title),
			dimStyle.Render(n.TimestampFR),
		)
		b.WriteString(cursor + line + "\n")

		if i == m.cursor {
			b.WriteString("    " + statusStyle.Render(n.Message) + "\n")
		}
	}

	if m.statusMsg != "" && time.Since(m.statusTime) < 3*time.Second {
		b.WriteString("\n" + statusStyle.Render(m.statusMsg) + "\n")
	}

	b.WriteString(footerStyle.Render(
		"↑/↓ naviguer · entrée agir · m lu · a tout lu · x supprimer · r rafraîchir · q quitter"))

	return b.String()
}

func priorityBadge(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return highStyle.Render("[haut]")
	case model.PriorityMedium:
		return mediumStyle.Render("[moy] ")
	default:
		return lowStyle.Render("[bas] ")
	}
}
