// Package ui implements the live latch-contention monitor rendered by
// the sixlatch demo binary.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sixlatch/pkg/concurrency/latch"
)

// StatsProvider supplies the current latch-table counters on each
// refresh tick.
type StatsProvider func() latch.Stats

const refreshInterval = 250 * time.Millisecond

type tickMsg time.Time

// Model is the bubbletea model for the contention monitor.
type Model struct {
	provider StatsProvider
	table    table.Model
	stats    latch.Stats
	start    time.Time
}

// NewModel creates a monitor model reading counters from provider.
func NewModel(provider StatsProvider) Model {
	columns := []table.Column{
		{Title: "Mode", Width: 10},
		{Title: "Acquired", Width: 12},
		{Title: "Try failed", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(5),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(AccentColor).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(MutedColor).
		BorderBottom(true)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)

	return Model{
		provider: provider,
		table:    t,
		start:    time.Now(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles key presses and refresh ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		m.stats = m.provider()
		m.table.SetRows([]table.Row{
			{"read", fmt.Sprint(m.stats.Reads), fmt.Sprint(m.stats.ReadFailures)},
			{"intent", fmt.Sprint(m.stats.Intents), fmt.Sprint(m.stats.IntentFailures)},
			{"write", fmt.Sprint(m.stats.Writes), fmt.Sprint(m.stats.WriteFailures)},
		})
		return m, tick()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the monitor.
func (m Model) View() string {
	title := TitleStyle.Render("sixlatch contention monitor")

	elapsed := time.Since(m.start).Round(time.Second)
	summary := fmt.Sprintf(
		"%s  pinned pages %s   pins %s   uptime %s",
		HeaderStyle.Render("table"),
		StatValueStyle.Render(fmt.Sprint(m.stats.PinnedPages)),
		StatValueStyle.Render(fmt.Sprint(m.stats.Pins)),
		StatValueStyle.Render(elapsed.String()),
	)

	upgrades := fmt.Sprintf(
		"%s  ok %s   conflict %s",
		HeaderStyle.Render("upgrades"),
		StatValueStyle.Render(fmt.Sprint(m.stats.Upgrades)),
		WarnValueStyle.Render(fmt.Sprint(m.stats.UpgradeFailures)),
	)

	relocks := fmt.Sprintf(
		"%s   hit %s   stale %s",
		HeaderStyle.Render("relocks"),
		StatValueStyle.Render(fmt.Sprint(m.stats.RelockHits)),
		WarnValueStyle.Render(fmt.Sprint(m.stats.RelockMisses)),
	)

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		summary,
		"",
		BorderStyle.Render(m.table.View()),
		upgrades,
		relocks,
	)

	help := HelpStyle.Render("q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}
