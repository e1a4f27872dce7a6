// Package tui renders the fraud dashboard in a terminal with bubbletea.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fraudlens/fraudlens/internal/simulator"
)

// DefaultRefresh is how often the view polls its source.
const DefaultRefresh = time.Second

const fetchTimeout = 5 * time.Second

type snapshotMsg struct {
	snap simulator.Snapshot
}

type errMsg struct {
	err error
}

type tickMsg time.Time

// Model is the bubbletea model of the dashboard.
type Model struct {
	source  Source
	refresh time.Duration
	styles  Styles

	spinner spinner.Model
	txTable table.Model

	snap    simulator.Snapshot
	loaded  bool
	lastErr error
	width   int
}

// NewModel creates a model that polls source every refresh.
func NewModel(source Source, refresh time.Duration) Model {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	tbl := table.New(
		table.WithColumns(transactionColumns()),
		table.WithHeight(simulator.MaxTransactions+1),
		table.WithFocused(false),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Foreground(ColorInfo).Bold(true)
	ts.Selected = lipgloss.NewStyle()
	tbl.SetStyles(ts)

	return Model{
		source:  source,
		refresh: refresh,
		styles:  NewStyles(),
		spinner: sp,
		txTable: tbl,
	}
}

// Init starts the spinner and the first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m Model) fetch() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		snap, err := source.Snapshot(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return snapshotMsg{snap: snap}
	}
}

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles keys, fetch results and refresh ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.fetch()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case snapshotMsg:
		m.snap = msg.snap
		m.loaded = true
		m.lastErr = nil
		m.txTable.SetRows(transactionRows(msg.snap.Transactions))
		return m, m.scheduleTick()

	case errMsg:
		m.lastErr = msg.err
		return m, m.scheduleTick()

	case tickMsg:
		return m, m.fetch()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders every widget.
func (m Model) View() string {
	st := m.styles

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		st.Title.Render("FraudLens"),
		st.Subtitle.Render(m.source.Name()),
	)

	if !m.loaded {
		body := m.spinner.View() + " loading snapshot..."
		if m.lastErr != nil {
			body = st.Error.Render("error: " + m.lastErr.Error())
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, "", body, st.Footer.Render("q quit"))
	}

	txPanel := st.Panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		st.PanelHead.Render("Live transaction monitor"),
		m.txTable.View(),
	))
	alertPanel := st.Panel.Render(renderAlerts(st, m.snap.Alerts, 5))
	riskPanel := st.Panel.Render(renderRisk(st, m.snap.Risk))
	modelPanel := st.Panel.Render(renderModels(st, m.snap.Models))
	chainPanel := st.Panel.Render(renderChains(st, m.snap.Chains))

	status := "updated " + m.snap.GeneratedAt.Format("15:04:05")
	if m.lastErr != nil {
		status = st.Error.Render("stale: " + m.lastErr.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		renderOverview(st, m.snap.Overview),
		lipgloss.JoinHorizontal(lipgloss.Top, txPanel, alertPanel),
		lipgloss.JoinHorizontal(lipgloss.Top, riskPanel, modelPanel),
		chainPanel,
		st.Footer.Render(status+"  ·  r refresh  ·  q quit"),
	)
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(source Source, refresh time.Duration) error {
	_, err := tea.NewProgram(NewModel(source, refresh), tea.WithAltScreen()).Run()
	return err
}
