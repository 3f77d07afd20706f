package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/MusikAnimal/event-streams/internal/feed"
	"github.com/MusikAnimal/event-streams/internal/models"
)

// FeedResult reports why the feed view exited.
type FeedResult struct {
	ReopenOptions bool
}

// controllerUpdateMsg signals that the controller's snapshot changed.
type controllerUpdateMsg struct{}

// FeedModel is the live feed view: status line, throughput stats and the
// capped event table. It observes the controller through its update
// channel and pulls an immutable snapshot on each signal.
type FeedModel struct {
	controller *feed.Controller
	options    Options
	logger     *log.Logger

	layout  layoutState
	table   table.Model
	spinner spinner.Model
	gauge   progress.Model

	snap      feed.Snapshot
	maxRate   float64
	statusMsg string

	reopenOptions bool
	quitting      bool
}

// layoutState wraps Layout with an initialized marker so the first
// WindowSizeMsg wins over the default.
type layoutState struct {
	Layout
	ready bool
}

// NewFeedModel builds the feed view for one controller. The controller is
// expected to be freshly constructed and disconnected.
func NewFeedModel(controller *feed.Controller, options Options, logger *log.Logger) FeedModel {
	layout := DefaultLayout()

	columns := CalculateColumns(FeedColumns(), layout.TableWidth)
	t := table.New(
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(layout.TableHeight),
	)
	ApplyTableStyles(&t)

	gauge := progress.New(
		progress.WithGradient("#FFFFFF", "#00AFFF"),
		progress.WithColorProfile(termenv.TrueColor),
		progress.WithoutPercentage(),
	)
	gauge.Width = 30

	return FeedModel{
		controller: controller,
		options:    options,
		logger:     logger,
		layout:     layoutState{Layout: layout},
		table:      t,
		spinner:    NewAppSpinner(),
		gauge:      gauge,
		snap:       controller.Snapshot(),
	}
}

func (m FeedModel) Init() tea.Cmd {
	return tea.Batch(
		tea.WindowSize(),
		m.spinner.Tick,
		m.startFeed(),
		m.waitForUpdate(),
	)
}

// startFeed kicks the controller off as soon as the view is up.
func (m FeedModel) startFeed() tea.Cmd {
	return func() tea.Msg {
		if err := m.controller.Start(m.options.Filter); err != nil {
			m.logger.Error("start failed", "error", err)
		}
		return nil
	}
}

// waitForUpdate blocks on the controller's coalesced update channel.
func (m FeedModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		<-m.controller.Updates()
		return controllerUpdateMsg{}
	}
}

func (m FeedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = layoutState{Layout: NewLayout(msg.Width, msg.Height), ready: true}
		m.table.SetColumns(CalculateColumns(FeedColumns(), m.layout.TableWidth))
		m.table.SetHeight(m.layout.TableHeight)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case controllerUpdateMsg:
		m.refresh()
		return m, m.waitForUpdate()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m FeedModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		m.controller.Stop()
		return m, tea.Quit

	case "s":
		// Single start/stop toggle.
		if m.controller.State() == feed.Disconnected {
			if err := m.controller.Start(m.options.Filter); err != nil {
				m.statusMsg = err.Error()
			} else {
				m.statusMsg = ""
			}
		} else {
			m.controller.Stop()
		}
		return m, nil

	case "c":
		m.controller.Clear()
		m.statusMsg = ""
		return m, nil

	case "e":
		filename, err := ExportFeedSnapshot(m.controller.Snapshot())
		if err != nil {
			m.statusMsg = "export failed: " + err.Error()
		} else {
			m.statusMsg = "exported to " + filename
		}
		return m, nil

	case "o":
		// Options can only change between connections.
		if m.controller.State() == feed.Disconnected {
			m.reopenOptions = true
			m.quitting = true
			return m, tea.Quit
		}
		m.statusMsg = "stop the feed first (s) to change options"
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// refresh pulls the latest snapshot and rebuilds the table rows.
func (m *FeedModel) refresh() {
	m.snap = m.controller.Snapshot()
	if rate := m.snap.Sample.Average; rate > m.maxRate {
		m.maxRate = rate
	}

	rows := make([]table.Row, len(m.snap.Records))
	for i, rec := range m.snap.Records {
		rows[i] = table.Row{
			rec.Time,
			rec.Type,
			rec.Flags,
			rec.Wiki,
			rec.User,
			rec.Title,
			rec.Summary,
		}
	}
	m.table.SetRows(rows)
}

func (m FeedModel) View() string {
	if m.quitting {
		return ""
	}

	layout := m.layout.Layout
	var content strings.Builder

	content.WriteString(ViewHeader("EventStreams — recent changes", layout.InnerWidth))
	content.WriteString(m.statusLine())
	content.WriteString("\n")
	content.WriteString(m.statsLine())
	content.WriteString("\n\n")
	content.WriteString(m.table.View())

	if m.statusMsg != "" {
		content.WriteString("\n")
		content.WriteString(AccentStyle.Render(m.statusMsg))
	}

	help := "s: start/stop | c: clear | e: export | o: options | q: quit"
	return BorderedBox(layout).Render(content.String()) + "\n" + HintStyle.Render(help)
}

func (m FeedModel) statusLine() string {
	switch m.snap.State {
	case feed.Connecting:
		return m.spinner.View() + StatusInfoStyle.Render("Connecting...")
	case feed.Connected:
		return StatusSuccessStyle.Render("Connected")
	}
	line := StatusDangerStyle.Render("Not connected")
	if m.snap.Err != nil {
		line += DimStyle.Render(" — " + m.snap.Err.Error())
	}
	return line
}

func (m FeedModel) statsLine() string {
	shown := len(m.snap.Records)
	limit := models.ClampLimit(m.options.Filter.Limit)
	stats := fmt.Sprintf("Showing %d of %d matched events (cap %d)", shown, m.snap.Total, limit)

	rate := m.snap.Sample.Average
	line := NormalStyle.Render(stats) +
		DimStyle.Render("  |  avg ") +
		AccentStyle.Render(m.snap.Sample.AverageString()) +
		DimStyle.Render("/interval  ")

	pct := 0.0
	if m.maxRate > 0 {
		pct = rate / m.maxRate
	}
	return line + m.gauge.ViewAs(pct)
}

// RunFeed runs the live feed view until the user quits or asks for the
// options form. The controller is stopped before this returns.
func RunFeed(controller *feed.Controller, options Options, logger *log.Logger) (FeedResult, error) {
	model := NewFeedModel(controller, options, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	controller.Stop()
	if err != nil {
		return FeedResult{}, fmt.Errorf("feed view error: %w", err)
	}
	final := finalModel.(FeedModel)
	return FeedResult{ReopenOptions: final.reopenOptions}, nil
}
