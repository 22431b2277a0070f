package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akz4ol/gatewayops-go"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const watchInterval = 5 * time.Second

var tracesWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view of incoming traces",
	Long: `Poll the gateway every few seconds and show the latest traces.

Press q to quit, r to refresh immediately.`,
	RunE: runTracesWatch,
}

func init() {
	tracesCmd.AddCommand(tracesWatchCmd)
}

func runTracesWatch(cmd *cobra.Command, args []string) error {
	model := newWatchModel(gw, gatewayops.TraceFilter{
		MCPServer: tracesServer,
		Operation: tracesOperation,
		Status:    tracesStatus,
		Limit:     tracesLimit,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch error: %w", err)
	}
	return nil
}

type watchKeyMap struct {
	Quit    key.Binding
	Refresh key.Binding
}

// fetch results and the refresh timer arrive as messages.
type (
	tracesLoadedMsg struct {
		page *gatewayops.TracePage
		err  error
	}
	watchTickMsg time.Time
)

type watchModel struct {
	gw     *gatewayops.Client
	filter gatewayops.TraceFilter
	keys   watchKeyMap

	spinner spinner.Model
	loading bool
	page    *gatewayops.TracePage
	err     error
	updated time.Time
	width   int
}

func newWatchModel(gw *gatewayops.Client, filter gatewayops.TraceFilter) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = mutedStyle

	return watchModel{
		gw:      gw,
		filter:  filter,
		spinner: sp,
		loading: true,
		keys: watchKeyMap{
			Quit: key.NewBinding(
				key.WithKeys("q", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
			Refresh: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "refresh"),
			),
		},
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchTraces())
}

func (m watchModel) fetchTraces() tea.Cmd {
	gw, filter := m.gw, m.filter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), watchInterval)
		defer cancel()
		page, err := gw.Traces().List(ctx, filter)
		return tracesLoadedMsg{page: page, err: err}
	}
}

func watchTick() tea.Cmd {
	return tea.Tick(watchInterval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.fetchTraces()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tracesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.page = msg.page
			m.updated = time.Now()
		}
		return m, watchTick()

	case watchTickMsg:
		m.loading = true
		return m, m.fetchTraces()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GatewayOps traces"))
	if m.loading {
		b.WriteString("  " + m.spinner.View())
	} else if !m.updated.IsZero() {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  updated %s ago", formatAge(time.Since(m.updated)))))
	}
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.page == nil:
		b.WriteString(mutedStyle.Render("Loading..."))
		b.WriteString("\n")
	case len(m.page.Traces) == 0:
		b.WriteString(mutedStyle.Render("No traces yet"))
		b.WriteString("\n")
	default:
		b.WriteString(renderTraceRows(m.page.Traces))
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("q quit  r refresh"))
	return b.String()
}

func renderTraceRows(traces []gatewayops.Trace) string {
	serverWidth := 6 // "SERVER"
	opWidth := 9     // "OPERATION"
	for _, tr := range traces {
		if len(tr.MCPServer) > serverWidth {
			serverWidth = len(tr.MCPServer)
		}
		if len(tr.Operation) > opWidth {
			opWidth = len(tr.Operation)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-14s  %-*s  %-*s  %-8s  %-9s  %s\n",
		"ID", serverWidth, "SERVER", opWidth, "OPERATION", "STATUS", "DURATION", "AGE")
	for _, tr := range traces {
		// Pad before styling so escape codes don't skew the columns.
		status := statusStyle(tr.Status).Render(fmt.Sprintf("%-8s", tr.Status))
		fmt.Fprintf(&b, "%-14s  %-*s  %-*s  %s  %-9s  %s\n",
			truncate(tr.ID, 14), serverWidth, tr.MCPServer, opWidth, tr.Operation,
			status, formatDuration(tr.DurationMs), formatAge(time.Since(tr.StartTime)))
	}
	return b.String()
}
