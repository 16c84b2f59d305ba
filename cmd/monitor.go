// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vaktlabs/thyragauge/pkg/gauge"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Interactive live view of one gauge",
	Long: `Full-screen terminal UI: the pressure is polled once a second, and a
command line at the bottom sends raw commands (verb plus optional data,
e.g. "S 1" or "T") and shows the replies.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

// exchange is one raw command round trip shown in the history pane.
type exchange struct {
	at    time.Time
	sent  string
	reply string
	err   error
}

type monitorModel struct {
	client   *gauge.Client
	device   int
	connInfo string

	input    textinput.Model
	history  []exchange
	model    string
	pressure float64
	readErr  error
	width    int
	height   int
	quitting bool
}

type monitorTickMsg time.Time

type pressureMsg struct {
	value float64
	err   error
}

type modelNameMsg struct {
	name string
}

type exchangeMsg exchange

var (
	monitorTitleStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)
	monitorPressureStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.Color("42"))
	monitorErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	monitorDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	monitorSentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

func newMonitorModel(client *gauge.Client, device int, connInfo string) monitorModel {
	input := textinput.New()
	input.Placeholder = "verb [data], e.g. \"S 1\""
	input.CharLimit = 16
	input.Focus()

	return monitorModel{
		client:   client,
		device:   device,
		connInfo: connInfo,
		input:    input,
		width:    80,
		height:   24,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		textinput.Blink,
		m.fetchModelName(),
		m.fetchPressure(),
	)
}

func monitorTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return monitorTickMsg(t)
	})
}

func (m monitorModel) fetchModelName() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		name, err := client.Model(ctx)
		if err != nil {
			name = "?"
		}
		return modelNameMsg{name: name}
	}
}

func (m monitorModel) fetchPressure() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		value, err := client.Measure(ctx)
		return pressureMsg{value: value, err: err}
	}
}

func (m monitorModel) sendRaw(line string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		verb, data, ok := splitRawCommand(line)
		if !ok {
			return exchangeMsg{at: time.Now(), sent: line,
				err: fmt.Errorf("usage: <verb> [data]")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		reply, err := client.ReadData(ctx, verb, data)
		return exchangeMsg{at: time.Now(), sent: line, reply: reply, err: err}
	}
}

// splitRawCommand parses "verb [data]" where verb is one ASCII character.
func splitRawCommand(line string) (byte, string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || len(fields[0]) != 1 || len(fields) > 2 {
		return 0, "", false
	}
	data := ""
	if len(fields) == 2 {
		data = fields[1]
	}
	return fields[0][0], data, true
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			return m, m.sendRaw(line)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case monitorTickMsg:
		return m, m.fetchPressure()

	case pressureMsg:
		m.pressure = msg.value
		m.readErr = msg.err
		return m, monitorTick()

	case modelNameMsg:
		m.model = msg.name
		return m, nil

	case exchangeMsg:
		m.history = append(m.history, exchange(msg))
		if len(m.history) > 100 {
			m.history = m.history[1:]
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m monitorModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf(" Thyragauge Monitor | device %03d (%s) %s ",
		m.device, m.model, m.connInfo)
	b.WriteString(monitorTitleStyle.Render(title))
	b.WriteString("\n\n")

	if m.readErr != nil {
		b.WriteString(monitorErrStyle.Render(fmt.Sprintf("  pressure: %v", m.readErr)))
	} else {
		b.WriteString(monitorPressureStyle.Render(fmt.Sprintf("  %.4g mbar", m.pressure)))
	}
	b.WriteString("\n\n")

	// History pane, newest at the bottom, sized to the terminal.
	rows := m.height - 8
	if rows < 1 {
		rows = 1
	}
	start := 0
	if len(m.history) > rows {
		start = len(m.history) - rows
	}
	for _, ex := range m.history[start:] {
		stamp := monitorDimStyle.Render(ex.at.Format("15:04:05"))
		sent := monitorSentStyle.Render(fmt.Sprintf("> %s", ex.sent))
		if ex.err != nil {
			b.WriteString(fmt.Sprintf("  %s %s  %s\n", stamp, sent,
				monitorErrStyle.Render(ex.err.Error())))
		} else {
			b.WriteString(fmt.Sprintf("  %s %s  %q\n", stamp, sent, ex.reply))
		}
	}

	b.WriteString("\n  ")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(monitorDimStyle.Render("  enter: send  esc: quit"))
	return b.String()
}

func runMonitor(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	client := gauge.NewClient(conn, deviceID, gauge.WithClientLogger(logger))

	program := tea.NewProgram(newMonitorModel(client, deviceID, connInfo))
	_, err = program.Run()
	return err
}
