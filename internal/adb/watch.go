package adb

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const watchInterval = 2 * time.Second

// WatchModel is the bubbletea model for the live device table.
type WatchModel struct {
	runner *Runner

	devices  []Device
	listErr  error
	lastPoll time.Time

	width    int
	height   int
	quitting bool
}

type devicesMsg struct {
	devices []Device
	err     error
	at      time.Time
}

type watchTickMsg time.Time

func watchTickCmd() tea.Cmd {
	return tea.Tick(watchInterval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m WatchModel) pollCmd() tea.Cmd {
	r := m.runner
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), r.Timeout())
		defer cancel()
		devices, err := ListDevices(ctx, r)
		return devicesMsg{devices: devices, err: err, at: time.Now()}
	}
}

// NewWatchModel creates a model polling devices through the given runner.
func NewWatchModel(r *Runner) WatchModel {
	return WatchModel{
		runner: r,
		width:  80,
		height: 24,
	}
}

// Init performs the first poll immediately.
func (m WatchModel) Init() tea.Cmd {
	return m.pollCmd()
}

// Update handles messages. Polls run one at a time: a new poll starts only
// after the previous result arrived and the next tick fires.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case devicesMsg:
		m.devices = msg.devices
		m.listErr = msg.err
		m.lastPoll = msg.at
		return m, watchTickCmd()

	case watchTickMsg:
		return m, m.pollCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			return m, m.pollCmd()
		}
	}

	return m, nil
}

var (
	watchTitleStyle  = lipgloss.NewStyle().Bold(true)
	watchHeaderStyle = lipgloss.NewStyle().Bold(true).Faint(true)
	watchOnlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	watchStaleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	watchFootStyle   = lipgloss.NewStyle().Faint(true)
)

// View renders the device table.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(watchTitleStyle.Render("adbhelper devices"))
	if !m.lastPoll.IsZero() {
		b.WriteString(watchFootStyle.Render(
			fmt.Sprintf("  refreshed %s", m.lastPoll.Format("15:04:05"))))
	}
	b.WriteString("\n\n")

	if m.listErr != nil {
		b.WriteString(watchStaleStyle.Render(fmt.Sprintf("error: %v", m.listErr)))
		b.WriteString("\n")
	} else if len(m.devices) == 0 {
		b.WriteString("(no devices)\n")
	} else {
		b.WriteString(watchHeaderStyle.Render(fmt.Sprintf(
			"%-24s %-12s %-16s %-8s %s", "SERIAL", "STATE", "MODEL", "ANDROID", "SDK")))
		b.WriteString("\n")
		for _, d := range m.devices {
			line := fmt.Sprintf("%-24s %-12s %-16s %-8s %s",
				d.Serial, d.State, d.Model, d.Android, d.SDK)
			if d.Online() {
				line = watchOnlineStyle.Render(line)
			} else {
				line = watchStaleStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(watchFootStyle.Render("r refresh · q quit"))
	b.WriteString("\n")
	return b.String()
}

// Watch runs the live device table until the user quits.
func Watch(r *Runner) error {
	p := tea.NewProgram(NewWatchModel(r), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
