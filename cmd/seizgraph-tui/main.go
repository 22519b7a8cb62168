// Command seizgraph-tui animates a rumor-diffusion scenario in the
// terminal, advancing the model one step per tick.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfalcone/seizgraph/pkg/config"
	"github.com/mfalcone/seizgraph/pkg/seiz"
	"github.com/mfalcone/seizgraph/pkg/visualization"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1).
			MarginLeft(2)

	chartBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1).
			MarginLeft(2)

	finishedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)

	susceptibleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(visualization.ColorSusceptible))
	exposedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(visualization.ColorExposed))
	infectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(visualization.ColorInfected))
	skepticStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(visualization.ColorSkeptic))
)

type keyMap struct {
	Pause key.Binding
	Reset key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Pause: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pause/resume"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Pause, k.Reset, k.Quit}}
}

type appModel struct {
	scenario *config.Scenario
	sim      seiz.Model
	history  []seiz.Snapshot
	table    table.Model
	help     help.Model
	keys     keyMap
	step     int
	paused   bool
	finished bool
	width    int
	interval time.Duration
}

type tickMsg time.Time

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func initialModel(scenario *config.Scenario, sim seiz.Model, interval time.Duration) appModel {
	columns := []table.Column{
		{Title: "Step", Width: 6},
		{Title: "S", Width: 8},
		{Title: "E", Width: 8},
		{Title: "I", Width: 8},
		{Title: "Z", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	t.SetStyles(s)

	m := appModel{
		scenario: scenario,
		sim:      sim,
		table:    t,
		help:     help.New(),
		keys:     keys,
		interval: interval,
	}
	m.restart()
	return m
}

func (m *appModel) restart() {
	m.sim.InitializeStates(m.scenario.Run.InfectedFrac, m.scenario.Run.SkepticFrac, m.scenario.Run.Seed)
	m.step = 0
	m.finished = false
	m.history = m.history[:0]
	m.record()
}

func (m *appModel) record() {
	counts := m.sim.CountStates()
	snap := seiz.Snapshot{
		Step: m.step,
		S:    counts[seiz.Susceptible],
		E:    counts[seiz.Exposed],
		I:    counts[seiz.Infected],
		Z:    counts[seiz.Skeptic],
	}
	m.history = append(m.history, snap)

	rows := make([]table.Row, 0, len(m.history))
	for i := len(m.history) - 1; i >= 0; i-- {
		s := m.history[i]
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", s.Step),
			fmt.Sprintf("%d", s.S),
			fmt.Sprintf("%d", s.E),
			fmt.Sprintf("%d", s.I),
			fmt.Sprintf("%d", s.Z),
		})
	}
	m.table.SetRows(rows)
}

func (m appModel) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tickMsg:
		if !m.paused && !m.finished {
			m.sim.Step()
			m.step++
			m.record()
			if m.step >= m.scenario.Run.Steps {
				m.finished = true
			}
		}
		return m, tickCmd(m.interval)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Reset):
			m.restart()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m appModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("seizgraph - %s (%s)", m.scenario.Name, m.sim.ModelType())
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	latest := m.history[len(m.history)-1]
	total := latest.Total()

	stats := fmt.Sprintf("step %d/%d   %s %d   %s %d   %s %d   %s %d",
		latest.Step, m.scenario.Run.Steps,
		susceptibleStyle.Render("S"), latest.S,
		exposedStyle.Render("E"), latest.E,
		infectedStyle.Render("I"), latest.I,
		skepticStyle.Render("Z"), latest.Z,
	)
	b.WriteString(statsBoxStyle.Render(stats))
	b.WriteString("\n\n")

	b.WriteString(chartBoxStyle.Render(renderBars(latest, total)))
	b.WriteString("\n\n")

	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.finished {
		b.WriteString(finishedStyle.Render("run complete - press r to restart"))
		b.WriteString("\n")
	} else if m.paused {
		b.WriteString(finishedStyle.Render("paused"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}

// renderBars draws one horizontal population bar per compartment.
func renderBars(snap seiz.Snapshot, total int) string {
	const barWidth = 40
	if total == 0 {
		return "empty network"
	}

	line := func(label string, count int, style lipgloss.Style) string {
		filled := count * barWidth / total
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		return fmt.Sprintf("%s %s %5d", style.Render(label), style.Render(bar), count)
	}

	return strings.Join([]string{
		line("S", snap.S, susceptibleStyle),
		line("E", snap.E, exposedStyle),
		line("I", snap.I, infectedStyle),
		line("Z", snap.Z, skepticStyle),
	}, "\n")
}

func main() {
	scenarioPath := flag.String("scenario", "", "Path to scenario YAML file (required)")
	interval := flag.Duration("interval", 300*time.Millisecond, "Time between simulation steps")
	flag.Parse()

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "usage: seizgraph-tui -scenario <file.yaml> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	scenario, err := config.Load(*scenarioPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load scenario: %v\n", err)
		os.Exit(1)
	}

	g, err := scenario.BuildNetwork()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build network: %v\n", err)
		os.Exit(1)
	}

	sim, err := scenario.BuildModel(g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build model: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(scenario, sim, *interval))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
}
