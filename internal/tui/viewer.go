// internal/tui/viewer.go
// Package tui shows the built figures in the terminal, one figure per tab.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/benchchart/internal/chart"
)

const (
	headerHeight = 3
	footerHeight = 2
	minBarWidth  = 10
	barRune      = "█"
)

var (
	activeTabStyle    = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	inactiveTabStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	titleStyle        = lipgloss.NewStyle().Bold(true)
	mutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	highlightStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	noteStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	panelSpacingStyle = lipgloss.NewStyle().MarginBottom(1)
)

type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Up, k.Down}, {k.Quit}}
}

var defaultKeys = keyMap{
	Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next chart")),
	Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab/←", "previous chart")),
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "scroll up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "scroll down")),
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type model struct {
	figures  []chart.Figure
	active   int
	width    int
	height   int
	viewport viewport.Model
	help     help.Model
	keys     keyMap
}

func newModel(figs []chart.Figure) *model {
	m := &model{
		figures:  figs,
		width:    100,
		height:   30,
		viewport: viewport.New(100, 30-headerHeight-footerHeight),
		help:     help.New(),
		keys:     defaultKeys,
	}
	m.refresh()
	return m
}

// Run blocks until the user quits the viewer.
func Run(figs []chart.Figure) error {
	if len(figs) == 0 {
		return fmt.Errorf("nothing to display: %w", chart.ErrNoPackages)
	}
	p := tea.NewProgram(newModel(figs), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-headerHeight-footerHeight)
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.active = (m.active + 1) % len(m.figures)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.active = (m.active - 1 + len(m.figures)) % len(m.figures)
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(m.tabs())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// refresh re-renders the active figure into the viewport and scrolls to its top.
func (m *model) refresh() {
	if len(m.figures) == 0 {
		return
	}
	m.viewport.SetContent(renderFigure(m.figures[m.active], m.width))
	m.viewport.GotoTop()
}

func (m *model) tabs() string {
	tabs := make([]string, 0, len(m.figures))
	for i, fig := range m.figures {
		label := fmt.Sprintf("%d %s", i+1, fig.Name)
		if i == m.active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func renderFigure(fig chart.Figure, width int) string {
	var b strings.Builder
	for _, panel := range fig.Panels {
		b.WriteString(panelSpacingStyle.Render(renderPanel(panel, width)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderPanel draws one panel as rows of coloured bars. Bar lengths are
// scaled against the panel's axis maximum so the label margin is kept.
func renderPanel(p chart.Panel, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ReplaceAll(p.Title, "\n", " - ")))
	b.WriteString("\n")
	if better := p.BetterText(); better != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s (%s)", better, p.XLabel)))
		b.WriteString("\n")
	}
	if legend := renderLegend(p); legend != "" {
		b.WriteString(legend)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	labels := make([]string, len(p.Categories))
	labelWidth := 0
	for i, c := range p.Categories {
		labels[i] = strings.ReplaceAll(c.Label, "\n", " ")
		labelWidth = max(labelWidth, lipgloss.Width(labels[i]))
	}
	labelWidth = min(labelWidth, max(width/3, 12))

	valueWidth := 0
	for _, s := range p.Series {
		for _, l := range s.Labels {
			valueWidth = max(valueWidth, lipgloss.Width(l))
		}
	}
	barWidth := max(minBarWidth, width-labelWidth-valueWidth-3)
	xMax := p.XMax()

	for i, c := range p.Categories {
		label := truncate(labels[i], labelWidth)
		label += strings.Repeat(" ", labelWidth-lipgloss.Width(label))
		if c.Highlight {
			label = highlightStyle.Render(label)
		}
		blank := strings.Repeat(" ", labelWidth)

		for j, s := range p.Series {
			prefix := blank
			if j == 0 {
				prefix = label
			}
			n := int(s.Values[i] / xMax * float64(barWidth))
			bar := lipgloss.NewStyle().Foreground(lipgloss.Color(chart.Hex(s.Color))).Render(strings.Repeat(barRune, max(n, 0)))
			fmt.Fprintf(&b, "%s %s %s\n", prefix, bar, s.Labels[i])
		}
		if c.Note != "" {
			fmt.Fprintf(&b, "%s %s\n", blank, noteStyle.Render(c.Note))
		}
	}
	return b.String()
}

func renderLegend(p chart.Panel) string {
	if len(p.Series) < 2 && p.LegendTitle == "" {
		return ""
	}
	parts := make([]string, 0, len(p.Series)+1)
	if p.LegendTitle != "" {
		parts = append(parts, mutedStyle.Render(p.LegendTitle+":"))
	}
	for _, s := range p.Series {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(chart.Hex(s.Color))).Render(barRune + barRune)
		parts = append(parts, swatch+" "+s.Name)
	}
	return strings.Join(parts, "  ")
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
