// Package tui is an interactive browser for compiled routes.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/r9s-ai/langgate/pkg/proxyconf"
	"github.com/r9s-ai/langgate/pkg/registry"
	"github.com/r9s-ai/langgate/pkg/routes"
)

var (
	styleBase = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(0, 1)

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	styleDetail = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)

	styleKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))
)

// filterAll selects every category.
const filterAll = -1

type model struct {
	table   table.Model
	all     []routes.RouteSpec
	visible []routes.RouteSpec
	filter  int
}

func newModel(rs []routes.RouteSpec) model {
	columns := []table.Column{
		{Title: "CATEGORY", Width: 12},
		{Title: "PATH", Width: 28},
		{Title: "UPSTREAM", Width: 48},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("99"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := model{table: t, all: rs, filter: filterAll}
	m.applyFilter()
	return m
}

func (m *model) applyFilter() {
	if m.filter == filterAll {
		m.visible = m.all
	} else {
		m.visible = make([]routes.RouteSpec, 0, len(m.all))
		for _, r := range m.all {
			if int(r.Category) == m.filter {
				m.visible = append(m.visible, r)
			}
		}
	}
	m.table.SetRows(toRows(m.visible))
	m.table.SetCursor(0)
}

// nextFilter cycles all -> grammar -> speller -> hyphenation -> tts -> all.
func (m *model) nextFilter() {
	m.filter++
	if m.filter >= len(registry.Categories()) {
		m.filter = filterAll
	}
	m.applyFilter()
}

func (m model) filterLabel() string {
	if m.filter == filterAll {
		return "all"
	}
	return registry.Category(m.filter).String()
}

func (m model) selected() (routes.RouteSpec, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return routes.RouteSpec{}, false
	}
	return m.visible[i], true
}

func toRows(rs []routes.RouteSpec) []table.Row {
	rows := make([]table.Row, len(rs))
	for i, r := range rs {
		rows[i] = table.Row{r.Category.String(), r.PublicPath, proxyconf.UpstreamURL(r)}
	}
	return rows
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.nextFilter()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	title := styleTitle.Render(fmt.Sprintf("langgate routes  [%s]  %d/%d", m.filterLabel(), len(m.visible), len(m.all)))
	tableView := styleBase.Render(m.table.View())

	detail := "no routes"
	if r, ok := m.selected(); ok {
		detail = proxyconf.RenderLocation(r)
	}

	help := styleHelp.Render(strings.Join([]string{
		styleKey.Render("↑/↓") + " move",
		styleKey.Render("tab") + " category",
		styleKey.Render("q") + " quit",
	}, "  "))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		tableView,
		styleDetail.Render(detail),
		help,
	) + "\n"
}

// Run opens the route browser on in/out until the user quits.
func Run(rs []routes.RouteSpec, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(newModel(rs), tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui run failed: %w", err)
	}
	return nil
}
