package episodes

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minTableHeight = 3
	chromeHeight   = 8 // title, help and the injector slot
)

// Model renders a catalog as a navigable table
type Model struct {
	catalog *Catalog
	table   table.Model
}

// NewModel creates a table model showing height rows
func NewModel(c *Catalog, height int) Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Episode", Width: 8},
		{Title: "Name", Width: 38},
		{Title: "Air date", Width: 18},
	}

	rows := make([]table.Row, 0, len(c.Episodes))
	for _, ep := range c.Episodes {
		rows = append(rows, table.Row{strconv.Itoa(ep.ID), ep.Code, ep.Name, ep.AirDate})
	}

	if height < minTableHeight {
		height = minTableHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#6B7280")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#F9FAFB")).
		Background(lipgloss.Color("#7C3AED")).
		Bold(false)
	t.SetStyles(s)

	return Model{catalog: c, table: t}
}

// TableHeight returns the table rows that fit a window of the given height
func TableHeight(windowHeight int) int {
	height := windowHeight - chromeHeight
	if height < minTableHeight {
		return minTableHeight
	}
	return height
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and resizes
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.table.SetHeight(TableHeight(size.Height))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table
func (m Model) View() string {
	return m.table.View()
}

// Selected returns the episode under the cursor
func (m Model) Selected() (Episode, bool) {
	row := m.table.SelectedRow()
	if row == nil {
		return Episode{}, false
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return Episode{}, false
	}
	return m.catalog.Find(id)
}
