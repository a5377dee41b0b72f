package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/flagshop/session"
)

func (m Model) renderQuotesView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("MY QUOTES"))
	s.WriteString("\n")

	quotes := m.app.Quotes()
	if len(quotes) == 0 {
		s.WriteString("No quote requests yet. Customize a product to request one.\n")
	} else {
		columns := []table.Column{
			{Title: "Product", Width: 32},
			{Title: "Business", Width: 20},
			{Title: "Qty", Width: 4},
			{Title: "Status", Width: 10},
			{Title: "Requested", Width: 16},
		}

		var rows []table.Row
		for _, q := range quotes {
			created := ""
			if !q.CreatedAt.IsZero() {
				created = q.CreatedAt.Local().Format("2006-01-02 15:04")
			}
			rows = append(rows, table.Row{q.ProductName, q.BusinessName, fmt.Sprintf("%d", q.Quantity), q.Status, created})
		}

		height := m.height - 10
		if height < 4 {
			height = 4
		}
		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(true),
			table.WithHeight(height),
		)
		if m.quoteCursor < len(rows) {
			t.SetCursor(m.quoteCursor)
		}
		s.WriteString(t.View())
		s.WriteString("\n")

		if m.quoteCursor < len(quotes) && quotes[m.quoteCursor].Message != "" {
			s.WriteString("\n" + quotes[m.quoteCursor].Message + "\n")
		}
	}

	help := []string{"↑/↓: Navigate", "r: Refresh", "c: Catalog", "Esc: Home", "q: Quit"}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) handleQuotesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.quoteCursor > 0 {
			m.quoteCursor--
		}
	case "down", "j":
		if m.quoteCursor < len(m.app.Quotes())-1 {
			m.quoteCursor++
		}
	case "r":
		m.busy = "Loading quotes..."
		return m, m.loadQuotesCmd()
	case "c":
		return m.navigate(session.ViewCatalog)
	case "esc":
		return m.navigate(session.ViewHome)
	}
	return m, nil
}
