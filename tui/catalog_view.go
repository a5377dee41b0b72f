package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/flagshop/models"
	"github.com/harperreed/flagshop/pricing"
	"github.com/harperreed/flagshop/session"
)

// catalogOrder is the product list in the order the catalog displays it.
func (m Model) catalogOrder() []models.Product {
	return models.Flatten(models.GroupByCategory(m.app.Products()))
}

func (m Model) renderCatalogView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("CATALOG"))
	s.WriteString("\n")

	products := m.catalogOrder()
	if len(products) == 0 {
		s.WriteString("No products loaded.\n")
		s.WriteString(helpStyle.Render("r: Reload • Esc: Home"))
		return s.String()
	}

	columns := []table.Column{
		{Title: "Category", Width: 18},
		{Title: "Product", Width: 32},
		{Title: "Price", Width: 10},
		{Title: "", Width: 27},
		{Title: "Custom", Width: 6},
	}

	var rows []table.Row
	for _, p := range products {
		price, tier := m.app.PriceFor(p)
		custom := ""
		if p.Customizable {
			custom = "yes"
		}
		rows = append(rows, table.Row{p.Category, p.Name, pricing.FormatPrice(price), tier.Badge(), custom})
	}

	height := m.height - 14
	if height < 4 {
		height = 4
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	if m.cursor < len(rows) {
		t.SetCursor(m.cursor)
	}
	s.WriteString(t.View())
	s.WriteString("\n\n")

	if m.cursor < len(products) {
		s.WriteString(m.renderProductSummary(products[m.cursor]))
	}

	s.WriteString(m.renderCatalogHelp())
	return s.String()
}

func (m Model) renderProductSummary(p models.Product) string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(p.Name))
	s.WriteString("\n")
	s.WriteString(p.Description)
	s.WriteString("\n")
	if len(p.Sizes) > 0 {
		s.WriteString("Sizes: " + strings.Join(p.Sizes, ", ") + "\n")
	}
	_, tier := m.app.PriceFor(p)
	if tier == pricing.TierWholesaleActive {
		s.WriteString(fmt.Sprintf("Retail %s\n", pricing.FormatPrice(p.BasePrice)))
	}
	return s.String()
}

func (m Model) renderCatalogHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Enter: Customize",
		"r: Reload",
		"Esc: Home",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleCatalogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	products := m.catalogOrder()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(products)-1 {
			m.cursor++
		}
	case "r":
		m.busy = "Loading products..."
		return m, m.loadProductsCmd()
	case "esc":
		return m.navigate(session.ViewHome)
	case "enter":
		if m.cursor >= len(products) {
			return m, nil
		}
		if err := m.app.Customize(products[m.cursor].ID); err != nil {
			m.app.Notify(session.UserMessage(err), true)
			return m, nil
		}
		m.app.ClearNotice()
		m.customizeInputs = newCustomizeInputs()
		m.focusIndex = 0
		m.updateFormFocus()
	}
	return m, nil
}
