package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/flagshop/pricing"
	"github.com/harperreed/flagshop/session"
)

func (m Model) renderHomeView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("FLAGSHOP"))
	s.WriteString("\n")
	s.WriteString("Custom feather flags, banners and signs for fireworks businesses.\n\n")

	viewer := m.app.Viewer()
	if viewer == nil {
		s.WriteString("Browsing as guest. Sign in to request quotes.\n")
	} else {
		s.WriteString("Signed in as " + headerStyle.Render(viewer.Email))
		if viewer.BusinessName != "" {
			s.WriteString(" (" + viewer.BusinessName + ")")
		}
		s.WriteString("\n")
		if viewer.IsWholesale() {
			if viewer.WholesaleApproved {
				s.WriteString(badgeStyle.Render(pricing.TierWholesaleActive.Badge()) + " applies to every product.\n")
			} else {
				s.WriteString(pendingStyle.Render(pricing.TierWholesalePending.Badge()) + ": retail prices shown until approval.\n")
			}
		}
	}

	s.WriteString(m.renderHomeHelp())
	return s.String()
}

func (m Model) renderHomeHelp() string {
	help := []string{"c: Catalog"}
	if m.app.Viewer() == nil {
		help = append(help, "l: Login", "r: Register")
	} else {
		help = append(help, "o: My quotes", "x: Logout")
	}
	help = append(help, "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c", "enter":
		return m.navigate(session.ViewCatalog)
	case "l":
		return m.navigate(session.ViewLogin)
	case "r":
		return m.navigate(session.ViewRegister)
	case "o":
		return m.navigate(session.ViewQuotes)
	case "x":
		if m.app.Viewer() != nil {
			_ = m.app.Logout()
		}
	}
	return m, nil
}
