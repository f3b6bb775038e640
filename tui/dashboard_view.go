// ABOUTME: Landing screen with collection counts and shortcuts
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) renderDashboardView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("VENDORDESK"))
	s.WriteString("\n\n")
	s.WriteString(m.renderBanner())

	if m.identity != nil {
		s.WriteString(helpStyle.Render("Signed in as " + m.identity.Email))
		s.WriteString("\n\n")
	}

	s.WriteString(labelStyle.Render("Vendors"))
	s.WriteString(fmt.Sprintf("          %d\n", len(m.cache.Vendors)))
	s.WriteString(labelStyle.Render("Products"))
	s.WriteString(fmt.Sprintf("         %d\n", len(m.cache.Products)))
	s.WriteString(labelStyle.Render("Representatives"))
	s.WriteString(fmt.Sprintf("  %d\n", len(m.cache.Representatives)))
	s.WriteString("\n")

	help := []string{
		"1: Vendors",
		"2: Products",
		"3: Representatives",
		"4: Search",
		"o: Sign out",
		"Ctrl+C: Quit",
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))

	return s.String()
}

func (m Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.handleNavKeys(msg); ok {
		return next, cmd
	}
	if msg.String() == "q" {
		return m, tea.Quit
	}
	return m, nil
}
