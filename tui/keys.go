// ABOUTME: Keystroke routing for the authed screens
// ABOUTME: Each screen owns its keys; shared navigation lives here
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleScreenKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenDashboard:
		return m.handleDashboardKeys(msg)
	case ScreenVendors, ScreenProducts, ScreenRepresentatives:
		return m.handleListKeys(msg)
	case ScreenAddVendor, ScreenAddProduct, ScreenAddRepresentative:
		return m.handleFormKeys(msg)
	case ScreenSearch:
		return m.handleSearchKeys(msg)
	case ScreenVendorDetails:
		return m.handleDetailKeys(msg)
	}
	return m, nil
}

// handleNavKeys covers the number-row shortcuts shared by the
// non-typing screens. The bool reports whether the key was consumed.
func (m Model) handleNavKeys(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "1":
		return m.navigate(ScreenVendors), nil, true
	case "2":
		return m.navigate(ScreenProducts), nil, true
	case "3":
		return m.navigate(ScreenRepresentatives), nil, true
	case "4":
		return m.navigate(ScreenSearch), nil, true
	case "0":
		return m.navigate(ScreenDashboard), nil, true
	case "o":
		return m, m.signOutCmd(), true
	}
	return m, nil, false
}
