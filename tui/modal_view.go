// ABOUTME: Dialog overlay for confirmations and notices
// ABOUTME: Confirms resolve their pending action exactly once
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessaly/vendordesk/notify"
)

var modalStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("170")).
	Padding(1, 3)

func (m Model) renderModalView() string {
	var s strings.Builder
	s.WriteString(m.modal.Message)
	s.WriteString("\n\n")
	if m.modal.Confirm {
		s.WriteString(helpStyle.Render("y: Confirm • n/Esc: Cancel"))
	} else {
		s.WriteString(helpStyle.Render("Enter/Esc: Dismiss"))
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		modalStyle.Render(s.String()))
}

func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.modal.Confirm {
		switch msg.String() {
		case "enter", "esc", "q":
			m.modal = notify.Modal{}
		}
		return m, nil
	}

	switch msg.String() {
	case "y", "Y", "enter":
		action := m.modal.Action
		target := m.modal.TargetID
		m.modal = notify.Modal{}
		if action == notify.ActionNone || target == "" {
			return m, nil
		}
		m.deleteBusy = true
		return m, m.deleteCmd(action, target)
	case "n", "N", "esc":
		m.modal = notify.Modal{}
	}
	return m, nil
}
