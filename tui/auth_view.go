// ABOUTME: Sign-in / sign-up screen
// ABOUTME: Blocks the rest of the portal until a session exists
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessaly/vendordesk/notify"
)

func (m Model) renderAuthView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("VENDORDESK"))
	s.WriteString("\n\n")
	s.WriteString(m.renderBanner())

	if m.loginMode {
		s.WriteString(labelStyle.Render("Sign In"))
	} else {
		s.WriteString(labelStyle.Render("Sign Up"))
	}
	s.WriteString("\n\n")

	for i, input := range m.authInputs {
		if i == m.authFocus {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(input.View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if m.authBusy {
		s.WriteString(loadingStyle.Render("Authenticating..."))
		s.WriteString("\n")
	}

	help := []string{
		"Tab: Next field",
		"Enter: Submit",
	}
	if m.loginMode {
		help = append(help, "Ctrl+S: Switch to sign up")
	} else {
		help = append(help, "Ctrl+S: Switch to sign in")
	}
	help = append(help, "Ctrl+C: Quit")
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))

	return s.String()
}

func (m Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.authBusy {
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.authFocus = (m.authFocus + len(m.authInputs) - 1) % len(m.authInputs)
		} else {
			m.authFocus = (m.authFocus + 1) % len(m.authInputs)
		}
		m.updateAuthFocus()
		return m, nil

	case "ctrl+s":
		m.loginMode = !m.loginMode
		return m, nil

	case "enter":
		email := strings.TrimSpace(m.authInputs[0].Value())
		password := m.authInputs[1].Value()
		if email == "" || password == "" {
			return m.showBanner("Email and password are required", notify.Error)
		}
		m.authBusy = true
		return m, m.signInCmd(email, password, !m.loginMode)
	}

	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	return m, cmd
}

func (m *Model) updateAuthFocus() {
	for i := range m.authInputs {
		if i == m.authFocus {
			m.authInputs[i].Focus()
		} else {
			m.authInputs[i].Blur()
		}
	}
}
