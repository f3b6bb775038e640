// ABOUTME: Single-vendor detail screen
// ABOUTME: Shows the vendor record plus its representatives and products
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) renderDetailView() string {
	if m.focusVendor == nil {
		return ""
	}
	v := m.focusVendor

	var s strings.Builder
	s.WriteString(titleStyle.Render(v.Name))
	s.WriteString("\n\n")
	s.WriteString(m.renderBanner())

	fields := []struct {
		label string
		value string
	}{
		{"Address", v.Address},
		{"City", v.City},
		{"State", v.State},
		{"ZIP Code", v.ZipCode},
		{"Phone", v.Phone},
		{"Email", v.Email},
		{"Website", v.Website},
		{"Notes", v.Notes},
		{"Contact Preferences", v.ContactPreferences},
		{"Process Notes", v.ProcessNotes},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		s.WriteString(labelStyle.Render(f.label + ": "))
		s.WriteString(f.value)
		s.WriteString("\n")
	}
	s.WriteString("\n")

	if m.detailLoading {
		s.WriteString(loadingStyle.Render("Loading related records..."))
		s.WriteString("\n")
	} else if m.detailErr != "" {
		s.WriteString(errorBannerStyle.Render("Failed to load related records: " + m.detailErr))
		s.WriteString("\n")
	} else {
		s.WriteString(labelStyle.Render("Representatives"))
		s.WriteString("\n")
		if len(m.detailReps) == 0 {
			s.WriteString(helpStyle.Render("  none"))
			s.WriteString("\n")
		}
		for _, r := range m.detailReps {
			s.WriteString("  " + r.Name)
			if r.Title != "" {
				s.WriteString(" (" + r.Title + ")")
			}
			if r.Email != "" {
				s.WriteString(" • " + r.Email)
			}
			s.WriteString("\n")
		}
		s.WriteString("\n")

		s.WriteString(labelStyle.Render("Products"))
		s.WriteString("\n")
		if len(m.detailProducts) == 0 {
			s.WriteString(helpStyle.Render("  none"))
			s.WriteString("\n")
		}
		for _, p := range m.detailProducts {
			s.WriteString("  " + p.Name)
			if p.Type != "" {
				s.WriteString(" [" + p.Type + "]")
			}
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Esc: Back to vendors • 0: Dashboard • o: Sign out"))
	return s.String()
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m.navigate(ScreenVendors), nil
	}
	if next, cmd, ok := m.handleNavKeys(msg); ok {
		return next, cmd
	}
	return m, nil
}
