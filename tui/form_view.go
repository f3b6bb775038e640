// ABOUTME: Add/edit form screen driven by the entity draft
// ABOUTME: Field inputs mirror the draft; submit validates then fires once
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessaly/vendordesk/forms"
	"github.com/tessaly/vendordesk/notify"
)

// beginForm installs a draft and builds its inputs. A representative's
// vendor is a picker rather than a text input, so it gets no input slot.
func (m *Model) beginForm(d forms.Draft) {
	if d.Entity == forms.EntityRepresentative && !d.IsEditing() && len(m.cache.Vendors) > 0 {
		d = d.Set("vendor_id", m.cache.Vendors[0].ID)
	}
	m.draft = &d

	fields := formInputFields(d)
	inputs := make([]textinput.Model, len(fields))
	for i, field := range fields {
		ti := textinput.New()
		ti.Placeholder = forms.FieldLabel(field)
		ti.CharLimit = 200
		ti.SetValue(d.Fields[field])
		inputs[i] = ti
	}
	m.formInputs = inputs
	m.formFocus = 0
	m.vendorChoice = 0
	m.submitting = false
	m.syncFormFocus()
}

// formInputFields is the draft's field order minus the vendor picker.
func formInputFields(d forms.Draft) []string {
	fields := forms.FieldOrder(d.Entity)
	if d.Entity != forms.EntityRepresentative {
		return fields
	}
	out := make([]string, 0, len(fields)-1)
	for _, f := range fields {
		if f != "vendor_id" {
			out = append(out, f)
		}
	}
	return out
}

// hasVendorPicker reports whether focus slot 0 is the vendor picker.
// Editing an existing representative shows the vendor read-only instead.
func (m Model) hasVendorPicker() bool {
	return m.draft != nil && m.draft.Entity == forms.EntityRepresentative && !m.draft.IsEditing()
}

func (m Model) formSlots() int {
	n := len(m.formInputs)
	if m.hasVendorPicker() {
		n++
	}
	return n
}

func (m *Model) syncFormFocus() {
	offset := 0
	if m.hasVendorPicker() {
		offset = 1
	}
	for i := range m.formInputs {
		if i+offset == m.formFocus {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

func (m Model) renderFormView() string {
	if m.draft == nil {
		return ""
	}

	var s strings.Builder
	verb := "NEW "
	if m.draft.IsEditing() {
		verb = "EDIT "
	}
	s.WriteString(titleStyle.Render(verb + strings.ToUpper(m.draft.Entity.String())))
	s.WriteString("\n\n")
	s.WriteString(m.renderBanner())

	offset := 0
	if m.hasVendorPicker() {
		offset = 1
		if m.formFocus == 0 {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(labelStyle.Render("Vendor: "))
		s.WriteString(m.pickedVendorName())
		s.WriteString(helpStyle.Render("  (←/→ to change)"))
		s.WriteString("\n")
	} else if m.draft.Entity == forms.EntityRepresentative {
		s.WriteString("  ")
		s.WriteString(labelStyle.Render("Vendor: "))
		s.WriteString(m.pickedVendorName())
		s.WriteString("\n")
	}

	for i, input := range m.formInputs {
		if i+offset == m.formFocus {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(input.View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if m.submitting {
		s.WriteString(loadingStyle.Render("Saving..."))
		s.WriteString("\n")
	}
	s.WriteString(helpStyle.Render("Tab: Next field • Enter: Save • Esc: Cancel"))
	return s.String()
}

// pickedVendorName resolves the draft's vendor_id against the cache.
func (m Model) pickedVendorName() string {
	if m.draft == nil {
		return ""
	}
	id := m.draft.Fields["vendor_id"]
	if id == "" {
		return "(no vendors available)"
	}
	if v := m.cache.VendorByID(id); v != nil {
		return v.Name
	}
	return id
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.draft == nil {
		return m.navigate(ScreenDashboard), nil
	}
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m.navigate(listScreenFor(m.draft.Entity)), nil

	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % m.formSlots()
		m.syncFormFocus()
		return m, nil

	case "shift+tab", "up":
		m.formFocus = (m.formFocus + m.formSlots() - 1) % m.formSlots()
		m.syncFormFocus()
		return m, nil

	case "left", "right":
		if m.hasVendorPicker() && m.formFocus == 0 {
			return m.cycleVendorChoice(msg.String() == "right"), nil
		}

	case "enter":
		m.syncDraftFromInputs()
		if err := m.draft.Validate(); err != nil {
			return m.showBanner("Cannot save: "+err.Error(), notify.Error)
		}
		m.submitting = true
		return m, m.submitDraftCmd(*m.draft)
	}

	if m.hasVendorPicker() && m.formFocus == 0 {
		return m, nil
	}

	idx := m.formFocus
	if m.hasVendorPicker() {
		idx--
	}
	var cmd tea.Cmd
	m.formInputs[idx], cmd = m.formInputs[idx].Update(msg)
	return m, cmd
}

func (m Model) cycleVendorChoice(forward bool) Model {
	n := len(m.cache.Vendors)
	if n == 0 {
		return m
	}
	if forward {
		m.vendorChoice = (m.vendorChoice + 1) % n
	} else {
		m.vendorChoice = (m.vendorChoice + n - 1) % n
	}
	d := m.draft.Set("vendor_id", m.cache.Vendors[m.vendorChoice].ID)
	m.draft = &d
	return m
}

// syncDraftFromInputs copies every input value into the draft before
// validation and submit.
func (m *Model) syncDraftFromInputs() {
	d := *m.draft
	for i, field := range formInputFields(d) {
		d = d.Set(field, m.formInputs[i].Value())
	}
	m.draft = &d
}
