// ABOUTME: Tabbed collection list screens
// ABOUTME: Tables render straight from the cache; keys drive CRUD entry points
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessaly/vendordesk/export"
	"github.com/tessaly/vendordesk/forms"
	"github.com/tessaly/vendordesk/models"
	"github.com/tessaly/vendordesk/notify"
)

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("VENDORDESK"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")
	s.WriteString(m.renderBanner())
	s.WriteString(m.renderTable())
	s.WriteString("\n\n")
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	tabs := []struct {
		label  string
		screen Screen
	}{
		{"Vendors", ScreenVendors},
		{"Products", ScreenProducts},
		{"Representatives", ScreenRepresentatives},
	}

	var rendered []string
	for _, tab := range tabs {
		if tab.screen == m.screen {
			rendered = append(rendered, tabActiveStyle.Render(tab.label))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab.label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	switch m.screen {
	case ScreenVendors:
		return m.renderVendorsTable()
	case ScreenProducts:
		return m.renderProductsTable()
	case ScreenRepresentatives:
		return m.renderRepresentativesTable()
	}
	return ""
}

func (m Model) renderVendorsTable() string {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "City", Width: 16},
		{Title: "Phone", Width: 16},
		{Title: "Email", Width: 26},
	}

	var rows []table.Row
	for _, v := range m.cache.Vendors {
		rows = append(rows, table.Row{v.Name, v.City, v.Phone, v.Email})
	}
	return m.buildTable(columns, rows)
}

func (m Model) renderProductsTable() string {
	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Type", Width: 20},
		{Title: "Description", Width: 36},
	}

	var rows []table.Row
	for _, p := range m.cache.Products {
		rows = append(rows, table.Row{p.Name, p.Type, p.Description})
	}
	return m.buildTable(columns, rows)
}

func (m Model) renderRepresentativesTable() string {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Vendor", Width: 24},
		{Title: "Email", Width: 26},
		{Title: "Phone", Width: 16},
	}

	var rows []table.Row
	for _, r := range m.cache.Representatives {
		rows = append(rows, table.Row{r.Name, r.VendorName, r.Email, r.Phone})
	}
	return m.buildTable(columns, rows)
}

func (m Model) buildTable(columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.height-10),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t.View()
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Move",
		"Tab: Switch list",
		"n: New",
		"e: Edit",
		"d: Delete",
	}
	if m.screen == ScreenVendors {
		help = append(help, "Enter: Details")
	}
	help = append(help, "x: Export CSV", "p: Print", "4: Search", "0: Dashboard", "o: Sign out")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) listLength() int {
	switch m.screen {
	case ScreenVendors:
		return len(m.cache.Vendors)
	case ScreenProducts:
		return len(m.cache.Products)
	case ScreenRepresentatives:
		return len(m.cache.Representatives)
	}
	return 0
}

func (m Model) listEntity() forms.EntityType {
	switch m.screen {
	case ScreenProducts:
		return forms.EntityProduct
	case ScreenRepresentatives:
		return forms.EntityRepresentative
	default:
		return forms.EntityVendor
	}
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case "down", "j":
		if m.selectedRow < m.listLength()-1 {
			m.selectedRow++
		}
		return m, nil

	case "tab":
		switch m.screen {
		case ScreenVendors:
			return m.navigate(ScreenProducts), nil
		case ScreenProducts:
			return m.navigate(ScreenRepresentatives), nil
		default:
			return m.navigate(ScreenVendors), nil
		}

	case "esc":
		return m.navigate(ScreenDashboard), nil

	case "n":
		return m.navigate(formScreenFor(m.listEntity())), nil

	case "e":
		return m.beginEditSelected()

	case "d":
		return m.confirmDeleteSelected()

	case "enter":
		if m.screen == ScreenVendors {
			return m.openVendorDetails()
		}
		return m, nil

	case "x":
		return m.exportCurrentList()

	case "p":
		m.modal = notify.Info("Printing is not available in the terminal. Export the list with x and print the CSV.")
		return m, nil

	case "r":
		switch m.screen {
		case ScreenVendors:
			return m, m.fetchVendorsCmd()
		case ScreenProducts:
			return m, m.fetchProductsCmd()
		default:
			return m, m.fetchRepresentativesCmd()
		}

	case "q":
		return m, tea.Quit
	}

	if next, cmd, ok := m.handleNavKeys(msg); ok {
		return next, cmd
	}
	return m, nil
}

// beginEditSelected seeds a draft from the highlighted record and jumps
// straight to the form without the blank-draft reset in navigate.
func (m Model) beginEditSelected() (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenVendors:
		if m.selectedRow >= len(m.cache.Vendors) {
			return m, nil
		}
		m.beginForm(forms.EditVendor(m.cache.Vendors[m.selectedRow]))
		m.screen = ScreenAddVendor
	case ScreenProducts:
		if m.selectedRow >= len(m.cache.Products) {
			return m, nil
		}
		m.beginForm(forms.EditProduct(m.cache.Products[m.selectedRow]))
		m.screen = ScreenAddProduct
	case ScreenRepresentatives:
		if m.selectedRow >= len(m.cache.Representatives) {
			return m, nil
		}
		m.beginForm(forms.EditRepresentative(m.cache.Representatives[m.selectedRow]))
		m.screen = ScreenAddRepresentative
	}
	return m, nil
}

func (m Model) confirmDeleteSelected() (tea.Model, tea.Cmd) {
	if m.deleteBusy || m.selectedRow >= m.listLength() {
		return m, nil
	}

	switch m.screen {
	case ScreenVendors:
		v := m.cache.Vendors[m.selectedRow]
		m.modal = notify.ConfirmAction(notify.ActionDeleteVendor, v.ID,
			fmt.Sprintf("Delete vendor %q? This cannot be undone.", v.Name))
	case ScreenProducts:
		p := m.cache.Products[m.selectedRow]
		m.modal = notify.ConfirmAction(notify.ActionDeleteProduct, p.ID,
			fmt.Sprintf("Delete product %q? This cannot be undone.", p.Name))
	case ScreenRepresentatives:
		r := m.cache.Representatives[m.selectedRow]
		m.modal = notify.ConfirmAction(notify.ActionDeleteRepresentative, r.ID,
			fmt.Sprintf("Delete representative %q? This cannot be undone.", r.Name))
	}
	return m, nil
}

func (m Model) openVendorDetails() (tea.Model, tea.Cmd) {
	if m.selectedRow >= len(m.cache.Vendors) {
		return m, nil
	}
	v := m.cache.Vendors[m.selectedRow]
	m.focusVendor = &v
	m.detailReps = nil
	m.detailProducts = nil
	m.detailErr = ""
	m.detailLoading = true
	m.screen = ScreenVendorDetails
	return m, m.detailCmd(v.ID)
}

func (m Model) exportCurrentList() (Model, tea.Cmd) {
	var (
		path   string
		rows   []models.Row
		fields []string
		label  string
	)
	switch m.screen {
	case ScreenVendors:
		path, label = "vendors.csv", "vendors"
		rows, fields = export.VendorRows(m.cache.Vendors), export.VendorFields
	case ScreenProducts:
		path, label = "products.csv", "products"
		rows, fields = export.ProductRows(m.cache.Products), export.ProductFields
	case ScreenRepresentatives:
		path, label = "representatives.csv", "representatives"
		rows, fields = export.RepresentativeRows(m.cache.Representatives), export.RepresentativeFields
	default:
		return m, nil
	}

	if err := export.WriteFile(path, rows, fields); err != nil {
		return m.showBanner("Export failed: "+err.Error(), notify.Error)
	}
	return m.showBanner(fmt.Sprintf("Exported %d %s to %s", len(rows), label, path), notify.Success)
}
