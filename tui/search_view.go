// ABOUTME: Cross-entity search screen
// ABOUTME: One kind, one term or product, one gateway query per submit
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessaly/vendordesk/notify"
	"github.com/tessaly/vendordesk/search"
)

const (
	searchFocusKind = iota
	searchFocusInput
)

func (m Model) renderSearchView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("SEARCH"))
	s.WriteString("\n\n")
	s.WriteString(m.renderBanner())

	kinds := search.Kinds()
	var tabs []string
	for i, k := range kinds {
		if i == m.searchKind {
			tabs = append(tabs, tabActiveStyle.Render(k.String()))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(k.String()))
		}
	}
	if m.searchFocus == searchFocusKind {
		s.WriteString("> ")
	} else {
		s.WriteString("  ")
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	s.WriteString("\n\n")

	if m.searchFocus == searchFocusInput {
		s.WriteString("> ")
	} else {
		s.WriteString("  ")
	}
	if kinds[m.searchKind] == search.KindVendorsByProduct {
		s.WriteString(labelStyle.Render("Product: "))
		s.WriteString(m.pickedProductName())
		s.WriteString(helpStyle.Render("  (←/→ to change)"))
	} else {
		s.WriteString(m.searchInput.View())
	}
	s.WriteString("\n\n")

	if m.searchBusy {
		s.WriteString(loadingStyle.Render("Searching..."))
		s.WriteString("\n\n")
	} else if m.searched {
		s.WriteString(m.renderResults())
		s.WriteString("\n\n")
	}

	help := []string{
		"Tab: Switch focus",
		"←/→: Change kind",
		"Enter: Search",
		"Esc: Dashboard",
		"o: Sign out",
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) pickedProductName() string {
	if len(m.cache.Products) == 0 {
		return "(no products available)"
	}
	if m.productChoice >= len(m.cache.Products) {
		return "(no products available)"
	}
	return m.cache.Products[m.productChoice].Name
}

func (m Model) renderResults() string {
	if m.results.Count() == 0 {
		return helpStyle.Render("No results found.")
	}

	var s strings.Builder
	s.WriteString(labelStyle.Render(fmt.Sprintf("%d result(s)", m.results.Count())))
	s.WriteString("\n\n")

	switch m.results.Kind {
	case search.KindVendorName:
		columns := []table.Column{
			{Title: "Name", Width: 28},
			{Title: "City", Width: 16},
			{Title: "Phone", Width: 16},
			{Title: "Email", Width: 26},
		}
		var rows []table.Row
		for _, v := range m.results.Vendors {
			rows = append(rows, table.Row{v.Name, v.City, v.Phone, v.Email})
		}
		s.WriteString(m.buildTable(columns, rows))

	case search.KindProductName, search.KindProductType:
		columns := []table.Column{
			{Title: "Name", Width: 30},
			{Title: "Type", Width: 20},
			{Title: "Description", Width: 36},
		}
		var rows []table.Row
		for _, p := range m.results.Products {
			rows = append(rows, table.Row{p.Name, p.Type, p.Description})
		}
		s.WriteString(m.buildTable(columns, rows))

	case search.KindVendorsByProduct:
		columns := []table.Column{
			{Title: "Vendor", Width: 28},
			{Title: "City", Width: 16},
			{Title: "Product", Width: 26},
		}
		var rows []table.Row
		for _, match := range m.results.Matches {
			rows = append(rows, table.Row{match.Name, match.City, match.ProductName})
		}
		s.WriteString(m.buildTable(columns, rows))
	}
	return s.String()
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchBusy {
		return m, nil
	}

	kinds := search.Kinds()
	switch msg.String() {
	case "esc":
		return m.navigate(ScreenDashboard), nil

	case "tab", "shift+tab":
		if m.searchFocus == searchFocusKind {
			m.searchFocus = searchFocusInput
			m.searchInput.Focus()
		} else {
			m.searchFocus = searchFocusKind
			m.searchInput.Blur()
		}
		return m, nil

	case "left", "right":
		if m.searchFocus == searchFocusKind {
			if msg.String() == "right" {
				m.searchKind = (m.searchKind + 1) % len(kinds)
			} else {
				m.searchKind = (m.searchKind + len(kinds) - 1) % len(kinds)
			}
			return m, nil
		}
		if kinds[m.searchKind] == search.KindVendorsByProduct {
			n := len(m.cache.Products)
			if n == 0 {
				return m, nil
			}
			if msg.String() == "right" {
				m.productChoice = (m.productChoice + 1) % n
			} else {
				m.productChoice = (m.productChoice + n - 1) % n
			}
			return m, nil
		}

	case "enter":
		q := search.Query{Kind: kinds[m.searchKind]}
		if q.Kind == search.KindVendorsByProduct {
			if m.productChoice < len(m.cache.Products) {
				q.ProductID = m.cache.Products[m.productChoice].ID
			}
		} else {
			q.Term = strings.TrimSpace(m.searchInput.Value())
		}
		if err := q.Validate(); err != nil {
			return m.showBanner(err.Error(), notify.Error)
		}
		m.searchBusy = true
		return m, m.searchCmd(q)

	case "o":
		if m.searchFocus != searchFocusInput || kinds[m.searchKind] == search.KindVendorsByProduct {
			return m, m.signOutCmd()
		}
	}

	if m.searchFocus == searchFocusInput && kinds[m.searchKind] != search.KindVendorsByProduct {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}
