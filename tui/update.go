// ABOUTME: Completion-message handlers for the model
// ABOUTME: Cache patches, boot gating, and banner outcomes live here
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessaly/vendordesk/forms"
	"github.com/tessaly/vendordesk/models"
	"github.com/tessaly/vendordesk/notify"
	"github.com/tessaly/vendordesk/search"
)

// bootStep retires one of the bootstrap fetches; the loading gate drops
// when the last one lands.
func (m *Model) bootStep() {
	if !m.booting {
		return
	}
	m.bootPending--
	if m.bootPending <= 0 {
		m.booting = false
		m.bootPending = 0
	}
}

func (m Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	m.authBusy = false
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Msg("authentication failed")
		return m.showBanner("Authentication failed: "+msg.err.Error(), notify.Error)
	}

	// Sign-up without an immediate session means email confirmation is
	// pending; the user stays on the auth screen.
	if msg.signup && msg.identity == nil {
		return m.showBanner("Signed up! Check your email to confirm your account.", notify.Success)
	}

	m.authed = true
	m.identity = msg.identity
	m.booting = true
	m.bootPending = 3
	m.screen = ScreenDashboard
	m.authInputs[0].SetValue("")
	m.authInputs[1].SetValue("")
	m.authFocus = 0

	var bannerCmd tea.Cmd
	m, bannerCmd = m.showBanner("Logged in successfully!", notify.Success)
	cmds := []tea.Cmd{
		m.fetchVendorsCmd(),
		m.fetchProductsCmd(),
		m.fetchRepresentativesCmd(),
		bannerCmd,
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleSignedOut(msg signedOutMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Msg("sign-out failed")
		return m.showBanner("Logout failed: "+msg.err.Error(), notify.Error)
	}

	m.authed = false
	m.identity = nil
	m.cache.Clear()
	m.clearDraft()
	m.focusVendor = nil
	m.detailReps = nil
	m.detailProducts = nil
	m.searched = false
	m.results = search.Results{}
	m.modal = notify.Modal{}
	m.screen = ScreenDashboard
	m.loginMode = true
	m.authInputs[0].SetValue("")
	m.authInputs[1].SetValue("")
	m.authFocus = 0
	m.authInputs[0].Focus()
	m.authInputs[1].Blur()
	return m.showBanner("Logged out successfully!", notify.Success)
}

func (m Model) handleVendorsLoaded(msg vendorsLoadedMsg) (tea.Model, tea.Cmd) {
	m.bootStep()
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("vendor fetch failed")
		return m.showBanner("Failed to load vendors: "+msg.err.Error(), notify.Error)
	}
	if m.authed {
		m.cache.SetVendors(msg.vendors)
		m.clampSelection()
	}
	return m, nil
}

func (m Model) handleProductsLoaded(msg productsLoadedMsg) (tea.Model, tea.Cmd) {
	m.bootStep()
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("product fetch failed")
		return m.showBanner("Failed to load products: "+msg.err.Error(), notify.Error)
	}
	if m.authed {
		m.cache.SetProducts(msg.products)
		m.clampSelection()
	}
	return m, nil
}

func (m Model) handleRepresentativesLoaded(msg representativesLoadedMsg) (tea.Model, tea.Cmd) {
	m.bootStep()
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("representative fetch failed")
		return m.showBanner("Failed to load representatives: "+msg.err.Error(), notify.Error)
	}
	if m.authed {
		m.cache.SetRepresentatives(msg.reps)
		m.clampSelection()
	}
	return m, nil
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	label := entityLabel(msg.entity)

	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("entity", msg.entity.String()).Msg("save failed")
		verb := "add"
		if msg.editing {
			verb = "update"
		}
		return m.showBanner("Failed to "+verb+" "+msg.entity.String()+": "+msg.err.Error(), notify.Error)
	}

	// The cache patch applies whether or not the user is still on the
	// originating form; navigation only happens when they are.
	var refetch tea.Cmd
	switch msg.entity {
	case forms.EntityVendor:
		v := models.VendorFromRow(msg.row)
		if msg.editing {
			m.cache.ReplaceVendor(v)
			if m.focusVendor != nil && m.focusVendor.ID == v.ID {
				m.focusVendor = &v
			}
		} else {
			m.cache.AddVendor(v)
		}
	case forms.EntityProduct:
		p := models.ProductFromRow(msg.row)
		if msg.editing {
			m.cache.ReplaceProduct(p)
		} else {
			m.cache.AddProduct(p)
		}
	case forms.EntityRepresentative:
		// The returned row lacks the joined vendor name, so the whole
		// collection is refetched instead of patched.
		refetch = m.fetchRepresentativesCmd()
	}

	verb := "added"
	if msg.editing {
		verb = "updated"
	}
	var banner tea.Cmd
	m, banner = m.showBanner(label+" "+verb+" successfully!", notify.Success)

	if m.screen == formScreenFor(msg.entity) {
		m = m.navigate(listScreenFor(msg.entity))
	}
	if refetch != nil {
		return m, tea.Batch(banner, refetch)
	}
	return m, banner
}

func (m Model) handleDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	m.deleteBusy = false
	label := actionLabel(msg.action)

	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("id", msg.id).Msg("delete failed")
		return m.showBanner("Failed to delete "+actionNoun(msg.action)+": "+msg.err.Error(), notify.Error)
	}

	switch msg.action {
	case notify.ActionDeleteVendor:
		m.cache.RemoveVendor(msg.id)
		if m.focusVendor != nil && m.focusVendor.ID == msg.id {
			m.focusVendor = nil
			if m.screen == ScreenVendorDetails {
				m = m.navigate(ScreenVendors)
			}
		}
	case notify.ActionDeleteProduct:
		m.cache.RemoveProduct(msg.id)
	case notify.ActionDeleteRepresentative:
		m.cache.RemoveRepresentative(msg.id)
	}
	m.clampSelection()
	return m.showBanner(label+" deleted successfully!", notify.Success)
}

func (m Model) handleSearched(msg searchedMsg) (tea.Model, tea.Cmd) {
	m.searchBusy = false
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("search failed")
		return m.showBanner("Search failed: "+msg.err.Error(), notify.Error)
	}
	m.results = msg.results
	m.searched = true
	return m, nil
}

func (m Model) handleDetailLoaded(msg detailLoadedMsg) (tea.Model, tea.Cmd) {
	// A stale load for a vendor no longer in focus is dropped.
	if m.focusVendor == nil || m.focusVendor.ID != msg.vendorID {
		return m, nil
	}
	m.detailLoading = false
	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("vendor_id", msg.vendorID).Msg("detail fetch failed")
		m.detailErr = msg.err.Error()
		return m, nil
	}
	m.detailErr = ""
	m.detailReps = msg.reps
	m.detailProducts = msg.products
	return m, nil
}

func (m Model) handleFeedChanged(msg feedChangedMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		m.log.Warn().Msg("realtime feed closed")
		m.feed = nil
		return m, nil
	}

	relisten := listenFeedCmd(m.feed)
	if !m.authed {
		return m, relisten
	}

	var refetch tea.Cmd
	switch msg.table {
	case models.TableVendors:
		refetch = m.fetchVendorsCmd()
	case models.TableProducts:
		refetch = m.fetchProductsCmd()
	case models.TableRepresentatives:
		refetch = m.fetchRepresentativesCmd()
	}
	if refetch == nil {
		return m, relisten
	}
	return m, tea.Batch(refetch, relisten)
}

// clampSelection keeps the list cursor inside the active collection
// after it shrinks.
func (m *Model) clampSelection() {
	size := 0
	switch m.screen {
	case ScreenVendors:
		size = len(m.cache.Vendors)
	case ScreenProducts:
		size = len(m.cache.Products)
	case ScreenRepresentatives:
		size = len(m.cache.Representatives)
	default:
		return
	}
	if m.selectedRow >= size {
		m.selectedRow = size - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

func entityLabel(entity forms.EntityType) string {
	switch entity {
	case forms.EntityVendor:
		return "Vendor"
	case forms.EntityProduct:
		return "Product"
	default:
		return "Representative"
	}
}

func actionLabel(action notify.Action) string {
	switch action {
	case notify.ActionDeleteVendor:
		return "Vendor"
	case notify.ActionDeleteProduct:
		return "Product"
	default:
		return "Representative"
	}
}

func actionNoun(action notify.Action) string {
	switch action {
	case notify.ActionDeleteVendor:
		return "vendor"
	case notify.ActionDeleteProduct:
		return "product"
	default:
		return "representative"
	}
}
