// ABOUTME: Async commands and their completion messages
// ABOUTME: Every gateway call runs here and resolves to a typed message
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessaly/vendordesk/forms"
	"github.com/tessaly/vendordesk/gateway"
	"github.com/tessaly/vendordesk/models"
	"github.com/tessaly/vendordesk/notify"
	"github.com/tessaly/vendordesk/search"
	"github.com/tessaly/vendordesk/session"
)

type vendorsLoadedMsg struct {
	vendors []models.Vendor
	err     error
}

type productsLoadedMsg struct {
	products []models.Product
	err      error
}

type representativesLoadedMsg struct {
	reps []models.Representative
	err  error
}

type authDoneMsg struct {
	identity *session.Identity
	signup   bool
	err      error
}

type signedOutMsg struct {
	err error
}

type savedMsg struct {
	entity  forms.EntityType
	row     models.Row
	editing bool
	err     error
}

type deletedMsg struct {
	action notify.Action
	id     string
	err    error
}

type searchedMsg struct {
	results search.Results
	err     error
}

type detailLoadedMsg struct {
	vendorID string
	reps     []models.Representative
	products []models.Product
	err      error
}

type bannerExpiredMsg struct {
	gen int
}

type feedChangedMsg struct {
	table string
	ok    bool
}

func (m Model) fetchVendorsCmd() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		rows, err := gw.FetchAll(context.Background(), models.TableVendors)
		if err != nil {
			return vendorsLoadedMsg{err: err}
		}
		vendors := make([]models.Vendor, 0, len(rows))
		for _, row := range rows {
			vendors = append(vendors, models.VendorFromRow(row))
		}
		return vendorsLoadedMsg{vendors: vendors}
	}
}

func (m Model) fetchProductsCmd() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		rows, err := gw.FetchAll(context.Background(), models.TableProducts)
		if err != nil {
			return productsLoadedMsg{err: err}
		}
		products := make([]models.Product, 0, len(rows))
		for _, row := range rows {
			products = append(products, models.ProductFromRow(row))
		}
		return productsLoadedMsg{products: products}
	}
}

func (m Model) fetchRepresentativesCmd() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		rows, err := gw.FetchAll(context.Background(), models.TableRepresentatives)
		if err != nil {
			return representativesLoadedMsg{err: err}
		}
		reps := make([]models.Representative, 0, len(rows))
		for _, row := range rows {
			reps = append(reps, models.RepresentativeFromRow(row))
		}
		return representativesLoadedMsg{reps: reps}
	}
}

func (m Model) signInCmd(email, password string, signup bool) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		var (
			id  *session.Identity
			err error
		)
		if signup {
			id, err = sess.SignUp(context.Background(), email, password)
		} else {
			id, err = sess.SignIn(context.Background(), email, password)
		}
		return authDoneMsg{identity: id, signup: signup, err: err}
	}
}

func (m Model) signOutCmd() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		return signedOutMsg{err: sess.SignOut(context.Background())}
	}
}

func (m Model) submitDraftCmd(d forms.Draft) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx := context.Background()
		if d.IsEditing() {
			row, err := gw.Update(ctx, d.Entity.Table(), d.EditingID, d.Patch())
			return savedMsg{entity: d.Entity, row: row, editing: true, err: err}
		}
		row, err := gw.Insert(ctx, d.Entity.Table(), d.Patch())
		return savedMsg{entity: d.Entity, row: row, err: err}
	}
}

func (m Model) deleteCmd(action notify.Action, id string) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		var table string
		switch action {
		case notify.ActionDeleteVendor:
			table = models.TableVendors
		case notify.ActionDeleteProduct:
			table = models.TableProducts
		case notify.ActionDeleteRepresentative:
			table = models.TableRepresentatives
		default:
			return deletedMsg{action: action, id: id}
		}
		err := gw.Delete(context.Background(), table, id)
		return deletedMsg{action: action, id: id, err: err}
	}
}

func (m Model) searchCmd(q search.Query) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		results, err := search.Dispatch(context.Background(), gw, q)
		return searchedMsg{results: results, err: err}
	}
}

func (m Model) detailCmd(vendorID string) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx := context.Background()

		repRows, err := gw.FetchMatching(ctx, models.TableRepresentatives, "vendor_id", vendorID)
		if err != nil {
			return detailLoadedMsg{vendorID: vendorID, err: err}
		}
		reps := make([]models.Representative, 0, len(repRows))
		for _, row := range repRows {
			reps = append(reps, models.RepresentativeFromRow(row))
		}

		productRows, err := gw.FetchJoined(ctx, models.TableVendorProducts, "vendor_id", vendorID)
		if err != nil {
			return detailLoadedMsg{vendorID: vendorID, err: err}
		}
		products := make([]models.Product, 0, len(productRows))
		for _, row := range productRows {
			products = append(products, models.ProductFromRow(row))
		}

		return detailLoadedMsg{vendorID: vendorID, reps: reps, products: products}
	}
}

func bannerExpireCmd(gen int) tea.Cmd {
	return tea.Tick(notify.Lifetime, func(time.Time) tea.Msg {
		return bannerExpiredMsg{gen: gen}
	})
}

func listenFeedCmd(feed *gateway.Feed) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-feed.Changes()
		return feedChangedMsg{table: change.Table, ok: ok}
	}
}
