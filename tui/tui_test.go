// ABOUTME: State-transition tests for the portal model
// ABOUTME: Drives Update with keys and completion messages against a fake gateway
package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tessaly/vendordesk/forms"
	"github.com/tessaly/vendordesk/models"
	"github.com/tessaly/vendordesk/notify"
	"github.com/tessaly/vendordesk/session"
)

// fakeGateway serves canned rows and counts mutating calls.
type fakeGateway struct {
	insertRow   models.Row
	insertErr   error
	updateRow   models.Row
	updateErr   error
	deleteErr   error
	fetchCalls  int
	insertCalls int
	updateCalls int
	deleteCalls int
	searchCalls int
}

func (g *fakeGateway) FetchAll(ctx context.Context, table string) ([]models.Row, error) {
	g.fetchCalls++
	return nil, nil
}

func (g *fakeGateway) FetchFiltered(ctx context.Context, table, field, term string) ([]models.Row, error) {
	g.searchCalls++
	return nil, nil
}

func (g *fakeGateway) FetchMatching(ctx context.Context, table, field, value string) ([]models.Row, error) {
	g.searchCalls++
	return nil, nil
}

func (g *fakeGateway) FetchJoined(ctx context.Context, joinTable, filterField, id string) ([]models.Row, error) {
	g.searchCalls++
	return nil, nil
}

func (g *fakeGateway) Insert(ctx context.Context, table string, record models.Row) (models.Row, error) {
	g.insertCalls++
	return g.insertRow, g.insertErr
}

func (g *fakeGateway) Update(ctx context.Context, table, id string, patch models.Row) (models.Row, error) {
	g.updateCalls++
	return g.updateRow, g.updateErr
}

func (g *fakeGateway) Delete(ctx context.Context, table, id string) error {
	g.deleteCalls++
	return g.deleteErr
}

func sampleVendors() []models.Vendor {
	return []models.Vendor{
		{ID: "v1", Name: "Acme Supply", City: "Chicago"},
		{ID: "v2", Name: "Widget Works", City: "Denver"},
	}
}

func sampleProducts() []models.Product {
	return []models.Product{{ID: "p1", Name: "Widget", Type: "Hardware"}}
}

func sampleRepresentatives() []models.Representative {
	return []models.Representative{{ID: "r1", VendorID: "v1", Name: "Ann Lee", VendorName: "Acme Supply"}}
}

// bootedModel builds an authed model with the bootstrap fetches already
// resolved, so no loading gate is in the way.
func bootedModel(t *testing.T, gw *fakeGateway) Model {
	t.Helper()
	m := New(gw, session.NewStatic("test@acme.test"), nil, zerolog.Nop())

	next, _ := m.Update(vendorsLoadedMsg{vendors: sampleVendors()})
	next, _ = next.(Model).Update(productsLoadedMsg{products: sampleProducts()})
	next, _ = next.(Model).Update(representativesLoadedMsg{reps: sampleRepresentatives()})

	m = next.(Model)
	if m.booting {
		t.Fatal("model should be done booting after the three collection loads")
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(key))
	return next.(Model), cmd
}

func TestBootingSwallowsKeys(t *testing.T) {
	m := New(&fakeGateway{}, session.NewStatic("test@acme.test"), nil, zerolog.Nop())
	if !m.booting {
		t.Fatal("model with a persisted session should start booting")
	}

	next, cmd := press(t, m, "1")
	if next.screen != ScreenDashboard {
		t.Errorf("screen = %v, keys must be ignored while booting", next.screen)
	}
	if cmd != nil {
		t.Error("no command should run for keys during boot")
	}
}

func TestBannerStaleTimerCannotClearNewerMessage(t *testing.T) {
	m := bootedModel(t, &fakeGateway{})

	m, _ = m.showBanner("first", notify.Success)
	staleGen := m.banner.Gen
	m, _ = m.showBanner("second", notify.Error)

	next, _ := m.Update(bannerExpiredMsg{gen: staleGen})
	m = next.(Model)
	if !m.banner.Active() || m.banner.Message != "second" {
		t.Fatalf("stale expiry cleared the newer banner: %+v", m.banner)
	}

	next, _ = m.Update(bannerExpiredMsg{gen: m.banner.Gen})
	m = next.(Model)
	if m.banner.Active() {
		t.Fatalf("current-generation expiry should clear the banner: %+v", m.banner)
	}
}

func TestSavedInsertAppendsCanonicalRow(t *testing.T) {
	m := bootedModel(t, &fakeGateway{})
	m = m.navigate(ScreenVendors)
	m = m.navigate(ScreenAddVendor)

	row := models.Row{"id": "v3", "name": "Canonical Name", "city": "Boston"}
	next, _ := m.Update(savedMsg{entity: forms.EntityVendor, row: row})
	m = next.(Model)

	if len(m.cache.Vendors) != 3 {
		t.Fatalf("vendor count = %d, want 3", len(m.cache.Vendors))
	}
	got := m.cache.Vendors[2]
	if got.ID != "v3" || got.Name != "Canonical Name" || got.City != "Boston" {
		t.Errorf("appended vendor = %+v, want the stored row's values", got)
	}
	if m.screen != ScreenVendors {
		t.Errorf("screen = %v, save from the form should land on the list", m.screen)
	}
	if m.submitting {
		t.Error("submitting flag should drop on completion")
	}
	if !m.banner.Active() || m.banner.Severity != notify.Success {
		t.Errorf("expected a success banner, got %+v", m.banner)
	}
}

func TestSavedEditReplacesInPlace(t *testing.T) {
	m := bootedModel(t, &fakeGateway{})

	row := models.Row{"id": "v1", "name": "Acme Supply", "city": "Chicago"}
	next, _ := m.Update(savedMsg{entity: forms.EntityVendor, row: row, editing: true})
	m = next.(Model)

	if len(m.cache.Vendors) != 2 {
		t.Fatalf("vendor count = %d, edit must not change the count", len(m.cache.Vendors))
	}
	if m.cache.Vendors[0].ID != "v1" || m.cache.Vendors[0].Name != "Acme Supply" {
		t.Errorf("vendor v1 = %+v", m.cache.Vendors[0])
	}
}

func TestSavedFailureKeepsFormUp(t *testing.T) {
	m := bootedModel(t, &fakeGateway{})
	m = m.navigate(ScreenAddProduct)
	m.submitting = true

	next, _ := m.Update(savedMsg{entity: forms.EntityProduct, err: fmt.Errorf("boom")})
	m = next.(Model)

	if m.screen != ScreenAddProduct {
		t.Errorf("screen = %v, a failed save must not navigate away", m.screen)
	}
	if m.submitting {
		t.Error("submitting flag should drop so the form can be retried")
	}
	if !m.banner.Active() || m.banner.Severity != notify.Error {
		t.Errorf("expected an error banner, got %+v", m.banner)
	}
	if len(m.cache.Products) != 1 {
		t.Errorf("product count = %d, failed save must not touch the cache", len(m.cache.Products))
	}
}

func TestSavedRepresentativeRefetchesCollection(t *testing.T) {
	gw := &fakeGateway{}
	m := bootedModel(t, gw)
	m = m.navigate(ScreenAddRepresentative)

	row := models.Row{"id": "r2", "vendor_id": "v1", "name": "Bo Chen"}
	next, cmd := m.Update(savedMsg{entity: forms.EntityRepresentative, row: row})
	m = next.(Model)

	// The returned row lacks the joined vendor name, so the cache is not
	// patched locally; the whole collection is refetched instead.
	if len(m.cache.Representatives) != 1 {
		t.Fatalf("representative count = %d, the saved row must not be patched in", len(m.cache.Representatives))
	}
	if m.screen != ScreenRepresentatives {
		t.Errorf("screen = %v, save from the form should land on the list", m.screen)
	}
	if !m.banner.Active() || m.banner.Severity != notify.Success {
		t.Errorf("expected a success banner, got %+v", m.banner)
	}
	if cmd == nil {
		t.Fatal("save should dispatch the refetch")
	}

	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("command resolved to %T, want a batch", cmd())
	}
	msgs := make(chan tea.Msg, len(batch))
	for _, c := range batch {
		go func(c tea.Cmd) { msgs <- c() }(c)
	}
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-msgs:
			if _, ok := msg.(representativesLoadedMsg); ok {
				if gw.fetchCalls != 1 {
					t.Errorf("fetch calls = %d, want exactly one representatives fetch", gw.fetchCalls)
				}
				return
			}
		case <-deadline:
			t.Fatal("no representatives fetch was dispatched")
		}
	}
}

func TestModalConfirmDispatchesDeleteOnce(t *testing.T) {
	gw := &fakeGateway{}
	m := bootedModel(t, gw)
	m = m.navigate(ScreenVendors)

	m, _ = press(t, m, "d")
	if !m.modal.Open() || !m.modal.Confirm {
		t.Fatalf("expected a confirm modal, got %+v", m.modal)
	}
	if !strings.Contains(m.modal.Message, "Acme Supply") {
		t.Errorf("modal message %q should name the record", m.modal.Message)
	}

	m, cmd := press(t, m, "y")
	if m.modal.Open() {
		t.Error("modal should close on confirm")
	}
	if !m.deleteBusy {
		t.Error("deleteBusy should be set while the delete is in flight")
	}
	if cmd == nil {
		t.Fatal("confirm should dispatch the delete command")
	}

	msg, ok := cmd().(deletedMsg)
	if !ok {
		t.Fatalf("command resolved to %T, want deletedMsg", cmd())
	}
	if gw.deleteCalls != 1 {
		t.Errorf("delete calls = %d, want exactly 1", gw.deleteCalls)
	}
	if msg.id != "v1" || msg.action != notify.ActionDeleteVendor {
		t.Errorf("deletedMsg = %+v", msg)
	}
}

func TestModalCancelNeverDeletes(t *testing.T) {
	gw := &fakeGateway{}
	m := bootedModel(t, gw)
	m = m.navigate(ScreenVendors)

	m, _ = press(t, m, "d")
	m, cmd := press(t, m, "n")

	if m.modal.Open() {
		t.Error("modal should close on cancel")
	}
	if cmd != nil {
		t.Error("cancel must not dispatch a command")
	}
	if gw.deleteCalls != 0 {
		t.Errorf("delete calls = %d, want 0", gw.deleteCalls)
	}
	if len(m.cache.Vendors) != 2 {
		t.Errorf("vendor count = %d, cancel must not touch the cache", len(m.cache.Vendors))
	}
}

func TestDeletedSuccessRemovesRecord(t *testing.T) {
	m := bootedModel(t, &fakeGateway{})
	m = m.navigate(ScreenVendors)

	next, _ := m.Update(deletedMsg{action: notify.ActionDeleteVendor, id: "v1"})
	m = next.(Model)

	if len(m.cache.Vendors) != 1 || m.cache.Vendors[0].ID != "v2" {
		t.Errorf("vendors after delete = %+v", m.cache.Vendors)
	}
	if !m.banner.Active() || m.banner.Severity != notify.Success {
		t.Errorf("expected a success banner, got %+v", m.banner)
	}
}

func TestDeletedFailureKeepsRecord(t *testing.T) {
	m := bootedModel(t, &fakeGateway{})
	m.deleteBusy = true

	next, _ := m.Update(deletedMsg{action: notify.ActionDeleteVendor, id: "v1", err: fmt.Errorf("conflict")})
	m = next.(Model)

	if len(m.cache.Vendors) != 2 {
		t.Errorf("vendor count = %d, failed delete must keep the record", len(m.cache.Vendors))
	}
	if m.deleteBusy {
		t.Error("deleteBusy should drop on completion")
	}
	if !m.banner.Active() || m.banner.Severity != notify.Error {
		t.Errorf("expected an error banner, got %+v", m.banner)
	}
}

func TestDeletedVendorInFocusLeavesDetails(t *testing.T) {
	m := bootedModel(t, &fakeGateway{})
	m = m.navigate(ScreenVendors)
	m, _ = press(t, m, "enter")
	if m.screen != ScreenVendorDetails || m.focusVendor == nil {
		t.Fatalf("expected vendor details focus, screen=%v", m.screen)
	}

	next, _ := m.Update(deletedMsg{action: notify.ActionDeleteVendor, id: "v1"})
	m = next.(Model)

	if m.focusVendor != nil {
		t.Error("focus vendor should clear when the focused record is deleted")
	}
	if m.screen != ScreenVendors {
		t.Errorf("screen = %v, details of a deleted vendor should fall back to the list", m.screen)
	}
}

func TestStaleDetailLoadIsDropped(t *testing.T) {
	m := bootedModel(t, &fakeGateway{})
	m = m.navigate(ScreenVendors)
	m, _ = press(t, m, "enter") // focus v1

	next, _ := m.Update(detailLoadedMsg{
		vendorID: "v2",
		reps:     sampleRepresentatives(),
	})
	m = next.(Model)

	if len(m.detailReps) != 0 {
		t.Error("a detail load for a different vendor must be dropped")
	}
	if !m.detailLoading {
		t.Error("the in-flight load for the focused vendor is still pending")
	}

	next, _ = m.Update(detailLoadedMsg{vendorID: "v1", reps: sampleRepresentatives()})
	m = next.(Model)
	if m.detailLoading || len(m.detailReps) != 1 {
		t.Errorf("matching load should apply: loading=%v reps=%d", m.detailLoading, len(m.detailReps))
	}
}

func TestNavigateClearsDraftAndFocus(t *testing.T) {
	m := bootedModel(t, &fakeGateway{})
	m = m.navigate(ScreenAddVendor)
	if m.draft == nil {
		t.Fatal("entering the add screen should start a draft")
	}

	m = m.navigate(ScreenVendors)
	if m.draft != nil {
		t.Error("leaving for a list screen should discard the draft")
	}

	m = m.navigate(ScreenVendors)
	m, _ = press(t, m, "enter")
	m = m.navigate(ScreenDashboard)
	if m.focusVendor != nil {
		t.Error("leaving for the dashboard should drop the vendor focus")
	}
}

func TestSearchEmptyTermBannersWithoutGatewayCall(t *testing.T) {
	gw := &fakeGateway{}
	m := bootedModel(t, gw)
	m = m.navigate(ScreenSearch)

	m, _ = press(t, m, "enter")

	if gw.searchCalls != 0 {
		t.Errorf("search calls = %d, validation must run before the gateway", gw.searchCalls)
	}
	if m.searchBusy {
		t.Error("searchBusy must not be set for a rejected query")
	}
	if !m.banner.Active() || m.banner.Severity != notify.Error {
		t.Errorf("expected an error banner, got %+v", m.banner)
	}
}

func TestSignedOutResetsEverything(t *testing.T) {
	m := bootedModel(t, &fakeGateway{})
	m = m.navigate(ScreenVendors)
	m, _ = press(t, m, "enter")

	next, _ := m.Update(signedOutMsg{})
	m = next.(Model)

	if m.authed {
		t.Fatal("model should be signed out")
	}
	if len(m.cache.Vendors)+len(m.cache.Products)+len(m.cache.Representatives) != 0 {
		t.Error("cache should be empty after sign-out")
	}
	if m.focusVendor != nil || m.draft != nil {
		t.Error("focus and draft should clear on sign-out")
	}
	if m.screen != ScreenDashboard || !m.loginMode {
		t.Errorf("screen=%v loginMode=%v, expected the login screen", m.screen, m.loginMode)
	}
	if !m.banner.Active() || m.banner.Severity != notify.Success {
		t.Errorf("expected a logout banner, got %+v", m.banner)
	}
}

func TestSignInRepopulatesFromFreshFetches(t *testing.T) {
	m := bootedModel(t, &fakeGateway{})
	next, _ := m.Update(signedOutMsg{})
	m = next.(Model)

	next, cmd := m.Update(authDoneMsg{identity: &session.Identity{UserID: "u1", Email: "ann@acme.test"}})
	m = next.(Model)

	if !m.authed || m.identity == nil {
		t.Fatal("model should be signed in again")
	}
	if !m.booting || m.bootPending != 3 {
		t.Errorf("booting=%v pending=%d, sign-in must gate on the three fetches", m.booting, m.bootPending)
	}
	if cmd == nil {
		t.Fatal("sign-in should dispatch the bootstrap fetches")
	}
	if len(m.cache.Vendors) != 0 {
		t.Error("the pre-logout cache must not survive into the new session")
	}
}

func TestAuthRequiresEmailAndPassword(t *testing.T) {
	m := New(&fakeGateway{}, &emptySession{}, nil, zerolog.Nop())
	if m.authed {
		t.Fatal("model without a session should start at the auth screen")
	}

	m, cmd := press(t, m, "enter")
	if cmd == nil {
		t.Fatal("expected the banner expiry command")
	}
	if m.authBusy {
		t.Error("authBusy must not be set for empty credentials")
	}
	if !m.banner.Active() || m.banner.Severity != notify.Error {
		t.Errorf("expected an error banner, got %+v", m.banner)
	}
}

// emptySession is the signed-out auth gate.
type emptySession struct{}

func (emptySession) Current() *session.Identity { return nil }
func (emptySession) SignIn(context.Context, string, string) (*session.Identity, error) {
	return nil, nil
}
func (emptySession) SignUp(context.Context, string, string) (*session.Identity, error) {
	return nil, nil
}
func (emptySession) SignOut(context.Context) error { return nil }
