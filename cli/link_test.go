// ABOUTME: Tests for the vendor-product link command
// ABOUTME: Runs the command against the in-memory store
package cli

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tessaly/vendordesk/gateway"
	"github.com/tessaly/vendordesk/models"
	"github.com/tessaly/vendordesk/search"
)

func openTestStore(t *testing.T) *gateway.SQLite {
	t.Helper()
	gw, err := gateway.OpenMemory(zerolog.Nop())
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { gw.Close() })
	return gw
}

func TestLinkVendorProductCommand(t *testing.T) {
	gw := openTestStore(t)
	ctx := context.Background()

	vendor, err := gw.Insert(ctx, models.TableVendors, models.Row{"name": "Acme Supply"})
	if err != nil {
		t.Fatal(err)
	}
	product, err := gw.Insert(ctx, models.TableProducts, models.Row{"name": "Widget"})
	if err != nil {
		t.Fatal(err)
	}
	vendorID, _ := vendor["id"].(string)
	productID, _ := product["id"].(string)

	args := []string{"-vendor-id", vendorID, "-product-id", productID}
	if err := LinkVendorProductCommand(gw, args); err != nil {
		t.Fatalf("LinkVendorProductCommand failed: %v", err)
	}
	// Linking the same pair again is a no-op, not an error.
	if err := LinkVendorProductCommand(gw, args); err != nil {
		t.Fatalf("repeat link failed: %v", err)
	}

	results, err := search.Dispatch(ctx, gw, search.Query{
		Kind:      search.KindVendorsByProduct,
		ProductID: productID,
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(results.Matches) != 1 || results.Matches[0].Name != "Acme Supply" {
		t.Errorf("Matches = %+v, the linked vendor should be findable by product", results.Matches)
	}
	if results.Matches[0].ProductName != "Widget" {
		t.Errorf("ProductName = %q", results.Matches[0].ProductName)
	}
}

func TestLinkVendorProductCommandRequiresBothIDs(t *testing.T) {
	gw := openTestStore(t)

	if err := LinkVendorProductCommand(gw, []string{"-vendor-id", "v1"}); err == nil {
		t.Error("missing -product-id should be rejected")
	}
	if err := LinkVendorProductCommand(gw, []string{"-product-id", "p1"}); err == nil {
		t.Error("missing -vendor-id should be rejected")
	}
}
