// ABOUTME: Tests for the in-memory collection cache
// ABOUTME: Verifies the optimistic patch operations and sign-out clear
package store

import (
	"testing"

	"github.com/tessaly/vendordesk/models"
)

func TestAddAndReplaceVendor(t *testing.T) {
	var c Cache
	c.AddVendor(models.Vendor{ID: "v1", Name: "Acme"})
	c.AddVendor(models.Vendor{ID: "v2", Name: "Globex"})

	c.ReplaceVendor(models.Vendor{ID: "v1", Name: "Acme Corp"})
	if got := c.VendorByID("v1"); got == nil || got.Name != "Acme Corp" {
		t.Errorf("ReplaceVendor did not update v1: %+v", got)
	}
	if len(c.Vendors) != 2 {
		t.Errorf("Replace should not change length, got %d", len(c.Vendors))
	}

	// Replacing an unknown id is a no-op.
	c.ReplaceVendor(models.Vendor{ID: "v9", Name: "Ghost"})
	if len(c.Vendors) != 2 || c.VendorByID("v9") != nil {
		t.Error("Replacing an unknown vendor should change nothing")
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	var c Cache
	c.SetProducts([]models.Product{
		{ID: "p1", Name: "A"},
		{ID: "p2", Name: "B"},
		{ID: "p3", Name: "C"},
	})

	c.RemoveProduct("p2")
	if len(c.Products) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(c.Products))
	}
	if c.Products[0].ID != "p1" || c.Products[1].ID != "p3" {
		t.Errorf("Remove broke ordering: %+v", c.Products)
	}

	c.RemoveProduct("p9")
	if len(c.Products) != 2 {
		t.Error("Removing an unknown product should change nothing")
	}
}

func TestClearDropsEverything(t *testing.T) {
	var c Cache
	c.SetVendors([]models.Vendor{{ID: "v1"}})
	c.SetProducts([]models.Product{{ID: "p1"}})
	c.SetRepresentatives([]models.Representative{{ID: "r1"}})

	c.Clear()
	if len(c.Vendors)+len(c.Products)+len(c.Representatives) != 0 {
		t.Errorf("Clear left data behind: %+v", c)
	}
}

func TestLookupsReturnNilWhenMissing(t *testing.T) {
	var c Cache
	if c.VendorByID("x") != nil || c.ProductByID("x") != nil || c.RepresentativeByID("x") != nil {
		t.Error("Lookups on an empty cache should return nil")
	}
}
