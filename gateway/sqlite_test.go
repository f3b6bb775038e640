// ABOUTME: Tests for the SQLite gateway
// ABOUTME: Runs the full contract against an in-memory database
package gateway

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tessaly/vendordesk/models"
)

func setupTestGateway(t *testing.T) *SQLite {
	t.Helper()
	g, err := OpenMemory(zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to open in-memory gateway: %v", err)
	}
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func mustInsert(t *testing.T, g *SQLite, table string, record models.Row) models.Row {
	t.Helper()
	row, err := g.Insert(context.Background(), table, record)
	if err != nil {
		t.Fatalf("Insert into %s failed: %v", table, err)
	}
	return row
}

func TestInsertReturnsCanonicalRow(t *testing.T) {
	g := setupTestGateway(t)

	row := mustInsert(t, g, models.TableVendors, models.Row{
		"name": "Acme", "city": "Springfield",
	})

	id, _ := row["id"].(string)
	if id == "" {
		t.Fatal("Store should assign an id")
	}
	if created, _ := row["created_at"].(string); created == "" {
		t.Error("Store should assign created_at")
	}
	if row["name"] != "Acme" || row["city"] != "Springfield" {
		t.Errorf("Canonical row lost fields: %+v", row)
	}

	// Client-supplied identity is ignored.
	row2 := mustInsert(t, g, models.TableVendors, models.Row{"id": "forced", "name": "Globex"})
	if row2["id"] == "forced" {
		t.Error("Client-supplied id should be ignored")
	}
}

func TestInsertUnknownTable(t *testing.T) {
	g := setupTestGateway(t)
	if _, err := g.Insert(context.Background(), "secrets", models.Row{"name": "x"}); err == nil {
		t.Fatal("Insert into an unknown table should fail")
	}
}

func TestFetchFilteredIsCaseInsensitiveSubstring(t *testing.T) {
	g := setupTestGateway(t)
	mustInsert(t, g, models.TableProducts, models.Row{"name": "Industrial Widget", "type": "hardware"})
	mustInsert(t, g, models.TableProducts, models.Row{"name": "Gizmo", "type": "software"})

	rows, err := g.FetchFiltered(context.Background(), models.TableProducts, "name", "WIDGET")
	if err != nil {
		t.Fatalf("FetchFiltered failed: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "Industrial Widget" {
		t.Errorf("Expected the widget row, got %+v", rows)
	}

	if _, err := g.FetchFiltered(context.Background(), models.TableProducts, "password", "x"); err == nil {
		t.Error("Filtering an unknown field should fail")
	}
}

func TestFetchMatchingExactEquality(t *testing.T) {
	g := setupTestGateway(t)
	v := mustInsert(t, g, models.TableVendors, models.Row{"name": "Acme"})
	vid := v["id"].(string)
	mustInsert(t, g, models.TableRepresentatives, models.Row{"vendor_id": vid, "name": "Ann"})
	mustInsert(t, g, models.TableRepresentatives, models.Row{"vendor_id": "other", "name": "Bob"})

	rows, err := g.FetchMatching(context.Background(), models.TableRepresentatives, "vendor_id", vid)
	if err != nil {
		t.Fatalf("FetchMatching failed: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "Ann" {
		t.Errorf("Expected only Ann, got %+v", rows)
	}
}

func TestRepresentativesCarryVendorName(t *testing.T) {
	g := setupTestGateway(t)
	v := mustInsert(t, g, models.TableVendors, models.Row{"name": "Acme"})
	mustInsert(t, g, models.TableRepresentatives, models.Row{
		"vendor_id": v["id"], "name": "Ann",
	})

	rows, err := g.FetchAll(context.Background(), models.TableRepresentatives)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 representative, got %d", len(rows))
	}
	if rows[0]["vendor_name"] != "Acme" {
		t.Errorf("Representative should carry the joined vendor name, got %+v", rows[0])
	}

	rep := models.RepresentativeFromRow(rows[0])
	if rep.VendorName != "Acme" {
		t.Errorf("RepresentativeFromRow dropped vendor name: %+v", rep)
	}
}

func TestUpdateReplacesFieldsAndReturnsRow(t *testing.T) {
	g := setupTestGateway(t)
	v := mustInsert(t, g, models.TableVendors, models.Row{"name": "Acme", "city": "Springfield"})
	id := v["id"].(string)

	updated, err := g.Update(context.Background(), models.TableVendors, id, models.Row{"city": "Shelbyville"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated["city"] != "Shelbyville" || updated["name"] != "Acme" {
		t.Errorf("Update returned wrong row: %+v", updated)
	}
	if updated["created_at"] != v["created_at"] {
		t.Error("Update must not touch created_at")
	}
}

func TestUpdateMissingRow(t *testing.T) {
	g := setupTestGateway(t)
	if _, err := g.Update(context.Background(), models.TableVendors, "nope", models.Row{"name": "x"}); err == nil {
		t.Fatal("Updating a missing row should fail")
	}
}

func TestDelete(t *testing.T) {
	g := setupTestGateway(t)
	v := mustInsert(t, g, models.TableVendors, models.Row{"name": "Acme"})
	id := v["id"].(string)

	if err := g.Delete(context.Background(), models.TableVendors, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	rows, err := g.FetchAll(context.Background(), models.TableVendors)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Vendor should be gone, got %+v", rows)
	}
}

func TestFetchJoinedBothDirections(t *testing.T) {
	g := setupTestGateway(t)
	ctx := context.Background()

	v := mustInsert(t, g, models.TableVendors, models.Row{"name": "Acme", "city": "Springfield"})
	p := mustInsert(t, g, models.TableProducts, models.Row{"name": "Widget", "type": "hardware"})
	vid, pid := v["id"].(string), p["id"].(string)

	if err := g.LinkVendorProduct(ctx, vid, pid); err != nil {
		t.Fatalf("LinkVendorProduct failed: %v", err)
	}
	// Linking twice is idempotent.
	if err := g.LinkVendorProduct(ctx, vid, pid); err != nil {
		t.Fatalf("Repeated link failed: %v", err)
	}

	vendors, err := g.FetchJoined(ctx, models.TableVendorProducts, "product_id", pid)
	if err != nil {
		t.Fatalf("FetchJoined by product failed: %v", err)
	}
	if len(vendors) != 1 || vendors[0]["name"] != "Acme" {
		t.Fatalf("Expected Acme, got %+v", vendors)
	}
	if vendors[0]["product_name"] != "Widget" {
		t.Errorf("Vendor match should carry the product name, got %+v", vendors[0])
	}

	products, err := g.FetchJoined(ctx, models.TableVendorProducts, "vendor_id", vid)
	if err != nil {
		t.Fatalf("FetchJoined by vendor failed: %v", err)
	}
	if len(products) != 1 || products[0]["name"] != "Widget" {
		t.Errorf("Expected Widget, got %+v", products)
	}

	if _, err := g.FetchJoined(ctx, models.TableVendors, "product_id", pid); err == nil {
		t.Error("Joining a non-join table should fail")
	}
}
