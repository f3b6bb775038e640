// ABOUTME: Tests for the search dispatcher
// ABOUTME: One gateway query per submission, none for invalid queries
package search

import (
	"context"
	"errors"
	"testing"

	"github.com/tessaly/vendordesk/models"
)

// recordingGateway captures the single query Dispatch is allowed to make.
type recordingGateway struct {
	calls   int
	lastOp  string
	table   string
	field   string
	value   string
	rows    []models.Row
	rowsErr error
}

func (g *recordingGateway) FetchAll(_ context.Context, table string) ([]models.Row, error) {
	g.calls++
	g.lastOp, g.table = "all", table
	return g.rows, g.rowsErr
}

func (g *recordingGateway) FetchFiltered(_ context.Context, table, field, term string) ([]models.Row, error) {
	g.calls++
	g.lastOp, g.table, g.field, g.value = "filtered", table, field, term
	return g.rows, g.rowsErr
}

func (g *recordingGateway) FetchMatching(_ context.Context, table, field, value string) ([]models.Row, error) {
	g.calls++
	g.lastOp, g.table, g.field, g.value = "matching", table, field, value
	return g.rows, g.rowsErr
}

func (g *recordingGateway) FetchJoined(_ context.Context, joinTable, filterField, id string) ([]models.Row, error) {
	g.calls++
	g.lastOp, g.table, g.field, g.value = "joined", joinTable, filterField, id
	return g.rows, g.rowsErr
}

func (g *recordingGateway) Insert(context.Context, string, models.Row) (models.Row, error) {
	g.calls++
	return nil, errors.New("unexpected insert")
}

func (g *recordingGateway) Update(context.Context, string, string, models.Row) (models.Row, error) {
	g.calls++
	return nil, errors.New("unexpected update")
}

func (g *recordingGateway) Delete(context.Context, string, string) error {
	g.calls++
	return errors.New("unexpected delete")
}

func TestEmptyTermNeverReachesGateway(t *testing.T) {
	gw := &recordingGateway{}
	_, err := Dispatch(context.Background(), gw, Query{Kind: KindVendorName})
	if !errors.Is(err, ErrEmptyTerm) {
		t.Fatalf("Expected ErrEmptyTerm, got %v", err)
	}
	if gw.calls != 0 {
		t.Errorf("Invalid query made %d gateway calls", gw.calls)
	}
}

func TestVendorsByProductRequiresProduct(t *testing.T) {
	gw := &recordingGateway{}
	_, err := Dispatch(context.Background(), gw, Query{Kind: KindVendorsByProduct})
	if !errors.Is(err, ErrNoProduct) {
		t.Fatalf("Expected ErrNoProduct, got %v", err)
	}
	if gw.calls != 0 {
		t.Errorf("Invalid query made %d gateway calls", gw.calls)
	}
}

func TestDispatchTargets(t *testing.T) {
	tests := []struct {
		name      string
		query     Query
		wantOp    string
		wantTable string
		wantField string
	}{
		{"vendor name", Query{Kind: KindVendorName, Term: "ac"}, "filtered", models.TableVendors, "name"},
		{"product name", Query{Kind: KindProductName, Term: "wi"}, "filtered", models.TableProducts, "name"},
		{"product type", Query{Kind: KindProductType, Term: "hw"}, "filtered", models.TableProducts, "type"},
		{"vendors by product", Query{Kind: KindVendorsByProduct, ProductID: "p1"}, "joined", models.TableVendorProducts, "product_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &recordingGateway{}
			results, err := Dispatch(context.Background(), gw, tt.query)
			if err != nil {
				t.Fatalf("Dispatch failed: %v", err)
			}
			if gw.calls != 1 {
				t.Errorf("Expected exactly 1 gateway call, got %d", gw.calls)
			}
			if gw.lastOp != tt.wantOp || gw.table != tt.wantTable || gw.field != tt.wantField {
				t.Errorf("Dispatched %s %s/%s, want %s %s/%s",
					gw.lastOp, gw.table, gw.field, tt.wantOp, tt.wantTable, tt.wantField)
			}
			if results.Kind != tt.query.Kind {
				t.Errorf("Results kind %v, want %v", results.Kind, tt.query.Kind)
			}
		})
	}
}

func TestZeroRowsIsNotAnError(t *testing.T) {
	gw := &recordingGateway{}
	results, err := Dispatch(context.Background(), gw, Query{Kind: KindVendorName, Term: "nothing"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if results.Count() != 0 {
		t.Errorf("Expected zero results, got %d", results.Count())
	}
}

func TestResultsPopulateMatchingSlice(t *testing.T) {
	gw := &recordingGateway{rows: []models.Row{
		{"id": "v1", "name": "Acme", "product_name": "Widget"},
	}}
	results, err := Dispatch(context.Background(), gw, Query{Kind: KindVendorsByProduct, ProductID: "p1"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(results.Matches) != 1 || len(results.Vendors) != 0 || len(results.Products) != 0 {
		t.Fatalf("Only Matches should be populated: %+v", results)
	}
	if results.Matches[0].Name != "Acme" || results.Matches[0].ProductName != "Widget" {
		t.Errorf("Match carries wrong data: %+v", results.Matches[0])
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, spelling := range []string{"vendor-name", "product-name", "product-type", "vendors-by-product"} {
		if _, err := ParseKind(spelling); err != nil {
			t.Errorf("ParseKind(%q) failed: %v", spelling, err)
		}
	}
	if _, err := ParseKind("bogus"); err == nil {
		t.Error("ParseKind should reject unknown kinds")
	}
}
