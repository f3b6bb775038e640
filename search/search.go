// ABOUTME: Cross-entity search dispatcher
// ABOUTME: Maps a search kind and term to exactly one gateway query
package search

import (
	"context"
	"errors"

	"github.com/tessaly/vendordesk/gateway"
	"github.com/tessaly/vendordesk/models"
)

type Kind int

const (
	KindVendorName Kind = iota
	KindProductName
	KindProductType
	KindVendorsByProduct
)

var kindLabels = map[Kind]string{
	KindVendorName:       "Vendor Name",
	KindProductName:      "Product Name",
	KindProductType:      "Product Type",
	KindVendorsByProduct: "Vendors by Product",
}

func (k Kind) String() string {
	return kindLabels[k]
}

// Kinds in display order.
func Kinds() []Kind {
	return []Kind{KindVendorName, KindProductName, KindProductType, KindVendorsByProduct}
}

// ParseKind maps the CLI spelling of a kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "vendor-name":
		return KindVendorName, nil
	case "product-name":
		return KindProductName, nil
	case "product-type":
		return KindProductType, nil
	case "vendors-by-product":
		return KindVendorsByProduct, nil
	}
	return 0, errors.New("unknown search kind " + s)
}

var (
	// ErrEmptyTerm rejects a blank substring search before dispatch.
	ErrEmptyTerm = errors.New("enter a search term")
	// ErrNoProduct rejects a vendors-by-product search without a product.
	ErrNoProduct = errors.New("select a product to search by")
)

// Query is one search submission. Substring kinds use Term; the join
// traversal uses ProductID.
type Query struct {
	Kind      Kind
	Term      string
	ProductID string
}

// Validate enforces the query invariants locally; an invalid query never
// produces a gateway call.
func (q Query) Validate() error {
	if q.Kind == KindVendorsByProduct {
		if q.ProductID == "" {
			return ErrNoProduct
		}
		return nil
	}
	if q.Term == "" {
		return ErrEmptyTerm
	}
	return nil
}

// Results replaces any prior result set entirely. Exactly one of the
// slices is populated, matching the query kind. Zero rows everywhere is a
// normal outcome, not a failure.
type Results struct {
	Kind     Kind
	Vendors  []models.Vendor
	Products []models.Product
	Matches  []models.VendorMatch
}

// Count is the number of rows found, whatever the kind.
func (r Results) Count() int {
	return len(r.Vendors) + len(r.Products) + len(r.Matches)
}

// Dispatch runs exactly one gateway query for the submission.
func Dispatch(ctx context.Context, gw gateway.Gateway, q Query) (Results, error) {
	if err := q.Validate(); err != nil {
		return Results{}, err
	}

	results := Results{Kind: q.Kind}
	switch q.Kind {
	case KindVendorName:
		rows, err := gw.FetchFiltered(ctx, models.TableVendors, "name", q.Term)
		if err != nil {
			return Results{}, err
		}
		for _, row := range rows {
			results.Vendors = append(results.Vendors, models.VendorFromRow(row))
		}

	case KindProductName, KindProductType:
		field := "name"
		if q.Kind == KindProductType {
			field = "type"
		}
		rows, err := gw.FetchFiltered(ctx, models.TableProducts, field, q.Term)
		if err != nil {
			return Results{}, err
		}
		for _, row := range rows {
			results.Products = append(results.Products, models.ProductFromRow(row))
		}

	case KindVendorsByProduct:
		rows, err := gw.FetchJoined(ctx, models.TableVendorProducts, "product_id", q.ProductID)
		if err != nil {
			return Results{}, err
		}
		for _, row := range rows {
			results.Matches = append(results.Matches, models.VendorMatchFromRow(row))
		}
	}

	return results, nil
}
