// ABOUTME: Gateway contract for the remote relational store
// ABOUTME: Generic fetch/filter/join/insert/update/delete over named tables
package gateway

import (
	"context"
	"fmt"

	"github.com/tessaly/vendordesk/models"
)

// Gateway fronts the portal's relational store. FetchFiltered is a
// case-insensitive substring match; FetchMatching is exact equality.
// All implementations must honor the same row conventions:
//
//   - representatives rows carry the joined vendor display name, either as
//     a flat "vendor_name" field or a nested "vendors" object;
//   - FetchJoined on vendor_products filtered by product_id returns vendor
//     rows annotated with "product_name";
//   - FetchJoined on vendor_products filtered by vendor_id returns the
//     product rows the vendor offers;
//   - Insert and Update return the canonical stored row, including any
//     store-assigned identity and defaults.
type Gateway interface {
	FetchAll(ctx context.Context, table string) ([]models.Row, error)
	FetchFiltered(ctx context.Context, table, field, term string) ([]models.Row, error)
	FetchMatching(ctx context.Context, table, field, value string) ([]models.Row, error)
	FetchJoined(ctx context.Context, joinTable, filterField, id string) ([]models.Row, error)
	Insert(ctx context.Context, table string, record models.Row) (models.Row, error)
	Update(ctx context.Context, table, id string, patch models.Row) (models.Row, error)
	Delete(ctx context.Context, table, id string) error
}

// VendorProductLinker is the optional write surface for the
// vendor_products join table. The portal workflows only read the join;
// linking is a CLI and seeding concern, so it sits outside Gateway.
type VendorProductLinker interface {
	LinkVendorProduct(ctx context.Context, vendorID, productID string) error
}

// Error is a remote-call failure. Status is the HTTP status for REST
// gateways and zero otherwise.
type Error struct {
	Op      string
	Table   string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Table, e.Message)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
