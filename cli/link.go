// ABOUTME: Vendor-product link command
// ABOUTME: Writes the join rows the vendors-by-product search traverses
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/tessaly/vendordesk/gateway"
)

// LinkVendorProductCommand records that a vendor offers a product.
// Linking an already-linked pair is a no-op.
func LinkVendorProductCommand(gw gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("link-vendor-product", flag.ExitOnError)
	vendorID := fs.String("vendor-id", "", "Vendor ID (required)")
	productID := fs.String("product-id", "", "Product ID (required)")
	_ = fs.Parse(args)

	if *vendorID == "" || *productID == "" {
		return fmt.Errorf("--vendor-id and --product-id are required")
	}

	linker, ok := gw.(gateway.VendorProductLinker)
	if !ok {
		return fmt.Errorf("the configured store does not support linking")
	}
	if err := linker.LinkVendorProduct(context.Background(), *vendorID, *productID); err != nil {
		return fmt.Errorf("failed to link vendor and product: %w", err)
	}
	fmt.Printf("✓ Linked vendor %s to product %s\n", *vendorID, *productID)
	return nil
}
