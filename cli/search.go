// ABOUTME: Cross-entity search CLI command
// ABOUTME: One kind, one term or product ID, tabular output
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tessaly/vendordesk/gateway"
	"github.com/tessaly/vendordesk/search"
)

// SearchCommand searches vendors and products.
func SearchCommand(gw gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	kind := fs.String("kind", "vendor-name",
		"Search kind: vendor-name, product-name, product-type, or vendors-by-product")
	term := fs.String("term", "", "Substring search term")
	productID := fs.String("product-id", "", "Product ID for vendors-by-product")
	_ = fs.Parse(args)

	k, err := search.ParseKind(*kind)
	if err != nil {
		return err
	}

	results, err := search.Dispatch(context.Background(), gw, search.Query{
		Kind:      k,
		Term:      *term,
		ProductID: *productID,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if results.Count() == 0 {
		fmt.Println("No results found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	switch results.Kind {
	case search.KindVendorName:
		fmt.Fprintln(w, "ID\tNAME\tCITY\tPHONE\tEMAIL")
		for _, v := range results.Vendors {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", v.ID, v.Name, v.City, v.Phone, v.Email)
		}
	case search.KindProductName, search.KindProductType:
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tDESCRIPTION")
		for _, p := range results.Products {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Type, p.Description)
		}
	case search.KindVendorsByProduct:
		fmt.Fprintln(w, "ID\tVENDOR\tCITY\tPRODUCT")
		for _, match := range results.Matches {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", match.ID, match.Name, match.City, match.ProductName)
		}
	}
	return w.Flush()
}
