// ABOUTME: Product CLI commands
// ABOUTME: Human-friendly commands for managing products
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tessaly/vendordesk/export"
	"github.com/tessaly/vendordesk/gateway"
	"github.com/tessaly/vendordesk/models"
)

// AddProductCommand adds a new product.
func AddProductCommand(gw gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("add-product", flag.ExitOnError)
	name := fs.String("name", "", "Product name (required)")
	ptype := fs.String("type", "", "Product type or category")
	description := fs.String("description", "", "Product description")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	row := models.Row{
		"name":        *name,
		"type":        *ptype,
		"description": *description,
	}
	created, err := gw.Insert(context.Background(), models.TableProducts, row)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	p := models.ProductFromRow(created)
	fmt.Printf("✓ Product created: %s (ID: %s)\n", p.Name, p.ID)
	if p.Type != "" {
		fmt.Printf("  Type: %s\n", p.Type)
	}
	return nil
}

// ListProductsCommand lists products, optionally filtered by name or type.
func ListProductsCommand(gw gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("list-products", flag.ExitOnError)
	query := fs.String("query", "", "Substring filter on product name")
	ptype := fs.String("type", "", "Substring filter on product type")
	csvPath := fs.String("csv", "", "Write the list to a CSV file instead of printing")
	_ = fs.Parse(args)

	ctx := context.Background()
	var (
		rows []models.Row
		err  error
	)
	switch {
	case *query != "":
		rows, err = gw.FetchFiltered(ctx, models.TableProducts, "name", *query)
	case *ptype != "":
		rows, err = gw.FetchFiltered(ctx, models.TableProducts, "type", *ptype)
	default:
		rows, err = gw.FetchAll(ctx, models.TableProducts)
	}
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	if *csvPath != "" {
		if err := export.WriteFile(*csvPath, rows, export.ProductFields); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		fmt.Printf("✓ Wrote %d products to %s\n", len(rows), *csvPath)
		return nil
	}

	if len(rows) == 0 {
		fmt.Println("No products found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tDESCRIPTION")
	for _, row := range rows {
		p := models.ProductFromRow(row)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Type, p.Description)
	}
	return w.Flush()
}

// UpdateProductCommand updates fields on an existing product.
func UpdateProductCommand(gw gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("update-product", flag.ExitOnError)
	id := fs.String("id", "", "Product ID (required)")
	name := fs.String("name", "", "Updated name")
	ptype := fs.String("type", "", "Updated type")
	description := fs.String("description", "", "Updated description")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	patch := models.Row{}
	if *name != "" {
		patch["name"] = *name
	}
	if *ptype != "" {
		patch["type"] = *ptype
	}
	if *description != "" {
		patch["description"] = *description
	}
	if len(patch) == 0 {
		return fmt.Errorf("no fields to update")
	}

	updated, err := gw.Update(context.Background(), models.TableProducts, *id, patch)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	p := models.ProductFromRow(updated)
	fmt.Printf("✓ Product updated: %s (ID: %s)\n", p.Name, p.ID)
	return nil
}

// DeleteProductCommand deletes a product by ID.
func DeleteProductCommand(gw gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("delete-product", flag.ExitOnError)
	id := fs.String("id", "", "Product ID (required)")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	if err := gw.Delete(context.Background(), models.TableProducts, *id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	fmt.Printf("✓ Product deleted (ID: %s)\n", *id)
	return nil
}
