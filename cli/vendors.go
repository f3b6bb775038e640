// ABOUTME: Vendor CLI commands
// ABOUTME: Human-friendly commands for managing vendors
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

// AddVendorCommand adds a new vendor.
func AddVendorCommand(gw gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("add-vendor", flag.ExitOnError)
	name := fs.String("name", "", "Vendor name (required)")
	address := fs.String("address", "", "Street address")
	city := fs.String("city", "", "City")
	state := fs.String("state", "", "State")
	zip := fs.String("zip", "", "ZIP code")
	phone := fs.String("phone", "", "Phone number")
	email := fs.String("email", "", "Email address")
	website := fs.String("website", "", "Website URL")
	notes := fs.String("notes", "", "Notes about the vendor")
	contactPrefs := fs.String("contact-preferences", "", "Preferred contact channel")
	processNotes := fs.String("process-notes", "", "Ordering and process notes")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	row := models.Row{
		"name":                *name,
		"address":             *address,
		"city":                *city,
		"state":               *state,
		"zip_code":            *zip,
		"phone":               *phone,
		"email":               *email,
		"website":             *website,
		"notes":               *notes,
		"contact_preferences": *contactPrefs,
		"process_notes":       *processNotes,
	}
	created, err := gw.Insert(context.Background(), models.TableVendors, row)
	if err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}

	v := models.VendorFromRow(created)
	fmt.Printf("✓ Vendor created: %s (ID: %s)\n", v.Name, v.ID)
	if v.City != "" {
		fmt.Printf("  City: %s\n", v.City)
	}
	if v.Email != "" {
		fmt.Printf("  Email: %s\n", v.Email)
	}
	return nil
}

// ListVendorsCommand lists vendors, optionally filtered by name.
func ListVendorsCommand(gw gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("list-vendors", flag.ExitOnError)
	query := fs.String("query", "", "Substring filter on vendor name")
	csvPath := fs.String("csv", "", "Write the list to a CSV file instead of printing")
	_ = fs.Parse(args)

	ctx := context.Background()
	var (
		rows []models.Row
		err  error
	)
	if *query != "" {
		rows, err = gw.FetchFiltered(ctx, models.TableVendors, "name", *query)
	} else {
		rows, err = gw.FetchAll(ctx, models.TableVendors)
	}
	if err != nil {
		return fmt.Errorf("failed to list vendors: %w", err)
	}

	if *csvPath != "" {
		if err := export.WriteFile(*csvPath, rows, export.VendorFields); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		fmt.Printf("✓ Wrote %d vendors to %s\n", len(rows), *csvPath)
		return nil
	}

	if len(rows) == 0 {
		fmt.Println("No vendors found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCITY\tPHONE\tEMAIL")
	for _, row := range rows {
		v := models.VendorFromRow(row)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", v.ID, v.Name, v.City, v.Phone, v.Email)
	}
	return w.Flush()
}

// UpdateVendorCommand updates fields on an existing vendor.
func UpdateVendorCommand(gw gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("update-vendor", flag.ExitOnError)
	id := fs.String("id", "", "Vendor ID (required)")
	name := fs.String("name", "", "Updated name")
	address := fs.String("address", "", "Updated street address")
	city := fs.String("city", "", "Updated city")
	state := fs.String("state", "", "Updated state")
	zip := fs.String("zip", "", "Updated ZIP code")
	phone := fs.String("phone", "", "Updated phone number")
	email := fs.String("email", "", "Updated email address")
	website := fs.String("website", "", "Updated website URL")
	notes := fs.String("notes", "", "Updated notes")
	contactPrefs := fs.String("contact-preferences", "", "Updated contact preferences")
	processNotes := fs.String("process-notes", "", "Updated process notes")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	patch := models.Row{}
	set := func(field, value string) {
		if value != "" {
			patch[field] = value
		}
	}
	set("name", *name)
	set("address", *address)
	set("city", *city)
	set("state", *state)
	set("zip_code", *zip)
	set("phone", *phone)
	set("email", *email)
	set("website", *website)
	set("notes", *notes)
	set("contact_preferences", *contactPrefs)
	set("process_notes", *processNotes)
	if len(patch) == 0 {
		return fmt.Errorf("no fields to update")
	}

	updated, err := gw.Update(context.Background(), models.TableVendors, *id, patch)
	if err != nil {
		return fmt.Errorf("failed to update vendor: %w", err)
	}
	v := models.VendorFromRow(updated)
	fmt.Printf("✓ Vendor updated: %s (ID: %s)\n", v.Name, v.ID)
	return nil
}

// DeleteVendorCommand deletes a vendor by ID.
func DeleteVendorCommand(gw gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("delete-vendor", flag.ExitOnError)
	id := fs.String("id", "", "Vendor ID (required)")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	if err := gw.Delete(context.Background(), models.TableVendors, *id); err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	fmt.Printf("✓ Vendor deleted (ID: %s)\n", *id)
	return nil
}
