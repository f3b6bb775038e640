// ABOUTME: Representative CLI commands
// ABOUTME: Human-friendly commands for managing vendor representatives
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

// AddRepresentativeCommand adds a new representative under a vendor.
func AddRepresentativeCommand(gw gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("add-representative", flag.ExitOnError)
	vendorID := fs.String("vendor-id", "", "Owning vendor ID (required)")
	name := fs.String("name", "", "Representative name (required)")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	title := fs.String("title", "", "Job title")
	_ = fs.Parse(args)

	if *vendorID == "" {
		return fmt.Errorf("--vendor-id is required")
	}
	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	row := models.Row{
		"vendor_id": *vendorID,
		"name":      *name,
		"email":     *email,
		"phone":     *phone,
		"title":     *title,
	}
	created, err := gw.Insert(context.Background(), models.TableRepresentatives, row)
	if err != nil {
		return fmt.Errorf("failed to create representative: %w", err)
	}

	r := models.RepresentativeFromRow(created)
	fmt.Printf("✓ Representative created: %s (ID: %s)\n", r.Name, r.ID)
	if r.Title != "" {
		fmt.Printf("  Title: %s\n", r.Title)
	}
	return nil
}

// ListRepresentativesCommand lists representatives, optionally for one vendor.
func ListRepresentativesCommand(gw gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("list-representatives", flag.ExitOnError)
	vendorID := fs.String("vendor-id", "", "Filter by owning vendor ID")
	csvPath := fs.String("csv", "", "Write the list to a CSV file instead of printing")
	_ = fs.Parse(args)

	ctx := context.Background()
	var (
		rows []models.Row
		err  error
	)
	if *vendorID != "" {
		rows, err = gw.FetchMatching(ctx, models.TableRepresentatives, "vendor_id", *vendorID)
	} else {
		rows, err = gw.FetchAll(ctx, models.TableRepresentatives)
	}
	if err != nil {
		return fmt.Errorf("failed to list representatives: %w", err)
	}

	if *csvPath != "" {
		reps := make([]models.Representative, len(rows))
		for i, row := range rows {
			reps[i] = models.RepresentativeFromRow(row)
		}
		if err := export.WriteFile(*csvPath, export.RepresentativeRows(reps), export.RepresentativeFields); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		fmt.Printf("✓ Wrote %d representatives to %s\n", len(rows), *csvPath)
		return nil
	}

	if len(rows) == 0 {
		fmt.Println("No representatives found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVENDOR\tEMAIL\tPHONE\tTITLE")
	for _, row := range rows {
		r := models.RepresentativeFromRow(row)
		vendor := r.VendorName
		if vendor == "" {
			vendor = r.VendorID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, vendor, r.Email, r.Phone, r.Title)
	}
	return w.Flush()
}

// UpdateRepresentativeCommand updates fields on an existing
// representative. The owning vendor cannot be changed.
func UpdateRepresentativeCommand(gw gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("update-representative", flag.ExitOnError)
	id := fs.String("id", "", "Representative ID (required)")
	name := fs.String("name", "", "Updated name")
	email := fs.String("email", "", "Updated email address")
	phone := fs.String("phone", "", "Updated phone number")
	title := fs.String("title", "", "Updated job title")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	patch := models.Row{}
	if *name != "" {
		patch["name"] = *name
	}
	if *email != "" {
		patch["email"] = *email
	}
	if *phone != "" {
		patch["phone"] = *phone
	}
	if *title != "" {
		patch["title"] = *title
	}
	if len(patch) == 0 {
		return fmt.Errorf("no fields to update")
	}

	updated, err := gw.Update(context.Background(), models.TableRepresentatives, *id, patch)
	if err != nil {
		return fmt.Errorf("failed to update representative: %w", err)
	}
	r := models.RepresentativeFromRow(updated)
	fmt.Printf("✓ Representative updated: %s (ID: %s)\n", r.Name, r.ID)
	return nil
}

// DeleteRepresentativeCommand deletes a representative by ID.
func DeleteRepresentativeCommand(gw gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("delete-representative", flag.ExitOnError)
	id := fs.String("id", "", "Representative ID (required)")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	if err := gw.Delete(context.Background(), models.TableRepresentatives, *id); err != nil {
		return fmt.Errorf("failed to delete representative: %w", err)
	}
	fmt.Printf("✓ Representative deleted (ID: %s)\n", *id)
	return nil
}
