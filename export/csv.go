// ABOUTME: Delimited-text export of entity rows
// ABOUTME: Rows plus an explicit field order become a CSV artifact
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/tessaly/vendordesk/models"
)

// Field orders match the portal's export headers per entity.
var (
	VendorFields = []string{
		"name", "address", "city", "state", "zip_code", "phone", "email",
		"website", "notes", "contact_preferences", "process_notes",
	}
	ProductFields        = []string{"name", "type", "description"}
	RepresentativeFields = []string{"name", "email", "phone", "title", "vendor_name"}
)

// Write emits a header row then one record per row, in field order.
// Values that are nested objects with a name (a joined record) flatten to
// that name.
func Write(w io.Writer, rows []models.Row, fields []string) error {
	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(fields); err != nil {
		return err
	}

	record := make([]string, len(fields))
	for _, row := range rows {
		for i, field := range fields {
			record[i] = cellValue(row[field])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the rows to a named CSV file.
func WriteFile(path string, rows []models.Row, fields []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, rows, fields); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cellValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any:
		if name, ok := val["name"].(string); ok {
			return name
		}
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

// VendorRows converts vendors for export.
func VendorRows(vendors []models.Vendor) []models.Row {
	rows := make([]models.Row, len(vendors))
	for i, v := range vendors {
		rows[i] = v.ToRow()
	}
	return rows
}

// ProductRows converts products for export.
func ProductRows(products []models.Product) []models.Row {
	rows := make([]models.Row, len(products))
	for i, p := range products {
		rows[i] = p.ToRow()
	}
	return rows
}

// RepresentativeRows converts representatives for export, carrying the
// joined vendor display name.
func RepresentativeRows(reps []models.Representative) []models.Row {
	rows := make([]models.Row, len(reps))
	for i, r := range reps {
		row := r.ToRow()
		row["vendor_name"] = r.VendorName
		rows[i] = row
	}
	return rows
}
