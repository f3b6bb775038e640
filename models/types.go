// ABOUTME: Data models for portal entities
// ABOUTME: Defines Vendor, Product, Representative and row conversions
package models

// Table names in the backing store.
const (
	TableVendors         = "vendors"
	TableProducts        = "products"
	TableRepresentatives = "representatives"
	TableVendorProducts  = "vendor_products"
)

// Row is the generic record shape the gateway speaks: one JSON object
// per table row, keyed by column name.
type Row = map[string]any

type Vendor struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Address            string `json:"address,omitempty"`
	City               string `json:"city,omitempty"`
	State              string `json:"state,omitempty"`
	ZipCode            string `json:"zip_code,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Email              string `json:"email,omitempty"`
	Website            string `json:"website,omitempty"`
	Notes              string `json:"notes,omitempty"`
	ContactPreferences string `json:"contact_preferences,omitempty"`
	ProcessNotes       string `json:"process_notes,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
}

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Representative belongs to exactly one vendor. VendorName is a
// denormalized display field filled in by the gateway when the list is
// fetched with its vendor join; it is never written back.
type Representative struct {
	ID         string `json:"id"`
	VendorID   string `json:"vendor_id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Title      string `json:"title,omitempty"`
	VendorName string `json:"vendor_name,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// VendorMatch is a vendor row annotated with the product that matched a
// vendors-by-product search.
type VendorMatch struct {
	Vendor
	ProductName string `json:"product_name"`
}

func str(r Row, key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

func VendorFromRow(r Row) Vendor {
	return Vendor{
		ID:                 str(r, "id"),
		Name:               str(r, "name"),
		Address:            str(r, "address"),
		City:               str(r, "city"),
		State:              str(r, "state"),
		ZipCode:            str(r, "zip_code"),
		Phone:              str(r, "phone"),
		Email:              str(r, "email"),
		Website:            str(r, "website"),
		Notes:              str(r, "notes"),
		ContactPreferences: str(r, "contact_preferences"),
		ProcessNotes:       str(r, "process_notes"),
		CreatedAt:          str(r, "created_at"),
	}
}

func (v Vendor) ToRow() Row {
	return Row{
		"id":                  v.ID,
		"name":                v.Name,
		"address":             v.Address,
		"city":                v.City,
		"state":               v.State,
		"zip_code":            v.ZipCode,
		"phone":               v.Phone,
		"email":               v.Email,
		"website":             v.Website,
		"notes":               v.Notes,
		"contact_preferences": v.ContactPreferences,
		"process_notes":       v.ProcessNotes,
	}
}

func ProductFromRow(r Row) Product {
	return Product{
		ID:          str(r, "id"),
		Name:        str(r, "name"),
		Type:        str(r, "type"),
		Description: str(r, "description"),
		CreatedAt:   str(r, "created_at"),
	}
}

func (p Product) ToRow() Row {
	return Row{
		"id":          p.ID,
		"name":        p.Name,
		"type":        p.Type,
		"description": p.Description,
	}
}

func RepresentativeFromRow(r Row) Representative {
	rep := Representative{
		ID:         str(r, "id"),
		VendorID:   str(r, "vendor_id"),
		Name:       str(r, "name"),
		Email:      str(r, "email"),
		Phone:      str(r, "phone"),
		Title:      str(r, "title"),
		VendorName: str(r, "vendor_name"),
		CreatedAt:  str(r, "created_at"),
	}
	// A REST gateway returns the joined vendor as a nested object.
	if rep.VendorName == "" {
		if nested, ok := r["vendors"].(map[string]any); ok {
			rep.VendorName = str(nested, "name")
		}
	}
	return rep
}

func (rep Representative) ToRow() Row {
	return Row{
		"id":        rep.ID,
		"vendor_id": rep.VendorID,
		"name":      rep.Name,
		"email":     rep.Email,
		"phone":     rep.Phone,
		"title":     rep.Title,
	}
}

func VendorMatchFromRow(r Row) VendorMatch {
	return VendorMatch{
		Vendor:      VendorFromRow(r),
		ProductName: str(r, "product_name"),
	}
}
