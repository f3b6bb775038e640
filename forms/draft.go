// ABOUTME: Unified add/edit form model
// ABOUTME: One draft per entity type, blank or seeded from an existing record
package forms

import (
	"fmt"

	"github.com/tessaly/vendordesk/models"
)

type EntityType int

const (
	EntityVendor EntityType = iota
	EntityProduct
	EntityRepresentative
)

func (e EntityType) String() string {
	switch e {
	case EntityVendor:
		return "vendor"
	case EntityProduct:
		return "product"
	case EntityRepresentative:
		return "representative"
	}
	return "unknown"
}

// Table returns the store table this entity lives in.
func (e EntityType) Table() string {
	switch e {
	case EntityVendor:
		return models.TableVendors
	case EntityProduct:
		return models.TableProducts
	case EntityRepresentative:
		return models.TableRepresentatives
	}
	return ""
}

// ValidationError is a required-field failure caught before any gateway
// call.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

// Draft is the transient editable copy of a record. EditingID is empty
// when composing a new record and holds the record id when editing; that
// tag is what makes submit choose insert vs update.
type Draft struct {
	Entity    EntityType
	EditingID string
	Fields    map[string]string
}

var fieldOrder = map[EntityType][]string{
	EntityVendor: {
		"name", "address", "city", "state", "zip_code", "phone", "email",
		"website", "notes", "contact_preferences", "process_notes",
	},
	EntityProduct:        {"name", "type", "description"},
	EntityRepresentative: {"vendor_id", "name", "email", "phone", "title"},
}

// FieldOrder lists an entity's editable fields in form order.
func FieldOrder(entity EntityType) []string {
	return fieldOrder[entity]
}

// FieldLabel is the human name shown next to a field input.
func FieldLabel(field string) string {
	switch field {
	case "zip_code":
		return "ZIP Code"
	case "contact_preferences":
		return "Contact Preferences"
	case "process_notes":
		return "Process Notes"
	case "vendor_id":
		return "Vendor"
	default:
		if field == "" {
			return ""
		}
		return string(field[0]-'a'+'A') + field[1:]
	}
}

// NewDraft starts a blank draft for the entity type.
func NewDraft(entity EntityType) Draft {
	fields := make(map[string]string, len(fieldOrder[entity]))
	for _, f := range fieldOrder[entity] {
		fields[f] = ""
	}
	return Draft{Entity: entity, Fields: fields}
}

// EditVendor seeds a draft from an existing vendor.
func EditVendor(v models.Vendor) Draft {
	d := NewDraft(EntityVendor)
	d.EditingID = v.ID
	d.Fields["name"] = v.Name
	d.Fields["address"] = v.Address
	d.Fields["city"] = v.City
	d.Fields["state"] = v.State
	d.Fields["zip_code"] = v.ZipCode
	d.Fields["phone"] = v.Phone
	d.Fields["email"] = v.Email
	d.Fields["website"] = v.Website
	d.Fields["notes"] = v.Notes
	d.Fields["contact_preferences"] = v.ContactPreferences
	d.Fields["process_notes"] = v.ProcessNotes
	return d
}

// EditProduct seeds a draft from an existing product.
func EditProduct(p models.Product) Draft {
	d := NewDraft(EntityProduct)
	d.EditingID = p.ID
	d.Fields["name"] = p.Name
	d.Fields["type"] = p.Type
	d.Fields["description"] = p.Description
	return d
}

// EditRepresentative seeds a draft from an existing representative.
func EditRepresentative(r models.Representative) Draft {
	d := NewDraft(EntityRepresentative)
	d.EditingID = r.ID
	d.Fields["vendor_id"] = r.VendorID
	d.Fields["name"] = r.Name
	d.Fields["email"] = r.Email
	d.Fields["phone"] = r.Phone
	d.Fields["title"] = r.Title
	return d
}

// IsEditing reports whether the draft was seeded from an existing record.
func (d Draft) IsEditing() bool {
	return d.EditingID != ""
}

// Set returns the draft with one field changed. A representative's
// vendor_id is immutable once an existing record is being edited; such a
// write is dropped.
func (d Draft) Set(field, value string) Draft {
	if d.Entity == EntityRepresentative && field == "vendor_id" && d.IsEditing() {
		return d
	}
	fields := make(map[string]string, len(d.Fields))
	for k, v := range d.Fields {
		fields[k] = v
	}
	if _, ok := fields[field]; ok {
		fields[field] = value
	}
	d.Fields = fields
	return d
}

// Validate checks required fields. It runs before any gateway call so a
// missing name never reaches the network.
func (d Draft) Validate() error {
	switch d.Entity {
	case EntityVendor, EntityProduct:
		if d.Fields["name"] == "" {
			return &ValidationError{Field: "name"}
		}
	case EntityRepresentative:
		if d.Fields["vendor_id"] == "" {
			return &ValidationError{Field: "vendor"}
		}
		if d.Fields["name"] == "" {
			return &ValidationError{Field: "name"}
		}
	default:
		return fmt.Errorf("unknown entity type %d", d.Entity)
	}
	return nil
}

// Patch is the record body submitted to the gateway: every editable field,
// so an untouched edit round-trips the original record unchanged.
func (d Draft) Patch() models.Row {
	patch := models.Row{}
	for _, f := range fieldOrder[d.Entity] {
		patch[f] = d.Fields[f]
	}
	return patch
}
