// ABOUTME: Tests for the add/edit draft model
// ABOUTME: Covers validation, field immutability, and patch round-trips
package forms

import (
	"errors"
	"testing"

	"github.com/tessaly/vendordesk/models"
)

func TestNewDraftStartsBlank(t *testing.T) {
	d := NewDraft(EntityVendor)
	if d.IsEditing() {
		t.Error("New draft should not be editing")
	}
	for _, field := range FieldOrder(EntityVendor) {
		if d.Fields[field] != "" {
			t.Errorf("Field %s should start empty, got %q", field, d.Fields[field])
		}
	}
}

func TestSetIsCopyOnWrite(t *testing.T) {
	d := NewDraft(EntityProduct)
	d2 := d.Set("name", "Widget")

	if d.Fields["name"] != "" {
		t.Error("Original draft was mutated by Set")
	}
	if d2.Fields["name"] != "Widget" {
		t.Errorf("Expected name 'Widget', got %q", d2.Fields["name"])
	}
}

func TestSetIgnoresUnknownField(t *testing.T) {
	d := NewDraft(EntityProduct).Set("bogus", "value")
	if _, ok := d.Fields["bogus"]; ok {
		t.Error("Set should not add fields outside the entity's field order")
	}
}

func TestVendorIDImmutableWhenEditing(t *testing.T) {
	rep := models.Representative{ID: "r1", VendorID: "v1", Name: "Ann"}
	d := EditRepresentative(rep)

	d = d.Set("vendor_id", "v2")
	if d.Fields["vendor_id"] != "v1" {
		t.Errorf("vendor_id changed to %q while editing, want v1", d.Fields["vendor_id"])
	}

	// On a fresh draft the vendor is still assignable.
	fresh := NewDraft(EntityRepresentative).Set("vendor_id", "v2")
	if fresh.Fields["vendor_id"] != "v2" {
		t.Errorf("vendor_id on a new draft should be settable, got %q", fresh.Fields["vendor_id"])
	}
}

func TestValidateRequiresName(t *testing.T) {
	for _, entity := range []EntityType{EntityVendor, EntityProduct} {
		d := NewDraft(entity)
		err := d.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Expected ValidationError for blank %s, got %v", entity, err)
		}
		if verr.Field != "name" {
			t.Errorf("Expected failing field 'name', got %q", verr.Field)
		}
		if d.Set("name", "x").Validate() != nil {
			t.Errorf("%s with a name should validate", entity)
		}
	}
}

func TestValidateRepresentativeRequiresVendor(t *testing.T) {
	d := NewDraft(EntityRepresentative).Set("name", "Ann")
	var verr *ValidationError
	if err := d.Validate(); !errors.As(err, &verr) || verr.Field != "vendor" {
		t.Fatalf("Expected vendor validation error, got %v", err)
	}
	if d.Set("vendor_id", "v1").Validate() != nil {
		t.Error("Representative with vendor and name should validate")
	}
}

func TestUntouchedEditPatchRoundTrips(t *testing.T) {
	v := models.Vendor{
		ID: "v1", Name: "Acme", Address: "1 Main St", City: "Springfield",
		State: "IL", ZipCode: "62704", Phone: "555-0100", Email: "a@acme.test",
		Website: "acme.test", Notes: "note", ContactPreferences: "email",
		ProcessNotes: "net 30",
	}

	patch := EditVendor(v).Patch()
	want := models.Row{
		"name": "Acme", "address": "1 Main St", "city": "Springfield",
		"state": "IL", "zip_code": "62704", "phone": "555-0100",
		"email": "a@acme.test", "website": "acme.test", "notes": "note",
		"contact_preferences": "email", "process_notes": "net 30",
	}
	if len(patch) != len(want) {
		t.Fatalf("Patch has %d fields, want %d", len(patch), len(want))
	}
	for k, v := range want {
		if patch[k] != v {
			t.Errorf("patch[%s] = %v, want %v", k, patch[k], v)
		}
	}
}

func TestPatchCoversEveryField(t *testing.T) {
	d := NewDraft(EntityProduct).Set("name", "Widget")
	patch := d.Patch()
	for _, field := range FieldOrder(EntityProduct) {
		if _, ok := patch[field]; !ok {
			t.Errorf("Patch missing field %s", field)
		}
	}
}
