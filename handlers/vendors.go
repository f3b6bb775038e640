// ABOUTME: Vendor MCP tool handlers
// ABOUTME: Implements add_vendor, list_vendors, update_vendor, and delete_vendor tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tessaly/vendordesk/gateway"
	"github.com/tessaly/vendordesk/models"
)

type VendorHandlers struct {
	gw gateway.Gateway
}

func NewVendorHandlers(gw gateway.Gateway) *VendorHandlers {
	return &VendorHandlers{gw: gw}
}

type AddVendorInput struct {
	Name               string `json:"name" jsonschema:"Vendor name (required)"`
	Address            string `json:"address,omitempty" jsonschema:"Street address"`
	City               string `json:"city,omitempty" jsonschema:"City"`
	State              string `json:"state,omitempty" jsonschema:"State or region"`
	ZipCode            string `json:"zip_code,omitempty" jsonschema:"Postal code"`
	Phone              string `json:"phone,omitempty" jsonschema:"Phone number"`
	Email              string `json:"email,omitempty" jsonschema:"Email address"`
	Website            string `json:"website,omitempty" jsonschema:"Website URL"`
	Notes              string `json:"notes,omitempty" jsonschema:"Free-form notes"`
	ContactPreferences string `json:"contact_preferences,omitempty" jsonschema:"Preferred contact channel and times"`
	ProcessNotes       string `json:"process_notes,omitempty" jsonschema:"Ordering and process notes"`
}

type VendorOutput struct {
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

func vendorToOutput(v models.Vendor) VendorOutput {
	return VendorOutput{
		ID:                 v.ID,
		Name:               v.Name,
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		ZipCode:            v.ZipCode,
		Phone:              v.Phone,
		Email:              v.Email,
		Website:            v.Website,
		Notes:              v.Notes,
		ContactPreferences: v.ContactPreferences,
		ProcessNotes:       v.ProcessNotes,
		CreatedAt:          v.CreatedAt,
	}
}

func (h *VendorHandlers) AddVendor(ctx context.Context, request *mcp.CallToolRequest, input AddVendorInput) (*mcp.CallToolResult, VendorOutput, error) {
	if input.Name == "" {
		return nil, VendorOutput{}, fmt.Errorf("name is required")
	}

	row := models.Row{
		"name":                input.Name,
		"address":             input.Address,
		"city":                input.City,
		"state":               input.State,
		"zip_code":            input.ZipCode,
		"phone":               input.Phone,
		"email":               input.Email,
		"website":             input.Website,
		"notes":               input.Notes,
		"contact_preferences": input.ContactPreferences,
		"process_notes":       input.ProcessNotes,
	}

	created, err := h.gw.Insert(ctx, models.TableVendors, row)
	if err != nil {
		return nil, VendorOutput{}, fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil, vendorToOutput(models.VendorFromRow(created)), nil
}

type ListVendorsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Substring filter on the vendor name"`
}

type ListVendorsOutput struct {
	Vendors []VendorOutput `json:"vendors"`
}

func (h *VendorHandlers) ListVendors(ctx context.Context, request *mcp.CallToolRequest, input ListVendorsInput) (*mcp.CallToolResult, ListVendorsOutput, error) {
	var (
		rows []models.Row
		err  error
	)
	if input.Query != "" {
		rows, err = h.gw.FetchFiltered(ctx, models.TableVendors, "name", input.Query)
	} else {
		rows, err = h.gw.FetchAll(ctx, models.TableVendors)
	}
	if err != nil {
		return nil, ListVendorsOutput{}, fmt.Errorf("failed to list vendors: %w", err)
	}

	out := make([]VendorOutput, len(rows))
	for i, row := range rows {
		out[i] = vendorToOutput(models.VendorFromRow(row))
	}
	return nil, ListVendorsOutput{Vendors: out}, nil
}

type UpdateVendorInput struct {
	ID                 string `json:"id" jsonschema:"Vendor ID (required)"`
	Name               string `json:"name,omitempty" jsonschema:"Updated vendor name"`
	Address            string `json:"address,omitempty" jsonschema:"Updated street address"`
	City               string `json:"city,omitempty" jsonschema:"Updated city"`
	State              string `json:"state,omitempty" jsonschema:"Updated state"`
	ZipCode            string `json:"zip_code,omitempty" jsonschema:"Updated postal code"`
	Phone              string `json:"phone,omitempty" jsonschema:"Updated phone number"`
	Email              string `json:"email,omitempty" jsonschema:"Updated email address"`
	Website            string `json:"website,omitempty" jsonschema:"Updated website URL"`
	Notes              string `json:"notes,omitempty" jsonschema:"Updated notes"`
	ContactPreferences string `json:"contact_preferences,omitempty" jsonschema:"Updated contact preferences"`
	ProcessNotes       string `json:"process_notes,omitempty" jsonschema:"Updated process notes"`
}

func (h *VendorHandlers) UpdateVendor(ctx context.Context, request *mcp.CallToolRequest, input UpdateVendorInput) (*mcp.CallToolResult, VendorOutput, error) {
	if input.ID == "" {
		return nil, VendorOutput{}, fmt.Errorf("id is required")
	}

	patch := models.Row{}
	set := func(field, value string) {
		if value != "" {
			patch[field] = value
		}
	}
	set("name", input.Name)
	set("address", input.Address)
	set("city", input.City)
	set("state", input.State)
	set("zip_code", input.ZipCode)
	set("phone", input.Phone)
	set("email", input.Email)
	set("website", input.Website)
	set("notes", input.Notes)
	set("contact_preferences", input.ContactPreferences)
	set("process_notes", input.ProcessNotes)
	if len(patch) == 0 {
		return nil, VendorOutput{}, fmt.Errorf("no fields to update")
	}

	updated, err := h.gw.Update(ctx, models.TableVendors, input.ID, patch)
	if err != nil {
		return nil, VendorOutput{}, fmt.Errorf("failed to update vendor: %w", err)
	}
	return nil, vendorToOutput(models.VendorFromRow(updated)), nil
}

type DeleteVendorInput struct {
	ID string `json:"id" jsonschema:"Vendor ID (required)"`
}

type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

func (h *VendorHandlers) DeleteVendor(ctx context.Context, request *mcp.CallToolRequest, input DeleteVendorInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	if err := h.gw.Delete(ctx, models.TableVendors, input.ID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete vendor: %w", err)
	}
	return nil, DeleteOutput{Deleted: true, ID: input.ID}, nil
}
