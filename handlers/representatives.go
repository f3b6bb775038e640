// ABOUTME: Representative MCP tool handlers
// ABOUTME: Implements add_representative, list_representatives, update_representative, and delete_representative tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tessaly/vendordesk/gateway"
	"github.com/tessaly/vendordesk/models"
)

type RepresentativeHandlers struct {
	gw gateway.Gateway
}

func NewRepresentativeHandlers(gw gateway.Gateway) *RepresentativeHandlers {
	return &RepresentativeHandlers{gw: gw}
}

type AddRepresentativeInput struct {
	VendorID string `json:"vendor_id" jsonschema:"Owning vendor ID (required)"`
	Name     string `json:"name" jsonschema:"Representative name (required)"`
	Email    string `json:"email,omitempty" jsonschema:"Email address"`
	Phone    string `json:"phone,omitempty" jsonschema:"Phone number"`
	Title    string `json:"title,omitempty" jsonschema:"Job title"`
}

type RepresentativeOutput struct {
	ID         string `json:"id"`
	VendorID   string `json:"vendor_id"`
	VendorName string `json:"vendor_name,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Title      string `json:"title,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

func representativeToOutput(r models.Representative) RepresentativeOutput {
	return RepresentativeOutput{
		ID:         r.ID,
		VendorID:   r.VendorID,
		VendorName: r.VendorName,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Title:      r.Title,
		CreatedAt:  r.CreatedAt,
	}
}

func (h *RepresentativeHandlers) AddRepresentative(ctx context.Context, request *mcp.CallToolRequest, input AddRepresentativeInput) (*mcp.CallToolResult, RepresentativeOutput, error) {
	if input.VendorID == "" {
		return nil, RepresentativeOutput{}, fmt.Errorf("vendor_id is required")
	}
	if input.Name == "" {
		return nil, RepresentativeOutput{}, fmt.Errorf("name is required")
	}

	row := models.Row{
		"vendor_id": input.VendorID,
		"name":      input.Name,
		"email":     input.Email,
		"phone":     input.Phone,
		"title":     input.Title,
	}
	created, err := h.gw.Insert(ctx, models.TableRepresentatives, row)
	if err != nil {
		return nil, RepresentativeOutput{}, fmt.Errorf("failed to create representative: %w", err)
	}
	return nil, representativeToOutput(models.RepresentativeFromRow(created)), nil
}

type ListRepresentativesInput struct {
	VendorID string `json:"vendor_id,omitempty" jsonschema:"Filter by owning vendor ID"`
}

type ListRepresentativesOutput struct {
	Representatives []RepresentativeOutput `json:"representatives"`
}

func (h *RepresentativeHandlers) ListRepresentatives(ctx context.Context, request *mcp.CallToolRequest, input ListRepresentativesInput) (*mcp.CallToolResult, ListRepresentativesOutput, error) {
	var (
		rows []models.Row
		err  error
	)
	if input.VendorID != "" {
		rows, err = h.gw.FetchMatching(ctx, models.TableRepresentatives, "vendor_id", input.VendorID)
	} else {
		rows, err = h.gw.FetchAll(ctx, models.TableRepresentatives)
	}
	if err != nil {
		return nil, ListRepresentativesOutput{}, fmt.Errorf("failed to list representatives: %w", err)
	}

	out := make([]RepresentativeOutput, len(rows))
	for i, row := range rows {
		out[i] = representativeToOutput(models.RepresentativeFromRow(row))
	}
	return nil, ListRepresentativesOutput{Representatives: out}, nil
}

type UpdateRepresentativeInput struct {
	ID    string `json:"id" jsonschema:"Representative ID (required)"`
	Name  string `json:"name,omitempty" jsonschema:"Updated name"`
	Email string `json:"email,omitempty" jsonschema:"Updated email address"`
	Phone string `json:"phone,omitempty" jsonschema:"Updated phone number"`
	Title string `json:"title,omitempty" jsonschema:"Updated job title"`
}

// The owning vendor is fixed at creation; updates never move a
// representative between vendors.
func (h *RepresentativeHandlers) UpdateRepresentative(ctx context.Context, request *mcp.CallToolRequest, input UpdateRepresentativeInput) (*mcp.CallToolResult, RepresentativeOutput, error) {
	if input.ID == "" {
		return nil, RepresentativeOutput{}, fmt.Errorf("id is required")
	}

	patch := models.Row{}
	if input.Name != "" {
		patch["name"] = input.Name
	}
	if input.Email != "" {
		patch["email"] = input.Email
	}
	if input.Phone != "" {
		patch["phone"] = input.Phone
	}
	if input.Title != "" {
		patch["title"] = input.Title
	}
	if len(patch) == 0 {
		return nil, RepresentativeOutput{}, fmt.Errorf("no fields to update")
	}

	updated, err := h.gw.Update(ctx, models.TableRepresentatives, input.ID, patch)
	if err != nil {
		return nil, RepresentativeOutput{}, fmt.Errorf("failed to update representative: %w", err)
	}
	return nil, representativeToOutput(models.RepresentativeFromRow(updated)), nil
}

type DeleteRepresentativeInput struct {
	ID string `json:"id" jsonschema:"Representative ID (required)"`
}

func (h *RepresentativeHandlers) DeleteRepresentative(ctx context.Context, request *mcp.CallToolRequest, input DeleteRepresentativeInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	if err := h.gw.Delete(ctx, models.TableRepresentatives, input.ID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete representative: %w", err)
	}
	return nil, DeleteOutput{Deleted: true, ID: input.ID}, nil
}
