// ABOUTME: Product MCP tool handlers
// ABOUTME: Implements add_product, list_products, update_product, and delete_product tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tessaly/vendordesk/gateway"
	"github.com/tessaly/vendordesk/models"
)

type ProductHandlers struct {
	gw gateway.Gateway
}

func NewProductHandlers(gw gateway.Gateway) *ProductHandlers {
	return &ProductHandlers{gw: gw}
}

type AddProductInput struct {
	Name        string `json:"name" jsonschema:"Product name (required)"`
	Type        string `json:"type,omitempty" jsonschema:"Product type or category"`
	Description string `json:"description,omitempty" jsonschema:"Product description"`
}

type ProductOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func productToOutput(p models.Product) ProductOutput {
	return ProductOutput{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func (h *ProductHandlers) AddProduct(ctx context.Context, request *mcp.CallToolRequest, input AddProductInput) (*mcp.CallToolResult, ProductOutput, error) {
	if input.Name == "" {
		return nil, ProductOutput{}, fmt.Errorf("name is required")
	}

	row := models.Row{
		"name":        input.Name,
		"type":        input.Type,
		"description": input.Description,
	}
	created, err := h.gw.Insert(ctx, models.TableProducts, row)
	if err != nil {
		return nil, ProductOutput{}, fmt.Errorf("failed to create product: %w", err)
	}
	return nil, productToOutput(models.ProductFromRow(created)), nil
}

type ListProductsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Substring filter on the product name"`
	Type  string `json:"type,omitempty" jsonschema:"Substring filter on the product type"`
}

type ListProductsOutput struct {
	Products []ProductOutput `json:"products"`
}

func (h *ProductHandlers) ListProducts(ctx context.Context, request *mcp.CallToolRequest, input ListProductsInput) (*mcp.CallToolResult, ListProductsOutput, error) {
	var (
		rows []models.Row
		err  error
	)
	switch {
	case input.Query != "":
		rows, err = h.gw.FetchFiltered(ctx, models.TableProducts, "name", input.Query)
	case input.Type != "":
		rows, err = h.gw.FetchFiltered(ctx, models.TableProducts, "type", input.Type)
	default:
		rows, err = h.gw.FetchAll(ctx, models.TableProducts)
	}
	if err != nil {
		return nil, ListProductsOutput{}, fmt.Errorf("failed to list products: %w", err)
	}

	out := make([]ProductOutput, len(rows))
	for i, row := range rows {
		out[i] = productToOutput(models.ProductFromRow(row))
	}
	return nil, ListProductsOutput{Products: out}, nil
}

type UpdateProductInput struct {
	ID          string `json:"id" jsonschema:"Product ID (required)"`
	Name        string `json:"name,omitempty" jsonschema:"Updated product name"`
	Type        string `json:"type,omitempty" jsonschema:"Updated product type"`
	Description string `json:"description,omitempty" jsonschema:"Updated description"`
}

func (h *ProductHandlers) UpdateProduct(ctx context.Context, request *mcp.CallToolRequest, input UpdateProductInput) (*mcp.CallToolResult, ProductOutput, error) {
	if input.ID == "" {
		return nil, ProductOutput{}, fmt.Errorf("id is required")
	}

	patch := models.Row{}
	if input.Name != "" {
		patch["name"] = input.Name
	}
	if input.Type != "" {
		patch["type"] = input.Type
	}
	if input.Description != "" {
		patch["description"] = input.Description
	}
	if len(patch) == 0 {
		return nil, ProductOutput{}, fmt.Errorf("no fields to update")
	}

	updated, err := h.gw.Update(ctx, models.TableProducts, input.ID, patch)
	if err != nil {
		return nil, ProductOutput{}, fmt.Errorf("failed to update product: %w", err)
	}
	return nil, productToOutput(models.ProductFromRow(updated)), nil
}

type DeleteProductInput struct {
	ID string `json:"id" jsonschema:"Product ID (required)"`
}

func (h *ProductHandlers) DeleteProduct(ctx context.Context, request *mcp.CallToolRequest, input DeleteProductInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	if err := h.gw.Delete(ctx, models.TableProducts, input.ID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete product: %w", err)
	}
	return nil, DeleteOutput{Deleted: true, ID: input.ID}, nil
}
