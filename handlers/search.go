// ABOUTME: Cross-entity search MCP tool handler
// ABOUTME: Implements the search_records tool over the four search kinds
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tessaly/vendordesk/gateway"
	"github.com/tessaly/vendordesk/search"
)

type SearchHandlers struct {
	gw gateway.Gateway
}

func NewSearchHandlers(gw gateway.Gateway) *SearchHandlers {
	return &SearchHandlers{gw: gw}
}

type SearchInput struct {
	Kind      string `json:"kind" jsonschema:"Search kind: vendor-name, product-name, product-type, or vendors-by-product"`
	Term      string `json:"term,omitempty" jsonschema:"Substring search term (required except for vendors-by-product)"`
	ProductID string `json:"product_id,omitempty" jsonschema:"Product ID (required for vendors-by-product)"`
}

type VendorMatchOutput struct {
	VendorOutput
	ProductName string `json:"product_name,omitempty"`
}

type SearchOutput struct {
	Kind     string              `json:"kind"`
	Count    int                 `json:"count"`
	Vendors  []VendorOutput      `json:"vendors,omitempty"`
	Products []ProductOutput     `json:"products,omitempty"`
	Matches  []VendorMatchOutput `json:"matches,omitempty"`
}

func (h *SearchHandlers) Search(ctx context.Context, request *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	kind, err := search.ParseKind(input.Kind)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	results, err := search.Dispatch(ctx, h.gw, search.Query{
		Kind:      kind,
		Term:      input.Term,
		ProductID: input.ProductID,
	})
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("search failed: %w", err)
	}

	out := SearchOutput{Kind: input.Kind, Count: results.Count()}
	for _, v := range results.Vendors {
		out.Vendors = append(out.Vendors, vendorToOutput(v))
	}
	for _, p := range results.Products {
		out.Products = append(out.Products, productToOutput(p))
	}
	for _, match := range results.Matches {
		out.Matches = append(out.Matches, VendorMatchOutput{
			VendorOutput: vendorToOutput(match.Vendor),
			ProductName:  match.ProductName,
		})
	}
	return nil, out, nil
}
