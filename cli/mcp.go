// ABOUTME: MCP server subcommand
// ABOUTME: Exposes the vendor portal tools over stdio for agent integration
package cli

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tessaly/vendordesk/gateway"
	"github.com/tessaly/vendordesk/handlers"
)

// MCPCommand starts the MCP server on stdio.
func MCPCommand(gw gateway.Gateway) error {
	log.Println("Starting vendordesk MCP server...")

	vendorHandlers := handlers.NewVendorHandlers(gw)
	productHandlers := handlers.NewProductHandlers(gw)
	repHandlers := handlers.NewRepresentativeHandlers(gw)
	searchHandlers := handlers.NewSearchHandlers(gw)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "vendordesk",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_vendor",
		Description: "Add a new vendor to the portal",
	}, vendorHandlers.AddVendor)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_vendors",
		Description: "List vendors, optionally filtered by a name substring",
	}, vendorHandlers.ListVendors)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_vendor",
		Description: "Update an existing vendor's information",
	}, vendorHandlers.UpdateVendor)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_vendor",
		Description: "Delete a vendor by ID",
	}, vendorHandlers.DeleteVendor)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_product",
		Description: "Add a new product to the portal",
	}, productHandlers.AddProduct)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_products",
		Description: "List products, optionally filtered by name or type substring",
	}, productHandlers.ListProducts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_product",
		Description: "Update an existing product's information",
	}, productHandlers.UpdateProduct)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_product",
		Description: "Delete a product by ID",
	}, productHandlers.DeleteProduct)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_representative",
		Description: "Add a representative under a vendor",
	}, repHandlers.AddRepresentative)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_representatives",
		Description: "List representatives, optionally for a single vendor",
	}, repHandlers.ListRepresentatives)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_representative",
		Description: "Update a representative's contact information",
	}, repHandlers.UpdateRepresentative)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_representative",
		Description: "Delete a representative by ID",
	}, repHandlers.DeleteRepresentative)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_records",
		Description: "Search vendors and products by name, type, or product link",
	}, searchHandlers.Search)

	return server.Run(context.Background(), &mcp.StdioTransport{})
}
