// ABOUTME: Entry point for the vendordesk TUI, CLI, and MCP server
// ABOUTME: Routes to the portal or to CLI commands based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tessaly/vendordesk/cli"
	"github.com/tessaly/vendordesk/config"
	"github.com/tessaly/vendordesk/gateway"
	"github.com/tessaly/vendordesk/logging"
	"github.com/tessaly/vendordesk/models"
	"github.com/tessaly/vendordesk/session"
	"github.com/tessaly/vendordesk/tui"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	offline := flag.Bool("offline", false, "Use the local SQLite store instead of the backend")
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("vendordesk version %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *offline {
		cfg.Offline = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	args := flag.Args()
	command := "tui"
	var commandArgs []string
	if len(args) > 0 {
		command = args[0]
		commandArgs = args[1:]
	}

	if command == "tui" {
		runPortal(cfg)
		return
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)
	gw, sess, cleanup, err := buildStack(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer cleanup()

	if err := runCommand(command, commandArgs, gw, sess); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runCommand(command string, args []string, gw gateway.Gateway, sess session.Session) error {
	switch command {
	case "add-vendor":
		return cli.AddVendorCommand(gw, args)
	case "list-vendors":
		return cli.ListVendorsCommand(gw, args)
	case "update-vendor":
		return cli.UpdateVendorCommand(gw, args)
	case "delete-vendor":
		return cli.DeleteVendorCommand(gw, args)

	case "add-product":
		return cli.AddProductCommand(gw, args)
	case "list-products":
		return cli.ListProductsCommand(gw, args)
	case "update-product":
		return cli.UpdateProductCommand(gw, args)
	case "delete-product":
		return cli.DeleteProductCommand(gw, args)

	case "add-representative":
		return cli.AddRepresentativeCommand(gw, args)
	case "list-representatives":
		return cli.ListRepresentativesCommand(gw, args)
	case "update-representative":
		return cli.UpdateRepresentativeCommand(gw, args)
	case "delete-representative":
		return cli.DeleteRepresentativeCommand(gw, args)

	case "link-vendor-product":
		return cli.LinkVendorProductCommand(gw, args)

	case "search":
		return cli.SearchCommand(gw, args)

	case "login":
		return cli.LoginCommand(sess, args)
	case "logout":
		return cli.LogoutCommand(sess)
	case "whoami":
		return cli.WhoamiCommand(sess)

	case "mcp":
		return cli.MCPCommand(gw)

	case "help":
		printUsage()
		return nil
	}

	printUsage()
	return fmt.Errorf("unknown command %q", command)
}

func runPortal(cfg *config.Config) {
	logger, closeLog := logging.NewFile(cfg.LogLevel)
	defer closeLog()

	gw, sess, cleanup, err := buildStack(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer cleanup()

	var feed *gateway.Feed
	if cfg.Realtime && !cfg.Offline {
		feed = dialFeed(cfg, sess, logger)
		if feed != nil {
			defer feed.Close()
		}
	}

	p := tea.NewProgram(tui.New(gw, sess, feed, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Portal failed: %v", err)
	}
}

// buildStack wires the gateway and session for the configured mode.
func buildStack(cfg *config.Config, logger zerolog.Logger) (gateway.Gateway, session.Session, func(), error) {
	if cfg.Offline {
		g, err := gateway.Open(cfg.DBPath, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return g, session.NewStatic("offline@vendordesk.local"), func() { _ = g.Close() }, nil
	}

	store := session.NewTokenStore(session.DefaultTokenPath())
	sess := session.NewClient(cfg.BackendURL, cfg.APIKey, store, logger)
	g := gateway.NewREST(cfg.BackendURL, cfg.APIKey, sess.TokenSource(), logger)
	return g, sess, func() {}, nil
}

// dialFeed subscribes to the backend change feed. A feed that cannot be
// established is logged and skipped; the portal works without it.
func dialFeed(cfg *config.Config, sess session.Session, logger zerolog.Logger) *gateway.Feed {
	client, ok := sess.(*session.Client)
	if !ok || client.Current() == nil {
		return nil
	}
	token, err := client.TokenSource().Token()
	if err != nil {
		logger.Warn().Err(err).Msg("realtime feed skipped, no usable token")
		return nil
	}

	endpoint := strings.Replace(cfg.BackendURL, "http", "ws", 1) + "/realtime/v1/websocket"
	tables := []string{models.TableVendors, models.TableProducts, models.TableRepresentatives}
	feed, err := gateway.DialFeed(endpoint, cfg.APIKey, token.AccessToken, tables, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("realtime feed unavailable")
		return nil
	}
	return feed
}

func printUsage() {
	fmt.Println(`vendordesk - vendor portal TUI, CLI, and MCP server

Usage:
  vendordesk [flags]                 Launch the portal TUI
  vendordesk [flags] <command>       Run a CLI command

Flags:
  -version    Show version and exit
  -offline    Use the local SQLite store instead of the backend

Auth commands:
  login [-email ...]                 Sign in and persist the session
  logout                             Sign out and forget the session
  whoami                             Show the current session identity

Vendor commands:
  add-vendor -name ... [flags]
  list-vendors [-query ...] [-csv file]
  update-vendor -id ... [flags]
  delete-vendor -id ...

Product commands:
  add-product -name ... [flags]
  list-products [-query ...] [-type ...] [-csv file]
  update-product -id ... [flags]
  delete-product -id ...

Representative commands:
  add-representative -vendor-id ... -name ... [flags]
  list-representatives [-vendor-id ...] [-csv file]
  update-representative -id ... [flags]
  delete-representative -id ...

Links:
  link-vendor-product -vendor-id ... -product-id ...

Search:
  search -kind vendor-name|product-name|product-type|vendors-by-product
         [-term ...] [-product-id ...]

MCP:
  mcp                                Start the MCP server on stdio`)
}
