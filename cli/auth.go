// ABOUTME: Authentication CLI commands
// ABOUTME: login prompts for a password; logout and whoami inspect the session
package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tessaly/vendordesk/session"
)

// LoginCommand signs in and persists the session token.
func LoginCommand(sess session.Session, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Account email (prompted when omitted)")
	_ = fs.Parse(args)

	addr := *email
	if addr == "" {
		fmt.Print("Email: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
		addr = strings.TrimSpace(line)
	}
	if addr == "" {
		return fmt.Errorf("email is required")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return fmt.Errorf("password is required")
	}

	id, err := sess.SignIn(context.Background(), addr, string(password))
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}
	fmt.Printf("✓ Signed in as %s\n", id.Email)
	return nil
}

// LogoutCommand revokes and forgets the persisted session.
func LogoutCommand(sess session.Session) error {
	if sess.Current() == nil {
		fmt.Println("Not signed in")
		return nil
	}
	if err := sess.SignOut(context.Background()); err != nil {
		return fmt.Errorf("sign-out failed: %w", err)
	}
	fmt.Println("✓ Signed out")
	return nil
}

// WhoamiCommand prints the current session identity.
func WhoamiCommand(sess session.Session) error {
	id := sess.Current()
	if id == nil {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("Signed in as %s (user %s)\n", id.Email, id.UserID)
	if !id.ExpiresAt.IsZero() {
		fmt.Printf("Session expires %s\n", id.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}
