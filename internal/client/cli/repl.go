package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error
	Verify(ctx context.Context) error
	History(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Feedback(ctx context.Context, args []string) error
	Admin(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the NewsCheck CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - verify         — submit content for verification
//	  - history        — browse verification history
//	  - show <id>      — show a single record with its feedback
//	  - exit | quit    — leave the program
//
//	Logged in (additionally):
//	  - whoami         — show the current account
//	  - profile        — update email or password
//	  - feedback ...   — add/edit/delete/mine
//	  - admin ...      — users/update/analytics/blocked/unblock
//	  - logout         — log out
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("nc> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: verify, history, show <id>, whoami, profile, feedback <add|edit|delete|mine>, logout, exit")
				if a.isAdmin() {
					printlnFn("Admin commands: admin <users|update|analytics|blocked|unblock>")
				}
			} else {
				printlnFn("Available commands: register, login, verify, history, show <id>, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "history":
			_ = a.History(ctx, args)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args)

		case "feedback":
			if len(args) == 0 {
				printlnFn("Usage: feedback <add|edit|delete|mine> ...")
				continue
			}
			_ = a.Feedback(ctx, args)

		case "admin":
			if len(args) == 0 {
				printlnFn("Usage: admin <users|update|analytics|blocked|unblock> ...")
				continue
			}
			_ = a.Admin(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
