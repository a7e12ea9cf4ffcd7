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
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Get(ctx context.Context, args []string) error
	Create(ctx context.Context) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Activate(ctx context.Context, args []string) error
	Deactivate(ctx context.Context, args []string) error
	Active(ctx context.Context) error
	Inactive(ctx context.Context) error
	AgeRange(ctx context.Context, args []string) error
	Dashboard(ctx context.Context) error
	TokenFor(ctx context.Context, args []string) error
	MyToken(ctx context.Context) error
	Health(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, health, exit"
	helpLoggedIn  = "Available commands: (l)ist, get, create, update, delete, activate, deactivate, " +
		"active, inactive, agerange, (d)ashboard, token, mytoken, health, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the useradmin CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("uadm (%s) > ", statusFn()))
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
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx, args)

		case "get":
			_ = a.Get(ctx, args)

		case "create":
			_ = a.Create(ctx)

		case "update":
			_ = a.Update(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "activate":
			_ = a.Activate(ctx, args)

		case "deactivate":
			_ = a.Deactivate(ctx, args)

		case "active":
			_ = a.Active(ctx)

		case "inactive":
			_ = a.Inactive(ctx)

		case "agerange":
			_ = a.AgeRange(ctx, args)

		case "d", "dashboard":
			_ = a.Dashboard(ctx)

		case "token":
			_ = a.TokenFor(ctx, args)

		case "mytoken":
			_ = a.MyToken(ctx)

		case "health":
			_ = a.Health(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
