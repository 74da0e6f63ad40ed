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
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context)
	Login(ctx context.Context)
	Accounts(ctx context.Context)
	CreateAccount(ctx context.Context)
	Fund(ctx context.Context)
	Transactions(ctx context.Context)
	Logout(ctx context.Context)
}

const helpAnonymous = `Commands:
  signup   - create a user
  login    - authenticate
  exit     - leave the program`

const helpLoggedIn = `Commands:
  accounts - list your accounts
  open     - open a new account (checking or savings)
  fund     - deposit into an account
  tx       - list an account's transactions
  logout   - log out
  exit     - leave the program`

// runREPL reads a line, parses the first token as the command, and dispatches
// to methods on 'a'. Unknown commands are reported back to the user. The loop
// exits on scanner EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		fmt.Printf("[%s] > ", statusFn())

		if !scanner.Scan() {
			return
		}

		cmd := strings.ToLower(strings.TrimSpace(strings.SplitN(scanner.Text(), " ", 2)[0]))

		switch cmd {
		case "":
			continue
		case "exit", "quit":
			return
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}
		case "signup":
			a.Signup(ctx)
		case "login":
			a.Login(ctx)
		case "accounts":
			a.Accounts(ctx)
		case "open":
			a.CreateAccount(ctx)
		case "fund":
			a.Fund(ctx)
		case "tx":
			a.Transactions(ctx)
		case "logout":
			a.Logout(ctx)
		default:
			printlnFn("Unknown command. Type 'help' for a list of commands.")
		}
	}
}
