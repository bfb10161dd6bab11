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
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Profile(ctx context.Context) error
	Users(ctx context.Context) error
	AddUser(ctx context.Context) error
	EditUser(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context, args []string) error
}

// runREPL reads commands from reader and dispatches them to a until the
// user types "exit" or "quit", or input ends.
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Signed out:
//	  - help              show available commands
//	  - login             sign in
//	  - signup            create an account
//	  - status            show session state
//	  - exit | quit       leave the program
//
//	Signed in, additionally:
//	  - profile           show the current user
//	  - users             list all users
//	  - adduser           create a user
//	  - edituser [id]     edit a user
//	  - deluser [id]      delete a user
//	  - logout            sign out
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("sk %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, users, adduser, edituser [id], deluser [id], status, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, status, exit")
			}

		case "login":
			err = a.Login(ctx)
		case "signup", "register":
			err = a.Signup(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "status":
			err = a.Status(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "users":
			err = a.Users(ctx)
		case "adduser":
			err = a.AddUser(ctx)
		case "edituser":
			err = a.EditUser(ctx, args)
		case "deluser":
			err = a.DeleteUser(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("error:", err)
		}
	}
}
