package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/onboarder/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	currentView() models.View

	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	Onboarding(ctx context.Context) error
	Profile(ctx context.Context) error

	Admin(ctx context.Context) error
	Toggle(ctx context.Context, args []string) error
	Steps(ctx context.Context, args []string) error
	Save(ctx context.Context) error

	Data(ctx context.Context) error
	Back(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the onboarding CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Signed out:
//	  - signup          create an account and start onboarding
//	  - signin          sign in
//
//	Signed in:
//	  - onboarding      fill in and submit the current onboarding step
//	  - profile         show your profile
//	  - signout         sign out
//
//	Always:
//	  - admin                       show the onboarding configuration
//	  - toggle <step> <name> on|off  move or disable a component (admin view)
//	  - steps <n>                   change the number of steps (admin view)
//	  - save                        save the configuration (admin view)
//	  - data | users                list users, refreshed in the background
//	  - back                        leave admin/data
//	  - help                        show available commands
//	  - exit | quit                 leave the program
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ob%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printHelp(a)

		case "signup":
			cmdErr = a.SignUp(ctx)

		case "signin":
			cmdErr = a.SignIn(ctx)

		case "signout":
			cmdErr = a.SignOut(ctx)

		case "onboarding":
			cmdErr = a.Onboarding(ctx)

		case "profile", "home":
			cmdErr = a.Profile(ctx)

		case "admin":
			cmdErr = a.Admin(ctx)

		case "toggle":
			cmdErr = a.Toggle(ctx, args)

		case "steps":
			cmdErr = a.Steps(ctx, args)

		case "save":
			cmdErr = a.Save(ctx)

		case "data", "users":
			cmdErr = a.Data(ctx)

		case "back":
			cmdErr = a.Back(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(errorText(cmdErr))
		}
	}
}

func printHelp(a execIface) {
	var cmds []string
	if a.isLoggedIn() {
		cmds = append(cmds, "onboarding", "profile", "signout")
	} else {
		cmds = append(cmds, "signup", "signin")
	}
	if a.currentView() == models.ViewAdmin {
		cmds = append(cmds, "toggle <step> <name> on|off", "steps <n>", "save")
	}
	cmds = append(cmds, "admin", "data", "back", "exit")
	printlnFn("Available commands: " + strings.Join(cmds, ", "))
}
