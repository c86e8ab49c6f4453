package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Ping(ctx context.Context) error
	Feed(ctx context.Context) error
	Post(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, id string) error
	Image(ctx context.Context, id, path string) error
}

const (
	helpGuest  = "Available commands: register, login, feed, image <id>, ping, help, exit"
	helpMember = "Available commands: feed, post, edit <id>, delete <id>, like <id>, image <id> [file], whoami, logout, ping, help, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// The first word of a line selects the command; the rest are its
// arguments. Commands that need a post id print a usage line when it is
// missing. Errors returned by a command are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("postboard (%s)> ", statusFn()))
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
			if a.isLoggedIn() {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "ping":
			cmdErr = a.Ping(ctx)

		case "feed", "f":
			cmdErr = a.Feed(ctx)

		case "post":
			cmdErr = a.Post(ctx)

		case "edit", "delete", "like":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <post-id>", cmd))
				continue
			}
			switch cmd {
			case "edit":
				cmdErr = a.Edit(ctx, args[0])
			case "delete":
				cmdErr = a.Delete(ctx, args[0])
			default:
				cmdErr = a.Like(ctx, args[0])
			}

		case "image":
			if len(args) < 1 || len(args) > 2 {
				printlnFn("Usage: image <post-id> [file]")
				continue
			}
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			cmdErr = a.Image(ctx, args[0], path)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}
		if err != nil {
			return
		}
	}
}
