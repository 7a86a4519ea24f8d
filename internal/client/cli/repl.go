package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Profile(ctx context.Context) error
	List(ctx context.Context) error
	SetSubject(ctx context.Context) error
	Search(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	Show(ctx context.Context) error
	Logout(ctx context.Context) error
}

// protectedCommands are the screens that require a session. Dispatching one
// of them while logged out redirects to the login screen instead.
var protectedCommands = map[string]struct{}{
	"profile": {}, "l": {}, "list": {}, "subject": {}, "search": {},
	"add": {}, "edit": {}, "delete": {}, "show": {}, "logout": {},
}

// runREPL reads a command per line and dispatches to a until EOF or
// "exit"/"quit". Handler errors are reported inline and never abort the
// loop: every failure is scoped to the command that caused it.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sm (%s) > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if _, protected := protectedCommands[cmd]; protected && !a.isLoggedIn() {
			printlnFn("请先登录")
			if err := a.Login(ctx); err != nil {
				printlnFn(err.Error())
			}
			continue
		}

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("可用命令: profile, (l)ist, subject, search, add, edit, delete, show, logout, exit")
			} else {
				printlnFn("可用命令: register, login, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "profile":
			err = a.Profile(ctx)

		case "l", "list":
			err = a.List(ctx)

		case "subject":
			err = a.SetSubject(ctx)

		case "search":
			err = a.Search(ctx)

		case "add":
			err = a.Add(ctx)

		case "edit":
			err = a.Edit(ctx)

		case "delete":
			err = a.Delete(ctx)

		case "show":
			err = a.Show(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("再见！")
			return

		default:
			printlnFn("未知命令:", cmd)
		}

		if err != nil {
			printlnFn(err.Error())
		}
	}
}
