package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error
	Feed(ctx context.Context, args []string) error
	Post(ctx context.Context) error
	Interact(ctx context.Context, args []string) error
	Comment(ctx context.Context, args []string) error
	Answered(ctx context.Context, args []string) error
	Circle(ctx context.Context, args []string) error
	Tithe(ctx context.Context) error
	History(ctx context.Context) error
	Wisdom(ctx context.Context) error
	Inspiration(ctx context.Context) error
	Chat(ctx context.Context) error
	Pulse(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a. The loop
// exits at end of input or on "exit"/"quit". reader is shared with the
// command prompts, so it must be the same reader the handlers use.
//
//	Not logged in:
//	  help, register, login, exit
//
//	Logged in:
//	  feed [all|community]   show the feed
//	  post                   write a post or miracle request
//	  pray|like <n>          pray for / like the n-th post of the last listing
//	  comment <n>            reply to a post
//	  answered <n>           mark your own miracle request as answered
//	  circle <user-id>       add or remove a member from your circle
//	  profile, avatar <file> show profile, upload an avatar image
//	  tithe, history         give a tithe, list your tithes
//	  wisdom, inspiration    daily messages
//	  chat                   talk to the spiritual guide (premium)
//	  pulse                  prayers around the world
//	  logout, exit
//
// Errors returned by handlers are printed; the loop keeps running.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("praylink %s > ", statusFn()))
		line, rerr := reader.ReadString('\n')
		if rerr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		var err error
		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				printlnFn("Available commands: register, login, exit")
			case "register":
				err = a.Register(ctx)
			case "login":
				err = a.Login(ctx)
			default:
				printlnFn("Unknown command:", cmd, "(log in first)")
			}
			report(err)
			continue
		}

		switch cmd {
		case "help":
			printlnFn("Available commands: feed, post, pray, like, comment, answered, circle, " +
				"profile, avatar, tithe, history, wisdom, inspiration, chat, pulse, logout, exit")
		case "feed", "f":
			err = a.Feed(ctx, args)
		case "post":
			err = a.Post(ctx)
		case "pray", "like":
			err = a.Interact(ctx, args)
		case "comment":
			err = a.Comment(ctx, args)
		case "answered":
			err = a.Answered(ctx, args)
		case "circle":
			err = a.Circle(ctx, args)
		case "profile":
			err = a.Profile(ctx)
		case "avatar":
			err = a.Avatar(ctx, args)
		case "tithe":
			err = a.Tithe(ctx)
		case "history":
			err = a.History(ctx)
		case "wisdom":
			err = a.Wisdom(ctx)
		case "inspiration":
			err = a.Inspiration(ctx)
		case "chat":
			err = a.Chat(ctx)
		case "pulse":
			err = a.Pulse(ctx)
		case "logout":
			err = a.Logout(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
		report(err)
	}
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err.Error())
	}
}
