package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs. The real App type
// satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	ShowParams() error
	SetParam(args []string) error
	RunBasic(ctx context.Context) error
	RunMonteCarlo(ctx context.Context) error
	Insights(ctx context.Context) error
	Profiles(ctx context.Context) error
	NewProfile(ctx context.Context) error
	EditProfile(ctx context.Context, args []string) error
	DeleteProfile(ctx context.Context, args []string) error
	Use(args []string) error
	Save(ctx context.Context, args []string) error
	Sims(ctx context.Context) error
	DeleteSim(ctx context.Context, args []string) error
	Report(ctx context.Context) error
	Credits(ctx context.Context) error
	Verify(ctx context.Context) error
	Join(ctx context.Context, args []string) error
	Buy(ctx context.Context, args []string) error
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on a. Errors from command handlers are printed and
// the loop continues; the loop exits on scanner EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("glidepath> %s > ", statusFn()))
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

		var err error
		switch cmd {
		case "help":
			printHelp(a.isLoggedIn())

		case "register", "signup":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "reset":
			err = a.ResetPassword(ctx)

		case "params":
			err = a.ShowParams()
		case "set":
			err = a.SetParam(args)
		case "run":
			err = a.RunBasic(ctx)
		case "mc", "montecarlo":
			err = a.RunMonteCarlo(ctx)
		case "insights":
			err = a.Insights(ctx)

		case "profiles":
			err = a.Profiles(ctx)
		case "newprofile":
			err = a.NewProfile(ctx)
		case "editprofile":
			err = a.EditProfile(ctx, args)
		case "delprofile":
			err = a.DeleteProfile(ctx, args)
		case "use":
			err = a.Use(args)
		case "save":
			err = a.Save(ctx, args)
		case "sims":
			err = a.Sims(ctx)
		case "delsim":
			err = a.DeleteSim(ctx, args)
		case "report":
			err = a.Report(ctx)

		case "credits":
			err = a.Credits(ctx)
		case "verify":
			err = a.Verify(ctx)
		case "join":
			err = a.Join(ctx, args)
		case "buy":
			err = a.Buy(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}

func printHelp(loggedIn bool) {
	printlnFn("Simulation: params, set <name> <value>, run, mc, insights")
	if loggedIn {
		printlnFn("Profiles: profiles, newprofile, editprofile <id>, delprofile <id>, use <id>, save <basic|mc|all>, sims, delsim <id>, report")
		printlnFn("Account: credits, verify, join [tier], buy <plan> [promo], logout, exit")
	} else {
		printlnFn("Account: register, login, reset, exit")
	}
}
