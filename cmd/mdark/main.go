package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	verbose := slices.Contains(args, "-v") || slices.Contains(args, "--verbose")

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", a...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	cmd, rest := "edit", []string(nil)
	if len(args) > 1 {
		cmd, rest = args[1], args[2:]
	}
	// "mdark notes.md" and "mdark --dark-editor" open the editor.
	if !isCommand(cmd) && !isTopLevelFlag(cmd) {
		if looksLikeMarkdown(cmd) || (len(cmd) > 0 && cmd[0] == '-') {
			cmd, rest = "edit", args[1:]
		}
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case "edit":
		err = runEdit(ctx, rest, env)
	case "export":
		err = runExport(ctx, rest, env)
	case "render":
		err = runRender(ctx, rest, env)
	case "count":
		err = runCount(rest, env)
	case "fonts":
		err = runFonts(rest, env)
	case "config":
		err = runConfig(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mdark %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	return reportError(env, err)
}

// reportError prints err and maps it to an exit code.
func reportError(env *Environment, err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(env.Stderr, "interrupted")
		return ExitGeneral
	}
	fmt.Fprintf(env.Stderr, "error: %v\n", err)
	return exitCodeFor(err)
}

// isTopLevelFlag reports whether arg is handled by the dispatcher itself.
func isTopLevelFlag(arg string) bool {
	switch arg {
	case "-h", "--help", "--version":
		return true
	}
	return false
}

// looksLikeMarkdown reports whether arg names a markdown file.
func looksLikeMarkdown(arg string) bool {
	return validateMarkdownExtension(arg) == nil
}
