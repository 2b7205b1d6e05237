package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdark [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  edit       Open the live-preview editor (default)")
	fmt.Fprintln(w, "  export     Export a markdown file to a one-page PDF")
	fmt.Fprintln(w, "  render     Print the preview HTML of a markdown file")
	fmt.Fprintln(w, "  count      Show how many PDFs have been generated")
	fmt.Fprintln(w, "  fonts      List font options")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  doctor     Check the browser, directories and storage")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdark help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log debug details to stderr")
}

func printStorageFlags(w io.Writer) {
	fmt.Fprintln(w, "Usage Counter:")
	fmt.Fprintln(w, "      --storage <s>         Storage driver: bolt, sqlite, memory")
	fmt.Fprintln(w, "      --storage-path <path> Storage file (default: user config dir)")
}

func printExportSettingsFlags(w io.Writer) {
	fmt.Fprintln(w, "Export:")
	fmt.Fprintln(w, "  -o, --output-dir <dir>    Directory for markdown-document.pdf")
	fmt.Fprintln(w, "      --dark                White text on black background")
	fmt.Fprintln(w, "  -f, --font <name>         Font option (see 'mdark fonts')")
	fmt.Fprintln(w, "  -w, --width <px>          Capture width in CSS pixels (200-4000)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Browser wait limit, e.g. 30s (0 = none)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding built-in assets")
}

// printCommandUsage prints usage for one command.
func printCommandUsage(w io.Writer, name string) {
	switch name {
	case "edit":
		fmt.Fprintln(w, "Usage: mdark edit [file.md] [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Open the editor with a live preview. Without a file, the editor starts")
		fmt.Fprintln(w, "on a welcome document. Press F1 inside the editor for key bindings.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Editor:")
		fmt.Fprintln(w, "      --dark-editor         Start with the dark editor theme")
		fmt.Fprintln(w)
		printExportSettingsFlags(w)
		fmt.Fprintln(w)
		printStorageFlags(w)
		fmt.Fprintln(w)
		printCommonFlags(w)
	case "export":
		fmt.Fprintln(w, "Usage: mdark export <file.md|-> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Render a markdown file and save it as one A4 page. The file is always")
		fmt.Fprintln(w, "named markdown-document.pdf; its path is printed on success.")
		fmt.Fprintln(w)
		printExportSettingsFlags(w)
		fmt.Fprintln(w)
		printStorageFlags(w)
		fmt.Fprintln(w)
		printCommonFlags(w)
	case "render":
		fmt.Fprintln(w, "Usage: mdark render <file.md|-> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print the preview HTML fragment. No browser is started.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Output:")
		fmt.Fprintln(w, "      --output <path>       Write to a file instead of stdout")
		fmt.Fprintln(w, "      --standalone          Print the styled export page instead")
		fmt.Fprintln(w)
		printExportSettingsFlags(w)
		fmt.Fprintln(w)
		printCommonFlags(w)
	case "count":
		fmt.Fprintln(w, "Usage: mdark count [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show how many PDFs have been generated.")
		fmt.Fprintln(w)
		printStorageFlags(w)
		fmt.Fprintln(w)
		printCommonFlags(w)
	case "fonts":
		fmt.Fprintln(w, "Usage: mdark fonts")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "List font options. The default is marked with *.")
	case "config":
		fmt.Fprintln(w, "Usage: mdark config [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print the configuration after the file, MDARK_* variables and flags")
		fmt.Fprintln(w, "are applied.")
		fmt.Fprintln(w)
		printStorageFlags(w)
		fmt.Fprintln(w)
		printCommonFlags(w)
	case "doctor":
		fmt.Fprintln(w, "Usage: mdark doctor [--json] [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Check Chrome, sandbox settings, directories and the usage counter.")
		fmt.Fprintln(w)
		printStorageFlags(w)
		fmt.Fprintln(w)
		printCommonFlags(w)
	case "version":
		fmt.Fprintln(w, "Usage: mdark version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case "help":
		fmt.Fprintln(w, "Usage: mdark help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	default:
		printUsage(w)
	}
}

// isCommand reports whether name is a known command.
func isCommand(name string) bool {
	switch name {
	case "edit", "export", "render", "count", "fonts", "config", "doctor", "version", "help":
		return true
	}
	return false
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if !isCommand(args[0]) {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	printCommandUsage(env.Stdout, args[0])
	return ExitSuccess
}
