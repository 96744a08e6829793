package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: streammd <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown files to HTML")
	fmt.Fprintln(w, "  watch      Re-render a markdown file whenever it changes")
	fmt.Fprintln(w, "  serve      Run the HTTP and websocket preview server")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'streammd help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: streammd convert [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown to sanitized HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory, or - for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (stdin input: default stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printDocumentFlags(w)
	printStyleFlags(w)
	printOutputControl(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: streammd watch <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a markdown file, then render it again after every change.")
	fmt.Fprintln(w, "Useful for files a model is still writing.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --debounce <d>        Wait after the last write (default 100ms)")
	fmt.Fprintln(w)
	printDocumentFlags(w)
	printStyleFlags(w)
	printOutputControl(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: streammd serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the preview API:")
	fmt.Fprintln(w, "  POST /render       Render the body (?standalone=1 for a document)")
	fmt.Fprintln(w, "  GET  /stream       Websocket: send {\"type\":\"chunk\",\"text\":...} or {\"type\":\"reset\"}")
	fmt.Fprintln(w, "  GET  /style.css    Stylesheet for rendered fragments")
	fmt.Fprintln(w, "  GET  /healthz      Liveness probe")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default 127.0.0.1:8080)")
	fmt.Fprintln(w, "      --read-limit <n>      Max body/message size in bytes")
	fmt.Fprintln(w, "      --allow-origin <url>  Extra browser origin allowed on /stream (repeatable)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	printStyleFlags(w)
	printOutputControl(w)
}

func printDocumentFlags(w io.Writer) {
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --standalone          Wrap output in a complete HTML document")
	fmt.Fprintln(w, "      --title <s>           Document title (default: first heading or file name)")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file")
	fmt.Fprintln(w)
}

func printStyleFlags(w io.Writer) {
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name|path>   Style name (default, dark) or CSS file")
	fmt.Fprintln(w, "      --highlight <name>    Syntax highlighting theme (e.g. github)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/<name>.css overrides")
	fmt.Fprintln(w)
}

func printOutputControl(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	if !isCommand(args[0]) {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: streammd version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: streammd help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	}
	return ExitSuccess
}
