package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// styleFlags selects the stylesheet and highlighting.
type styleFlags struct {
	style     string // Name or path
	highlight string // Chroma style
	assetPath string // Override asset directory
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	style      styleFlags
	output     string
	workers    int
	standalone bool
	css        string
	title      string
}

// watchFlags holds flags for the watch command.
type watchFlags struct {
	common     commonFlags
	style      styleFlags
	output     string
	standalone bool
	css        string
	title      string
	debounce   string
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common      commonFlags
	style       styleFlags
	addr        string
	readLimit   int64
	allowOrigin []string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addStyleFlags adds stylesheet flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "style name or CSS file path")
	fs.StringVar(&f.highlight, "highlight", "", "syntax highlighting theme (e.g. github, monokai)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addDocumentFlags adds output document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, standalone *bool, css, title *string) {
	fs.BoolVar(standalone, "standalone", false, "wrap output in a complete HTML document")
	fs.StringVar(css, "css", "", "extra CSS file appended to the stylesheet")
	fs.StringVar(title, "title", "", "document title (default: first heading or file name)")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting and
// prints usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newFlagSet("convert", stderr, printConvertUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addDocumentFlags(fs, &f.standalone, &f.css, &f.title)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string, stderr io.Writer) (*watchFlags, []string, error) {
	f := &watchFlags{}
	fs := newFlagSet("watch", stderr, printWatchUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVar(&f.debounce, "debounce", "", "delay after the last write before rendering (e.g. 250ms)")
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addDocumentFlags(fs, &f.standalone, &f.css, &f.title)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", stderr, printServeUsage)

	fs.StringVar(&f.addr, "addr", "", "listen address (default 127.0.0.1:8080)")
	fs.Int64Var(&f.readLimit, "read-limit", 0, "max request body and websocket message size in bytes")
	fs.StringSliceVar(&f.allowOrigin, "allow-origin", nil, "extra browser origin allowed on /stream (repeatable)")
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parse runs fs.Parse, mapping --help to errHelp and every other failure to
// errUsage. With ContinueOnError pflag only prints usage for --help, so the
// parse error and usage are printed here.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		fmt.Fprintf(fs.Output(), "error: %v\n\n", err)
		fs.Usage()
		return errUsage
	}
	return nil
}
