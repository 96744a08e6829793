package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	streammd "github.com/alnah/go-streammd"
	"github.com/alnah/go-streammd/internal/config"
	"github.com/alnah/go-streammd/internal/fileutil"
	"github.com/alnah/go-streammd/internal/pipeline"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrNoMarkdownFiles = errors.New("no markdown files found")
	ErrReadCSS         = errors.New("failed to read CSS file")
	ErrReadMarkdown    = errors.New("failed to read markdown file")
	ErrWriteHTML       = errors.New("failed to write HTML file")
	ErrCreateOutputDir = errors.New("failed to create output directory")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// stdinArg selects standard input as the markdown source.
const stdinArg = "-"

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	css        string
	standalone bool
	title      string // Explicit title; empty derives one per file
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		fmt.Fprintf(env.Stderr, "convert takes at most one input, got %d\n\n", len(positional))
		printConvertUsage(env.Stderr)
		return errUsage
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags.style, flags.standalone, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}

	css, err := readCSS(flags.css)
	if err != nil {
		return err
	}

	params := &conversionParams{
		css:        css,
		standalone: cfg.Output.Standalone,
		title:      flags.title,
	}
	log := newLogger(env.Stderr, flags.common, env.Getenv)

	if inputPath == stdinArg {
		return convertStdin(ctx, conv, flags.output, params, env)
	}

	outputDir := resolveOutputDir(flags.output, cfg)
	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	workers = streammd.ResolveWorkers(workers)
	log.Debug().Int("workers", workers).Int("files", len(files)).Msg("starting conversion")

	results := convertBatch(ctx, conv, files, params, workers)

	// A lone failure is reported once, by the caller, with its own exit code.
	if len(results) == 1 && results[0].Err != nil {
		return results[0].Err
	}

	failed := printResults(results, flags.common, env.Stdout, log)
	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(results))
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(style styleFlags, standalone bool, cfg *config.Config) {
	if style.style != "" {
		cfg.Style.Name = style.style
	}
	if style.highlight != "" {
		cfg.Style.Highlight = style.highlight
	}
	if style.assetPath != "" {
		cfg.Assets.BasePath = style.assetPath
	}
	if standalone {
		cfg.Output.Standalone = true
	}
}

// newConverter builds a converter from the merged config.
func newConverter(cfg *config.Config) (*streammd.Converter, error) {
	opts := []streammd.Option{streammd.WithStylesheet(cfg.Style.Name)}
	if cfg.Style.Highlight != "" {
		opts = append(opts, streammd.WithHighlighting(cfg.Style.Highlight))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, streammd.WithAssetPath(cfg.Assets.BasePath))
	}
	return streammd.NewConverter(opts...)
}

// resolveInputPath determines the input from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// readCSS loads the --css file, if any.
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}

// convertStdin renders standard input to output, or to stdout when output
// is empty.
func convertStdin(ctx context.Context, conv htmlConverter, output string, params *conversionParams, env *Environment) error {
	// One byte over the limit is enough for Convert to reject the input.
	content, err := io.ReadAll(io.LimitReader(env.Stdin, streammd.DefaultMaxInputSize+1))
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
	}

	result, err := conv.Convert(ctx, streammd.Input{
		Markdown:   string(content),
		Standalone: params.standalone,
		CSS:        params.css,
		Title:      documentTitle(params.title, string(content), ""),
	})
	if err != nil {
		return err
	}

	if output == "" {
		if _, err := env.Stdout.Write(result.HTML); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteHTML, err)
		}
		return nil
	}
	if err := writeOutput(output, result.HTML); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "Created %s\n", output)
	return nil
}

// writeOutput creates the parent directory and replaces path atomically, so
// a browser reloading the file never sees a partial write.
func writeOutput(path string, html []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
	}
	if err := fileutil.WriteFileAtomic(path, html, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}
	return nil
}

// documentTitle picks the standalone title: the explicit one, the first
// level-one heading of the rendered body, then the file name without
// extension.
func documentTitle(explicit, markdown, filename string) string {
	if explicit != "" {
		return explicit
	}
	if heading := pipeline.FirstHeading(markdown); heading != "" {
		return heading
	}
	if filename == "" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, flags commonFlags, stdout io.Writer, log zerolog.Logger) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			log.Error().Str("file", r.InputPath).Err(r.Err).Msg("conversion failed")
			continue
		}
		log.Debug().
			Str("file", r.InputPath).
			Str("output", r.OutputPath).
			Dur("duration", r.Duration).
			Msg("converted")
		if !flags.quiet {
			fmt.Fprintf(stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !flags.quiet && len(results) > 1 {
		fmt.Fprintf(stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
