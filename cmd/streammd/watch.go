package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// runWatch renders one file, then renders it again after every change
// until ctx is canceled.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		fmt.Fprintf(env.Stderr, "watch takes exactly one file, got %d\n\n", len(positional))
		printWatchUsage(env.Stderr)
		return errUsage
	}
	inputPath := positional[0]
	if err := validateMarkdownExtension(inputPath); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeFlags(flags.style, flags.standalone, cfg)
	if flags.debounce != "" {
		cfg.Watch.Debounce = flags.debounce
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	debounce, err := cfg.Watch.DebounceDuration()
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

	w := &fileWatcher{
		conv: conv,
		file: FileToConvert{
			InputPath:  inputPath,
			OutputPath: resolveOutputPath(inputPath, resolveOutputDir(flags.output, cfg), ""),
		},
		params: &conversionParams{
			css:        css,
			standalone: cfg.Output.Standalone,
			title:      flags.title,
		},
		debounce: debounce,
		quiet:    flags.common.quiet,
		stdout:   env.Stdout,
		log:      newLogger(env.Stderr, flags.common, env.Getenv),
	}
	return w.run(ctx)
}

// fileWatcher re-renders a single markdown file on change.
type fileWatcher struct {
	conv     htmlConverter
	file     FileToConvert
	params   *conversionParams
	debounce time.Duration
	quiet    bool
	stdout   io.Writer
	log      zerolog.Logger
}

// run watches the file's directory rather than the file, so editors and
// generators that replace the file by rename keep being followed.
func (w *fileWatcher) run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.file.InputPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	// First render after the watch is in place so no write is missed.
	if err := w.render(ctx); err != nil {
		return err
	}
	w.log.Info().Str("file", w.file.InputPath).Dur("debounce", w.debounce).Msg("watching for changes")

	name := filepath.Base(w.file.InputPath)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				w.log.Warn().Str("file", w.file.InputPath).Msg("file removed, waiting for it to reappear")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("file watcher error")

		case <-fire:
			fire = nil
			if err := w.render(ctx); err != nil {
				w.log.Error().Str("file", w.file.InputPath).Err(err).Msg("render failed")
			}
		}
	}
}

// render converts the file once and reports the result.
func (w *fileWatcher) render(ctx context.Context) error {
	r := convertFile(ctx, w.conv, w.file, w.params)
	if r.Err != nil {
		return r.Err
	}
	w.log.Debug().
		Str("file", r.InputPath).
		Str("output", r.OutputPath).
		Dur("duration", r.Duration).
		Msg("rendered")
	if !w.quiet {
		fmt.Fprintf(w.stdout, "Updated %s\n", r.OutputPath)
	}
	return nil
}
