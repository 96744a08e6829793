package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time and the process environment.
type Environment struct {
	Now     func() time.Time
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
	}
}

// newLogger writes human-readable logs to w. --verbose and --quiet win over
// STREAMMD_LOG_LEVEL; an unparsable level falls back to info.
func newLogger(w io.Writer, flags commonFlags, getenv func(string) string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.TimeOnly,
	}).
		Level(resolveLogLevel(flags, getenv)).
		With().Timestamp().Logger()
}

func resolveLogLevel(flags commonFlags, getenv func(string) string) zerolog.Level {
	switch {
	case flags.verbose:
		return zerolog.DebugLevel
	case flags.quiet:
		return zerolog.ErrorLevel
	}
	if raw := strings.TrimSpace(getenv(envLogLevel)); raw != "" {
		if level, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil && level != zerolog.NoLevel {
			return level
		}
	}
	return zerolog.InfoLevel
}
