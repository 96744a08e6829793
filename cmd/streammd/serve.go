package main

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/alnah/go-streammd/internal/server"
)

// addrInUseError keeps the address for the port hint.
type addrInUseError struct {
	addr string
	err  error
}

func (e *addrInUseError) Error() string { return e.err.Error() }
func (e *addrInUseError) Unwrap() error { return e.err }

// runServe runs the preview server until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		fmt.Fprintf(env.Stderr, "serve takes no arguments, got %d\n\n", len(positional))
		printServeUsage(env.Stderr)
		return errUsage
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeFlags(flags.style, false, cfg)
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.readLimit != 0 {
		cfg.Server.ReadLimit = flags.readLimit
	}
	if len(flags.allowOrigin) > 0 {
		cfg.Server.AllowedOrigins = flags.allowOrigin
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}

	srv := server.New(conv, server.Config{
		ReadLimit:      cfg.Server.ReadLimitOrDefault(),
		Logger:         newLogger(env.Stderr, flags.common, env.Getenv),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return &addrInUseError{addr: cfg.Server.Addr, err: err}
		}
		return err
	}
	return nil
}
