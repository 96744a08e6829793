package main

import (
	"errors"
	"syscall"

	streammd "github.com/alnah/go-streammd"
	"github.com/alnah/go-streammd/internal/config"
	"github.com/alnah/go-streammd/internal/hints"
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var nameErr *configNameError
	switch {
	case errors.As(err, &nameErr):
		return hints.ForConfigNotFound(config.SearchPaths(nameErr.name))
	case errors.Is(err, streammd.ErrStyleNotFound):
		return hints.ForStyleNotFound(streammd.StyleNames())
	case errors.Is(err, streammd.ErrUnknownHighlightStyle):
		return hints.ForHighlightStyle(streammd.HighlightStyles())
	case errors.Is(err, streammd.ErrInputTooLarge):
		return hints.ForInputTooLarge(streammd.DefaultMaxInputSize)
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EMFILE):
		return hints.ForWatchLimit()
	}
	var addrErr *addrInUseError
	if errors.As(err, &addrErr) {
		return hints.ForAddressInUse(addrErr.addr)
	}
	return ""
}
