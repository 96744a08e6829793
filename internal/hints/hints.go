// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"net"
	"runtime"
	"strings"

	"github.com/alnah/go-streammd/internal/fileutil"
)

// maxListed caps how many alternatives a hint spells out.
const maxListed = 8

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForAddressInUse returns hints for a server that cannot bind addr.
// Inside a container a loopback bind is unreachable from the host, so the
// hint also suggests binding all interfaces.
func ForAddressInUse(addr string) string {
	hints := []string{"choose another port with --addr"}

	host, port, err := net.SplitHostPort(addr)
	if err == nil && IsInContainer() && host != "0.0.0.0" && host != "" {
		hints = append(hints, "inside a container, bind 0.0.0.0:"+port+" to publish the port")
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-streammd") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForHighlightStyle returns hints for unknown syntax highlighting themes.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	listed := available
	suffix := ""
	if len(listed) > maxListed {
		listed = listed[:maxListed]
		suffix = fmt.Sprintf(" (and %d more)", len(available)-maxListed)
	}
	return format("try one of: " + strings.Join(listed, ", ") + suffix)
}

// ForInputTooLarge returns hints for documents above the size limit.
func ForInputTooLarge(limit int) string {
	return format(fmt.Sprintf("inputs are capped at %d bytes; split the document", limit))
}

// ForWatchLimit returns hints when the OS refuses another file watch.
func ForWatchLimit() string {
	if runtime.GOOS == "linux" {
		return format("raise fs.inotify.max_user_watches or fs.inotify.max_user_instances")
	}
	return format("close other programs watching many files")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
