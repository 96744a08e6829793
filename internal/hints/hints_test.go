package hints

// Notes:
// - ForAddressInUse tests cannot use t.Parallel() because they modify the
//   package-level IsInContainer variable.
// - ForWatchLimit output depends on runtime.GOOS; only the prefix is checked.
// These are acceptable gaps: we test observable behavior through the hint text.

import (
	"strings"
	"testing"
)

func TestForAddressInUse(t *testing.T) {
	tests := []struct {
		name        string
		addr        string
		inContainer bool
		wantBind    bool
	}{
		{name: "host loopback", addr: "127.0.0.1:8080", inContainer: false, wantBind: false},
		{name: "container loopback", addr: "127.0.0.1:8080", inContainer: true, wantBind: true},
		{name: "container all interfaces", addr: "0.0.0.0:8080", inContainer: true, wantBind: false},
		{name: "container empty host", addr: ":8080", inContainer: true, wantBind: false},
		{name: "unparsable address", addr: "nonsense", inContainer: true, wantBind: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := IsInContainer
			defer func() { IsInContainer = orig }()
			IsInContainer = func() bool { return tt.inContainer }

			hint := ForAddressInUse(tt.addr)

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("expected hint prefix, got %q", hint)
			}
			if !strings.Contains(hint, "--addr") {
				t.Errorf("expected --addr suggestion, got %q", hint)
			}
			if got := strings.Contains(hint, "0.0.0.0:8080"); got != tt.wantBind {
				t.Errorf("bind suggestion = %v, want %v (hint %q)", got, tt.wantBind, hint)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{name: "empty paths", paths: []string{}, contains: "--config"},
		{
			name:     "with paths",
			paths:    []string{"./foo.yaml", "/home/u/.config/go-streammd/foo.yaml"},
			contains: "create /home/u/.config/go-streammd/foo.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, "hint:") {
				t.Error("expected hint prefix")
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if hint := ForStyleNotFound(nil); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
	if hint := ForStyleNotFound([]string{"dark", "default"}); !strings.Contains(hint, "dark, default") {
		t.Errorf("expected style list, got %q", hint)
	}
}

func TestForHighlightStyle(t *testing.T) {
	t.Parallel()

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()

		if hint := ForHighlightStyle(nil); hint != "" {
			t.Errorf("expected empty hint, got %q", hint)
		}
	})

	t.Run("short list is complete", func(t *testing.T) {
		t.Parallel()

		hint := ForHighlightStyle([]string{"github", "monokai"})
		if !strings.Contains(hint, "github, monokai") || strings.Contains(hint, "more") {
			t.Errorf("hint = %q", hint)
		}
	})

	t.Run("long list is truncated", func(t *testing.T) {
		t.Parallel()

		names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
		hint := ForHighlightStyle(names)
		if !strings.Contains(hint, "a, b, c, d, e, f, g, h (and 2 more)") {
			t.Errorf("hint = %q", hint)
		}
		if strings.Contains(hint, "i,") {
			t.Errorf("hint should not list past the cap: %q", hint)
		}
	})
}

func TestForInputTooLarge(t *testing.T) {
	t.Parallel()

	hint := ForInputTooLarge(1024)
	if !strings.Contains(hint, "1024 bytes") {
		t.Errorf("expected limit in hint, got %q", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	hints := []string{
		ForOutputDirectory(),
		ForInputTooLarge(1),
		ForWatchLimit(),
		ForConfigNotFound(nil),
		ForStyleNotFound([]string{"default"}),
		ForHighlightStyle([]string{"github"}),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}

func TestFormatHints(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints = %q", got)
	}
}
