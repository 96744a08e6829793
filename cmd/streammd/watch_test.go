package main

// Notes:
// - The watcher runs in a goroutine against a real directory; tests poll the
//   output file and stdout instead of sleeping for a fixed time.
// - Stdout and stderr use syncBuffer because the watcher writes while the
//   test reads.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestRunWatch - Re-render on change
// ---------------------------------------------------------------------------

func TestRunWatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "live.md", "**first**")
	output := filepath.Join(dir, "live.html")

	var stdout, stderr syncBuffer
	env := newTestEnv(nil)
	env.Stdout = &stdout
	env.Stderr = &stderr

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan int, 1)
	go func() {
		done <- runMainContext(ctx, []string{"streammd", "watch", input, "--debounce", "20ms"}, env.Environment)
	}()

	waitFor(t, 5*time.Second, "initial render", func() bool {
		data, err := os.ReadFile(output)
		return err == nil && string(data) == "<b>first</b>"
	})
	waitFor(t, 5*time.Second, "watch to start", func() bool {
		return strings.Contains(stderr.String(), "watching for changes")
	})

	if err := os.WriteFile(input, []byte("*second*"), 0o644); err != nil {
		t.Fatalf("updating input: %v", err)
	}

	waitFor(t, 5*time.Second, "re-render", func() bool {
		data, err := os.ReadFile(output)
		return err == nil && string(data) == "<i>second</i>"
	})
	if got := strings.Count(stdout.String(), "Updated "+output); got < 2 {
		t.Errorf("stdout has %d Updated lines, want at least 2:\n%s", got, stdout.String())
	}

	cancel()
	select {
	case code := <-done:
		if code != ExitSuccess {
			t.Errorf("exit = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestRunWatch_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := writeFile(t, dir, "doc.md", "doc")
	txt := writeFile(t, dir, "doc.txt", "doc")

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "no file", args: []string{"watch"}, wantCode: ExitUsage},
		{name: "two files", args: []string{"watch", md, md}, wantCode: ExitUsage},
		{name: "not markdown", args: []string{"watch", txt}, wantCode: ExitUsage},
		{name: "bad debounce", args: []string{"watch", md, "--debounce", "soon"}, wantCode: ExitUsage},
		{name: "debounce too long", args: []string{"watch", md, "--debounce", "1h"}, wantCode: ExitUsage},
		{name: "missing file", args: []string{"watch", filepath.Join(dir, "gone.md")}, wantCode: ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			if code := runMain(append([]string{"streammd"}, tt.args...), env.Environment); code != tt.wantCode {
				t.Errorf("exit = %d, want %d\nstderr: %s", code, tt.wantCode, env.stderr)
			}
		})
	}
}
