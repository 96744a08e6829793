package streammd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Mocks
// ---------------------------------------------------------------------------

type panicRenderer struct{}

func (p *panicRenderer) Render(string) string {
	panic("simulated panic in renderer")
}

type mockAssetLoader struct {
	styles map[string]string
}

func (m *mockAssetLoader) LoadStyle(name string) (string, error) {
	if css, ok := m.styles[name]; ok {
		return css, nil
	}
	return "", ErrStyleNotFound
}

// newTestConverter fails the test when NewConverter errors.
func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()

	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	return conv
}

// ---------------------------------------------------------------------------
// TestNewConverter - Construction and option handling
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	t.Run("defaults load the embedded style", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t)
		if !strings.Contains(conv.StyleCSS(), ".md-document") {
			t.Error("StyleCSS() should contain the default stylesheet")
		}
		if strings.Contains(conv.StyleCSS(), ".chroma") {
			t.Error("StyleCSS() should not contain highlight classes without WithHighlighting")
		}
	})

	t.Run("highlighting appends theme CSS", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, WithHighlighting("github"))
		css := conv.StyleCSS()
		if !strings.Contains(css, ".md-document") || !strings.Contains(css, ".chroma") {
			t.Errorf("StyleCSS() should contain both stylesheets, got %d bytes", len(css))
		}
	})

	t.Run("unknown highlight style", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithHighlighting("no-such-theme"))
		if !errors.Is(err, ErrUnknownHighlightStyle) {
			t.Errorf("error = %v, want ErrUnknownHighlightStyle", err)
		}
		if err != nil && !strings.Contains(err.Error(), "no-such-theme") {
			t.Errorf("error = %q, want style name", err)
		}
	})

	t.Run("named stylesheet", func(t *testing.T) {
		t.Parallel()

		dark := newTestConverter(t, WithStylesheet("dark"))
		light := newTestConverter(t)
		if dark.StyleCSS() == light.StyleCSS() {
			t.Error("dark and default styles should differ")
		}
	})

	t.Run("unknown stylesheet", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithStylesheet("missing"))
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("invalid stylesheet name", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithStylesheet("bad name"))
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("stylesheet file path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.css")
		if err := os.WriteFile(path, []byte(".custom { color: red; }"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		conv := newTestConverter(t, WithStylesheet(path))
		if conv.StyleCSS() != ".custom { color: red; }" {
			t.Errorf("StyleCSS() = %q", conv.StyleCSS())
		}
	})

	t.Run("missing stylesheet file", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithStylesheet(filepath.Join(t.TempDir(), "nope.css")))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("asset path overrides embedded", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "styles"), 0755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "styles", "default.css"), []byte("/* mine */"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		conv := newTestConverter(t, WithAssetPath(dir))
		if conv.StyleCSS() != "/* mine */" {
			t.Errorf("StyleCSS() = %q, want custom default", conv.StyleCSS())
		}
	})

	t.Run("invalid asset path", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithAssetPath("/nonexistent/streammd/assets"))
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("error = %v, want ErrInvalidAssetPath", err)
		}
	})

	t.Run("asset loader takes precedence over asset path", func(t *testing.T) {
		t.Parallel()

		loader := &mockAssetLoader{styles: map[string]string{"default": "/* loader */"}}
		conv := newTestConverter(t, WithAssetPath(t.TempDir()), WithAssetLoader(loader))
		if conv.StyleCSS() != "/* loader */" {
			t.Errorf("StyleCSS() = %q, want loader content", conv.StyleCSS())
		}
	})
}

func TestWithMaxInputSize_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("WithMaxInputSize(%d) should panic", n)
				}
			}()
			WithMaxInputSize(n)
		}()
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Fragment and standalone output
// ---------------------------------------------------------------------------

func TestConvert(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		input      Input
		want       string
		wantPrefix string
		contains   []string
		excludes   []string
	}{
		{
			name:  "fragment",
			input: Input{Markdown: "**bold**"},
			want:  "<b>bold</b>",
		},
		{
			name:  "empty markdown renders empty fragment",
			input: Input{Markdown: ""},
			want:  "",
		},
		{
			name:  "fragment with CSS gets a style block",
			input: Input{Markdown: "x", CSS: "b { color: red; }"},
			want:  "<style>b { color: red; }</style>x",
		},
		{
			name:       "standalone document",
			input:      Input{Markdown: "# Title", Standalone: true},
			wantPrefix: "<!DOCTYPE html>",
			contains:   []string{"<title>Document</title>", "<h1>Title</h1>", ".md-document", "</style></head>"},
		},
		{
			name:     "standalone with title and extra CSS",
			input:    Input{Markdown: "x", Standalone: true, Title: "A <b> title", CSS: ".extra{}"},
			contains: []string{"<title>A &lt;b&gt; title</title>", ".extra{}"},
			excludes: []string{"<title>A <b>"},
		},
		{
			name:     "CSS cannot close the style element",
			input:    Input{Markdown: "x", CSS: "</style><script>alert(1)</script>"},
			excludes: []string{"</style><script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := conv.Convert(ctx, tt.input)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			got := string(result.HTML)

			if tt.want != "" || (tt.wantPrefix == "" && tt.contains == nil && tt.excludes == nil) {
				if got != tt.want {
					t.Errorf("Convert() = %q, want %q", got, tt.want)
				}
			}
			if tt.wantPrefix != "" && !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("Convert() should start with %q", tt.wantPrefix)
			}
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Convert() missing %q", s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Convert() should not contain %q", s)
				}
			}
		})
	}
}

func TestConvert_DocumentTitleOption(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithDocumentTitle("Chat export"))

	result, err := conv.Convert(context.Background(), Input{Markdown: "x", Standalone: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(string(result.HTML), "<title>Chat export</title>") {
		t.Error("WithDocumentTitle should set the default title")
	}

	result, err = conv.Convert(context.Background(), Input{Markdown: "x", Standalone: true, Title: "Override"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(string(result.HTML), "<title>Override</title>") {
		t.Error("Input.Title should override WithDocumentTitle")
	}
}

func TestConvert_HighlightedStandalone(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithHighlighting("monokai"))

	result, err := conv.Convert(context.Background(), Input{
		Markdown:   "```go\nfunc main() {}\n```",
		Standalone: true,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	html := string(result.HTML)
	if !strings.Contains(html, `class="md-codeblock"`) {
		t.Error("expected code block wrapper")
	}
	if !strings.Contains(html, "<span class=") {
		t.Error("expected highlighted token spans")
	}
	if !strings.Contains(html, ".chroma") {
		t.Error("expected highlight CSS in the document")
	}
}

func TestConvert_InputTooLarge(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithMaxInputSize(16))

	if _, err := conv.Convert(context.Background(), Input{Markdown: strings.Repeat("a", 16)}); err != nil {
		t.Errorf("input at limit: unexpected error %v", err)
	}

	_, err := conv.Convert(context.Background(), Input{Markdown: strings.Repeat("a", 17)})
	if !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("markdown over limit: error = %v, want ErrInputTooLarge", err)
	}

	_, err = conv.Convert(context.Background(), Input{Markdown: "a", CSS: strings.Repeat("b", 17)})
	if !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("CSS over limit: error = %v, want ErrInputTooLarge", err)
	}
}

func TestConvert_CanceledContext(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.Convert(ctx, Input{Markdown: "x"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestConvert_PanicRecovery(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	conv.renderer = &panicRenderer{}

	result, err := conv.Convert(context.Background(), Input{Markdown: "x"})
	if result != nil {
		t.Error("result should be nil after a panic")
	}
	if !errors.Is(err, ErrRender) {
		t.Fatalf("error = %v, want ErrRender", err)
	}
	if !strings.Contains(err.Error(), "simulated panic") {
		t.Errorf("error = %q, want panic value", err)
	}
}

// ---------------------------------------------------------------------------
// TestRender - Fragment rendering through the facade
// ---------------------------------------------------------------------------

func TestRender_MatchesMarkdownToHTML(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	inputs := []string{
		"",
		"# Title\ntext",
		"| a | b |\n|:--|--:|\n| 1 | 2 |",
		"[site](https://example.com) and [bad](javascript:x)",
		"```\nopen fence",
	}

	for _, in := range inputs {
		if got, want := conv.Render(in), MarkdownToHTML(in); got != want {
			t.Errorf("Render(%q) = %q, MarkdownToHTML = %q", in, got, want)
		}
	}
}

func TestConverter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithHighlighting("github"))
	want := conv.Render("```go\nx := 1\n```\n**done**")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := conv.Render("```go\nx := 1\n```\n**done**"); got != want {
				t.Errorf("concurrent Render() differs: %q", got)
			}
		}()
	}
	wg.Wait()
}

// ---------------------------------------------------------------------------
// TestJoinCSS - Stylesheet concatenation
// ---------------------------------------------------------------------------

func TestJoinCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		parts []string
		want  string
	}{
		{parts: nil, want: ""},
		{parts: []string{"a"}, want: "a"},
		{parts: []string{"a", "", "b"}, want: "a\nb"},
		{parts: []string{"  ", "b"}, want: "b"},
	}
	for _, tt := range tests {
		if got := joinCSS(tt.parts...); got != tt.want {
			t.Errorf("joinCSS(%q) = %q, want %q", tt.parts, got, tt.want)
		}
	}
}
