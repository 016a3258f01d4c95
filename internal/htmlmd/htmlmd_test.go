package htmlmd

import (
	"strings"
	"testing"
)

func TestToMarkupParagraph(t *testing.T) {
	got, err := ToMarkup("<p>Pay here</p>")
	if err != nil {
		t.Fatalf("ToMarkup: %v", err)
	}
	if got != "Pay here\n" {
		t.Errorf("ToMarkup = %q, want %q", got, "Pay here\n")
	}
}

func TestToMarkupStructure(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"heading", "<h2>Refunds</h2>", "## Refunds\n"},
		{"bold", "<p>a <strong>b</strong> c</p>", "a **b** c\n"},
		{"italic", "<p><em>soft</em></p>", "*soft*\n"},
		{"link", `<p><a href="https://x.test">here</a></p>`, "[here](https://x.test)\n"},
		{"image", `<p><img src="/i.png" alt="pic"></p>`, "![pic](/i.png)\n"},
		{"list", "<ul><li>one</li><li>two</li></ul>", "- one\n- two\n"},
		{"ordered", "<ol><li>a</li><li>b</li></ol>", "1. a\n2. b\n"},
		{"code", "<p>run <code>ls</code></p>", "run `ls`\n"},
		{"two paragraphs", "<p>a</p>\n<p>b</p>", "a\n\nb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMarkup(tt.in)
			if err != nil {
				t.Fatalf("ToMarkup: %v", err)
			}
			if got != tt.want {
				t.Errorf("ToMarkup(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderParagraph(t *testing.T) {
	if got := Render("Pay here\n"); got != "<p>Pay here</p>" {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"heading", "## Refunds", "<h2>Refunds</h2>"},
		{"list", "- one\n- two", "<ul>\n<li>one</li>\n<li>two</li>\n</ul>"},
		{"ordered", "1. a\n2. b", "<ol>\n<li>a</li>\n<li>b</li>\n</ol>"},
		{"link", "[here](https://x.test)", `<p><a href="https://x.test">here</a></p>`},
		{"image", "![pic](/i.png)", `<p><img src="/i.png" alt="pic"></p>`},
		{"bold and italic", "**b** and *i*", "<p><strong>b</strong> and <em>i</em></p>"},
		{"escaping", "1 < 2 & 3", "<p>1 &lt; 2 &amp; 3</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.in); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	body := "# Title\n\nSome **bold** text.\n\n- a\n- b\n"
	first := Render(body)
	for i := 0; i < 5; i++ {
		if got := Render(body); got != first {
			t.Fatalf("Render not deterministic: %q vs %q", got, first)
		}
	}
}

func TestRoundTripKeepsText(t *testing.T) {
	htmlIn := "<h1>Guide</h1>\n<p>Step one is <strong>easy</strong>.</p>\n<ul><li>first</li><li>second</li></ul>"
	markup, err := ToMarkup(htmlIn)
	if err != nil {
		t.Fatalf("ToMarkup: %v", err)
	}
	back := Render(markup)
	for _, fragment := range []string{"Guide", "Step one is", "easy", "first", "second"} {
		if !strings.Contains(back, fragment) {
			t.Errorf("round trip lost %q: %q", fragment, back)
		}
	}
}

func TestRewriteImageRoot(t *testing.T) {
	body := "intro ![shot]($IMAGE_ROOT/img/shot.png) outro"
	got := RewriteImageRoot("https://cdn.test/assets", body)
	want := "intro ![shot](https://cdn.test/assets/img/shot.png) outro"
	if got != want {
		t.Errorf("RewriteImageRoot = %q, want %q", got, want)
	}

	if got := RewriteImageRoot("", body); got != body {
		t.Errorf("empty cdn should leave body untouched, got %q", got)
	}
}
