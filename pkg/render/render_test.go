package render

import (
	"strings"
	"testing"

	"github.com/smartshare/panel/pkg/types"
)

func TestShareHTML(t *testing.T) {
	tests := []struct {
		name        string
		markdown    string
		wantContain string
		wantAbsent  string
	}{
		{
			name:        "emphasis becomes markup",
			markdown:    "A **key point** to share.",
			wantContain: "<strong>key point</strong>",
		},
		{
			name:        "list items survive",
			markdown:    "- first point\n- second point",
			wantContain: "<li>first point</li>",
		},
		{
			name:        "script is stripped",
			markdown:    "Before <script>alert(1)</script> after.",
			wantContain: "Before",
			wantAbsent:  "<script>",
		},
		{
			name:        "event handlers are stripped",
			markdown:    `Click <a href="https://example.com" onclick="steal()">here</a>.`,
			wantContain: `href="https://example.com"`,
			wantAbsent:  "onclick",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShareHTML(tt.markdown)
			if err != nil {
				t.Fatalf("ShareHTML() error = %v", err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("ShareHTML() = %q, want containing %q", got, tt.wantContain)
			}
			if tt.wantAbsent != "" && strings.Contains(got, tt.wantAbsent) {
				t.Errorf("ShareHTML() = %q, want without %q", got, tt.wantAbsent)
			}
		})
	}
}

func TestTerminalRender(t *testing.T) {
	term, err := NewTerminal(60)
	if err != nil {
		t.Fatalf("NewTerminal() error = %v", err)
	}

	t.Run("markdown is styled", func(t *testing.T) {
		got := term.Render("# Heading\n\nBody text.", types.FormatMarkdown)
		if !strings.Contains(got, "Heading") || !strings.Contains(got, "Body text.") {
			t.Errorf("Render() dropped content: %q", got)
		}
	})

	t.Run("plain text passes through", func(t *testing.T) {
		in := "# not a heading, just text"
		if got := term.Render(in, types.FormatPlainText); got != in {
			t.Errorf("Render() = %q, want untouched %q", got, in)
		}
	})
}
