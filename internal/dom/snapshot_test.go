// internal/dom/snapshot_test.go

package dom

import (
	"strings"
	"testing"
)

const sampleHTML = `<html><body>
	<div class="card">
		<h2>  12 Oak St,
			Augusta </h2>
		<p>Charming   bungalow</p>
	</div>
	<div class="card"><p>Second card</p></div>
	<a href="/detail/42">More</a>
</body></html>`

func TestNewSnapshot(t *testing.T) {
	snap, err := NewSnapshot(sampleHTML, "https://www.example.com/")
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}

	if snap.BaseURL() != "https://www.example.com" {
		t.Errorf("BaseURL() = %q, want trailing slash trimmed", snap.BaseURL())
	}

	if n := snap.Find("div.card").Length(); n != 2 {
		t.Errorf("Find(div.card) matched %d nodes, want 2", n)
	}
}

func TestFullTextCollapsesWhitespace(t *testing.T) {
	snap, err := NewSnapshot(sampleHTML, "")
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}

	text := snap.FullText()
	if strings.Contains(text, "\n") || strings.Contains(text, "  ") {
		t.Errorf("FullText() not collapsed: %q", text)
	}
	if !strings.Contains(text, "12 Oak St, Augusta") {
		t.Errorf("FullText() = %q, want address with normalized spacing", text)
	}
	if !strings.Contains(text, "Charming bungalow") {
		t.Errorf("FullText() = %q, want collapsed paragraph text", text)
	}
}

func TestResolveURL(t *testing.T) {
	snap, err := NewSnapshot(sampleHTML, "https://www.example.com")
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}

	tests := []struct {
		name string
		href string
		want string
	}{
		{"absolute https", "https://other.example.com/a", "https://other.example.com/a"},
		{"absolute http", "http://other.example.com/a", "http://other.example.com/a"},
		{"protocol relative", "//cdn.example.com/img.jpg", "https://cdn.example.com/img.jpg"},
		{"rooted path", "/detail/42", "https://www.example.com/detail/42"},
		{"bare path", "detail/42", "https://www.example.com/detail/42"},
		{"surrounding whitespace", "  /detail/42  ", "https://www.example.com/detail/42"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := snap.ResolveURL(tt.href); got != tt.want {
				t.Errorf("ResolveURL(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}

func TestResolveURLWithoutBase(t *testing.T) {
	snap, err := NewSnapshot(sampleHTML, "")
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}

	if got := snap.ResolveURL("/detail/42"); got != "/detail/42" {
		t.Errorf("ResolveURL() = %q, want relative path passed through", got)
	}
}

func TestNodeID(t *testing.T) {
	snap, err := NewSnapshot(sampleHTML, "")
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}

	cards := snap.Find("div.card")
	first := NodeID(cards.First())
	if first == nil {
		t.Fatal("NodeID() = nil for non-empty selection")
	}

	// The same node reached through a different query must yield the
	// same identity.
	again := NodeID(snap.Find("div.card").First())
	if first != again {
		t.Error("NodeID() differs for the same underlying node")
	}

	second := NodeID(cards.Eq(1))
	if first == second {
		t.Error("NodeID() identical for distinct nodes")
	}

	if NodeID(snap.Find("table")) != nil {
		t.Error("NodeID() non-nil for empty selection")
	}
	if NodeID(nil) != nil {
		t.Error("NodeID(nil) non-nil")
	}
}

func TestText(t *testing.T) {
	snap, err := NewSnapshot(sampleHTML, "")
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}

	if got := Text(snap.Find("div.card").First().Find("h2")); got != "12 Oak St, Augusta" {
		t.Errorf("Text() = %q, want collapsed heading text", got)
	}
	if got := Text(nil); got != "" {
		t.Errorf("Text(nil) = %q, want empty", got)
	}
}
