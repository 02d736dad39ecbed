package forum

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/boardfeed/boardfeed/internal/config"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>testboard</title>
  <item>
    <title>First post</title>
    <link>https://forum.example.com/t/1</link>
    <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
    <description><![CDATA[<p>Hello <b>board</b></p><img src="https://img.example.com/one.jpg"><img src="https://img.example.com/two.png">]]></description>
  </item>
  <item>
    <title>Second post</title>
    <link>https://forum.example.com/t/2</link>
    <description>plain text only</description>
  </item>
  <item>
    <title>Third post</title>
    <link>https://forum.example.com/t/3</link>
    <description>capped away</description>
  </item>
</channel>
</rss>`

func testClient(t *testing.T) *RSSClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	t.Cleanup(srv.Close)
	return NewRSSClient([]config.Board{{Name: "testboard", URL: srv.URL, Enabled: true}})
}

func TestFetchParsesItems(t *testing.T) {
	c := testClient(t)
	items, err := c.Fetch(context.Background(), "testboard", 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "First post" {
		t.Errorf("unexpected title: %q", first.Title)
	}
	if first.Abstract != "Hello board" {
		t.Errorf("abstract should be stripped text, got %q", first.Abstract)
	}
	if len(first.ImageLocators) != 2 {
		t.Fatalf("expected 2 locators, got %v", first.ImageLocators)
	}
	if first.ImageLocators[0] != "https://img.example.com/one.jpg" {
		t.Errorf("locators out of source order: %v", first.ImageLocators)
	}
	if first.Posted.IsZero() {
		t.Error("expected posted time to be parsed")
	}

	if len(items[1].ImageLocators) != 0 {
		t.Errorf("plain post should have no locators: %v", items[1].ImageLocators)
	}
}

func TestFetchCapsItems(t *testing.T) {
	c := testClient(t)
	items, err := c.Fetch(context.Background(), "testboard", 2)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected cap at 2 items, got %d", len(items))
	}
}

func TestFetchUnknownBoard(t *testing.T) {
	c := NewRSSClient(nil)
	if _, err := c.Fetch(context.Background(), "nope", 5); err == nil {
		t.Error("expected error for unconfigured board")
	}
}

func TestBodyImageURLs(t *testing.T) {
	got := bodyImageURLs(`<img src="https://a/x.jpg"><img alt="no src"><img src="https://a/y.jpg">`)
	if len(got) != 2 || got[0] != "https://a/x.jpg" || got[1] != "https://a/y.jpg" {
		t.Fatalf("expected both srcs in order, got %v", got)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hello</p>", "Hello"},
		{"<b>Bold</b> and <i>italic</i>", "Bold and italic"},
		{"No tags here", "No tags here"},
		{"<div>  Multiple   spaces  </div>", "Multiple spaces"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripHTML(tt.input); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"short", 10, "short"},
		{"this is a long string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}
