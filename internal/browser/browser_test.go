package browser

import "testing"

func TestOpenRejectsNonHTTPSchemes(t *testing.T) {
	tests := []string{
		"file:///etc/passwd",
		"javascript:alert(1)",
		"ftp://example.com",
	}
	for _, u := range tests {
		if err := Open(u); err == nil {
			t.Errorf("Open(%q): expected error", u)
		}
	}
}

func TestOpenRejectsInvalidURL(t *testing.T) {
	if err := Open("http://exa mple.com/%zz"); err == nil {
		t.Error("expected error for malformed URL")
	}
}
