// Package browser hands post links off to the system browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Open launches the platform browser on a post link. Only http(s) links are
// accepted; feeds are untrusted input and anything else risks invoking a
// local protocol handler.
func Open(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid link: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q link", u.Scheme)
	}
	name, args := openCommand(link)
	return exec.Command(name, args...).Start()
}

func openCommand(link string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{link}
	case "windows":
		// rundll32 avoids shell interpretation of the URL
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}
	default:
		return "xdg-open", []string{link}
	}
}
