// Package share pushes a finished summary out of the panel: onto the
// clipboard or into a LinkedIn share flow.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

const linkedInShareEndpoint = "https://www.linkedin.com/sharing/share-offsite/"

// ErrNoSourceURL means the summary has no page URL to attribute.
var ErrNoSourceURL = errors.New("no source URL to share")

// Payload is the canonical share text: the summary followed by a link back
// to the page it came from.
func Payload(summary, pageURL string) string {
	if pageURL == "" {
		return summary
	}
	return fmt.Sprintf("%s\n\nRead full article: %s", summary, pageURL)
}

// CopyToClipboard places the share payload on the system clipboard.
func CopyToClipboard(summary, pageURL string) error {
	if err := clipboard.WriteAll(Payload(summary, pageURL)); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// LinkedInURL builds the share-offsite URL carrying the page link and the
// summary text.
func LinkedInURL(summary, pageURL string) (string, error) {
	if pageURL == "" {
		return "", ErrNoSourceURL
	}
	params := url.Values{}
	params.Set("url", pageURL)
	params.Set("summary", summary)
	return linkedInShareEndpoint + "?" + params.Encode(), nil
}

// OpenInBrowser launches the system browser at the given URL. Best effort;
// the caller falls back to showing the URL when this fails.
func OpenInBrowser(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}
