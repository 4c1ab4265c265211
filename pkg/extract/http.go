package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// Selectors stripped before readable text is collected.
var chromeSelectors = []string{"script", "style", "noscript", "nav", "header", "footer", "aside", "form"}

// Containers tried in order for the main article text.
var articleSelectors = []string{"article", "main", "[role=main]", "body"}

// HTTPMessenger answers extraction requests by fetching a fixed URL and
// reducing its markup to readable text. It serves as the fallback when no
// live page is available.
type HTTPMessenger struct {
	client *http.Client
	url    string
}

// NewHTTPMessenger creates a messenger that extracts from rawURL.
func NewHTTPMessenger(rawURL string, client *http.Client) *HTTPMessenger {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPMessenger{client: client, url: rawURL}
}

func (m *HTTPMessenger) Send(ctx context.Context, req *Request) (*Response, error) {
	if req.Action != ActionExtractContent {
		return &Response{Success: false, Error: fmt.Sprintf("unknown action %q", req.Action)}, nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, m.url, nil)
	if err != nil {
		return &Response{Success: false, Error: err.Error()}, nil
	}
	httpReq.Header.Set("User-Agent", "smartshare/1.0")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", m.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &Response{Success: false, Error: fmt.Sprintf("fetch returned status %d", resp.StatusCode)}, nil
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return &Response{Success: false, Error: fmt.Sprintf("decoding document: %v", err)}, nil
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return &Response{Success: false, Error: fmt.Sprintf("parsing document: %v", err)}, nil
	}

	return &Response{Success: true, Content: capText(readableText(doc)), URL: m.url}, nil
}

// readableText strips page chrome and returns the text of the most
// article-like container.
func readableText(doc *goquery.Document) string {
	for _, sel := range chromeSelectors {
		doc.Find(sel).Remove()
	}
	for _, sel := range articleSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if text := collapseWhitespace(node.Text()); text != "" {
			return text
		}
	}
	return ""
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
