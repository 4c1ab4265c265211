package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPMessengerExtractsArticleText(t *testing.T) {
	page := `<html><head><style>body{color:red}</style></head><body>
		<nav>Site navigation</nav>
		<article><h1>Headline</h1><p>First paragraph of the article.</p>
		<script>console.log("noise")</script></article>
		<footer>Copyright notice</footer>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	m := NewHTTPMessenger(srv.URL, srv.Client())
	resp, err := m.Send(context.Background(), NewExtractRequest())
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !resp.Success {
		t.Fatalf("Send() failed: %s", resp.Error)
	}
	if !strings.Contains(resp.Content, "First paragraph of the article.") {
		t.Errorf("Content = %q, want article paragraph", resp.Content)
	}
	for _, noise := range []string{"Site navigation", "Copyright notice", "console.log", "color:red"} {
		if strings.Contains(resp.Content, noise) {
			t.Errorf("Content contains stripped chrome %q", noise)
		}
	}
	if resp.URL != srv.URL {
		t.Errorf("URL = %q, want %q", resp.URL, srv.URL)
	}
}

func TestHTTPMessengerFallsBackToBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body><div>Plain page body text.</div></body></html>`))
	}))
	defer srv.Close()

	resp, err := NewHTTPMessenger(srv.URL, srv.Client()).Send(context.Background(), NewExtractRequest())
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if resp.Content != "Plain page body text." {
		t.Errorf("Content = %q, want %q", resp.Content, "Plain page body text.")
	}
}

func TestHTTPMessengerCapsLongPages(t *testing.T) {
	long := strings.Repeat("word ", 2*MaxExtractChars/5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body><article>` + long + `</article></body></html>`))
	}))
	defer srv.Close()

	resp, err := NewHTTPMessenger(srv.URL, srv.Client()).Send(context.Background(), NewExtractRequest())
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(resp.Content) > MaxExtractChars {
		t.Errorf("len(Content) = %d, want <= %d", len(resp.Content), MaxExtractChars)
	}
}

func TestHTTPMessengerNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	resp, err := NewHTTPMessenger(srv.URL, srv.Client()).Send(context.Background(), NewExtractRequest())
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if resp.Success {
		t.Error("Send() succeeded on non-OK status")
	}
	if !strings.Contains(resp.Error, "403") {
		t.Errorf("Error = %q, want status code", resp.Error)
	}
}

func TestHTTPMessengerRejectsUnknownAction(t *testing.T) {
	resp, err := NewHTTPMessenger("https://example.com", nil).Send(context.Background(), &Request{Action: "bogus"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if resp.Success {
		t.Error("Send() accepted unknown action")
	}
}
