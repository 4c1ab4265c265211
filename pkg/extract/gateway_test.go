package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/smartshare/panel/pkg/logging"
	"github.com/smartshare/panel/pkg/storage"
)

type fakeMessenger struct {
	resp    *Response
	err     error
	lastReq *Request
}

func (f *fakeMessenger) Send(_ context.Context, req *Request) (*Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

func extractLogger(t *testing.T) *logging.Logger {
	t.Setenv("HOME", t.TempDir())
	log, err := logging.NewLogger("extract-test")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func TestMessagingGatewayExtract(t *testing.T) {
	tests := []struct {
		name        string
		resp        *Response
		sendErr     error
		wantText    string
		wantURL     string
		wantErr     bool
		wantErrIs   error
		wantErrText string
	}{
		{
			name:     "successful extraction",
			resp:     &Response{Success: true, Content: "  Article body text.  ", URL: "https://example.com/a"},
			wantText: "Article body text.",
			wantURL:  "https://example.com/a",
		},
		{
			name:     "empty page is a valid result",
			resp:     &Response{Success: true, Content: "", URL: "https://example.com/blank"},
			wantText: "",
			wantURL:  "https://example.com/blank",
		},
		{
			name:        "page side failure",
			resp:        &Response{Success: false, Error: "document has no body"},
			wantErr:     true,
			wantErrIs:   ErrExtraction,
			wantErrText: "document has no body",
		},
		{
			name:      "failure without detail",
			resp:      &Response{Success: false},
			wantErr:   true,
			wantErrIs: ErrExtraction,
		},
		{
			name:      "transport failure",
			sendErr:   ErrNoActiveTab,
			wantErr:   true,
			wantErrIs: ErrNoActiveTab,
		},
	}

	log := extractLogger(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messenger := &fakeMessenger{resp: tt.resp, err: tt.sendErr}
			g := NewMessagingGateway(messenger, nil, log)

			pc, err := g.Extract(context.Background())
			if messenger.lastReq == nil || messenger.lastReq.Action != ActionExtractContent {
				t.Errorf("request action = %+v, want %q", messenger.lastReq, ActionExtractContent)
			}
			if tt.wantErr {
				if err == nil {
					t.Fatal("Extract() expected error, got nil")
				}
				if tt.wantErrIs != nil && !errors.Is(err, tt.wantErrIs) {
					t.Errorf("Extract() error = %v, want errors.Is %v", err, tt.wantErrIs)
				}
				if tt.wantErrText != "" && !strings.Contains(err.Error(), tt.wantErrText) {
					t.Errorf("Extract() error = %v, want containing %q", err, tt.wantErrText)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if pc.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", pc.Text, tt.wantText)
			}
			if pc.SourceURL != tt.wantURL {
				t.Errorf("SourceURL = %q, want %q", pc.SourceURL, tt.wantURL)
			}
		})
	}
}

func TestMessagingGatewayPassesLongContentThrough(t *testing.T) {
	// Capping is the messenger's job; the gateway must not re-cut.
	long := strings.Repeat("a", MaxExtractChars+500)
	messenger := &fakeMessenger{resp: &Response{Success: true, Content: long, URL: "https://example.com/long"}}
	g := NewMessagingGateway(messenger, nil, extractLogger(t))

	pc, err := g.Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(pc.Text) != len(long) {
		t.Errorf("len(Text) = %d, want %d", len(pc.Text), len(long))
	}
}

func TestMessagingGatewayMirrorsIntoStorage(t *testing.T) {
	store := storage.NewSessionStore()
	defer store.Close()

	messenger := &fakeMessenger{resp: &Response{Success: true, Content: "Mirrored body.", URL: "https://example.com/m"}}
	g := NewMessagingGateway(messenger, store, extractLogger(t))

	if _, err := g.Extract(context.Background()); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got, _ := store.Get(storage.KeyPageContent); got != "Mirrored body." {
		t.Errorf("stored content = %q, want %q", got, "Mirrored body.")
	}
	if got, _ := store.Get(storage.KeyPageURL); got != "https://example.com/m" {
		t.Errorf("stored url = %q, want %q", got, "https://example.com/m")
	}
}
