package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smartshare/panel/pkg/content"
	"github.com/smartshare/panel/pkg/logging"
	"github.com/smartshare/panel/pkg/storage"
)

var (
	// ErrNoActiveTab means there is no page to extract from.
	ErrNoActiveTab = errors.New("no active page to extract from")
	// ErrExtraction wraps a failure reported by the page side.
	ErrExtraction = errors.New("extraction failed")
)

// Gateway produces the current page's text and source URL. An empty result
// is a valid outcome, distinct from an extraction failure.
type Gateway interface {
	Extract(ctx context.Context) (*content.PageContent, error)
}

// Messenger carries one extraction request to the page side and returns its
// response. Transport failures are returned as errors; in-page failures come
// back as unsuccessful responses.
type Messenger interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// MessagingGateway drives the request/response protocol against a Messenger
// and mirrors successful results into session storage.
type MessagingGateway struct {
	messenger Messenger
	store     *storage.SessionStore
	log       *logging.Logger
}

// NewMessagingGateway creates a gateway over the given messenger. store may
// be nil when no session mirror is wanted.
func NewMessagingGateway(messenger Messenger, store *storage.SessionStore, log *logging.Logger) *MessagingGateway {
	return &MessagingGateway{
		messenger: messenger,
		store:     store,
		log:       log,
	}
}

// Extract sends the extraction request and normalizes the response. The
// returned content may be empty; callers decide what an empty page means.
func (g *MessagingGateway) Extract(ctx context.Context) (*content.PageContent, error) {
	resp, err := g.messenger.Send(ctx, NewExtractRequest())
	if err != nil {
		return nil, fmt.Errorf("sending extract request: %w", err)
	}
	if !resp.Success {
		if resp.Error == "" {
			return nil, ErrExtraction
		}
		return nil, fmt.Errorf("%w: %s", ErrExtraction, resp.Error)
	}

	pc := normalize(resp.Content, resp.URL)
	if g.store != nil {
		g.store.SetAll(map[string]string{
			storage.KeyPageContent: pc.Text,
			storage.KeyPageURL:     pc.SourceURL,
		})
	}
	g.log.Debugf("extracted %d chars from %s", len(pc.Text), pc.SourceURL)
	return pc, nil
}

// normalize trims raw extracted text. Length capping is the page side's job;
// the gateway passes whatever the messenger answered.
func normalize(text, url string) *content.PageContent {
	return &content.PageContent{Text: strings.TrimSpace(text), SourceURL: url}
}
