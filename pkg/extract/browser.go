package extract

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/smartshare/panel/pkg/logging"
	"github.com/smartshare/panel/pkg/storage"
)

// Browser owns a playwright-driven browser whose current page acts as the
// extraction target. It plays the page side of the messaging protocol.
type Browser struct {
	pw       *playwright.Playwright
	browser  playwright.Browser
	page     playwright.Page
	log      *logging.Logger
	headless bool
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithHeadless controls whether the browser runs without a window.
func WithHeadless(headless bool) BrowserOption {
	return func(b *Browser) {
		b.headless = headless
	}
}

// NewBrowser creates an uninitialized browser host.
func NewBrowser(log *logging.Logger, opts ...BrowserOption) *Browser {
	b := &Browser{
		log:      log,
		headless: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Initialize starts playwright and launches the browser with a blank page.
func (b *Browser) Initialize() error {
	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("starting playwright: %w", err)
	}
	b.pw = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.headless),
	})
	if err != nil {
		b.stopPlaywright()
		return fmt.Errorf("launching browser: %w", err)
	}
	b.browser = browser

	page, err := browser.NewPage()
	if err != nil {
		b.Close()
		return fmt.Errorf("opening page: %w", err)
	}
	b.page = page

	b.log.Infof("browser initialized (headless=%v)", b.headless)
	return nil
}

// Open navigates the page to url and waits for the document to load.
func (b *Browser) Open(url string) error {
	if b.page == nil {
		return ErrNoActiveTab
	}
	if _, err := b.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// Messenger returns the page side of the extraction protocol for the
// browser's current page.
func (b *Browser) Messenger() Messenger {
	return &pageMessenger{browser: b}
}

// WatchPageLoads re-extracts after every page load and mirrors the result
// into store, so the panel observes navigations it did not request. Call
// before Open to also capture the initial load.
func (b *Browser) WatchPageLoads(store *storage.SessionStore) {
	if b.page == nil {
		return
	}
	w := &pageLoadWatcher{
		gateway: NewMessagingGateway(b.Messenger(), store, b.log),
		log:     b.log,
	}
	b.page.OnLoad(func(playwright.Page) { w.pageLoaded() })
}

// pageLoadWatcher pushes freshly loaded page text into session storage.
type pageLoadWatcher struct {
	gateway *MessagingGateway
	log     *logging.Logger
}

func (w *pageLoadWatcher) pageLoaded() {
	if _, err := w.gateway.Extract(context.Background()); err != nil {
		w.log.Warnf("extraction after page load: %v", err)
	}
}

// Close tears down the page, browser, and playwright driver.
func (b *Browser) Close() error {
	if b.page != nil {
		if err := b.page.Close(); err != nil {
			b.log.Warnf("closing page: %v", err)
		}
		b.page = nil
	}
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			b.log.Warnf("closing browser: %v", err)
		}
		b.browser = nil
	}
	b.stopPlaywright()
	return nil
}

func (b *Browser) stopPlaywright() {
	if b.pw == nil {
		return
	}
	if err := b.pw.Stop(); err != nil {
		b.log.Warnf("stopping playwright: %v", err)
	}
	b.pw = nil
}

// pageMessenger answers extraction requests from the live page's DOM.
type pageMessenger struct {
	browser *Browser
}

func (m *pageMessenger) Send(_ context.Context, req *Request) (*Response, error) {
	page := m.browser.page
	if page == nil {
		return nil, ErrNoActiveTab
	}
	if req.Action != ActionExtractContent {
		return &Response{Success: false, Error: fmt.Sprintf("unknown action %q", req.Action)}, nil
	}

	body, err := page.QuerySelector("body")
	if err != nil {
		return &Response{Success: false, Error: err.Error()}, nil
	}
	if body == nil {
		return &Response{Success: false, Error: "document has no body"}, nil
	}
	text, err := body.TextContent()
	if err != nil {
		return &Response{Success: false, Error: err.Error()}, nil
	}

	return &Response{Success: true, Content: capText(text), URL: page.URL()}, nil
}
