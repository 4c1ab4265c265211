// Package panel implements the orchestration state machine behind the
// side panel. The controller owns the current panel state and page content,
// serializes every transition through one event loop, and coordinates the
// extraction gateway, validator, summarization sessions, and history log.
package panel

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/smartshare/panel/pkg/config"
	"github.com/smartshare/panel/pkg/content"
	"github.com/smartshare/panel/pkg/extract"
	"github.com/smartshare/panel/pkg/history"
	"github.com/smartshare/panel/pkg/logging"
	"github.com/smartshare/panel/pkg/session"
	"github.com/smartshare/panel/pkg/storage"
	"github.com/smartshare/panel/pkg/tokens"
	"github.com/smartshare/panel/pkg/types"
)

const msgExtractionFailed = "We couldn't read this page. Try again?"

// Controller drives the panel state machine. All state lives on the
// controller and is mutated only by its event loop; concurrent readers go
// through the accessor methods.
type Controller struct {
	validator *content.Validator
	gateway   extract.Gateway
	sessions  *session.Manager
	history   *history.Store
	store     *storage.SessionStore
	estimator *tokens.Estimator
	prefs     *config.PrefsStore
	log       *logging.Logger
	channels  *types.PanelChannels

	mu              sync.Mutex
	state           types.PanelState
	current         *content.PageContent
	settings        types.SummarizationSettings
	declined        bool
	attemptID       string
	attemptSettings types.SummarizationSettings

	extractSeq uint64
	extractCh  chan *extractResult
}

type extractResult struct {
	content *content.PageContent
	err     error
	seq     uint64
}

// ControllerOption configures optional collaborators on the controller.
type ControllerOption func(*Controller)

// WithSessionStorage attaches the session-scoped store whose pageContent
// changes the controller treats as candidate new-content events.
func WithSessionStorage(store *storage.SessionStore) ControllerOption {
	return func(c *Controller) {
		c.store = store
	}
}

// WithEstimator enables the oversized-page warning.
func WithEstimator(estimator *tokens.Estimator) ControllerOption {
	return func(c *Controller) {
		c.estimator = estimator
	}
}

// WithPrefs persists settings changes across panel sessions.
func WithPrefs(prefs *config.PrefsStore) ControllerOption {
	return func(c *Controller) {
		c.prefs = prefs
	}
}

// WithSettings sets the initial summarization settings.
func WithSettings(settings types.SummarizationSettings) ControllerOption {
	return func(c *Controller) {
		c.settings = settings
	}
}

// WithChannels replaces the default channel bundle.
func WithChannels(channels *types.PanelChannels) ControllerOption {
	return func(c *Controller) {
		c.channels = channels
	}
}

// NewController creates a panel controller in the Initializing state.
func NewController(
	validator *content.Validator,
	gateway extract.Gateway,
	sessions *session.Manager,
	hist *history.Store,
	log *logging.Logger,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		validator: validator,
		gateway:   gateway,
		sessions:  sessions,
		history:   hist,
		log:       log,
		channels:  types.NewPanelChannels(10),
		state:     types.StateInitializing,
		settings:  types.DefaultSettings(),
		extractCh: make(chan *extractResult, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Channels returns the controller's communication channels.
func (c *Controller) Channels() *types.PanelChannels {
	return c.channels
}

// State returns the current panel state.
func (c *Controller) State() types.PanelState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Settings returns the currently selected summarization settings.
func (c *Controller) Settings() types.SummarizationSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// CurrentContent returns the content the panel currently holds, or nil.
func (c *Controller) CurrentContent() *content.PageContent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// History exposes the durable log for display surfaces.
func (c *Controller) History() *history.Store {
	return c.history
}

// Run executes the event loop until the context is cancelled or shutdown is
// requested. Every transition happens on this goroutine; events arriving
// while an async operation is in flight queue up and are applied in order.
func (c *Controller) Run(ctx context.Context) error {
	defer c.channels.Close()

	c.log.Infof("panel controller starting")
	c.initialize(ctx)

	var watch <-chan storage.Change
	if c.store != nil {
		watch = c.store.Watch()
	}

	for {
		select {
		case <-ctx.Done():
			c.log.Infof("panel controller stopping: %v", ctx.Err())
			return ctx.Err()
		case <-c.channels.Shutdown:
			c.log.Infof("panel controller shutting down")
			return nil
		case in := <-c.channels.Input:
			c.handleInput(ctx, in)
		case change := <-watch:
			c.handleStorageChange(change)
		case res := <-c.extractCh:
			c.handleExtractResult(res)
		case ev := <-c.sessions.Events():
			c.handleAttemptEvent(ev)
		}
	}
}

// initialize establishes the first content: stored content when a previous
// panel instance left some, a fresh extraction otherwise.
func (c *Controller) initialize(ctx context.Context) {
	if c.store != nil {
		if text, ok := c.store.Get(storage.KeyPageContent); ok && text != "" {
			url, _ := c.store.Get(storage.KeyPageURL)
			c.log.Debugf("found stored content for %s", url)
			c.deliver(content.PageContent{Text: text, SourceURL: url})
			return
		}
	}
	c.startExtraction(ctx)
}

// deliver applies a candidate new content. Re-delivery of identical text is
// a no-op; distinct content discards any in-flight attempt and re-validates.
func (c *Controller) deliver(pc content.PageContent) {
	c.mu.Lock()
	if c.current != nil && c.current.SameText(pc) {
		c.mu.Unlock()
		c.log.Debugf("identical content re-delivered, ignoring")
		return
	}
	c.current = &pc
	c.declined = false
	c.mu.Unlock()

	c.cancelAttempt()
	c.setState(types.StateInitializing, "")

	result := c.validator.Validate(pc)
	if !result.Valid {
		c.log.Infof("content invalid (%s): %s", result.Reason, result.UserMessage)
		c.setState(stateForReason(result.Reason), result.UserMessage)
		return
	}

	c.setState(types.StateReady, "")
	if c.estimator != nil {
		if msg, warn := c.estimator.WarningFor(pc.Text); warn {
			c.log.Warnf("content over model budget: %d chars", len(pc.Text))
			c.emit(types.NewWarningEvent(types.StateReady, msg))
		}
	}
}

func stateForReason(reason content.InvalidReason) types.PanelState {
	switch reason {
	case content.ReasonInsufficientContent:
		return types.StateErrorNoContent
	default:
		// Malformed URLs surface the same way as unsupported sites: the
		// page cannot be summarized and retrying extraction is the only
		// recovery.
		return types.StateErrorUnsupported
	}
}

// startExtraction kicks off one extraction round trip. The sequence number
// makes a superseded round trip's completion inert.
func (c *Controller) startExtraction(ctx context.Context) {
	c.setState(types.StateInitializing, "")
	c.extractSeq++
	seq := c.extractSeq

	go func() {
		pc, err := c.gateway.Extract(ctx)
		select {
		case c.extractCh <- &extractResult{seq: seq, content: pc, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (c *Controller) handleExtractResult(res *extractResult) {
	if res.seq != c.extractSeq {
		c.log.Debugf("discarding superseded extraction result")
		return
	}
	if res.err != nil {
		c.log.Errorf("extraction failed: %v", res.err)
		c.emit(types.NewErrorEvent(types.StateErrorExtraction, res.err))
		c.setState(types.StateErrorExtraction, msgExtractionFailed)
		return
	}
	c.deliver(*res.content)
}

// handleStorageChange treats a pageContent change from another panel
// instance as a candidate new-content event.
func (c *Controller) handleStorageChange(change storage.Change) {
	if change.Key != storage.KeyPageContent {
		return
	}
	url, _ := c.store.Get(storage.KeyPageURL)
	c.deliver(content.PageContent{Text: change.NewValue, SourceURL: url})
}

func (c *Controller) handleInput(ctx context.Context, in *types.Input) {
	if in == nil {
		return
	}
	state := c.State()

	switch in.Type {
	case types.InputTypeConfirm:
		c.mu.Lock()
		declined := c.declined
		c.mu.Unlock()
		if (state == types.StateReady && !declined) || state == types.StateCancelled {
			c.startAttempt(ctx, false)
		} else {
			c.log.Debugf("confirm ignored in state %s", state)
		}

	case types.InputTypeDecline:
		switch state {
		case types.StateReady:
			c.mu.Lock()
			c.declined = true
			c.mu.Unlock()
		case types.StateCancelled:
			c.mu.Lock()
			c.declined = true
			c.mu.Unlock()
			c.setState(types.StateReady, "")
		}

	case types.InputTypeCancel:
		if state.IsAttemptRunning() {
			c.cancelAttempt()
			c.setState(types.StateCancelled, "")
		}

	case types.InputTypeRetry:
		if state.IsError() {
			c.startExtraction(ctx)
		}

	case types.InputTypeResummarize:
		if state == types.StateComplete {
			c.startAttempt(ctx, false)
		}

	case types.InputTypeSettingsChange:
		c.applySettings(ctx, in.Settings, state)

	default:
		c.log.Warnf("unknown input type %q", in.Type)
	}
}

// applySettings records newly selected settings. Only a change while a
// result is displayed re-runs summarization; the model is already resident
// then, so the fresh attempt skips the download phase.
func (c *Controller) applySettings(ctx context.Context, settings types.SummarizationSettings, state types.PanelState) {
	if err := settings.Validate(); err != nil {
		c.log.Warnf("rejecting settings change: %v", err)
		c.emit(types.NewErrorEvent(state, err))
		return
	}

	c.mu.Lock()
	c.settings = settings
	c.mu.Unlock()

	if c.prefs != nil {
		if err := c.prefs.Save(settings); err != nil {
			c.log.Warnf("persisting settings: %v", err)
		}
	}

	if state == types.StateComplete {
		c.startAttempt(ctx, true)
	}
}

// startAttempt begins a fresh summarization attempt with the current
// settings, superseding any live one.
func (c *Controller) startAttempt(ctx context.Context, warm bool) {
	c.mu.Lock()
	pc := c.current
	settings := c.settings
	c.mu.Unlock()
	if pc == nil {
		c.log.Warnf("attempt requested with no content")
		return
	}

	c.cancelAttempt()
	id := c.sessions.Start(ctx, session.StartRequest{
		Content:       *pc,
		Settings:      settings,
		UserInitiated: true,
		Warm:          warm,
	})

	c.mu.Lock()
	c.attemptID = id
	c.attemptSettings = settings
	c.mu.Unlock()

	c.log.Infof("attempt %s started (warm=%v, type=%s)", id, warm, settings.Type)
	if warm {
		c.setState(types.StateSummarizing, "")
	} else {
		c.setState(types.StateDownloading, "")
	}
}

func (c *Controller) cancelAttempt() {
	c.mu.Lock()
	id := c.attemptID
	c.attemptID = ""
	c.mu.Unlock()
	if id != "" {
		c.log.Infof("cancelling attempt %s", id)
		c.sessions.Cancel()
	}
}

func (c *Controller) handleAttemptEvent(ev *session.AttemptEvent) {
	c.mu.Lock()
	live := c.attemptID
	c.mu.Unlock()
	if ev.AttemptID != live {
		c.log.Debugf("discarding event from superseded attempt %s", ev.AttemptID)
		return
	}

	switch ev.Type {
	case session.EventProgress:
		if c.State() == types.StateDownloading {
			c.emit(types.NewDownloadProgressEvent(types.StateDownloading, ev.Progress))
		}
	case session.EventSummarizing:
		if c.State() == types.StateDownloading {
			c.setState(types.StateSummarizing, "")
		}
	case session.EventOutcome:
		c.mu.Lock()
		c.attemptID = ""
		c.mu.Unlock()
		c.finishAttempt(ev.Outcome)
	}
}

// finishAttempt lands a terminal outcome. Success and runtime failure both
// complete the attempt and are recorded in history; capability gaps
// (unavailable engine, missing user gesture) complete with an explanatory
// message but leave no history entry.
func (c *Controller) finishAttempt(out session.Outcome) {
	c.mu.Lock()
	pc := c.current
	settings := c.attemptSettings
	c.mu.Unlock()

	sourceURL := ""
	if pc != nil {
		sourceURL = pc.SourceURL
	}

	switch out.Kind {
	case session.OutcomeSuccess:
		c.recordHistory(sourceURL, out.Text, history.StatusSuccess, settings)
		c.setState(types.StateComplete, "")
		c.emit(types.NewSummaryEvent(types.StateComplete, out.Text, sourceURL))

	case session.OutcomeError:
		c.log.Warnf("attempt failed: %s", out.Text)
		c.recordHistory(sourceURL, out.Text, history.StatusError, settings)
		c.setState(types.StateComplete, out.Text)
		c.emit(types.NewErrorEvent(types.StateComplete, errors.New(out.Text)))

	case session.OutcomeUnavailable, session.OutcomeNeedsGesture:
		c.log.Infof("attempt short-circuited: %s", out.Text)
		c.setState(types.StateComplete, out.Text)
	}
}

func (c *Controller) recordHistory(url, text string, status history.Status, settings types.SummarizationSettings) {
	if c.history == nil {
		return
	}
	entry := history.Entry{
		URL:       url,
		Summary:   text,
		Status:    status,
		Timestamp: time.Now().UTC(),
		Settings:  settings,
	}
	if err := c.history.Append(entry); err != nil {
		c.log.Errorf("appending history entry: %v", err)
		c.emit(types.NewErrorEvent(c.State(), err))
		return
	}
	c.emit(types.NewHistoryUpdatedEvent(c.State()))
}

// setState moves the machine to a new state and publishes the transition.
// Re-entering the current state without a new message is suppressed.
func (c *Controller) setState(state types.PanelState, message string) {
	c.mu.Lock()
	if c.state == state && message == "" {
		c.mu.Unlock()
		return
	}
	prev := c.state
	c.state = state
	c.mu.Unlock()

	if prev != state {
		c.log.Infof("state %s -> %s", prev, state)
	}
	c.emit(types.NewStateChangeEvent(state, message))
}

func (c *Controller) emit(ev *types.PanelEvent) {
	select {
	case c.channels.Event <- ev:
	case <-c.channels.Shutdown:
	}
}
