// Package session owns the lifecycle of summarization attempts. At most one
// attempt is live at any time; superseded attempts are released and their
// late callbacks discarded by generation checks.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/smartshare/panel/pkg/content"
	"github.com/smartshare/panel/pkg/engine"
	"github.com/smartshare/panel/pkg/logging"
	"github.com/smartshare/panel/pkg/types"
)

// Fixed context hints passed to the engine. The panel summarizes English
// pages into English; localization is out of scope.
const (
	SharedContext = "Summarizing online articles for sharing."
	CallContext   = "Summarizing webpage content for quick sharing."

	UnavailableMessage  = "Summarizer API is unavailable."
	NeedsGestureMessage = "User interaction required to download the model."
)

// OutcomeKind classifies how an attempt ended.
type OutcomeKind int

const (
	// OutcomeSuccess carries the summary text.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeError carries the engine failure message; a failed
	// summarization is still a terminal, displayable result.
	OutcomeError
	// OutcomeUnavailable means the engine cannot run here at all.
	OutcomeUnavailable
	// OutcomeNeedsGesture means a user gesture must start the download.
	OutcomeNeedsGesture
)

// Outcome is the terminal result of one attempt.
type Outcome struct {
	Text string
	Kind OutcomeKind
}

// AttemptEventType identifies the phase updates an attempt emits.
type AttemptEventType string

const (
	EventProgress    AttemptEventType = "progress"    // EventProgress carries a download fraction.
	EventSummarizing AttemptEventType = "summarizing" // EventSummarizing marks the download-to-summarize phase change.
	EventOutcome     AttemptEventType = "outcome"     // EventOutcome carries the terminal result.
)

// AttemptEvent is one update from the live attempt. Consumers match
// AttemptID against the attempt they started; the manager additionally
// suppresses events from superseded attempts before they are sent.
type AttemptEvent struct {
	AttemptID string
	Type      AttemptEventType
	Progress  float64
	Outcome   Outcome
}

// StartRequest describes one attempt.
type StartRequest struct {
	Content  content.PageContent
	Settings types.SummarizationSettings

	// UserInitiated marks attempts begun by a user gesture, which is what
	// authorizes a model download.
	UserInitiated bool

	// Warm skips the availability download gate; used when re-running with
	// new settings while the model is already resident.
	Warm bool
}

// Manager drives attempts against the engine. All mutation of the live
// attempt happens under its lock; async resumptions check their generation
// before touching anything observable.
type Manager struct {
	engine engine.Engine
	log    *logging.Logger
	events chan *AttemptEvent

	mu         sync.Mutex
	generation uint64
	live       *attempt
}

// attempt pairs an engine session with the generation that owns it. release
// is safe to call from both the cancel path and the run path.
type attempt struct {
	id          string
	gen         uint64
	sess        engine.Session
	releaseOnce sync.Once
}

func (a *attempt) release() {
	a.releaseOnce.Do(func() {
		if a.sess != nil {
			a.sess.Destroy()
		}
	})
}

// NewManager creates a session manager for the given engine.
func NewManager(eng engine.Engine, log *logging.Logger) *Manager {
	return &Manager{
		engine: eng,
		log:    log,
		events: make(chan *AttemptEvent, 32),
	}
}

// Events returns the channel attempts report on. The channel is shared by
// all attempts; events carry the attempt ID they belong to.
func (m *Manager) Events() <-chan *AttemptEvent {
	return m.events
}

// Start begins a new attempt and returns its ID. Any previous live attempt
// is superseded and released first.
func (m *Manager) Start(ctx context.Context, req StartRequest) string {
	m.mu.Lock()
	m.generation++
	gen := m.generation
	if m.live != nil {
		m.live.release()
	}
	att := &attempt{id: uuid.New().String(), gen: gen}
	m.live = att
	m.mu.Unlock()

	go m.run(ctx, att, req)
	return att.id
}

// Cancel supersedes and releases the live attempt, if any. Late progress or
// results from the cancelled attempt are discarded by its now-stale
// generation.
func (m *Manager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generation++
	if m.live != nil {
		m.live.release()
		m.live = nil
	}
}

func (m *Manager) currentGen() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

// emit delivers an event unless the attempt has been superseded. Delivery is
// non-blocking: the consumer loop normally keeps up, and dropping a stale
// burst is preferable to wedging a finished attempt.
func (m *Manager) emit(gen uint64, ev *AttemptEvent) {
	if m.currentGen() != gen {
		return
	}
	select {
	case m.events <- ev:
	default:
		m.log.Warnf("attempt %s: dropped %s event, consumer not keeping up", ev.AttemptID, ev.Type)
	}
}

// run executes one attempt end to end. The engine session is released on
// every exit path.
func (m *Manager) run(ctx context.Context, att *attempt, req StartRequest) {
	defer att.release()

	outcome := func(kind OutcomeKind, text string) {
		m.emit(att.gen, &AttemptEvent{AttemptID: att.id, Type: EventOutcome, Outcome: Outcome{Kind: kind, Text: text}})
	}

	if !req.Warm {
		availability, err := m.engine.Availability(ctx)
		if err != nil {
			m.log.Errorf("attempt %s: availability check failed: %v", att.id, err)
			outcome(OutcomeError, err.Error())
			return
		}
		switch availability {
		case engine.Unavailable:
			outcome(OutcomeUnavailable, UnavailableMessage)
			return
		case engine.AfterDownload:
			if !req.UserInitiated {
				outcome(OutcomeNeedsGesture, NeedsGestureMessage)
				return
			}
		}
	}

	sess, err := m.engine.Create(ctx, engine.Options{
		Settings:                 req.Settings,
		ExpectedInputLanguages:   []string{"en"},
		OutputLanguage:           "en",
		ExpectedContextLanguages: []string{"en"},
		SharedContext:            SharedContext,
		OnProgress: func(fraction float64) {
			if fraction < 0 {
				fraction = 0
			} else if fraction > 1 {
				fraction = 1
			}
			m.emit(att.gen, &AttemptEvent{AttemptID: att.id, Type: EventProgress, Progress: fraction})
		},
	})
	if err != nil {
		m.log.Errorf("attempt %s: session create failed: %v", att.id, err)
		outcome(OutcomeError, err.Error())
		return
	}

	// Adopt the session so Cancel can release it, unless we were superseded
	// while creating; then the session is ours alone to clean up.
	m.mu.Lock()
	if m.generation != att.gen {
		m.mu.Unlock()
		sess.Destroy()
		return
	}
	att.sess = sess
	m.mu.Unlock()

	m.emit(att.gen, &AttemptEvent{AttemptID: att.id, Type: EventSummarizing})

	text, err := sess.Summarize(ctx, req.Content.Text, CallContext)
	att.release()
	if err != nil {
		m.log.Warnf("attempt %s: summarize failed: %v", att.id, err)
		outcome(OutcomeError, err.Error())
		return
	}

	outcome(OutcomeSuccess, stripEchoedFooter(text))
}

// stripEchoedFooter removes a trailing "read full article" style line the
// model sometimes echoes back from the share payload.
func stripEchoedFooter(text string) string {
	trimmed := strings.TrimRight(text, " \t\n")
	idx := strings.LastIndex(trimmed, "\n")
	last := trimmed
	if idx >= 0 {
		last = trimmed[idx+1:]
	}
	lower := strings.ToLower(strings.TrimSpace(last))
	if strings.HasPrefix(lower, "read full article") || strings.HasPrefix(lower, "read the full article") {
		if idx < 0 {
			return ""
		}
		return strings.TrimRight(trimmed[:idx], " \t\n")
	}
	return trimmed
}
