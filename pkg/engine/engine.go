// Package engine defines the contract of the external summarization engine:
// a session-oriented, black-box service with a capability query, a monitored
// create step, a summarize operation, and deterministic resource release.
package engine

import (
	"context"

	"github.com/smartshare/panel/pkg/types"
)

// Availability is the tri-state capability answer of the engine.
type Availability int

const (
	// Unavailable means the engine cannot run on this host at all.
	Unavailable Availability = iota
	// AfterDownload means the engine can run once its model is fetched,
	// which requires a user gesture to start.
	AfterDownload
	// Available means the engine is ready to create sessions.
	Available
)

// String returns the wire-style name of the availability state.
func (a Availability) String() string {
	switch a {
	case Unavailable:
		return "unavailable"
	case AfterDownload:
		return "after-download"
	case Available:
		return "available"
	default:
		return "unknown"
	}
}

// Options enumerates everything passed to Create. Unknown settings values are
// rejected before they reach the engine.
type Options struct {
	Settings                 types.SummarizationSettings
	ExpectedInputLanguages   []string
	OutputLanguage           string
	ExpectedContextLanguages []string
	SharedContext            string

	// OnProgress receives model download fractions in [0,1]. May be nil.
	// Zero or more calls happen before Create returns.
	OnProgress func(fraction float64)
}

// Engine is the session factory. Implementations must validate Options at the
// boundary.
type Engine interface {
	// Availability reports whether sessions can currently be created.
	Availability(ctx context.Context) (Availability, error)

	// Create builds one engine session, reporting download progress through
	// Options.OnProgress while the model is being prepared.
	Create(ctx context.Context, opts Options) (Session, error)
}

// Session is one live summarizer instance. Destroy releases its resources;
// it must be safe to call at most once and safe to skip if Create failed.
type Session interface {
	// Summarize produces the summary for text. callContext is the fixed
	// per-call hint describing the summarization purpose.
	Summarize(ctx context.Context, text, callContext string) (string, error)

	// Destroy releases the session's resources.
	Destroy()
}
