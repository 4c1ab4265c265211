package types

// PanelEventType defines the type of event emitted by the panel controller.
type PanelEventType string

const (
	EventTypeStateChange      PanelEventType = "state_change"      // EventTypeStateChange indicates the panel moved to a new state.
	EventTypeDownloadProgress PanelEventType = "download_progress" // EventTypeDownloadProgress carries a model download fraction.
	EventTypeSummary          PanelEventType = "summary"           // EventTypeSummary carries the displayable result of an attempt.
	EventTypeWarning          PanelEventType = "warning"           // EventTypeWarning carries a non-fatal user-facing warning.
	EventTypeHistoryUpdated   PanelEventType = "history_updated"   // EventTypeHistoryUpdated indicates the durable log changed.
	EventTypeError            PanelEventType = "error"             // EventTypeError indicates an internal error worth logging.
)

// PanelEvent represents an observable change emitted by the panel controller.
// The UI layer is a pure projection of these events.
type PanelEvent struct {
	// Error contains error information for error events.
	Error error

	// Message holds the user-facing message for the current state, if any.
	Message string

	// Summary holds the result text for summary events.
	Summary string

	// SourceURL is the URL the current content was extracted from.
	SourceURL string

	// Type indicates the kind of event.
	Type PanelEventType

	// State is the panel state at the time the event was emitted.
	State PanelState

	// Progress is the download fraction in [0,1] for progress events.
	Progress float64
}

// NewStateChangeEvent creates a state change event with an optional message.
func NewStateChangeEvent(state PanelState, message string) *PanelEvent {
	return &PanelEvent{Type: EventTypeStateChange, State: state, Message: message}
}

// NewDownloadProgressEvent creates a download progress event.
func NewDownloadProgressEvent(state PanelState, fraction float64) *PanelEvent {
	return &PanelEvent{Type: EventTypeDownloadProgress, State: state, Progress: fraction}
}

// NewSummaryEvent creates a summary event carrying the attempt result.
func NewSummaryEvent(state PanelState, summary, sourceURL string) *PanelEvent {
	return &PanelEvent{Type: EventTypeSummary, State: state, Summary: summary, SourceURL: sourceURL}
}

// NewWarningEvent creates a warning event.
func NewWarningEvent(state PanelState, message string) *PanelEvent {
	return &PanelEvent{Type: EventTypeWarning, State: state, Message: message}
}

// NewHistoryUpdatedEvent creates a history updated event.
func NewHistoryUpdatedEvent(state PanelState) *PanelEvent {
	return &PanelEvent{Type: EventTypeHistoryUpdated, State: state}
}

// NewErrorEvent creates an error event.
func NewErrorEvent(state PanelState, err error) *PanelEvent {
	return &PanelEvent{Type: EventTypeError, State: state, Error: err}
}

// IsStateChange returns true if this is a state change event.
func (e *PanelEvent) IsStateChange() bool {
	return e.Type == EventTypeStateChange
}

// IsProgress returns true if this is a download progress event.
func (e *PanelEvent) IsProgress() bool {
	return e.Type == EventTypeDownloadProgress
}
