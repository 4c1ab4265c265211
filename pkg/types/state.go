package types

// PanelState identifies which of the mutually exclusive panel states is
// current. Exactly one state is active at any time; every transition is
// driven through the panel controller.
type PanelState string

const (
	StateInitializing     PanelState = "initializing"      // StateInitializing indicates the panel is establishing page content.
	StateReady            PanelState = "ready"             // StateReady indicates content is validated and waiting for the user.
	StateErrorUnsupported PanelState = "error_unsupported" // StateErrorUnsupported indicates the page is on an unsupported site.
	StateErrorNoContent   PanelState = "error_no_content"  // StateErrorNoContent indicates the page has too little readable text.
	StateErrorExtraction  PanelState = "error_extraction"  // StateErrorExtraction indicates the extraction round trip failed.
	StateDownloading      PanelState = "downloading"       // StateDownloading indicates the engine is preparing its model.
	StateSummarizing      PanelState = "summarizing"       // StateSummarizing indicates the engine is producing a summary.
	StateComplete         PanelState = "complete"          // StateComplete indicates an attempt finished with a displayable result.
	StateCancelled        PanelState = "cancelled"         // StateCancelled indicates the user cancelled the running attempt.
)

// IsError returns true for the three dedicated error states, each of which
// offers exactly one recovery action (retry).
func (s PanelState) IsError() bool {
	return s == StateErrorUnsupported || s == StateErrorNoContent || s == StateErrorExtraction
}

// IsAttemptRunning returns true while a summarization attempt is live.
func (s PanelState) IsAttemptRunning() bool {
	return s == StateDownloading || s == StateSummarizing
}
