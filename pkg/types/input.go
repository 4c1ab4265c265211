package types

// InputType defines the type of input being sent to the panel controller.
type InputType string

const (
	InputTypeConfirm        InputType = "confirm"         // InputTypeConfirm indicates the user asked to summarize (or restart).
	InputTypeDecline        InputType = "decline"         // InputTypeDecline indicates the user declined summarization for this content.
	InputTypeCancel         InputType = "cancel"          // InputTypeCancel indicates a cancellation of the running attempt.
	InputTypeRetry          InputType = "retry"           // InputTypeRetry indicates recovery from an error state.
	InputTypeResummarize    InputType = "resummarize"     // InputTypeResummarize indicates a fresh attempt from Complete.
	InputTypeSettingsChange InputType = "settings_change" // InputTypeSettingsChange carries newly selected settings.
)

// Input represents a user gesture delivered to the panel controller.
type Input struct {
	// Settings is populated for settings-change inputs.
	Settings SummarizationSettings

	// Type indicates the kind of input.
	Type InputType
}

// NewConfirmInput creates a confirm input.
func NewConfirmInput() *Input {
	return &Input{Type: InputTypeConfirm}
}

// NewDeclineInput creates a decline input.
func NewDeclineInput() *Input {
	return &Input{Type: InputTypeDecline}
}

// NewCancelInput creates a cancellation input.
func NewCancelInput() *Input {
	return &Input{Type: InputTypeCancel}
}

// NewRetryInput creates a retry input.
func NewRetryInput() *Input {
	return &Input{Type: InputTypeRetry}
}

// NewResummarizeInput creates a re-summarize input.
func NewResummarizeInput() *Input {
	return &Input{Type: InputTypeResummarize}
}

// NewSettingsChangeInput creates a settings-change input.
func NewSettingsChangeInput(settings SummarizationSettings) *Input {
	return &Input{Type: InputTypeSettingsChange, Settings: settings}
}

// IsCancel returns true if this is a cancellation input.
func (i *Input) IsCancel() bool {
	return i.Type == InputTypeCancel
}
