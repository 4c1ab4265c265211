// Package tui provides the interactive terminal surface for the side panel.
//
// The codebase is split across files in the usual Bubble Tea shape:
// - executor.go: program lifecycle and controller wiring
// - model.go: core model structure and state
// - update.go: Update function and the state-keyed key dispatch table
// - view.go: View function and rendering
// - styles.go: color scheme and styling
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/smartshare/panel/pkg/history"
	"github.com/smartshare/panel/pkg/render"
	"github.com/smartshare/panel/pkg/types"
)

// model represents the state of the TUI application. It is a pure projection
// of the controller's events; it never mutates panel state directly, only
// sends inputs.
type model struct {
	// Bubble Tea components
	viewport viewport.Model
	spinner  spinner.Model

	// Controller integration
	channels *types.PanelChannels
	renderer *render.Terminal
	entries  func() ([]history.Entry, error)

	// Panel projection
	state     types.PanelState
	message   string
	warning   string
	summary   string
	sourceURL string
	progress  float64
	settings  types.SummarizationSettings

	// UI state
	historyOpen bool
	toast       *toastNotification

	// Window dimensions
	width  int
	height int
	ready  bool

	shouldQuit bool
}

// toastNotification is a short-lived confirmation line, used for one-shot
// side effects like the clipboard copy.
type toastNotification struct {
	message   string
	isError   bool
	showUntil time.Time
}

// toastExpiredMsg clears an elapsed toast.
type toastExpiredMsg struct{}

// controllerStoppedMsg signals that the controller event channel closed.
type controllerStoppedMsg struct{}
