package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartshare/panel/pkg/share"
	"github.com/smartshare/panel/pkg/types"
)

// toastMsg triggers a short-lived notification line.
type toastMsg struct {
	message string
	isError bool
}

// keyHandler reacts to one key press in one panel state.
type keyHandler func(*model) tea.Cmd

// stateKeyHandlers is the stable event-dispatch table keyed by the current
// panel state. It is built once at package load and looked up on every key
// press; handlers are never re-bound.
var stateKeyHandlers = map[types.PanelState]map[string]keyHandler{
	types.StateReady: {
		"enter": (*model).confirm,
		"s":     (*model).confirm,
		"d":     (*model).decline,
	},
	types.StateErrorUnsupported: {"r": (*model).retry},
	types.StateErrorNoContent:   {"r": (*model).retry},
	types.StateErrorExtraction:  {"r": (*model).retry},
	types.StateDownloading: {
		"c":   (*model).cancel,
		"esc": (*model).cancel,
	},
	types.StateSummarizing: {
		"c":   (*model).cancel,
		"esc": (*model).cancel,
	},
	types.StateComplete: {
		"r": (*model).resummarize,
		"c": (*model).copySummary,
		"l": (*model).shareLinkedIn,
	},
	types.StateCancelled: {
		"enter": (*model).confirm,
		"s":     (*model).confirm,
		"d":     (*model).decline,
	},
}

func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case *types.PanelEvent:
		return m.handlePanelEvent(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastMsg:
		m.toast = &toastNotification{
			message:   msg.message,
			isError:   msg.isError,
			showUntil: time.Now().Add(3 * time.Second),
		}
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return toastExpiredMsg{}
		})

	case toastExpiredMsg:
		if m.toast != nil && time.Now().After(m.toast.showUntil) {
			m.toast = nil
		}
		return m, nil

	case controllerStoppedMsg:
		m.shouldQuit = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	bodyHeight := msg.Height - chromeHeight
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(msg.Width, bodyHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = bodyHeight
	}
	m.refreshViewport()
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global keys first; everything else is state-dependent.
	switch key {
	case "ctrl+c", "q":
		m.shouldQuit = true
		return m, tea.Quit
	case "h":
		m.historyOpen = !m.historyOpen
		m.refreshViewport()
		return m, nil
	case "t":
		return m, m.cycleType()
	case "f":
		return m, m.cycleFormat()
	case "n":
		return m, m.cycleLength()
	}

	if handlers, ok := stateKeyHandlers[m.state]; ok {
		if handler, ok := handlers[key]; ok {
			return m, handler(m)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) handlePanelEvent(ev *types.PanelEvent) (tea.Model, tea.Cmd) {
	switch ev.Type {
	case types.EventTypeStateChange:
		prev := m.state
		m.state = ev.State
		m.message = ev.Message
		if ev.State == types.StateDownloading {
			m.progress = 0
		}
		if ev.State.IsAttemptRunning() && !prev.IsAttemptRunning() {
			m.warning = ""
		}
		m.refreshViewport()

	case types.EventTypeDownloadProgress:
		m.progress = ev.Progress

	case types.EventTypeSummary:
		m.summary = ev.Summary
		m.sourceURL = ev.SourceURL
		m.refreshViewport()

	case types.EventTypeWarning:
		m.warning = ev.Message

	case types.EventTypeHistoryUpdated:
		if m.historyOpen {
			m.refreshViewport()
		}

	case types.EventTypeError:
		if ev.Error != nil && m.message == "" {
			m.message = ev.Error.Error()
		}
	}
	return m, nil
}

// sendInput delivers one user gesture to the controller without blocking the
// update loop.
func (m *model) sendInput(in *types.Input) tea.Cmd {
	ch := m.channels
	return func() tea.Msg {
		select {
		case ch.Input <- in:
		case <-ch.Done:
		}
		return nil
	}
}

func (m *model) confirm() tea.Cmd {
	return m.sendInput(types.NewConfirmInput())
}

func (m *model) decline() tea.Cmd {
	return m.sendInput(types.NewDeclineInput())
}

func (m *model) cancel() tea.Cmd {
	return m.sendInput(types.NewCancelInput())
}

func (m *model) retry() tea.Cmd {
	return m.sendInput(types.NewRetryInput())
}

func (m *model) resummarize() tea.Cmd {
	return m.sendInput(types.NewResummarizeInput())
}

func (m *model) copySummary() tea.Cmd {
	summary, url := m.summary, m.sourceURL
	if summary == "" {
		return nil
	}
	return func() tea.Msg {
		if err := share.CopyToClipboard(summary, url); err != nil {
			return toastMsg{message: "Copy failed: " + err.Error(), isError: true}
		}
		return toastMsg{message: "Summary copied to clipboard"}
	}
}

func (m *model) shareLinkedIn() tea.Cmd {
	summary, url := m.summary, m.sourceURL
	if summary == "" {
		return nil
	}
	return func() tea.Msg {
		target, err := share.LinkedInURL(summary, url)
		if err != nil {
			return toastMsg{message: "Share failed: " + err.Error(), isError: true}
		}
		if err := share.OpenInBrowser(target); err != nil {
			return toastMsg{message: "Open this link to share: " + target}
		}
		return toastMsg{message: "Opened LinkedIn share"}
	}
}

func (m *model) cycleType() tea.Cmd {
	m.settings.Type = nextValue(types.SummaryTypes(), m.settings.Type)
	return m.sendInput(types.NewSettingsChangeInput(m.settings))
}

func (m *model) cycleFormat() tea.Cmd {
	m.settings.Format = nextValue(types.SummaryFormats(), m.settings.Format)
	return m.sendInput(types.NewSettingsChangeInput(m.settings))
}

func (m *model) cycleLength() tea.Cmd {
	m.settings.Length = nextValue(types.SummaryLengths(), m.settings.Length)
	return m.sendInput(types.NewSettingsChangeInput(m.settings))
}

// nextValue returns the element after current, wrapping around.
func nextValue[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
