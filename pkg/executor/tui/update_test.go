package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartshare/panel/pkg/types"
)

func newTestModel(state types.PanelState) *model {
	m := &model{
		spinner:  spinner.New(),
		channels: types.NewPanelChannels(10),
		state:    state,
		settings: types.DefaultSettings(),
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes a command and drains the input it queued, if any.
func sentInput(t *testing.T, m *model, cmd tea.Cmd) *types.Input {
	t.Helper()
	if cmd == nil {
		return nil
	}
	cmd()
	select {
	case in := <-m.channels.Input:
		return in
	default:
		return nil
	}
}

func TestKeyDispatchPerState(t *testing.T) {
	tests := []struct {
		name  string
		state types.PanelState
		key   string
		want  types.InputType
	}{
		{"confirm in ready", types.StateReady, "s", types.InputTypeConfirm},
		{"confirm via enter", types.StateReady, "enter", types.InputTypeConfirm},
		{"decline in ready", types.StateReady, "d", types.InputTypeDecline},
		{"retry in unsupported", types.StateErrorUnsupported, "r", types.InputTypeRetry},
		{"retry in no content", types.StateErrorNoContent, "r", types.InputTypeRetry},
		{"retry in extraction error", types.StateErrorExtraction, "r", types.InputTypeRetry},
		{"cancel while downloading", types.StateDownloading, "c", types.InputTypeCancel},
		{"cancel while summarizing", types.StateSummarizing, "esc", types.InputTypeCancel},
		{"resummarize in complete", types.StateComplete, "r", types.InputTypeResummarize},
		{"restart from cancelled", types.StateCancelled, "s", types.InputTypeConfirm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(tt.state)
			var msg tea.KeyMsg
			if tt.key == "esc" {
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			} else {
				msg = keyMsg(tt.key)
			}
			_, cmd := m.Update(msg)
			in := sentInput(t, m, cmd)
			if in == nil || in.Type != tt.want {
				t.Errorf("key %q in %s sent %+v, want %s", tt.key, tt.state, in, tt.want)
			}
		})
	}
}

func TestKeysOutsideTheirStateAreInert(t *testing.T) {
	tests := []struct {
		name  string
		state types.PanelState
		key   string
	}{
		{"confirm while summarizing", types.StateSummarizing, "s"},
		{"retry in ready", types.StateReady, "r"},
		{"decline in complete", types.StateComplete, "d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(tt.state)
			_, cmd := m.Update(keyMsg(tt.key))
			if in := sentInput(t, m, cmd); in != nil {
				t.Errorf("key %q in %s sent %s, want nothing", tt.key, tt.state, in.Type)
			}
		})
	}
}

func TestPanelEventProjection(t *testing.T) {
	m := newTestModel(types.StateInitializing)

	m.Update(types.NewStateChangeEvent(types.StateReady, ""))
	if m.state != types.StateReady {
		t.Errorf("state = %s, want ready", m.state)
	}

	m.Update(types.NewStateChangeEvent(types.StateDownloading, ""))
	m.Update(types.NewDownloadProgressEvent(types.StateDownloading, 0.5))
	if m.progress != 0.5 {
		t.Errorf("progress = %v, want 0.5", m.progress)
	}

	m.Update(types.NewSummaryEvent(types.StateComplete, "- a point", "https://example.com/a"))
	if m.summary != "- a point" || m.sourceURL != "https://example.com/a" {
		t.Errorf("summary projection = (%q, %q)", m.summary, m.sourceURL)
	}

	m.Update(types.NewWarningEvent(types.StateReady, "too long"))
	if m.warning != "too long" {
		t.Errorf("warning = %q", m.warning)
	}

	// Starting a fresh attempt clears the stale warning and progress.
	m.Update(types.NewStateChangeEvent(types.StateDownloading, ""))
	if m.warning != "" || m.progress != 0 {
		t.Errorf("warning/progress not reset: (%q, %v)", m.warning, m.progress)
	}
}

func TestSettingsCycling(t *testing.T) {
	m := newTestModel(types.StateComplete)

	_, cmd := m.Update(keyMsg("t"))
	in := sentInput(t, m, cmd)
	if in == nil || in.Type != types.InputTypeSettingsChange {
		t.Fatalf("t key sent %+v, want settings change", in)
	}
	if in.Settings.Type != types.TypeTLDR {
		t.Errorf("cycled type = %s, want %s", in.Settings.Type, types.TypeTLDR)
	}

	_, cmd = m.Update(keyMsg("f"))
	in = sentInput(t, m, cmd)
	if in.Settings.Format != types.FormatPlainText {
		t.Errorf("cycled format = %s, want %s", in.Settings.Format, types.FormatPlainText)
	}
}

func TestNextValueWraps(t *testing.T) {
	lengths := types.SummaryLengths()
	if got := nextValue(lengths, types.LengthLong); got != types.LengthShort {
		t.Errorf("nextValue(long) = %s, want wrap to short", got)
	}
	if got := nextValue(lengths, "bogus"); got != types.LengthShort {
		t.Errorf("nextValue(unknown) = %s, want first element", got)
	}
}
