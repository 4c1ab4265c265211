package tui

import (
	"fmt"
	"strings"

	"github.com/smartshare/panel/pkg/history"
	"github.com/smartshare/panel/pkg/types"
)

// chromeHeight is the number of rows used around the viewport: header,
// status, settings, warning/toast, and help lines.
const chromeHeight = 7

func (m *model) View() string {
	if m.shouldQuit {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("SmartShare"))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.settingsLine())
	b.WriteString("\n")
	b.WriteString(m.noticeLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m *model) statusLine() string {
	switch m.state {
	case types.StateInitializing:
		return statusStyle.Render(m.spinner.View() + " Reading page...")
	case types.StateReady:
		return readyStyle.Render("Ready to summarize. Start?")
	case types.StateErrorUnsupported, types.StateErrorNoContent, types.StateErrorExtraction:
		msg := m.message
		if msg == "" {
			msg = "Something went wrong."
		}
		return errorStyle.Render(msg)
	case types.StateDownloading:
		return progressStyle.Render(fmt.Sprintf("%s Preparing model... %3.0f%%", m.spinner.View(), m.progress*100))
	case types.StateSummarizing:
		return progressStyle.Render(m.spinner.View() + " Summarizing...")
	case types.StateComplete:
		if m.message != "" {
			return errorStyle.Render(m.message)
		}
		return readyStyle.Render("Summary ready.")
	case types.StateCancelled:
		return statusStyle.Render("Cancelled. Start again?")
	default:
		return statusStyle.Render(string(m.state))
	}
}

func (m *model) settingsLine() string {
	return settingsStyle.Render(fmt.Sprintf("type:%s  format:%s  length:%s",
		m.settings.Type, m.settings.Format, m.settings.Length))
}

func (m *model) noticeLine() string {
	if m.toast != nil {
		if m.toast.isError {
			return errorStyle.Render(m.toast.message)
		}
		return readyStyle.Render(m.toast.message)
	}
	if m.warning != "" {
		return warningStyle.Render(m.warning)
	}
	return ""
}

func (m *model) helpLine() string {
	common := "t/f/n settings · h history · q quit"
	switch m.state {
	case types.StateReady, types.StateCancelled:
		return "s start · d not now · " + common
	case types.StateErrorUnsupported, types.StateErrorNoContent, types.StateErrorExtraction:
		return "r retry · " + common
	case types.StateDownloading, types.StateSummarizing:
		return "c cancel · " + common
	case types.StateComplete:
		return "r re-summarize · c copy · l share · " + common
	default:
		return common
	}
}

// refreshViewport rebuilds the viewport body from the current projection.
func (m *model) refreshViewport() {
	if !m.ready {
		return
	}
	if m.historyOpen {
		m.viewport.SetContent(m.historyBody())
		return
	}
	m.viewport.SetContent(m.summaryBody())
}

func (m *model) summaryBody() string {
	if m.summary == "" {
		return statusStyle.Render("No summary yet.")
	}
	body := m.summary
	if m.renderer != nil {
		body = m.renderer.Render(m.summary, m.settings.Format)
	}
	out := summaryStyle.Render(body)
	if m.sourceURL != "" {
		out += "\n" + historyMetaStyle.Render("Source: "+m.sourceURL)
	}
	return out
}

func (m *model) historyBody() string {
	var b strings.Builder
	b.WriteString(historyTitleStyle.Render("History"))
	b.WriteString("\n\n")

	if m.entries == nil {
		b.WriteString(statusStyle.Render("No summaries yet."))
		return b.String()
	}
	entries, err := m.entries()
	if err != nil {
		b.WriteString(errorStyle.Render("Couldn't load history: " + err.Error()))
		return b.String()
	}
	if len(entries) == 0 {
		b.WriteString(statusStyle.Render("No summaries yet."))
		return b.String()
	}

	for _, entry := range entries {
		marker := "✓"
		if entry.Status != history.StatusSuccess {
			marker = "✗"
		}
		b.WriteString(historyMetaStyle.Render(fmt.Sprintf("%s %s · %s",
			marker, entry.Timestamp.Local().Format("Jan 2 15:04"), entry.URL)))
		b.WriteString("\n")
		b.WriteString(historyEntryStyle.Render(firstLine(entry.Summary)))
		b.WriteString("\n\n")
	}
	return b.String()
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
