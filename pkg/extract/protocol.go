// Package extract obtains page text for summarization. The wire contract
// mirrors the panel-to-page messaging protocol: a single-action request and
// a success/error response envelope.
package extract

import "unicode/utf8"

// ActionExtractContent is the only action the extraction protocol defines.
const ActionExtractContent = "extractContent"

// MaxExtractChars caps extracted text so a pathological page cannot flood
// the model context.
const MaxExtractChars = 6000

// capText trims text to MaxExtractChars without splitting a rune. The page
// side applies it before answering, so responses never exceed the cap.
func capText(text string) string {
	if len(text) <= MaxExtractChars {
		return text
	}
	cut := MaxExtractChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// Request asks the page side for its readable text.
type Request struct {
	Action string `json:"action"`
}

// NewExtractRequest builds the extraction request.
func NewExtractRequest() *Request {
	return &Request{Action: ActionExtractContent}
}

// Response is the page side's answer. Exactly one of Content or Error is
// meaningful, selected by Success; URL accompanies successful extractions.
type Response struct {
	Content string `json:"content,omitempty"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}
