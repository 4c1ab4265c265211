// Package content holds the page content model and the validation rules that
// decide whether extracted text is summarizable.
package content

// PageContent is the readable text captured from a page together with the URL
// it came from. Values are immutable once captured; new extractions supersede
// rather than mutate.
type PageContent struct {
	Text      string
	SourceURL string
}

// IsEmpty returns true when no text was captured.
func (p PageContent) IsEmpty() bool {
	return p.Text == ""
}

// SameText reports whether another capture carries identical text. Text
// equality is the idempotence guard: re-delivery of identical content must
// not restart any in-flight work.
func (p PageContent) SameText(other PageContent) bool {
	return p.Text == other.Text
}
