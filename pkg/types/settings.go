package types

import "fmt"

// SummaryType selects the shape of the generated summary.
type SummaryType string

const (
	TypeKeyPoints SummaryType = "key-points"
	TypeTLDR      SummaryType = "tl;dr"
	TypeTeaser    SummaryType = "teaser"
	TypeHeadline  SummaryType = "headline"
)

// SummaryFormat selects the output markup of the generated summary.
type SummaryFormat string

const (
	FormatMarkdown  SummaryFormat = "markdown"
	FormatPlainText SummaryFormat = "plain-text"
)

// SummaryLength selects the target length of the generated summary.
type SummaryLength string

const (
	LengthShort  SummaryLength = "short"
	LengthMedium SummaryLength = "medium"
	LengthLong   SummaryLength = "long"
)

// SummarizationSettings is the fixed configuration record for one attempt.
// Values are validated at the boundary; unknown values are rejected rather
// than passed through to the engine.
type SummarizationSettings struct {
	Type   SummaryType
	Format SummaryFormat
	Length SummaryLength
}

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() SummarizationSettings {
	return SummarizationSettings{
		Type:   TypeKeyPoints,
		Format: FormatMarkdown,
		Length: LengthShort,
	}
}

// Validate rejects settings containing values outside the enumerated sets.
func (s SummarizationSettings) Validate() error {
	switch s.Type {
	case TypeKeyPoints, TypeTLDR, TypeTeaser, TypeHeadline:
	default:
		return fmt.Errorf("invalid summary type: %q", s.Type)
	}
	switch s.Format {
	case FormatMarkdown, FormatPlainText:
	default:
		return fmt.Errorf("invalid summary format: %q", s.Format)
	}
	switch s.Length {
	case LengthShort, LengthMedium, LengthLong:
	default:
		return fmt.Errorf("invalid summary length: %q", s.Length)
	}
	return nil
}

// SummaryTypes lists the allowed type values in display order.
func SummaryTypes() []SummaryType {
	return []SummaryType{TypeKeyPoints, TypeTLDR, TypeTeaser, TypeHeadline}
}

// SummaryFormats lists the allowed format values in display order.
func SummaryFormats() []SummaryFormat {
	return []SummaryFormat{FormatMarkdown, FormatPlainText}
}

// SummaryLengths lists the allowed length values in display order.
func SummaryLengths() []SummaryLength {
	return []SummaryLength{LengthShort, LengthMedium, LengthLong}
}
