package content

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

// MinContentLength is the minimum trimmed text length considered summarizable.
const MinContentLength = 100

// InvalidReason classifies why content cannot be summarized.
type InvalidReason string

const (
	ReasonUnsupportedSite     InvalidReason = "unsupported_site"
	ReasonInsufficientContent InvalidReason = "insufficient_content"
	ReasonMalformedURL        InvalidReason = "malformed_url"
)

// ValidationResult is the outcome of validating one PageContent. Either Valid
// is true, or Reason and UserMessage describe why summarization is refused.
type ValidationResult struct {
	Reason      InvalidReason
	UserMessage string
	Valid       bool
}

// deniedDomains is the fixed denylist. Matching runs in both containment
// directions so subdomains and scheme-prefixed pseudo-domains (disabled
// browser pages) are caught as well.
var deniedDomains = []string{
	"mail.google.com",
	"accounts.google.com",
	"drive.google.com",
	"chrome://",
	"chrome-extension://",
	"about:",
	"localhost",
}

// Validator decides whether extracted content is summarizable. It is a pure
// predicate: no side effects, deterministic, re-run on every new content.
type Validator struct {
	extraPatterns []glob.Glob
}

// NewValidator creates a validator. Extra denylist patterns from
// configuration are compiled as globs and matched against the hostname;
// invalid patterns are rejected.
func NewValidator(extraPatterns []string) (*Validator, error) {
	v := &Validator{}
	for _, p := range extraPatterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("content: invalid denylist pattern %q: %w", p, err)
		}
		v.extraPatterns = append(v.extraPatterns, g)
	}
	return v, nil
}

// Validate checks one PageContent against the URL denylist and the minimum
// text length.
func (v *Validator) Validate(c PageContent) ValidationResult {
	u, err := url.Parse(c.SourceURL)
	if err != nil || c.SourceURL == "" {
		return invalid(ReasonMalformedURL, "This page can't be summarized.")
	}

	host := u.Hostname()
	// Disabled-page pseudo-protocols are matched on their scheme-prefixed
	// form so entries like "chrome://" catch every page behind them.
	candidate := host
	if u.Scheme != "http" && u.Scheme != "https" {
		candidate = u.Scheme + "://" + host + u.Opaque
	}
	if candidate == "" || candidate == "://" {
		return invalid(ReasonMalformedURL, "This page can't be summarized.")
	}

	for _, denied := range deniedDomains {
		if containsEither(candidate, denied) {
			return invalid(ReasonUnsupportedSite,
				fmt.Sprintf("You're on %s, we can't summarize this yet.", candidate))
		}
	}
	for _, g := range v.extraPatterns {
		if host != "" && g.Match(host) {
			return invalid(ReasonUnsupportedSite,
				fmt.Sprintf("You're on %s, we can't summarize this yet.", host))
		}
	}

	if len(strings.TrimSpace(c.Text)) < MinContentLength {
		return invalid(ReasonInsufficientContent, "There's too little text here to summarize.")
	}

	return ValidationResult{Valid: true}
}

// containsEither matches in both containment directions: the domain may be a
// subdomain of a denied entry, or a denied pseudo-protocol prefix may contain
// the candidate.
func containsEither(candidate, denied string) bool {
	if candidate == "" {
		return false
	}
	return strings.Contains(candidate, denied) || strings.Contains(denied, candidate)
}

func invalid(reason InvalidReason, message string) ValidationResult {
	return ValidationResult{Reason: reason, UserMessage: message}
}
