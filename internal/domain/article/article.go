// Package article defines the content-API card records surfaced in the
// articles section and in federated search.
package article

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// SummaryLimit is the maximum plain-text description length shown in
// search results before truncation.
const SummaryLimit = 150

// Article is one card from the CMS article feed. Description may carry HTML.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	CTALink     string `json:"ctaLink,omitempty"`
	CTAText     string `json:"ctaText,omitempty"`
}

// PlainDescription returns the description with all markup stripped and
// whitespace collapsed.
func (a Article) PlainDescription() string {
	return StripMarkup(a.Description)
}

// Summary returns the plain description truncated to SummaryLimit runes,
// with an ellipsis appended when it was longer.
func (a Article) Summary() string {
	plain := a.PlainDescription()
	runes := []rune(plain)
	if len(runes) <= SummaryLimit {
		return plain
	}
	return string(runes[:SummaryLimit]) + "..."
}

// URL returns the navigation target for the article: its own CTA link when
// present, otherwise a path synthesized from the slugified title.
func (a Article) URL() string {
	if a.CTALink != "" {
		return a.CTALink
	}
	return "/articles/" + Slugify(a.Title)
}

// StripMarkup extracts the text content of an HTML fragment. Non-HTML input
// passes through unchanged apart from whitespace normalization.
func StripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return collapseSpace(s)
	}

	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(tok.Text())
			b.WriteByte(' ')
		}
	}
	return collapseSpace(b.String())
}

// Slugify lowercases a title and replaces every run of non-alphanumeric
// characters with a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
