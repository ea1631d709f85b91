package util

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// NoDescription is returned when a source provides no usable description.
	NoDescription = "No description available"

	// UnknownCompany is the fallback company display name.
	UnknownCompany = "Unknown Company"
)

// Trailing call-to-action boilerplate and bracketed asides stripped from
// descriptions before truncation.
var unwantedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Apply now.*$`),
	regexp.MustCompile(`(?i)Click here.*$`),
	regexp.MustCompile(`(?i)Visit our website.*$`),
	regexp.MustCompile(`\[.*?\]`),
}

var legalSuffixRe = regexp.MustCompile(`(?i)\s+(Inc\.|LLC|Ltd\.|Corp\.|Corporation|Limited)$`)

// CleanText normalizes non-breaking spaces and collapses whitespace runs.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// StripMarkup decodes HTML entities and removes tags, script and style
// content from raw source text. Input that fails to parse is cleaned as
// plain text.
func StripMarkup(raw string) string {
	if raw == "" {
		return ""
	}
	decoded := html.UnescapeString(raw)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(decoded))
	if err != nil {
		return CleanText(decoded)
	}
	doc.Find("script, style").Remove()
	return CleanText(doc.Text())
}

// CleanDescription strips markup and boilerplate from a raw description and
// bounds it to maxLen runes. When the text overflows, it is cut at the last
// sentence end (. ! ?) falling in the final 30% of the window; otherwise it
// is hard-truncated with an ellipsis marker.
func CleanDescription(raw string, maxLen int) string {
	text := StripMarkup(raw)
	if text == "" {
		return NoDescription
	}

	for _, re := range unwantedPatterns {
		text = re.ReplaceAllString(text, "")
	}
	text = CleanText(text)
	if text == "" {
		return NoDescription
	}

	runes := []rune(text)
	if maxLen > 0 && len(runes) > maxLen {
		truncated := runes[:maxLen]
		end := lastSentenceEnd(truncated)
		if float64(end) > float64(maxLen)*0.7 {
			text = string(truncated[:end+1])
		} else {
			text = string(truncated) + "..."
		}
	}
	return strings.TrimSpace(text)
}

func lastSentenceEnd(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		switch runes[i] {
		case '.', '!', '?':
			return i
		}
	}
	return -1
}

// CleanCompany trims trailing legal-entity suffixes for display.
func CleanCompany(name string) string {
	name = CleanText(name)
	if name == "" {
		return UnknownCompany
	}
	return strings.TrimSpace(legalSuffixRe.ReplaceAllString(name, ""))
}

// CleanLocation collapses whitespace; empty input means a remote posting.
func CleanLocation(s string) string {
	s = CleanText(s)
	if s == "" {
		return "Remote"
	}
	return s
}
