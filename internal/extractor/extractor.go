// Package extractor pulls article fields out of parsed HTML.
//
// Source sites vary enough in markup that any single fixed selector misses
// content on some fraction of pages, so every field is extracted through an
// ordered fallback list: selectors are tried in priority order and the first
// whose result passes the field's validity check wins.
package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/riftline/guidecrawl/internal/profiles"
)

// Validity thresholds per field, in characters. Source sites are frequently
// Vietnamese, where byte counts overshoot character counts badly, so every
// length check counts runes.
const (
	// MinTitleLen and MaxTitleLen bound an acceptable title
	MinTitleLen = 10
	MaxTitleLen = 200
	// MinContentTextLen is the minimum stripped-text length for content
	MinContentTextLen = 50
	// MinParagraphLen is the floor for paragraph blocks in the generic fallback
	MinParagraphLen = 30
	// MinSummaryLen is the minimum length for an author-provided summary
	MinSummaryLen = 20
	// SummaryMaxLen caps derived summaries before the ellipsis is appended
	SummaryMaxLen = 220
)

// Fields holds the raw extraction result. A field is empty when no selector
// in its list (nor the generic fallback, where one exists) produced a valid
// value.
type Fields struct {
	Title       string
	ContentHTML string
	Summary     string
	ImageURL    string
}

// Extractor extracts fields using a profile's selector lists. It performs no
// network I/O and is safe for reuse across pages of the same site.
type Extractor struct {
	selectors profiles.FieldSelectors
}

// New creates an extractor for the given selector lists.
func New(selectors profiles.FieldSelectors) *Extractor {
	return &Extractor{selectors: selectors}
}

// Extract applies the per-field fallback lists to the document.
func (e *Extractor) Extract(doc *goquery.Document) *Fields {
	return &Fields{
		Title:       e.extractTitle(doc),
		ContentHTML: e.extractContent(doc),
		Summary:     e.extractSummary(doc),
		ImageURL:    e.extractImage(doc),
	}
}

// extractTitle returns the first selector result within the title length
// bounds. There is no generic fallback: a page without a usable title is
// rejected downstream.
func (e *Extractor) extractTitle(doc *goquery.Document) string {
	for _, selector := range e.selectors.Title {
		text := valueOf(doc.Find(selector).First())
		if n := utf8.RuneCountInString(text); n >= MinTitleLen && n <= MaxTitleLen {
			return text
		}
	}
	return ""
}

// extractContent returns the HTML of the first selector match whose stripped
// text exceeds the content floor. When every selector fails it falls back to
// concatenating all paragraph blocks above the paragraph floor, in document
// order.
func (e *Extractor) extractContent(doc *goquery.Document) string {
	for _, selector := range e.selectors.Content {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(sel.Text())) <= MinContentTextLen {
			continue
		}
		if html, err := goquery.OuterHtml(sel); err == nil {
			return html
		}
	}

	return genericContentFallback(doc)
}

// genericContentFallback concatenates paragraph-like blocks in document order.
func genericContentFallback(doc *goquery.Document) string {
	var parts []string
	var textLen int

	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		n := utf8.RuneCountInString(text)
		if n < MinParagraphLen {
			return
		}
		if html, err := goquery.OuterHtml(sel); err == nil {
			parts = append(parts, html)
			textLen += n
		}
	})

	if textLen <= MinContentTextLen {
		return ""
	}
	return strings.Join(parts, "\n")
}

// extractSummary prefers an author-provided summary located by the profile's
// selectors (typically a meta description), then the first substantial
// paragraph. The final fallback, truncating the cleaned content, happens
// after sanitization and is the orchestrator's job.
func (e *Extractor) extractSummary(doc *goquery.Document) string {
	for _, selector := range e.selectors.Summary {
		text := valueOf(doc.Find(selector).First())
		if utf8.RuneCountInString(text) >= MinSummaryLen {
			return Truncate(text, SummaryMaxLen)
		}
	}

	var firstParagraph string
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if utf8.RuneCountInString(text) >= MinParagraphLen {
			firstParagraph = text
			return false
		}
		return true
	})

	if firstParagraph == "" {
		return ""
	}
	return Truncate(firstParagraph, SummaryMaxLen)
}

// extractImage returns the first selector result carrying an image URL.
func (e *Extractor) extractImage(doc *goquery.Document) string {
	for _, selector := range e.selectors.Image {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		for _, attr := range []string{"content", "src", "data-src", "href"} {
			if value, exists := sel.Attr(attr); exists {
				value = strings.TrimSpace(value)
				if value != "" {
					return value
				}
			}
		}
	}
	return ""
}

// valueOf returns the usable text of a selection: the content attribute for
// meta elements, the trimmed text otherwise.
func valueOf(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	if goquery.NodeName(sel) == "meta" {
		content, _ := sel.Attr("content")
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(sel.Text())
}

// Truncate shortens text to at most max characters, appending an ellipsis
// marker when truncation occurred. Truncation happens on rune boundaries.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
